// Package paginate computes page windows over a sorted, filtered post
// collection. It is stateless; callers pass the already-counted total.
package paginate

import "errors"

// ErrPageNotFound signals a requested page outside [1, NumPages] for a
// non-empty collection. Callers map it to a 404-equivalent response.
var ErrPageNotFound = errors.New("page not found")

// Page describes the window to fetch and the metadata to render.
type Page struct {
	Skip        int
	Limit       int
	NumPages    int
	CurrentPage int
}

// Paginate computes the window for requestedPage over totalCount items in
// pages of pageSize. A requestedPage <= 0 means "absent" and defaults to
// page 1. For a non-empty collection a page outside [1, NumPages] yields
// ErrPageNotFound; an empty collection accepts any requested page and
// yields an empty window. pageSize must be positive.
func Paginate(totalCount, pageSize, requestedPage int) (Page, error) {
	if requestedPage <= 0 {
		requestedPage = 1
	}

	numPages := 0
	if totalCount > 0 {
		numPages = (totalCount + pageSize - 1) / pageSize
	}

	page := Page{
		Skip:        pageSize * (requestedPage - 1),
		Limit:       pageSize,
		NumPages:    numPages,
		CurrentPage: requestedPage,
	}

	if numPages > 0 && requestedPage > numPages {
		return page, ErrPageNotFound
	}
	return page, nil
}
