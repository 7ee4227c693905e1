// Package access holds the authorization decisions for blog content. All
// functions are pure: a nil requester means an anonymous visitor, and no
// function here errors or panics. Callers translate a false answer into a
// redirect or 404 as appropriate.
package access

import (
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CanView reports whether the requester may view the post. Public posts are
// visible to everyone, including anonymous visitors; private posts only to
// their author. An anonymous request and an authenticated non-owner request
// get the same answer, so the two are indistinguishable to the visitor.
func CanView(requester *models.User, post *models.Post) bool {
	if post == nil {
		return false
	}
	if post.Visible {
		return true
	}
	return requester != nil && requester.ID == post.AuthorID
}

// CanModify reports whether the requester may update or delete the post.
// Only the authenticated author qualifies, regardless of visibility.
func CanModify(requester *models.User, post *models.Post) bool {
	if post == nil {
		return false
	}
	return requester != nil && requester.ID == post.AuthorID
}

// Scope returns the query filter for listing the given author's posts as
// seen by the requester. The author sees all of their own posts, public and
// private; everyone else is restricted to public ones.
func Scope(requester *models.User, authorID int) repositories.PostFilter {
	filter := repositories.PostFilter{AuthorID: &authorID}
	if requester == nil || requester.ID != authorID {
		visible := true
		filter.Visible = &visible
	}
	return filter
}

// PublicScope returns the filter for site-wide listings: public posts only,
// any author.
func PublicScope() repositories.PostFilter {
	visible := true
	return repositories.PostFilter{Visible: &visible}
}
