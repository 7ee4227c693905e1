package models

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
}

// BeforeUpdate bumps the update timestamp, preserving the creation time.
func (p *Post) BeforeUpdate() {
	p.UpdatedAt = time.Now()
}

// URL returns the canonical path of the post's detail page.
func (p *Post) URL() string {
	return fmt.Sprintf("/catalog/blog/%d", p.ID)
}

// DisplayDate returns a human-readable creation date. When the post has
// been updated after creation, a relative update note is appended, e.g.
// "Monday, January 2, 2006 3:04 PM (updated 3 days ago)".
func (p *Post) DisplayDate() string {
	formatted := p.CreatedAt.Format("Monday, January 2, 2006 3:04 PM")
	if !p.UpdatedAt.IsZero() && p.UpdatedAt.After(p.CreatedAt) {
		formatted += fmt.Sprintf(" (updated %s)", relativeTime(time.Since(p.UpdatedAt)))
	}
	return formatted
}

// relativeTime renders a duration as a coarse "N units ago" phrase.
func relativeTime(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "moments ago"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 365*24*time.Hour:
		return plural(int(d.Hours()/(24*30)), "month")
	default:
		return plural(int(d.Hours()/(24*365)), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
