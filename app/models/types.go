package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// User represents a registered account.
type User struct {
	ID           int       `json:"id" validate:"required,gte=0"`
	Email        string    `json:"email" validate:"required,email"`
	Username     string    `json:"username" validate:"required,alphanum,min=1,max=50"`
	PasswordHash string    `json:"password_hash" validate:"required"`
	CreatedAt    time.Time `json:"created_at" validate:"required"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Post represents a blog post owned by a single author.
type Post struct {
	ID        int       `json:"id" validate:"required,gte=0"`
	Title     string    `json:"title" validate:"required,max=100"`
	Content   string    `json:"content" validate:"required"`
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    *User     `json:"-" validate:"-"`
}

// Session maps an opaque cookie token to a user identity. Flash messages
// ride on the session and are consumed on the next page render.
type Session struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	Flash     []Flash   `json:"flash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Flash is a one-shot notice rendered in the layout.
type Flash struct {
	Category string `json:"category"` // "success" or "danger"
	Message  string `json:"message"`
}
