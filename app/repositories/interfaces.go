package repositories

import (
	"time"

	"inkwell/app/models"
)

// PostFilter constrains post queries. Nil fields mean "no constraint": a
// nil Visible returns both public and private posts, which is how an
// author's own listing is produced.
type PostFilter struct {
	AuthorID *int
	Visible  *bool
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}

// PostRepository defines the interface for post data access. Find returns
// posts sorted by creation time descending.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	Find(filter PostFilter, skip, limit int) ([]*models.Post, error)
	Count(filter PostFilter) (int, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	Put(session *models.Session, ttl time.Duration) error
	Get(token string) (*models.Session, error)
	Delete(token string) error
}
