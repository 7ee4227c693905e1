// Package auth is the session-backed identity provider. A browser carries
// an opaque UUID token in an HttpOnly cookie; the token resolves to a
// server-side session record holding the user id and any pending flash
// messages. Anonymous visitors get a session too once something (a flash)
// needs to be remembered for them.
package auth

import (
	"net/http"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"

	"github.com/google/uuid"
)

// Manager authenticates requests against the session store.
type Manager struct {
	sessions   repositories.SessionRepository
	users      repositories.UserRepository
	cookieName string
	ttl        time.Duration
}

// NewManager creates a session manager.
func NewManager(sessions repositories.SessionRepository, users repositories.UserRepository, cookieName string, ttl time.Duration) *Manager {
	if cookieName == "" {
		cookieName = "inkwell_session"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		sessions:   sessions,
		users:      users,
		cookieName: cookieName,
		ttl:        ttl,
	}
}

// CurrentUser resolves the request to an authenticated user, or nil for an
// anonymous visitor. A stale or unresolvable token counts as anonymous.
func (m *Manager) CurrentUser(r *http.Request) *models.User {
	session := m.session(r)
	if session == nil || session.UserID == 0 {
		return nil
	}

	user, err := m.users.GetByID(session.UserID)
	if err != nil {
		return nil
	}
	return user
}

// Login issues a fresh session for the user and sets the cookie. Any flash
// messages pending on the visitor's anonymous session are carried over;
// the old token is discarded so it cannot be replayed.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, user *models.User) error {
	var flash []models.Flash
	if old := m.session(r); old != nil {
		flash = old.Flash
		if err := m.sessions.Delete(old.Token); err != nil {
			return err
		}
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Flash:     flash,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(m.ttl),
	}
	if err := m.sessions.Put(session, m.ttl); err != nil {
		return err
	}

	m.setCookie(w, session.Token)
	return nil
}

// Logout destroys the session and clears the cookie.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(m.cookieName); err == nil {
		if err := m.sessions.Delete(cookie.Value); err != nil {
			return err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return nil
}

// AddFlash queues a one-shot notice for the visitor, creating an anonymous
// session when none exists yet.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error {
	session := m.session(r)
	if session == nil {
		session = &models.Session{
			Token:     uuid.NewString(),
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(m.ttl),
		}
		m.setCookie(w, session.Token)
	}

	session.Flash = append(session.Flash, models.Flash{Category: category, Message: message})
	return m.sessions.Put(session, time.Until(session.ExpiresAt))
}

// ConsumeFlash returns the pending notices and clears them from the
// session.
func (m *Manager) ConsumeFlash(r *http.Request) []models.Flash {
	session := m.session(r)
	if session == nil || len(session.Flash) == 0 {
		return nil
	}

	flash := session.Flash
	session.Flash = nil
	// Best effort: a failed write just means the notice shows twice.
	_ = m.sessions.Put(session, time.Until(session.ExpiresAt))
	return flash
}

// RequireAuth gates a handler to authenticated users. Anonymous requests
// are flashed and redirected to the login page.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.CurrentUser(r) == nil {
			_ = m.AddFlash(w, r, "danger", "Please login")
			http.Redirect(w, r, "/users/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAnonymous gates a handler to anonymous visitors. Authenticated
// users are sent home, matching the login/register pages.
func (m *Manager) RequireAnonymous(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.CurrentUser(r) != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// session loads the request's session record, or nil.
func (m *Manager) session(r *http.Request) *models.Session {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil
	}

	session, err := m.sessions.Get(cookie.Value)
	if err != nil {
		return nil
	}
	return session
}

func (m *Manager) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
