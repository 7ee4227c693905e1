package services

import (
	"errors"
	"fmt"

	"inkwell/app/access"
	"inkwell/app/apperror"
	"inkwell/app/forms"
	"inkwell/app/models"
	"inkwell/app/paginate"
	"inkwell/app/repositories"

	"golang.org/x/sync/errgroup"
)

// UserService handles registration, authentication and profile aggregation
type UserService struct {
	userRepo repositories.UserRepository
	postRepo repositories.PostRepository
	pageSize int
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, postRepo repositories.PostRepository, pageSize int) *UserService {
	if pageSize < 1 {
		pageSize = 5
	}
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
		pageSize: pageSize,
	}
}

// Register validates the form and creates the account. Uniqueness is
// enforced by the store inside the create transaction; a conflict surfaces
// here as a field-level validation error, the same shape a format error
// takes, so the form re-renders with a message next to the offending field.
func (s *UserService) Register(form *forms.RegisterForm) (*models.User, error) {
	if fields := form.Validate(); len(fields) > 0 {
		return nil, apperror.NewValidation(fields)
	}

	user := &models.User{
		Email:    form.Email,
		Username: form.Username,
	}
	if err := user.SetPassword(form.Password); err != nil {
		return nil, apperror.NewStore("failed to hash password", err)
	}

	err := s.userRepo.Create(user)
	switch {
	case errors.Is(err, repositories.ErrDuplicateEmail):
		return nil, apperror.NewValidation([]apperror.FieldError{{
			Field:   "email",
			Rule:    "unique",
			Message: fmt.Sprintf("Email %s is already registered. Please choose a different email", form.Email),
		}})
	case errors.Is(err, repositories.ErrDuplicateUsername):
		return nil, apperror.NewValidation([]apperror.FieldError{{
			Field:   "username",
			Rule:    "unique",
			Message: fmt.Sprintf("Username %s is already registered. Please choose a different username", form.Username),
		}})
	case err != nil:
		return nil, apperror.NewStore("failed to create user", err)
	}

	return user, nil
}

// Authenticate checks the credentials and returns the matching user. An
// unknown email and a wrong password fail identically.
func (s *UserService) Authenticate(form *forms.LoginForm) (*models.User, error) {
	if fields := form.Validate(); len(fields) > 0 {
		return nil, apperror.NewValidation(fields)
	}

	user, err := s.userRepo.GetByEmail(form.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.NewUnauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, apperror.NewStore("failed to fetch user", err)
	}

	if !user.CheckPassword(form.Password) {
		return nil, apperror.NewUnauthorized("Invalid email or password")
	}
	return user, nil
}

// GetUser loads a user by id, mapping a missing record to NotFound.
func (s *UserService) GetUser(id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.NewNotFound("User not found")
	}
	if err != nil {
		return nil, apperror.NewStore("failed to fetch user", err)
	}
	return user, nil
}

// ProfileData is the profile page aggregation. Posts holds the requested
// page of the author's posts as the requester is allowed to see them.
type ProfileData struct {
	Author       *models.User
	Posts        []*models.Post
	Page         paginate.Page
	PublicCount  int
	PrivateCount int
	IsOwner      bool
}

// Profile aggregates the profile page: author record, visibility-scoped
// post count and public/private tallies are fetched in parallel and joined,
// then the requested page window is fetched.
func (s *UserService) Profile(requester *models.User, authorID, requestedPage int) (*ProfileData, error) {
	scope := access.Scope(requester, authorID)
	publicOnly := true
	privateOnly := false

	data := &ProfileData{
		IsOwner: requester != nil && requester.ID == authorID,
	}
	var scopedCount int

	var g errgroup.Group
	g.Go(func() error {
		user, err := s.userRepo.GetByID(authorID)
		if errors.Is(err, repositories.ErrNotFound) {
			return apperror.NewNotFound("User not found")
		}
		if err != nil {
			return apperror.NewStore("failed to fetch user", err)
		}
		data.Author = user
		return nil
	})
	g.Go(func() error {
		count, err := s.postRepo.Count(scope)
		if err != nil {
			return apperror.NewStore("failed to count posts", err)
		}
		scopedCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.postRepo.Count(repositories.PostFilter{AuthorID: &authorID, Visible: &publicOnly})
		if err != nil {
			return apperror.NewStore("failed to count public posts", err)
		}
		data.PublicCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.postRepo.Count(repositories.PostFilter{AuthorID: &authorID, Visible: &privateOnly})
		if err != nil {
			return apperror.NewStore("failed to count private posts", err)
		}
		data.PrivateCount = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	page, err := paginate.Paginate(scopedCount, s.pageSize, requestedPage)
	if err != nil {
		return nil, apperror.NewNotFound("Page not found")
	}
	data.Page = page

	posts, err := s.postRepo.Find(scope, page.Skip, page.Limit)
	if err != nil {
		return nil, apperror.NewStore("failed to fetch posts", err)
	}
	for _, post := range posts {
		post.Author = data.Author
	}
	data.Posts = posts

	return data, nil
}
