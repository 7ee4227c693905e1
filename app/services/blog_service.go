package services

import (
	"errors"

	"inkwell/app/access"
	"inkwell/app/apperror"
	"inkwell/app/forms"
	"inkwell/app/models"
	"inkwell/app/paginate"
	"inkwell/app/repositories"

	"golang.org/x/sync/errgroup"
)

// RecentPostCount is how many public posts the home page shows.
const RecentPostCount = 6

// BlogService handles business logic for blog posts
type BlogService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	pageSize int
}

// NewBlogService creates a new BlogService
func NewBlogService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, pageSize int) *BlogService {
	if pageSize < 1 {
		pageSize = 5
	}
	return &BlogService{
		postRepo: postRepo,
		userRepo: userRepo,
		pageSize: pageSize,
	}
}

// HomeData is the home page aggregation: how many public posts exist and
// the most recent few of them.
type HomeData struct {
	PublicCount int
	Recent      []*models.Post
}

// Listing is one page of a post listing.
type Listing struct {
	Posts []*models.Post
	Page  paginate.Page
}

// Home fetches the public post count and the recent public posts in
// parallel and joins the results.
func (s *BlogService) Home() (*HomeData, error) {
	var data HomeData

	var g errgroup.Group
	g.Go(func() error {
		count, err := s.postRepo.Count(access.PublicScope())
		if err != nil {
			return apperror.NewStore("failed to count posts", err)
		}
		data.PublicCount = count
		return nil
	})
	g.Go(func() error {
		recent, err := s.postRepo.Find(access.PublicScope(), 0, RecentPostCount)
		if err != nil {
			return apperror.NewStore("failed to fetch recent posts", err)
		}
		data.Recent = recent
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.populateAuthors(data.Recent); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListPublic returns the requested page of the site-wide public listing.
// The count and the page window are fetched in parallel; page validity is
// checked once both are in.
func (s *BlogService) ListPublic(requestedPage int) (*Listing, error) {
	window, _ := paginate.Paginate(0, s.pageSize, requestedPage)

	var total int
	var posts []*models.Post

	var g errgroup.Group
	g.Go(func() error {
		count, err := s.postRepo.Count(access.PublicScope())
		if err != nil {
			return apperror.NewStore("failed to count posts", err)
		}
		total = count
		return nil
	})
	g.Go(func() error {
		found, err := s.postRepo.Find(access.PublicScope(), window.Skip, window.Limit)
		if err != nil {
			return apperror.NewStore("failed to fetch posts", err)
		}
		posts = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	page, err := paginate.Paginate(total, s.pageSize, requestedPage)
	if err != nil {
		return nil, apperror.NewNotFound("Page not found")
	}

	if err := s.populateAuthors(posts); err != nil {
		return nil, err
	}
	return &Listing{Posts: posts, Page: page}, nil
}

// GetPost retrieves a post for viewing, enforcing the visibility rule. A
// private post yields the same Forbidden answer for an anonymous requester
// and an authenticated non-owner.
func (s *BlogService) GetPost(requester *models.User, id int) (*models.Post, error) {
	post, err := s.fetch(id)
	if err != nil {
		return nil, err
	}

	if !access.CanView(requester, post) {
		return nil, apperror.NewForbidden("Private blog")
	}

	if err := s.populateAuthors([]*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPostForEdit retrieves a post for the update form, enforcing ownership.
func (s *BlogService) GetPostForEdit(requester *models.User, id int) (*models.Post, error) {
	post, err := s.fetch(id)
	if err != nil {
		return nil, err
	}

	if !access.CanModify(requester, post) {
		return nil, apperror.NewForbidden("Not Authorized")
	}
	return post, nil
}

// CreatePost validates the form and creates a post owned by the author.
func (s *BlogService) CreatePost(author *models.User, form *forms.PostForm) (*models.Post, error) {
	if fields := form.Validate(); len(fields) > 0 {
		return nil, apperror.NewValidation(fields)
	}

	post := &models.Post{
		Title:    form.Title,
		Content:  form.Content,
		AuthorID: author.ID,
		Visible:  form.Visible(),
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, apperror.NewStore("failed to create post", err)
	}
	return post, nil
}

// UpdatePost validates the form and updates the post, enforcing ownership.
// Creation time is preserved; the update time is bumped.
func (s *BlogService) UpdatePost(requester *models.User, id int, form *forms.PostForm) (*models.Post, error) {
	post, err := s.GetPostForEdit(requester, id)
	if err != nil {
		return nil, err
	}

	if fields := form.Validate(); len(fields) > 0 {
		return nil, apperror.NewValidation(fields)
	}

	post.Title = form.Title
	post.Content = form.Content
	post.Visible = form.Visible()
	post.BeforeUpdate()

	if err := s.postRepo.Update(post); err != nil {
		return nil, apperror.NewStore("failed to update post", err)
	}
	return post, nil
}

// DeletePost deletes the post, enforcing ownership.
func (s *BlogService) DeletePost(requester *models.User, id int) error {
	post, err := s.fetch(id)
	if err != nil {
		return err
	}

	if !access.CanModify(requester, post) {
		return apperror.NewForbidden("Not Authorized")
	}

	if err := s.postRepo.Delete(post.ID); err != nil {
		return apperror.NewStore("failed to delete post", err)
	}
	return nil
}

// fetch loads a post, mapping a missing record to NotFound.
func (s *BlogService) fetch(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.NewNotFound("Blog not found")
	}
	if err != nil {
		return nil, apperror.NewStore("failed to fetch post", err)
	}
	return post, nil
}

// populateAuthors attaches the author record to each post, fetching each
// distinct author once.
func (s *BlogService) populateAuthors(posts []*models.Post) error {
	authors := make(map[int]*models.User)
	for _, post := range posts {
		if _, ok := authors[post.AuthorID]; ok {
			continue
		}
		author, err := s.userRepo.GetByID(post.AuthorID)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return apperror.NewStore("failed to fetch author", err)
		}
		authors[post.AuthorID] = author
	}
	for _, post := range posts {
		post.Author = authors[post.AuthorID]
	}
	return nil
}
