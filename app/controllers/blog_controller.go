package controllers

import (
	"net/http"
	"strconv"

	"inkwell/app/apperror"
	"inkwell/app/auth"
	"inkwell/app/forms"
	"inkwell/app/models"
	"inkwell/app/paginate"
	"inkwell/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// BlogController handles HTTP requests for blog posts
type BlogController struct {
	blogService *services.BlogService
	sessions    *auth.Manager
	renderer    *Renderer
	log         zerolog.Logger
}

// NewBlogController creates a new BlogController
func NewBlogController(blogService *services.BlogService, sessions *auth.Manager, renderer *Renderer, log zerolog.Logger) *BlogController {
	return &BlogController{
		blogService: blogService,
		sessions:    sessions,
		renderer:    renderer,
		log:         log,
	}
}

// homeContent is the home page payload.
type homeContent struct {
	Count  int
	Recent []*models.Post
}

// listContent is a paginated listing payload.
type listContent struct {
	Posts []*models.Post
	Page  paginate.Page
}

// formContent carries a form re-render: the submitted values plus the
// field errors to show next to them.
type formContent struct {
	Post   *forms.PostForm
	PostID int
	Errors []apperror.FieldError
}

// Home displays the public post count and the most recent public posts
func (bc *BlogController) Home(w http.ResponseWriter, r *http.Request) {
	data, err := bc.blogService.Home()
	if err != nil {
		bc.renderer.Error(w, r, err)
		return
	}

	bc.renderer.Render(w, r, "index", &ViewData{
		Title:   "Home",
		Content: homeContent{Count: data.PublicCount, Recent: data.Recent},
	})
}

// List displays one page of the site-wide public listing
func (bc *BlogController) List(w http.ResponseWriter, r *http.Request) {
	listing, err := bc.blogService.ListPublic(pageParam(r))
	if err != nil {
		bc.renderer.Error(w, r, err)
		return
	}

	bc.renderer.Render(w, r, "blog_list", &ViewData{
		Title:   "Blog List",
		Content: listContent{Posts: listing.Posts, Page: listing.Page},
	})
}

// Show displays a single post, enforcing visibility
func (bc *BlogController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		bc.renderer.Error(w, r, apperror.NewNotFound("Blog not found"))
		return
	}

	requester := bc.sessions.CurrentUser(r)
	post, err := bc.blogService.GetPost(requester, id)
	if err != nil {
		bc.renderer.Error(w, r, err)
		return
	}

	bc.renderer.Render(w, r, "blog_detail", &ViewData{
		Title:       post.Title,
		CurrentUser: requester,
		Content:     post,
	})
}

// New displays the form for creating a new post
func (bc *BlogController) New(w http.ResponseWriter, r *http.Request) {
	bc.renderer.Render(w, r, "blog_create", &ViewData{
		Title:   "Create a blog",
		Content: formContent{Post: &forms.PostForm{}},
	})
}

// Create processes the post create form
func (bc *BlogController) Create(w http.ResponseWriter, r *http.Request) {
	author := bc.sessions.CurrentUser(r)
	form := forms.ParsePost(r)

	post, err := bc.blogService.CreatePost(author, form)
	if apperror.KindOf(err) == apperror.Validation {
		// Re-render with the submitted values and per-field messages.
		bc.renderer.RenderStatus(w, r, "blog_create", &ViewData{
			Title:       "Create a blog",
			CurrentUser: author,
			Content:     formContent{Post: form, Errors: apperror.FieldsOf(err)},
		}, http.StatusBadRequest)
		return
	}
	if err != nil {
		bc.renderer.Error(w, r, err)
		return
	}

	bc.renderer.flashRedirect(w, r, "success", "Blog created successfully", post.URL())
}

// Edit displays the post update form, enforcing ownership
func (bc *BlogController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		bc.renderer.Error(w, r, apperror.NewNotFound("Blog not found"))
		return
	}

	requester := bc.sessions.CurrentUser(r)
	post, err := bc.blogService.GetPostForEdit(requester, id)
	if err != nil {
		bc.renderer.Error(w, r, err)
		return
	}

	bc.renderer.Render(w, r, "blog_update", &ViewData{
		Title:       "Update blog - " + post.Title,
		CurrentUser: requester,
		Content: formContent{
			PostID: post.ID,
			Post: &forms.PostForm{
				Title:      post.Title,
				Content:    post.Content,
				Visibility: strconv.FormatBool(post.Visible),
			},
		},
	})
}

// Update processes the post update form
func (bc *BlogController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		bc.renderer.Error(w, r, apperror.NewNotFound("Blog not found"))
		return
	}

	requester := bc.sessions.CurrentUser(r)
	form := forms.ParsePost(r)

	post, err := bc.blogService.UpdatePost(requester, id, form)
	if apperror.KindOf(err) == apperror.Validation {
		bc.renderer.RenderStatus(w, r, "blog_update", &ViewData{
			Title:       "Update blog - " + form.Title,
			CurrentUser: requester,
			Content:     formContent{Post: form, PostID: id, Errors: apperror.FieldsOf(err)},
		}, http.StatusBadRequest)
		return
	}
	if err != nil {
		bc.renderer.Error(w, r, err)
		return
	}

	bc.renderer.flashRedirect(w, r, "success", "Blog updated successfully", post.URL())
}

// Delete removes a post, enforcing ownership. The client is script-driven,
// so the response is a plain acknowledgement, not a page.
func (bc *BlogController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Blog not found", http.StatusNotFound)
		return
	}

	requester := bc.sessions.CurrentUser(r)
	if err := bc.blogService.DeletePost(requester, id); err != nil {
		switch apperror.KindOf(err) {
		case apperror.NotFound:
			http.Error(w, "Blog not found", http.StatusNotFound)
		case apperror.Forbidden:
			http.Error(w, "Not Authorized", http.StatusForbidden)
		default:
			bc.log.Error().Err(err).Int("post_id", id).Msg("failed to delete post")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	if err := bc.sessions.AddFlash(w, r, "success", "Blog deleted successfully"); err != nil {
		bc.log.Error().Err(err).Msg("failed to store flash")
	}
	w.Write([]byte("Success"))
}

// idParam extracts the numeric id route variable.
func idParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// pageParam extracts the optional page route variable; 0 means absent.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(mux.Vars(r)["page"])
	if err != nil || page < 1 {
		return 0
	}
	return page
}
