package controllers

import (
	"net/http"

	"inkwell/app/apperror"
	"inkwell/app/auth"
	"inkwell/app/forms"
	"inkwell/app/services"

	"github.com/rs/zerolog"
)

// UserController handles HTTP requests for accounts and profiles
type UserController struct {
	userService *services.UserService
	sessions    *auth.Manager
	renderer    *Renderer
	log         zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, sessions *auth.Manager, renderer *Renderer, log zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		sessions:    sessions,
		renderer:    renderer,
		log:         log,
	}
}

// registerContent carries a registration re-render.
type registerContent struct {
	Register *forms.RegisterForm
	Errors   []apperror.FieldError
}

// loginContent carries a login re-render.
type loginContent struct {
	Login  *forms.LoginForm
	Errors []apperror.FieldError
}

// RegisterForm displays the registration form
func (uc *UserController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	uc.renderer.Render(w, r, "register", &ViewData{
		Title:   "Sign up",
		Content: registerContent{Register: &forms.RegisterForm{}},
	})
}

// Register processes the registration form. Validation failures, including
// a duplicate email or username, re-render the form with per-field messages
// and the submitted values preserved (passwords excluded).
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseRegister(r)

	_, err := uc.userService.Register(form)
	if apperror.KindOf(err) == apperror.Validation {
		form.Password = ""
		form.Password2 = ""
		uc.renderer.RenderStatus(w, r, "register", &ViewData{
			Title:   "Sign up",
			Content: registerContent{Register: form, Errors: apperror.FieldsOf(err)},
		}, http.StatusBadRequest)
		return
	}
	if err != nil {
		uc.renderer.Error(w, r, err)
		return
	}

	uc.renderer.flashRedirect(w, r, "success", "Successfully registered as a new user", "/")
}

// LoginForm displays the login form
func (uc *UserController) LoginForm(w http.ResponseWriter, r *http.Request) {
	uc.renderer.Render(w, r, "login", &ViewData{
		Title:   "Login",
		Content: loginContent{Login: &forms.LoginForm{}},
	})
}

// Login processes the login form. A failed attempt, whatever the reason,
// redirects back to the form with the same notice.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseLogin(r)

	user, err := uc.userService.Authenticate(form)
	if err != nil {
		switch apperror.KindOf(err) {
		case apperror.Validation, apperror.Unauthorized:
			uc.renderer.flashRedirect(w, r, "danger", "Invalid email or password", "/users/login")
		default:
			uc.renderer.Error(w, r, err)
		}
		return
	}

	if err := uc.sessions.Login(w, r, user); err != nil {
		uc.renderer.Error(w, r, apperror.NewStore("failed to create session", err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := uc.sessions.Logout(w, r); err != nil {
		uc.log.Error().Err(err).Msg("failed to destroy session")
	}
	uc.renderer.flashRedirect(w, r, "success", "Logged out successfully", "/")
}

// Profile displays a user's posts, scoped to what the requester may see
func (uc *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		uc.renderer.Error(w, r, apperror.NewNotFound("User not found"))
		return
	}

	requester := uc.sessions.CurrentUser(r)
	data, err := uc.userService.Profile(requester, id, pageParam(r))
	if err != nil {
		uc.renderer.Error(w, r, err)
		return
	}

	uc.renderer.Render(w, r, "user_profile", &ViewData{
		Title:       "All blogs by " + data.Author.Username,
		CurrentUser: requester,
		Content:     data,
	})
}
