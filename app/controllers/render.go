package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"

	"inkwell/app/apperror"
	"inkwell/app/auth"
	"inkwell/app/models"

	"github.com/rs/zerolog"
)

// ViewData is the explicit per-request payload handed to the render layer.
// Nothing is injected through process-wide state: every page gets its
// identity, flash messages and content through this struct.
type ViewData struct {
	Title       string
	CurrentUser *models.User
	Flash       []models.Flash
	Content     interface{}
}

// Renderer executes the page templates and maps application errors to
// user-visible outcomes.
type Renderer struct {
	templates map[string]*template.Template
	sessions  *auth.Manager
	devMode   bool
	log       zerolog.Logger
}

// NewRenderer loads and parses all templates under basePath.
func NewRenderer(basePath string, sessions *auth.Manager, devMode bool, log zerolog.Logger) *Renderer {
	return &Renderer{
		templates: loadTemplates(basePath),
		sessions:  sessions,
		devMode:   devMode,
		log:       log,
	}
}

// loadTemplates loads and parses all templates
func loadTemplates(basePath string) map[string]*template.Template {
	pages := map[string][]string{
		"index":        nil,
		"blog_list":    nil,
		"blog_detail":  nil,
		"blog_create":  {"shared/post_form.html"},
		"blog_update":  {"shared/post_form.html"},
		"register":     nil,
		"login":        nil,
		"user_profile": nil,
		"error":        nil,
	}

	funcs := template.FuncMap{
		"inc": func(n int) int { return n + 1 },
		"dec": func(n int) int { return n - 1 },
	}

	templates := make(map[string]*template.Template)
	layout := filepath.Join(basePath, "app/views/layout.html")
	for page, shared := range pages {
		files := []string{layout, filepath.Join(basePath, "app/views/"+page+".html")}
		for _, extra := range shared {
			files = append(files, filepath.Join(basePath, "app/views/"+extra))
		}
		templates[page] = template.Must(template.New("layout.html").Funcs(funcs).ParseFiles(files...))
	}
	return templates
}

// Render executes the named page inside the layout, filling in the
// requester's identity and pending flash messages.
func (re *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data *ViewData) {
	re.RenderStatus(w, r, name, data, http.StatusOK)
}

// RenderStatus is Render with an explicit response status.
func (re *Renderer) RenderStatus(w http.ResponseWriter, r *http.Request, name string, data *ViewData, status int) {
	if data == nil {
		data = &ViewData{}
	}
	if data.CurrentUser == nil {
		data.CurrentUser = re.sessions.CurrentUser(r)
	}
	if data.Flash == nil {
		data.Flash = re.sessions.ConsumeFlash(r)
	}

	tmpl, ok := re.templates[name]
	if !ok {
		re.log.Error().Str("template", name).Msg("unknown template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		re.log.Error().Err(err).Str("template", name).Msg("template execution failed")
	}
}

// errorContent is what the error page shows.
type errorContent struct {
	Status  int
	Message string
	Detail  string
}

// Error maps an application error to its user-visible outcome: 404 page,
// login redirect with a flash, home redirect with a flash, or a generic
// server error page. Validation errors are handled at the form call sites,
// not here.
func (re *Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	switch apperror.KindOf(err) {
	case apperror.NotFound:
		re.RenderStatus(w, r, "error", &ViewData{
			Title:   "Not Found",
			Content: errorContent{Status: http.StatusNotFound, Message: "Page not found"},
		}, http.StatusNotFound)
	case apperror.Unauthorized:
		re.flashRedirect(w, r, "danger", errMessage(err), "/users/login")
	case apperror.Forbidden:
		re.flashRedirect(w, r, "danger", errMessage(err), "/")
	default:
		re.log.Error().Err(err).Str("path", r.URL.Path).Msg("server error")
		content := errorContent{Status: http.StatusInternalServerError, Message: "Something went wrong"}
		if re.devMode {
			content.Detail = err.Error()
		}
		re.RenderStatus(w, r, "error", &ViewData{
			Title:   "Server Error",
			Content: content,
		}, http.StatusInternalServerError)
	}
}

// flashRedirect queues a notice and redirects.
func (re *Renderer) flashRedirect(w http.ResponseWriter, r *http.Request, category, message, target string) {
	if err := re.sessions.AddFlash(w, r, category, message); err != nil {
		re.log.Error().Err(err).Msg("failed to store flash")
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// errMessage extracts the display message of an application error.
func errMessage(err error) string {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Request denied"
}
