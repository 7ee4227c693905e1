package routes

import (
	"net/http"
	"path/filepath"

	"inkwell/app/apperror"
	"inkwell/app/auth"
	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/repositories"
	"inkwell/app/services"
	"inkwell/config"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Setup wires the repositories, services and controllers over the given
// Badger DB and returns the router.
func Setup(db *badger.DB, cfg *config.Config, log zerolog.Logger) *mux.Router {
	return SetupWithPath(db, cfg, log, "")
}

// SetupWithPath is Setup with a custom base path for templates and static
// files, used by tests.
func SetupWithPath(db *badger.DB, cfg *config.Config, log zerolog.Logger, basePath string) *mux.Router {
	userRepo := repositories.NewBadgerUserRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)
	sessionRepo := repositories.NewBadgerSessionRepository(db)

	sessions := auth.NewManager(sessionRepo, userRepo, cfg.CookieName, cfg.SessionTTL)
	renderer := controllers.NewRenderer(basePath, sessions, cfg.IsDevelopment(), log)

	blogService := services.NewBlogService(postRepo, userRepo, cfg.PageSize)
	userService := services.NewUserService(userRepo, postRepo, cfg.PageSize)

	blogController := controllers.NewBlogController(blogService, sessions, renderer, log)
	userController := controllers.NewUserController(userService, sessions, renderer, log)

	router := mux.NewRouter()

	// Unmatched paths, including ids that fail the route patterns, get the
	// same rendered 404 page as absent records.
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		renderer.Error(w, r, apperror.NewNotFound("Page not found"))
	})

	// Apply global middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))

	// Serve static files
	staticDir := filepath.Join(basePath, "static")
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	router.HandleFunc("/", blogController.Home).Methods("GET")

	// Catalog routes
	catalog := router.PathPrefix("/catalog").Subrouter()
	catalog.HandleFunc("/blogs", blogController.List).Methods("GET")
	catalog.HandleFunc("/blogs/{page:[0-9]+}", blogController.List).Methods("GET")
	catalog.Handle("/blog/create", sessions.RequireAuth(http.HandlerFunc(blogController.New))).Methods("GET")
	catalog.Handle("/blog/create", sessions.RequireAuth(http.HandlerFunc(blogController.Create))).Methods("POST")
	catalog.HandleFunc("/blog/{id:[0-9]+}", blogController.Show).Methods("GET")
	catalog.Handle("/blog/{id:[0-9]+}/update", sessions.RequireAuth(http.HandlerFunc(blogController.Edit))).Methods("GET")
	catalog.Handle("/blog/{id:[0-9]+}/update", sessions.RequireAuth(http.HandlerFunc(blogController.Update))).Methods("POST")
	catalog.Handle("/blog/{id:[0-9]+}", sessions.RequireAuth(http.HandlerFunc(blogController.Delete))).Methods("DELETE")

	// User routes
	users := router.PathPrefix("/users").Subrouter()
	users.Handle("/register", sessions.RequireAnonymous(http.HandlerFunc(userController.RegisterForm))).Methods("GET")
	users.HandleFunc("/register", userController.Register).Methods("POST")
	users.Handle("/login", sessions.RequireAnonymous(http.HandlerFunc(userController.LoginForm))).Methods("GET")
	users.HandleFunc("/login", userController.Login).Methods("POST")
	users.HandleFunc("/logout", userController.Logout).Methods("GET")
	users.HandleFunc("/profile/{id:[0-9]+}", userController.Profile).Methods("GET")
	users.HandleFunc("/profile/{id:[0-9]+}/{page:[0-9]+}", userController.Profile).Methods("GET")

	return router
}
