// Package api provides the HTTP server and handlers for the BookScout application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/oauth2"

	"github.com/bookscoutapp/bookscout-server/internal/config"
	"github.com/bookscoutapp/bookscout-server/internal/service"
)

// googleEndpoint is the OAuth2 endpoint for Google sign-in.
var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// googleUserinfoURL returns the signed-in identity for an access token.
const googleUserinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Server holds dependencies for HTTP handlers.
type Server struct {
	cfg           *config.Config
	authService   *service.AuthService
	bookService   *service.BookService
	tagService    *service.TagService
	searchService *service.SearchService
	adminService  *service.AdminService
	oauth         *oauth2.Config
	userinfoURL   string
	router        *chi.Mux
	logger        *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, authService *service.AuthService, bookService *service.BookService, tagService *service.TagService, searchService *service.SearchService, adminService *service.AdminService, logger *slog.Logger) *Server {
	s := &Server{
		cfg:           cfg,
		authService:   authService,
		bookService:   bookService,
		tagService:    tagService,
		searchService: searchService,
		adminService:  adminService,
		oauth: &oauth2.Config{
			ClientID:     cfg.Auth.GoogleClientID,
			ClientSecret: cfg.Auth.GoogleClientSecret,
			RedirectURL:  cfg.Server.BaseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     googleEndpoint,
		},
		userinfoURL: googleUserinfoURL,
		router:      chi.NewRouter(),
		logger:      logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.cfg.Server.BaseURL},
		AllowedMethods:   []string{"GET", "POST"},
		AllowCredentials: true,
	}))
	s.router.Use(s.withSession)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// Public pages.
	s.router.Get("/", s.handleLanding)
	s.router.Get("/search", s.handleSearch)

	// Tag suggestions degrade to the stock catalog for anonymous callers.
	s.router.Get("/books/tags", s.handleSuggestedTags)

	// Auth.
	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/google", s.handleGoogleSignIn)
		r.Get("/google/callback", s.handleGoogleCallback)
		r.Get("/dev", s.handleDevSignIn)
	})
	s.router.Get("/logout", s.handleLogout)

	// Signed-in pages.
	s.router.Group(func(r chi.Router) {
		r.Use(s.requireUser)
		r.Get("/dashboard", s.handleDashboard)

		r.Route("/books", func(r chi.Router) {
			r.Get("/review/{googleID}", s.handleReviewForm)
			r.With(s.requireCSRF).Post("/", s.handleSaveBook)
			r.Get("/{id}/edit", s.handleEditForm)
			r.With(s.requireCSRF).Post("/{id}/edit", s.handleUpdateBook)
			r.With(s.requireCSRF).Post("/{id}/delete", s.handleDeleteBook)
		})
	})

	// Admin surface.
	s.router.Route("/admin", func(r chi.Router) {
		r.Use(s.requireUser)
		r.Use(s.requireAdmin)
		r.Get("/", s.handleAdminHome)
		r.Get("/books", s.handleAdminBooks)
		r.Get("/books/export", s.handleAdminExport)
		r.Get("/users", s.handleAdminUsers)
		r.Get("/settings", s.handleAdminSettings)
	})
}
