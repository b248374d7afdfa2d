package api

import (
	"net/http"

	"github.com/bookscoutapp/bookscout-server/internal/domain"
	"github.com/bookscoutapp/bookscout-server/internal/http/response"
	"github.com/bookscoutapp/bookscout-server/internal/service"
	"github.com/bookscoutapp/bookscout-server/internal/store"
)

// handleHealthCheck returns server health status.
// GET /health
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}

// handleAdminHome lands on the books registry.
// GET /admin
func (s *Server) handleAdminHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/books", http.StatusSeeOther)
}

// adminBooksData contains data for the registry page template.
type adminBooksData struct {
	User         *domain.User
	Books        []*domain.AdminBook
	AllUsers     []*domain.User
	Filter       string
	SelectedUser string
	Sort         string
	Order        string
	CurrentPath  string
}

// handleAdminBooks serves the cross-user registry with filtering and
// sorting driven by query parameters. Unrecognized sort input falls
// back to the default ordering.
// GET /admin/books?filter=...&user=...&sort=...&order=...
func (s *Server) handleAdminBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	opts := store.BookListOptions{
		Filter: q.Get("filter"),
		UserID: q.Get("user"),
	}
	opts.SetSort(q.Get("sort"), q.Get("order"))

	books, err := s.adminService.ListBooks(ctx, opts)
	if err != nil {
		s.logger.Error("Failed to list registry", "error", err)
		http.Error(w, "Error fetching books", http.StatusInternalServerError)
		return
	}

	// Users feed the owner filter dropdown.
	allUsers, err := s.adminService.ListUsers(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", "error", err)
		http.Error(w, "Error fetching users", http.StatusInternalServerError)
		return
	}

	field, order := opts.NormalizedSort()
	s.renderPage(w, "admin_books.html", adminBooksData{
		User:         currentUser(ctx),
		Books:        books,
		AllUsers:     allUsers,
		Filter:       opts.Filter,
		SelectedUser: opts.UserID,
		Sort:         field,
		Order:        order,
		CurrentPath:  "/admin/books",
	})
}

// handleAdminExport streams the registry as a CSV attachment.
// GET /admin/books/export
func (s *Server) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.ExportFilename+`"`)

	if err := s.adminService.ExportCSV(r.Context(), w); err != nil {
		// Headers may already be out; log and cut the stream.
		s.logger.Error("CSV export failed", "error", err)
	}
}

// adminUsersData contains data for the users page template.
type adminUsersData struct {
	User        *domain.User
	Users       []*domain.User
	CurrentPath string
}

// handleAdminUsers serves the registered accounts page.
// GET /admin/users
func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.adminService.ListUsers(r.Context())
	if err != nil {
		s.logger.Error("Failed to list users", "error", err)
		http.Error(w, "Error fetching users", http.StatusInternalServerError)
		return
	}

	s.renderPage(w, "admin_users.html", adminUsersData{
		User:        currentUser(r.Context()),
		Users:       users,
		CurrentPath: "/admin/users",
	})
}

// adminSettingsData contains data for the settings page template.
type adminSettingsData struct {
	User              *domain.User
	AllowRegistration bool
	AdminEmail        string
	CurrentPath       string
}

// handleAdminSettings shows the effective access-control configuration.
// GET /admin/settings
func (s *Server) handleAdminSettings(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "admin_settings.html", adminSettingsData{
		User:              currentUser(r.Context()),
		AllowRegistration: s.cfg.Admin.AllowRegistration,
		AdminEmail:        s.cfg.Admin.AdminEmail,
		CurrentPath:       "/admin/settings",
	})
}
