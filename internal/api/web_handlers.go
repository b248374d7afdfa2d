package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/bookscoutapp/bookscout-server/internal/domain"
	"github.com/bookscoutapp/bookscout-server/internal/http/response"
)

//go:embed templates/*.html
var templates embed.FS

// renderPage executes a page template inside the shared layout.
func (s *Server) renderPage(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.ParseFS(templates, "templates/layout.html", "templates/"+name)
	if err != nil {
		s.logger.Error("Failed to parse template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.Error("Failed to execute template", "template", name, "error", err)
	}
}

// renderPartial executes a standalone fragment template.
func (s *Server) renderPartial(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.ParseFS(templates, "templates/"+name)
	if err != nil {
		s.logger.Error("Failed to parse template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("Failed to execute template", "template", name, "error", err)
	}
}

// landingData contains data for the landing page template.
type landingData struct {
	User  *domain.User
	Error string
}

// handleLanding serves the sign-in landing page. Sign-in failures come
// back here with an error flag in the query string.
// GET /
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "index.html", landingData{
		User:  currentUser(r.Context()),
		Error: r.URL.Query().Get("error"),
	})
}

// dashboardData contains data for the dashboard template.
type dashboardData struct {
	User      *domain.User
	Books     []*domain.Book
	CSRFToken string
}

// handleDashboard serves the signed-in shelf page.
// GET /dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	books, err := s.bookService.ListBooks(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to list books", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := dashboardData{User: user, Books: books}
	if sess := currentSession(ctx); sess != nil {
		data.CSRFToken = sess.CSRFToken
	}
	s.renderPage(w, "dashboard.html", data)
}

// handleSearch serves the search-results fragment for the live search
// box. Queries under the minimum length render nothing.
// GET /search?q=...
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.searchService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.logger.Error("Catalog search failed", "error", err)
		response.InternalError(w, "Search failed", s.logger)
		return
	}
	if len(results) == 0 {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		return
	}

	s.renderPartial(w, "search_results.html", results)
}

// handleSuggestedTags returns the ranked tag vocabulary as JSON for the
// review form's tag picker.
// GET /books/tags
func (s *Server) handleSuggestedTags(w http.ResponseWriter, r *http.Request) {
	var userID string
	if user := currentUser(r.Context()); user != nil {
		userID = user.ID
	}

	tags, err := s.tagService.SuggestedTags(r.Context(), userID)
	if err != nil {
		s.logger.Error("Failed to fetch tags", "error", err)
		response.InternalError(w, "Failed to fetch tags", s.logger)
		return
	}

	response.Raw(w, http.StatusOK, tags, s.logger)
}
