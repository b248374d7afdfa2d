package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookscoutapp/bookscout-server/internal/domain"
	domainerrors "github.com/bookscoutapp/bookscout-server/internal/errors"
	"github.com/bookscoutapp/bookscout-server/internal/http/response"
	"github.com/bookscoutapp/bookscout-server/internal/service"
	"github.com/bookscoutapp/bookscout-server/internal/store"
)

// reviewData contains data for the review form template.
type reviewData struct {
	User      *domain.User
	CSRFToken string
	IsEdit    bool
	BookID    int64

	GoogleBooksID string
	Title         string
	Author        string
	CoverURL      string
	Rating        int
	Tags          string
	Notes         string
}

// handleReviewForm shows the save form for a freshly searched volume.
// The volume is re-fetched from the catalog so the form carries
// canonical title, author and cover.
// GET /books/review/{googleID}
func (s *Server) handleReviewForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vol, err := s.bookService.VolumeForReview(ctx, chi.URLParam(r, "googleID"))
	if err != nil {
		s.logger.Error("Failed to load volume for review", "error", err)
		http.Error(w, "Error loading book details", http.StatusInternalServerError)
		return
	}

	s.renderPage(w, "review.html", reviewData{
		User:          currentUser(ctx),
		CSRFToken:     currentSession(ctx).CSRFToken,
		GoogleBooksID: vol.ID,
		Title:         vol.Title,
		Author:        vol.Author,
		CoverURL:      vol.CoverURL,
	})
}

// handleSaveBook saves a reviewed book to the user's shelf.
// POST /books
func (s *Server) handleSaveBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	rating, _ := strconv.Atoi(r.FormValue("rating"))
	_, err := s.bookService.SaveBook(ctx, user.ID, service.SaveBookRequest{
		GoogleBooksID: r.FormValue("google_books_id"),
		Title:         r.FormValue("title"),
		Author:        r.FormValue("author"),
		CoverURL:      r.FormValue("cover_url"),
		Rating:        rating,
		Tags:          r.FormValue("tags"),
		Notes:         r.FormValue("notes"),
	})
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrValidation) {
			response.HandleError(w, err, s.logger)
			return
		}
		s.logger.Error("Failed to save book", "error", err)
		http.Error(w, "Error saving book", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleEditForm shows the review form pre-filled from a saved entry.
// GET /books/{id}/edit
func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	bookID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid book ID", s.logger)
		return
	}

	book, err := s.bookService.GetBook(ctx, user.ID, bookID)
	if err != nil {
		if domainerrors.Is(err, store.ErrBookNotFound) {
			response.NotFound(w, "Book not found", s.logger)
			return
		}
		s.logger.Error("Failed to load book", "error", err)
		http.Error(w, "Error loading book", http.StatusInternalServerError)
		return
	}

	s.renderPage(w, "review.html", reviewData{
		User:          user,
		CSRFToken:     currentSession(ctx).CSRFToken,
		IsEdit:        true,
		BookID:        book.ID,
		GoogleBooksID: book.GoogleBooksID,
		Title:         book.Title,
		Author:        book.Author,
		CoverURL:      book.CoverURL,
		Rating:        book.Rating,
		Tags:          book.Tags,
		Notes:         book.Notes,
	})
}

// handleUpdateBook rewrites rating, tags and notes of a saved entry.
// POST /books/{id}/edit
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	bookID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid book ID", s.logger)
		return
	}

	rating, _ := strconv.Atoi(r.FormValue("rating"))
	err = s.bookService.UpdateBook(ctx, user.ID, bookID, service.UpdateBookRequest{
		Rating: rating,
		Tags:   r.FormValue("tags"),
		Notes:  r.FormValue("notes"),
	})
	if err != nil {
		if domainerrors.Is(err, store.ErrBookNotFound) {
			response.NotFound(w, "Book not found", s.logger)
			return
		}
		if domainerrors.Is(err, domainerrors.ErrValidation) {
			response.HandleError(w, err, s.logger)
			return
		}
		s.logger.Error("Failed to update book", "error", err)
		http.Error(w, "Error updating book", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleDeleteBook removes a saved entry.
// POST /books/{id}/delete
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	bookID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid book ID", s.logger)
		return
	}

	if err := s.bookService.DeleteBook(ctx, user.ID, bookID); err != nil {
		if domainerrors.Is(err, store.ErrBookNotFound) {
			response.NotFound(w, "Book not found", s.logger)
			return
		}
		s.logger.Error("Failed to delete book", "error", err)
		http.Error(w, "Error deleting book", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
