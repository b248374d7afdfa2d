package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookscoutapp/bookscout-server/internal/catalog/googlebooks"
	"github.com/bookscoutapp/bookscout-server/internal/domain"
	"github.com/bookscoutapp/bookscout-server/internal/store"
	"github.com/bookscoutapp/bookscout-server/internal/tags"
)

// BookService manages a user's saved shelf.
type BookService struct {
	store   store.Store
	catalog *googlebooks.Client
	logger  *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, catalog *googlebooks.Client, logger *slog.Logger) *BookService {
	return &BookService{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// SaveBookRequest carries the review form for a new shelf entry.
type SaveBookRequest struct {
	GoogleBooksID string `json:"google_books_id"`
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author"`
	CoverURL      string `json:"cover_url"`
	Rating        int    `json:"rating" validate:"min=0,max=5"`
	Tags          string `json:"tags"`
	Notes         string `json:"notes"`
}

// UpdateBookRequest carries the editable fields of an existing entry.
// Title, author and cover stay as they were saved.
type UpdateBookRequest struct {
	Rating int    `json:"rating" validate:"min=0,max=5"`
	Tags   string `json:"tags"`
	Notes  string `json:"notes"`
}

// VolumeForReview fetches the catalog entry shown on the review form.
func (s *BookService) VolumeForReview(ctx context.Context, googleBooksID string) (*googlebooks.Volume, error) {
	vol, err := s.catalog.GetVolume(ctx, googleBooksID)
	if err != nil {
		return nil, fmt.Errorf("fetch volume: %w", err)
	}
	return vol, nil
}

// SaveBook adds a reviewed book to the user's shelf. Raw tag input is
// sanitized before it is stored.
func (s *BookService) SaveBook(ctx context.Context, userID string, req SaveBookRequest) (*domain.Book, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	book := &domain.Book{
		UserID:        userID,
		Title:         req.Title,
		Author:        req.Author,
		CoverURL:      req.CoverURL,
		GoogleBooksID: req.GoogleBooksID,
		Rating:        req.Rating,
		Notes:         req.Notes,
		Tags:          tags.SanitizeList(req.Tags),
	}
	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book saved",
		"user_id", userID,
		"book_id", book.ID,
		"title", book.Title,
	)
	return book, nil
}

// GetBook returns one of the user's own entries.
func (s *BookService) GetBook(ctx context.Context, userID string, bookID int64) (*domain.Book, error) {
	return s.store.GetBookForUser(ctx, bookID, userID)
}

// UpdateBook rewrites the rating, tags and notes of one of the user's
// own entries. A book owned by someone else reads as not found.
func (s *BookService) UpdateBook(ctx context.Context, userID string, bookID int64, req UpdateBookRequest) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	sanitized := tags.SanitizeList(req.Tags)
	if err := s.store.UpdateBook(ctx, bookID, userID, req.Rating, sanitized, req.Notes); err != nil {
		return err
	}

	s.logger.Info("book updated",
		"user_id", userID,
		"book_id", bookID,
	)
	return nil
}

// DeleteBook removes one of the user's own entries.
func (s *BookService) DeleteBook(ctx context.Context, userID string, bookID int64) error {
	if err := s.store.DeleteBook(ctx, bookID, userID); err != nil {
		return err
	}
	s.logger.Info("book deleted",
		"user_id", userID,
		"book_id", bookID,
	)
	return nil
}

// ListBooks returns the user's shelf, newest first.
func (s *BookService) ListBooks(ctx context.Context, userID string) ([]*domain.Book, error) {
	return s.store.ListBooksByUser(ctx, userID)
}
