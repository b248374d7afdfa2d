package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/bookscoutapp/bookscout-server/internal/domain"
	"github.com/bookscoutapp/bookscout-server/internal/store"
)

// ExportFilename is the attachment name for the registry download.
const ExportFilename = "books-registry.csv"

// exportHeader fixes the CSV column order for the registry export.
var exportHeader = []string{
	"id", "title", "author", "rating", "tags", "created_at", "user_email", "user_name",
}

// AdminService serves the cross-user registry views.
type AdminService struct {
	store  store.Store
	logger *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(store store.Store, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:  store,
		logger: logger,
	}
}

// ListBooks returns every saved book with its owner attached, filtered
// and ordered per the options.
func (s *AdminService) ListBooks(ctx context.Context, opts store.BookListOptions) ([]*domain.AdminBook, error) {
	return s.store.ListAllBooks(ctx, opts)
}

// ListUsers returns every registered account.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx)
}

// ExportCSV streams the full registry as CSV. Rows are written as they
// come off the store, so the export never holds the whole registry in
// memory.
func (s *AdminService) ExportCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	var rows int
	for book, err := range s.store.StreamBooksWithOwners(ctx) {
		if err != nil {
			return fmt.Errorf("stream books: %w", err)
		}
		if err := cw.Write(exportRow(book)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
		rows++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	s.logger.Info("registry exported",
		"rows", rows,
	)
	return nil
}

func exportRow(b *domain.AdminBook) []string {
	return []string{
		strconv.FormatInt(b.ID, 10),
		b.Title,
		b.Author,
		strconv.Itoa(b.Rating),
		b.Tags,
		b.CreatedAt.UTC().Format(time.RFC3339),
		b.UserEmail,
		b.UserName,
	}
}
