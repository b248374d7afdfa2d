package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bookscoutapp/bookscout-server/internal/domain"
	"github.com/bookscoutapp/bookscout-server/internal/store"
)

// adminBookColumns joins every book with its owner's identity. Owners
// are LEFT JOINed so an orphaned row (never produced by this server,
// but possible in hand-edited databases) still exports.
const adminBookColumns = `books.id, books.user_id, books.title, books.author, books.cover_url,
	books.google_books_id, books.rating, books.notes, books.tags, books.created_at,
	users.email, users.name`

// scanAdminBook scans a joined row into a domain.AdminBook.
func scanAdminBook(scanner interface{ Scan(dest ...any) error }) (*domain.AdminBook, error) {
	var ab domain.AdminBook
	var createdAt string
	var email, name sql.NullString

	err := scanner.Scan(
		&ab.ID,
		&ab.UserID,
		&ab.Title,
		&ab.Author,
		&ab.CoverURL,
		&ab.GoogleBooksID,
		&ab.Rating,
		&ab.Notes,
		&ab.Tags,
		&createdAt,
		&email,
		&name,
	)
	if err != nil {
		return nil, err
	}

	ab.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		ab.UserEmail = email.String
	}
	if name.Valid {
		ab.UserName = name.String
	}
	return &ab, nil
}

// buildBookListQuery assembles the admin listing query. Filter and
// owner values are always bound as parameters; the sort field and
// direction come from the allow-list via NormalizedSort, so no
// user-supplied text ever lands in the query string.
func buildBookListQuery(opts store.BookListOptions) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + adminBookColumns + `
		FROM books
		LEFT JOIN users ON books.user_id = users.id`)

	var conditions []string
	var args []any

	if opts.Filter != "" {
		// LIKE is ASCII case-insensitive in SQLite by default.
		conditions = append(conditions,
			`(books.title LIKE ? OR books.author LIKE ? OR users.email LIKE ?)`)
		wildcard := "%" + opts.Filter + "%"
		args = append(args, wildcard, wildcard, wildcard)
	}

	if opts.UserID != "" {
		conditions = append(conditions, `books.user_id = ?`)
		args = append(args, opts.UserID)
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	field, order := opts.NormalizedSort()
	fmt.Fprintf(&sb, " ORDER BY books.%s %s", field, order)

	return sb.String(), args
}

// ListAllBooks returns every user's books for the admin registry,
// filtered and sorted per opts.
func (s *Store) ListAllBooks(ctx context.Context, opts store.BookListOptions) ([]*domain.AdminBook, error) {
	query, args := buildBookListQuery(opts)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list all books: %w", err)
	}
	defer rows.Close()

	var books []*domain.AdminBook
	for rows.Next() {
		ab, err := scanAdminBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin book: %w", err)
		}
		books = append(books, ab)
	}
	return books, rows.Err()
}
