package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bookscoutapp/bookscout-server/internal/domain"
	"github.com/bookscoutapp/bookscout-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, user_id, title, author, cover_url, google_books_id, rating, notes, tags, created_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book
	var createdAt string

	err := scanner.Scan(
		&b.ID,
		&b.UserID,
		&b.Title,
		&b.Author,
		&b.CoverURL,
		&b.GoogleBooksID,
		&b.Rating,
		&b.Notes,
		&b.Tags,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBook inserts a new book for its owner and fills in the assigned
// ID and creation timestamp.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO books (user_id, title, author, cover_url, google_books_id, rating, notes, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.UserID, book.Title, book.Author, book.CoverURL, book.GoogleBooksID,
		book.Rating, book.Notes, book.Tags, formatTime(book.CreatedAt))
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	book.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create book id: %w", err)
	}
	return nil
}

// GetBookForUser returns the book only if it belongs to the given user.
// A miss never reveals whether the ID exists under another owner.
func (s *Store) GetBookForUser(ctx context.Context, id int64, userID string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ? AND user_id = ?`, id, userID)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

// UpdateBook updates the owner-editable fields of a book. Zero affected
// rows means missing or not owned, reported identically.
func (s *Store) UpdateBook(ctx context.Context, id int64, userID string, rating int, tags, notes string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE books SET rating = ?, tags = ?, notes = ?
		WHERE id = ? AND user_id = ?`,
		rating, tags, notes, id, userID)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book rows: %w", err)
	}
	if n == 0 {
		return store.ErrBookNotFound
	}
	return nil
}

// DeleteBook removes a book if owned by the given user.
func (s *Store) DeleteBook(ctx context.Context, id int64, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM books WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book rows: %w", err)
	}
	if n == 0 {
		return store.ErrBookNotFound
	}
	return nil
}

// ListBooksByUser returns a user's shelf, newest first.
func (s *Store) ListBooksByUser(ctx context.Context, userID string) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// ListTagStrings returns the raw tag column of every book the user owns,
// for suggestion ranking. Rows with no tags are skipped.
func (s *Store) ListTagStrings(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tags FROM books WHERE user_id = ? AND tags != ''`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tag strings: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, fmt.Errorf("scan tags: %w", err)
		}
		out = append(out, tags)
	}
	return out, rows.Err()
}
