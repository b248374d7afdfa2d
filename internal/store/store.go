// Package store defines the persistence interface for the BookScout server.
package store

import (
	"context"
	"errors"
	"iter"

	"github.com/bookscoutapp/bookscout-server/internal/domain"
)

// Sentinel errors returned by implementations.
var (
	// ErrUserNotFound is returned when no account exists for a subject ID.
	ErrUserNotFound = errors.New("user not found")
	// ErrBookNotFound is returned for a missing book or an ownership
	// mismatch. The two cases are deliberately indistinguishable so the
	// API never leaks whether a foreign ID exists.
	ErrBookNotFound = errors.New("book not found")
	// ErrSessionNotFound is returned for unknown or expired sessions.
	ErrSessionNotFound = errors.New("session not found")
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	UpsertUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UserExists(ctx context.Context, id string) (bool, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// Books
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBookForUser(ctx context.Context, id int64, userID string) (*domain.Book, error)
	UpdateBook(ctx context.Context, id int64, userID string, rating int, tags, notes string) error
	DeleteBook(ctx context.Context, id int64, userID string) error
	ListBooksByUser(ctx context.Context, userID string) ([]*domain.Book, error)
	ListTagStrings(ctx context.Context, userID string) ([]string, error)

	// Admin listing and export
	ListAllBooks(ctx context.Context, opts BookListOptions) ([]*domain.AdminBook, error)
	StreamBooksWithOwners(ctx context.Context) iter.Seq2[*domain.AdminBook, error]

	// Sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	TouchSession(ctx context.Context, id string) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)
}
