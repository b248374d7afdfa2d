package domain

import (
	"strings"
	"time"
)

// Book is one saved catalog item on a user's shelf, with a personal
// rating, free-text notes, and a comma-joined string of canonical tags.
//
// Tags keeps insertion order from sanitization; it is not re-sorted and
// not de-duplicated at this layer.
type Book struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	CoverURL      string    `json:"cover_url"`
	GoogleBooksID string    `json:"google_books_id"`
	Rating        int       `json:"rating"`
	Notes         string    `json:"notes"`
	Tags          string    `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
}

// TagList splits the comma-joined tag string into its individual tags.
// Returns nil for an empty string.
func (b *Book) TagList() []string {
	if b.Tags == "" {
		return nil
	}
	return strings.Split(b.Tags, ",")
}

// AdminBook is a book joined with its owner's identity, as shown on the
// admin registry and in CSV exports.
type AdminBook struct {
	Book
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}
