package store

import "strings"

// Sort fields accepted by the admin registry. Anything else silently
// falls back to DefaultSortField; user input never reaches the query
// text unvalidated.
const (
	SortTitle     = "title"
	SortAuthor    = "author"
	SortCreatedAt = "created_at"
	SortRating    = "rating"

	DefaultSortField = SortCreatedAt
)

// Sort directions.
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"

	DefaultSortOrder = OrderDesc
)

// ValidSortFields lists the sortable columns in display order, for the
// admin view's column headers.
var ValidSortFields = []string{SortTitle, SortAuthor, SortCreatedAt, SortRating}

// BookListOptions describes an admin listing over all users' books.
// The zero value lists everything, newest first.
type BookListOptions struct {
	// Filter matches case-insensitively against book title, book author,
	// or owner email (OR across the three).
	Filter string
	// UserID restricts results to one owner (exact match, AND with Filter).
	UserID string
	// SortField must be one of ValidSortFields; set via SetSort.
	SortField string
	// SortOrder is OrderAsc or OrderDesc; set via SetSort.
	SortOrder string
}

// SetSort normalizes user-supplied sort parameters against the
// allow-lists. Unrecognized values fall back to the defaults rather
// than erroring; the raw input is discarded.
func (o *BookListOptions) SetSort(field, order string) {
	o.SortField = DefaultSortField
	for _, valid := range ValidSortFields {
		if field == valid {
			o.SortField = field
			break
		}
	}

	switch strings.ToLower(order) {
	case "asc":
		o.SortOrder = OrderAsc
	case "desc":
		o.SortOrder = OrderDesc
	default:
		o.SortOrder = DefaultSortOrder
	}
}

// NormalizedSort returns the effective sort field and order. Values
// outside the allow-lists (or unset) map to the defaults, so query
// builders can place the result directly into SQL text.
func (o *BookListOptions) NormalizedSort() (field, order string) {
	field, order = DefaultSortField, DefaultSortOrder
	for _, valid := range ValidSortFields {
		if o.SortField == valid {
			field = o.SortField
			break
		}
	}
	if o.SortOrder == OrderAsc || o.SortOrder == OrderDesc {
		order = o.SortOrder
	}
	return field, order
}
