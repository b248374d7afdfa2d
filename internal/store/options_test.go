package store

import "testing"

func TestSetSort(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		order     string
		wantField string
		wantOrder string
	}{
		{"valid title asc", "title", "asc", SortTitle, OrderAsc},
		{"valid rating desc", "rating", "desc", SortRating, OrderDesc},
		{"order case insensitive", "author", "ASC", SortAuthor, OrderAsc},
		{"unknown field falls back", "id; DROP TABLE books", "asc", DefaultSortField, OrderAsc},
		{"unknown order falls back", "title", "sideways", SortTitle, DefaultSortOrder},
		{"both empty", "", "", DefaultSortField, DefaultSortOrder},
		{"field is case sensitive", "Title", "desc", DefaultSortField, OrderDesc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts BookListOptions
			opts.SetSort(tt.field, tt.order)
			if opts.SortField != tt.wantField {
				t.Errorf("SortField: got %q, want %q", opts.SortField, tt.wantField)
			}
			if opts.SortOrder != tt.wantOrder {
				t.Errorf("SortOrder: got %q, want %q", opts.SortOrder, tt.wantOrder)
			}
		})
	}
}

func TestNormalizedSort_ZeroValue(t *testing.T) {
	var opts BookListOptions
	field, order := opts.NormalizedSort()
	if field != DefaultSortField || order != DefaultSortOrder {
		t.Errorf("zero value: got (%q, %q), want (%q, %q)", field, order, DefaultSortField, DefaultSortOrder)
	}
}

func TestNormalizedSort_RejectsRawInput(t *testing.T) {
	// Anything placed into SortField/SortOrder directly (bypassing
	// SetSort) must still be validated before reaching query text.
	opts := BookListOptions{SortField: "1=1; --", SortOrder: "UNION"}
	field, order := opts.NormalizedSort()
	if field != DefaultSortField {
		t.Errorf("field: got %q, want %q", field, DefaultSortField)
	}
	if order != DefaultSortOrder {
		t.Errorf("order: got %q, want %q", order, DefaultSortOrder)
	}
}
