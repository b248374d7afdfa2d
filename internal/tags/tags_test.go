package tags

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase word", "adventure", "Adventure"},
		{"uppercase word", "SCARY", "Scary"},
		{"mixed case", "fAnTaSy", "Fantasy"},
		{"two words", "wild robot", "Wild Robot"},
		{"already canonical", "Outer Space", "Outer Space"},

		// Whitespace handling
		{"trim whitespace", "  adventure  ", "Adventure"},
		{"collapse internal runs", "outer    space", "Outer Space"},
		{"tabs between words", "outer\tspace", "Outer Space"},

		// Non-letter removal
		{"punctuation stripped", "sci-fi", "Scifi"},
		{"digits inside word", "funny123", "Funny"},
		{"wrapped in symbols", "!!Cool!!", "Cool"},
		{"apostrophe", "don't", "Dont"},
		{"emoji", "🐉 dragons", "Dragons"},

		// Empty results
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"only digits", "12345", ""},
		{"digits and punctuation", "1-2-3!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sanitize(tt.input)
			if result != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"adventure", "  wild   robot ", "sci-fi", "funny123", "!!Cool!!",
		"Outer Space", "a b c d", "ALLCAPS", "",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestSanitizeList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"single tag", "funny", "Funny"},
		{"two tags with spaces", "funny, Scary ", "Funny,Scary"},
		{"empties dropped", "funny,,123,scary", "Funny,Scary"},
		{"order preserved", "zebra, apple", "Zebra,Apple"},
		{"duplicates preserved", "funny,Funny", "Funny,Funny"},
		{"all invalid", "123, !!, 456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeList(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeList(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
