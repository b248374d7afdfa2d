// Package tags implements tag normalization and the suggestion ranking
// used for the review form's tag picker.
package tags

import (
	"regexp"
	"strings"
)

var (
	// Matches anything that is not an ASCII letter or whitespace.
	nonLetterRe = regexp.MustCompile(`[^a-zA-Z\s]`)
	// Matches runs of whitespace (for collapsing to a single space).
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Sanitize converts one raw tag into its canonical display form.
//
// Normalization rules:
//  1. Remove everything that is not an ASCII letter or whitespace
//  2. Trim and collapse internal whitespace to single spaces
//  3. Title-case each word (first letter upper, remainder lower)
//
// Input that normalizes to nothing returns the empty string, which is
// never a valid stored tag; callers must discard it.
//
// Examples:
//
//	"  adventure  " → "Adventure"
//	"sci-fi"        → "Scifi"
//	"wild robot"    → "Wild Robot"
//	"funny123"      → "Funny"
//	"!!123!!"       → ""
func Sanitize(raw string) string {
	s := nonLetterRe.ReplaceAllString(raw, "")
	s = strings.TrimSpace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	if s == "" {
		return ""
	}

	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// SanitizeList sanitizes a raw comma-separated tag input into the
// canonical comma-joined form stored on a book. Pieces that normalize to
// nothing are dropped; the rest keep their input order. Duplicates are
// kept verbatim if the user supplied them twice.
func SanitizeList(raw string) string {
	if raw == "" {
		return ""
	}
	var out []string
	for _, piece := range strings.Split(raw, ",") {
		if t := Sanitize(piece); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ",")
}
