package tags

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Rank merges a user's historical tag usage with the built-in vocabulary
// and returns one ranked list of distinct tag names.
//
// stored is the raw tag column of every book the user owns, each a
// comma-joined string as produced by SanitizeList. Occurrences are
// counted per distinct tag value across all entries; catalog terms the
// user never applied get an implicit count of zero but still appear.
//
// Ordering is by count descending, ties broken by locale-aware name
// comparison ascending, so a tag used even once outranks every unused
// catalog term.
func Rank(stored []string) []string {
	counts := make(map[string]int)
	for _, row := range stored {
		if row == "" {
			continue
		}
		for _, tag := range strings.Split(row, ",") {
			if t := strings.TrimSpace(tag); t != "" {
				counts[t]++
			}
		}
	}

	// Union of observed values and the full catalog.
	seen := make(map[string]bool, len(counts)+len(Suggested))
	union := make([]string, 0, len(counts)+len(Suggested))
	for t := range counts {
		if !seen[t] {
			seen[t] = true
			union = append(union, t)
		}
	}
	for _, t := range Suggested {
		if !seen[t] {
			seen[t] = true
			union = append(union, t)
		}
	}

	c := collate.New(language.English)
	sort.Slice(union, func(i, j int) bool {
		a, b := union[i], union[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return c.CompareString(a, b) < 0
	})

	return union
}
