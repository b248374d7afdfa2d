package tags

// Suggested is the built-in tag vocabulary always offered in the review
// form's tag picker. Process-wide constant; never mutated at runtime.
var Suggested = []string{
	"Adventure", "Funny", "Scary", "Animals", "Friendship",
	"Family", "School", "Fantasy", "Magic", "Mystery",
	"Nature", "Science", "History", "Sports", "Biography",
	"Comics", "Fairytale", "Superhero", "Outer Space", "Robots",
}

// SuggestedCatalog returns a copy of the built-in vocabulary so callers
// can't mutate the shared slice.
func SuggestedCatalog() []string {
	out := make([]string, len(Suggested))
	copy(out, Suggested)
	return out
}
