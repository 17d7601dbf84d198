package domain

import "strings"

// SearchQuery carries the name tokens for one lookup. It is ephemeral and
// scoped to a single verification call.
type SearchQuery struct {
	FullName   string
	FirstGuess string
	LastGuess  string
}

// NewSearchQuery tokenizes a full name naively: every token but the last
// forms the first-name guess, the final token is the last-name guess. A
// single-token input leaves FirstGuess empty; blank input leaves both empty.
func NewSearchQuery(fullName string) SearchQuery {
	tokens := strings.Fields(fullName)
	q := SearchQuery{FullName: strings.TrimSpace(fullName)}
	switch len(tokens) {
	case 0:
	case 1:
		q.LastGuess = tokens[0]
	default:
		q.FirstGuess = strings.Join(tokens[:len(tokens)-1], " ")
		q.LastGuess = tokens[len(tokens)-1]
	}
	return q
}
