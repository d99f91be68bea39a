// Package input matches search prompt input against pinned items.
package input

import (
	"strings"

	"github.com/javiermolinar/homegrid/internal/pin"
)

// Suggestion is a pinned item offered while typing a query.
type Suggestion struct {
	ID    string
	Title string
}

// Suggestions builds the suggestion list for a set of pinned items.
func Suggestions(items []pin.Item) []Suggestion {
	out := make([]Suggestion, 0, len(items))
	for _, it := range items {
		out = append(out, Suggestion{ID: it.ID(), Title: it.Title()})
	}
	return out
}

// Matching returns suggestions whose title starts with the query, followed
// by those that merely contain it. Matching is case-insensitive.
func Matching(query string, suggestions []Suggestion) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var prefix, contains []Suggestion
	for _, s := range suggestions {
		title := strings.ToLower(s.Title)
		switch {
		case strings.HasPrefix(title, q):
			prefix = append(prefix, s)
		case strings.Contains(title, q):
			contains = append(contains, s)
		}
	}
	return append(prefix, contains...)
}

// Autocomplete returns the title of the best match and whether one exists.
func Autocomplete(query string, suggestions []Suggestion) (string, bool) {
	matches := Matching(query, suggestions)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Title, true
}
