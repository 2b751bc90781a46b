// Package stoplist holds words that carry no meaning on their own ("the", "a")
// and are therefore treated like symbols when measuring term boundaries.
package stoplist

import (
	"sort"
	"strings"
)

// List is a case-insensitive set of stopwords
type List struct {
	stops map[string]struct{}
}

// New creates a stoplist from the given words
func New(words []string) *List {
	stops := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		stops[w] = struct{}{}
	}
	return &List{stops: stops}
}

// IsStop checks if a word is a stopword. A nil list contains nothing.
func (l *List) IsStop(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.stops[strings.ToLower(word)]
	return ok
}

// Add adds a word to the list
func (l *List) Add(word string) {
	l.stops[strings.ToLower(word)] = struct{}{}
}

// Remove removes a word from the list
func (l *List) Remove(word string) {
	delete(l.stops, strings.ToLower(word))
}

// All returns all stopwords, sorted
func (l *List) All() []string {
	if l == nil {
		return nil
	}
	result := make([]string, 0, len(l.stops))
	for s := range l.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of stopwords
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.stops)
}
