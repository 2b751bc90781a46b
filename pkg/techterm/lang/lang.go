// Package lang holds language codes and the per-language registry used to select
// classifiers, filters and augmenters.
package lang

import "sort"

// Code is a language identifier such as "en" or "ja".
type Code string

const (
	English  Code = "en"
	Japanese Code = "ja"
)

// Registry maps a language to one implementation of a capability.
// A missing language is reported through the ok result, never an error.
type Registry[T any] struct {
	entries map[Code]T
}

// NewRegistry creates an empty registry
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[Code]T)}
}

// Register adds or replaces the implementation for a language
func (r *Registry[T]) Register(c Code, v T) {
	r.entries[c] = v
}

// Lookup returns the implementation registered for a language
func (r *Registry[T]) Lookup(c Code) (T, bool) {
	v, ok := r.entries[c]
	return v, ok
}

// Codes returns registered languages in sorted order
func (r *Registry[T]) Codes() []Code {
	out := make([]Code, 0, len(r.entries))
	for c := range r.entries {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
