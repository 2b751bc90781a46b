// Package tokenizer turns text runs into classified tokens. The first
// registered tokenizer whose scope covers a run handles it.
package tokenizer

import (
	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

// Tokenizer splits text of one language into tokens
type Tokenizer interface {
	Lang() lang.Code
	InScope(text string) bool
	Tokenize(text string) ([]term.Token, error)
}

// Registry is an ordered list of tokenizers
type Registry struct {
	tokenizers []Tokenizer
}

// NewRegistry keeps the given precedence order
func NewRegistry(tokenizers ...Tokenizer) *Registry {
	return &Registry{tokenizers: tokenizers}
}

// Languages returns the language of every registered tokenizer
func (r *Registry) Languages() []lang.Code {
	codes := make([]lang.Code, len(r.tokenizers))
	for i, t := range r.tokenizers {
		codes[i] = t.Lang()
	}
	return codes
}

// Tokenize uses the first tokenizer in scope. Text no tokenizer covers yields
// no tokens and no error.
func (r *Registry) Tokenize(text string) ([]term.Token, error) {
	for _, t := range r.tokenizers {
		if t.InScope(text) {
			return t.Tokenize(text)
		}
	}
	return nil, nil
}
