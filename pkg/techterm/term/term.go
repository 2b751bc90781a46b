// Package term defines tokens and candidate terms.
package term

import (
	"strings"

	"github.com/cognicore/techterm/pkg/techterm/lang"
)

// Term is an ordered token sequence. Two terms with the same Lemma are the
// same candidate regardless of surface form or styling.
type Term struct {
	Tokens    []Token `json:"tokens"`
	FontSize  float64 `json:"font_size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Augmented bool    `json:"augmented,omitempty"`
}

// New creates a term from tokens, carrying over the style of parent
func New(tokens []Token, parent Term, augmented bool) Term {
	return Term{
		Tokens:    tokens,
		FontSize:  parent.FontSize,
		Color:     parent.Color,
		Augmented: augmented,
	}
}

// Lemma returns the canonical dictionary key of the term
func (t Term) Lemma() string {
	return join(t.Tokens, func(tok Token) string { return tok.Lemma }, t.Lang())
}

// String returns the surface form of the term
func (t Term) String() string {
	return join(t.Tokens, func(tok Token) string { return tok.SurfaceForm }, t.Lang())
}

// Lang returns the dominant language of the tokens; ties go to the language
// seen first. An empty term has no language.
func (t Term) Lang() lang.Code {
	if len(t.Tokens) == 0 {
		return ""
	}
	counts := make(map[lang.Code]int, 2)
	var order []lang.Code
	for _, tok := range t.Tokens {
		if _, ok := counts[tok.Lang]; !ok {
			order = append(order, tok.Lang)
		}
		counts[tok.Lang]++
	}
	best := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

// Sub returns the term made of tokens[i:j], keeping the style of t
func (t Term) Sub(i, j int) Term {
	return New(t.Tokens[i:j], t, t.Augmented)
}

// Len returns the number of tokens
func (t Term) Len() int {
	return len(t.Tokens)
}

func join(tokens []Token, part func(Token) string, code lang.Code) string {
	if code == lang.Japanese {
		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(part(tok))
		}
		return b.String()
	}

	var b strings.Builder
	for i, tok := range tokens {
		// "state-of-the-art" style compounds keep their hyphens tight
		if i > 0 && tok.SurfaceForm != "-" && tokens[i-1].SurfaceForm != "-" {
			b.WriteByte(' ')
		}
		b.WriteString(part(tok))
	}
	return b.String()
}
