// Package classifier answers per-language questions about single tokens:
// is it a symbol, a connector, or meaningless on its own.
package classifier

import (
	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/stoplist"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

// Classifier is a set of pure predicates over one token. Callers must check
// InScope before calling any other predicate.
type Classifier interface {
	InScope(tok term.Token) bool
	IsSymbol(tok term.Token) bool
	IsConnectorSymbol(tok term.Token) bool
	IsConnectorTerm(tok term.Token) bool
	IsMeaningless(tok term.Token) bool
}

// Registry selects a classifier by token language
type Registry = lang.Registry[Classifier]

// NewRegistry builds a registry for the given languages. Unknown languages are
// reported through ok=false so configuration code can fail fast.
func NewRegistry(codes []lang.Code, stops *stoplist.List) (*Registry, lang.Code, bool) {
	reg := lang.NewRegistry[Classifier]()
	for _, c := range codes {
		switch c {
		case lang.English:
			reg.Register(c, NewEnglish(stops))
		case lang.Japanese:
			reg.Register(c, NewJapanese())
		default:
			return nil, c, false
		}
	}
	return reg, "", true
}

// For returns the classifier for tok when one is registered and in scope
func For(reg *Registry, tok term.Token) (Classifier, bool) {
	c, ok := reg.Lookup(tok.Lang)
	if !ok || !c.InScope(tok) {
		return nil, false
	}
	return c, true
}

// IsBoundary reports whether tok cannot act as a meaningful neighbour. Tokens
// without an in-scope classifier are boundaries too.
func IsBoundary(reg *Registry, tok term.Token) bool {
	c, ok := For(reg, tok)
	if !ok {
		return true
	}
	return c.IsMeaningless(tok) || c.IsSymbol(tok)
}
