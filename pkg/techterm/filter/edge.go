package filter

import (
	"github.com/cognicore/techterm/pkg/techterm/classifier"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

// edgeFilter rejects terms that begin or end with a symbol, connector or
// stopword, such as "of graphs" or "network -".
type edgeFilter struct {
	classifier classifier.Classifier
}

func (f *edgeFilter) IsCandidate(t term.Term) bool {
	if t.Len() == 0 {
		return false
	}
	return f.meaningful(t.Tokens[0]) && f.meaningful(t.Tokens[t.Len()-1])
}

func (f *edgeFilter) meaningful(tok term.Token) bool {
	c := f.classifier
	return c.InScope(tok) && !c.IsSymbol(tok) && !c.IsMeaningless(tok) &&
		!c.IsConnectorSymbol(tok) && !c.IsConnectorTerm(tok)
}
