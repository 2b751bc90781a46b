// Package filter decides which tokens may form candidate terms and which
// terms survive as candidates.
package filter

import (
	"github.com/cognicore/techterm/pkg/techterm/classifier"
	"github.com/cognicore/techterm/pkg/techterm/internalerr"
	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

// Term filter identifiers accepted in configuration
const (
	Numeric = "numeric"
	Edge    = "edge"
)

// DefaultTermFilters is the filter set used when none is configured
var DefaultTermFilters = []string{Numeric, Edge}

// TermFilter rejects linguistically invalid candidate terms. Implementations
// are pure and idempotent.
type TermFilter interface {
	IsCandidate(t term.Term) bool
}

// Chain keeps a term only when every filter accepts it
type Chain struct {
	filters []TermFilter
}

// NewChain builds the filter chain for one language from configured names
func NewChain(code lang.Code, names []string, c classifier.Classifier) (*Chain, error) {
	chain := &Chain{}
	for _, name := range names {
		switch name {
		case Numeric:
			chain.filters = append(chain.filters, newNumeric(code, c))
		case Edge:
			chain.filters = append(chain.filters, &edgeFilter{classifier: c})
		default:
			return nil, internalerr.Unknown("candidate.term_filters", name)
		}
	}
	return chain, nil
}

// ChainOf wraps arbitrary filters, mainly for tests and callers with custom rules
func ChainOf(filters ...TermFilter) *Chain {
	return &Chain{filters: filters}
}

// IsCandidate reports whether all filters accept t. An empty term is never a candidate.
func (c *Chain) IsCandidate(t term.Term) bool {
	if t.Len() == 0 {
		return false
	}
	for _, f := range c.filters {
		if !f.IsCandidate(t) {
			return false
		}
	}
	return true
}

// Len returns the number of filters in the chain
func (c *Chain) Len() int {
	return len(c.filters)
}
