// Package augment derives additional candidate terms from a seed term by
// cutting it at connector tokens.
//
// "Structure of Layered Architecture" yields "Structure" and
// "Layered Architecture"; with two connectors every contiguous phrase between
// connector positions is produced, e.g. "A of B of C" yields "A", "B", "C",
// "A of B" and "B of C". The seed itself is never returned.
package augment

import (
	"github.com/cognicore/techterm/pkg/techterm/classifier"
	"github.com/cognicore/techterm/pkg/techterm/internalerr"
	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

// Augmenter identifiers accepted in configuration
const (
	ConnectorTerm   = "connector_term"
	ConnectorSymbol = "connector_symbol"
)

// DefaultAugmenters is the augmenter order used when none is configured
var DefaultAugmenters = []string{ConnectorSymbol, ConnectorTerm}

// Augmenter expands one term into derived terms
type Augmenter interface {
	Augment(t term.Term) []term.Term
}

// Connector splits terms at tokens matching a connector predicate
type Connector struct {
	code        lang.Code
	classifier  classifier.Classifier
	isConnector func(term.Token) bool
}

// NewConnectorTerm splits at connector terms such as "of" or "の"
func NewConnectorTerm(code lang.Code, c classifier.Classifier) *Connector {
	return &Connector{code: code, classifier: c, isConnector: c.IsConnectorTerm}
}

// NewConnectorSymbol splits at connector symbols such as "-" or "・"
func NewConnectorSymbol(code lang.Code, c classifier.Classifier) *Connector {
	return &Connector{code: code, classifier: c, isConnector: c.IsConnectorSymbol}
}

// Augment returns every phrase bounded by connector positions, shortest first,
// excluding t itself. Terms of another language yield nothing.
func (a *Connector) Augment(t term.Term) []term.Term {
	if t.Lang() != a.code {
		return nil
	}

	positions := []int{-1}
	for i, tok := range t.Tokens {
		if a.classifier.InScope(tok) && a.isConnector(tok) {
			positions = append(positions, i)
		}
	}
	positions = append(positions, t.Len())

	var out []term.Term
	for length := 1; length < len(positions)-1; length++ {
		for idx := 0; idx+length < len(positions); idx++ {
			i, j := positions[idx]+1, positions[idx+length]
			if i >= j {
				continue
			}
			out = append(out, term.New(t.Tokens[i:j], t, true))
		}
	}
	return out
}

// Combiner applies augmenters in a fixed order. Each augmenter sees the seed
// and everything produced before it, so the order is part of the result.
type Combiner struct {
	augmenters []Augmenter
}

// NewCombiner builds the combiner for one language from configured names
func NewCombiner(code lang.Code, names []string, c classifier.Classifier) (*Combiner, error) {
	comb := &Combiner{}
	for _, name := range names {
		switch name {
		case ConnectorTerm:
			comb.augmenters = append(comb.augmenters, NewConnectorTerm(code, c))
		case ConnectorSymbol:
			comb.augmenters = append(comb.augmenters, NewConnectorSymbol(code, c))
		default:
			return nil, internalerr.Unknown("candidate.augmenters", name)
		}
	}
	return comb, nil
}

// CombinerOf wraps arbitrary augmenters in the given order
func CombinerOf(augmenters ...Augmenter) *Combiner {
	return &Combiner{augmenters: augmenters}
}

// Augment returns all derived terms of seed, without seed itself
func (c *Combiner) Augment(seed term.Term) []term.Term {
	augmented := []term.Term{seed}
	for _, a := range c.augmenters {
		var produced []term.Term
		for _, t := range augmented {
			produced = append(produced, a.Augment(t)...)
		}
		augmented = append(augmented, produced...)
	}
	return augmented[1:]
}
