package candidate

import (
	"github.com/cognicore/techterm/pkg/techterm/augment"
	"github.com/cognicore/techterm/pkg/techterm/classifier"
	"github.com/cognicore/techterm/pkg/techterm/filter"
	"github.com/cognicore/techterm/pkg/techterm/internalerr"
	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/stoplist"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

// Candidate is a term found in a document. Augmented candidates were derived
// from a longer seed on the same text run.
type Candidate = term.Term

// Options selects the per-language rules of a Builder
type Options struct {
	Languages   []lang.Code
	TermFilters []string
	Augmenters  []string
	Stopwords   *stoplist.List
}

// Builder produces candidate terms from tagged tokens
type Builder struct {
	classifiers  *classifier.Registry
	tokenFilters *lang.Registry[filter.TokenFilter]
	termFilters  *lang.Registry[*filter.Chain]
	augmenters   *lang.Registry[*augment.Combiner]
}

// NewBuilder wires classifiers, filters and augmenters for every configured
// language. Unknown identifiers fail here, before any document is read.
func NewBuilder(opts Options) (*Builder, error) {
	classifiers, bad, ok := classifier.NewRegistry(opts.Languages, opts.Stopwords)
	if !ok {
		return nil, internalerr.Unknown("candidate.languages", string(bad))
	}

	b := &Builder{
		classifiers:  classifiers,
		tokenFilters: lang.NewRegistry[filter.TokenFilter](),
		termFilters:  lang.NewRegistry[*filter.Chain](),
		augmenters:   lang.NewRegistry[*augment.Combiner](),
	}

	for _, code := range opts.Languages {
		c, _ := classifiers.Lookup(code)

		tf, ok := filter.NewTokenFilter(code, c)
		if !ok {
			return nil, internalerr.Unknown("candidate.languages", string(code))
		}
		b.tokenFilters.Register(code, tf)

		chain, err := filter.NewChain(code, opts.TermFilters, c)
		if err != nil {
			return nil, err
		}
		b.termFilters.Register(code, chain)

		comb, err := augment.NewCombiner(code, opts.Augmenters, c)
		if err != nil {
			return nil, err
		}
		b.augmenters.Register(code, comb)
	}

	return b, nil
}

// Classifiers exposes the classifier registry used by this builder
func (b *Builder) Classifiers() *classifier.Registry {
	return b.classifiers
}

// IsCandidate runs the filter chain of t's language. Terms of unsupported
// languages are never candidates.
func (b *Builder) IsCandidate(t term.Term) bool {
	chain, ok := b.termFilters.Lookup(t.Lang())
	if !ok {
		return false
	}
	return chain.IsCandidate(t)
}

// Build splits one styled text run into candidates. Each accepted seed is
// followed by its accepted augmentations.
func (b *Builder) Build(tokens []term.Token, fontSize float64, color string) []Candidate {
	var out []Candidate
	for _, run := range b.runs(tokens) {
		seed := b.trim(term.Term{Tokens: run, FontSize: fontSize, Color: color})
		if seed.Len() == 0 || !b.IsCandidate(seed) {
			continue
		}
		out = append(out, seed)

		comb, ok := b.augmenters.Lookup(seed.Lang())
		if !ok {
			continue
		}
		for _, aug := range comb.Augment(seed) {
			if b.IsCandidate(aug) {
				out = append(out, aug)
			}
		}
	}
	return out
}

// runs returns maximal token runs accepted by the token filter of each token's language
func (b *Builder) runs(tokens []term.Token) [][]term.Token {
	var runs [][]term.Token
	start := -1
	for i, tok := range tokens {
		if b.partOf(tokens, i, tok) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, tokens[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, tokens[start:])
	}
	return runs
}

func (b *Builder) partOf(tokens []term.Token, i int, tok term.Token) bool {
	tf, ok := b.tokenFilters.Lookup(tok.Lang)
	if !ok {
		return false
	}
	return tf.IsPartOfCandidate(tokens, i)
}

// trim drops leading and trailing tokens that cannot start or end a term
func (b *Builder) trim(t term.Term) term.Term {
	i, j := 0, t.Len()
	for i < j && classifier.IsBoundary(b.classifiers, t.Tokens[i]) {
		i++
	}
	for j > i && classifier.IsBoundary(b.classifiers, t.Tokens[j-1]) {
		j--
	}
	if i == 0 && j == t.Len() {
		return t
	}
	return term.New(t.Tokens[i:j], t, t.Augmented)
}
