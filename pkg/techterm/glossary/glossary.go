// Package glossary selects the technical terms of a PDF from a domain ranking
// weighted by the PDF's styling scores.
package glossary

import (
	"crypto/rand"
	"math"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/method"
	"github.com/cognicore/techterm/pkg/techterm/styling"
)

// Options bound the selection
type Options struct {
	// MaxNumTerms caps the terms kept per page; 0 keeps all.
	MaxNumTerms int `yaml:"max_num_terms" json:"max_num_terms"`
	// AcceptanceRate is the leading share of the domain ranking eligible for selection.
	AcceptanceRate float64 `yaml:"acceptance_rate" json:"acceptance_rate"`
}

// DefaultOptions keeps the top three quarters of the ranking and every term per page
func DefaultOptions() Options {
	return Options{MaxNumTerms: 0, AcceptanceRate: 0.75}
}

// Term is one selected technical term
type Term struct {
	ID      string  `json:"id"`
	Lemma   string  `json:"lemma"`
	Surface string  `json:"surface"`
	Score   float64 `json:"score"`
}

// Page lists the selected terms of one page
type Page struct {
	Page  int    `json:"page"`
	Terms []Term `json:"terms"`
}

// Glossary is the technical-term output for one PDF
type Glossary struct {
	Path  string `json:"path"`
	Pages []Page `json:"pages"`
}

// Builder assigns sortable unique identifiers to glossary terms
type Builder struct {
	opts    Options
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a glossary builder
func New(opts Options) *Builder {
	return &Builder{
		opts:    opts,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (b *Builder) newID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ulid.MustNew(ulid.Now(), b.entropy).String()
}

// Accepted returns the method score of every lemma in the accepted head of ranking
func (b *Builder) Accepted(ranking *method.Ranking) map[string]float64 {
	n := len(ranking.Terms)
	if b.opts.AcceptanceRate > 0 && b.opts.AcceptanceRate < 1 {
		n = int(math.Ceil(float64(n) * b.opts.AcceptanceRate))
	}
	out := make(map[string]float64, n)
	for _, t := range ranking.Terms[:n] {
		out[t.Lemma] = t.Score
	}
	return out
}

// Build selects the terms of each page of pdf. A term's score is its method
// score times its styling score; terms outside the accepted head are dropped.
// Within a page terms are ordered by descending score, ties by first appearance.
func (b *Builder) Build(pdf candidate.PDFList, ranking *method.Ranking, style styling.Scores) Glossary {
	accepted := b.Accepted(ranking)
	g := Glossary{Path: pdf.Path, Pages: make([]Page, 0, len(pdf.Pages))}

	for _, page := range pdf.Pages {
		seen := make(map[string]struct{})
		var terms []Term
		for _, c := range page.Candidates {
			lemma := c.Lemma()
			if _, ok := seen[lemma]; ok {
				continue
			}
			seen[lemma] = struct{}{}
			score, ok := accepted[lemma]
			if !ok {
				continue
			}
			terms = append(terms, Term{
				Lemma:   lemma,
				Surface: c.String(),
				Score:   score * style.Get(lemma),
			})
		}

		sort.SliceStable(terms, func(i, j int) bool {
			return terms[i].Score > terms[j].Score
		})
		if b.opts.MaxNumTerms > 0 && len(terms) > b.opts.MaxNumTerms {
			terms = terms[:b.opts.MaxNumTerms]
		}
		for i := range terms {
			terms[i].ID = b.newID()
		}
		g.Pages = append(g.Pages, Page{Page: page.Page, Terms: terms})
	}
	return g
}
