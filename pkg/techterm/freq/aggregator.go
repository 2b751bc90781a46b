package freq

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/classifier"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

// Validator accepts the sub-spans that count as terms
type Validator interface {
	IsCandidate(t term.Term) bool
}

// Span is a contiguous token range [Start, End) of a candidate
type Span struct {
	Start int
	End   int
	Term  term.Term
}

// Contains reports whether o lies inside s and is shorter than s
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End && (s.End-s.Start) > (o.End-o.Start)
}

// Aggregator counts candidate occurrences across the documents of a domain
type Aggregator struct {
	classifiers *classifier.Registry
	validator   Validator
	workers     int
}

// NewAggregator creates an aggregator. workers <= 0 uses GOMAXPROCS.
func NewAggregator(classifiers *classifier.Registry, validator Validator, workers int) *Aggregator {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Aggregator{
		classifiers: classifiers,
		validator:   validator,
		workers:     workers,
	}
}

// Spans returns every valid sub-span of t, longest first and then left to right.
// t itself is included when valid.
func (a *Aggregator) Spans(t term.Term) []Span {
	n := t.Len()
	var spans []Span
	for length := n; length >= 1; length-- {
		for i := 0; i+length <= n; i++ {
			sub := t.Sub(i, i+length)
			if a.validator.IsCandidate(sub) {
				spans = append(spans, Span{Start: i, End: i + length, Term: sub})
			}
		}
	}
	return spans
}

// Aggregate builds the domain tables. PDFs are counted concurrently and merged
// in PDF order, so the result does not depend on scheduling.
func (a *Aggregator) Aggregate(ctx context.Context, list *candidate.DomainList) (*Tables, error) {
	partials := make([]*Tables, len(list.PDFs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range list.PDFs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			partials[i] = a.AggregatePDF(list.Domain, list.PDFs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate domain %s: %w", list.Domain, err)
	}

	tables := NewTables(list.Domain)
	for _, p := range partials {
		tables.Merge(p)
	}
	return tables, nil
}

// AggregatePDF counts the candidates of one PDF. Augmented candidates are
// skipped: they are already sub-spans of their seed.
func (a *Aggregator) AggregatePDF(domain string, pdf candidate.PDFList) *Tables {
	tables := NewTables(domain)
	for _, page := range pdf.Pages {
		for _, c := range page.Candidates {
			if c.Augmented {
				continue
			}
			a.count(tables, c)
		}
	}
	return tables
}

func (a *Aggregator) count(tables *Tables, c term.Term) {
	for _, span := range a.Spans(c) {
		lemma := span.Term.Lemma()
		tables.addTerm(lemma)

		if span.Start > 0 {
			left := c.Tokens[span.Start-1]
			if !classifier.IsBoundary(a.classifiers, left) {
				tables.LeftFreq[lemma][left.Lemma]++
			}
		}
		if span.End < c.Len() {
			right := c.Tokens[span.End]
			if !classifier.IsBoundary(a.classifiers, right) {
				tables.RightFreq[lemma][right.Lemma]++
			}
		}
	}
}
