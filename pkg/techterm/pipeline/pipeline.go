// Package pipeline runs the extraction layers over domains of PDFs:
// conversion, candidate building, ranking, styling and glossary selection.
// Every layer with a cache is skipped on a hit, and a recomputed layer forces
// every layer below it to recompute as well.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/techterm/internal/logger"
	"github.com/cognicore/techterm/pkg/techterm/cache"
	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/config"
	"github.com/cognicore/techterm/pkg/techterm/freq"
	"github.com/cognicore/techterm/pkg/techterm/glossary"
	"github.com/cognicore/techterm/pkg/techterm/internalerr"
	"github.com/cognicore/techterm/pkg/techterm/method"
	"github.com/cognicore/techterm/pkg/techterm/styling"
	"github.com/cognicore/techterm/pkg/techterm/tokenizer"
	"github.com/cognicore/techterm/pkg/techterm/xmlpage"
)

// Domain names a set of PDFs ranked together
type Domain struct {
	Name string
	PDFs []string
}

// Result is the output for one domain
type Result struct {
	Domain     string              `json:"domain"`
	Ranking    *method.Ranking     `json:"ranking"`
	Glossaries []glossary.Glossary `json:"glossaries"`
}

// Options configures a Pipeline
type Options struct {
	Config     *config.Config
	Converter  xmlpage.Converter
	Tokenizers *tokenizer.Registry
	Logger     *slog.Logger
	// Registerer receives the cache metrics; nil leaves them unregistered
	Registerer prometheus.Registerer
}

// Pipeline owns every layer and cache for one configuration
type Pipeline struct {
	cfg        *config.Config
	logger     *slog.Logger
	converter  xmlpage.Converter
	tokenizers *tokenizer.Registry
	builder    *candidate.Builder
	aggregator *freq.Aggregator
	ranker     ranker
	styler     *styling.Styler
	glossary   *glossary.Builder
	metrics    *cache.Metrics

	xmlCache     *cache.Layer[*xmlpage.Document]
	stylingCache *cache.Layer[styling.Scores]

	prints  fingerprints
	backend *backends
}

// New validates the configuration and wires every layer. Unknown identifiers
// fail here, before any document is read.
func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil {
		return nil, &internalerr.ConfigurationError{Field: "config", Reason: "missing"}
	}
	if opts.Converter == nil {
		return nil, &internalerr.ConfigurationError{Field: "converter", Reason: "missing"}
	}
	if opts.Tokenizers == nil {
		return nil, &internalerr.ConfigurationError{Field: "tokenizers", Reason: "missing"}
	}
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.WithComponent("pipeline")
	}

	builder, err := candidate.NewBuilder(cfg.CandidateOptions())
	if err != nil {
		return nil, err
	}
	styler, err := styling.New(cfg.Styling.Scorers)
	if err != nil {
		return nil, err
	}
	prints, err := newFingerprints(cfg)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:        cfg,
		logger:     log,
		converter:  opts.Converter,
		tokenizers: opts.Tokenizers,
		builder:    builder,
		aggregator: freq.NewAggregator(builder.Classifiers(), builder, cfg.Workers),
		styler:     styler,
		glossary:   glossary.New(cfg.TechTerm),
		metrics:    cache.NewMetrics(opts.Registerer),
		prints:     prints,
		backend:    &backends{cfg: cfg.Cache},
	}

	if p.xmlCache, err = openLayer[*xmlpage.Document](p, "xml", cfg.Cache.XML); err != nil {
		p.Close()
		return nil, err
	}
	if p.stylingCache, err = openLayer[styling.Scores](p, "styling", cfg.Cache.Styling); err != nil {
		p.Close()
		return nil, err
	}
	if p.ranker, err = newRanker(p); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// Close releases the cache database, if one was opened
func (p *Pipeline) Close() error {
	return p.backend.Close()
}

// Metrics returns the cache collectors
func (p *Pipeline) Metrics() *cache.Metrics {
	return p.metrics
}

// Purge drops every cached entry of every layer
func (p *Pipeline) Purge(ctx context.Context) error {
	return errors.Join(
		p.xmlCache.Purge(ctx),
		p.stylingCache.Purge(ctx),
		p.ranker.Purge(ctx),
	)
}

// document is one PDF after the candidate layer
type document struct {
	path        string
	fingerprint string
	hit         bool
	candidates  candidate.PDFList
}

// domainRun is one domain after the candidate layer
type domainRun struct {
	name string
	docs []document
	list *candidate.DomainList
}

// reuse reports whether every PDF of the domain came from the cache
func (d *domainRun) reuse() bool {
	for _, doc := range d.docs {
		if !doc.hit {
			return false
		}
	}
	return true
}

// Candidates runs the conversion and candidate layers for every domain
func (p *Pipeline) Candidates(ctx context.Context, domains []Domain) ([]*candidate.DomainList, error) {
	runs, err := p.candidates(ctx, domains)
	if err != nil {
		return nil, err
	}
	lists := make([]*candidate.DomainList, len(runs))
	for i, r := range runs {
		lists[i] = r.list
	}
	return lists, nil
}

func (p *Pipeline) candidates(ctx context.Context, domains []Domain) ([]*domainRun, error) {
	runs := make([]*domainRun, len(domains))
	for i, d := range domains {
		docs := make([]document, len(d.PDFs))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.workers())
		for j, path := range d.PDFs {
			g.Go(func() error {
				doc, err := p.document(gctx, path)
				if err != nil {
					return fmt.Errorf("domain %s: %w", d.Name, err)
				}
				docs[j] = doc
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		list := &candidate.DomainList{Domain: d.Name, PDFs: make([]candidate.PDFList, len(docs))}
		for j, doc := range docs {
			list.PDFs[j] = doc.candidates
		}
		runs[i] = &domainRun{name: d.Name, docs: docs, list: list}
		p.logger.Info("candidates built", "domain", d.Name, "pdfs", len(docs), "candidates", list.Len())
	}
	return runs, nil
}

func (p *Pipeline) workers() int {
	if p.cfg.Workers > 0 {
		return p.cfg.Workers
	}
	return -1
}

// document converts one PDF (through the xml cache) and builds its candidates
func (p *Pipeline) document(ctx context.Context, path string) (document, error) {
	fp, err := p.prints.xml(path)
	if err != nil {
		return document{}, err
	}
	key := cache.Key{Path: path, Fingerprint: fp}
	xml, hit, err := p.xmlCache.GetOrCompute(ctx, key, true, func(ctx context.Context) (*xmlpage.Document, error) {
		return xmlpage.Load(ctx, p.converter, path)
	})
	if err != nil {
		return document{}, err
	}
	p.logger.Debug("xml layer", "path", path, "hit", hit)

	pdf, err := p.buildCandidates(path, xml)
	if err != nil {
		return document{}, err
	}
	return document{path: path, fingerprint: fp, hit: hit, candidates: pdf}, nil
}

func (p *Pipeline) buildCandidates(path string, doc *xmlpage.Document) (candidate.PDFList, error) {
	pdf := candidate.PDFList{Path: path, Pages: make([]candidate.PageList, 0, len(doc.Pages))}
	for _, page := range doc.Pages {
		pl := candidate.PageList{Page: page.Number}
		for _, run := range page.Runs {
			tokens, err := p.tokenizers.Tokenize(run.Text)
			if err != nil {
				return candidate.PDFList{}, fmt.Errorf("%s page %d: %w", path, page.Number, err)
			}
			pl.Candidates = append(pl.Candidates, p.builder.Build(tokens, run.FontSize, run.Color)...)
		}
		pdf.Pages = append(pdf.Pages, pl)
	}
	return pdf, nil
}

// Rank runs every layer up to the method rankings
func (p *Pipeline) Rank(ctx context.Context, domains []Domain) ([]*method.Ranking, error) {
	runs, err := p.candidates(ctx, domains)
	if err != nil {
		return nil, err
	}
	return p.ranker.RankDomains(ctx, runs)
}

// Extract runs every layer and selects the technical terms of each PDF
func (p *Pipeline) Extract(ctx context.Context, domains []Domain) ([]Result, error) {
	runs, err := p.candidates(ctx, domains)
	if err != nil {
		return nil, err
	}
	rankings, err := p.ranker.RankDomains(ctx, runs)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(runs))
	for i, r := range runs {
		res := Result{Domain: r.name, Ranking: rankings[i], Glossaries: make([]glossary.Glossary, len(r.docs))}
		for j, doc := range r.docs {
			style, err := p.styling(ctx, doc)
			if err != nil {
				return nil, err
			}
			res.Glossaries[j] = p.glossary.Build(doc.candidates, rankings[i], style)
		}
		results[i] = res
		p.logger.Info("domain extracted", "domain", r.name, "method", p.ranker.Name(), "terms", len(rankings[i].Terms))
	}
	return results, nil
}

func (p *Pipeline) styling(ctx context.Context, doc document) (styling.Scores, error) {
	key := cache.Key{Path: doc.path, Fingerprint: p.prints.styling(doc.fingerprint)}
	scores, hit, err := p.stylingCache.GetOrCompute(ctx, key, doc.hit, func(context.Context) (styling.Scores, error) {
		return p.styler.Score(doc.candidates), nil
	})
	if err != nil {
		return styling.Scores{}, err
	}
	p.logger.Debug("styling layer", "path", doc.path, "hit", hit)
	return scores, nil
}

var _ io.Closer = (*Pipeline)(nil)
