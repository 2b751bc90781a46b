// Package techterm extracts technical terms from PDFs. An Extractor converts
// each PDF, builds candidate terms, ranks them per domain with the configured
// method and selects every page's glossary.
package techterm

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cognicore/techterm/pkg/techterm/config"
	"github.com/cognicore/techterm/pkg/techterm/method"
	"github.com/cognicore/techterm/pkg/techterm/pipeline"
	"github.com/cognicore/techterm/pkg/techterm/tokenizer"
	"github.com/cognicore/techterm/pkg/techterm/xmlpage"
)

// Domain names a set of PDFs ranked together
type Domain = pipeline.Domain

// Result is the ranking and glossaries of one domain
type Result = pipeline.Result

// Extractor is the end-to-end facade
type Extractor struct {
	pipeline *pipeline.Pipeline
}

// Options configures an Extractor. Zero fields get defaults: config.Default(),
// the pdftohtml converter named in the config and the English tokenizer.
type Options struct {
	Config     *config.Config
	Converter  xmlpage.Converter
	Tokenizers *tokenizer.Registry
	Logger     *slog.Logger
	Registerer prometheus.Registerer
}

// New creates an Extractor with the given dependencies
func New(opts Options) (*Extractor, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	conv := opts.Converter
	if conv == nil {
		conv = xmlpage.NewCommandConverter(cfg.XML.Converter)
	}
	toks := opts.Tokenizers
	if toks == nil {
		toks = tokenizer.NewRegistry(tokenizer.NewEnglish())
	}

	p, err := pipeline.New(pipeline.Options{
		Config:     cfg,
		Converter:  conv,
		Tokenizers: toks,
		Logger:     opts.Logger,
		Registerer: opts.Registerer,
	})
	if err != nil {
		return nil, err
	}
	return &Extractor{pipeline: p}, nil
}

// Close cleanly shuts down the Extractor
func (e *Extractor) Close() error {
	return e.pipeline.Close()
}

// Extract ranks every domain and selects the technical terms of each PDF
func (e *Extractor) Extract(ctx context.Context, domains ...Domain) ([]Result, error) {
	return e.pipeline.Extract(ctx, domains)
}

// ExtractPDFs is Extract for a single domain
func (e *Extractor) ExtractPDFs(ctx context.Context, domain string, pdfs ...string) (Result, error) {
	results, err := e.pipeline.Extract(ctx, []Domain{{Name: domain, PDFs: pdfs}})
	if err != nil {
		return Result{}, err
	}
	return results[0], nil
}

// Rank returns the method ranking of every domain without glossary selection
func (e *Extractor) Rank(ctx context.Context, domains ...Domain) ([]*method.Ranking, error) {
	return e.pipeline.Rank(ctx, domains)
}

// Purge drops every cache entry
func (e *Extractor) Purge(ctx context.Context) error {
	return e.pipeline.Purge(ctx)
}
