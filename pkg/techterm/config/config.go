// Package config loads the extractor configuration from YAML with TECHTERM_*
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/techterm/pkg/techterm/augment"
	"github.com/cognicore/techterm/pkg/techterm/cache"
	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/filter"
	"github.com/cognicore/techterm/pkg/techterm/glossary"
	"github.com/cognicore/techterm/pkg/techterm/internalerr"
	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/method"
	"github.com/cognicore/techterm/pkg/techterm/stoplist"
	"github.com/cognicore/techterm/pkg/techterm/styling"
)

// Config holds every layer's settings. Sections tagged json:"-" never affect
// computed results and are left out of cache fingerprints.
type Config struct {
	XML       XMLConfig        `yaml:"xml" json:"xml"`
	Candidate CandidateConfig  `yaml:"candidate" json:"candidate"`
	Method    MethodConfig     `yaml:"method" json:"method"`
	Styling   StylingConfig    `yaml:"styling" json:"styling"`
	TechTerm  glossary.Options `yaml:"techterm" json:"techterm"`
	Cache     CacheConfig      `yaml:"cache" json:"-"`
	Logging   LoggingConfig    `yaml:"logging" json:"-"`
	Workers   int              `yaml:"workers" json:"-"`
}

// XMLConfig selects the PDF converter
type XMLConfig struct {
	Converter string `yaml:"converter" json:"converter"`
}

// CandidateConfig selects the per-language candidate rules
type CandidateConfig struct {
	Languages   []string `yaml:"languages" json:"languages"`
	TermFilters []string `yaml:"term_filters" json:"term_filters"`
	Augmenters  []string `yaml:"augmenters" json:"augmenters"`
	Stopwords   []string `yaml:"stopwords" json:"stopwords"`
	// Stoplist is a YAML stopword file merged into Stopwords on load
	Stoplist string `yaml:"stoplist" json:"-"`
}

// MethodConfig selects the ranking method
type MethodConfig struct {
	Name string            `yaml:"name" json:"name"`
	HITS method.HITSConfig `yaml:"hits" json:"hits"`
}

// StylingConfig selects the styling scorers
type StylingConfig struct {
	Scorers []string `yaml:"scorers" json:"scorers"`
}

// CacheConfig picks a backend per layer
type CacheConfig struct {
	Dir           string `yaml:"dir"`
	SQLitePath    string `yaml:"sqlite_path"`
	XML           string `yaml:"xml"`
	Styling       string `yaml:"styling"`
	MethodData    string `yaml:"method_data"`
	MethodRanking string `yaml:"method_ranking"`
}

// DatabasePath returns the sqlite file, defaulting to cache.db under Dir
func (c CacheConfig) DatabasePath() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.Dir, "cache.db")
}

// LoggingConfig configures the default slog handler
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		XML: XMLConfig{Converter: "pdftohtml"},
		Candidate: CandidateConfig{
			Languages:   []string{string(lang.English), string(lang.Japanese)},
			TermFilters: append([]string(nil), filter.DefaultTermFilters...),
			Augmenters:  append([]string(nil), augment.DefaultAugmenters...),
		},
		Method: MethodConfig{
			Name: method.FLRH,
			HITS: method.DefaultHITSConfig(),
		},
		Styling:  StylingConfig{Scorers: append([]string(nil), styling.DefaultScorers...)},
		TechTerm: glossary.DefaultOptions(),
		Cache: CacheConfig{
			Dir:           ".techterm-cache",
			XML:           cache.File,
			Styling:       cache.File,
			MethodData:    cache.File,
			MethodRanking: cache.File,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML file (if path is not empty) over the defaults, applies
// environment overrides and merges the stoplist file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if cfg.Candidate.Stoplist != "" {
		sl, err := LoadStoplist(cfg.Candidate.Stoplist)
		if err != nil {
			return nil, fmt.Errorf("reading stoplist %s: %w", cfg.Candidate.Stoplist, err)
		}
		cfg.Candidate.Stopwords = append(cfg.Candidate.Stopwords, sl.Terms...)
	}
	return cfg, nil
}

// applyEnvOverrides reads TECHTERM_* variables over the loaded values
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TECHTERM_METHOD"); v != "" {
		cfg.Method.Name = v
	}
	if v := os.Getenv("TECHTERM_LANGUAGES"); v != "" {
		cfg.Candidate.Languages = splitList(v)
	}
	if v := os.Getenv("TECHTERM_STOPLIST"); v != "" {
		cfg.Candidate.Stoplist = v
	}
	if v := os.Getenv("TECHTERM_HITS_MAX_LOOP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &internalerr.ConfigurationError{Field: "TECHTERM_HITS_MAX_LOOP", Value: v, Reason: "not an integer", Err: err}
		}
		cfg.Method.HITS.MaxLoop = n
	}
	if v := os.Getenv("TECHTERM_HITS_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &internalerr.ConfigurationError{Field: "TECHTERM_HITS_THRESHOLD", Value: v, Reason: "not a number", Err: err}
		}
		cfg.Method.HITS.Threshold = f
	}
	if v := os.Getenv("TECHTERM_MAX_NUM_TERMS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &internalerr.ConfigurationError{Field: "TECHTERM_MAX_NUM_TERMS", Value: v, Reason: "not an integer", Err: err}
		}
		cfg.TechTerm.MaxNumTerms = n
	}
	if v := os.Getenv("TECHTERM_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("TECHTERM_CACHE_BACKEND"); v != "" {
		cfg.Cache.XML = v
		cfg.Cache.Styling = v
		cfg.Cache.MethodData = v
		cfg.Cache.MethodRanking = v
	}
	if v := os.Getenv("TECHTERM_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &internalerr.ConfigurationError{Field: "TECHTERM_WORKERS", Value: v, Reason: "not an integer", Err: err}
		}
		cfg.Workers = n
	}
	if v := os.Getenv("TECHTERM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TECHTERM_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Languages returns the configured language codes
func (c *Config) Languages() []lang.Code {
	codes := make([]lang.Code, len(c.Candidate.Languages))
	for i, l := range c.Candidate.Languages {
		codes[i] = lang.Code(l)
	}
	return codes
}

// StopList builds the stopword list
func (c *Config) StopList() *stoplist.List {
	return stoplist.New(c.Candidate.Stopwords)
}

// CandidateOptions converts the candidate section for candidate.NewBuilder
func (c *Config) CandidateOptions() candidate.Options {
	return candidate.Options{
		Languages:   c.Languages(),
		TermFilters: c.Candidate.TermFilters,
		Augmenters:  c.Candidate.Augmenters,
		Stopwords:   c.StopList(),
	}
}

// Validate fails on the first unknown identifier or out-of-range value
func (c *Config) Validate() error {
	if len(c.Candidate.Languages) == 0 {
		return &internalerr.ConfigurationError{Field: "candidate.languages", Reason: "at least one language is required"}
	}
	if _, err := candidate.NewBuilder(c.CandidateOptions()); err != nil {
		return err
	}
	if _, err := method.Lookup(c.Method.Name); err != nil {
		return err
	}
	if c.Method.HITS.Threshold <= 0 {
		return &internalerr.ConfigurationError{Field: "method.hits.threshold", Value: fmt.Sprint(c.Method.HITS.Threshold), Reason: "must be positive"}
	}
	if c.Method.HITS.MaxLoop <= 0 {
		return &internalerr.ConfigurationError{Field: "method.hits.max_loop", Value: strconv.Itoa(c.Method.HITS.MaxLoop), Reason: "must be positive"}
	}
	if _, err := styling.New(c.Styling.Scorers); err != nil {
		return err
	}
	if r := c.TechTerm.AcceptanceRate; r < 0 || r > 1 {
		return &internalerr.ConfigurationError{Field: "techterm.acceptance_rate", Value: fmt.Sprint(r), Reason: "must be within [0, 1]"}
	}
	if c.TechTerm.MaxNumTerms < 0 {
		return &internalerr.ConfigurationError{Field: "techterm.max_num_terms", Value: strconv.Itoa(c.TechTerm.MaxNumTerms), Reason: "must not be negative"}
	}
	for field, backend := range map[string]string{
		"cache.xml":            c.Cache.XML,
		"cache.styling":        c.Cache.Styling,
		"cache.method_data":    c.Cache.MethodData,
		"cache.method_ranking": c.Cache.MethodRanking,
	} {
		if err := cache.ValidBackend(backend); err != nil {
			return &internalerr.ConfigurationError{Field: field, Value: backend, Reason: "unknown cache backend"}
		}
	}
	return nil
}
