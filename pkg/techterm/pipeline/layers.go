package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cognicore/techterm/pkg/techterm/cache"
	"github.com/cognicore/techterm/pkg/techterm/cache/sqlite"
	"github.com/cognicore/techterm/pkg/techterm/config"
	"github.com/cognicore/techterm/pkg/techterm/internalerr"
)

// backends lazily opens the shared sqlite database
type backends struct {
	cfg  config.CacheConfig
	once sync.Once
	db   *sqlite.DB
	err  error
}

func (b *backends) sqlite() (*sqlite.DB, error) {
	b.once.Do(func() {
		path := b.cfg.DatabasePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			b.err = err
			return
		}
		b.db, b.err = sqlite.Open(context.Background(), path)
	})
	return b.db, b.err
}

func (b *backends) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// openLayer builds the cache layer name on the configured backend
func openLayer[T any](p *Pipeline, name, backend string) (*cache.Layer[T], error) {
	var c cache.Cache[T]
	switch backend {
	case cache.NoOp:
		c = cache.NewNoOp[T]()
	case cache.File:
		c = cache.NewFile[T](p.cfg.Cache.Dir, name)
	case cache.Memory:
		c = cache.NewMemory[T]()
	case cache.SQLite:
		db, err := p.backend.sqlite()
		if err != nil {
			return nil, err
		}
		c = sqlite.NewCache[T](db, name)
	default:
		return nil, internalerr.Unknown("cache."+name, backend)
	}
	return cache.NewLayer(name, c, p.metrics, p.logger), nil
}

// fingerprints derives the cache key of every layer from the configuration
// sections that influence it. Each layer's print includes the prints of the
// layers it consumes.
type fingerprints struct {
	converter string
	candidate string
	style     string
	method    string
}

func newFingerprints(cfg *config.Config) (fingerprints, error) {
	conv, err := cache.Fingerprint("converter", cfg.XML)
	if err != nil {
		return fingerprints{}, err
	}
	cand, err := cache.Fingerprint("candidate", cfg.Candidate)
	if err != nil {
		return fingerprints{}, err
	}
	style, err := cache.Fingerprint("styling", cfg.Styling)
	if err != nil {
		return fingerprints{}, err
	}
	m, err := cache.Fingerprint("method", cfg.Method)
	if err != nil {
		return fingerprints{}, err
	}
	return fingerprints{converter: conv, candidate: cand, style: style, method: m}, nil
}

// xml covers the converter and the PDF's size and modification time, so a
// rewritten file is converted again.
func (f fingerprints) xml(path string) (string, error) {
	stamp := struct {
		Size    int64 `json:"size"`
		ModTime int64 `json:"mod_time"`
	}{}
	if info, err := os.Stat(path); err == nil {
		stamp.Size = info.Size()
		stamp.ModTime = info.ModTime().UnixNano()
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	return cache.Fingerprint("xml", f.converter, stamp)
}

func (f fingerprints) styling(xml string) string {
	return cache.MustFingerprint("styling", xml, f.candidate, f.style)
}

func (f fingerprints) methodData(run *domainRun) string {
	docs := make([]string, len(run.docs))
	for i, d := range run.docs {
		docs[i] = d.fingerprint
	}
	return cache.MustFingerprint("method-data", f.method, f.candidate, docs)
}

func (f fingerprints) methodRanking(data ...string) string {
	return cache.MustFingerprint("method-ranking", data)
}

// domainKey identifies a domain by name and its PDF paths
func domainKey(run *domainRun) string {
	paths := make([]string, len(run.docs))
	for i, d := range run.docs {
		paths[i] = d.path
	}
	return run.name + "#" + cache.PathHash(strings.Join(paths, "\x00"))
}
