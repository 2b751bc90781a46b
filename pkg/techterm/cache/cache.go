// Package cache stores intermediate pipeline results keyed by source path and
// configuration fingerprint. A hit is only valid when the fingerprint covers
// every setting that influenced the cached computation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/cognicore/techterm/pkg/techterm/internalerr"
)

// Backend identifiers accepted in configuration
const (
	NoOp   = "noop"
	File   = "file"
	Memory = "memory"
	SQLite = "sqlite"
)

// Backends lists every backend identifier
var Backends = []string{NoOp, File, Memory, SQLite}

// ValidBackend fails for an unknown backend identifier
func ValidBackend(name string) error {
	for _, b := range Backends {
		if b == name {
			return nil
		}
	}
	return internalerr.Unknown("cache.backend", name)
}

// Key addresses one cached value
type Key struct {
	Path        string
	Fingerprint string
}

func (k Key) String() string {
	return k.Path + "@" + k.Fingerprint
}

// Cache is the contract shared by every backend. Load reports a missing key
// as (zero, false, nil). Store overwrites. Remove of a missing key is a no-op.
type Cache[T any] interface {
	Load(ctx context.Context, key Key) (T, bool, error)
	Store(ctx context.Context, key Key, value T) error
	Remove(ctx context.Context, key Key) error
}

// Purger is implemented by backends that can drop every entry of their layer
type Purger interface {
	Purge(ctx context.Context) error
}

// Fingerprint hashes the JSON encoding of parts. Fields tagged json:"-" do
// not contribute, which is how cosmetic settings are excluded.
func Fingerprint(parts ...any) (string, error) {
	data, err := json.Marshal(parts)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// MustFingerprint is Fingerprint for values known to encode
func MustFingerprint(parts ...any) string {
	fp, err := Fingerprint(parts...)
	if err != nil {
		panic(err)
	}
	return fp
}

// PathHash returns a file-system safe digest of a source path
func PathHash(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}
