// Package sqlite is a cache backend storing every layer in one SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/techterm/pkg/techterm/cache"
)

// DB is an open cache database shared by the layers
type DB struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and creates the schema
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS cache_entries (
	layer TEXT NOT NULL,
	path TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	payload TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY(layer, path, fingerprint)
);

CREATE INDEX IF NOT EXISTS idx_cache_entries_layer ON cache_entries(layer);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Cache is one layer of the database
type Cache[T any] struct {
	db    *DB
	layer string
}

var _ cache.Cache[int] = (*Cache[int])(nil)

// NewCache returns the layer view of db
func NewCache[T any](db *DB, layer string) *Cache[T] {
	return &Cache[T]{db: db, layer: layer}
}

func (c *Cache[T]) Load(ctx context.Context, key cache.Key) (T, bool, error) {
	var value T
	var payload string
	err := c.db.db.QueryRowContext(ctx, `
SELECT payload FROM cache_entries
WHERE layer = ? AND path = ? AND fingerprint = ?
`, c.layer, key.Path, key.Fingerprint).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("query cache entry: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return value, false, fmt.Errorf("decode cache entry: %w", err)
	}
	return value, true, nil
}

func (c *Cache[T]) Store(ctx context.Context, key cache.Key, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	_, err = c.db.db.ExecContext(ctx, `
INSERT INTO cache_entries (layer, path, fingerprint, payload, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(layer, path, fingerprint) DO UPDATE SET
	payload=excluded.payload,
	updated_at=excluded.updated_at;
`, c.layer, key.Path, key.Fingerprint, string(payload), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (c *Cache[T]) Remove(ctx context.Context, key cache.Key) error {
	_, err := c.db.db.ExecContext(ctx, `
DELETE FROM cache_entries WHERE layer = ? AND path = ? AND fingerprint = ?
`, c.layer, key.Path, key.Fingerprint)
	return err
}

// Purge deletes every entry of the layer
func (c *Cache[T]) Purge(ctx context.Context) error {
	_, err := c.db.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE layer = ?`, c.layer)
	return err
}

// Count returns the number of entries in the layer
func (c *Cache[T]) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cache_entries WHERE layer = ?`, c.layer).Scan(&n)
	return n, err
}
