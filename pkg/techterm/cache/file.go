package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileCache persists JSON values under dir/layer/<sha256(path)>/<fingerprint>.json.
// Writes go to a temporary file in the same directory and are renamed into
// place, so a concurrent Load sees either the old or the new value.
type FileCache[T any] struct {
	dir   string
	layer string
}

// NewFile creates a file cache rooted at dir
func NewFile[T any](dir, layer string) *FileCache[T] {
	return &FileCache[T]{dir: dir, layer: layer}
}

func (c *FileCache[T]) layerDir() string {
	return filepath.Join(c.dir, c.layer)
}

func (c *FileCache[T]) path(key Key) string {
	return filepath.Join(c.layerDir(), PathHash(key.Path), PathHash(key.Fingerprint)+".json")
}

func (c *FileCache[T]) Load(ctx context.Context, key Key) (T, bool, error) {
	var value T
	if err := ctx.Err(); err != nil {
		return value, false, err
	}
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("read cache entry: %w", err)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("decode cache entry %s: %w", c.path(key), err)
	}
	return value, true, nil
}

func (c *FileCache[T]) Store(ctx context.Context, key Key, value T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	target := c.path(key)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close cache entry: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

func (c *FileCache[T]) Remove(ctx context.Context, key Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cache entry: %w", err)
	}
	return nil
}

// Purge deletes the whole layer directory
func (c *FileCache[T]) Purge(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.RemoveAll(c.layerDir())
}
