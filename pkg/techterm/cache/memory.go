package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryCache keeps encoded values in process memory. Values are stored as
// JSON so callers never share state with the cache.
type MemoryCache[T any] struct {
	mu      sync.RWMutex
	entries map[Key][]byte
}

// NewMemory creates an empty in-memory cache
func NewMemory[T any]() *MemoryCache[T] {
	return &MemoryCache[T]{entries: make(map[Key][]byte)}
}

func (c *MemoryCache[T]) Load(_ context.Context, key Key) (T, bool, error) {
	var value T
	c.mu.RLock()
	data, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return value, false, nil
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("decode cache entry: %w", err)
	}
	return value, true, nil
}

func (c *MemoryCache[T]) Store(_ context.Context, key Key, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	c.mu.Lock()
	c.entries[key] = data
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache[T]) Remove(_ context.Context, key Key) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache[T]) Purge(context.Context) error {
	c.mu.Lock()
	c.entries = make(map[Key][]byte)
	c.mu.Unlock()
	return nil
}

// Len returns the number of entries
func (c *MemoryCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
