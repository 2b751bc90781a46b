package cache

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// Layer wraps a backend with the pipeline's failure policy: load errors are
// misses, store errors are logged and dropped. Concurrent computations of the
// same key are collapsed.
type Layer[T any] struct {
	name    string
	backend Cache[T]
	metrics *Metrics
	logger  *slog.Logger
	group   singleflight.Group
}

// NewLayer names a backend for logging and metrics. metrics may be nil.
func NewLayer[T any](name string, backend Cache[T], metrics *Metrics, logger *slog.Logger) *Layer[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Layer[T]{
		name:    name,
		backend: backend,
		metrics: metrics,
		logger:  logger.With("layer", name),
	}
}

// Name returns the layer name
func (l *Layer[T]) Name() string { return l.name }

// Load returns the cached value for key, treating any backend error as a miss
func (l *Layer[T]) Load(ctx context.Context, key Key) (T, bool) {
	value, ok, err := l.backend.Load(ctx, key)
	switch {
	case err != nil:
		l.logger.Warn("cache load failed", "path", key.Path, "error", err)
		l.metrics.lookup(l.name, ResultError)
		var zero T
		return zero, false
	case ok:
		l.metrics.lookup(l.name, ResultHit)
	default:
		l.metrics.lookup(l.name, ResultMiss)
	}
	return value, ok
}

// Store writes value, logging a failure instead of returning it
func (l *Layer[T]) Store(ctx context.Context, key Key, value T) {
	if err := l.backend.Store(ctx, key, value); err != nil {
		l.logger.Warn("cache store failed", "path", key.Path, "error", err)
		l.metrics.store(l.name, ResultError)
		return
	}
	l.metrics.store(l.name, ResultOK)
}

// Remove deletes key, logging a failure
func (l *Layer[T]) Remove(ctx context.Context, key Key) {
	if err := l.backend.Remove(ctx, key); err != nil {
		l.logger.Warn("cache remove failed", "path", key.Path, "error", err)
	}
}

// Purge drops every entry of the layer when the backend supports it
func (l *Layer[T]) Purge(ctx context.Context) error {
	p, ok := l.backend.(Purger)
	if !ok {
		return nil
	}
	return p.Purge(ctx)
}

// GetOrCompute returns the cached value for key or computes and stores it.
// With reuse false the cache is not consulted, which is how a recomputed
// upstream layer invalidates this one; the fresh value still overwrites the
// entry. The returned bool reports a cache hit.
func (l *Layer[T]) GetOrCompute(ctx context.Context, key Key, reuse bool, compute func(context.Context) (T, error)) (T, bool, error) {
	if reuse {
		if value, ok := l.Load(ctx, key); ok {
			return value, true, nil
		}
	} else {
		l.metrics.lookup(l.name, ResultSkip)
	}

	v, err, _ := l.group.Do(key.String(), func() (any, error) {
		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		l.Store(ctx, key, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	value, _ := v.(T)
	return value, false, nil
}
