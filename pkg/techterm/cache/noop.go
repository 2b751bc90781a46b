package cache

import "context"

// NoOpCache never holds anything
type NoOpCache[T any] struct{}

// NewNoOp creates a disabled cache
func NewNoOp[T any]() *NoOpCache[T] {
	return &NoOpCache[T]{}
}

func (NoOpCache[T]) Load(context.Context, Key) (T, bool, error) {
	var zero T
	return zero, false, nil
}

func (NoOpCache[T]) Store(context.Context, Key, T) error { return nil }

func (NoOpCache[T]) Remove(context.Context, Key) error { return nil }

func (NoOpCache[T]) Purge(context.Context) error { return nil }
