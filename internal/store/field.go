package store

import (
	"context"
	"fmt"

	"gatesim/internal/repository"
)

// Schema declares where a persisted scalar lives and what it defaults to
type Schema[V any] struct {
	Namespace string
	Key       string
	Default   V
}

// Field is a single persisted value: loaded when constructed, saved on every Set
type Field[V any] struct {
	store *Store[V]
	key   string
	value V
}

// NewField opens the field described by schema and loads its value, falling
// back to the default when nothing is stored yet
func NewField[V any](ctx context.Context, backend repository.Backend, schema Schema[V]) (*Field[V], error) {
	s, err := NewJSON[V](ctx, backend, schema.Namespace)
	if err != nil {
		return nil, err
	}

	f := &Field[V]{store: s, key: schema.Key, value: schema.Default}
	v, ok, err := s.Get(ctx, schema.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s/%s: %w", schema.Namespace, schema.Key, err)
	}
	if ok {
		f.value = v
	}
	return f, nil
}

// Get returns the current value
func (f *Field[V]) Get() V {
	return f.value
}

// Set updates the value and persists it
func (f *Field[V]) Set(ctx context.Context, v V) error {
	if err := f.store.Set(ctx, f.key, v); err != nil {
		return err
	}
	f.value = v
	return nil
}
