// Package store provides typed, observable key-value stores over a
// repository.Backend.
//
// A Store[V] owns one backend namespace. Every Set and Delete refreshes the
// store's key list and synchronously calls the registered listeners, in
// registration order, before returning. Listeners therefore never observe a
// stale key list.
//
// The store is not safe for concurrent mutation; the editor drives it from a
// single event loop.
package store

import (
	"context"
	"errors"
	"fmt"

	"gatesim/internal/repository"
)

// Listener receives the namespace's key list after every mutation
type Listener func(keys []string)

// Store is a typed view of one backend namespace
type Store[V any] struct {
	backend   repository.Backend
	namespace string
	serde     SerDe[V]

	keys      []string
	listeners []Listener
}

// New opens a typed store over namespace and loads its current key list
func New[V any](ctx context.Context, backend repository.Backend, namespace string, serde SerDe[V]) (*Store[V], error) {
	s := &Store[V]{
		backend:   backend,
		namespace: namespace,
		serde:     serde,
	}
	keys, err := backend.Keys(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to load keys of %s: %w", namespace, err)
	}
	s.keys = keys
	return s, nil
}

// NewJSON opens a store whose values are JSON encoded
func NewJSON[V any](ctx context.Context, backend repository.Backend, namespace string) (*Store[V], error) {
	return New(ctx, backend, namespace, JSON[V]())
}

// Namespace returns the backend namespace the store owns
func (s *Store[V]) Namespace() string {
	return s.namespace
}

// Set writes v under key and notifies listeners
func (s *Store[V]) Set(ctx context.Context, key string, v V) error {
	data, err := s.serde.Serializer(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", s.namespace, key, err)
	}
	if err := s.backend.Put(ctx, s.namespace, key, data); err != nil {
		return err
	}
	return s.Reload(ctx)
}

// Get returns the value under key. The bool is false when the key is absent;
// the error is reserved for backend or decoding failures.
func (s *Store[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V

	data, err := s.backend.Get(ctx, s.namespace, key)
	if errors.Is(err, repository.ErrNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}

	v, err := s.serde.Deserializer(data)
	if err != nil {
		return zero, false, fmt.Errorf("failed to decode %s/%s: %w", s.namespace, key, err)
	}
	return v, true, nil
}

// Has reports whether key is present
func (s *Store[V]) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.backend.Get(ctx, s.namespace, key)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Delete removes key and notifies listeners
func (s *Store[V]) Delete(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, s.namespace, key); err != nil {
		return err
	}
	return s.Reload(ctx)
}

// Ls reads a fresh snapshot of the keys from the backend
func (s *Store[V]) Ls(ctx context.Context) ([]string, error) {
	return s.backend.Keys(ctx, s.namespace)
}

// Keys returns the key list as of the last mutation or Reload
func (s *Store[V]) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Reload re-reads the key list from the backend and notifies listeners. Call
// it after the backend was changed behind the store's back.
func (s *Store[V]) Reload(ctx context.Context) error {
	keys, err := s.backend.Keys(ctx, s.namespace)
	if err != nil {
		return fmt.Errorf("failed to list keys of %s: %w", s.namespace, err)
	}
	s.keys = keys
	s.notify()
	return nil
}

// OnChange registers a listener for key list changes. The returned function
// removes it.
func (s *Store[V]) OnChange(l Listener) func() {
	s.listeners = append(s.listeners, l)
	idx := len(s.listeners) - 1
	return func() {
		s.listeners[idx] = nil
	}
}

func (s *Store[V]) notify() {
	for _, l := range s.listeners {
		if l != nil {
			l(s.Keys())
		}
	}
}
