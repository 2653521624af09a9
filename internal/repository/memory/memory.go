// Package memory provides a map-backed repository.Backend for tests and
// ephemeral sessions. Nothing survives Close.
package memory

import (
	"context"
	"sort"
	"sync"

	"gatesim/internal/repository"
)

// Repository keeps every namespace in memory
type Repository struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// New creates an empty in-memory repository
func New() *Repository {
	return &Repository{
		data: make(map[string]map[string][]byte),
	}
}

func (r *Repository) Put(_ context.Context, namespace, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ns, ok := r.data[namespace]
	if !ok {
		ns = make(map[string][]byte)
		r.data[namespace] = ns
	}
	ns[key] = clone(value)
	return nil
}

func (r *Repository) Get(_ context.Context, namespace, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[namespace][key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(v), nil
}

func (r *Repository) Delete(_ context.Context, namespace, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data[namespace], key)
	return nil
}

func (r *Repository) Keys(_ context.Context, namespace string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.data[namespace]))
	for k := range r.data[namespace] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *Repository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = make(map[string]map[string][]byte)
	return nil
}

func (r *Repository) Close() error {
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

var _ repository.Backend = (*Repository)(nil)
