package repository

import (
	"context"
	"errors"
)

// Namespaces used by the editor
const (
	NamespaceSimulations = "simulationStates"
	NamespaceHistory     = "commandHistory"
	NamespaceTemplates   = "componentTemplates"
	NamespaceSettings    = "settings"
)

// ErrNotFound is returned by Get when the key does not exist
var ErrNotFound = errors.New("repository: key not found")

// Backend is a durable namespaced byte key-value store
type Backend interface {
	// Put writes value under key, replacing any previous value
	Put(ctx context.Context, namespace, key string, value []byte) error
	// Get reads the value under key, or ErrNotFound
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, namespace, key string) error
	// Keys lists the keys of a namespace in lexicographic order
	Keys(ctx context.Context, namespace string) ([]string, error)
	// Clear removes every key of every namespace
	Clear(ctx context.Context) error

	// Close releases resources
	Close() error
}
