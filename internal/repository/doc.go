// Package repository defines the storage backend abstraction for gatesim.
//
// A Backend is a namespaced byte key-value store. Every persisted concern of
// the editor (simulations, gate templates, command history, the selected
// simulation name) lives in its own namespace. Typed access, change
// notification and serialization are layered on top by the store package.
//
// # Implementations
//
// The sqlite subpackage is the default durable backend, a single kv table
// keyed by (namespace, key). The badger subpackage is an embedded LSM
// alternative. The memory subpackage keeps everything in maps and is used by
// tests and ephemeral sessions.
//
// # Semantics
//
// - Each key is independently atomic; there are no cross-key transactions
// - Get on a missing key returns ErrNotFound
// - Keys returns a snapshot sorted lexicographically
package repository
