// Package repotest holds the behavior suite every repository.Backend must pass.
package repotest

import (
	"context"
	"testing"

	"gatesim/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a backend produced by newBackend. Each subtest gets a fresh backend.
func Run(t *testing.T, newBackend func(t *testing.T) repository.Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("put then get", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Put(ctx, "ns", "k", []byte("v1")))

		got, err := b.Get(ctx, "ns", "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), got)
	})

	t.Run("put replaces", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Put(ctx, "ns", "k", []byte("v1")))
		require.NoError(t, b.Put(ctx, "ns", "k", []byte("v2")))

		got, err := b.Get(ctx, "ns", "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)

		keys, err := b.Keys(ctx, "ns")
		require.NoError(t, err)
		assert.Equal(t, []string{"k"}, keys)
	})

	t.Run("missing key is ErrNotFound", func(t *testing.T) {
		b := newBackend(t)
		_, err := b.Get(ctx, "ns", "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("empty value round trips", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Put(ctx, "ns", "empty", []byte{}))

		got, err := b.Get(ctx, "ns", "empty")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Put(ctx, "ns", "k", []byte("v")))
		require.NoError(t, b.Delete(ctx, "ns", "k"))

		_, err := b.Get(ctx, "ns", "k")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		// deleting again is fine
		assert.NoError(t, b.Delete(ctx, "ns", "k"))
	})

	t.Run("keys are sorted and namespaced", func(t *testing.T) {
		b := newBackend(t)
		for _, k := range []string{"charlie", "alpha", "bravo"} {
			require.NoError(t, b.Put(ctx, "one", k, []byte(k)))
		}
		require.NoError(t, b.Put(ctx, "two", "zulu", []byte("z")))
		require.NoError(t, b.Put(ctx, "on", "e", []byte("prefix trap")))

		keys, err := b.Keys(ctx, "one")
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "bravo", "charlie"}, keys)

		keys, err = b.Keys(ctx, "two")
		require.NoError(t, err)
		assert.Equal(t, []string{"zulu"}, keys)

		keys, err = b.Keys(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		b := newBackend(t)
		value := []byte("abc")
		require.NoError(t, b.Put(ctx, "ns", "k", value))
		value[0] = 'x'

		got, err := b.Get(ctx, "ns", "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)

		got[1] = 'y'
		again, err := b.Get(ctx, "ns", "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})

	t.Run("clear removes every namespace", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Put(ctx, "a", "1", []byte("x")))
		require.NoError(t, b.Put(ctx, "b", "2", []byte("y")))
		require.NoError(t, b.Clear(ctx))

		for _, ns := range []string{"a", "b"} {
			keys, err := b.Keys(ctx, ns)
			require.NoError(t, err)
			assert.Empty(t, keys)
		}
	})
}
