package badger

import (
	"context"
	"testing"

	"gatesim/internal/repository"
	"gatesim/internal/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestBackend(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Backend {
		return newTestRepo(t)
	})
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestEncodeKey(t *testing.T) {
	assert.Equal(t, []byte("ns\x00key"), encodeKey("ns", "key"))
	assert.Equal(t, []byte("ns\x00"), namespacePrefix("ns"))
}

func TestPersistentReopen(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig(t.TempDir())
	cfg.Logger = zap.NewNop()

	repo, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, repo.Put(ctx, repository.NamespaceTemplates, "and", []byte(`{"name":"and"}`)))
	require.NoError(t, repo.Close())

	reopened, err := New(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	keys, err := reopened.Keys(ctx, repository.NamespaceTemplates)
	require.NoError(t, err)
	assert.Equal(t, []string{"and"}, keys)
}
