// Package badger provides a repository.Backend on top of BadgerDB.
//
// Keys are stored as "<namespace>\x00<key>", so a prefix scan over
// "<namespace>\x00" lists one namespace in lexicographic order.
package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"gatesim/internal/repository"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const separator = 0x00

// Config holds configuration for a BadgerDB backend
type Config struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM. Useful for testing.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool

	// Logger receives BadgerDB's internal log output. Nil disables it.
	Logger *zap.Logger
}

// DefaultConfig returns durable defaults for the given directory
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		SyncWrites: true,
	}
}

// InMemoryConfig returns configuration for tests
func InMemoryConfig() Config {
	return Config{
		InMemory:   true,
		SyncWrites: false,
	}
}

// badgerLogger adapts zap to BadgerDB's Logger interface
type badgerLogger struct {
	logger *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.logger.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.logger.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.logger.Infof(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.logger.Debugf(format, args...) }

// Repository implements repository.Backend using BadgerDB
type Repository struct {
	db *badger.DB
}

// New opens a BadgerDB backend
func New(cfg Config) (*Repository, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger.Named("badger").Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	return &Repository{db: db}, nil
}

func encodeKey(namespace, key string) []byte {
	b := make([]byte, 0, len(namespace)+1+len(key))
	b = append(b, namespace...)
	b = append(b, separator)
	return append(b, key...)
}

func namespacePrefix(namespace string) []byte {
	return append([]byte(namespace), separator)
}

func (r *Repository) Put(_ context.Context, namespace, key string, value []byte) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		v := make([]byte, len(value))
		copy(v, value)
		return txn.Set(encodeKey(namespace, key), v)
	})
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (r *Repository) Get(_ context.Context, namespace, key string) ([]byte, error) {
	var out []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(encodeKey(namespace, key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", namespace, key, err)
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

func (r *Repository) Delete(_ context.Context, namespace, key string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(encodeKey(namespace, key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (r *Repository) Keys(_ context.Context, namespace string) ([]string, error) {
	prefix := namespacePrefix(namespace)
	keys := make([]string, 0)

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k := it.Item().Key()
			keys = append(keys, string(bytes.TrimPrefix(k, prefix)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys of %s: %w", namespace, err)
	}
	return keys, nil
}

func (r *Repository) Clear(_ context.Context) error {
	if err := r.db.DropAll(); err != nil {
		return fmt.Errorf("failed to clear badger database: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

var _ repository.Backend = (*Repository)(nil)
