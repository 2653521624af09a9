package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gatesim/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Backend using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository. Use ":memory:" for a throwaway database.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func dsn(dbPath string) string {
	if dbPath == ":memory:" || strings.HasPrefix(dbPath, "file:") {
		return dbPath
	}
	return dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (namespace, key)
	);

	CREATE INDEX IF NOT EXISTS idx_kv_namespace ON kv(namespace);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Put inserts or replaces the value under key
func (r *Repository) Put(ctx context.Context, namespace, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, namespace, key, value)
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Get retrieves the value under key
func (r *Repository) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT value FROM kv WHERE namespace = ? AND key = ?
	`, namespace, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s/%s: %w", namespace, key, err)
	}
	return value, nil
}

// Delete removes the key
func (r *Repository) Delete(ctx context.Context, namespace, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE namespace = ? AND key = ?`, namespace, key)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Keys lists all keys of a namespace in lexicographic order
func (r *Repository) Keys(ctx context.Context, namespace string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key FROM kv WHERE namespace = ? ORDER BY key
	`, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to query keys of %s: %w", namespace, err)
	}
	defer rows.Close()

	keys, err := scanStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan keys of %s: %w", namespace, err)
	}
	return keys, nil
}

// Clear removes every key in every namespace
func (r *Repository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

var _ repository.Backend = (*Repository)(nil)
