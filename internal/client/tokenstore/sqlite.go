package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/genius-wizard-dev/storefront/internal/common"
	"github.com/genius-wizard-dev/storefront/internal/dbx"
)

// SQLiteStore keeps the token in the metadata table of a local SQLite
// database, so it survives process restarts.
type SQLiteStore struct {
	db  dbx.DBTX
	key string
}

// NewSQLiteStore wraps an already migrated database handle.
func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db, key: common.AccessTokenKey}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get metadata[%s]: %w", s.key, err)
	}
	return string(value), len(value) > 0, nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, s.key, []byte(token))
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", s.key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, s.key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", s.key, err)
	}
	return nil
}

func (s *SQLiteStore) ClearIf(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ? AND value = ?`, s.key, []byte(token))
	if err != nil {
		return false, fmt.Errorf("failed to delete metadata[%s]: %w", s.key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete metadata[%s]: %w", s.key, err)
	}
	return n > 0, nil
}
