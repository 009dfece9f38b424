package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/genius-wizard-dev/storefront/internal/client/tokenstore/migrations"
	"github.com/genius-wizard-dev/storefront/internal/filex"
)

// RunMigrations applies the embedded schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate token db: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the SQLite database at path, migrates it
// and returns a store over it together with the handle, which the caller
// must close.
func Open(ctx context.Context, path string) (*SQLiteStore, *sql.DB, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, err
	}
	// SQLite serialises writers anyway; one connection avoids SQLITE_BUSY
	// between the refresh path and introspection.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return NewSQLiteStore(db), db, nil
}
