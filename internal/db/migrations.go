package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Migration is one schema version.
type Migration struct {
	Version int
	UpSQL   string
	DownSQL string
}

// Version 1 stored pinned items without a grid position. Version 2 added
// nullable position columns; rows written by version 1 keep NULL there and
// are read back at the default cell.
var migrations = []Migration{
	{
		Version: 1,
		UpSQL: `
CREATE TABLE IF NOT EXISTS pinned_items (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	kind       TEXT NOT NULL CHECK(kind IN ('app', 'file', 'shortcut')),
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`,
		DownSQL: `DROP TABLE IF EXISTS pinned_items;`,
	},
	{
		Version: 2,
		UpSQL: `
ALTER TABLE pinned_items ADD COLUMN grid_row INTEGER;
ALTER TABLE pinned_items ADD COLUMN grid_col INTEGER;
`,
		DownSQL: `
ALTER TABLE pinned_items DROP COLUMN grid_col;
ALTER TABLE pinned_items DROP COLUMN grid_row;
`,
	},
}

// SchemaVersion is the latest migration version.
func SchemaVersion() int {
	return migrations[len(migrations)-1].Version
}

// ApplyMigrations brings db up to the latest schema version.
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	return applyMigrations(ctx, db, SchemaVersion())
}

// applyMigrations applies every pending migration up to and including
// version target.
func applyMigrations(ctx context.Context, db *sql.DB, target int) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations(version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	for _, m := range migrations {
		if m.Version > target {
			break
		}

		var exists int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM schema_migrations WHERE version = ?`, m.Version).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking migration %d: %w", m.Version, err)
		}

		if err := applyOne(ctx, db, m); err != nil {
			return err
		}
	}
	return nil
}

func applyOne(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning migration %d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.UpSQL); err != nil {
		return fmt.Errorf("applying migration %d: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations(version, applied_at) VALUES (?, datetime('now'))`, m.Version); err != nil {
		return fmt.Errorf("recording migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration %d: %w", m.Version, err)
	}
	return nil
}

// currentVersion returns the highest applied migration, or 0.
func currentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v sql.NullInt64
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return int(v.Int64), nil
}
