package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"

	"navigator/internal/log"
)

// Migration is one step of the schema history.
type Migration struct {
	ID          int
	Description string
	SQL         string
}

// migrations are applied in order; never edit one that has shipped.
var migrations = []Migration{
	{
		ID:          1,
		Description: "Scripts and their steps",
		SQL: `
CREATE TABLE IF NOT EXISTS scripts (
	name        TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT '',
	created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS script_steps (
	script_name TEXT NOT NULL REFERENCES scripts(name) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	input       TEXT NOT NULL,
	mode        TEXT NOT NULL DEFAULT 'silent',
	PRIMARY KEY (script_name, position)
);`,
	},
}

func (s *Store) runMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return errors.Wrap(err, "create schema_version table")
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return errors.Wrap(err, "get current schema version")
	}

	for _, m := range migrations {
		if m.ID <= current {
			continue
		}
		log.Info("applying store migration", "id", m.ID, "description", m.Description)
		if err := s.applyMigration(ctx, m); err != nil {
			return errors.Wrapf(err, "apply migration %d", m.ID)
		}
	}
	return nil
}

func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version;`).Scan(&version)
	return version, err
}

func (s *Store) applyMigration(ctx context.Context, m Migration) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range strings.Split(m.SQL, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return errors.Wrap(err, "execute migration statement")
			}
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?);`, m.ID)
		return errors.Wrap(err, "record migration")
	})
}
