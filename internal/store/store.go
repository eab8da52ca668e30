// Package store keeps named scripts in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"

	"navigator/internal/log"
	"navigator/internal/script"
)

// ErrNotFound is returned when no script has the requested name.
var ErrNotFound = errors.New("store: script not found")

// Summary describes a stored script without its steps.
type Summary struct {
	Name        string
	Description string
	Steps       int
}

// Store is safe for concurrent use; database/sql serializes access.
type Store struct {
	db   *sql.DB
	path string
	sq   squirrel.StatementBuilderType
}

// Open opens (creating if needed) the database at path and brings its schema
// up to date. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "store: create directory")
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, errors.Wrap(err, "store: open database")
	}
	// A single connection keeps ":memory:" databases alive and avoids
	// SQLITE_BUSY between our own writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: ping database")
	}

	s := &Store{
		db:   db,
		path: path,
		sq:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
	if err := s.runMigrations(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: run migrations")
	}

	log.Debug("store opened", "path", path)
	return s, nil
}

// Path is where the database lives.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts sc or replaces the stored script of the same name.
func (s *Store) Save(ctx context.Context, sc *script.Script) error {
	if sc.Name == "" {
		return errors.New("store: script has no name")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		upsert := s.sq.Insert("scripts").
			Columns("name", "description").
			Values(sc.Name, sc.Description).
			Suffix("ON CONFLICT(name) DO UPDATE SET description = excluded.description, updated_at = CURRENT_TIMESTAMP")
		if _, err := upsert.RunWith(tx).ExecContext(ctx); err != nil {
			return errors.Wrapf(err, "store: save script %q", sc.Name)
		}

		wipe := s.sq.Delete("script_steps").Where(squirrel.Eq{"script_name": sc.Name})
		if _, err := wipe.RunWith(tx).ExecContext(ctx); err != nil {
			return errors.Wrapf(err, "store: clear steps of %q", sc.Name)
		}

		if len(sc.Steps) == 0 {
			return nil
		}
		insert := s.sq.Insert("script_steps").Columns("script_name", "position", "input", "mode")
		for i, step := range sc.Steps {
			mode := step.Mode
			if mode == "" {
				mode = script.ModeSilent
			}
			insert = insert.Values(sc.Name, i, step.Input, string(mode))
		}
		if _, err := insert.RunWith(tx).ExecContext(ctx); err != nil {
			return errors.Wrapf(err, "store: insert steps of %q", sc.Name)
		}
		return nil
	})
}

// Load returns the named script, or ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) (*script.Script, error) {
	sc := &script.Script{Name: name}

	query := s.sq.Select("description").From("scripts").Where(squirrel.Eq{"name": name})
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&sc.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "store: load script %q", name)
	}

	rows, err := s.sq.Select("input", "mode").
		From("script_steps").
		Where(squirrel.Eq{"script_name": name}).
		OrderBy("position").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "store: load steps of %q", name)
	}
	defer rows.Close()

	for rows.Next() {
		var input, mode string
		if err := rows.Scan(&input, &mode); err != nil {
			return nil, errors.Wrap(err, "store: scan step")
		}
		m, err := script.ParseMode(mode)
		if err != nil {
			return nil, errors.Wrapf(err, "store: script %q", name)
		}
		sc.Steps = append(sc.Steps, script.Step{Input: input, Mode: m})
	}
	return sc, errors.Wrap(rows.Err(), "store: iterate steps")
}

// List returns every stored script ordered by name.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.sq.Select("s.name", "s.description", "COUNT(st.position)").
		From("scripts s").
		LeftJoin("script_steps st ON st.script_name = s.name").
		GroupBy("s.name", "s.description").
		OrderBy("s.name").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "store: list scripts")
	}
	defer rows.Close()

	var list []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.Name, &sum.Description, &sum.Steps); err != nil {
			return nil, errors.Wrap(err, "store: scan summary")
		}
		list = append(list, sum)
	}
	return list, errors.Wrap(rows.Err(), "store: iterate scripts")
}

// Delete removes the named script and its steps, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.sq.Delete("scripts").Where(squirrel.Eq{"name": name}).RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return errors.Wrapf(err, "store: delete script %q", name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "store: rows affected")
	}
	if n == 0 {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}
