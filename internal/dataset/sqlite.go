package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"countrydata/cli/internal/record"

	_ "modernc.org/sqlite"
)

const sqliteCreateTable = `CREATE TABLE IF NOT EXISTS country_data (
	name TEXT PRIMARY KEY,
	data TEXT NOT NULL
)`

// SQLite is a dataset stored in a SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path, creates the table and
// seeds it when empty. ":memory:" gives a private in-memory dataset.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection serializes writers and keeps an in-memory database alive.
	db.SetMaxOpenConns(1)
	s := &SQLite{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, sqliteCreateTable); err != nil {
		return fmt.Errorf("create country_data: %w", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM country_data`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	err = seedSample(ctx, func(ctx context.Context, name string, data []byte) error {
		_, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO country_data (name, data) VALUES (?, ?)`, name, string(data))
		return err
	})
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Put stores rec under name, replacing any previous record.
func (s *SQLite) Put(ctx context.Context, name string, rec record.Record) error {
	data, err := rec.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO country_data (name, data) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET data = excluded.data`,
		name, string(data))
	return err
}

func (s *SQLite) Lookup(ctx context.Context, name string) (record.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM country_data WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeStored(name, []byte(data))
}

func (s *SQLite) Countries(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM country_data ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *SQLite) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
func (s *SQLite) Kind() string                   { return "sqlite" }
func (s *SQLite) Close() error                   { return s.db.Close() }
