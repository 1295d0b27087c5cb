// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dataset

import (
	"context"
	"errors"
	"fmt"

	"countrydata/cli/internal/record"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The json (not jsonb) column type keeps the document text, so key order survives.
const pgCreateTable = `CREATE TABLE IF NOT EXISTS country_data (
	name TEXT PRIMARY KEY,
	data JSON NOT NULL
)`

// Postgres is a dataset stored in a PostgreSQL table.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects, creates the table if needed and seeds it when empty.
func OpenPostgres(ctx context.Context, conn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, conn)
	if err != nil {
		return nil, err
	}
	p := &Postgres{pool: pool}
	if err := p.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, pgCreateTable); err != nil {
		return fmt.Errorf("create country_data: %w", err)
	}
	var n int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM country_data`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	err = seedSample(ctx, func(ctx context.Context, name string, data []byte) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO country_data (name, data) VALUES ($1, $2::text::json) ON CONFLICT (name) DO NOTHING`,
			name, string(data))
		return err
	})
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Put stores rec under name, replacing any previous record.
func (p *Postgres) Put(ctx context.Context, name string, rec record.Record) error {
	data, err := rec.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO country_data (name, data) VALUES ($1, $2::text::json)
		 ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data`,
		name, string(data))
	return err
}

func (p *Postgres) Lookup(ctx context.Context, name string) (record.Record, error) {
	var data string
	err := p.pool.QueryRow(ctx, `SELECT data::text FROM country_data WHERE name = $1`, name).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeStored(name, []byte(data))
}

func (p *Postgres) Countries(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT name FROM country_data ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }
func (p *Postgres) Kind() string                   { return "postgresql" }

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
