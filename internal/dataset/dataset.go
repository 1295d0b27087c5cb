// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dataset provides the country records served by the development server.
//
// A Source is either the built-in sample (ten countries, every other name answered
// with N/A values) or a database table country_data(name, data) in PostgreSQL or
// SQLite. Database tables are created on open and seeded with the sample when empty.
package dataset

import (
	"context"
	"errors"
	"fmt"

	"countrydata/cli/internal/dsn"
	"countrydata/cli/internal/record"
)

// ErrNotFound is returned by database sources for names they do not hold.
var ErrNotFound = errors.New("country not found")

// NotAvailable fills fields the source has no value for.
const NotAvailable = "N/A"

// RequiredFields are present in every record a Source returns.
var RequiredFields = []string{"country", "gdp", "population", "top_company", "company_revenue", "company_profit"}

// Source looks up country records.
type Source interface {
	// Lookup returns the record stored for name.
	Lookup(ctx context.Context, name string) (record.Record, error)
	// Countries lists the names the source holds, sorted.
	Countries(ctx context.Context) ([]string, error)
	// Ping reports whether the source is usable.
	Ping(ctx context.Context) error
	// Kind names the backing store: "sample", "postgresql" or "sqlite".
	Kind() string
	Close() error
}

// Open returns the source for a dataset DSN. An empty DSN opens the sample.
func Open(ctx context.Context, dataset string) (Source, error) {
	if dataset == "" {
		return NewSample(), nil
	}
	info, err := dsn.ParseInfo(dataset)
	if err != nil {
		return nil, err
	}
	conn, err := dsn.Parse(dataset)
	if err != nil {
		return nil, err
	}
	switch info.Type {
	case dsn.DBTypePostgreSQL:
		return OpenPostgres(ctx, conn)
	case dsn.DBTypeSQLite:
		return OpenSQLite(ctx, conn)
	}
	return nil, fmt.Errorf("unsupported dataset type %q", info.Type)
}

// Complete returns rec with every required field present, in the order of
// RequiredFields followed by any extra fields. Missing values become N/A; a missing
// country becomes name.
func Complete(rec record.Record, name string) record.Record {
	out := make(record.Record, 0, len(rec)+len(RequiredFields))
	for _, key := range RequiredFields {
		if v, ok := rec.Get(key); ok {
			out = append(out, record.Field{Key: key, Value: v})
			continue
		}
		if key == "country" {
			out = append(out, record.Field{Key: key, Value: record.String(name)})
			continue
		}
		out = append(out, record.Field{Key: key, Value: record.String(NotAvailable)})
	}
	for _, f := range rec {
		if _, ok := out.Get(f.Key); !ok {
			out = append(out, f)
		}
	}
	return out
}
