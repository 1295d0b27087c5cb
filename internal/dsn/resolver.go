// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"strings"
)

const schemeHint = "use postgres://, postgresql://, sqlite:// or file:"

// DetectDBType detects the database type from a DSN string
func DetectDBType(dsn string) DBType {
	lower := strings.ToLower(strings.TrimSpace(dsn))

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DBTypePostgreSQL
	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "file:"):
		return DBTypeSQLite
	}
	return DBTypeUnknown
}

func resolverFor(dsn string) (Resolver, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, NewParseError(dsn, "empty DSN", "provide a valid database connection string")
	}
	switch DetectDBType(dsn) {
	case DBTypePostgreSQL:
		return NewPostgreSQLResolver(), nil
	case DBTypeSQLite:
		return NewSQLiteResolver(), nil
	}
	return nil, NewParseError(dsn, "unknown database type", schemeHint)
}

// Parse parses a DSN string and returns the normalized connection string.
// This is the main entry point for DSN parsing.
func Parse(dsn string) (string, error) {
	info, err := ParseInfo(dsn)
	if err != nil {
		return "", err
	}
	r, _ := resolverFor(dsn)
	return r.Normalize(info)
}

// ParseInfo parses a DSN string and returns detailed DSN info.
func ParseInfo(dsn string) (*Info, error) {
	r, err := resolverFor(dsn)
	if err != nil {
		return nil, err
	}
	return r.Parse(strings.TrimSpace(dsn))
}
