// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dsn parses and normalizes dataset connection strings.
//
// A dataset DSN is either a PostgreSQL URL (postgres:// or postgresql://) or a
// SQLite location (sqlite://<path> or file:<path>). An empty DSN selects the
// built-in sample dataset and is handled by the caller.
package dsn

import "fmt"

// DBType represents the type of database
type DBType string

const (
	DBTypePostgreSQL DBType = "postgresql"
	DBTypeSQLite     DBType = "sqlite"
	DBTypeUnknown    DBType = "unknown"
)

// Info contains parsed information from a DSN string.
type Info struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	// Database is the database name for PostgreSQL and the file path for SQLite.
	Database string
	Params   map[string]string
	Original string
}

// Resolver is an interface for database-specific DSN resolution
type Resolver interface {
	// Parse parses a DSN string into its parts.
	Parse(dsn string) (*Info, error)
	// Normalize converts parsed info into the connection string handed to the driver.
	Normalize(info *Info) (string, error)
}

// ParseError represents an error that occurred during DSN parsing
type ParseError struct {
	DSN    string
	Reason string
	Hint   string
}

func (e *ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("invalid DSN format: %s\nHint: %s", e.Reason, e.Hint)
	}
	return fmt.Sprintf("invalid DSN format: %s", e.Reason)
}

// NewParseError creates a new ParseError
func NewParseError(dsn, reason, hint string) *ParseError {
	return &ParseError{
		DSN:    dsn,
		Reason: reason,
		Hint:   hint,
	}
}
