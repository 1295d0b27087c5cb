// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"strings"
)

// SQLiteResolver handles sqlite://<path> and file:<path> locations.
type SQLiteResolver struct{}

// NewSQLiteResolver creates a new SQLite resolver
func NewSQLiteResolver() *SQLiteResolver {
	return &SQLiteResolver{}
}

// Parse extracts the file path and query parameters. ":memory:" is accepted as a path.
func (r *SQLiteResolver) Parse(dsn string) (*Info, error) {
	lower := strings.ToLower(dsn)
	var rest string
	switch {
	case strings.HasPrefix(lower, "sqlite://"):
		rest = dsn[len("sqlite://"):]
	case strings.HasPrefix(lower, "file:"):
		rest = dsn[len("file:"):]
	default:
		return nil, NewParseError(dsn, "missing or invalid scheme", "use sqlite://<path> or file:<path>")
	}

	path, params, _ := strings.Cut(rest, "?")
	if strings.TrimSpace(path) == "" {
		return nil, NewParseError(dsn, "missing database file", "format should be sqlite:///path/to/countries.db")
	}

	info := &Info{
		Type:     DBTypeSQLite,
		Database: path,
		Params:   make(map[string]string),
		Original: dsn,
	}
	for _, param := range strings.Split(params, "&") {
		if k, v, ok := strings.Cut(param, "="); ok {
			info.Params[k] = v
		}
	}
	return info, nil
}

// Normalize returns the form the sqlite driver opens: a plain path, or a file: URI
// when query parameters are present.
func (r *SQLiteResolver) Normalize(info *Info) (string, error) {
	if info == nil {
		return "", NewParseError("", "nil DSN info", "")
	}
	if len(info.Params) == 0 {
		return info.Database, nil
	}
	_, params, _ := strings.Cut(info.Original, "?")
	return "file:" + info.Database + "?" + params, nil
}
