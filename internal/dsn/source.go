// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"os"
	"strings"
)

const (
	EnvDSN         = "COUNTRYDATA_DSN"
	EnvDatabaseURL = "DATABASE_URL"
)

// Origin names where a DSN was found.
type Origin string

const (
	OriginFlag     Origin = "--dataset flag"
	OriginEnv      Origin = EnvDSN + " environment variable"
	OriginDBURL    Origin = EnvDatabaseURL + " environment variable"
	OriginKeychain Origin = "OS keychain"
	OriginNone     Origin = "built-in sample"
)

// Resolve picks the dataset DSN in priority order: the explicit flag value, then
// COUNTRYDATA_DSN, then DATABASE_URL, then the stored value returned by stored.
// stored may be nil; its errors are treated as "nothing stored". An empty result
// with OriginNone selects the sample dataset.
func Resolve(flag string, stored func() (string, error)) (string, Origin) {
	if v := strings.TrimSpace(flag); v != "" {
		return v, OriginFlag
	}
	if v := strings.TrimSpace(os.Getenv(EnvDSN)); v != "" {
		return v, OriginEnv
	}
	if v := strings.TrimSpace(os.Getenv(EnvDatabaseURL)); v != "" {
		return v, OriginDBURL
	}
	if stored != nil {
		if v, err := stored(); err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), OriginKeychain
		}
	}
	return "", OriginNone
}
