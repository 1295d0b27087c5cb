// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the client for the country data service.
// It defines the API contract the CLI depends on and an HTTP implementation of it.
package backend

import (
	"context"

	"countrydata/cli/internal/record"
)

// API defines backend operations the CLI depends on.
// Implementations may call the real HTTP endpoint or provide mocks for tests.
type API interface {
	// FetchCountryData posts the country name and returns the record the server sends back.
	// Failures are *errors.E values of kind validation, network, server or parse.
	FetchCountryData(ctx context.Context, countryName string) (record.Record, error)
	// Ping reports whether the service answers on its base URL.
	Ping(ctx context.Context) (Status, error)
}

// Status is the result of a liveness check.
type Status struct {
	Alive bool
	// StatusCode is the HTTP status of the check, zero when no response arrived.
	StatusCode int
	// Title is the <title> of the landing page, when it has one.
	Title string
}
