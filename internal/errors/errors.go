// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure of a country-data request is one of four kinds: the user made no
// selection, the request never completed, the server answered with a non-2xx status,
// or the response body could not be parsed. The kind drives how the failure is shown;
// the message is what the user reads.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// KindValidation indicates a local input problem; no request was sent.
	KindValidation Kind = "validation_failed"
	// KindNetwork indicates the request could not be sent or completed.
	KindNetwork Kind = "network_error"
	// KindServer indicates a non-2xx response.
	KindServer Kind = "server_error"
	// KindParse indicates a malformed response body.
	KindParse Kind = "parse_error"
)

// E wraps an error with kind and human-friendly message.
// Status carries the HTTP status for KindServer and is zero otherwise.
type E struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Server builds a KindServer error for the given status code.
func Server(status int, msg string) *E {
	return &E{Kind: KindServer, Message: msg, Status: status}
}

// KindOf returns the kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
