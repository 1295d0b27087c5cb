package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"countrydata/cli/internal/record"
)

// Writer is a Source that stores records.
type Writer interface {
	Put(ctx context.Context, name string, rec record.Record) error
}

// ErrReadOnly is returned when importing into the built-in sample.
var ErrReadOnly = errors.New("the built-in sample is read-only; import into a postgres or sqlite dataset")

// Import reads a JSON object mapping country names to records and stores each one
// in src, in file order. It returns the number of records stored.
func Import(ctx context.Context, src Source, r io.Reader) (int, error) {
	w, ok := src.(Writer)
	if !ok {
		return 0, ErrReadOnly
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return 0, fmt.Errorf("read import: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return 0, errors.New("import must be a JSON object of country name to record")
	}

	n := 0
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return n, fmt.Errorf("read import: %w", err)
		}
		name := strings.TrimSpace(tok.(string))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return n, fmt.Errorf("read %s: %w", name, err)
		}
		if name == "" {
			return n, errors.New("import has an empty country name")
		}
		rec, err := record.Decode(raw)
		if err != nil {
			return n, fmt.Errorf("record %s: %w", name, err)
		}
		if err := w.Put(ctx, name, rec); err != nil {
			return n, fmt.Errorf("store %s: %w", name, err)
		}
		n++
	}
	if _, err := dec.Token(); err != nil {
		return n, fmt.Errorf("read import: %w", err)
	}
	return n, nil
}
