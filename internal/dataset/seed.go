package dataset

import (
	"context"
	"fmt"
	"sort"

	"countrydata/cli/internal/record"
)

// seedFunc stores one encoded record.
type seedFunc func(ctx context.Context, name string, data []byte) error

// seedSample writes every sample record through put, in name order.
func seedSample(ctx context.Context, put seedFunc) error {
	recs := SampleRecords()
	names := make([]string, 0, len(recs))
	for n := range recs {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		data, err := recs[n].MarshalJSON()
		if err != nil {
			return err
		}
		if err := put(ctx, n, data); err != nil {
			return fmt.Errorf("seed %s: %w", n, err)
		}
	}
	return nil
}

// decodeStored parses a stored document and completes it for name.
func decodeStored(name string, data []byte) (record.Record, error) {
	rec, err := record.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("stored data for %s: %w", name, err)
	}
	return Complete(rec, name), nil
}
