package dataset

import (
	"context"
	"sort"

	"countrydata/cli/internal/record"
)

type sampleRow struct {
	country, gdp, population, company, revenue, profit string
}

var sampleRows = []sampleRow{
	{"United States", "$25.5 trillion (2023)", "331.9 million (2023)", "Apple Inc.", "$383.3 billion (2024)", "$97.0 billion (2024)"},
	{"China", "$17.7 trillion (2023)", "1.4 billion (2023)", "Tencent Holdings", "$86.2 billion (2024)", "$20.1 billion (2024)"},
	{"Japan", "$4.2 trillion (2023)", "125.1 million (2023)", "Toyota Motor Corporation", "$279.4 billion (2024)", "$18.1 billion (2024)"},
	{"Germany", "$4.3 trillion (2023)", "83.2 million (2023)", "Volkswagen Group", "$322.3 billion (2024)", "$15.8 billion (2024)"},
	{"India", "$3.7 trillion (2023)", "1.4 billion (2023)", "Reliance Industries", "$108.8 billion (2024)", "$8.1 billion (2024)"},
	{"United Kingdom", "$3.1 trillion (2023)", "67.3 million (2023)", "Shell plc", "$316.6 billion (2024)", "$28.4 billion (2024)"},
	{"France", "$2.9 trillion (2023)", "68.0 million (2023)", "LVMH", "$93.1 billion (2024)", "$16.5 billion (2024)"},
	{"Brazil", "$2.1 trillion (2023)", "215.3 million (2023)", "Petrobras", "$124.3 billion (2024)", "$26.9 billion (2024)"},
	{"Italy", "$2.1 trillion (2023)", "59.0 million (2023)", "Enel", "$95.2 billion (2024)", "$3.8 billion (2024)"},
	{"Canada", "$2.1 trillion (2023)", "38.2 million (2023)", "Shopify", "$5.6 billion (2024)", "$0.3 billion (2024)"},
}

func (r sampleRow) record() record.Record {
	return record.Record{
		{Key: "country", Value: record.String(r.country)},
		{Key: "gdp", Value: record.String(r.gdp)},
		{Key: "population", Value: record.String(r.population)},
		{Key: "top_company", Value: record.String(r.company)},
		{Key: "company_revenue", Value: record.String(r.revenue)},
		{Key: "company_profit", Value: record.String(r.profit)},
	}
}

// SampleRecords returns the built-in records keyed by country name.
func SampleRecords() map[string]record.Record {
	out := make(map[string]record.Record, len(sampleRows))
	for _, r := range sampleRows {
		out[r.country] = r.record()
	}
	return out
}

// Sample is the built-in dataset. It never fails a lookup: names it does not know
// get a record whose values are all N/A.
type Sample struct {
	records map[string]record.Record
}

// NewSample returns the built-in dataset.
func NewSample() *Sample {
	return &Sample{records: SampleRecords()}
}

func (s *Sample) Lookup(_ context.Context, name string) (record.Record, error) {
	if rec, ok := s.records[name]; ok {
		return append(record.Record(nil), rec...), nil
	}
	return Complete(nil, name), nil
}

func (s *Sample) Countries(context.Context) ([]string, error) {
	names := make([]string, 0, len(s.records))
	for n := range s.records {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Sample) Ping(context.Context) error { return nil }
func (s *Sample) Kind() string               { return "sample" }
func (s *Sample) Close() error               { return nil }
