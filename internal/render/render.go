// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package render turns a country record into what the user sees: a two-column table
// of formatted field names and values, or indented JSON that can be decorated per token.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"countrydata/cli/internal/record"
)

// Mode selects how a record is displayed.
type Mode int

const (
	ModeTable Mode = iota
	ModeJSON
)

func (m Mode) String() string {
	if m == ModeJSON {
		return "json"
	}
	return "table"
}

// Row is one displayed table row.
type Row struct {
	Key   string
	Value string
}

// Output is the result of rendering a record in one mode.
// Rows is set in table mode; JSON (and Decorated, when a decorator is configured)
// in JSON mode.
type Output struct {
	Mode      Mode
	Rows      []Row
	JSON      string
	Decorated string
}

// Text returns the JSON to print: the decorated form when there is one.
func (o Output) Text() string {
	if o.Decorated != "" {
		return o.Decorated
	}
	return o.JSON
}

// Renderer renders records. A nil Decorator leaves JSON undecorated.
type Renderer struct {
	Decorator Decorator
}

// Render builds the output of rec in the given mode.
func (r *Renderer) Render(rec record.Record, mode Mode) (Output, error) {
	if mode == ModeTable {
		return Output{Mode: ModeTable, Rows: TableRows(rec)}, nil
	}
	text, err := rec.Indent()
	if err != nil {
		return Output{}, err
	}
	out := Output{Mode: ModeJSON, JSON: text}
	if r != nil && r.Decorator != nil {
		out.Decorated = Highlight(text, r.Decorator)
	}
	return out, nil
}

// TableRows returns one row per field, in record order.
func TableRows(rec record.Record) []Row {
	rows := make([]Row, 0, len(rec))
	for _, f := range rec {
		rows = append(rows, Row{Key: FormatKey(f.Key), Value: f.Value.Text()})
	}
	return rows
}

// FormatKey turns a camelCase key into a title: the first letter is upper-cased and a
// space is inserted before every following ASCII capital. Acronyms and digits get no
// special treatment: "gdpPerCapita" becomes "Gdp Per Capita", "topCEO" becomes
// "Top C E O" and "top_company" becomes "Top_company".
func FormatKey(key string) string {
	if key == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(key)
	var b strings.Builder
	b.Grow(len(key) + 4)
	b.WriteRune(unicode.ToUpper(first))
	for _, r := range key[size:] {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
