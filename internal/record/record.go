// Package record models the country data returned by the backend.
//
// The field set is defined by the server and is not fixed, so a Record is an ordered
// list of key/value pairs rather than a struct. Order is the order in which the keys
// appeared in the JSON response, which is also the order in which they are displayed.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind tags the shape of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	// KindArray is an ordered sequence of values.
	KindArray
	// KindRaw holds nested JSON (objects, arrays of arrays) verbatim.
	KindRaw
)

// Value is a tagged scalar, array or raw JSON fragment.
type Value struct {
	kind  Kind
	str   string
	num   json.Number
	b     bool
	items []Value
	raw   json.RawMessage
}

func Null() Value                 { return Value{kind: KindNull} }
func String(s string) Value      { return Value{kind: KindString, str: s} }
func Number(n json.Number) Value { return Value{kind: KindNumber, num: n} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func Array(items ...Value) Value { return Value{kind: KindArray, items: items} }

// Raw keeps a JSON fragment as-is. The fragment is compacted.
func Raw(msg json.RawMessage) Value {
	var buf bytes.Buffer
	if err := json.Compact(&buf, msg); err != nil {
		return Value{kind: KindRaw, raw: append(json.RawMessage(nil), msg...)}
	}
	return Value{kind: KindRaw, raw: buf.Bytes()}
}

func (v Value) Kind() Kind { return v.kind }

// Text renders the value the way a browser would put it into a text node:
// strings verbatim, numbers in their shortest form, null as empty, arrays joined with ", ".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindArray:
		parts := make([]string, len(v.items))
		for i, it := range v.items {
			parts[i] = it.Text()
		}
		return strings.Join(parts, ", ")
	case KindRaw:
		return string(v.raw)
	default:
		return ""
	}
}

// MarshalJSON implements json.Marshaler without HTML escaping.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		writeString(buf, v.str)
	case KindNumber:
		if v.num == "" {
			buf.WriteString("0")
			return nil
		}
		buf.WriteString(formatNumber(v.num))
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindArray:
		buf.WriteByte('[')
		for i, it := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := it.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindRaw:
		buf.Write(v.raw)
	default:
		return fmt.Errorf("record: unknown value kind %d", v.kind)
	}
	return nil
}

// Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value Value
}

// Record is an ordered country record.
type Record []Field

// Get returns the value stored under key.
func (r Record) Get(key string) (Value, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Set replaces the value of an existing key in place or appends a new field.
func (r Record) Set(key string, v Value) Record {
	for i := range r {
		if r[i].Key == key {
			r[i].Value = v
			return r
		}
	}
	return append(r, Field{Key: key, Value: v})
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// MarshalJSON writes the record as a JSON object, preserving field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(&buf, f.Key)
		buf.WriteByte(':')
		if err := f.Value.writeJSON(&buf); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Indent returns the record as JSON indented with two spaces.
func (r Record) Indent() (string, error) {
	compact, err := r.MarshalJSON()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := Decode(data)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// ErrNotObject is returned when the payload is valid JSON but not an object.
var ErrNotObject = errors.New("record: payload is not a JSON object")

// Decode parses a JSON object into a Record, keeping key order.
func Decode(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}

	rec := Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("record: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("record: unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("record: field %q: %w", key, err)
		}
		v, err := decodeValue(raw, true)
		if err != nil {
			return nil, fmt.Errorf("record: field %q: %w", key, err)
		}
		rec = rec.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("record: trailing data after object")
	}
	return rec, nil
}

// decodeValue converts one JSON fragment. Arrays are only unpacked at the top level;
// anything deeper stays raw.
func decodeValue(raw json.RawMessage, allowArray bool) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Value{}, errors.New("empty value")
	}
	switch trimmed[0] {
	case 'n':
		return Null(), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Value{}, err
		}
		return String(s), nil
	case '{':
		return Raw(trimmed), nil
	case '[':
		if !allowArray {
			return Raw(trimmed), nil
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return Value{}, err
		}
		items := make([]Value, 0, len(elems))
		for _, e := range elems {
			it, err := decodeValue(e, false)
			if err != nil {
				return Value{}, err
			}
			items = append(items, it)
		}
		return Array(items...), nil
	default:
		return Number(json.Number(trimmed)), nil
	}
}
