package record

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PreservesOrder(t *testing.T) {
	rec, err := Decode([]byte(`{"zeta": 1, "alpha": "a", "mid": true}`))
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, rec.Keys()); diff != "" {
		t.Fatal(diff)
	}
}

func TestDecode_ValueKinds(t *testing.T) {
	rec, err := Decode([]byte(`{
		"capital": "Paris",
		"population": 68000000,
		"gdp": 2.9e12,
		"eu": true,
		"monarch": null,
		"languages": ["French", "Breton"],
		"mixed": [1, "two", false, null],
		"nested": {"a": [1, 2]},
		"grid": [[1, 2], [3]]
	}`))
	require.NoError(t, err)

	tests := []struct {
		key  string
		kind Kind
		text string
	}{
		{"capital", KindString, "Paris"},
		{"population", KindNumber, "68000000"},
		{"gdp", KindNumber, "2900000000000"},
		{"eu", KindBool, "true"},
		{"monarch", KindNull, ""},
		{"languages", KindArray, "French, Breton"},
		{"mixed", KindArray, "1, two, false, "},
		{"nested", KindRaw, `{"a":[1,2]}`},
		{"grid", KindArray, "[1,2], [3]"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, ok := rec.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.text, v.Text())
		})
	}
}

func TestDecode_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	rec, err := Decode([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, rec.Keys())
	v, _ := rec.Get("a")
	assert.Equal(t, "3", v.Text())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ``},
		{"array", `["France"]`},
		{"string", `"France"`},
		{"truncated", `{"capital": "Par`},
		{"trailing", `{"a": 1} {"b": 2}`},
		{"html", `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			assert.Error(t, err)
		})
	}

	_, err := Decode([]byte(`[1]`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestRecord_Indent(t *testing.T) {
	rec, err := Decode([]byte(`{"capital": "Paris", "languages": ["French"]}`))
	require.NoError(t, err)

	got, err := rec.Indent()
	require.NoError(t, err)

	want := "{\n  \"capital\": \"Paris\",\n  \"languages\": [\n    \"French\"\n  ]\n}"
	assert.Equal(t, want, got)
}

func TestRecord_IndentEmpty(t *testing.T) {
	got, err := Record{}.Indent()
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestRecord_MarshalJSON_NoHTMLEscape(t *testing.T) {
	rec := Record{}.
		Set("top_company", String("AT&T <Inc>")).
		Set("flags", Array(Bool(true), Null()))

	b, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"top_company":"AT&T <Inc>","flags":[true,null]}`, string(b))
}

func TestRecord_UnmarshalJSON(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"b": 1, "a": 2}`), &rec))
	assert.Equal(t, []string{"b", "a"}, rec.Keys())
}
