package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"countrydata/cli/internal/countries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config dir at a temp dir and clears the overrides.
func isolate(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv(EnvVariant, "")
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvVerbose, "")
	return filepath.Join(base, AppName)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	dir := isolate(t)

	c, err := Load()
	require.NoError(t, err)

	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Fatal(diff)
	}
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestLoad_JSON5FileMergesOverDefaults(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	content := `{
		// popup profile against a remote server
		variant: "extension",
		base_url: "http://10.0.0.5:5000",
		timeout: "5s",
		serve: { addr: "0.0.0.0:5000" },
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o600))

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, VariantExtension, c.Variant)
	assert.Equal(t, "http://10.0.0.5:5000", c.BaseURL)
	assert.Equal(t, DefaultEndpoint, c.Endpoint)
	assert.Equal(t, "table", c.DefaultView)
	assert.Equal(t, "0.0.0.0:5000", c.Serve.Addr)
	assert.Equal(t, DefaultGRPCAddr, c.Serve.GRPCAddr)

	d, err := c.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)
	assert.False(t, c.HighlightJSON())
}

func TestLoad_FileVariantIsCaseInsensitive(t *testing.T) {
	for _, raw := range []string{"Extension", " EXTENSION ", "extension"} {
		t.Run(raw, func(t *testing.T) {
			dir := isolate(t)
			require.NoError(t, os.MkdirAll(dir, 0o700))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{variant: "`+raw+`"}`), 0o600))

			c, err := Load()
			require.NoError(t, err)

			assert.Equal(t, VariantExtension, c.Variant)
			assert.Len(t, c.Variant.Countries(), 20)
			assert.False(t, c.HighlightJSON())
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"variant": "extension"}`), 0o600))
	t.Setenv(EnvVariant, "WEB")
	t.Setenv(EnvBaseURL, "http://localhost:8080")
	t.Setenv(EnvVerbose, "1")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, VariantWeb, c.Variant)
	assert.Equal(t, "http://localhost:8080", c.BaseURL)
	assert.True(t, c.Verbose)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad json", `{variant: `},
		{"unknown variant", `{"variant": "desktop"}`},
		{"bad view", `{"default_view": "xml"}`},
		{"bad timeout", `{"timeout": "soon"}`},
		{"negative timeout", `{"timeout": "-1s"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			require.NoError(t, os.MkdirAll(dir, 0o700))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(tt.content), 0o600))

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadVerboseEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvVerbose, "loud")

	_, err := Load()
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	dir := isolate(t)
	off := false
	c := Default()
	c.Variant = VariantExtension
	c.DefaultView = "json"
	c.Highlight = &off

	require.NoError(t, Save(c))

	info, err := os.Stat(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load()
	require.NoError(t, err)
	if diff := cmp.Diff(c, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestHighlightJSON(t *testing.T) {
	c := Default()
	assert.True(t, c.HighlightJSON())

	c.Variant = VariantExtension
	assert.False(t, c.HighlightJSON())

	on := true
	c.Highlight = &on
	assert.True(t, c.HighlightJSON())
}

func TestVariant(t *testing.T) {
	v, err := ParseVariant(" Extension ")
	require.NoError(t, err)
	assert.Equal(t, VariantExtension, v)
	assert.Equal(t, countries.Extension, v.Countries())
	assert.Equal(t, countries.Web, VariantWeb.Countries())

	_, err = ParseVariant("")
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(t *testing.T, c Config)
	}{
		{"variant", "Extension", func(t *testing.T, c Config) { assert.Equal(t, VariantExtension, c.Variant) }},
		{"base_url", " http://10.0.0.5:5000 ", func(t *testing.T, c Config) { assert.Equal(t, "http://10.0.0.5:5000", c.BaseURL) }},
		{"endpoint", "/api/country", func(t *testing.T, c Config) { assert.Equal(t, "/api/country", c.Endpoint) }},
		{"timeout", "3s", func(t *testing.T, c Config) { assert.Equal(t, "3s", c.Timeout) }},
		{"default_view", "JSON", func(t *testing.T, c Config) { assert.Equal(t, "json", c.DefaultView) }},
		{"highlight", "false", func(t *testing.T, c Config) {
			require.NotNil(t, c.Highlight)
			assert.False(t, *c.Highlight)
		}},
		{"highlight", "", func(t *testing.T, c Config) { assert.Nil(t, c.Highlight) }},
		{"verbose", "true", func(t *testing.T, c Config) { assert.True(t, c.Verbose) }},
		{"serve.addr", "0.0.0.0:8080", func(t *testing.T, c Config) { assert.Equal(t, "0.0.0.0:8080", c.Serve.Addr) }},
		{"serve.grpc_addr", "0.0.0.0:8081", func(t *testing.T, c Config) { assert.Equal(t, "0.0.0.0:8081", c.Serve.GRPCAddr) }},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			c := Default()
			require.NoError(t, c.Set(tt.key, tt.value))
			tt.check(t, c)
		})
	}

	c := Default()
	assert.Error(t, c.Set("colour", "red"))
	assert.Error(t, c.Set("variant", "desktop"))
	assert.Error(t, c.Set("verbose", "loud"))
}

func TestUpdate_WritesFileWithoutEnvOverrides(t *testing.T) {
	dir := isolate(t)
	t.Setenv(EnvBaseURL, "http://from-env:9999")

	stored, err := Update("variant", "EXTENSION")
	require.NoError(t, err)
	assert.Equal(t, VariantExtension, stored.Variant)
	assert.Equal(t, DefaultBaseURL, stored.BaseURL)

	_, err = Update("default_view", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"variant": "extension"`)
	assert.NotContains(t, string(data), "from-env")

	t.Setenv(EnvBaseURL, "")
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, VariantExtension, c.Variant)
	assert.Equal(t, "json", c.DefaultView)
}

func TestUpdate_RejectsInvalidValue(t *testing.T) {
	dir := isolate(t)

	_, err := Update("timeout", "soon")
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(dir, "config.json"))
	assert.True(t, os.IsNotExist(err))
}
