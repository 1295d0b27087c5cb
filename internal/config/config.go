// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the dataset DSN goes to the OS keychain.
//
// Settings are layered: built-in defaults, then the config file (JSON5 is accepted),
// then COUNTRYDATA_* environment variables. Command-line flags are applied last by
// the commands themselves.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

const (
	// AppName names the config directory.
	AppName = "countrydata"

	EnvVariant = "COUNTRYDATA_VARIANT"
	EnvBaseURL = "COUNTRYDATA_BASE_URL"
	EnvVerbose = "COUNTRYDATA_VERBOSE"

	DefaultBaseURL  = "http://127.0.0.1:5000"
	DefaultEndpoint = "/get_country_data"
	DefaultAddr     = "127.0.0.1:5000"
	DefaultGRPCAddr = "127.0.0.1:5001"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	Variant  Variant `json:"variant"`
	BaseURL  string  `json:"base_url"`
	Endpoint string  `json:"endpoint"`
	// Timeout is a Go duration such as "10s". Empty means requests never time out.
	Timeout string `json:"timeout,omitempty"`
	// DefaultView is "table" or "json".
	DefaultView string `json:"default_view"`
	// Highlight overrides the variant's JSON highlighting when set.
	Highlight *bool       `json:"highlight,omitempty"`
	Verbose   bool        `json:"verbose"`
	Serve     ServeConfig `json:"serve"`
}

// ServeConfig holds the development server listen addresses.
type ServeConfig struct {
	Addr     string `json:"addr"`
	GRPCAddr string `json:"grpc_addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Variant:     VariantWeb,
		BaseURL:     DefaultBaseURL,
		Endpoint:    DefaultEndpoint,
		DefaultView: "table",
		Serve: ServeConfig{
			Addr:     DefaultAddr,
			GRPCAddr: DefaultGRPCAddr,
		},
	}
}

// Dir returns the config directory, $XDG_CONFIG_HOME/countrydata, falling back to
// ~/.config/countrydata. It is created with private permissions (0700) if missing.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file yields the defaults. Environment
// overrides are applied and the result is validated.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(p)
}

// LoadFile is Load for an explicit file path.
func LoadFile(p string) (Config, error) {
	c, err := readFile(p)
	if err != nil {
		return c, err
	}
	if err := c.applyEnv(); err != nil {
		return c, err
	}
	return c, c.normalize()
}

// readFile merges the file at p over the defaults without any overrides.
func readFile(p string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, err
	}
	if len(data) > 0 {
		var fromFile Config
		if err := json5.Unmarshal(data, &fromFile); err != nil {
			return c, fmt.Errorf("parse %s: %w", p, err)
		}
		if err := mergo.Merge(&c, fromFile, mergo.WithOverride); err != nil {
			return c, err
		}
	}
	return c, nil
}

// normalize canonicalizes the variant spelling and validates the result.
func (c *Config) normalize() error {
	v, err := ParseVariant(string(c.Variant))
	if err != nil {
		return err
	}
	c.Variant = v
	return c.Validate()
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvVariant)); v != "" {
		c.Variant = Variant(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvVerbose)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}
	return nil
}

// Validate checks that every setting has a usable value.
func (c Config) Validate() error {
	if _, err := ParseVariant(string(c.Variant)); err != nil {
		return err
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base_url must not be empty")
	}
	switch c.DefaultView {
	case "table", "json":
	default:
		return fmt.Errorf("default_view must be \"table\" or \"json\", got %q", c.DefaultView)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses Timeout. Empty means zero, i.e. no timeout.
func (c Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return d, nil
}

// HighlightJSON reports whether JSON output should be decorated.
func (c Config) HighlightJSON() bool {
	if c.Highlight != nil {
		return *c.Highlight
	}
	return c.Variant.Highlight()
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Keys lists the settings accepted by Set, in display order.
var Keys = []string{"variant", "base_url", "endpoint", "timeout", "default_view", "highlight", "verbose", "serve.addr", "serve.grpc_addr"}

// Set assigns one setting from its text form. An empty value for timeout or
// highlight clears it.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "variant":
		v, err := ParseVariant(value)
		if err != nil {
			return err
		}
		c.Variant = v
	case "base_url":
		c.BaseURL = value
	case "endpoint":
		c.Endpoint = value
	case "timeout":
		c.Timeout = value
	case "default_view":
		c.DefaultView = strings.ToLower(value)
	case "highlight":
		if value == "" {
			c.Highlight = nil
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("highlight: %w", err)
		}
		c.Highlight = &b
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose: %w", err)
		}
		c.Verbose = b
	case "serve.addr":
		c.Serve.Addr = value
	case "serve.grpc_addr":
		c.Serve.GRPCAddr = value
	default:
		return fmt.Errorf("unknown setting %q (one of: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Update sets key in the stored config file and saves it. Environment overrides are
// not written back. It returns the stored settings.
func Update(key, value string) (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	c, err := readFile(p)
	if err != nil {
		return c, err
	}
	if err := c.Set(key, value); err != nil {
		return c, err
	}
	if err := c.normalize(); err != nil {
		return c, err
	}
	return c, Save(c)
}
