package config

import (
	"fmt"
	"strings"

	"countrydata/cli/internal/countries"
)

// Variant selects one of the two client profiles.
type Variant string

const (
	// VariantExtension is the compact popup profile: 20 countries, plain JSON.
	VariantExtension Variant = "extension"
	// VariantWeb is the full page profile: 50 countries, highlighted JSON.
	VariantWeb Variant = "web"
)

// ParseVariant accepts "extension" or "web", case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantExtension, VariantWeb:
		return v, nil
	}
	return "", fmt.Errorf("unknown variant %q (want %q or %q)", s, VariantExtension, VariantWeb)
}

// Countries returns the selector list of the variant.
func (v Variant) Countries() []string {
	if v == VariantExtension {
		return countries.Extension
	}
	return countries.Web
}

// Highlight reports whether the variant decorates JSON output.
func (v Variant) Highlight() bool { return v != VariantExtension }
