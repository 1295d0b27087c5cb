// Package countries holds the fixed country lists offered by the selector.
package countries

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Placeholder is the label of the disabled first option.
const Placeholder = "-- Choose a country --"

// Extension is the list offered by the compact (extension) variant.
var Extension = []string{
	"United States",
	"China",
	"Japan",
	"Germany",
	"India",
	"United Kingdom",
	"France",
	"Brazil",
	"Italy",
	"Canada",
	"Australia",
	"South Korea",
	"Spain",
	"Mexico",
	"Indonesia",
	"Netherlands",
	"Saudi Arabia",
	"Turkey",
	"Switzerland",
	"Taiwan",
}

// Web is the list offered by the full (web) variant. It extends Extension.
var Web = append(append([]string{}, Extension...),
	"Belgium",
	"Argentina",
	"Ireland",
	"Israel",
	"Norway",
	"United Arab Emirates",
	"Nigeria",
	"South Africa",
	"Bangladesh",
	"Vietnam",
	"Thailand",
	"Egypt",
	"Malaysia",
	"Singapore",
	"Philippines",
	"Chile",
	"Finland",
	"Romania",
	"Czech Republic",
	"New Zealand",
	"Peru",
	"Iraq",
	"Greece",
	"Portugal",
	"Algeria",
	"Kazakhstan",
	"Qatar",
	"Kuwait",
	"Ukraine",
	"Morocco",
)

// Option is one entry of a single-choice control.
type Option struct {
	Label    string
	Value    string
	Disabled bool
}

// Options builds the selector entries: the disabled placeholder followed by one
// option per name, in list order. Names are neither sorted nor deduplicated.
func Options(names []string) []Option {
	opts := make([]Option, 0, len(names)+1)
	opts = append(opts, Option{Label: Placeholder, Disabled: true})
	for _, n := range names {
		opts = append(opts, Option{Label: n, Value: n})
	}
	return opts
}

// Selectable returns the values of the enabled options.
func Selectable(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		if !o.Disabled {
			out = append(out, o.Value)
		}
	}
	return out
}

// Match returns the canonical spelling of input when it names a listed country,
// ignoring case and surrounding whitespace.
func Match(names []string, input string) (string, bool) {
	in := strings.TrimSpace(input)
	for _, n := range names {
		if strings.EqualFold(n, in) {
			return n, true
		}
	}
	return "", false
}

// suggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const suggestThreshold = 0.85

// Suggest returns the listed country closest to input, if any is close enough.
func Suggest(names []string, input string) (string, bool) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return "", false
	}
	best, bestScore := "", 0.0
	for _, n := range names {
		score := matchr.JaroWinkler(in, strings.ToLower(n), false)
		if score > bestScore {
			best, bestScore = n, score
		}
	}
	if bestScore < suggestThreshold {
		return "", false
	}
	return best, true
}
