// Package view drives a country data display: it owns the selected view mode, the last
// fetched record and the state of the current request, and tells a Display what to show.
//
// The Display is deliberately dumb. It is the terminal dashboard in the CLI and a recording
// fake in tests; the Controller decides when anything is shown, hidden or re-rendered.
package view

import (
	"context"

	"countrydata/cli/internal/record"
	"countrydata/cli/internal/render"
)

// Phase is the state of the most recent request.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is a snapshot of the controller.
type State struct {
	Phase Phase
	// Record is the record held for re-rendering. It survives a failed request.
	Record record.Record
	// Message is the error text shown to the user when Phase is PhaseFailed.
	Message string
}

// Fetcher retrieves one country record.
type Fetcher interface {
	FetchCountryData(ctx context.Context, countryName string) (record.Record, error)
}

// Display is the surface the controller renders to.
type Display interface {
	SetLoading(on bool)
	ShowError(msg string)
	HideError()
	ShowOutput(out render.Output)
	HideOutput()
	// SetActiveView moves the emphasis to the control of the given mode.
	SetActiveView(mode render.Mode)
}

// ParseMode maps "table" and "json" to a Mode.
func ParseMode(s string) (render.Mode, bool) {
	switch s {
	case "table", "":
		return render.ModeTable, true
	case "json":
		return render.ModeJSON, true
	}
	return render.ModeTable, false
}
