package logging

import (
	"io"
	"log/slog"

	"github.com/pterm/pterm"
)

// New returns the CLI diagnostic logger writing to w. With verbose set it logs at
// debug level, otherwise only warnings and errors are shown.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := pterm.LogLevelWarn
	if verbose {
		level = pterm.LogLevelDebug
	}
	logger := pterm.DefaultLogger.
		WithLevel(level).
		WithWriter(w).
		WithTime(verbose)
	return slog.New(pterm.NewSlogHandler(logger))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
