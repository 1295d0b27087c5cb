package view

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"countrydata/cli/internal/backend"
	apperrors "countrydata/cli/internal/errors"
	"countrydata/cli/internal/record"
	"countrydata/cli/internal/render"
)

// FetchFailedPrefix starts the message shown for any failed request.
const FetchFailedPrefix = "An error occurred while fetching data. Please try again. Error: "

// ErrBusy is returned by Submit while a previous request is still in flight.
var ErrBusy = errors.New("a request is already in progress")

// Controller coordinates one session: a single record slot, the active view mode and
// the state of the last request.
type Controller struct {
	fetcher  Fetcher
	display  Display
	renderer *render.Renderer
	log      *slog.Logger

	// mu guards the fields below. It is never held across a fetch.
	mu    sync.Mutex
	mode  render.Mode
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger. Failed requests are logged once at error level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMode sets the initial view mode.
func WithMode(m render.Mode) Option {
	return func(c *Controller) { c.mode = m }
}

// NewController builds a controller in the Idle phase. A nil renderer renders without
// decoration.
func NewController(f Fetcher, d Display, r *render.Renderer, opts ...Option) *Controller {
	if r == nil {
		r = &render.Renderer{}
	}
	c := &Controller{
		fetcher:  f,
		display:  d,
		renderer: r,
		log:      slog.New(slog.DiscardHandler),
		mode:     render.ModeTable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit fetches the record for countryName and shows it in the active mode.
//
// An empty name shows the selection prompt and sends nothing; the visible output and
// the request state are left as they were. Otherwise the display goes through
// loading on, error and output hidden, then either the rendered record or the failure
// message, and loading off. The returned error is the request error, if any.
func (c *Controller) Submit(ctx context.Context, countryName string) error {
	if err := backend.ValidateCountryName(countryName); err != nil {
		c.display.ShowError(err.Error())
		return err
	}

	c.mu.Lock()
	if c.state.Phase == PhaseLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state.Phase = PhaseLoading
	c.state.Message = ""
	c.display.SetLoading(true)
	c.display.HideError()
	c.display.HideOutput()
	c.mu.Unlock()

	rec, err := c.fetcher.FetchCountryData(ctx, countryName)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.display.SetLoading(false)

	if err == nil {
		var out render.Output
		out, err = c.renderer.Render(rec, c.mode)
		if err == nil {
			c.state = State{Phase: PhaseSuccess, Record: rec}
			c.display.ShowOutput(out)
			return nil
		}
		err = apperrors.Wrap(apperrors.KindParse, "cannot render record", err)
	}

	c.log.Error("fetch country data", "country", countryName, "kind", apperrors.KindOf(err), "error", err)
	msg := FailureMessage(err)
	c.state.Phase = PhaseFailed
	c.state.Message = msg
	c.display.ShowError(msg)
	return err
}

// SwitchView makes mode the active view. Switching to the mode that is already active
// does nothing at all. Otherwise the view controls are updated once and, when a record
// is on screen, it is re-rendered from the held copy. It never fetches. The result
// reports whether the mode changed.
func (c *Controller) SwitchView(mode render.Mode) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mode == c.mode {
		return false
	}
	c.mode = mode
	c.display.SetActiveView(mode)

	if c.state.Phase != PhaseSuccess || c.state.Record == nil {
		return true
	}
	out, err := c.renderer.Render(c.state.Record, mode)
	if err != nil {
		c.log.Error("render country data", "mode", mode, "error", err)
		return true
	}
	c.display.ShowOutput(out)
	return true
}

// State returns a snapshot of the request state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	st.Record = append(record.Record(nil), c.state.Record...)
	return st
}

// Mode returns the active view mode.
func (c *Controller) Mode() render.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// FailureMessage is the text shown for a failed request. Validation errors are shown
// as they are; everything else gets the generic retry prefix.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	if apperrors.Is(err, apperrors.KindValidation) {
		return err.Error()
	}
	return FetchFailedPrefix + err.Error()
}
