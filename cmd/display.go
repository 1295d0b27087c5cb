package cmd

import (
	"fmt"
	"io"
	"sync"

	"countrydata/cli/internal/render"

	"github.com/pterm/pterm"
)

// LoadingText is shown next to the spinner while a request is in flight.
const LoadingText = "Loading..."

// termDisplay shows controller output on a terminal. Output is append-only, so hiding
// the previous error or record is a no-op: the next result is printed below it.
type termDisplay struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	stopLoading func()
	active      render.Mode
	// html prints records as HTML fragments instead of terminal text.
	html bool
	// errOut receives error messages; nil means out.
	errOut io.Writer
}

func newTermDisplay(out io.Writer, interactive bool, mode render.Mode) *termDisplay {
	return &termDisplay{out: out, interactive: interactive, active: mode}
}

func (d *termDisplay) SetLoading(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !on {
		d.endLoading()
		return
	}
	if d.stopLoading != nil || !d.interactive {
		return
	}
	d.stopLoading = startLoading(d.out, LoadingText)
}

// endLoading must be called with mu held.
func (d *termDisplay) endLoading() {
	if d.stopLoading != nil {
		d.stopLoading()
		d.stopLoading = nil
	}
}

func (d *termDisplay) ShowError(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.endLoading()
	if d.interactive {
		msg = pterm.Red(msg)
	}
	w := d.errOut
	if w == nil {
		w = d.out
	}
	fmt.Fprintln(w, msg)
}

func (d *termDisplay) HideError() {}

func (d *termDisplay) ShowOutput(out render.Output) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.endLoading()
	if d.html {
		render.WriteHTML(d.out, out)
		return
	}
	render.Write(d.out, out)
}

func (d *termDisplay) HideOutput() {}

func (d *termDisplay) SetActiveView(mode render.Mode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = mode
	fmt.Fprintln(d.out, viewBar(mode, d.interactive))
}

// viewBar renders the two view controls with the active one emphasized.
func viewBar(active render.Mode, styled bool) string {
	label := func(m render.Mode, text string) string {
		switch {
		case m != active:
			return " " + text + " "
		case styled:
			return pterm.NewStyle(pterm.BgBlue, pterm.FgWhite, pterm.Bold).Sprint(" " + text + " ")
		default:
			return "[" + text + "]"
		}
	}
	return "View: " + label(render.ModeTable, "Table") + " " + label(render.ModeJSON, "JSON")
}
