package cmd

import (
	"context"
	"errors"
	"os"

	"countrydata/cli/internal/countries"
	apperrors "countrydata/cli/internal/errors"
	"countrydata/cli/internal/httperrors"
	"countrydata/cli/internal/render"
	"countrydata/cli/internal/terminal"
	"countrydata/cli/internal/view"

	"github.com/pterm/pterm"
)

// Dashboard menu entries.
const (
	actionFetch  = "Get country details"
	actionToggle = "Switch view"
	actionQuit   = "Quit"
)

// runDashboard runs the interactive session: choose a country, fetch and render it,
// switch views, repeat until the user quits or ctx is canceled.
func runDashboard(ctx context.Context) error {
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	color := terminal.IsColor()
	disp := newTermDisplay(os.Stdout, true, defaultMode(cfg))
	ctrl := view.NewController(client, disp, newRenderer(cfg, color),
		view.WithLogger(logger),
		view.WithMode(defaultMode(cfg)),
	)

	opts := countries.Options(cfg.Variant.Countries())
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	selected := countries.Placeholder

	pterm.DefaultHeader.WithFullWidth().Println("Country Data Dashboard")
	pterm.Println(viewBar(ctrl.Mode(), color))
	pterm.Println()

	for ctx.Err() == nil {
		action, err := pterm.DefaultInteractiveSelect.
			WithOptions([]string{actionFetch, toggleLabel(ctrl.Mode()), actionQuit}).
			WithDefaultText("What next?").
			Show()
		if err != nil {
			return err
		}

		switch action {
		case actionFetch:
			selected, err = pterm.DefaultInteractiveSelect.
				WithOptions(labels).
				WithDefaultOption(selected).
				WithMaxHeight(12).
				WithDefaultText("Select a country").
				Show()
			if err != nil {
				return err
			}
			err = ctrl.Submit(ctx, optionValue(opts, selected))
			if apperrors.Is(err, apperrors.KindNetwork) {
				pterm.Println(httperrors.Hint(err, "fetching country data", httperrors.ExtractHostFromURL(cfg.BaseURL)))
			}
		case actionQuit:
			return nil
		default:
			ctrl.SwitchView(otherMode(ctrl.Mode()))
		}
		pterm.Println()
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

// optionValue maps a selected label back to its option value; the placeholder maps
// to the empty selection.
func optionValue(opts []countries.Option, label string) string {
	for _, o := range opts {
		if o.Label == label && !o.Disabled {
			return o.Value
		}
	}
	return ""
}

func otherMode(m render.Mode) render.Mode {
	if m == render.ModeTable {
		return render.ModeJSON
	}
	return render.ModeTable
}

func toggleLabel(m render.Mode) string {
	if m == render.ModeTable {
		return actionToggle + " (to JSON)"
	}
	return actionToggle + " (to table)"
}
