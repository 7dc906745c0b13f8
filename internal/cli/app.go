// Package cli is the operator command line for the asset tree: it renders
// the hierarchy and drives the create, move and delete flows against the
// inventory API.
package cli

import (
	"log/slog"

	"github.com/charmbracelet/huh"

	svc "iotdash/internal/domain/services/assettree"
)

// App holds the collaborators shared by every command
type App struct {
	// Backend is built from Settings on first use when left nil
	Backend svc.Backend
	Logger  *slog.Logger

	// IsInteractive reports whether prompts can be shown
	IsInteractive func() bool

	// Confirm asks a yes/no question; defaults to a huh form
	Confirm func(title string) (bool, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return confirmForm(title)
}

// confirmForm shows a yes/no huh form, defaulting to No
func confirmForm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
