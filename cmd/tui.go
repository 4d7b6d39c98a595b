package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytmb/internal/projection"
	"github.com/desertthunder/ytmb/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive library browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	cfg := projection.Config{HideSingles: r.config.UI.HideSingles}
	model := ui.NewModel(ctx, r.engine, r.store, cfg)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
