package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/tomatoclock/tomato/internal/tui"
)

// watchAction shows a live view of the timer until the user quits.
func (a *application) watchAction(ctx *cli.Context) error {
	model := tui.New(a.readSnapshot, a.send, a.cfg.Waybar.Interval)

	p := tea.NewProgram(model, tea.WithContext(ctx.Context))

	_, err := p.Run()

	return err
}
