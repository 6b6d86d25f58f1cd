package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/focusflow/internal/focusflow"
	"github.com/hay-kot/focusflow/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *focusflow.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *focusflow.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "tui",
		Usage:  "Open the interactive task chooser and focus timer",
		Action: cmd.Run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	deps := tui.Deps{
		Config:    cmd.app.Config,
		Tasks:     cmd.app.Tasks,
		BuildInfo: cmd.app.Build,
	}

	if err := tui.Run(ctx, deps); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
