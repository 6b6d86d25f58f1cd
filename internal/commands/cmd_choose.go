package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/focusflow/internal/focusflow"
	"github.com/hay-kot/focusflow/pkg/iojson"
)

// ChooseCmd prints the current choice pair.
type ChooseCmd struct {
	flags *Flags
	app   *focusflow.App
	focus *FocusCmd

	pick int
}

// NewChooseCmd creates a new choose command. With --pick the chosen task is
// handed to focus.
func NewChooseCmd(flags *Flags, app *focusflow.App, focus *FocusCmd) *ChooseCmd {
	return &ChooseCmd{flags: flags, app: app, focus: focus}
}

// Register adds the choose command to the application.
func (cmd *ChooseCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "choose",
		Usage:     "Show the two tasks to choose between",
		UsageText: "focusflow choose [--pick 1|2]",
		Description: `Prints the two highest-priority incomplete tasks as a JSON array,
or null when fewer than two incomplete tasks exist.

With --pick, focuses the first or second choice and starts the countdown.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "pick",
				Usage:       "focus choice 1 or 2",
				Destination: &cmd.pick,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ChooseCmd) run(ctx context.Context, c *cli.Command) error {
	pair, ok := cmd.app.Tasks.Choices()

	if !c.IsSet("pick") {
		if !ok {
			return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, nil)
		}
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, pair)
	}

	if cmd.pick != 1 && cmd.pick != 2 {
		return fmt.Errorf("--pick must be 1 or 2, got %d", cmd.pick)
	}
	if !ok {
		return fmt.Errorf("no tasks available: add at least two incomplete tasks")
	}

	return cmd.focus.Run(ctx, c.Root().Writer, pair[cmd.pick-1])
}
