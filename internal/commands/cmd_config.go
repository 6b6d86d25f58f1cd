package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/focusflow/internal/focusflow"
	"github.com/hay-kot/focusflow/pkg/iojson"
)

type ConfigCmd struct {
	flags  *Flags
	app    *focusflow.App
	format string
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags, app *focusflow.App) *ConfigCmd {
	return &ConfigCmd{flags: flags, app: app}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "show",
				Usage:       "Print the effective configuration",
				UsageText:   "focusflow config show [--format yaml|json]",
				Description: "Prints the configuration after defaults are applied. Loading already validated it.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (yaml, json)",
						Value:       "yaml",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runShow,
			},
			{
				Name:      "path",
				Usage:     "Print the config file and data directory locations",
				UsageText: "focusflow config path",
				Action:    cmd.runPath,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runShow(_ context.Context, c *cli.Command) error {
	switch cmd.format {
	case "json":
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, cmd.app.Config)
	case "yaml":
		enc := yaml.NewEncoder(c.Root().Writer)
		enc.SetIndent(2)
		if err := enc.Encode(cmd.app.Config); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q: must be yaml or json", cmd.format)
	}
}

func (cmd *ConfigCmd) runPath(_ context.Context, c *cli.Command) error {
	_, _ = fmt.Fprintf(c.Root().Writer, "config:   %s\n", cmd.flags.ConfigPath)
	_, _ = fmt.Fprintf(c.Root().Writer, "data dir: %s\n", cmd.app.Config.DataDir)
	return nil
}
