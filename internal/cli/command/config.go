package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/wizex/bucketmap/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the effective configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the merged configuration",
				Action: configShow,
			},
			{
				Name:   "validate",
				Usage:  "Check the configuration and report problems",
				Action: configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	e, err := setup(c, nil)
	if err != nil {
		return err
	}
	// Nested sections do not fit a two-column table.
	format := e.flags.Output
	if format == output.FormatTable {
		format = output.FormatYAML
	}
	return output.NewFormatter(format).Format(e.out, e.cfg)
}

func configValidate(c *cli.Context) error {
	e, err := setup(c, nil)
	if err != nil {
		return err
	}
	source := e.flags.Config
	if source == "" {
		source = "defaults and environment"
	}
	fmt.Fprintf(e.out, "configuration OK (%s)\n", source)
	return nil
}
