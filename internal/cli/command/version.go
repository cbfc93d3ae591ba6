package command

import (
	"github.com/urfave/cli/v2"

	"github.com/wizex/bucketmap/internal/cli/output"
	"github.com/wizex/bucketmap/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			flags := ParseGlobalFlags(c)
			return output.NewFormatter(flags.Output).Format(c.App.Writer, buildinfo.Get())
		},
	}
}
