package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/wizex/bucketmap/internal/cli/repl"
	"github.com/wizex/bucketmap/pkg/htable"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Operate on a table interactively",
		Flags: append(tableFlags(),
			&cli.StringFlag{
				Name:  "history-file",
				Usage: "Persist shell history here (empty disables)",
				Value: repl.DefaultHistoryFile(),
			},
		),
		Action: shell,
	}
}

func shell(c *cli.Context) error {
	e, err := setup(c, flagKeys{"buckets": "table.bucket_count", "hasher": "table.hasher"})
	if err != nil {
		return err
	}
	tbl, err := htable.NewFromConfig[string](e.cfg.Table, htable.WithLogger(e.log))
	if err != nil {
		return err
	}

	history := repl.NewHistory(c.String("history-file"))
	if err := history.Load(); err != nil {
		e.log.Warn("load shell history", "error", err)
	}

	in := c.App.Reader
	if in == nil {
		in = os.Stdin
	}
	fmt.Fprintf(e.out, "%d buckets, hasher %s. Type help for commands.\n", tbl.BucketCount(), e.cfg.Table.Hasher)
	if err := repl.New(tbl, repl.WithIO(in, e.out), repl.WithHistory(history)).Run(); err != nil {
		return err
	}
	return history.Save()
}
