package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/wizex/bucketmap/internal/cli/output"
	"github.com/wizex/bucketmap/internal/config"
	"github.com/wizex/bucketmap/internal/infra/buildinfo"
	"github.com/wizex/bucketmap/internal/infra/confloader"
	"github.com/wizex/bucketmap/internal/telemetry/logger"
	"github.com/wizex/bucketmap/pkg/htable"
)

// ExitStatus maps an error returned by App to a process exit status.
// Table configuration errors exit with 2, anything else with 1.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	if strings.HasPrefix(htable.ErrorCode(err), "HT-CFG-") {
		return 2
	}
	return 1
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "bucketmap",
		Usage:   "Exercise and inspect a bucket-locked concurrent hash table",
		Version: buildinfo.Get().String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RunCommand(),
			DemoCommand(),
			StatsCommand(),
			ShellCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: func(c *cli.Context) error {
			_, err := output.ParseFormat(c.String("output"))
			return err
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file",
			EnvVars: []string{"BUCKETMAP_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Shorthand for --log-level=debug",
		},
	}
}

// GlobalFlags holds the flags shared by all commands.
type GlobalFlags struct {
	Config   string
	Output   output.Format
	LogLevel string
	Verbose  bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	format, _ := output.ParseFormat(c.String("output"))
	return &GlobalFlags{
		Config:   c.String("config"),
		Output:   format,
		LogLevel: c.String("log-level"),
		Verbose:  c.Bool("verbose"),
	}
}

// flagKeys maps command flag names to configuration keys.
type flagKeys map[string]string

// overrides collects the values of flags the user set explicitly.
func (fk flagKeys) overrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	for flag, key := range fk {
		if c.IsSet(flag) {
			m[key] = c.Value(flag)
		}
	}
	return m
}

// env is the per-invocation state shared by command actions.
type env struct {
	flags *GlobalFlags
	cfg   *config.Config
	log   logger.Logger
	out   io.Writer
}

// print writes data in the selected output format.
func (e *env) print(data any) error {
	return output.NewFormatter(e.flags.Output).Format(e.out, data)
}

// setup resolves configuration and builds the logger for a command.
func setup(c *cli.Context, fk flagKeys) (*env, error) {
	flags := ParseGlobalFlags(c)

	cfg, err := loadConfig(c, flags, fk)
	if err != nil {
		return nil, err
	}

	cfg.Log.Output = c.App.ErrWriter
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	logger.SetDefault(log)

	return &env{
		flags: flags,
		cfg:   cfg,
		log:   log,
		out:   c.App.Writer,
	}, nil
}

func loadConfig(c *cli.Context, flags *GlobalFlags, fk flagKeys) (*config.Config, error) {
	cfg := config.Default()

	loader := confloader.NewLoader(confloader.WithConfigFile(flags.Config))
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	over := fk.overrides(c)
	if flags.LogLevel != "" {
		over["log.level"] = flags.LogLevel
	}
	if flags.Verbose {
		over["log.level"] = "debug"
	}
	if len(over) > 0 {
		if err := loader.LoadMap(over); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
