package command

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/wizex/bucketmap/internal/cli/output"
	"github.com/wizex/bucketmap/internal/infra/confloader"
	"github.com/wizex/bucketmap/internal/infra/shutdown"
	"github.com/wizex/bucketmap/internal/telemetry/logger"
	"github.com/wizex/bucketmap/internal/telemetry/metric"
	"github.com/wizex/bucketmap/internal/workload"
	"github.com/wizex/bucketmap/pkg/htable"
)

const shutdownTimeout = 5 * time.Second

var runFlagKeys = flagKeys{
	"buckets":      "table.bucket_count",
	"hasher":       "table.hasher",
	"workers":      "workload.workers",
	"ops":          "workload.ops",
	"keys":         "workload.keys",
	"key-mode":     "workload.key_mode",
	"read-ratio":   "workload.read_ratio",
	"erase-ratio":  "workload.erase_ratio",
	"rate":         "workload.rate",
	"seed":         "workload.seed",
	"metrics-addr": "metrics.addr",
}

// tableFlags are shared by commands that build a table.
func tableFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "buckets",
			Aliases: []string{"b"},
			Usage:   "Number of buckets",
		},
		&cli.StringFlag{
			Name:  "hasher",
			Usage: "Key hasher: maphash, murmur3, xxhash",
		},
	}
}

// RunCommand returns the run command.
func RunCommand() *cli.Command {
	flags := append(tableFlags(),
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "Concurrent workers"},
		&cli.IntFlag{Name: "ops", Aliases: []string{"n"}, Usage: "Operations per worker"},
		&cli.IntFlag{Name: "keys", Aliases: []string{"k"}, Usage: "Keyspace size"},
		&cli.StringFlag{Name: "key-mode", Usage: "Key generation: seq, ulid"},
		&cli.Float64Flag{Name: "read-ratio", Usage: "Share of read operations"},
		&cli.Float64Flag{Name: "erase-ratio", Usage: "Share of erase operations"},
		&cli.Float64Flag{Name: "rate", Usage: "Operations per second across all workers (0 = unlimited)"},
		&cli.Uint64Flag{Name: "seed", Usage: "Seed for the operation mix"},
		&cli.StringFlag{Name: "metrics-addr", Usage: "Serve Prometheus metrics on this address during the run"},
		&cli.BoolFlag{Name: "disjoint", Usage: "Give each worker its own bucket instead of a random mix"},
		&cli.BoolFlag{Name: "progress", Usage: "Show a progress bar on stderr"},
	)
	return &cli.Command{
		Name:   "run",
		Usage:  "Run a concurrent workload against a table",
		Flags:  flags,
		Action: runWorkload,
	}
}

func runWorkload(c *cli.Context) error {
	e, err := setup(c, runFlagKeys)
	if err != nil {
		return err
	}
	cfg := e.cfg

	reg := metric.NewRegistry(cfg.Metrics.Namespace)
	tbl, err := htable.NewFromConfig[int64](cfg.Table,
		htable.WithLogger(e.log),
		htable.WithObserver(reg.Ops),
	)
	if err != nil {
		return err
	}
	if err := reg.Register(metric.NewBucketCollector(tbl, cfg.Metrics.Namespace)); err != nil {
		return fmt.Errorf("register bucket collector: %w", err)
	}

	runner, err := workload.NewRunner(cfg.Workload)
	if err != nil {
		return err
	}

	h := shutdown.NewHandler(shutdownTimeout, shutdown.WithLogger(e.log))
	ctx, stop := h.Context(c.Context)
	defer stop()

	if cfg.Metrics.Addr != "" {
		addr, err := serveMetrics(h, reg, cfg.Metrics.Addr)
		if err != nil {
			return err
		}
		e.log.Info("serving metrics", "addr", addr)
	}
	if e.flags.Config != "" {
		if err := watchLogLevel(h, e.log, e.flags.Config); err != nil {
			e.log.Warn("config watcher disabled", "error", err)
		}
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- h.Wait(ctx) }()

	var (
		bar        *output.ProgressBar
		stopTrack  = make(chan struct{})
		trackerOut = make(chan struct{})
	)
	if c.Bool("progress") && !c.Bool("disjoint") {
		bar = output.NewProgressBar(c.App.ErrWriter, "run", runner.Planned())
		go func() {
			defer close(trackerOut)
			trackProgress(stopTrack, bar, runner)
		}()
	}

	var res *workload.Result
	if c.Bool("disjoint") {
		res, err = workload.Disjoint(ctx, tbl, cfg.Workload.Ops)
	} else {
		res, err = runner.Run(ctx, tbl)
	}
	if bar != nil {
		close(stopTrack)
		<-trackerOut
		bar.Set(runner.Completed())
		bar.Finish()
	}

	outcome := "completed"
	if err != nil {
		outcome = "interrupted"
	}
	reg.WorkloadRuns.WithLabelValues(outcome).Inc()
	reg.WorkloadDuration.Observe(res.Duration.Seconds())

	h.Trigger()
	if hookErr := <-waitErr; hookErr != nil {
		e.log.Warn("shutdown incomplete", "error", hookErr)
	}

	if perr := e.printResult(res); perr != nil {
		return perr
	}
	if errors.Is(err, context.Canceled) {
		return cli.Exit("workload interrupted", 130)
	}
	return err
}

func (e *env) printResult(res *workload.Result) error {
	if err := e.print(res); err != nil {
		return err
	}
	if e.flags.Output != output.FormatTable {
		return nil
	}
	fmt.Fprintln(e.out)
	return output.Histogram{}.Render(e.out, res.Distribution)
}

func trackProgress(stop <-chan struct{}, bar *output.ProgressBar, runner *workload.Runner) {
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tick.C:
			bar.Set(runner.Completed())
		}
	}
}

// serveMetrics starts the /metrics endpoint and returns its bound address.
func serveMetrics(h *shutdown.Handler, reg *metric.Registry, addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	h.OnShutdown("metrics", srv.Shutdown)
	return ln.Addr().String(), nil
}

// watchLogLevel applies log.level changes from the config file while the
// command runs.
func watchLogLevel(h *shutdown.Handler, log logger.Logger, path string) error {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return err
	}
	w.OnChange(func(changed string) {
		applyLogLevel(log, changed)
	})
	w.StartAsync()
	h.OnShutdown("config-watcher", func(context.Context) error {
		return w.Stop()
	})
	return nil
}

func applyLogLevel(log logger.Logger, path string) {
	l := confloader.NewLoader()
	if err := l.LoadFile(path); err != nil {
		log.Warn("config reload failed", "path", path, "error", err)
		return
	}
	level := l.GetString("log.level")
	if level == "" || level == logger.GetLevel() {
		return
	}
	logger.SetLevel(level)
	log.Info("log level changed", "level", level)
}
