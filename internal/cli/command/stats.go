package command

import (
	"math"

	"github.com/urfave/cli/v2"

	"github.com/wizex/bucketmap/internal/cli/output"
	"github.com/wizex/bucketmap/internal/workload"
	"github.com/wizex/bucketmap/pkg/htable"
)

// Distribution summarizes how keys spread over buckets.
type Distribution struct {
	Hasher  string               `json:"hasher" yaml:"hasher"`
	Buckets int                  `json:"buckets" yaml:"buckets"`
	Keys    int                  `json:"keys" yaml:"keys"`
	Min     int                  `json:"min" yaml:"min"`
	Max     int                  `json:"max" yaml:"max"`
	Mean    float64              `json:"mean" yaml:"mean"`
	StdDev  float64              `json:"stddev" yaml:"stddev"`
	Stats   []htable.BucketStats `json:"stats" yaml:"stats" table:"-"`
}

// StatsCommand returns the stats command.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Insert a keyspace and show the per-bucket distribution",
		Flags: append(tableFlags(),
			&cli.IntFlag{Name: "keys", Aliases: []string{"k"}, Usage: "Number of keys to insert"},
			&cli.StringFlag{Name: "key-mode", Usage: "Key generation: seq, ulid"},
		),
		Action: stats,
	}
}

func stats(c *cli.Context) error {
	e, err := setup(c, flagKeys{
		"buckets":  "table.bucket_count",
		"hasher":   "table.hasher",
		"keys":     "workload.keys",
		"key-mode": "workload.key_mode",
	})
	if err != nil {
		return err
	}

	d, err := distribution(e.cfg.Table, e.cfg.Workload.KeyMode, e.cfg.Workload.Keys, htable.WithLogger(e.log))
	if err != nil {
		return err
	}
	if err := e.print(d); err != nil {
		return err
	}
	if e.flags.Output == output.FormatTable {
		return output.Histogram{}.Render(e.out, d.Stats)
	}
	return nil
}

func distribution(cfg htable.Config, mode string, n int, opts ...htable.Option) (*Distribution, error) {
	t, err := htable.NewFromConfig[struct{}](cfg, opts...)
	if err != nil {
		return nil, err
	}
	keys, err := workload.GenerateKeys(mode, n)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		t.Insert(k, struct{}{})
	}

	hasher := cfg.Hasher
	if hasher == "" {
		hasher = htable.HasherMaphash
	}
	d := &Distribution{
		Hasher:  hasher,
		Buckets: t.BucketCount(),
		Keys:    t.Len(),
		Stats:   t.Stats(),
		Min:     math.MaxInt,
	}
	d.Mean = float64(d.Keys) / float64(d.Buckets)
	var sq float64
	for _, s := range d.Stats {
		d.Min = min(d.Min, s.Count)
		d.Max = max(d.Max, s.Count)
		diff := float64(s.Count) - d.Mean
		sq += diff * diff
	}
	d.StdDev = math.Sqrt(sq / float64(d.Buckets))
	return d, nil
}
