package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/wizex/bucketmap/pkg/htable"
)

// Scenario is the outcome of one demo step.
type Scenario struct {
	Step     int    `json:"step" yaml:"step"`
	Name     string `json:"name" yaml:"name"`
	Observed string `json:"observed" yaml:"observed"`
	OK       bool   `json:"ok" yaml:"ok"`
}

// DemoCommand returns the demo command.
func DemoCommand() *cli.Command {
	return &cli.Command{
		Name:   "demo",
		Usage:  "Walk through the basic table operations on a fresh table",
		Flags:  tableFlags(),
		Action: demo,
	}
}

func demo(c *cli.Context) error {
	e, err := setup(c, flagKeys{"buckets": "table.bucket_count", "hasher": "table.hasher"})
	if err != nil {
		return err
	}
	scenarios, err := runScenarios(e.cfg.Table, htable.WithLogger(e.log))
	if err != nil {
		return err
	}
	if err := e.print(scenarios); err != nil {
		return err
	}
	for _, s := range scenarios {
		if !s.OK {
			return fmt.Errorf("demo step %d (%s) failed: %s", s.Step, s.Name, s.Observed)
		}
	}
	return nil
}

// runScenarios exercises each operation on its own table built from cfg.
func runScenarios(cfg htable.Config, opts ...htable.Option) ([]Scenario, error) {
	steps := []struct {
		name string
		fn   func(t *htable.Table[string, int]) (string, bool)
	}{
		{"insert then lookup", func(t *htable.Table[string, int]) (string, bool) {
			t.Insert("a", 1)
			v, ok := t.Lookup("a")
			return fmt.Sprintf("lookup(a) = %d, %v", v, ok), ok && v == 1
		}},
		{"insert replaces value", func(t *htable.Table[string, int]) (string, bool) {
			t.Insert("a", 1)
			t.Insert("a", 2)
			v, _ := t.Lookup("a")
			return fmt.Sprintf("lookup(a) = %d, len = %d", v, t.Len()), v == 2 && t.Len() == 1
		}},
		{"erase on empty table", func(t *htable.Table[string, int]) (string, bool) {
			erased := t.Erase("a")
			return fmt.Sprintf("erase(a) = %v, len = %d", erased, t.Len()), !erased && t.Len() == 0
		}},
		{"at on missing key", func(t *htable.Table[string, int]) (string, bool) {
			_, err := t.At("missing")
			return fmt.Sprintf("at(missing) error: %v", err), errors.Is(err, htable.ErrKeyNotFound)
		}},
		{"get or insert twice", func(t *htable.Table[string, int]) (string, bool) {
			first := t.GetOrInsert("x")
			second := t.GetOrInsert("x")
			return fmt.Sprintf("first = %d, second = %d, len = %d", first, second, t.Len()),
				first == 0 && second == first && t.Len() == 1
		}},
		{"clear keeps buckets", func(t *htable.Table[string, int]) (string, bool) {
			before := t.BucketCount()
			t.Insert("b", 5)
			t.Clear()
			t.Insert("a", 1)
			v, ok := t.Lookup("a")
			return fmt.Sprintf("lookup(a) = %d, buckets %d -> %d", v, before, t.BucketCount()),
				ok && v == 1 && t.BucketCount() == before && !t.Contains("b")
		}},
	}

	out := make([]Scenario, 0, len(steps))
	for i, step := range steps {
		t, err := htable.NewFromConfig[int](cfg, opts...)
		if err != nil {
			return nil, err
		}
		observed, ok := step.fn(t)
		out = append(out, Scenario{Step: i + 1, Name: step.name, Observed: observed, OK: ok})
	}
	return out, nil
}
