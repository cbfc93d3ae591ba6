package workload

import (
	"errors"
	"fmt"
	"runtime"
)

// Key generation modes.
const (
	KeyModeSequential = "seq"
	KeyModeULID       = "ulid"
)

// Config describes a workload.
type Config struct {
	// Workers is the number of concurrent goroutines. Defaults to GOMAXPROCS.
	Workers int `koanf:"workers" json:"workers" yaml:"workers"`
	// Ops is the number of operations each worker performs.
	Ops int `koanf:"ops" json:"ops" yaml:"ops"`
	// Keys is the size of the keyspace.
	Keys int `koanf:"keys" json:"keys" yaml:"keys"`
	// KeyMode selects how keys are generated: seq or ulid.
	KeyMode string `koanf:"key_mode" json:"key_mode" yaml:"key_mode"`
	// ReadRatio is the share of read operations, in [0, 1].
	ReadRatio float64 `koanf:"read_ratio" json:"read_ratio" yaml:"read_ratio"`
	// EraseRatio is the share of erase operations, in [0, 1].
	// ReadRatio + EraseRatio must not exceed 1; the rest are writes.
	EraseRatio float64 `koanf:"erase_ratio" json:"erase_ratio" yaml:"erase_ratio"`
	// Rate caps total operations per second across workers. 0 disables it.
	Rate float64 `koanf:"rate" json:"rate" yaml:"rate"`
	// Seed makes the operation mix reproducible.
	Seed uint64 `koanf:"seed" json:"seed" yaml:"seed"`
}

// DefaultConfig returns the default workload.
func DefaultConfig() Config {
	return Config{
		Workers:    runtime.GOMAXPROCS(0),
		Ops:        10000,
		Keys:       1000,
		KeyMode:    KeyModeSequential,
		ReadRatio:  0.7,
		EraseRatio: 0.05,
		Seed:       1,
	}
}

// Validate checks the workload for consistency.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if c.Ops < 1 {
		return errors.New("ops must be at least 1")
	}
	if c.Keys < 1 {
		return errors.New("keys must be at least 1")
	}
	if c.KeyMode != KeyModeSequential && c.KeyMode != KeyModeULID {
		return fmt.Errorf("unknown key_mode %q", c.KeyMode)
	}
	if c.ReadRatio < 0 || c.ReadRatio > 1 || c.EraseRatio < 0 || c.EraseRatio > 1 {
		return errors.New("read_ratio and erase_ratio must be within [0, 1]")
	}
	if c.ReadRatio+c.EraseRatio > 1 {
		return errors.New("read_ratio + erase_ratio must not exceed 1")
	}
	if c.Rate < 0 {
		return errors.New("rate must not be negative")
	}
	return nil
}
