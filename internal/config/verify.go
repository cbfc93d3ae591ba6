package config

import (
	"errors"
	"fmt"

	"github.com/wizex/bucketmap/pkg/htable"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if err := verifyTable(&cfg.Table); err != nil {
		return err
	}
	if err := cfg.Workload.Validate(); err != nil {
		return fmt.Errorf("workload: %w", err)
	}
	if cfg.Metrics.Namespace == "" {
		return errors.New("metrics.namespace is required")
	}
	return nil
}

func verifyTable(cfg *htable.Config) error {
	if cfg.BucketCount <= 0 {
		return htable.ErrInvalidBucketCount.WithDetails(fmt.Sprintf("table.bucket_count = %d", cfg.BucketCount))
	}
	if _, err := htable.StringHasher(cfg.Hasher); err != nil {
		return err
	}
	return nil
}
