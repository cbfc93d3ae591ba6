package config

import (
	"errors"
	"testing"

	"github.com/wizex/bucketmap/pkg/htable"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Table.BucketCount != htable.DefaultBucketCount {
		t.Errorf("Table.BucketCount = %d, want %d", cfg.Table.BucketCount, htable.DefaultBucketCount)
	}
	if cfg.Table.Hasher != htable.HasherMaphash {
		t.Errorf("Table.Hasher = %q, want %q", cfg.Table.Hasher, htable.HasherMaphash)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero buckets", func(c *Config) { c.Table.BucketCount = 0 }, htable.ErrInvalidBucketCount},
		{"unknown hasher", func(c *Config) { c.Table.Hasher = "sha1" }, htable.ErrUnknownHasher},
		{"no workers", func(c *Config) { c.Workload.Workers = 0 }, nil},
		{"no namespace", func(c *Config) { c.Metrics.Namespace = "" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Verify(cfg)
			if err == nil {
				t.Fatal("Verify() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
