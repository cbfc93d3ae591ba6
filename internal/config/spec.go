// Package config defines the bucketmap configuration structure.
package config

import (
	"github.com/wizex/bucketmap/internal/telemetry/logger"
	"github.com/wizex/bucketmap/internal/workload"
	"github.com/wizex/bucketmap/pkg/htable"
)

// Config is the root configuration for the bucketmap tool.
type Config struct {
	Table    htable.Config   `koanf:"table" json:"table" yaml:"table"`
	Workload workload.Config `koanf:"workload" json:"workload" yaml:"workload"`
	Log      logger.Config   `koanf:"log" json:"log" yaml:"log"`
	Metrics  MetricsSection  `koanf:"metrics" json:"metrics" yaml:"metrics"`
}

// MetricsSection configures Prometheus instrumentation.
type MetricsSection struct {
	// Namespace prefixes every metric name.
	Namespace string `koanf:"namespace" json:"namespace" yaml:"namespace"`
	// Addr, when set, serves /metrics on this address while a workload runs.
	Addr string `koanf:"addr" json:"addr" yaml:"addr"`
}
