package config

import (
	"github.com/wizex/bucketmap/internal/telemetry/logger"
	"github.com/wizex/bucketmap/internal/workload"
	"github.com/wizex/bucketmap/pkg/htable"
)

// DefaultMetricsNamespace is the default Prometheus namespace.
const DefaultMetricsNamespace = "bucketmap"

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Table:    htable.DefaultConfig(),
		Workload: workload.DefaultConfig(),
		Log:      logger.DefaultConfig(),
		Metrics: MetricsSection{
			Namespace: DefaultMetricsNamespace,
		},
	}
}
