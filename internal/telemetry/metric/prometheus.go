package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wizex/bucketmap/pkg/htable"
)

// Registry holds the application's Prometheus registry and metrics.
type Registry struct {
	registry *prometheus.Registry

	// Ops counts table operations by op and result (hit, miss).
	Ops *OpCounter

	// WorkloadRuns counts finished workload runs by outcome.
	WorkloadRuns *prometheus.CounterVec
	// WorkloadDuration observes wall time of workload runs.
	WorkloadDuration prometheus.Histogram
}

// NewRegistry creates a registry with Go runtime and process collectors
// plus the bucketmap metrics under namespace.
func NewRegistry(namespace string) *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
		Ops:      NewOpCounter(namespace),
		WorkloadRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workload",
			Name:      "runs_total",
			Help:      "Workload runs by outcome",
		}, []string{"outcome"}),
		WorkloadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "workload",
			Name:      "duration_seconds",
			Help:      "Wall time of workload runs",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	reg.MustRegister(r.Ops.vec, r.WorkloadRuns, r.WorkloadDuration)
	return r
}

// Register adds a collector to the registry.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

// Gatherer exposes the underlying registry for tests and exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler serving the registry in Prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// OpCounter counts table operations. It implements htable.Observer.
type OpCounter struct {
	vec *prometheus.CounterVec
}

// NewOpCounter creates an unregistered OpCounter.
func NewOpCounter(namespace string) *OpCounter {
	return &OpCounter{
		vec: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "table",
			Name:      "operations_total",
			Help:      "Table operations by op and whether the key was present",
		}, []string{"op", "result"}),
	}
}

// ObserveOp implements htable.Observer.
func (c *OpCounter) ObserveOp(op htable.Op, bucket int, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.vec.WithLabelValues(string(op), result).Inc()
}
