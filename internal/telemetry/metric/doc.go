// Package metric provides Prometheus metrics for bucketmap.
//
//   - prometheus.go: registry, operation counters and the /metrics handler
//   - collector.go: a collector exporting per-bucket occupancy
//
// OpCounter implements htable.Observer, so a table reports every
// operation by passing it via htable.WithObserver.
package metric
