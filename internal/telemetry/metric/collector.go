package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wizex/bucketmap/pkg/htable"
)

// StatsSource reports per-bucket occupancy. *htable.Table satisfies it.
type StatsSource interface {
	Stats() []htable.BucketStats
	BucketCount() int
}

// BucketCollector exports table occupancy at scrape time.
type BucketCollector struct {
	source StatsSource

	entries *prometheus.Desc
	total   *prometheus.Desc
	buckets *prometheus.Desc
}

// NewBucketCollector creates a collector reading from source.
func NewBucketCollector(source StatsSource, namespace string) *BucketCollector {
	return &BucketCollector{
		source: source,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "table", "bucket_entries"),
			"Entries stored in each bucket",
			[]string{"bucket"}, nil,
		),
		total: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "table", "entries"),
			"Entries stored in the table",
			nil, nil,
		),
		buckets: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "table", "buckets"),
			"Number of buckets",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *BucketCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.total
	ch <- c.buckets
}

// Collect implements prometheus.Collector.
func (c *BucketCollector) Collect(ch chan<- prometheus.Metric) {
	var total int
	for _, s := range c.source.Stats() {
		total += s.Count
		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Count), strconv.Itoa(s.Index))
	}
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(total))
	ch <- prometheus.MustNewConstMetric(c.buckets, prometheus.GaugeValue, float64(c.source.BucketCount()))
}
