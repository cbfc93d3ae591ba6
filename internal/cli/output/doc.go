// Package output renders bucketmap CLI results.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: tabular rendering of structs, slices and maps
//   - json.go, yaml.go: machine-readable formats
//   - histogram.go: bucket occupancy bars
//   - progress.go: operation progress for workload runs
package output
