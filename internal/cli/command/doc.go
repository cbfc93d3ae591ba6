// Package command defines the bucketmap CLI.
//
// Commands:
//
//   - run: drive a configured table with a concurrent workload
//   - demo: walk through the basic table operations
//   - stats: show how a hasher spreads keys over buckets
//   - shell: operate on a table interactively
//   - config: print or validate the effective configuration
//   - version: print build information
//
// Every command resolves configuration the same way: defaults, then the
// --config file, then BUCKETMAP_* environment variables, then flags.
package command
