// Package workload drives a table with concurrent, mixed operations.
//
// A Runner spawns a fixed number of workers. Each worker issues a weighted
// mix of lookups, inserts, erases and read-modify-writes against keys drawn
// from a fixed keyspace, optionally throttled by a shared rate limiter.
// Counts per operation are collected into a Result.
//
// Disjoint runs one worker per bucket, each hammering a key routed to its
// own bucket, to exercise the cross-bucket parallelism of the table.
package workload
