// Package benchmark measures htable throughput across bucket counts,
// hashers and operation mixes.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Compare bucket counts only:
//
//	go test -bench=BenchmarkTableMixed -benchtime=5s ./internal/tests/benchmark/...
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark
