// Package htable provides a concurrent hash table with a fixed bucket count.
//
// Locking is two-level:
//
//   - Bucket: each bucket owns a sync.RWMutex. Insert, Emplace, Erase,
//     GetOrInsert and Compute take it exclusively; Lookup, At and Access
//     take it shared.
//   - Table: a coordinating sync.RWMutex over the bucket slice. All keyed
//     operations take it shared, so traffic on different buckets proceeds
//     in parallel. Clear takes it exclusively and swaps in fresh buckets.
//
// A key is routed to bucket Hash(key) % BucketCount(). The bucket count is
// fixed when the table is built; there is no resizing.
//
// Usage:
//
//	t, err := htable.New[string, int](htable.WithBucketCount(32))
//	t.Insert("a", 1)
//	v, ok := t.Lookup("a")
//	n := t.GetOrInsert("hits")
//
// Values leave the table by copy. Access and Compute expose the stored
// value to a callback that runs under the bucket lock; nothing handed to
// such a callback may be kept after it returns.
package htable
