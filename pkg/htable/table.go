package htable

import (
	"fmt"
	"sync"

	"github.com/wizex/bucketmap/internal/telemetry/logger"
)

// Table is a concurrent map with a fixed number of buckets.
//
// Each bucket has its own RWMutex. The table's own RWMutex guards the
// bucket slice: every keyed operation holds it shared, so operations on
// different buckets never wait on each other, and only Clear takes it
// exclusively.
//
// Values are returned by copy. To work on the stored value in place use
// Access or Compute, whose callbacks run under the bucket lock; pointers
// handed to those callbacks are invalid once the callback returns.
type Table[K comparable, V any] struct {
	mu      sync.RWMutex
	buckets []*bucket[K, V]

	bucketCount int
	hasher      Hasher[K]
	logger      logger.Logger
	observer    Observer
}

// BucketStats describes one bucket at the time Stats was called.
type BucketStats struct {
	Index int `json:"index" yaml:"index"`
	Count int `json:"count" yaml:"count"`
}

// ComputeOp tells Compute what to do with the value its callback returned.
type ComputeOp int

const (
	// KeepOp leaves the bucket unchanged.
	KeepOp ComputeOp = iota
	// UpdateOp stores the returned value, inserting the key if needed.
	UpdateOp
	// DeleteOp removes the key if present.
	DeleteOp
)

// New creates a table that hashes keys with a MapHasher.
func New[K comparable, V any](opts ...Option) (*Table[K, V], error) {
	return NewWithHasher[K, V](NewMapHasher[K](), opts...)
}

// NewWithHasher creates a table using the given hasher.
func NewWithHasher[K comparable, V any](h Hasher[K], opts ...Option) (*Table[K, V], error) {
	o := resolveOptions(opts)
	if o.bucketCount <= 0 {
		return nil, ErrInvalidBucketCount.WithDetails(fmt.Sprintf("got %d", o.bucketCount))
	}
	if h == nil {
		h = NewMapHasher[K]()
	}

	t := &Table[K, V]{
		bucketCount: o.bucketCount,
		hasher:      h,
		logger:      o.logger,
		observer:    o.observer,
	}
	t.buckets = t.newBuckets()

	t.logger.Debug("table created",
		"buckets", t.bucketCount,
		"hasher", fmt.Sprintf("%T", h),
	)
	return t, nil
}

// NewFromConfig creates a string-keyed table from cfg. Options given after
// cfg take precedence over it.
func NewFromConfig[V any](cfg Config, opts ...Option) (*Table[string, V], error) {
	h, err := StringHasher(cfg.Hasher)
	if err != nil {
		return nil, err
	}
	if cfg.BucketCount != 0 {
		opts = append([]Option{WithBucketCount(cfg.BucketCount)}, opts...)
	}
	return NewWithHasher[string, V](h, opts...)
}

func (t *Table[K, V]) newBuckets() []*bucket[K, V] {
	buckets := make([]*bucket[K, V], t.bucketCount)
	for i := range buckets {
		buckets[i] = newBucket[K, V]()
	}
	return buckets
}

// BucketCount returns the number of buckets. It never changes.
func (t *Table[K, V]) BucketCount() int {
	return t.bucketCount
}

// BucketIndex returns the bucket a key is routed to.
func (t *Table[K, V]) BucketIndex(key K) int {
	return int(t.hasher.Hash(key) % uint64(t.bucketCount))
}

// withBucket runs fn on the key's bucket while holding the table lock
// shared, and returns the bucket index.
func (t *Table[K, V]) withBucket(key K, fn func(b *bucket[K, V])) int {
	idx := t.BucketIndex(key)
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn(t.buckets[idx])
	return idx
}

// Insert stores value under key, replacing any existing value.
func (t *Table[K, V]) Insert(key K, value V) {
	var existed bool
	idx := t.withBucket(key, func(b *bucket[K, V]) {
		existed = b.insert(key, value)
	})
	t.observer.ObserveOp(OpInsert, idx, existed)
}

// Emplace stores the value built by newValue under key, replacing any
// existing value. newValue runs under the bucket lock and must not call
// back into the table.
func (t *Table[K, V]) Emplace(key K, newValue func() V) {
	var existed bool
	idx := t.withBucket(key, func(b *bucket[K, V]) {
		existed = b.emplace(key, newValue)
	})
	t.observer.ObserveOp(OpEmplace, idx, existed)
}

// Erase removes key. It reports whether the key was present; erasing an
// absent key is a no-op.
func (t *Table[K, V]) Erase(key K) bool {
	var removed bool
	idx := t.withBucket(key, func(b *bucket[K, V]) {
		removed = b.erase(key)
	})
	t.observer.ObserveOp(OpErase, idx, removed)
	return removed
}

// Lookup returns a copy of the value stored under key.
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	var (
		v  V
		ok bool
	)
	idx := t.withBucket(key, func(b *bucket[K, V]) {
		v, ok = b.lookup(key)
	})
	t.observer.ObserveOp(OpLookup, idx, ok)
	return v, ok
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	_, ok := t.Lookup(key)
	return ok
}

// GetOrInsert returns the value stored under key. If the key is absent the
// zero value is stored and returned. Concurrent callers on the same key
// observe a single entry.
func (t *Table[K, V]) GetOrInsert(key K) V {
	v, _ := t.GetOrInsertWith(key, func() V {
		var zero V
		return zero
	})
	return v
}

// GetOrInsertWith is GetOrInsert with a custom initial value. newValue is
// only called when the key is absent, under the bucket lock. The boolean
// reports whether the key already existed.
func (t *Table[K, V]) GetOrInsertWith(key K, newValue func() V) (V, bool) {
	var (
		v       V
		existed bool
	)
	idx := t.withBucket(key, func(b *bucket[K, V]) {
		v, existed = b.getOrInsert(key, newValue)
	})
	t.observer.ObserveOp(OpGetOrInsert, idx, existed)
	return v, existed
}

// At returns a copy of the value stored under key, or an error matching
// ErrKeyNotFound.
func (t *Table[K, V]) At(key K) (V, error) {
	var (
		v  V
		ok bool
	)
	idx := t.withBucket(key, func(b *bucket[K, V]) {
		v, ok = b.lookup(key)
	})
	t.observer.ObserveOp(OpAt, idx, ok)
	if !ok {
		return v, ErrKeyNotFound.WithDetails(fmt.Sprintf("key %v (bucket %d)", key, idx))
	}
	return v, nil
}

// Access calls fn with a pointer to the value stored under key, or with
// (nil, false) when absent. fn runs under the bucket's read lock: it must
// treat the value as read-only, must not retain the pointer and must not
// call back into the table.
func (t *Table[K, V]) Access(key K, fn func(v *V, ok bool)) {
	hit := false
	idx := t.withBucket(key, func(b *bucket[K, V]) {
		b.access(key, func(v *V, ok bool) {
			hit = ok
			fn(v, ok)
		})
	})
	t.observer.ObserveOp(OpAccess, idx, hit)
}

// Compute atomically reads and rewrites the entry for key. fn receives the
// current value (zero if absent) and decides via the returned ComputeOp
// whether to keep, store or delete. Compute returns the value left in the
// table and whether the key is present afterwards. fn runs under the
// bucket's write lock and must not call back into the table.
func (t *Table[K, V]) Compute(key K, fn func(old V, ok bool) (V, ComputeOp)) (V, bool) {
	var (
		v       V
		present bool
		hit     bool
	)
	idx := t.withBucket(key, func(b *bucket[K, V]) {
		v, present = b.compute(key, func(old V, ok bool) (V, ComputeOp) {
			hit = ok
			return fn(old, ok)
		})
	})
	t.observer.ObserveOp(OpCompute, idx, hit)
	return v, present
}

// Clear removes every entry. The table keeps its bucket count and is
// immediately usable again.
func (t *Table[K, V]) Clear() {
	t.mu.Lock()
	t.buckets = t.newBuckets()
	t.mu.Unlock()

	t.logger.Debug("table cleared", "buckets", t.bucketCount)
	t.observer.ObserveOp(OpClear, -1, false)
}

// Len returns the number of entries. Buckets are counted one at a time, so
// under concurrent writes the result is approximate.
func (t *Table[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, b := range t.buckets {
		n += b.count()
	}
	return n
}

// Stats returns the entry count of every bucket.
func (t *Table[K, V]) Stats() []BucketStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := make([]BucketStats, len(t.buckets))
	for i, b := range t.buckets {
		stats[i] = BucketStats{
			Index: i,
			Count: b.count(),
		}
	}
	return stats
}

// Range calls fn for each entry until fn returns false.
//
// Each bucket is copied under its read lock and fn runs on the copy, so fn
// may call any table method. The view is not a consistent snapshot of the
// whole table, and no order is guaranteed.
func (t *Table[K, V]) Range(fn func(key K, value V) bool) {
	t.mu.RLock()
	buckets := make([]*bucket[K, V], len(t.buckets))
	copy(buckets, t.buckets)
	t.mu.RUnlock()

	for _, b := range buckets {
		for _, e := range b.snapshot() {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}
