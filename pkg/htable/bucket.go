package htable

import "sync"

type entry[K comparable, V any] struct {
	key   K
	value V
}

// bucket holds the entries whose key hashes to one slot.
//
// Entries are kept in insertion order and every scan walks that order.
// A key appears at most once.
type bucket[K comparable, V any] struct {
	mu      sync.RWMutex
	entries []entry[K, V]
}

func newBucket[K comparable, V any]() *bucket[K, V] {
	return &bucket[K, V]{}
}

// indexLocked returns the position of key, or -1. Caller holds mu.
func (b *bucket[K, V]) indexLocked(key K) int {
	for i := range b.entries {
		if b.entries[i].key == key {
			return i
		}
	}
	return -1
}

// upsertLocked replaces the value for key or appends a new entry.
// Reports whether the key already existed. Caller holds mu exclusively.
func (b *bucket[K, V]) upsertLocked(key K, value V) bool {
	if i := b.indexLocked(key); i >= 0 {
		b.entries[i].value = value
		return true
	}
	b.entries = append(b.entries, entry[K, V]{key: key, value: value})
	return false
}

func (b *bucket[K, V]) insert(key K, value V) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.upsertLocked(key, value)
}

// emplace builds the value while holding the lock, then upserts it.
func (b *bucket[K, V]) emplace(key K, newValue func() V) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.upsertLocked(key, newValue())
}

func (b *bucket[K, V]) erase(key K) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexLocked(key)
	if i < 0 {
		return false
	}
	b.removeLocked(i)
	return true
}

// removeLocked drops the entry at i. Shifts rather than swaps so the
// remaining entries keep insertion order.
func (b *bucket[K, V]) removeLocked(i int) {
	copy(b.entries[i:], b.entries[i+1:])
	var zero entry[K, V]
	b.entries[len(b.entries)-1] = zero
	b.entries = b.entries[:len(b.entries)-1]
}

func (b *bucket[K, V]) lookup(key K) (V, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i := b.indexLocked(key); i >= 0 {
		return b.entries[i].value, true
	}
	var zero V
	return zero, false
}

// last returns the value of the most recently appended entry.
func (b *bucket[K, V]) last() (V, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastLocked()
}

func (b *bucket[K, V]) lastLocked() (V, error) {
	if len(b.entries) == 0 {
		var zero V
		return zero, ErrEmptyBucket
	}
	return b.entries[len(b.entries)-1].value, nil
}

// getOrInsert returns the value stored for key, appending newValue() first
// when the key is absent. The scan and the append share one exclusive
// critical section, so two callers racing on the same key see one entry.
func (b *bucket[K, V]) getOrInsert(key K, newValue func() V) (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.indexLocked(key); i >= 0 {
		return b.entries[i].value, true
	}
	b.entries = append(b.entries, entry[K, V]{key: key, value: newValue()})
	v, err := b.lastLocked()
	if err != nil {
		// unreachable: we appended under the same lock
		panic(err)
	}
	return v, false
}

// access calls fn with a pointer to the stored value while holding the
// read lock. fn must not write through the pointer or keep it.
func (b *bucket[K, V]) access(key K, fn func(v *V, ok bool)) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i := b.indexLocked(key); i >= 0 {
		fn(&b.entries[i].value, true)
		return
	}
	fn(nil, false)
}

func (b *bucket[K, V]) compute(key K, fn func(old V, ok bool) (V, ComputeOp)) (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexLocked(key)
	var old V
	if i >= 0 {
		old = b.entries[i].value
	}
	nv, op := fn(old, i >= 0)
	switch op {
	case UpdateOp:
		if i >= 0 {
			b.entries[i].value = nv
		} else {
			b.entries = append(b.entries, entry[K, V]{key: key, value: nv})
		}
		return nv, true
	case DeleteOp:
		if i >= 0 {
			b.removeLocked(i)
		}
		var zero V
		return zero, false
	default:
		return old, i >= 0
	}
}

func (b *bucket[K, V]) count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// snapshot copies the entries under the read lock.
func (b *bucket[K, V]) snapshot() []entry[K, V] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]entry[K, V], len(b.entries))
	copy(out, b.entries)
	return out
}
