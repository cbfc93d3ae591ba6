package htable

import (
	"fmt"
	"hash/maphash"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// Hasher maps a key to an unsigned integer.
//
// Implementations must be deterministic for the lifetime of a table: the
// bucket a key lives in is Hash(key) % BucketCount(), so a hasher whose
// output drifts would silently strand existing entries.
type Hasher[K any] interface {
	Hash(key K) uint64
}

// HasherFunc adapts an ordinary function to the Hasher interface.
type HasherFunc[K any] func(key K) uint64

// Hash calls f(key).
func (f HasherFunc[K]) Hash(key K) uint64 {
	return f(key)
}

// MapHasher hashes any comparable key with hash/maphash.
// The seed is chosen once, when the hasher is created.
type MapHasher[K comparable] struct {
	seed maphash.Seed
}

// NewMapHasher creates a MapHasher with a random seed.
func NewMapHasher[K comparable]() MapHasher[K] {
	return MapHasher[K]{seed: maphash.MakeSeed()}
}

// Hash implements Hasher.
func (h MapHasher[K]) Hash(key K) uint64 {
	return maphash.Comparable(h.seed, key)
}

// Murmur3Hasher hashes string keys with MurmurHash3 (64-bit).
type Murmur3Hasher struct{}

// Hash implements Hasher.
func (Murmur3Hasher) Hash(key string) uint64 {
	return murmur3.Sum64([]byte(key))
}

// XXHasher hashes string keys with xxHash64.
type XXHasher struct{}

// Hash implements Hasher.
func (XXHasher) Hash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// Hasher names accepted by StringHasher.
const (
	HasherMaphash = "maphash"
	HasherMurmur3 = "murmur3"
	HasherXXHash  = "xxhash"
)

// StringHasher resolves a hasher for string keys by name. An empty name
// selects maphash.
func StringHasher(name string) (Hasher[string], error) {
	switch strings.ToLower(name) {
	case "", HasherMaphash:
		return NewMapHasher[string](), nil
	case HasherMurmur3:
		return Murmur3Hasher{}, nil
	case HasherXXHash:
		return XXHasher{}, nil
	default:
		cause := fmt.Errorf("want one of %s, %s, %s", HasherMaphash, HasherMurmur3, HasherXXHash)
		return nil, ErrUnknownHasher.WithDetails(name).WithCause(cause)
	}
}
