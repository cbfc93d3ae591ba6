package htable

import (
	"errors"
	"fmt"
	"testing"
)

func TestStringHasher(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "htable.MapHasher[string]", false},
		{"maphash", "htable.MapHasher[string]", false},
		{"MURMUR3", "htable.Murmur3Hasher", false},
		{"xxhash", "htable.XXHasher", false},
		{"fnv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := StringHasher(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownHasher) {
					t.Errorf("StringHasher(%q) error = %v, want ErrUnknownHasher", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("StringHasher(%q) error = %v", tt.name, err)
			}
			if got := typeName(h); got != tt.want {
				t.Errorf("StringHasher(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestHashersDeterministic(t *testing.T) {
	hashers := map[string]Hasher[string]{
		"maphash": NewMapHasher[string](),
		"murmur3": Murmur3Hasher{},
		"xxhash":  XXHasher{},
	}
	keys := []string{"", "a", "hello", "the quick brown fox"}

	for name, h := range hashers {
		for _, k := range keys {
			first := h.Hash(k)
			for i := 0; i < 3; i++ {
				if got := h.Hash(k); got != first {
					t.Errorf("%s.Hash(%q) = %d, then %d", name, k, first, got)
				}
			}
		}
	}
}

func TestKnownDigests(t *testing.T) {
	// Reference values for the empty input.
	if got := (XXHasher{}).Hash(""); got != 0xef46db3751d8e999 {
		t.Errorf("XXHasher.Hash(\"\") = %#x, want 0xef46db3751d8e999", got)
	}
	if got := (Murmur3Hasher{}).Hash(""); got != 0 {
		t.Errorf("Murmur3Hasher.Hash(\"\") = %#x, want 0", got)
	}
}

func TestMapHasherComparableKeys(t *testing.T) {
	type key struct {
		A int
		B string
	}
	h := NewMapHasher[key]()
	if h.Hash(key{1, "x"}) != h.Hash(key{1, "x"}) {
		t.Error("equal struct keys hashed differently")
	}
}

func TestHasherFunc(t *testing.T) {
	h := HasherFunc[int](func(k int) uint64 { return uint64(k * 2) })
	if got := h.Hash(21); got != 42 {
		t.Errorf("HasherFunc.Hash(21) = %d, want 42", got)
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
