package htable

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := ErrKeyNotFound.WithDetails("key a")
	want := "[HT-KEY-4040] key not found: key a"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if ErrEmptyBucket.Error() != "[HT-BKT-5000] bucket is empty" {
		t.Errorf("Error() = %q", ErrEmptyBucket.Error())
	}
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrKeyNotFound.WithDetails("x"))

	if !errors.Is(err, ErrKeyNotFound) {
		t.Error("errors.Is(wrapped, ErrKeyNotFound) = false")
	}
	if errors.Is(err, ErrEmptyBucket) {
		t.Error("errors.Is(wrapped, ErrEmptyBucket) = true")
	}
	if got := ErrorCode(err); got != "HT-KEY-4040" {
		t.Errorf("ErrorCode() = %q, want HT-KEY-4040", got)
	}
	if got := ErrorCode(errors.New("plain")); got != "" {
		t.Errorf("ErrorCode(plain) = %q, want empty", got)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk on fire")
	err := ErrUnknownHasher.WithCause(cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
}

func TestUnknownHasherCause(t *testing.T) {
	_, err := StringHasher("fnv")
	if err == nil {
		t.Fatal("StringHasher(fnv) error = nil")
	}
	if got, want := err.Error(), "[HT-CFG-4001] unknown hasher: fnv"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	cause := errors.Unwrap(err)
	if cause == nil {
		t.Fatal("errors.Unwrap() = nil, want the accepted hasher names")
	}
	if got, want := cause.Error(), "want one of maphash, murmur3, xxhash"; got != want {
		t.Errorf("cause = %q, want %q", got, want)
	}
}
