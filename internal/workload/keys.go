package workload

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// GenerateKeys builds a keyspace of n distinct keys.
func GenerateKeys(mode string, n int) ([]string, error) {
	keys := make([]string, n)
	switch mode {
	case KeyModeSequential, "":
		for i := range keys {
			keys[i] = fmt.Sprintf("key-%08d", i)
		}
	case KeyModeULID:
		// Monotonic entropy keeps IDs minted in the same millisecond distinct.
		entropy := ulid.Monotonic(rand.Reader, 0)
		now := ulid.Timestamp(time.Now())
		for i := range keys {
			id, err := ulid.New(now, entropy)
			if err != nil {
				return nil, fmt.Errorf("generate ulid key: %w", err)
			}
			keys[i] = id.String()
		}
	default:
		return nil, fmt.Errorf("unknown key mode %q", mode)
	}
	return keys, nil
}

// NewRunID returns a fresh, sortable run identifier.
func NewRunID() string {
	return ulid.Make().String()
}
