package htable

import "github.com/wizex/bucketmap/internal/telemetry/logger"

// DefaultBucketCount is the bucket count used when none is given.
const DefaultBucketCount = 10

// Config holds the settings a table is built from. It is usually filled by
// the configuration loader; values are copied on construction, so changing
// a Config later has no effect on existing tables.
type Config struct {
	// BucketCount is the fixed number of buckets. Defaults to 10.
	BucketCount int `koanf:"bucket_count" json:"bucket_count" yaml:"bucket_count"`
	// Hasher names the hash function for string keys: maphash, murmur3 or
	// xxhash. Defaults to maphash. Ignored for non-string tables.
	Hasher string `koanf:"hasher" json:"hasher" yaml:"hasher"`
}

// DefaultConfig returns the default table configuration.
func DefaultConfig() Config {
	return Config{
		BucketCount: DefaultBucketCount,
		Hasher:      HasherMaphash,
	}
}

type options struct {
	bucketCount int
	logger      logger.Logger
	observer    Observer
}

// Option configures a Table.
type Option func(*options)

// WithBucketCount sets the number of buckets. It cannot be changed after
// the table is built.
func WithBucketCount(n int) Option {
	return func(o *options) {
		o.bucketCount = n
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver installs an Observer notified after every operation.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

func resolveOptions(opts []Option) options {
	o := options{bucketCount: DefaultBucketCount}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Default()
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	return o
}
