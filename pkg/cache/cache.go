// Package cache provides the response and snapshot caches used by the
// content API client and the pipeline.
//
// Three backends implement [Cache]:
//
//   - [FileCache] stores entries as JSON files under the XDG cache directory
//     and is the CLI default.
//   - [RedisCache] shares entries between processes (for example several
//     `mindmap serve` replicas) and is selected when a Redis address is
//     configured.
//   - [NullCache] never stores anything (--no-cache).
//
// Keys are built by a [Keyer]; [ScopedKeyer] prefixes them per tenant or
// environment. Layout results are never cached: a graph is cheap to
// recompute and is rebuilt from every fresh snapshot.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached entries.
const (
	// TTLHTTP is how long content API responses stay fresh.
	TTLHTTP = time.Hour

	// TTLCatalog is how long a loaded catalog snapshot stays fresh.
	TTLCatalog = 15 * time.Minute
)

// Cache stores opaque byte values by key.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures. A ttl of zero means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
// It returns the number of entries removed.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Options selects and configures a cache backend for [Open].
type Options struct {
	Disabled bool   // Use NullCache
	Dir      string // FileCache directory
	Redis    RedisOptions
}

// Open returns the backend described by opts: Null when disabled, Redis when
// an address is set, otherwise a file cache in opts.Dir.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch {
	case opts.Disabled:
		return NewNullCache(), nil
	case opts.Redis.Addr != "":
		rc, err := NewRedisCache(ctx, opts.Redis)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case opts.Dir == "":
		return NewNullCache(), nil
	default:
		fc, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}
