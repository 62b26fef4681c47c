// Package cache stores built graphs keyed by a hash of their input.
//
// # Backends
//
//   - [FileCache]: JSON entries under a local directory, for the CLI
//   - [RedisCache]: a shared Redis instance
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: never stores anything (--no-cache)
//
// [Open] selects a backend from a [Config], and [Instrument] wraps any cache
// so hits, misses and writes are reported to the observability hooks.
//
// # Keys
//
// A [Keyer] derives keys from the SHA-256 of the input bytes and the options
// that change the built graph, so the same file built with and without
// symmetrization lands in different entries.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration. A ttl of zero means the
// entry never expires. Get reports a miss with ok == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Lookup returns the entry for key, or [ErrCacheMiss] when it is absent.
func Lookup(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}
