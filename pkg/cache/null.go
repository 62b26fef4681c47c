package cache

import (
	"context"
	"time"
)

// NullCache backs --no-cache and cache.backend = "null". Every lookup
// misses, so the runner rebuilds the graph on each run.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() *NullCache { return &NullCache{} }

// Get reports a miss for every key.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the adjacency bytes.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

// Clear succeeds trivially, so "csrgraph cache clear --cache null" is not an error.
func (*NullCache) Clear(context.Context) error { return nil }

func (*NullCache) Close() error { return nil }

var (
	_ Cache   = (*NullCache)(nil)
	_ Clearer = (*NullCache)(nil)
)
