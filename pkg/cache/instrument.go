package cache

import (
	"context"
	"time"

	"github.com/matzehuels/csrgraph/pkg/observability"
)

// Instrumented reports cache traffic to the registered observability hooks.
type Instrumented struct {
	Cache
}

// Instrument wraps c so every Get and Set emits a cache hook event.
// Wrapping an already instrumented cache returns it unchanged.
func Instrument(c Cache) Cache {
	if _, ok := c.(*Instrumented); ok {
		return c
	}
	return &Instrumented{Cache: c}
}

// Get forwards to the wrapped cache and records a hit or miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, KeyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, ok, err
}

// Set forwards to the wrapped cache and records the write.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	}
	return err
}

// Clear forwards to the wrapped cache when it supports clearing.
func (c *Instrumented) Clear(ctx context.Context) error {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

// Unwrap returns the wrapped cache.
func (c *Instrumented) Unwrap() Cache { return c.Cache }
