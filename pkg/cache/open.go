package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendNull  = "null"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// DefaultTTL is the lifetime of cached graphs when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Config selects and configures a cache backend.
type Config struct {
	Backend string
	Dir     string
	TTL     time.Duration
	Redis   RedisOptions
	Mongo   MongoOptions
}

// Open creates the configured backend wrapped with [Instrument].
// An empty backend name selects the file cache.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch cfg.Backend {
	case "", BackendFile:
		c, err = NewFileCache(cfg.Dir)
	case BackendNull:
		c = NewNullCache()
	case BackendRedis:
		c, err = NewRedisCache(ctx, cfg.Redis)
	case BackendMongo:
		c, err = NewMongoCache(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(c), nil
}
