// Package config loads csrgraph settings.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. Built-in defaults
//  2. A TOML file (csrgraph.toml in the working directory, or --config)
//  3. CSRGRAPH_* environment variables
//  4. Command-line flags that were explicitly set
//
// Keys are dotted paths such as "cache.redis.addr". The environment variable
// of a key is its upper-cased path with dots replaced by underscores and the
// CSRGRAPH_ prefix, e.g. CSRGRAPH_CACHE_REDIS_ADDR.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/matzehuels/csrgraph/pkg/cache"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
)

const (
	// AppName names the cache directory and the default config file.
	AppName = "csrgraph"

	// DefaultFile is the config file read from the working directory when
	// no explicit path is given.
	DefaultFile = AppName + ".toml"

	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "CSRGRAPH_"

	// DefaultAddr is the listen address of the HTTP service.
	DefaultAddr = "127.0.0.1:8080"
)

// Config holds all configuration for the application.
type Config struct {
	Workers   int         `koanf:"workers"`
	Grain     int         `koanf:"grain"`
	ChunkSize int         `koanf:"chunk_size"`
	Symmetric bool        `koanf:"symmetric"`
	Cache     CacheConfig `koanf:"cache"`
	Serve     ServeConfig `koanf:"serve"`
}

// CacheConfig selects the build cache backend.
type CacheConfig struct {
	Backend string        `koanf:"backend"`
	Dir     string        `koanf:"dir"`
	TTL     time.Duration `koanf:"ttl"`
	Redis   RedisConfig   `koanf:"redis"`
	Mongo   MongoConfig   `koanf:"mongo"`
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	URI        string `koanf:"uri"`
	Database   string `koanf:"database"`
	Collection string `koanf:"collection"`
}

// ServeConfig configures the HTTP service.
type ServeConfig struct {
	Addr string `koanf:"addr"`
}

// Keys lists every configuration key.
var Keys = []string{
	"workers",
	"grain",
	"chunk_size",
	"symmetric",
	"cache.backend",
	"cache.dir",
	"cache.ttl",
	"cache.redis.addr",
	"cache.redis.password",
	"cache.redis.db",
	"cache.mongo.uri",
	"cache.mongo.database",
	"cache.mongo.collection",
	"serve.addr",
}

// FlagKeys maps command-line flag names to configuration keys. Flags not
// listed here are not read into the configuration.
var FlagKeys = map[string]string{
	"workers":    "workers",
	"grain":      "grain",
	"chunk-size": "chunk_size",
	"symmetric":  "symmetric",
	"cache":      "cache.backend",
	"cache-dir":  "cache.dir",
	"addr":       "serve.addr",
}

// Defaults returns the built-in default values keyed by configuration key.
func Defaults() map[string]any {
	return map[string]any{
		"workers":                0,
		"grain":                  0,
		"chunk_size":             0,
		"symmetric":              false,
		"cache.backend":          cache.BackendFile,
		"cache.dir":              DefaultCacheDir(),
		"cache.ttl":              cache.DefaultTTL.String(),
		"cache.redis.addr":       "localhost:6379",
		"cache.redis.password":   "",
		"cache.redis.db":         0,
		"cache.mongo.uri":        "mongodb://localhost:27017",
		"cache.mongo.database":   AppName,
		"cache.mongo.collection": "cache",
		"serve.addr":             DefaultAddr,
	}
}

// Load reads configuration from defaults, the config file at path (or
// csrgraph.toml when path is empty), the environment and the flag set.
// Priority: Flags > Env > Config File > Defaults.
//
// An explicit path must exist; the implicit csrgraph.toml is optional.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(mapProvider(Defaults()), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := gerrors.ValidateFilePath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), TOML()); err != nil {
			return nil, gerrors.Wrap(gerrors.ErrCodeInvalidFormat, err, "config file %s", path)
		}
	} else if explicit {
		return nil, gerrors.Wrap(gerrors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	// 3. Environment variables
	envKeys := envKeyMap()
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := FlagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeInvalidInput, err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and backend-specific settings.
func (c *Config) Validate() error {
	for name, v := range map[string]int{
		"workers":        c.Workers,
		"grain":          c.Grain,
		"chunk_size":     c.ChunkSize,
		"cache.redis.db": c.Cache.Redis.DB,
	} {
		if err := gerrors.ValidateCount(name, v); err != nil {
			return err
		}
	}
	if c.Cache.TTL < 0 {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "cache.ttl must not be negative, got %s", c.Cache.TTL)
	}

	switch c.Cache.Backend {
	case cache.BackendFile:
		if err := gerrors.ValidateCacheDir(c.Cache.Dir); err != nil {
			return err
		}
	case cache.BackendNull:
	case cache.BackendRedis:
		if err := gerrors.ValidateAddr(c.Cache.Redis.Addr); err != nil {
			return err
		}
	case cache.BackendMongo:
		if err := gerrors.ValidateMongoURI(c.Cache.Mongo.URI); err != nil {
			return err
		}
	default:
		return gerrors.New(gerrors.ErrCodeInvalidInput,
			"invalid cache.backend: %q (must be one of: file, null, redis, mongo)", c.Cache.Backend)
	}

	return gerrors.ValidateAddr(c.Serve.Addr)
}

// CacheOptions converts the cache section for [cache.Open].
func (c *Config) CacheOptions() cache.Config {
	return cache.Config{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		TTL:     c.Cache.TTL,
		Redis: cache.RedisOptions{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
			Prefix:   AppName + ":",
		},
		Mongo: cache.MongoOptions{
			URI:        c.Cache.Mongo.URI,
			Database:   c.Cache.Mongo.Database,
			Collection: c.Cache.Mongo.Collection,
		},
	}
}

// EnvName returns the environment variable that sets key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func envKeyMap() map[string]string {
	m := make(map[string]string, len(Keys))
	for _, k := range Keys {
		m[EnvName(k)] = k
	}
	return m
}

// DefaultCacheDir returns the cache directory using the XDG standard
// (~/.cache/csrgraph/). It falls back to the system temp dir when no home
// directory is known.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, ".cache", AppName)
}

// mapProvider serves a flat map of dotted keys as a koanf provider.
type mapProvider map[string]any

func (p mapProvider) Read() (map[string]any, error) {
	out := make(map[string]any)
	for key, v := range p {
		parts := strings.Split(key, ".")
		m := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := m[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				m[part] = next
			}
			m = next
		}
		m[parts[len(parts)-1]] = v
	}
	return out, nil
}

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
