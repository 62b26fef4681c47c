package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/csrgraph/pkg/cache"
	"github.com/matzehuels/csrgraph/pkg/csr"
	"github.com/matzehuels/csrgraph/pkg/edges"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	csrio "github.com/matzehuels/csrgraph/pkg/io"
	"github.com/matzehuels/csrgraph/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of stored graphs. Zero selects cache.DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute reads opts.Input, builds the graph (or decodes it from the cache)
// and writes it to opts.Output when set.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	data, err := readInput(opts.Input)
	if err != nil {
		return nil, err
	}
	result, err := r.Process(ctx, data, opts)
	if err != nil {
		if code := gerrors.GetCode(err); code != "" {
			err = gerrors.Wrap(code, err, "%s", opts.Input)
		}
		return nil, err
	}

	if opts.Output != "" {
		start := time.Now()
		if err := csrio.ExportBytes(result.Adjacency, opts.Output); err != nil {
			return nil, err
		}
		r.Logger.Info("wrote adjacency file",
			"path", opts.Output,
			"bytes", len(result.Adjacency),
			"duration", time.Since(start))
	}
	return result, nil
}

// Process builds a graph from in-memory input bytes. Input and Output in
// opts are ignored. The cache is keyed by the input hash, format and
// symmetric flag, and holds the adjacency text of the result.
func (r *Runner) Process(ctx context.Context, data []byte, opts Options) (*Result, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.New(),
		InputHash: cache.Hash(data),
	}
	logger := r.Logger.With("run", result.RunID.String()[:8])
	cacheKey := r.Keyer.GraphKey(result.InputHash, cache.GraphKeyOpts{
		Format:    opts.Format,
		Symmetric: opts.Symmetric,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			g, d, err := r.decode(ctx, cached)
			if err == nil {
				result.Graph = g
				result.Adjacency = cached
				result.CacheHit = true
				result.Stats.Vertices, result.Stats.Edges = g.N(), g.M()
				logger.Info("loaded graph from cache",
					"vertices", g.N(),
					"edges", g.M(),
					"duration", d)
				return result, nil
			}
			// If decoding fails, fall through to rebuild
			logger.Warn("discarding unreadable cache entry", "err", err)
		} else if err != nil {
			logger.Debug("cache lookup failed", "err", err)
		}
	}

	var l edges.EdgeList
	d, err := stage(ctx, observability.StageParse, len(data), func() (err error) {
		l, err = Parse(data, opts.Format)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info("parsed edges",
		"edges", l.NonZeros(),
		"format", opts.Format,
		"duration", d)

	g, stats, err := r.build(ctx, logger, l, opts.Symmetric)
	if err != nil {
		return nil, err
	}
	stats.ParseTime = d
	result.Graph = g
	result.Stats = stats

	var buf bytes.Buffer
	result.Stats.SerializeTime, err = stage(ctx, observability.StageSerialize, g.M(), func() error {
		return csrio.WriteAdjacency(g, &buf, opts.writeOptions()...)
	})
	if err != nil {
		return nil, err
	}
	result.Adjacency = buf.Bytes()

	if err := r.Cache.Set(ctx, cacheKey, result.Adjacency, r.CacheTTL()); err != nil {
		logger.Warn("failed to cache graph", "err", err)
	}
	return result, nil
}

// Build runs dedup, the optional symmetrize pass and CSR construction over
// l. Each stage is timed and reported through the pipeline hooks.
func (r *Runner) Build(ctx context.Context, l edges.EdgeList, symmetric bool) (*csr.Graph, Stats, error) {
	return r.build(ctx, r.Logger, l, symmetric)
}

func (r *Runner) build(ctx context.Context, logger *log.Logger, l edges.EdgeList, symmetric bool) (*csr.Graph, Stats, error) {
	stats := Stats{InputEdges: l.NonZeros()}

	var err error
	stats.DedupTime, err = stage(ctx, observability.StageDedup, l.NonZeros(), func() error {
		deduped := edges.RemoveDuplicates(l)
		l.Release()
		l = deduped
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	logger.Debug("removed duplicates",
		"edges", l.NonZeros(),
		"removed", stats.InputEdges-l.NonZeros(),
		"duration", stats.DedupTime)

	if symmetric {
		stats.SymmetrizeTime, err = stage(ctx, observability.StageSymmetrize, l.NonZeros(), func() error {
			sym := edges.Symmetrize(l)
			l.Release()
			l = sym
			return nil
		})
		if err != nil {
			return nil, stats, err
		}
		logger.Debug("symmetrized",
			"edges", l.NonZeros(),
			"duration", stats.SymmetrizeTime)
	}

	var g *csr.Graph
	stats.BuildTime, err = stage(ctx, observability.StageBuild, l.NonZeros(), func() (err error) {
		g, err = csr.FromEdges(&l)
		return err
	})
	if err != nil {
		return nil, stats, err
	}
	stats.Vertices, stats.Edges = g.N(), g.M()
	logger.Info("built graph",
		"vertices", g.N(),
		"edges", g.M(),
		"duration", stats.BuildTime)
	return g, stats, nil
}

// CacheTTL returns the lifetime applied to cache entries.
func (r *Runner) CacheTTL() time.Duration {
	if r.TTL <= 0 {
		return cache.DefaultTTL
	}
	return r.TTL
}

// decode reads cached adjacency text.
func (r *Runner) decode(ctx context.Context, data []byte) (*csr.Graph, time.Duration, error) {
	var g *csr.Graph
	d, err := stage(ctx, observability.StageDeserialize, len(data), func() (err error) {
		g, err = csrio.ReadAdjacency(bytes.NewReader(data))
		return err
	})
	return g, d, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// stage runs fn between the start and complete hooks. It returns the
// context error without running fn once ctx is done.
func stage(ctx context.Context, name string, size int, fn func() error) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, name, size)
	start := time.Now()
	err := fn()
	d := time.Since(start)
	hooks.OnStageComplete(ctx, name, size, d, err)
	return d, err
}
