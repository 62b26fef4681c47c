// Package cli implements the csrgraph command-line interface.
//
// This package provides commands for building CSR adjacency files from edge
// lists, inspecting and converting them, rendering small graphs and serving
// the pipeline over HTTP. The CLI is built using cobra, reads layered
// configuration through pkg/config and logs via charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - build: Convert a SNAP or EdgeArray edge list into an adjacency file
//   - stat: Print degree statistics of an adjacency file
//   - convert: Write an adjacency file back out as an edge list
//   - render: Draw a small graph as DOT, SVG, PDF or PNG
//   - inspect: Browse vertices interactively
//   - serve: Run the HTTP service
//   - cache: Manage the build cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/csrgraph/pkg/buildinfo"
	"github.com/matzehuels/csrgraph/pkg/cache"
	"github.com/matzehuels/csrgraph/pkg/config"
	"github.com/matzehuels/csrgraph/pkg/parallel"
	"github.com/matzehuels/csrgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before every command runs.
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "csrgraph builds compressed sparse row graphs from edge lists",
		Long: `csrgraph converts edge lists into compressed sparse row (CSR) adjacency files
and back, computes degree statistics and serves the conversion over HTTP.

Configuration is read from csrgraph.toml, CSRGRAPH_* environment variables
and flags, in increasing order of priority.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.configPath, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	pf.Int("workers", 0, "worker goroutines (0: GOMAXPROCS)")
	pf.Int("grain", 0, "minimum elements per parallel block (0: default)")

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.statCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup sets the log level, loads configuration for the executing command
// and applies the parallelism settings.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}
	cfg, err := config.Load(c.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	c.Config = cfg
	parallel.SetWorkers(cfg.Workers)
	parallel.SetGrain(cfg.Grain)
	c.Logger.Debug("loaded config",
		"workers", parallel.Workers(),
		"grain", parallel.Grain(),
		"cache", cfg.Cache.Backend)
	return nil
}

// addCacheFlags registers the flags that select a cache backend.
func addCacheFlags(cmd *cobra.Command) {
	cmd.Flags().String("cache", cache.BackendFile, "cache backend: file, null, redis, mongo")
	cmd.Flags().String("cache-dir", "", "file cache directory (default: ~/.cache/"+appName+")")
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	runner.TTL = c.Config.Cache.TTL
	return runner, nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	opts := c.Config.CacheOptions()
	if noCache {
		opts.Backend = cache.BackendNull
	}
	return cache.Open(ctx, opts)
}

// =============================================================================
// Paths
// =============================================================================

// outputPath returns explicit if set, otherwise input with its extension
// replaced by ext.
func outputPath(input, explicit, ext string) string {
	if explicit != "" {
		return explicit
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}
