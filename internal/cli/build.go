package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csrgraph/pkg/pipeline"
	"github.com/matzehuels/csrgraph/pkg/watch"
)

// buildOpts holds the flags of the build command that are not part of the
// layered configuration.
type buildOpts struct {
	output  string
	format  string
	noCache bool
	refresh bool
	watch   bool
}

// buildCommand creates the build command for converting edge lists into
// adjacency files.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <input>",
		Short: "Build a CSR adjacency file from an edge list",
		Long: `Build reads a SNAP edge list (or an EdgeArray file with --format edges),
removes duplicate edges, optionally symmetrizes the graph and writes it in
AdjacencyGraph format.

Results are cached by the hash of the input, so rebuilding an unchanged file
is a cache lookup. Use --refresh to force a rebuild or --no-cache to bypass
the cache entirely.`,
		Example: `  csrgraph build web-Google.txt
  csrgraph build roads.txt --symmetric -o roads.adj
  csrgraph build edges.txt --format edges --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.adj)")
	cmd.Flags().StringVar(&opts.format, "format", pipeline.DefaultFormat, "input format: snap, edges")
	cmd.Flags().Bool("symmetric", false, "symmetrize the graph and drop self-loops")
	cmd.Flags().Int("chunk-size", 0, "values stringified per write pass (0: default)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even when a cached result exists")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "rebuild whenever the input changes")
	addCacheFlags(cmd)

	return cmd
}

// runBuild executes one build, or keeps rebuilding until ctx is cancelled
// when watching.
func (c *CLI) runBuild(ctx context.Context, input string, opts buildOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Input:     input,
		Output:    outputPath(input, opts.output, ".adj"),
		Format:    opts.format,
		Symmetric: c.Config.Symmetric,
		ChunkSize: c.Config.ChunkSize,
		Refresh:   opts.refresh,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	if err := c.buildOnce(ctx, runner, popts); err != nil || !opts.watch {
		return err
	}

	printNewline()
	printInfo("Watching %s (Ctrl+C to stop)", input)
	return watch.Watch(ctx, input, watch.DefaultDebounce, func(ctx context.Context) {
		if err := c.buildOnce(ctx, runner, popts); err != nil && ctx.Err() == nil {
			printWarning("Rebuild failed: %v", err)
		}
	})
}

func (c *CLI) buildOnce(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) error {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building %s...", opts.Input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
		} else {
			spinner.StopWithError("Build failed")
		}
		return err
	}
	spinner.StopWithSuccess("Built adjacency graph")

	printFile(opts.Output)
	printStats(result.Stats.Vertices, result.Stats.Edges, result.CacheHit)
	c.Logger.Debug("build timings",
		"parse", result.Stats.ParseTime,
		"dedup", result.Stats.DedupTime,
		"symmetrize", result.Stats.SymmetrizeTime,
		"build", result.Stats.BuildTime,
		"serialize", result.Stats.SerializeTime)

	printNewline()
	printNextStep("Inspect", fmt.Sprintf("%s stat %s", appName, opts.Output))
	return nil
}
