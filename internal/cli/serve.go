package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/csrgraph/pkg/config"
	"github.com/matzehuels/csrgraph/pkg/server"
)

// serveCommand creates the serve command that exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the build pipeline over HTTP",
		Long: `Serve starts an HTTP server with the following endpoints:

  GET  /healthz     liveness probe
  POST /v1/build    edge list in, adjacency file out
  POST /v1/stat     adjacency file in, JSON statistics out
  POST /v1/render   adjacency file in, DOT or SVG out

Shared caches (--cache redis or --cache mongo) let several instances reuse
each other's results.`,
		Example: `  csrgraph serve
  csrgraph serve --addr :9000 --cache redis`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			addr := c.Config.Serve.Addr
			printInfo("Listening on %s", StyleHighlight.Render("http://"+addr))
			printDetail("Cache: %s", c.Config.Cache.Backend)
			return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().String("addr", config.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addCacheFlags(cmd)

	return cmd
}
