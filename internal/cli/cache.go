package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csrgraph/pkg/cache"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the build cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached graphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cc, err := c.openCache(ctx, false)
			if err != nil {
				return err
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				return gerrors.New(gerrors.ErrCodeUnsupported, "cache backend %q cannot be cleared", c.Config.Cache.Backend)
			}
			if err := clearer.Clear(ctx); err != nil {
				return err
			}

			printSuccess("Cleared cache")
			printDetail("Backend: %s", c.Config.Cache.Backend)
			if c.Config.Cache.Backend == cache.BackendFile {
				printDetail("Directory: %s", c.Config.Cache.Dir)
			}
			return nil
		},
	}
	addCacheFlags(cmd)
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), c.Config.Cache.Dir)
			return err
		},
	}
	cmd.Flags().String("cache-dir", "", "file cache directory")
	return cmd
}
