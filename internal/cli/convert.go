package cli

import (
	"github.com/spf13/cobra"

	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	csrio "github.com/matzehuels/csrgraph/pkg/io"
)

// Edge list formats accepted by convert --to.
const (
	convertSNAP  = "snap"
	convertEdges = "edges"
)

// convertCommand creates the convert command that writes an adjacency file
// back out as an edge list.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		to     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert <adjacency-file>",
		Short: "Convert an adjacency file to a SNAP or EdgeArray edge list",
		Example: `  csrgraph convert web-Google.adj
  csrgraph convert roads.adj --to edges -o roads.edges`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ext string
			switch to {
			case convertSNAP:
				ext = ".txt"
			case convertEdges:
				ext = ".edges"
			default:
				return gerrors.New(gerrors.ErrCodeInvalidInput, "invalid --to %q: must be snap or edges", to)
			}
			input := args[0]
			output = outputPath(input, output, ext)
			if err := gerrors.ValidateFilePath(output); err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			g, err := loadGraph(input)
			if err != nil {
				return err
			}
			l := g.Edges()
			g.Release()

			opts := []csrio.WriteOption{csrio.WithChunkSize(c.Config.ChunkSize)}
			if to == convertSNAP {
				err = csrio.ExportSNAP(l, output, opts...)
			} else {
				err = csrio.ExportEdges(l, output, opts...)
			}
			if err != nil {
				return err
			}
			prog.done("converted edges", "edges", l.NonZeros(), "to", to)

			printSuccess("Wrote %s edge list", to)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", convertSNAP, "output format: snap, edges")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.txt or <input>.edges)")
	cmd.Flags().Int("chunk-size", 0, "values stringified per write pass (0: default)")

	return cmd
}
