package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	csrio "github.com/matzehuels/csrgraph/pkg/io"
	"github.com/matzehuels/csrgraph/pkg/render"
)

// Render output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// renderOpts holds render command options.
type renderOpts struct {
	format      string
	output      string
	undirected  bool
	weighted    bool
	maxVertices int
	scale       float64
}

// renderCommand creates the render command for drawing small graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <adjacency-file>",
		Short: "Render a small graph as a node-link diagram",
		Long: `Render draws an adjacency file with Graphviz.

DOT and SVG output need no external tools. PDF and PNG are converted from
SVG with rsvg-convert (librsvg).`,
		Example: `  csrgraph render small.adj
  csrgraph render small.adj --format dot --undirected -o small.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: dot, svg, pdf, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().BoolVar(&opts.undirected, "undirected", false, "draw symmetric edge pairs once")
	cmd.Flags().BoolVar(&opts.weighted, "weighted", false, "read a WeightedAdjacencyGraph file and label edges")
	cmd.Flags().IntVar(&opts.maxVertices, "max-vertices", render.DefaultMaxVertices, "refuse graphs larger than this")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2.0, "PNG scale factor")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	switch opts.format {
	case formatDOT, formatSVG, formatPDF, formatPNG:
	default:
		return gerrors.New(gerrors.ErrCodeInvalidInput, "invalid format %q: must be dot, svg, pdf or png", opts.format)
	}
	output := outputPath(input, opts.output, "."+opts.format)
	if err := gerrors.ValidateFilePath(output); err != nil {
		return err
	}

	dot, err := c.loadDOT(input, opts)
	if err != nil {
		return err
	}

	data, err := encodeDOT(ctx, dot, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return gerrors.Wrap(gerrors.ErrCodeIO, err, "write %s", output)
	}

	printSuccess("Rendered %s", opts.format)
	printFile(output)
	return nil
}

func (c *CLI) loadDOT(input string, opts renderOpts) (string, error) {
	ropts := render.Options{Undirected: opts.undirected, MaxVertices: opts.maxVertices}
	if opts.weighted {
		g, err := csrio.ImportWeightedAdjacency(input)
		if err != nil {
			return "", err
		}
		defer g.Release()
		c.Logger.Debug("loaded weighted graph", "vertices", g.N(), "edges", g.M())
		return render.ToWeightedDOT(g, ropts)
	}
	g, err := loadGraph(input)
	if err != nil {
		return "", err
	}
	defer g.Release()
	c.Logger.Debug("loaded graph", "vertices", g.N(), "edges", g.M())
	return render.ToDOT(g, ropts)
}

// encodeDOT turns DOT source into the requested output format.
func encodeDOT(ctx context.Context, dot string, opts renderOpts) ([]byte, error) {
	if opts.format == formatDOT {
		return []byte(dot), nil
	}
	svg, err := render.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch opts.format {
	case formatPDF:
		return render.ToPDF(ctx, svg)
	case formatPNG:
		return render.ToPNG(ctx, svg, opts.scale)
	default:
		return svg, nil
	}
}
