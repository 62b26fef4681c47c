package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/csrgraph/pkg/csr"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
)

// DefaultMaxVertices is the largest graph [ToDOT] accepts by default.
const DefaultMaxVertices = 500

// Options configures node-link diagram generation.
type Options struct {
	// Undirected prints each symmetric pair once with "--" edges.
	Undirected bool

	// MaxVertices caps the vertex count. Zero selects DefaultMaxVertices.
	MaxVertices int
}

func (o Options) limit() int {
	if o.MaxVertices <= 0 {
		return DefaultMaxVertices
	}
	return o.MaxVertices
}

// ToDOT converts a graph to Graphviz DOT format. Vertices are named by
// their ids; isolated vertices are kept.
func ToDOT(g *csr.Graph, opts Options) (string, error) {
	return toDOT(g.N(), opts, func(i int) ([]int, []int) {
		return g.Vertex(i).Neighbors, nil
	})
}

// ToWeightedDOT is [ToDOT] for weighted graphs; edges are labelled with
// their weights.
func ToWeightedDOT(g *csr.WeightedGraph, opts Options) (string, error) {
	return toDOT(g.N(), opts, func(i int) ([]int, []int) {
		v := g.Vertex(i)
		return v.Neighbors, v.Weights
	})
}

func toDOT(n int, opts Options, vertex func(i int) (nbrs, weights []int)) (string, error) {
	if limit := opts.limit(); n > limit {
		return "", gerrors.New(gerrors.ErrCodeInvalidInput,
			"graph has %d vertices, node-link rendering supports at most %d", n, limit)
	}

	kind, arrow := "digraph", "->"
	if opts.Undirected {
		kind, arrow = "graph", "--"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for i := range n {
		fmt.Fprintf(&buf, "  %d;\n", i)
	}

	buf.WriteString("\n")
	for u := range n {
		nbrs, weights := vertex(u)
		for k, v := range nbrs {
			if opts.Undirected && v < u {
				continue
			}
			if weights != nil {
				fmt.Fprintf(&buf, "  %d %s %d [label=\"%d\"];\n", u, arrow, v, weights[k])
			} else {
				fmt.Fprintf(&buf, "  %d %s %d;\n", u, arrow, v)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag with one whose viewBox starts
// at the origin and whose size matches the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
