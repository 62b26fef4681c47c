// Package render draws CSR graphs as node-link diagrams.
//
// # Overview
//
// [ToDOT] converts a graph to Graphviz DOT source, and [RenderSVG] lays it
// out in-process with go-graphviz. [ToPDF] and [ToPNG] convert the SVG with
// the external rsvg-convert tool.
//
//	dot, err := render.ToDOT(g, render.Options{Undirected: true})
//	svg, err := render.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// # Size Limit
//
// Node-link layouts stop being readable long before CSR graphs stop being
// interesting, so ToDOT refuses graphs with more than
// [Options.MaxVertices] vertices (default [DefaultMaxVertices]).
//
// # Undirected Graphs
//
// A symmetrized graph stores every edge in both directions. With
// Options.Undirected set, ToDOT emits a "graph" with "--" edges and prints
// each pair {u, v} once, from its smaller endpoint.
package render
