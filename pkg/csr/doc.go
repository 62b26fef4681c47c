// Package csr provides compressed sparse row adjacency graphs.
//
// # Layout
//
// A graph built by [FromEdges] or decoded by the adjacency reader lives in a
// single in-place block of ints:
//
//	[n, m, offset_0 ... offset_{n-1}, neighbor_0 ... neighbor_{m-1}]
//
// A [WeightedGraph] appends m weights aligned with the neighbor run. Vertex i
// owns neighbors[offset_i:offset_{i+1}], with offset_n implicitly equal to m.
// Every [Vertex] is a slice view into the block, so the block must outlive
// all views handed out by [Graph.Vertex] and [Graph.Vertices].
//
// # Storage Modes
//
// A graph is in exactly one [Storage] mode. [StorageBlock] graphs share one
// allocation; [StoragePerVertex] graphs, created by [New] for incremental
// construction, give each vertex its own buffer. [Graph.Compact] converts
// any graph into a fresh block, and [Graph.Release] drops whichever buffers
// the active mode owns.
//
// # Building
//
// [FromEdges] bucket-sorts a deduplicated edge list by source id and lays
// out the neighbor run and offset table with parallel scans. Vertex count is
// max(rows, cols) of the input list, and ids outside that range fail with an
// OUT_OF_RANGE error instead of being silently accepted.
//
//	l := edges.Symmetrize(edges.RemoveDuplicates(raw))
//	g, err := csr.FromEdges(&l)
//	if err != nil {
//	    return err
//	}
//	for _, u := range g.Vertex(0).Neighbors {
//	    // ...
//	}
package csr
