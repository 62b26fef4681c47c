package csr

import (
	"github.com/matzehuels/csrgraph/pkg/edges"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/parallel"
)

// FromEdges builds a block-mode graph from an edge list that is already
// deduplicated, and symmetrized when undirected semantics are wanted.
//
// The vertex count is max(l.Rows, l.Cols), so declared dimensions larger than
// the observed ids produce trailing isolated vertices. Every endpoint must lie
// in [0, n); otherwise FromEdges fails with OUT_OF_RANGE and leaves l intact.
// On success the edge buffer of l is released.
//
// Edges are bucketed by source with a stable sort, so each neighbor list
// keeps the relative order of the input.
func FromEdges(l *edges.EdgeList) (*Graph, error) {
	n := max(l.Rows, l.Cols, 0)
	es := l.Edges
	m := len(es)

	if err := parallel.ForErr(m, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			if e := es[i]; e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
				return gerrors.New(gerrors.ErrCodeOutOfRange,
					"edge %d (%d, %d) outside declared bounds [0, %d)", i, e.U, e.V, n)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	sorted, offsets := parallel.BucketSort(es, n, func(e edges.Edge) int { return e.U })
	l.Release()

	block := make([]int, BlockLen(n, m, false))
	block[0], block[1] = n, m
	parallel.For(n, func(lo, hi int) {
		copy(block[HeaderLen+lo:HeaderLen+hi], offsets[lo:hi])
	})
	nbrs := block[HeaderLen+n:]
	parallel.For(m, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			nbrs[i] = sorted[i].V
		}
	})
	return wrapBlock(block, n, m), nil
}

// Transpose returns the reverse graph: u -> v in g becomes v -> u.
// In-neighbors are listed in increasing source order.
func Transpose(g *Graph) (*Graph, error) {
	l := g.Edges()
	parallel.For(len(l.Edges), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			l.Edges[i] = l.Edges[i].Reverse()
		}
	})
	return FromEdges(&l)
}
