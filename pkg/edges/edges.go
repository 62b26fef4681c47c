// Package edges holds the edge-list representation consumed by the CSR builder
// and the two canonicalizing passes that run before it: duplicate removal and
// symmetrization.
//
// An [EdgeList] owns its edge buffer until it is handed to the next stage.
// [RemoveDuplicates] and [Symmetrize] never modify their input; they return a
// freshly allocated list and leave releasing the input to the caller.
package edges

import (
	"cmp"

	"github.com/matzehuels/csrgraph/pkg/parallel"
)

// Edge is an ordered (source, target) pair of vertex ids.
type Edge struct {
	U int // Source vertex id
	V int // Target vertex id
}

// Reverse returns the edge with its endpoints swapped.
func (e Edge) Reverse() Edge { return Edge{U: e.V, V: e.U} }

// IsLoop reports whether the edge starts and ends at the same vertex.
func (e Edge) IsLoop() bool { return e.U == e.V }

// Compare orders edges lexicographically by source, then target.
func Compare(a, b Edge) int {
	if c := cmp.Compare(a.U, b.U); c != 0 {
		return c
	}
	return cmp.Compare(a.V, b.V)
}

// EdgeList is a flat sequence of edges with declared dimensions.
//
// Rows and Cols are upper bounds on source and target ids respectively. They
// may exceed the largest id actually present (for example when the input
// describes a rectangular matrix).
type EdgeList struct {
	Edges []Edge
	Rows  int
	Cols  int
}

// New returns an EdgeList over edges with the given declared dimensions.
// The list takes ownership of edges.
func New(edges []Edge, rows, cols int) EdgeList {
	return EdgeList{Edges: edges, Rows: rows, Cols: cols}
}

// NonZeros returns the number of edges in the list.
func (l EdgeList) NonZeros() int { return len(l.Edges) }

// Release drops the edge buffer. The list is empty afterwards.
func (l *EdgeList) Release() { l.Edges = nil }

// MaxID returns the largest source and target ids present, or -1 for an
// empty list.
func (l EdgeList) MaxID() (maxU, maxV int) {
	maxU, maxV = -1, -1
	for _, e := range l.Edges {
		maxU = max(maxU, e.U)
		maxV = max(maxV, e.V)
	}
	return maxU, maxV
}

// RemoveDuplicates returns a list holding exactly one copy of every distinct
// edge in l, sorted by [Compare]. Declared dimensions are carried over.
//
// The edges are copied into scratch space, sorted, marked where they differ
// from their predecessor and compacted through a prefix sum over the marks.
func RemoveDuplicates(l EdgeList) EdgeList {
	m := len(l.Edges)
	if m == 0 {
		return EdgeList{Edges: []Edge{}, Rows: l.Rows, Cols: l.Cols}
	}

	scratch := parallel.Copy(l.Edges)
	parallel.SortFunc(scratch, Compare)

	first := make([]bool, m)
	parallel.For(m, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			first[i] = i == 0 || scratch[i] != scratch[i-1]
		}
	})

	return EdgeList{Edges: parallel.Pack(scratch, first), Rows: l.Rows, Cols: l.Cols}
}

// Symmetrize returns the undirected closure of l: self-loops are dropped, the
// reverse of every remaining edge is added and duplicates are removed.
//
// Survivors of the loop filter occupy [0, k) of a 2k buffer and their reverses
// occupy [k, 2k) before deduplication.
func Symmetrize(l EdgeList) EdgeList {
	kept := parallel.Filter(l.Edges, func(e Edge) bool { return !e.IsLoop() })
	k := len(kept)

	both := make([]Edge, 2*k)
	parallel.For(k, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			both[i] = kept[i]
			both[i+k] = kept[i].Reverse()
		}
	})

	return RemoveDuplicates(EdgeList{Edges: both, Rows: l.Rows, Cols: l.Cols})
}
