package csr

import (
	"github.com/matzehuels/csrgraph/pkg/edges"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/parallel"
)

// Vertex is the out-neighborhood of one vertex. Neighbors is a view into the
// graph's storage and must not be modified.
type Vertex struct {
	Neighbors []int
}

// Degree returns the number of outgoing neighbors.
func (v Vertex) Degree() int { return len(v.Neighbors) }

// Graph is an unweighted CSR adjacency graph.
//
// A Graph is immutable once built and safe for concurrent readers. The zero
// value is an empty graph with [StorageNone].
type Graph struct {
	n, m     int
	vertices []Vertex
	storage  Storage
	block    []int
}

// New builds a per-vertex graph from adjacency lists, taking ownership of
// every inner slice. adj[i] holds the out-neighbors of vertex i, and every id
// must lie in [0, len(adj)).
func New(adj [][]int) (*Graph, error) {
	n := len(adj)
	vs := make([]Vertex, n)
	m := 0
	for i, nbrs := range adj {
		vs[i] = Vertex{Neighbors: nbrs}
		m += len(nbrs)
	}
	g := &Graph{n: n, m: m, vertices: vs, storage: StoragePerVertex}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// FromBlock wraps an in-place block, validating its layout first. The graph
// takes ownership of block and its vertices become views into it.
// Errors wrap [ErrInvalidBlock] and carry the INVALID_FORMAT code.
func FromBlock(block []int) (*Graph, error) {
	n, m, err := checkBlock(block, false)
	if err != nil {
		return nil, err
	}
	return wrapBlock(block, n, m), nil
}

// wrapBlock builds vertex views over a block already known to be valid.
func wrapBlock(block []int, n, m int) *Graph {
	off := block[HeaderLen : HeaderLen+n]
	nbrs := block[HeaderLen+n : HeaderLen+n+m]
	vs := make([]Vertex, n)
	spans(off, m, func(i, lo, hi int) {
		vs[i].Neighbors = nbrs[lo:hi:hi]
	})
	return &Graph{n: n, m: m, vertices: vs, storage: StorageBlock, block: block}
}

// N returns the number of vertices.
func (g *Graph) N() int { return g.n }

// M returns the number of edges.
func (g *Graph) M() int { return g.m }

// Storage returns the active storage mode.
func (g *Graph) Storage() Storage { return g.storage }

// Vertex returns vertex i. It panics if i is outside [0, N()).
func (g *Graph) Vertex(i int) Vertex { return g.vertices[i] }

// Vertices returns all vertices. The slice is shared and must not be modified.
func (g *Graph) Vertices() []Vertex { return g.vertices }

// Degree returns the out-degree of vertex i.
func (g *Graph) Degree(i int) int { return len(g.vertices[i].Neighbors) }

// Block returns the graph laid out as an in-place block. Block-mode graphs
// return their own storage; per-vertex graphs are assembled into a new block.
// The result must not be modified.
func (g *Graph) Block() []int {
	if g.storage == StorageBlock {
		return g.block
	}
	return assemble(g.n, g.neighbors, nil)
}

// Offsets returns the exclusive prefix sum of vertex degrees.
func (g *Graph) Offsets() []int {
	return g.Block()[HeaderLen : HeaderLen+g.n]
}

func (g *Graph) neighbors(i int) []int { return g.vertices[i].Neighbors }

// Copy returns a deep copy in the same storage mode.
func (g *Graph) Copy() *Graph {
	switch g.storage {
	case StorageBlock:
		return wrapBlock(parallel.Copy(g.block), g.n, g.m)
	case StoragePerVertex:
		vs := make([]Vertex, g.n)
		parallel.For(g.n, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				vs[i].Neighbors = append([]int(nil), g.vertices[i].Neighbors...)
			}
		})
		return &Graph{n: g.n, m: g.m, vertices: vs, storage: StoragePerVertex}
	default:
		return &Graph{}
	}
}

// Compact returns a copy backed by a single fresh in-place block, whatever
// the storage mode of g.
func (g *Graph) Compact() *Graph {
	if g.storage == StorageNone {
		return &Graph{}
	}
	return wrapBlock(assemble(g.n, g.neighbors, nil), g.n, g.m)
}

// Release drops the buffers owned by the active storage mode. The graph is
// empty afterwards and further calls are no-ops. Views obtained earlier stay
// readable but no longer belong to the graph.
func (g *Graph) Release() {
	switch g.storage {
	case StorageBlock:
		g.block = nil
	case StoragePerVertex:
		for i := range g.vertices {
			g.vertices[i].Neighbors = nil
		}
	case StorageNone:
		return
	}
	g.vertices = nil
	g.n, g.m = 0, 0
	g.storage = StorageNone
}

// Validate checks the graph invariants: degrees sum to M and every neighbor
// id lies in [0, N()).
func (g *Graph) Validate() error {
	deg := make([]int, g.n)
	if err := parallel.ForErr(g.n, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			nbrs := g.vertices[i].Neighbors
			deg[i] = len(nbrs)
			for _, v := range nbrs {
				if v < 0 || v >= g.n {
					return gerrors.New(gerrors.ErrCodeOutOfRange, "vertex %d: neighbor %d outside [0, %d)", i, v, g.n)
				}
			}
		}
		return nil
	}); err != nil {
		return err
	}
	if sum := parallel.Scan(deg); sum != g.m {
		return gerrors.New(gerrors.ErrCodeInternal, "degrees sum to %d, want %d edges", sum, g.m)
	}
	return nil
}

// Edges flattens the graph back into an edge list ordered by source vertex,
// with both dimensions set to N().
func (g *Graph) Edges() edges.EdgeList {
	off := make([]int, g.n)
	parallel.For(g.n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			off[i] = len(g.vertices[i].Neighbors)
		}
	})
	m := parallel.Scan(off)
	es := make([]edges.Edge, m)
	parallel.For(g.n, func(lo, hi int) {
		for u := lo; u < hi; u++ {
			for j, v := range g.vertices[u].Neighbors {
				es[off[u]+j] = edges.Edge{U: u, V: v}
			}
		}
	})
	return edges.New(es, g.n, g.n)
}
