package csr

import (
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/parallel"
)

// WeightedVertex is a vertex whose neighbors carry weights.
// Weights[i] belongs to Neighbors[i]; both are views into graph storage.
type WeightedVertex struct {
	Neighbors []int
	Weights   []int
}

// Degree returns the number of outgoing neighbors.
func (v WeightedVertex) Degree() int { return len(v.Neighbors) }

// WeightedGraph is a CSR graph with one integer weight per edge. Its block
// holds the m weights after the neighbor run.
type WeightedGraph struct {
	n, m     int
	vertices []WeightedVertex
	storage  Storage
	block    []int
}

// NewWeighted builds a per-vertex weighted graph, taking ownership of every
// inner slice. adj[i] and weights[i] must have equal length.
func NewWeighted(adj, weights [][]int) (*WeightedGraph, error) {
	if len(adj) != len(weights) {
		return nil, gerrors.New(gerrors.ErrCodeInvalidInput,
			"%d adjacency lists but %d weight lists", len(adj), len(weights))
	}
	n := len(adj)
	vs := make([]WeightedVertex, n)
	m := 0
	for i := range adj {
		vs[i] = WeightedVertex{Neighbors: adj[i], Weights: weights[i]}
		m += len(adj[i])
	}
	g := &WeightedGraph{n: n, m: m, vertices: vs, storage: StoragePerVertex}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// WeightedFromBlock wraps a weighted in-place block after validating it.
// The graph takes ownership of block.
func WeightedFromBlock(block []int) (*WeightedGraph, error) {
	n, m, err := checkBlock(block, true)
	if err != nil {
		return nil, err
	}
	return wrapWeightedBlock(block, n, m), nil
}

func wrapWeightedBlock(block []int, n, m int) *WeightedGraph {
	off := block[HeaderLen : HeaderLen+n]
	nbrs := block[HeaderLen+n : HeaderLen+n+m]
	wts := block[HeaderLen+n+m : HeaderLen+n+2*m]
	vs := make([]WeightedVertex, n)
	spans(off, m, func(i, lo, hi int) {
		vs[i] = WeightedVertex{Neighbors: nbrs[lo:hi:hi], Weights: wts[lo:hi:hi]}
	})
	return &WeightedGraph{n: n, m: m, vertices: vs, storage: StorageBlock, block: block}
}

// N returns the number of vertices.
func (g *WeightedGraph) N() int { return g.n }

// M returns the number of edges.
func (g *WeightedGraph) M() int { return g.m }

// Storage returns the active storage mode.
func (g *WeightedGraph) Storage() Storage { return g.storage }

// Vertex returns vertex i.
func (g *WeightedGraph) Vertex(i int) WeightedVertex { return g.vertices[i] }

// Vertices returns all vertices. The slice is shared and must not be modified.
func (g *WeightedGraph) Vertices() []WeightedVertex { return g.vertices }

// Degree returns the out-degree of vertex i.
func (g *WeightedGraph) Degree(i int) int { return len(g.vertices[i].Neighbors) }

// Block returns the graph laid out as a weighted in-place block.
func (g *WeightedGraph) Block() []int {
	if g.storage == StorageBlock {
		return g.block
	}
	return assemble(g.n, g.neighbors, g.weights)
}

// Offsets returns the exclusive prefix sum of vertex degrees.
func (g *WeightedGraph) Offsets() []int {
	return g.Block()[HeaderLen : HeaderLen+g.n]
}

func (g *WeightedGraph) neighbors(i int) []int { return g.vertices[i].Neighbors }
func (g *WeightedGraph) weights(i int) []int   { return g.vertices[i].Weights }

// Topology returns the unweighted graph sharing g's neighbor storage.
// A block-mode result is a prefix view of g's block; releasing either graph
// leaves the other intact.
func (g *WeightedGraph) Topology() *Graph {
	switch g.storage {
	case StorageBlock:
		return wrapBlock(g.block[:BlockLen(g.n, g.m, false)], g.n, g.m)
	case StoragePerVertex:
		vs := make([]Vertex, g.n)
		for i, v := range g.vertices {
			vs[i].Neighbors = v.Neighbors
		}
		return &Graph{n: g.n, m: g.m, vertices: vs, storage: StoragePerVertex}
	default:
		return &Graph{}
	}
}

// Copy returns a deep copy in the same storage mode.
func (g *WeightedGraph) Copy() *WeightedGraph {
	switch g.storage {
	case StorageBlock:
		return wrapWeightedBlock(parallel.Copy(g.block), g.n, g.m)
	case StoragePerVertex:
		vs := make([]WeightedVertex, g.n)
		parallel.For(g.n, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				vs[i] = WeightedVertex{
					Neighbors: append([]int(nil), g.vertices[i].Neighbors...),
					Weights:   append([]int(nil), g.vertices[i].Weights...),
				}
			}
		})
		return &WeightedGraph{n: g.n, m: g.m, vertices: vs, storage: StoragePerVertex}
	default:
		return &WeightedGraph{}
	}
}

// Compact returns a copy backed by a single fresh weighted block.
func (g *WeightedGraph) Compact() *WeightedGraph {
	if g.storage == StorageNone {
		return &WeightedGraph{}
	}
	return wrapWeightedBlock(assemble(g.n, g.neighbors, g.weights), g.n, g.m)
}

// Release drops the buffers owned by the active storage mode. Further calls
// are no-ops.
func (g *WeightedGraph) Release() {
	switch g.storage {
	case StorageBlock:
		g.block = nil
	case StoragePerVertex:
		for i := range g.vertices {
			g.vertices[i] = WeightedVertex{}
		}
	case StorageNone:
		return
	}
	g.vertices = nil
	g.n, g.m = 0, 0
	g.storage = StorageNone
}

// Validate checks the graph invariants: degrees sum to M, every neighbor id
// lies in [0, N()) and every vertex has as many weights as neighbors.
func (g *WeightedGraph) Validate() error {
	deg := make([]int, g.n)
	if err := parallel.ForErr(g.n, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			v := g.vertices[i]
			if len(v.Weights) != len(v.Neighbors) {
				return gerrors.New(gerrors.ErrCodeInvalidInput,
					"vertex %d has %d neighbors but %d weights", i, len(v.Neighbors), len(v.Weights))
			}
			deg[i] = len(v.Neighbors)
			for _, u := range v.Neighbors {
				if u < 0 || u >= g.n {
					return gerrors.New(gerrors.ErrCodeOutOfRange, "vertex %d: neighbor %d outside [0, %d)", i, u, g.n)
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
