package csr

import (
	"errors"
	"slices"
	"testing"

	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
)

// scenario is 0 -> [1 2], 1 -> [], 2 -> [0].
var scenarioBlock = []int{3, 3, 0, 2, 2, 1, 2, 0}

func scenarioAdj() [][]int { return [][]int{{1, 2}, {}, {0}} }

func TestFromBlock(t *testing.T) {
	g, err := FromBlock(slices.Clone(scenarioBlock))
	if err != nil {
		t.Fatalf("FromBlock: %v", err)
	}
	if g.N() != 3 || g.M() != 3 {
		t.Fatalf("N, M = %d, %d, want 3, 3", g.N(), g.M())
	}
	if g.Storage() != StorageBlock {
		t.Errorf("Storage = %v, want block", g.Storage())
	}
	want := scenarioAdj()
	for i := range want {
		if !slices.Equal(g.Vertex(i).Neighbors, want[i]) {
			t.Errorf("vertex %d = %v, want %v", i, g.Vertex(i).Neighbors, want[i])
		}
		if g.Degree(i) != len(want[i]) {
			t.Errorf("Degree(%d) = %d, want %d", i, g.Degree(i), len(want[i]))
		}
	}
	if !slices.Equal(g.Offsets(), []int{0, 2, 2}) {
		t.Errorf("Offsets = %v, want [0 2 2]", g.Offsets())
	}
}

func TestFromBlockViewsCannotOverrun(t *testing.T) {
	g, err := FromBlock(slices.Clone(scenarioBlock))
	if err != nil {
		t.Fatal(err)
	}
	v := g.Vertex(0)
	_ = append(v.Neighbors, 99)
	if g.Vertex(2).Neighbors[0] != 0 {
		t.Error("append through a vertex view overwrote its successor")
	}
}

func TestFromBlockRejects(t *testing.T) {
	tests := []struct {
		name  string
		block []int
	}{
		{"nil", nil},
		{"header only n", []int{1}},
		{"negative n", []int{-1, 0}},
		{"negative m", []int{0, -1}},
		{"short", []int{2, 1, 0, 0}},
		{"long", []int{1, 0, 0, 0}},
		{"first offset", []int{2, 1, 1, 1, 0}},
		{"offset past m", []int{2, 1, 0, 2, 0}},
		{"decreasing offsets", []int{3, 2, 0, 2, 1, 0, 0}},
		{"neighbor out of range", []int{2, 1, 0, 1, 5}},
		{"negative neighbor", []int{2, 1, 0, 1, -1}},
		{"edges without vertices", []int{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromBlock(tt.block)
			if err == nil {
				t.Fatalf("FromBlock(%v) succeeded with %d vertices", tt.block, g.N())
			}
			if g != nil {
				t.Error("a rejected block must not produce a graph")
			}
			if !errors.Is(err, ErrInvalidBlock) {
				t.Errorf("error %v does not wrap ErrInvalidBlock", err)
			}
			if !gerrors.Is(err, gerrors.ErrCodeInvalidFormat) {
				t.Errorf("code = %s, want %s", gerrors.GetCode(err), gerrors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestNewPerVertex(t *testing.T) {
	g, err := New(scenarioAdj())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.Storage() != StoragePerVertex {
		t.Errorf("Storage = %v, want per-vertex", g.Storage())
	}
	if !slices.Equal(g.Block(), scenarioBlock) {
		t.Errorf("Block = %v, want %v", g.Block(), scenarioBlock)
	}

	c := g.Compact()
	if c.Storage() != StorageBlock {
		t.Errorf("Compact storage = %v, want block", c.Storage())
	}
	if !slices.Equal(c.Block(), scenarioBlock) {
		t.Errorf("Compact block = %v, want %v", c.Block(), scenarioBlock)
	}

	if _, err := New([][]int{{0, 3}}); !gerrors.Is(err, gerrors.ErrCodeOutOfRange) {
		t.Errorf("New with id 3 of 1 vertex: err = %v, want OUT_OF_RANGE", err)
	}
}

func TestNewEmpty(t *testing.T) {
	g, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.N() != 0 || g.M() != 0 {
		t.Errorf("N, M = %d, %d", g.N(), g.M())
	}
	if !slices.Equal(g.Block(), []int{0, 0}) {
		t.Errorf("Block = %v, want [0 0]", g.Block())
	}
}

func TestCopyPreservesMode(t *testing.T) {
	block, err := FromBlock(slices.Clone(scenarioBlock))
	if err != nil {
		t.Fatal(err)
	}
	perVertex, err := New(scenarioAdj())
	if err != nil {
		t.Fatal(err)
	}

	for _, g := range []*Graph{block, perVertex} {
		c := g.Copy()
		if c.Storage() != g.Storage() {
			t.Errorf("Copy of %v graph has storage %v", g.Storage(), c.Storage())
		}
		if !slices.Equal(c.Block(), g.Block()) {
			t.Errorf("Copy of %v graph = %v, want %v", g.Storage(), c.Block(), g.Block())
		}
		c.Vertex(0).Neighbors[0] = 2
		if g.Vertex(0).Neighbors[0] != 1 {
			t.Errorf("Copy of %v graph shares storage with the original", g.Storage())
		}
	}
}

func TestRelease(t *testing.T) {
	for _, mk := range []func() (*Graph, error){
		func() (*Graph, error) { return FromBlock(slices.Clone(scenarioBlock)) },
		func() (*Graph, error) { return New(scenarioAdj()) },
	} {
		g, err := mk()
		if err != nil {
			t.Fatal(err)
		}
		mode := g.Storage()
		g.Release()
		if g.Storage() != StorageNone || g.N() != 0 || g.M() != 0 || g.Vertices() != nil {
			t.Errorf("%v graph not empty after Release", mode)
		}
		g.Release()
		if g.Storage() != StorageNone {
			t.Errorf("second Release changed %v graph", mode)
		}
	}

	var zero Graph
	zero.Release()
	if c := zero.Compact(); c.N() != 0 {
		t.Error("Compact of a released graph should be empty")
	}
}

func TestEdges(t *testing.T) {
	g, err := New(scenarioAdj())
	if err != nil {
		t.Fatal(err)
	}
	l := g.Edges()
	if l.Rows != 3 || l.Cols != 3 {
		t.Errorf("dimensions = %dx%d, want 3x3", l.Rows, l.Cols)
	}
	got := make([][2]int, len(l.Edges))
	for i, e := range l.Edges {
		got[i] = [2]int{e.U, e.V}
	}
	want := [][2]int{{0, 1}, {0, 2}, {2, 0}}
	if !slices.Equal(got, want) {
		t.Errorf("Edges = %v, want %v", got, want)
	}
}

func TestWeighted(t *testing.T) {
	g, err := NewWeighted(scenarioAdj(), [][]int{{5, 7}, {}, {9}})
	if err != nil {
		t.Fatalf("NewWeighted: %v", err)
	}
	want := []int{3, 3, 0, 2, 2, 1, 2, 0, 5, 7, 9}
	if !slices.Equal(g.Block(), want) {
		t.Fatalf("Block = %v, want %v", g.Block(), want)
	}

	b, err := WeightedFromBlock(slices.Clone(want))
	if err != nil {
		t.Fatalf("WeightedFromBlock: %v", err)
	}
	for i := range 3 {
		if !slices.Equal(b.Vertex(i).Neighbors, g.Vertex(i).Neighbors) ||
			!slices.Equal(b.Vertex(i).Weights, g.Vertex(i).Weights) {
			t.Errorf("vertex %d = %+v, want %+v", i, b.Vertex(i), g.Vertex(i))
		}
	}

	top := b.Topology()
	if !slices.Equal(top.Block(), scenarioBlock) {
		t.Errorf("Topology block = %v, want %v", top.Block(), scenarioBlock)
	}
	top.Release()
	if b.M() != 3 || len(b.Vertex(0).Weights) != 2 {
		t.Error("releasing the topology view released the weighted graph")
	}

	if c := g.Compact(); c.Storage() != StorageBlock || !slices.Equal(c.Block(), want) {
		t.Errorf("Compact = %v (%v)", c.Block(), c.Storage())
	}
	if c := b.Copy(); c.Storage() != StorageBlock || !slices.Equal(c.Block(), want) {
		t.Errorf("Copy = %v (%v)", c.Block(), c.Storage())
	}
}

func TestWeightedRejects(t *testing.T) {
	if _, err := NewWeighted(scenarioAdj(), [][]int{{1}, {}, {1}}); !gerrors.Is(err, gerrors.ErrCodeInvalidInput) {
		t.Errorf("misaligned weights: err = %v, want INVALID_INPUT", err)
	}
	if _, err := NewWeighted(scenarioAdj(), nil); err == nil {
		t.Error("missing weight lists should fail")
	}
	if _, err := WeightedFromBlock(slices.Clone(scenarioBlock)); !errors.Is(err, ErrInvalidBlock) {
		t.Errorf("unweighted block accepted as weighted: %v", err)
	}
}
