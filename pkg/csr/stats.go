package csr

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/csrgraph/pkg/parallel"
)

// Distribution summarizes a sample of integers such as vertex degrees.
type Distribution struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Median float64 `json:"median"`
	Sum    int     `json:"sum"`
}

// Summary describes the shape of a graph. SelfLoops counts loop edges, so a
// vertex listing itself twice contributes two.
type Summary struct {
	Vertices  int           `json:"vertices"`
	Edges     int           `json:"edges"`
	Density   float64       `json:"density"`
	SelfLoops int           `json:"self_loops"`
	Isolated  int           `json:"isolated"`
	OutDegree Distribution  `json:"out_degree"`
	InDegree  Distribution  `json:"in_degree"`
	Weights   *Distribution `json:"weights,omitempty"`
}

// Summarize computes degree statistics for g. In-degrees come from the
// transposed graph.
func Summarize(g *Graph) (Summary, error) {
	t, err := Transpose(g)
	if err != nil {
		return Summary{}, err
	}
	defer t.Release()

	n := g.N()
	out := make([]float64, n)
	in := make([]float64, n)
	loops := make([]int, n)
	isolated := make([]int, n)
	parallel.For(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			nbrs := g.Vertex(i).Neighbors
			out[i] = float64(len(nbrs))
			in[i] = float64(t.Degree(i))
			for _, v := range nbrs {
				if v == i {
					loops[i]++
				}
			}
			if len(nbrs) == 0 && t.Degree(i) == 0 {
				isolated[i] = 1
			}
		}
	})

	s := Summary{
		Vertices:  n,
		Edges:     g.M(),
		SelfLoops: parallel.Scan(loops),
		Isolated:  parallel.Scan(isolated),
		OutDegree: distribution(out),
		InDegree:  distribution(in),
	}
	if n > 0 {
		s.Density = float64(g.M()) / (float64(n) * float64(n))
	}
	return s, nil
}

// SummarizeWeighted extends [Summarize] with the distribution of edge weights.
func SummarizeWeighted(g *WeightedGraph) (Summary, error) {
	s, err := Summarize(g.Topology())
	if err != nil {
		return Summary{}, err
	}
	w := make([]float64, 0, g.M())
	for _, v := range g.Vertices() {
		for _, x := range v.Weights {
			w = append(w, float64(x))
		}
	}
	d := distribution(w)
	s.Weights = &d
	return s, nil
}

// distribution sorts x in place and describes it. An empty sample yields the
// zero Distribution.
func distribution(x []float64) Distribution {
	if len(x) == 0 {
		return Distribution{}
	}
	slices.Sort(x)
	d := Distribution{
		Min:    int(x[0]),
		Max:    int(x[len(x)-1]),
		Sum:    int(floats.Sum(x)),
		Median: stat.Quantile(0.5, stat.Empirical, x, nil),
	}
	if len(x) == 1 {
		d.Mean = x[0]
		return d
	}
	d.Mean, d.StdDev = stat.MeanStdDev(x, nil)
	return d
}
