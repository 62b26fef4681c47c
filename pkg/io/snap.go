package io

import (
	"fmt"
	"io"
	"math"

	"github.com/matzehuels/csrgraph/pkg/edges"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/parallel"
)

// ReadSNAP reads a SNAP edge list. Leading lines starting with '#' are
// skipped, the remaining tokens are paired into edges, and an odd trailing
// token is ignored. Rows and Cols are both the largest id plus one, or zero
// when there are no edges.
func ReadSNAP(r io.Reader) (edges.EdgeList, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return edges.EdgeList{}, gerrors.Wrap(gerrors.ErrCodeIO, err, "read")
	}
	return pairsToEdges(Tokenize(buf[skipComments(buf):]))
}

// ImportSNAP reads a SNAP edge list from the file at path.
func ImportSNAP(path string) (edges.EdgeList, error) {
	f, err := openFile(path)
	if err != nil {
		return edges.EdgeList{}, err
	}
	defer f.Close()
	l, err := ReadSNAP(f)
	if err != nil {
		return edges.EdgeList{}, gerrors.Wrap(gerrors.GetCode(err), err, "%s", path)
	}
	return l, nil
}

// WriteSNAP writes l as a SNAP edge list with a comment header and one
// tab-separated pair per line.
func WriteSNAP(l edges.EdgeList, w io.Writer, opts ...WriteOption) error {
	n := max(l.Rows, l.Cols)
	if _, err := fmt.Fprintf(w, "# Nodes: %d Edges: %d\n# FromNodeId\tToNodeId\n", n, l.NonZeros()); err != nil {
		return gerrors.Wrap(gerrors.ErrCodeIO, err, "write header")
	}
	return writePairs(w, l.NonZeros(), func(i int) (int, int) {
		return l.Edges[i].U, l.Edges[i].V
	}, '\t', newWriteConfig(opts))
}

// ExportSNAP writes l to the file at path as a SNAP edge list.
func ExportSNAP(l edges.EdgeList, path string, opts ...WriteOption) error {
	return exportFile(path, func(w io.Writer) error { return WriteSNAP(l, w, opts...) })
}

// skipComments returns the offset of the first byte after the leading run of
// '#' lines.
func skipComments(buf []byte) int {
	k := 0
	for k < len(buf) && buf[k] == '#' {
		for k < len(buf) && buf[k] != '\n' {
			k++
		}
		k++
	}
	return min(k, len(buf))
}

// pairsToEdges parses consecutive token pairs as edges in parallel.
func pairsToEdges(words Words) (edges.EdgeList, error) {
	m := len(words) / 2
	es := make([]edges.Edge, m)
	err := parallel.ForErr(m, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			u, v, err := ParsePair(words[2*i], words[2*i+1])
			if err != nil {
				return err
			}
			if u < 0 || v < 0 {
				return gerrors.New(gerrors.ErrCodeInvalidFormat, "negative vertex id in edge %d (%d, %d)", i, u, v)
			}
			if u == math.MaxInt || v == math.MaxInt {
				return gerrors.New(gerrors.ErrCodeInvalidFormat, "vertex id out of range in edge %d (%d, %d)", i, u, v)
			}
			es[i] = edges.Edge{U: u, V: v}
		}
		return nil
	})
	if err != nil {
		return edges.EdgeList{}, err
	}
	l := edges.New(es, 0, 0)
	maxU, maxV := l.MaxID()
	l.Rows = max(maxU, maxV) + 1
	l.Cols = l.Rows
	return l, nil
}
