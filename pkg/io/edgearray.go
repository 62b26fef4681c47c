package io

import (
	"io"

	"github.com/matzehuels/csrgraph/pkg/edges"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
)

// WriteEdges writes l in the EdgeArray format: the header line followed by
// one "u v" pair per line.
func WriteEdges(l edges.EdgeList, w io.Writer, opts ...WriteOption) error {
	if _, err := io.WriteString(w, EdgeArrayHeader+"\n"); err != nil {
		return gerrors.Wrap(gerrors.ErrCodeIO, err, "write header")
	}
	return writePairs(w, l.NonZeros(), func(i int) (int, int) {
		return l.Edges[i].U, l.Edges[i].V
	}, ' ', newWriteConfig(opts))
}

// ExportEdges writes l to the file at path in the EdgeArray format.
func ExportEdges(l edges.EdgeList, path string, opts ...WriteOption) error {
	return exportFile(path, func(w io.Writer) error { return WriteEdges(l, w, opts...) })
}

// ReadEdges reads the EdgeArray format. Rows and Cols are the largest id
// plus one.
func ReadEdges(r io.Reader) (edges.EdgeList, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return edges.EdgeList{}, gerrors.Wrap(gerrors.ErrCodeIO, err, "read")
	}
	words := Tokenize(buf)
	if len(words) == 0 || string(words[0]) != EdgeArrayHeader {
		return edges.EdgeList{}, gerrors.New(gerrors.ErrCodeInvalidFormat, "bad input file: missing header: %s", EdgeArrayHeader)
	}
	if len(words)%2 != 1 {
		return edges.EdgeList{}, gerrors.New(gerrors.ErrCodeInvalidFormat, "bad input file: odd number of endpoints (%d)", len(words)-1)
	}
	return pairsToEdges(words[1:])
}

// ImportEdges reads an EdgeArray file.
func ImportEdges(path string) (edges.EdgeList, error) {
	f, err := openFile(path)
	if err != nil {
		return edges.EdgeList{}, err
	}
	defer f.Close()
	l, err := ReadEdges(f)
	if err != nil {
		return edges.EdgeList{}, gerrors.Wrap(gerrors.GetCode(err), err, "%s", path)
	}
	return l, nil
}
