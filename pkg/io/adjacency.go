package io

import (
	"errors"
	"io"
	"os"

	"github.com/matzehuels/csrgraph/pkg/csr"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/parallel"
)

// Header lines of the supported text formats.
const (
	AdjacencyHeader         = "AdjacencyGraph"
	WeightedAdjacencyHeader = "WeightedAdjacencyGraph"
	EdgeArrayHeader         = "EdgeArray"
)

// WriteAdjacency writes g in the adjacency format. Per-vertex graphs are laid
// out into a block first; block-mode graphs are written from their storage.
func WriteAdjacency(g *csr.Graph, w io.Writer, opts ...WriteOption) error {
	return writeBlock(w, AdjacencyHeader, g.Block(), opts)
}

// WriteWeightedAdjacency writes g in the weighted adjacency format.
func WriteWeightedAdjacency(g *csr.WeightedGraph, w io.Writer, opts ...WriteOption) error {
	return writeBlock(w, WeightedAdjacencyHeader, g.Block(), opts)
}

func writeBlock(w io.Writer, header string, block []int, opts []WriteOption) error {
	if _, err := io.WriteString(w, header+"\n"); err != nil {
		return gerrors.Wrap(gerrors.ErrCodeIO, err, "write header")
	}
	return WriteInts(w, block, opts...)
}

// ExportAdjacency writes g to the file at path. If the file cannot be
// created, ExportAdjacency returns an IO_ERROR and writes nothing.
func ExportAdjacency(g *csr.Graph, path string, opts ...WriteOption) error {
	return exportFile(path, func(w io.Writer) error { return WriteAdjacency(g, w, opts...) })
}

// ExportWeightedAdjacency writes g to the file at path.
func ExportWeightedAdjacency(g *csr.WeightedGraph, path string, opts ...WriteOption) error {
	return exportFile(path, func(w io.Writer) error { return WriteWeightedAdjacency(g, w, opts...) })
}

// ExportBytes writes already-serialized output to the file at path, with the
// same error codes as the Export functions.
func ExportBytes(data []byte, path string) error {
	return exportFile(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func exportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return gerrors.Wrap(gerrors.ErrCodeIO, err, "unable to open file %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return gerrors.Wrap(gerrors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return gerrors.Wrap(gerrors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}

// ReadAdjacency reads an unweighted graph in the adjacency format. The tokens
// are parsed into one block which becomes the graph's storage.
func ReadAdjacency(r io.Reader) (*csr.Graph, error) {
	block, err := readBlock(r, AdjacencyHeader, false)
	if err != nil {
		return nil, err
	}
	g, err := csr.FromBlock(block)
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeInvalidFormat, err, "bad input file")
	}
	return g, nil
}

// ReadWeightedAdjacency reads a graph in the weighted adjacency format.
func ReadWeightedAdjacency(r io.Reader) (*csr.WeightedGraph, error) {
	block, err := readBlock(r, WeightedAdjacencyHeader, true)
	if err != nil {
		return nil, err
	}
	g, err := csr.WeightedFromBlock(block)
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeInvalidFormat, err, "bad input file")
	}
	return g, nil
}

// ImportAdjacency reads an unweighted adjacency file.
func ImportAdjacency(path string) (*csr.Graph, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := ReadAdjacency(f)
	if err != nil {
		return nil, gerrors.Wrap(gerrors.GetCode(err), err, "%s", path)
	}
	return g, nil
}

// ImportWeightedAdjacency reads a weighted adjacency file.
func ImportWeightedAdjacency(path string) (*csr.WeightedGraph, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := ReadWeightedAdjacency(f)
	if err != nil {
		return nil, gerrors.Wrap(gerrors.GetCode(err), err, "%s", path)
	}
	return g, nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, gerrors.Wrap(gerrors.ErrCodeFileNotFound, err, "unable to open file %s", path)
	}
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeIO, err, "unable to open file %s", path)
	}
	return f, nil
}

// readBlock tokenizes r, checks the header and parses the remaining tokens
// into an int block whose length matches the declared counts.
func readBlock(r io.Reader, header string, weighted bool) ([]int, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeIO, err, "read")
	}
	words := Tokenize(buf)
	if len(words) == 0 || string(words[0]) != header {
		return nil, gerrors.New(gerrors.ErrCodeInvalidFormat, "bad input file: missing header: %s", header)
	}

	block, err := parseInts(words[1:])
	if err != nil {
		return nil, err
	}
	if len(block) < csr.HeaderLen {
		return nil, gerrors.New(gerrors.ErrCodeInvalidFormat, "bad input file: missing vertex and edge counts")
	}
	n, m := block[0], block[1]
	if n < 0 || m < 0 || n > len(block) || m > len(block) || len(block) != csr.BlockLen(n, m, weighted) {
		want := "n+m+2"
		if weighted {
			want = "n+2m+2"
		}
		return nil, gerrors.New(gerrors.ErrCodeInvalidFormat,
			"bad input file: length = %d, n = %d, m = %d, expected %s", len(block), n, m, want)
	}
	return block, nil
}

// parseInts parses every token independently.
func parseInts(words Words) ([]int, error) {
	out := make([]int, len(words))
	err := parallel.ForErr(len(words), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			v, err := ParseInt(words[i])
			if err != nil {
				return err
			}
			out[i] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
