package pipeline

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"github.com/matzehuels/csrgraph/pkg/edges"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	csrio "github.com/matzehuels/csrgraph/pkg/io"
)

// Parse decodes an edge-list input in the given format.
// The data slice is not modified.
func Parse(data []byte, format string) (edges.EdgeList, error) {
	switch format {
	case FormatSNAP:
		return csrio.ReadSNAP(bytes.NewReader(data))
	case FormatEdges:
		return csrio.ReadEdges(bytes.NewReader(data))
	default:
		return edges.EdgeList{}, ValidateFormat(format)
	}
}

// readInput loads the input file, mapping a missing file to FILE_NOT_FOUND.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, gerrors.Wrap(gerrors.ErrCodeFileNotFound, err, "unable to open file %s", path)
	}
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeIO, err, "unable to read file %s", path)
	}
	return data, nil
}
