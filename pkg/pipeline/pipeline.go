// Package pipeline provides the graph construction pipeline for csrgraph.
//
// This package implements the complete parse → dedup → symmetrize → build
// pipeline that is shared by the CLI and the HTTP service. By centralizing
// this logic, both entry points cache, log and report stages the same way.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Tokenize a SNAP or EdgeArray input into an edge list
//  2. Dedup: Remove duplicate edges
//  3. Symmetrize: Optionally add reverse edges and drop self-loops
//  4. Build: Bucket the edges into a CSR graph
//
// The built graph is serialized as adjacency text, which is both the output
// format and the cached representation.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:     "web-Google.txt",
//	    Output:    "web-Google.adj",
//	    Symmetric: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Graph.N(), result.Graph.M())
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/csrgraph/pkg/csr"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	csrio "github.com/matzehuels/csrgraph/pkg/io"
)

// Input formats accepted by the parse stage.
const (
	FormatSNAP  = "snap"
	FormatEdges = "edges"
)

// DefaultFormat is the input format used when none is given.
const DefaultFormat = FormatSNAP

// ValidFormats lists the accepted input formats.
var ValidFormats = map[string]bool{
	FormatSNAP:  true,
	FormatEdges: true,
}

// Options configures a pipeline run.
type Options struct {
	// Input is the path of the edge-list file. Required by [Runner.Execute].
	Input string `json:"input,omitempty"`

	// Output is the path of the adjacency file to write. Empty skips writing.
	Output string `json:"output,omitempty"`

	// Format is the input format, "snap" or "edges".
	Format string `json:"format,omitempty"`

	// Symmetric builds the undirected closure of the input.
	Symmetric bool `json:"symmetric,omitempty"`

	// ChunkSize is the number of values formatted per output chunk.
	ChunkSize int `json:"chunk_size,omitempty"`

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and HTTP responses.
	RunID uuid.UUID

	// Graph is the built graph in block mode.
	Graph *csr.Graph

	// Adjacency is the graph serialized as adjacency text.
	Adjacency []byte

	// InputHash is the content hash of the input bytes.
	InputHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the graph was decoded from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputEdges     int
	Vertices       int
	Edges          int
	ParseTime      time.Duration
	DedupTime      time.Duration
	SymmetrizeTime time.Duration
	BuildTime      time.Duration
	SerializeTime  time.Duration
}

// ValidateFormat checks that an input format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "invalid format: %q (must be one of: snap, edges)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for a
// file-to-file run. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "input is required")
	}
	if err := gerrors.ValidateFilePath(o.Input); err != nil {
		return err
	}
	if o.Output != "" {
		if err := gerrors.ValidateFilePath(o.Output); err != nil {
			return err
		}
	}
	if err := o.setDefaults(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// setDefaults applies the defaults shared by file and in-memory runs.
func (o *Options) setDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := gerrors.ValidateCount("chunk_size", o.ChunkSize); err != nil {
		return err
	}
	if o.ChunkSize == 0 {
		o.ChunkSize = csrio.DefaultChunkSize
	}
	return nil
}

// writeOptions returns the serializer options for o.
func (o *Options) writeOptions() []csrio.WriteOption {
	return []csrio.WriteOption{csrio.WithChunkSize(o.ChunkSize)}
}
