// Package io reads and writes CSR graphs and edge lists as text.
//
// # Adjacency Format
//
// The adjacency format mirrors the in-place block of package csr, one
// decimal integer per line after a header line:
//
//	AdjacencyGraph
//	<n>
//	<m>
//	<offset_0> ... <offset_{n-1}>
//	<neighbor_0> ... <neighbor_{m-1}>
//
// Weighted graphs use the header WeightedAdjacencyGraph and append m weight
// lines. Because the layouts match, [ReadAdjacency] parses the tokens straight
// into the block that backs the returned graph.
//
// # Edge Formats
//
// [ReadSNAP] accepts SNAP edge lists: leading lines starting with '#' are
// skipped, then whitespace-separated tokens are paired into (source, target)
// edges. [ReadEdges] reads the EdgeArray format, a header line followed by
// one "u v" pair per line. Both derive the declared dimensions from the
// largest id seen.
//
// # Parallel Text Handling
//
// [Tokenize] splits a buffer in place and returns views into it. The write
// path formats every number into a fixed slot of [IntTextLen] bytes, then
// filters out the unused padding, so formatting needs no measuring pass. Large
// arrays are stringified in chunks (see [WithChunkSize]) to bound the memory
// held by the intermediate text.
//
// # Errors
//
// Functions return coded errors from package errors: IO_ERROR or
// FILE_NOT_FOUND when a file cannot be opened, read or written, and
// INVALID_FORMAT when the header is wrong, a token is not an integer, or the
// token count does not match the declared counts. A failed read never
// returns a partial graph.
//
//	g, err := io.ImportAdjacency("web.adj")
//	if err != nil {
//	    return err
//	}
//	if err := io.ExportAdjacency(g, "copy.adj"); err != nil {
//	    return err
//	}
package io
