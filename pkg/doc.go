// Package pkg provides the core libraries for csrgraph.
//
// # Overview
//
// csrgraph turns edge lists into graphs in compressed sparse row (CSR) form
// and writes them as AdjacencyGraph files. The pkg directory is organized into
// three main areas:
//
//  1. Core - edge lists, the CSR builder and the text codecs
//  2. Infrastructure - caching, configuration, parallelism and observability
//  3. Surfaces - the build pipeline, HTTP service and rendering
//
// # Architecture
//
// The typical data flow through csrgraph:
//
//	SNAP or EdgeArray file
//	         ↓
//	    [io] package (tokenize and parse)
//	         ↓
//	    [edges] package (deduplicate, optionally symmetrize)
//	         ↓
//	    [csr] package (bucket by source into one block)
//	         ↓
//	    AdjacencyGraph file
//
// # Quick Start
//
// Build a graph from a SNAP file and write it out:
//
//	import (
//	    csrio "github.com/matzehuels/csrgraph/pkg/io"
//	    "github.com/matzehuels/csrgraph/pkg/csr"
//	    "github.com/matzehuels/csrgraph/pkg/edges"
//	)
//
//	l, _ := csrio.ImportSNAP("web-Google.txt")
//	l = edges.RemoveDuplicates(l)
//	g, _ := csr.FromEdges(&l)
//	_ = csrio.ExportAdjacency(g, "web-Google.adj")
//
// # Main Packages
//
// ## Core
//
// [edges] - Edge lists with declared dimensions, duplicate removal and
// symmetrization.
//
// [csr] - Unweighted and weighted CSR graphs over a single int block or
// per-vertex slices, the edge-list builder, transposition and degree
// statistics.
//
// [io] - Whitespace tokenizer and readers/writers for the AdjacencyGraph,
// WeightedAdjacencyGraph, EdgeArray and SNAP formats.
//
// ## Infrastructure
//
// [parallel] - Block-parallel loops, prefix sums, packing and sorting used by
// every bulk pass.
//
// [cache] - Build cache with file, Redis, MongoDB and null backends.
//
// [config] - Layered configuration (defaults, TOML file, environment, flags).
//
// [observability] - Hooks for pipeline stages, cache lookups and HTTP requests.
//
// [errors] - Coded errors shared by every package.
//
// ## Surfaces
//
// [pipeline] - parse → dedup → symmetrize → build → serialize, with caching.
// Used by the CLI and the HTTP service.
//
// [server] - HTTP endpoints for build, stat and render.
//
// [render] - DOT and SVG node-link diagrams of small graphs.
//
// [watch] - Rebuild on file change.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/csr/...                # Specific package
//	go test -run Example                 # Examples only
//
// [edges]: https://pkg.go.dev/github.com/matzehuels/csrgraph/pkg/edges
// [csr]: https://pkg.go.dev/github.com/matzehuels/csrgraph/pkg/csr
// [io]: https://pkg.go.dev/github.com/matzehuels/csrgraph/pkg/io
// [parallel]: https://pkg.go.dev/github.com/matzehuels/csrgraph/pkg/parallel
// [cache]: https://pkg.go.dev/github.com/matzehuels/csrgraph/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/csrgraph/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/csrgraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/csrgraph/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/csrgraph/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/csrgraph/pkg/server
// [render]: https://pkg.go.dev/github.com/matzehuels/csrgraph/pkg/render
// [watch]: https://pkg.go.dev/github.com/matzehuels/csrgraph/pkg/watch
package pkg
