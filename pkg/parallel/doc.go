// Package parallel provides the fork-join primitives the construction pipeline
// is built on: blocked loops, prefix sums, stream compaction and stable sorts.
//
// # Model
//
// Every primitive splits an index range [0, n) into contiguous blocks and runs
// one goroutine per block on a bounded [errgroup.Group]. The number of
// goroutines in flight never exceeds [Workers]. Callers must only write to
// output positions owned by their block (or computed in advance from an offset
// table); no primitive takes a lock on caller data.
//
// Block size is max(grain, n/(4*workers)), so small inputs run inline on the
// calling goroutine and large inputs get a few blocks per worker for balance.
//
// # Primitives
//
//   - [For], [ForErr]: elementwise map over blocks
//   - [Scan], [ScanInclusive]: prefix sums whose result does not depend on scheduling
//   - [Pack], [PackIndex], [Filter]: order-preserving stream compaction
//   - [SortFunc]: stable comparison sort (block sort + parallel merge rounds)
//   - [BucketSort]: stable bucket sort keyed by an integer extractor, with bucket offsets
//
// # Tuning
//
// [SetWorkers] and [SetGrain] change the process-wide defaults. They are meant
// to be called once at startup (the CLI wires them to --workers and --grain).
//
// [errgroup.Group]: https://pkg.go.dev/golang.org/x/sync/errgroup#Group
package parallel
