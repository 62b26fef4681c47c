package parallel

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultGrain is the minimum number of elements handled by one block.
const DefaultGrain = 2048

var (
	workers atomic.Int64
	grain   atomic.Int64
)

// SetWorkers sets the maximum number of goroutines a primitive runs at once.
// Values <= 0 restore the default of runtime.GOMAXPROCS(0).
func SetWorkers(n int) {
	if n < 0 {
		n = 0
	}
	workers.Store(int64(n))
}

// Workers returns the current worker limit.
func Workers() int {
	if w := int(workers.Load()); w > 0 {
		return w
	}
	return runtime.GOMAXPROCS(0)
}

// SetGrain sets the minimum block size. Values <= 0 restore [DefaultGrain].
func SetGrain(n int) {
	if n < 0 {
		n = 0
	}
	grain.Store(int64(n))
}

// Grain returns the current minimum block size.
func Grain() int {
	if g := int(grain.Load()); g > 0 {
		return g
	}
	return DefaultGrain
}

// partition returns the block size and block count used for n elements.
func partition(n int) (size, count int) {
	if n <= 0 {
		return 0, 0
	}
	size = max(Grain(), (n+4*Workers()-1)/(4*Workers()))
	count = (n + size - 1) / size
	return size, count
}

// forBlocks runs fn once per block of [0, n). Block b covers [b*size, min((b+1)*size, n)).
func forBlocks(n, size, count int, fn func(b, lo, hi int) error) error {
	if count == 0 {
		return nil
	}
	if count == 1 {
		return fn(0, 0, n)
	}
	var g errgroup.Group
	g.SetLimit(Workers())
	for b := 0; b < count; b++ {
		lo := b * size
		hi := min(lo+size, n)
		g.Go(func() error { return fn(b, lo, hi) })
	}
	return g.Wait()
}

// each runs fn(i) for every i in [0, count), one task per index.
func each(count int, fn func(i int)) {
	if count == 1 {
		fn(0)
		return
	}
	var g errgroup.Group
	g.SetLimit(Workers())
	for i := 0; i < count; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// ForErr calls fn on disjoint blocks [lo, hi) covering [0, n) and returns the
// first non-nil error. Blocks already started run to completion.
func ForErr(n int, fn func(lo, hi int) error) error {
	size, count := partition(n)
	return forBlocks(n, size, count, func(_, lo, hi int) error { return fn(lo, hi) })
}

// For calls fn on disjoint blocks [lo, hi) covering [0, n).
func For(n int, fn func(lo, hi int)) {
	_ = ForErr(n, func(lo, hi int) error {
		fn(lo, hi)
		return nil
	})
}

// Copy returns a copy of s filled in parallel.
func Copy[T any](s []T) []T {
	out := make([]T, len(s))
	For(len(s), func(lo, hi int) { copy(out[lo:hi], s[lo:hi]) })
	return out
}
