package parallel

// Pack returns the elements of in whose flag is set, in their original order.
// len(flags) must equal len(in).
func Pack[T any](in []T, flags []bool) []T {
	return compact(len(in), func(i int) bool { return flags[i] }, func(i int) T { return in[i] })
}

// PackIndex returns the indices i for which flags[i] is set, in increasing order.
func PackIndex(flags []bool) []int {
	return compact(len(flags), func(i int) bool { return flags[i] }, func(i int) int { return i })
}

// Filter returns the elements of in satisfying keep, in their original order.
// keep must be a pure function: it is evaluated twice per element.
func Filter[T any](in []T, keep func(T) bool) []T {
	return compact(len(in), func(i int) bool { return keep(in[i]) }, func(i int) T { return in[i] })
}

// compact counts survivors per block, scans the counts into block offsets and
// scatters survivors so that every output slot has exactly one writer.
func compact[T any](n int, keep func(i int) bool, at func(i int) T) []T {
	size, count := partition(n)
	if count == 0 {
		return []T{}
	}
	offs := make([]int, count)
	_ = forBlocks(n, size, count, func(b, lo, hi int) error {
		c := 0
		for i := lo; i < hi; i++ {
			if keep(i) {
				c++
			}
		}
		offs[b] = c
		return nil
	})
	total := exclusive(offs)
	out := make([]T, total)
	_ = forBlocks(n, size, count, func(b, lo, hi int) error {
		k := offs[b]
		for i := lo; i < hi; i++ {
			if keep(i) {
				out[k] = at(i)
				k++
			}
		}
		return nil
	})
	return out
}
