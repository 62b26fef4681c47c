package parallel

import "slices"

// SortFunc sorts s in place, stably, using cmp as a three-way comparator.
//
// Blocks are sorted concurrently with [slices.SortStableFunc], then merged
// pairwise in rounds of doubling width. Each merge writes a disjoint range of
// a scratch buffer, and ties always take the left run, which keeps the sort
// stable.
func SortFunc[T any](s []T, cmp func(a, b T) int) {
	n := len(s)
	size, count := partition(n)
	if count <= 1 {
		slices.SortStableFunc(s, cmp)
		return
	}
	_ = forBlocks(n, size, count, func(_, lo, hi int) error {
		slices.SortStableFunc(s[lo:hi], cmp)
		return nil
	})

	src, dst := s, make([]T, n)
	for width := size; width < n; width *= 2 {
		pairs := (n + 2*width - 1) / (2 * width)
		each(pairs, func(p int) {
			lo := p * 2 * width
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			merge(dst[lo:hi], src[lo:mid], src[mid:hi], cmp)
		})
		src, dst = dst, src
	}
	if &src[0] != &s[0] {
		For(n, func(lo, hi int) { copy(s[lo:hi], src[lo:hi]) })
	}
}

// merge writes the stable merge of sorted runs a and b into out.
// len(out) must equal len(a)+len(b).
func merge[T any](out, a, b []T, cmp func(x, y T) int) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if cmp(b[j], a[i]) < 0 {
			out[k] = b[j]
			j++
		} else {
			out[k] = a[i]
			i++
		}
		k++
	}
	k += copy(out[k:], a[i:])
	copy(out[k:], b[j:])
}

// BucketSort returns a copy of s stably sorted by key, together with the
// starting index of every bucket. key must return values in [0, buckets).
//
// offsets has length buckets; bucket i occupies sorted[offsets[i]:offsets[i+1]]
// (or sorted[offsets[i]:] for the last bucket). Empty buckets get the offset
// of the next non-empty one, so offsets is non-decreasing and offsets[0] == 0.
//
// It is a counting sort. Every block histograms its keys into its own column
// of a bucket-major count matrix, the matrix is scanned, and each block then
// scatters its elements in input order starting at its column's offsets. The
// block count is capped at len(s)/buckets so the matrix stays O(len(s)+buckets).
// key is called twice per element.
func BucketSort[T any](s []T, buckets int, key func(T) int) (sorted []T, offsets []int) {
	n := len(s)
	buckets = max(buckets, 0)
	sorted = make([]T, n)
	offsets = make([]int, buckets)
	if n == 0 {
		return sorted, offsets
	}

	size, count := partition(n)
	if limit := max(n/max(buckets, 1), 1); count > limit {
		size = (n + limit - 1) / limit
		count = (n + size - 1) / size
	}

	// counts[k*count+b] is the number of elements of block b with key k.
	counts := make([]int, buckets*count)
	_ = forBlocks(n, size, count, func(b, lo, hi int) error {
		for _, v := range s[lo:hi] {
			counts[key(v)*count+b]++
		}
		return nil
	})
	Scan(counts)
	For(buckets, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			offsets[k] = counts[k*count]
		}
	})
	_ = forBlocks(n, size, count, func(b, lo, hi int) error {
		for _, v := range s[lo:hi] {
			slot := key(v)*count + b
			sorted[counts[slot]] = v
			counts[slot]++
		}
		return nil
	})
	return sorted, offsets
}
