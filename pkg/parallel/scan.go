package parallel

// Scan replaces a with its exclusive prefix sum and returns the total.
//
// The sum is computed in two passes: each block reduces its elements, the
// block sums are scanned sequentially, and each block then rewrites its
// elements starting from its block offset. The result is identical for any
// worker count.
func Scan(a []int) int {
	return scan(a, false)
}

// ScanInclusive replaces a with its inclusive prefix sum and returns the total.
func ScanInclusive(a []int) int {
	return scan(a, true)
}

func scan(a []int, inclusive bool) int {
	n := len(a)
	size, count := partition(n)
	if count == 0 {
		return 0
	}
	sums := make([]int, count)
	_ = forBlocks(n, size, count, func(b, lo, hi int) error {
		s := 0
		for _, v := range a[lo:hi] {
			s += v
		}
		sums[b] = s
		return nil
	})
	total := exclusive(sums)
	_ = forBlocks(n, size, count, func(b, lo, hi int) error {
		acc := sums[b]
		for i := lo; i < hi; i++ {
			v := a[i]
			if inclusive {
				acc += v
				a[i] = acc
			} else {
				a[i] = acc
				acc += v
			}
		}
		return nil
	})
	return total
}

// exclusive is the sequential exclusive scan used on per-block counts.
func exclusive(a []int) int {
	total := 0
	for i, v := range a {
		a[i] = total
		total += v
	}
	return total
}
