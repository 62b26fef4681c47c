package csr

import (
	"errors"

	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/parallel"
)

// ErrInvalidBlock is wrapped by every error that rejects a malformed in-place
// block: a short or oversized buffer, bad counts, decreasing offsets or a
// neighbor id outside [0, n).
var ErrInvalidBlock = errors.New("invalid CSR block")

// HeaderLen is the number of leading block slots holding n and m.
const HeaderLen = 2

// Storage identifies which buffers a graph owns.
type Storage int

const (
	// StorageNone is the mode of a zero or released graph. It owns nothing.
	StorageNone Storage = iota
	// StorageBlock graphs own a single in-place block; vertices are views.
	StorageBlock
	// StoragePerVertex graphs own one buffer per vertex.
	StoragePerVertex
)

// String returns the mode name.
func (s Storage) String() string {
	switch s {
	case StorageBlock:
		return "block"
	case StoragePerVertex:
		return "per-vertex"
	default:
		return "none"
	}
}

// BlockLen returns the length of an in-place block for n vertices and m edges.
func BlockLen(n, m int, weighted bool) int {
	if weighted {
		return HeaderLen + n + 2*m
	}
	return HeaderLen + n + m
}

func invalid(format string, args ...any) error {
	return gerrors.Wrap(gerrors.ErrCodeInvalidFormat, ErrInvalidBlock, format, args...)
}

// checkBlock validates header, offsets and neighbor ids of an in-place block
// and returns its counts.
func checkBlock(block []int, weighted bool) (n, m int, err error) {
	if len(block) < HeaderLen {
		return 0, 0, invalid("block has %d slots, need at least %d", len(block), HeaderLen)
	}
	n, m = block[0], block[1]
	if n < 0 || m < 0 {
		return 0, 0, invalid("negative counts n=%d m=%d", n, m)
	}
	if want := BlockLen(n, m, weighted); len(block) != want {
		return 0, 0, invalid("block has %d slots, n=%d m=%d requires %d", len(block), n, m, want)
	}
	if err := checkOffsets(block[HeaderLen:HeaderLen+n], m); err != nil {
		return 0, 0, err
	}
	if err := checkNeighbors(block[HeaderLen+n:HeaderLen+n+m], n); err != nil {
		return 0, 0, err
	}
	return n, m, nil
}

func checkOffsets(off []int, m int) error {
	if len(off) == 0 {
		if m != 0 {
			return invalid("%d edges but no vertices", m)
		}
		return nil
	}
	if off[0] != 0 {
		return invalid("first offset is %d, want 0", off[0])
	}
	return parallel.ForErr(len(off), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			end := m
			if i+1 < len(off) {
				end = off[i+1]
			}
			if off[i] > end || end > m {
				return invalid("offset of vertex %d out of order", i)
			}
		}
		return nil
	})
}

func checkNeighbors(nbrs []int, n int) error {
	return parallel.ForErr(len(nbrs), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			if v := nbrs[i]; v < 0 || v >= n {
				return invalid("neighbor %d at position %d outside [0, %d)", v, i, n)
			}
		}
		return nil
	})
}

// spans returns the neighbor range of every vertex of a checked block.
// Each range has its capacity clipped so appends cannot reach the next vertex.
func spans(off []int, m int, fn func(i, lo, hi int)) {
	n := len(off)
	parallel.For(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			end := m
			if i+1 < n {
				end = off[i+1]
			}
			fn(i, off[i], end)
		}
	})
}

// assemble lays per-vertex lists out as a fresh in-place block: degrees are
// prefix-summed into offsets and every vertex is scattered into its slice.
// weights may be nil for unweighted graphs.
func assemble(n int, neighbors, weights func(i int) []int) []int {
	off := make([]int, n)
	parallel.For(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			off[i] = len(neighbors(i))
		}
	})
	m := parallel.Scan(off)

	block := make([]int, BlockLen(n, m, weights != nil))
	block[0], block[1] = n, m
	nbrs := block[HeaderLen+n : HeaderLen+n+m]
	var wts []int
	if weights != nil {
		wts = block[HeaderLen+n+m:]
	}
	parallel.For(n, func(lo, hi int) {
		copy(block[HeaderLen+lo:HeaderLen+hi], off[lo:hi])
		for i := lo; i < hi; i++ {
			copy(nbrs[off[i]:], neighbors(i))
			if wts != nil {
				copy(wts[off[i]:], weights(i))
			}
		}
	})
	return block
}
