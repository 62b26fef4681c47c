package io

import (
	"io"
	"math"
	"strconv"

	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/parallel"
)

const (
	// IntTextLen bounds the printed length of any int, sign included.
	IntTextLen = 21
	// PairTextLen bounds the printed length of a pair: two ints and a separator.
	PairTextLen = 2*IntTextLen + 1
	// DefaultChunkSize is the number of values stringified per pass.
	DefaultChunkSize = 1_000_000
)

// AppendInt appends the decimal form of v to dst.
func AppendInt(dst []byte, v int) []byte {
	return strconv.AppendInt(dst, int64(v), 10)
}

// AppendPair appends "a b" to dst.
func AppendPair(dst []byte, a, b int) []byte {
	dst = AppendInt(dst, a)
	dst = append(dst, ' ')
	return AppendInt(dst, b)
}

// ParseInt parses a decimal integer with an optional sign. Unlike strconv it
// works on byte tokens directly and reports INVALID_FORMAT errors.
func ParseInt(tok []byte) (int, error) {
	s := tok
	neg := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if len(s) == 0 {
		return 0, gerrors.New(gerrors.ErrCodeInvalidFormat, "invalid integer %q", tok)
	}
	limit := uint64(math.MaxInt)
	if neg {
		limit++
	}
	var u uint64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, gerrors.New(gerrors.ErrCodeInvalidFormat, "invalid integer %q", tok)
		}
		d := uint64(c - '0')
		if u > (limit-d)/10 {
			return 0, gerrors.New(gerrors.ErrCodeInvalidFormat, "integer %q out of range", tok)
		}
		u = u*10 + d
	}
	if neg {
		return -int(u), nil
	}
	return int(u), nil
}

// ParsePair parses the two tokens of a pair.
func ParsePair(a, b []byte) (int, int, error) {
	x, err := ParseInt(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := ParseInt(b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// WriteOption configures the text writers.
type WriteOption func(*writeConfig)

type writeConfig struct {
	chunk int
}

// WithChunkSize sets how many values are stringified per pass.
// Values <= 0 select [DefaultChunkSize].
func WithChunkSize(n int) WriteOption {
	return func(c *writeConfig) { c.chunk = n }
}

func newWriteConfig(opts []WriteOption) writeConfig {
	c := writeConfig{}
	for _, o := range opts {
		o(&c)
	}
	if c.chunk <= 0 {
		c.chunk = DefaultChunkSize
	}
	return c
}

// WriteInts writes one decimal integer per line, stringifying chunk values
// at a time.
func WriteInts(w io.Writer, a []int, opts ...WriteOption) error {
	return writeSlots(w, a, IntTextLen, func(slot []byte, v int) {
		AppendInt(slot[:0], v)
	}, newWriteConfig(opts))
}

// writePairs writes one "u<sep>v" line per pair.
func writePairs(w io.Writer, n int, pair func(i int) (int, int), sep byte, cfg writeConfig) error {
	idx := make([]int, n)
	parallel.For(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			idx[i] = i
		}
	})
	return writeSlots(w, idx, PairTextLen, func(slot []byte, i int) {
		u, v := pair(i)
		AppendInt(slot[:0], u)
		slot[IntTextLen] = sep
		AppendInt(slot[IntTextLen+1:IntTextLen+1], v)
	}, cfg)
}

// writeSlots stringifies a in chunks. Every value gets a zeroed slot of
// slotLen bytes plus a trailing newline; put formats the value at the start
// of its slot, and the zero padding is filtered out before writing.
func writeSlots[T any](w io.Writer, a []T, slotLen int, put func(slot []byte, v T), cfg writeConfig) error {
	stride := slotLen + 1
	for off := 0; off < len(a); off += cfg.chunk {
		part := a[off:min(off+cfg.chunk, len(a))]
		buf := make([]byte, len(part)*stride)
		parallel.For(len(part), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				slot := buf[i*stride : i*stride+slotLen : i*stride+slotLen]
				put(slot, part[i])
				buf[i*stride+slotLen] = '\n'
			}
		})
		text := parallel.Filter(buf, func(c byte) bool { return c != 0 })
		if _, err := w.Write(text); err != nil {
			return gerrors.Wrap(gerrors.ErrCodeIO, err, "write")
		}
	}
	return nil
}
