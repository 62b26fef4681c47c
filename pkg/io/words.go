package io

import "github.com/matzehuels/csrgraph/pkg/parallel"

// Words are the tokens of a buffer split by [Tokenize]. Each token is a view
// into the tokenized buffer.
type Words [][]byte

// Strings returns the tokens as strings.
func (w Words) Strings() []string {
	out := make([]string, len(w))
	for i, t := range w {
		out[i] = string(t)
	}
	return out
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', 0:
		return true
	}
	return false
}

// Tokenize splits buf into whitespace-delimited tokens without copying.
// Spaces, tabs, newlines, carriage returns and NUL bytes separate tokens.
//
// Tokenize is destructive: every separator in buf is overwritten with NUL.
// The returned tokens alias buf, so callers must not reuse the original text.
// An empty or all-whitespace buffer yields no tokens.
func Tokenize(buf []byte) Words {
	n := len(buf)
	parallel.For(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if isSpace(buf[i]) {
				buf[i] = 0
			}
		}
	})

	starts := make([]bool, n)
	ends := make([]bool, n)
	parallel.For(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if buf[i] == 0 {
				continue
			}
			starts[i] = i == 0 || buf[i-1] == 0
			ends[i] = i == n-1 || buf[i+1] == 0
		}
	})
	first := parallel.PackIndex(starts)
	last := parallel.PackIndex(ends)

	words := make(Words, len(first))
	parallel.For(len(first), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			end := last[i] + 1
			words[i] = buf[first[i]:end:end]
		}
	})
	return words
}
