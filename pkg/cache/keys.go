package cache

import "strings"

// Key types reported to the cache hooks.
const (
	KeyTypeGraph   = "graph"
	KeyTypeSummary = "summary"
)

// GraphKeyOpts are the build options that change a graph built from the
// same input.
type GraphKeyOpts struct {
	Format    string `json:"format"`
	Symmetric bool   `json:"symmetric"`
}

// Keyer derives cache keys.
type Keyer interface {
	// GraphKey returns the key of the adjacency text built from an input.
	GraphKey(inputHash string, opts GraphKeyOpts) string
	// SummaryKey returns the key of the statistics of an adjacency file.
	SummaryKey(graphHash string) string
}

// DefaultKeyer produces "graph:<sha256>" and "summary:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey hashes the input hash together with the options.
func (DefaultKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return hashKey(KeyTypeGraph, inputHash, opts)
}

// SummaryKey hashes the graph hash.
func (DefaultKeyer) SummaryKey(graphHash string) string {
	return hashKey(KeyTypeSummary, graphHash)
}

// KeyType returns the key type of a key produced by a [Keyer], ignoring
// any scope prefix.
func KeyType(key string) string {
	for _, t := range []string{KeyTypeGraph, KeyTypeSummary} {
		if strings.Contains(key, t+":") {
			return t
		}
	}
	return "other"
}

// ScopedKeyer wraps a Keyer with a prefix so several tenants, such as
// different server deployments sharing one Redis, keep separate namespaces.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "csrgraph:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(inputHash, opts)
}

// SummaryKey generates a prefixed summary key.
func (k *ScopedKeyer) SummaryKey(graphHash string) string {
	return k.prefix + k.inner.SummaryKey(graphHash)
}
