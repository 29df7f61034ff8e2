package cache

// ScopedKeyer wraps a Keyer with a prefix so several consumers can share one
// backend without colliding. The HTTP API scopes its keys with "api:".
//
// Example usage:
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
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

// DocumentKey generates a prefixed document key.
func (k *ScopedKeyer) DocumentKey(contentHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(contentHash, opts)
}

// InspectKey generates a prefixed inspect key.
func (k *ScopedKeyer) InspectKey(contentHash string) string {
	return k.prefix + k.inner.InspectKey(contentHash)
}
