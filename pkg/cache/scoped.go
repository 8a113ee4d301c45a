package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Useful when one cache backend is shared by several server deployments or
// users and their entries must not collide.
//
// Example usage:
//
//	// Tenant-specific keys
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
//
//	// Shared keys
//	sharedKeyer := NewDefaultKeyer()
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

// ConfigKey generates a prefixed key for a built chart configuration.
func (k *ScopedKeyer) ConfigKey(chartType, tableDigest string, opts any) string {
	return k.prefix + k.inner.ConfigKey(chartType, tableDigest, opts)
}

// TableKey generates a prefixed key for a parsed table.
func (k *ScopedKeyer) TableKey(sourceDigest, sheet string) string {
	return k.prefix + k.inner.TableKey(sourceDigest, sheet)
}
