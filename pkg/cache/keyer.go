package cache

// Keyer generates cache keys for the cacheable artifacts of the pipeline.
type Keyer interface {
	// ConfigKey generates a key for a built chart configuration. The table
	// digest covers the table content; opts covers everything else that
	// influences the build (label column, value spec, option overrides).
	ConfigKey(chartType, tableDigest string, opts any) string

	// TableKey generates a key for a parsed table, addressed by a digest of
	// the raw source bytes (CSV text, XLSX file) and the sheet selector.
	TableKey(sourceDigest, sheet string) string
}

// DefaultKeyer generates cache keys using SHA-256 hashing of the key
// components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ConfigKey generates a key for a built chart configuration.
func (k *DefaultKeyer) ConfigKey(chartType, tableDigest string, opts any) string {
	return hashKey("config", chartType, tableDigest, opts)
}

// TableKey generates a key for a parsed table.
func (k *DefaultKeyer) TableKey(sourceDigest, sheet string) string {
	return hashKey("table", sourceDigest, sheet)
}
