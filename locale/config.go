package locale

// Config holds locale provider initialization parameters.
type Config struct {
	// Dir is the bundle directory; empty means built-in defaults only.
	Dir string `json:"dir,omitempty"`
	// Default is the locale selected at startup (built-in default: "en").
	Default string `json:"default,omitempty"`
	// Watch enables hot-reloading of edited bundle files.
	Watch bool `json:"watch,omitempty"`
}

// DefaultConfig returns the default locale configuration.
func DefaultConfig() Config {
	return Config{Default: DefaultTag}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Dir != "" {
		c.Dir = source.Dir
	}
	if source.Default != "" {
		c.Default = source.Default
	}
	if source.Watch {
		c.Watch = true
	}
}
