package tutor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/campus-ai/tutor/locale"
	"github.com/campus-ai/tutor/provider"
)

// Config holds initialization parameters for the surface and its
// subsystems. Each section delegates to that subsystem's constructor.
type Config struct {
	Provider provider.Config `json:"provider"`
	Locale   locale.Config   `json:"locale"`
	// LogDir receives rotated log, trace, and metric files.
	LogDir string `json:"log_dir,omitempty"`
	// Telemetry enables the OpenTelemetry exporters in the host.
	Telemetry bool `json:"telemetry,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Provider: provider.Config{Name: "gemini"},
		Locale:   locale.DefaultConfig(),
		LogDir:   "logs",
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Provider.Merge(&source.Provider)
	c.Locale.Merge(&source.Locale)

	if source.LogDir != "" {
		c.LogDir = source.LogDir
	}
	if source.Telemetry {
		c.Telemetry = true
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and
// returns the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
