package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Config holds transport initialization parameters. Fields a transport does
// not use are ignored by its factory.
type Config struct {
	// Name selects the registered transport (e.g. "gemini").
	Name string `json:"name"`
	// Model is the transport-specific model identifier.
	Model string `json:"model,omitempty"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `json:"api_key_env,omitempty"`
	// BaseURL overrides the transport's default endpoint.
	BaseURL string `json:"base_url,omitempty"`
	// TimeoutSeconds bounds one full streamed turn. Zero means the
	// transport default.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Name != "" {
		c.Name = source.Name
	}
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.APIKeyEnv != "" {
		c.APIKeyEnv = source.APIKeyEnv
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.TimeoutSeconds > 0 {
		c.TimeoutSeconds = source.TimeoutSeconds
	}
}

// Factory builds a Provider from configuration.
type Factory func(cfg *Config) (Provider, error)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a named transport factory to the global registry. Transports
// typically call Register from an init function so that importing the
// package makes the transport selectable by name.
func Register(name string, factory Factory) error {
	if name == "" {
		return ErrEmptyName
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}

	factories[name] = factory
	return nil
}

// New instantiates the transport named by cfg.Name.
func New(cfg *Config) (Provider, error) {
	mu.RLock()
	factory, exists := factories[cfg.Name]
	mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, cfg.Name)
	}

	p, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider %q: %w", cfg.Name, err)
	}
	return p, nil
}

// Names returns the registered transport names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
