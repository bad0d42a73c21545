package locale

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Provider resolves translated strings for the currently selected locale
// and notifies subscribers when the selection changes. Safe for concurrent
// use.
type Provider struct {
	mu          sync.RWMutex
	dir         string
	bundles     map[string]*Bundle
	current     string
	subscribers []func(tag string)
}

// NewProvider creates a Provider from configuration, loading any bundle
// files found in cfg.Dir. A missing directory is not an error; the
// built-in defaults still apply.
func NewProvider(cfg *Config) (*Provider, error) {
	p := &Provider{
		dir:     cfg.Dir,
		bundles: make(map[string]*Bundle),
		current: cfg.Default,
	}
	if p.current == "" {
		p.current = DefaultTag
	}

	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-scans the bundle directory, replacing the loaded bundle set.
// Bundles already handed out are unaffected; lookups pick up the new set
// immediately.
func (p *Provider) Reload() error {
	if p.dir == "" {
		return nil
	}

	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read locale directory: %w", err)
	}

	bundles := make(map[string]*Bundle)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		switch ext {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		tag := strings.TrimSuffix(entry.Name(), ext)

		data, err := os.ReadFile(filepath.Join(p.dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read bundle %s: %w", entry.Name(), err)
		}

		bundle, err := ParseBundle(tag, ext, data)
		if err != nil {
			return err
		}
		bundles[tag] = bundle
	}

	p.mu.Lock()
	p.bundles = bundles
	p.mu.Unlock()
	return nil
}

// Locale returns the currently selected locale tag.
func (p *Provider) Locale() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Tags returns the selectable locale tags: every loaded bundle plus the
// built-in default, sorted.
func (p *Provider) Tags() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	seen := map[string]bool{DefaultTag: true}
	for tag := range p.bundles {
		seen[tag] = true
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// SetLocale switches the active locale and notifies subscribers. Setting
// the already-active tag is a no-op. Returns ErrUnknownLocale when no
// bundle exists for the tag and it is not the built-in default.
func (p *Provider) SetLocale(tag string) error {
	p.mu.Lock()
	if tag == p.current {
		p.mu.Unlock()
		return nil
	}
	if _, ok := p.bundles[tag]; !ok && tag != DefaultTag {
		p.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownLocale, tag)
	}
	p.current = tag
	subscribers := p.subscribers
	p.mu.Unlock()

	for _, notify := range subscribers {
		notify(tag)
	}
	return nil
}

// Subscribe registers a callback invoked after every locale change.
// Callbacks run synchronously on the SetLocale caller's goroutine.
func (p *Provider) Subscribe(fn func(tag string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// T resolves a dotted key for the active locale, substituting any
// {{name}} placeholders from repl. Resolution order: active bundle,
// built-in defaults, then the key itself echoed back.
func (p *Provider) T(key string, repl map[string]any) string {
	p.mu.RLock()
	bundle := p.bundles[p.current]
	p.mu.RUnlock()

	if bundle != nil {
		if s, ok := bundle.Lookup(key); ok {
			return substitute(s, repl)
		}
	}
	if s, ok := lookup(builtinDefaults, key); ok {
		return substitute(s, repl)
	}
	return key
}
