// Package locale supplies the translated strings the tutor surface depends
// on: the system instruction, the opening greeting, and the substitute text
// for failed replies. Bundles are nested key/value maps loaded from a
// directory of <tag>.json or <tag>.yaml files and addressed with dotted
// keys ("tutor.greeting"). Built-in English strings back every lookup, so
// the surface works with no bundle files at all.
package locale

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bundle holds the translations for one locale tag.
type Bundle struct {
	tag     string
	entries map[string]any
}

// ParseBundle decodes bundle data in the format implied by ext (".json",
// ".yaml" or ".yml").
func ParseBundle(tag, ext string, data []byte) (*Bundle, error) {
	entries := make(map[string]any)

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse %s bundle: %w", tag, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse %s bundle: %w", tag, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}

	return &Bundle{tag: tag, entries: entries}, nil
}

// Tag returns the bundle's locale tag.
func (b *Bundle) Tag() string {
	return b.tag
}

// Lookup resolves a dotted key against the bundle. The second return is
// false when the key is missing or does not resolve to a string.
func (b *Bundle) Lookup(key string) (string, bool) {
	return lookup(b.entries, key)
}

func lookup(entries map[string]any, key string) (string, bool) {
	node := any(entries)
	for _, k := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		node, ok = m[k]
		if !ok {
			return "", false
		}
	}

	s, ok := node.(string)
	return s, ok
}

// substitute replaces {{name}} placeholders with values from repl.
func substitute(s string, repl map[string]any) string {
	for name, value := range repl {
		s = strings.ReplaceAll(s, "{{"+name+"}}", fmt.Sprint(value))
	}
	return s
}
