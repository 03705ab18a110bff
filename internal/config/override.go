package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Override returns a copy of base with one field replaced. The field is a
// dotted yaml path such as "physics.gravity"; unknown paths and values that
// do not fit the field's type are rejected.
func Override(base *Config, field string, value any) (*Config, error) {
	parts := strings.Split(field, ".")
	if field == "" || slices.Contains(parts, "") {
		return nil, fmt.Errorf("config: bad field path %q", field)
	}

	var doc any = value
	for i := len(parts) - 1; i >= 0; i-- {
		doc = map[string]any{parts[i]: doc}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, err
	}

	cfg := base.Clone()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", field, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply overrides fields in sorted path order.
func Apply(base *Config, set map[string]any) (*Config, error) {
	cfg := base
	for _, field := range slices.Sorted(maps.Keys(set)) {
		next, err := Override(cfg, field, set[field])
		if err != nil {
			return nil, err
		}
		cfg = next
	}
	if cfg == base {
		cfg = base.Clone()
	}
	return cfg, nil
}
