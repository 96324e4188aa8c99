// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
)

// DefaultEnvPrefix is the environment variable prefix.
const DefaultEnvPrefix = "MATBENCH_"

// listKeys hold lists; their environment values are comma-separated.
var listKeys = []string{"workers"}

// Loader layers configuration sources with koanf.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	overrides map[string]any
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the YAML file path. An empty path skips the file.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// WithOverrides sets values, keyed like the YAML file (e.g. "results.dir"),
// that take precedence over every other source. Used for command-line flags.
func WithOverrides(values map[string]any) Option {
	return func(l *Loader) {
		l.overrides = values
	}
}

// NewLoader creates a loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load applies defaults, file, environment and overrides in that order,
// unmarshals the result and validates it.
func (l *Loader) Load() (Config, error) {
	var cfg Config

	if err := l.k.Load(mapProvider(defaultMap()), nil); err != nil {
		return cfg, fmt.Errorf("load defaults: %w", err)
	}

	if l.filePath != "" {
		if err := l.k.Load(file.Provider(l.filePath), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("load file %s: %w", l.filePath, err)
		}
	}

	// MATBENCH_RESULTS_DIR -> results.dir; MATBENCH_WORKERS=2,4 -> workers: [2 4]
	envTransformer := func(key, value string) (string, any) {
		key = strings.TrimPrefix(key, l.envPrefix)
		key = strings.ReplaceAll(strings.ToLower(key), "_", ".")
		if lo.Contains(listKeys, key) {
			return key, splitList(value)
		}
		return key, value
	}
	if err := l.k.Load(env.ProviderWithValue(l.envPrefix, ".", envTransformer), nil); err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}

	if len(l.overrides) > 0 {
		if err := l.k.Load(mapProvider(l.overrides), nil); err != nil {
			return cfg, fmt.Errorf("load overrides: %w", err)
		}
	}

	if err := l.k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// splitList turns "2, 4,,6" into ["2" "4" "6"].
func splitList(value string) []string {
	parts := lo.Map(strings.Split(value, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(parts)
}

// Keys returns every key seen across the loaded sources.
func (l *Loader) Keys() []string {
	return l.k.Keys()
}

// Load is shorthand for NewLoader(opts...).Load().
func Load(opts ...Option) (Config, error) {
	return NewLoader(opts...).Load()
}

// ErrReadBytesNotSupported is returned when ReadBytes is called on a map provider.
var ErrReadBytesNotSupported = errors.New("config: ReadBytes not supported by map provider, use Read() instead")

// mapProvider is a koanf provider over a map of dotted keys.
type mapProvider map[string]any

// ReadBytes is not supported; koanf calls Read for parser-less providers.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the map unflattened into nested sections.
func (m mapProvider) Read() (map[string]any, error) {
	return unflatten(m), nil
}

// unflatten turns {"results.dir": x} into {"results": {"dir": x}}.
func unflatten(flat map[string]any) map[string]any {
	out := make(map[string]any, len(flat))
	for key, v := range flat {
		parts := strings.Split(key, ".")
		cur := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := cur[p].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[p] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = v
	}
	return out
}
