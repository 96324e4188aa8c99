// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/ajroetker/go-matbench/mat"
	"github.com/ajroetker/go-matbench/mat/contrib/matmul"
)

// ErrInvalid is returned by Validate for an unusable configuration.
var ErrInvalid = errors.New("config: invalid")

// Config is the full benchmark configuration.
type Config struct {
	// Size is the matrix dimension N.
	Size int `koanf:"size"`
	// Workers lists the worker counts applied to every parallel strategy.
	Workers []int `koanf:"workers"`
	// Warmup is the number of untimed calls per case.
	Warmup int `koanf:"warmup"`
	// Iterations is the number of timed calls per case.
	Iterations int `koanf:"iterations"`
	// Threshold is the fork/join split threshold in rows.
	Threshold int `koanf:"threshold"`
	// Seed feeds the matrix generator.
	Seed int64 `koanf:"seed"`
	// Verify checks each parallel strategy against the sequential product before timing it.
	Verify bool `koanf:"verify"`

	Results ResultsConfig `koanf:"results"`
	Log     LogConfig     `koanf:"log"`
}

// ResultsConfig controls where results are written.
type ResultsConfig struct {
	Dir string `koanf:"dir"`
	// Metrics writes a Prometheus text file next to the timing results.
	Metrics bool `koanf:"metrics"`
}

// LogConfig controls the hclog logger.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is text or json.
	Format string `koanf:"format"`
}

// Default returns the configuration of the reference run.
func Default() Config {
	return Config{
		Size:       1024,
		Workers:    []int{2, 4, 6, 8, 10, 12},
		Warmup:     2,
		Iterations: 5,
		Threshold:  matmul.DefaultThreshold,
		Seed:       mat.DefaultSeed,
		Results: ResultsConfig{
			Dir: "results",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// defaultMap is Default flattened to koanf keys.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"size":            d.Size,
		"workers":         d.Workers,
		"warmup":          d.Warmup,
		"iterations":      d.Iterations,
		"threshold":       d.Threshold,
		"seed":            d.Seed,
		"verify":          d.Verify,
		"results.dir":     d.Results.Dir,
		"results.metrics": d.Results.Metrics,
		"log.level":       d.Log.Level,
		"log.format":      d.Log.Format,
	}
}

var (
	validLevels  = []string{"trace", "debug", "info", "warn", "error"}
	validFormats = []string{"text", "json"}
)

// Validate checks c and normalizes it in place: worker counts are
// de-duplicated keeping their first occurrence, level and format lowercased.
func (c *Config) Validate() error {
	var problems []string

	if c.Size < 1 {
		problems = append(problems, fmt.Sprintf("size must be >= 1, got %d", c.Size))
	}
	if len(c.Workers) == 0 {
		problems = append(problems, "workers must list at least one count")
	}
	if bad := lo.Filter(c.Workers, func(w int, _ int) bool { return w < 1 }); len(bad) > 0 {
		problems = append(problems, fmt.Sprintf("worker counts must be >= 1, got %v", bad))
	}
	if c.Warmup < 0 {
		problems = append(problems, fmt.Sprintf("warmup must be >= 0, got %d", c.Warmup))
	}
	if c.Iterations < 1 {
		problems = append(problems, fmt.Sprintf("iterations must be >= 1, got %d", c.Iterations))
	}
	if c.Threshold < 1 {
		problems = append(problems, fmt.Sprintf("threshold must be >= 1, got %d", c.Threshold))
	}
	if c.Results.Dir == "" {
		problems = append(problems, "results.dir must not be empty")
	}

	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
	if !lo.Contains(validLevels, c.Log.Level) {
		problems = append(problems, fmt.Sprintf("log.level must be one of %v, got %q", validLevels, c.Log.Level))
	}
	if !lo.Contains(validFormats, c.Log.Format) {
		problems = append(problems, fmt.Sprintf("log.format must be one of %v, got %q", validFormats, c.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}

	c.Workers = lo.Uniq(c.Workers)
	return nil
}
