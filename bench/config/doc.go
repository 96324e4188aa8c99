// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package config defines the benchmark configuration and loads it with koanf.
//
// Sources are applied in increasing priority:
//  1. Defaults (the reference run: 1024×1024, workers 2..12, 2 warmups, 5 iterations)
//  2. YAML file given by --config
//  3. Environment variables prefixed MATBENCH_ (MATBENCH_RESULTS_DIR -> results.dir)
//  4. Command-line flags
//
// Example file:
//
//	size: 512
//	workers: [2, 4, 8]
//	iterations: 10
//	results:
//	  dir: out
//	  metrics: true
//	log:
//	  level: debug
package config
