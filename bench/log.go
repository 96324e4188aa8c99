// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/ajroetker/go-matbench/bench/config"
)

// NewLogger builds the application logger from cfg, writing to w.
func NewLogger(cfg config.LogConfig, w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "matbench",
		Level:      hclog.LevelFromString(cfg.Level),
		Output:     w,
		JSONFormat: cfg.Format == "json",
	})
}
