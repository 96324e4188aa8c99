// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-matbench/bench"
)

func TestRunEndToEnd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	err := app().Run([]string{
		"matbench",
		"--size", "16",
		"--workers", "2", "--workers", "3",
		"--warmup", "1",
		"--iterations", "2",
		"--threshold", "4",
		"--results-dir", dir,
		"--metrics",
		"--verify",
		"--log-level", "error",
	})
	require.NoError(t, err)

	times, err := os.ReadFile(filepath.Join(dir, bench.TimesFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(times)), "\n")
	require.Equal(t, "implementation,threads,iteration,time", lines[0])
	// sequential + 2 worker counts × 2 strategies, each 2 rows + summary
	require.Len(t, lines, 1+5*3)
	require.True(t, strings.HasPrefix(lines[1], "sequential,1,1,"))
	require.True(t, strings.HasPrefix(lines[len(lines)-1], "# forkjoin with 3 threads - Mean: "))

	info, err := os.ReadFile(filepath.Join(dir, bench.SystemInfoFile))
	require.NoError(t, err)
	require.Contains(t, string(info), "Matrix Size: 16x16")

	_, err = os.Stat(filepath.Join(dir, bench.MetricsFile))
	require.NoError(t, err)

	report, err := os.ReadFile(filepath.Join(dir, bench.AnalysisFile))
	require.NoError(t, err)
	require.Contains(t, string(report), "EXECUTOR Implementation")
	require.Contains(t, string(report), "FORKJOIN Implementation")
	require.Equal(t, 4, strings.Count(string(report), "Speedup: "))
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	err := app().Run([]string{"matbench", "--size", "0", "--results-dir", t.TempDir()})
	require.ErrorContains(t, err, "load config")
}
