// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleResult() Result {
	return Summarize(Case{Strategy: "executor", Workers: 4}, []Sample{
		{Iteration: 1, Elapsed: 1500 * time.Millisecond},
		{Iteration: 2, Elapsed: 1250 * time.Millisecond},
	})
}

func TestFormatResult(t *testing.T) {
	var buf bytes.Buffer
	FormatResult(&buf, sampleResult())

	want := "executor,4,1,1.500\n" +
		"executor,4,2,1.250\n" +
		"# executor with 4 threads - Mean: 1.375 s, StdDev: 0.125 s\n"
	require.Equal(t, want, buf.String())
}

func TestWriterAppendsAfterHeader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	w, err := NewWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteResult(sampleResult()))
	require.NoError(t, w.WriteResult(Summarize(Case{"sequential", 1}, []Sample{{1, time.Second}})))

	data, err := os.ReadFile(filepath.Join(dir, TimesFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Equal(t, []string{
		"implementation,threads,iteration,time",
		"executor,4,1,1.500",
		"executor,4,2,1.250",
		"# executor with 4 threads - Mean: 1.375 s, StdDev: 0.125 s",
		"sequential,1,1,1.000",
		"# sequential with 1 threads - Mean: 1.000 s, StdDev: 0.000 s",
	}, lines)
}

func TestNewWriterTruncates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TimesFile), []byte("stale\n"), 0o644))

	_, err := NewWriter(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, TimesFile))
	require.NoError(t, err)
	require.Equal(t, timesHeader+"\n", string(data))
}

func TestWriteResultFailsLoudly(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(w.Path(TimesFile)))

	require.Error(t, w.WriteResult(sampleResult()))
	_, err = os.Stat(w.Path(TimesFile))
	require.True(t, os.IsNotExist(err), "a lost times file must not be recreated headerless")
}

func TestWriteSystemInfo(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	info := SystemInfo{
		RunID:       "01JABCDEF",
		Version:     "dev",
		Timestamp:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Size:        1024,
		NumCPU:      8,
		GOMAXPROCS:  8,
		GoVersion:   "go1.24.0",
		OS:          "linux",
		Arch:        "amd64",
		MemoryLimit: math.MaxInt64,
		CPUFeatures: []string{"avx2", "fma"},
	}
	require.NoError(t, w.WriteSystemInfo(info))

	data, err := os.ReadFile(w.Path(SystemInfoFile))
	require.NoError(t, err)
	text := string(data)
	require.Contains(t, text, "Run ID: 01JABCDEF\n")
	require.Contains(t, text, "Test Date: 2026-01-02T03:04:05Z\n")
	require.Contains(t, text, "Matrix Size: 1024x1024\n")
	require.Contains(t, text, "Available Processors: 8\n")
	require.Contains(t, text, "OS: linux amd64\n")
	require.Contains(t, text, "Memory Limit: unlimited\n")
	require.Contains(t, text, "CPU Features: avx2 fma\n")

	info.MemoryLimit = 512 << 20
	info.CPUFeatures = nil
	var buf bytes.Buffer
	FormatSystemInfo(&buf, info)
	require.Contains(t, buf.String(), "Memory Limit: 512 MB\n")
	require.Contains(t, buf.String(), "CPU Features: none\n")
}
