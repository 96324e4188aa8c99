// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// File names inside the results directory.
const (
	TimesFile      = "times.txt"
	SystemInfoFile = "system_info.txt"
	MetricsFile    = "metrics.prom"
	AnalysisFile   = "analysis_report.txt"

	timesHeader = "implementation,threads,iteration,time"
)

// ResultSink persists case results.
type ResultSink interface {
	WriteResult(res Result) error
}

// Writer writes result files into one directory.
type Writer struct {
	dir string
}

var _ ResultSink = (*Writer)(nil)

// NewWriter creates dir if needed and starts a fresh times file containing only the header.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	w := &Writer{dir: dir}
	if err := os.WriteFile(w.Path(TimesFile), []byte(timesHeader+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init %s: %w", TimesFile, err)
	}
	return w, nil
}

// Dir returns the results directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the path of name inside the results directory.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// WriteResult appends the rows and summary line of res to the times file.
// The block is rendered in memory and appended with a single write, so a
// failure never interleaves with rows already on disk.
func (w *Writer) WriteResult(res Result) error {
	var buf bytes.Buffer
	FormatResult(&buf, res)

	// No O_CREATE: a missing times file means the header was lost.
	f, err := os.OpenFile(w.Path(TimesFile), os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", TimesFile, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("append %s: %w", TimesFile, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync %s: %w", TimesFile, err)
	}
	return f.Close()
}

// FormatResult renders one CSV row per sample followed by the summary comment.
func FormatResult(out io.Writer, res Result) {
	for _, s := range res.Samples {
		fmt.Fprintf(out, "%s,%d,%d,%.3f\n", res.Strategy, res.Workers, s.Iteration, s.Elapsed.Seconds())
	}
	fmt.Fprintf(out, "# %s with %d threads - Mean: %.3f s, StdDev: %.3f s\n",
		res.Strategy, res.Workers, res.Mean, res.StdDev)
}

// WriteSystemInfo replaces the system info file with info.
func (w *Writer) WriteSystemInfo(info SystemInfo) error {
	var buf bytes.Buffer
	FormatSystemInfo(&buf, info)
	if err := os.WriteFile(w.Path(SystemInfoFile), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", SystemInfoFile, err)
	}
	return nil
}

// WriteAnalysis replaces the analysis report with a.
func (w *Writer) WriteAnalysis(a Analysis) error {
	var buf bytes.Buffer
	FormatAnalysis(&buf, a)
	if err := os.WriteFile(w.Path(AnalysisFile), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", AnalysisFile, err)
	}
	return nil
}

// FormatSystemInfo renders info as the human-readable system info report.
func FormatSystemInfo(out io.Writer, info SystemInfo) {
	fmt.Fprintln(out, "System Information")
	fmt.Fprintln(out, "----------------")
	fmt.Fprintf(out, "Run ID: %s\n", info.RunID)
	fmt.Fprintf(out, "Version: %s\n", info.Version)
	fmt.Fprintf(out, "Test Date: %s\n", info.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(out, "Matrix Size: %dx%d\n", info.Size, info.Size)
	fmt.Fprintf(out, "Available Processors: %d\n", info.NumCPU)
	fmt.Fprintf(out, "GOMAXPROCS: %d\n", info.GOMAXPROCS)
	fmt.Fprintf(out, "Go Version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "OS: %s %s\n", info.OS, info.Arch)
	if info.HasMemoryLimit() {
		fmt.Fprintf(out, "Memory Limit: %d MB\n", info.MemoryLimit/(1024*1024))
	} else {
		fmt.Fprintln(out, "Memory Limit: unlimited")
	}
	features := "none"
	if len(info.CPUFeatures) > 0 {
		features = strings.Join(info.CPUFeatures, " ")
	}
	fmt.Fprintf(out, "CPU Features: %s\n", features)
}
