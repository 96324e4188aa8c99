// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"math"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sys/cpu"
)

// SystemInfo is the environment metadata recorded once per run.
type SystemInfo struct {
	RunID       string
	Version     string
	Timestamp   time.Time
	Size        int
	NumCPU      int
	GOMAXPROCS  int
	GoVersion   string
	OS          string
	Arch        string
	MemoryLimit int64 // bytes; math.MaxInt64 when no limit is set
	CPUFeatures []string
}

// CollectSystemInfo captures the current process environment for a run on
// size×size matrices.
func CollectSystemInfo(size int, version string, now time.Time) SystemInfo {
	return SystemInfo{
		RunID:      ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Version:    version,
		Timestamp:  now,
		Size:       size,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		// A negative input only queries the limit.
		MemoryLimit: debug.SetMemoryLimit(-1),
		CPUFeatures: cpuFeatures(),
	}
}

// HasMemoryLimit reports whether a soft memory limit is configured.
func (s SystemInfo) HasMemoryLimit() bool {
	return s.MemoryLimit != math.MaxInt64
}

// cpuFeatures lists the SIMD-related features relevant to dense kernels.
func cpuFeatures() []string {
	var feats []string
	add := func(ok bool, name string) {
		if ok {
			feats = append(feats, name)
		}
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE41, "sse4.1")
		add(cpu.X86.HasSSE42, "sse4.2")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasFMA, "fma")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasFP, "fp")
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasSVE, "sve")
		add(cpu.ARM64.HasSVE2, "sve2")
	}
	return feats
}
