// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/ajroetker/go-matbench/mat/contrib/matmul"
)

// ErrNoBaseline is returned by Analyze when results hold no usable sequential case.
var ErrNoBaseline = errors.New("bench: no sequential baseline to compare against")

// CaseAnalysis compares one parallel case with the sequential baseline.
type CaseAnalysis struct {
	Case
	Mean   float64
	StdDev float64
	// Speedup is the sequential mean divided by this case's mean.
	Speedup float64
	// Efficiency is Speedup per worker; 1 is linear scaling.
	Efficiency float64
}

// Analysis is the speedup report of a run.
type Analysis struct {
	Sequential Result
	// Cases are grouped by strategy in matmul.Names order, workers ascending.
	Cases []CaseAnalysis
}

// Analyze computes speedup and efficiency of every parallel result against
// the sequential one.
func Analyze(results []Result) (Analysis, error) {
	seq, ok := lo.Find(results, func(r Result) bool {
		return r.Strategy == matmul.NameSequential
	})
	if !ok || seq.Mean <= 0 {
		return Analysis{}, ErrNoBaseline
	}

	parallel := lo.Filter(results, func(r Result, _ int) bool {
		return r.Strategy != matmul.NameSequential
	})
	order := matmul.Names()
	slices.SortStableFunc(parallel, func(x, y Result) int {
		if d := slices.Index(order, x.Strategy) - slices.Index(order, y.Strategy); d != 0 {
			return d
		}
		return x.Workers - y.Workers
	})

	cases := lo.Map(parallel, func(r Result, _ int) CaseAnalysis {
		speedup := seq.Mean / r.Mean
		return CaseAnalysis{
			Case:       r.Case,
			Mean:       r.Mean,
			StdDev:     r.StdDev,
			Speedup:    speedup,
			Efficiency: speedup / float64(r.Workers),
		}
	})
	return Analysis{Sequential: seq, Cases: cases}, nil
}

// FormatAnalysis renders a as the plain text performance report.
func FormatAnalysis(out io.Writer, a Analysis) {
	fmt.Fprintln(out, "MATRIX MULTIPLICATION PERFORMANCE ANALYSIS")
	fmt.Fprintln(out, "=======================================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Sequential Implementation")
	fmt.Fprintln(out, "------------------------")
	fmt.Fprintf(out, "Average time: %.3f ± %.3f seconds\n", a.Sequential.Mean, a.Sequential.StdDev)
	fmt.Fprintln(out)

	var strategy string
	for _, c := range a.Cases {
		if c.Strategy != strategy {
			strategy = c.Strategy
			fmt.Fprintf(out, "\n%s Implementation\n", strings.ToUpper(strategy))
			fmt.Fprintln(out, strings.Repeat("-", len(strategy)+16))
		}
		fmt.Fprintf(out, "\nThreads: %d\n", c.Workers)
		fmt.Fprintf(out, "  Time: %.3f ± %.3f seconds\n", c.Mean, c.StdDev)
		fmt.Fprintf(out, "  Speedup: %.2fx\n", c.Speedup)
		fmt.Fprintf(out, "  Efficiency: %.2f\n", c.Efficiency)
	}
}
