// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"math"
	"time"

	"github.com/samber/lo"
)

// Sample is the elapsed time of one timed iteration. Iteration is 1-based.
type Sample struct {
	Iteration int
	Elapsed   time.Duration
}

// Result holds the samples of one case and their summary, in seconds.
type Result struct {
	Case
	Samples []Sample
	Mean    float64
	StdDev  float64
}

// Seconds returns the elapsed time of each sample in seconds.
func (r Result) Seconds() []float64 {
	return lo.Map(r.Samples, func(s Sample, _ int) float64 {
		return s.Elapsed.Seconds()
	})
}

// Summarize computes the mean and population standard deviation of samples.
func Summarize(c Case, samples []Sample) Result {
	res := Result{Case: c, Samples: samples}
	xs := res.Seconds()
	res.Mean = Mean(xs)
	res.StdDev = StdDev(xs, res.Mean)
	return res
}

// Mean returns the arithmetic mean of xs, or 0 for no values.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return lo.Sum(xs) / float64(len(xs))
}

// StdDev returns the population standard deviation of xs around mean:
// sqrt(sum((x-mean)^2) / N).
func StdDev(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	squares := lo.Map(xs, func(x float64, _ int) float64 {
		return (x - mean) * (x - mean)
	})
	return math.Sqrt(lo.Sum(squares) / float64(len(xs)))
}
