// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/ajroetker/go-matbench/bench/config"
	"github.com/ajroetker/go-matbench/mat"
	"github.com/ajroetker/go-matbench/mat/contrib/matmul"
)

// verifyTolerance bounds the relative error accepted by verify mode.
const verifyTolerance = 1e-9

// ErrVerification is returned when a strategy's product disagrees with the sequential baseline.
var ErrVerification = errors.New("bench: result differs from sequential baseline")

// Runner executes benchmark cases.
type Runner struct {
	cfg     config.Config
	log     hclog.Logger
	sink    ResultSink
	metrics *Metrics
	now     func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithSink persists every completed case to s.
func WithSink(s ResultSink) RunnerOption {
	return func(r *Runner) {
		r.sink = s
	}
}

// WithMetrics records iteration timings and failures in m.
func WithMetrics(m *Metrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithClock replaces time.Now for measurements.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a runner for cfg. A nil logger discards output.
func NewRunner(cfg config.Config, log hclog.Logger, opts ...RunnerOption) *Runner {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	r := &Runner{cfg: cfg, log: log, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Measure runs fn cfg.Warmup times untimed, then cfg.Iterations times timed.
// If any call fails, Measure stops and returns the error without a result.
// ctx is checked between calls only; a running call is never interrupted.
func (r *Runner) Measure(ctx context.Context, c Case, fn func() error) (Result, error) {
	log := r.log.With("strategy", c.Strategy, "workers", c.Workers)
	log.Info("running case", "warmup", r.cfg.Warmup, "iterations", r.cfg.Iterations)

	for i := range r.cfg.Warmup {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := fn(); err != nil {
			r.failure(c)
			return Result{}, fmt.Errorf("%s: warmup %d: %w", c, i+1, err)
		}
	}

	// Start the timed loop from a clean heap.
	runtime.GC()

	samples := make([]Sample, 0, r.cfg.Iterations)
	for i := range r.cfg.Iterations {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		start := r.now()
		err := fn()
		elapsed := r.now().Sub(start)
		if err != nil {
			r.failure(c)
			return Result{}, fmt.Errorf("%s: iteration %d: %w", c, i+1, err)
		}
		samples = append(samples, Sample{Iteration: i + 1, Elapsed: elapsed})
		if r.metrics != nil {
			r.metrics.Observe(c, elapsed)
		}
		log.Debug("iteration", "n", i+1, "seconds", fmt.Sprintf("%.3f", elapsed.Seconds()))
	}

	res := Summarize(c, samples)
	log.Info("case complete",
		"mean", fmt.Sprintf("%.3fs", res.Mean),
		"stddev", fmt.Sprintf("%.3fs", res.StdDev))
	return res, nil
}

func (r *Runner) failure(c Case) {
	if r.metrics != nil {
		r.metrics.Failure(c)
	}
}

// Run times every case of Plan(cfg) on a and b, writing each result to the
// sink as soon as it completes. It stops at the first failing case.
func (r *Runner) Run(ctx context.Context, a, b *mat.Dense) ([]Result, error) {
	if _, err := mat.SameSize(a, b); err != nil {
		return nil, err
	}
	if r.metrics != nil {
		r.metrics.SetSize(a.Size())
	}

	var baseline *mat.Dense
	if r.cfg.Verify {
		var err error
		if baseline, err = matmul.NewSequential().Multiply(a, b); err != nil {
			return nil, fmt.Errorf("compute baseline: %w", err)
		}
	}

	cases := Plan(r.cfg)
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		m, err := matmul.New(c.Strategy, c.Workers, matmul.WithThreshold(r.cfg.Threshold))
		if err != nil {
			return results, fmt.Errorf("%s: %w", c, err)
		}

		if baseline != nil && c.Strategy != matmul.NameSequential {
			if err := r.verifyCase(c, m, a, b, baseline); err != nil {
				return results, err
			}
		}

		res, err := r.Measure(ctx, c, func() error {
			_, err := m.Multiply(a, b)
			return err
		})
		if err != nil {
			r.log.Error("case failed", "case", c.String(), "error", err)
			return results, err
		}

		if r.sink != nil {
			if err := r.sink.WriteResult(res); err != nil {
				return results, fmt.Errorf("write %s: %w", c, err)
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// verifyCase checks m against baseline, counting a mismatch as a failure of c.
func (r *Runner) verifyCase(c Case, m matmul.Multiplier, a, b, baseline *mat.Dense) error {
	if err := verify(m, a, b, baseline); err != nil {
		r.failure(c)
		r.log.Error("verification failed", "case", c.String(), "error", err)
		return fmt.Errorf("%s: %w", c, err)
	}
	r.log.Debug("verified against baseline", "case", c.String())
	return nil
}

// verify multiplies once with m and compares the product with baseline.
func verify(m matmul.Multiplier, a, b, baseline *mat.Dense) error {
	c, err := m.Multiply(a, b)
	if err != nil {
		return err
	}
	diff, err := mat.MaxRelDiff(baseline, c)
	if err != nil {
		return err
	}
	// Negated so that a NaN difference fails too.
	if !(diff < verifyTolerance) {
		return fmt.Errorf("%w: max relative error %g", ErrVerification, diff)
	}
	return nil
}
