// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-matbench/bench/config"
	"github.com/ajroetker/go-matbench/mat"
	"github.com/ajroetker/go-matbench/mat/contrib/matmul"
)

// stepClock returns a clock advancing by step on every reading.
func stepClock(step time.Duration) func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

type memorySink struct {
	results []Result
	err     error
}

func (s *memorySink) WriteResult(res Result) error {
	if s.err != nil {
		return s.err
	}
	s.results = append(s.results, res)
	return nil
}

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Size = 24
	cfg.Workers = []int{2, 3}
	cfg.Iterations = 3
	cfg.Threshold = 4
	return cfg
}

func TestMeasureWarmupAndIterations(t *testing.T) {
	cfg := smallConfig()
	r := NewRunner(cfg, nil, WithClock(stepClock(250*time.Millisecond)))

	calls := 0
	res, err := r.Measure(context.Background(), Case{"executor", 2}, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, cfg.Warmup+cfg.Iterations, calls)

	require.Len(t, res.Samples, 3)
	for i, s := range res.Samples {
		require.Equal(t, i+1, s.Iteration)
		require.Equal(t, 250*time.Millisecond, s.Elapsed)
	}
	require.Equal(t, 0.25, res.Mean)
	require.Zero(t, res.StdDev)
}

func TestMeasureFailureReportsNoTiming(t *testing.T) {
	errBoom := errors.New("boom")
	m := NewMetrics()
	r := NewRunner(smallConfig(), nil, WithMetrics(m))

	calls := 0
	res, err := r.Measure(context.Background(), Case{"forkjoin", 3}, func() error {
		calls++
		if calls == 4 {
			return errBoom
		}
		return nil
	})
	require.ErrorIs(t, err, errBoom)
	require.Contains(t, err.Error(), "forkjoin/3: iteration 2")
	require.Empty(t, res.Samples)
	require.Equal(t, 4, calls, "failed iterations are not retried")
	require.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("forkjoin", "3")))
}

func TestMeasureWarmupFailure(t *testing.T) {
	r := NewRunner(smallConfig(), nil)
	_, err := r.Measure(context.Background(), Case{"executor", 2}, func() error {
		return errors.New("warmup broke")
	})
	require.ErrorContains(t, err, "warmup 1")
}

func TestMeasureStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(smallConfig(), nil)

	calls := 0
	_, err := r.Measure(ctx, Case{"executor", 2}, func() error {
		calls++
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestRunWritesEveryCase(t *testing.T) {
	cfg := smallConfig()
	cfg.Verify = true

	a, err := mat.Generate(cfg.Size)
	require.NoError(t, err)
	b, err := mat.Generate(cfg.Size)
	require.NoError(t, err)

	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)
	m := NewMetrics()

	var logs bytes.Buffer
	log := NewLogger(config.LogConfig{Level: "debug", Format: "text"}, &logs)

	results, err := NewRunner(cfg, log, WithSink(w), WithMetrics(m)).Run(context.Background(), a, b)
	require.NoError(t, err)
	require.Len(t, results, 5)
	for i, c := range Plan(cfg) {
		require.Equal(t, c, results[i].Case)
		require.Len(t, results[i].Samples, cfg.Iterations)
	}

	data, err := os.ReadFile(filepath.Join(dir, TimesFile))
	require.NoError(t, err)
	// header + 5 cases * (3 rows + summary)
	require.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 1+5*4)

	require.Equal(t, 5, testutil.CollectAndCount(m.duration))
	require.Equal(t, float64(cfg.Size), testutil.ToFloat64(m.size))
	require.Contains(t, logs.String(), "verified against baseline")
	require.Contains(t, logs.String(), "case complete")
}

func TestRunStopsOnSinkError(t *testing.T) {
	cfg := smallConfig()
	a, _ := mat.Generate(cfg.Size)
	b, _ := mat.Generate(cfg.Size)

	sink := &memorySink{err: errors.New("disk full")}
	results, err := NewRunner(cfg, hclog.NewNullLogger(), WithSink(sink)).Run(context.Background(), a, b)
	require.ErrorContains(t, err, "disk full")
	require.Empty(t, results)
}

func TestRunRejectsMismatchedInputs(t *testing.T) {
	a, _ := mat.Generate(4)
	b, _ := mat.Generate(5)
	_, err := NewRunner(smallConfig(), nil).Run(context.Background(), a, b)
	require.ErrorIs(t, err, mat.ErrDimensionMismatch)
}

func TestVerifyDetectsMismatch(t *testing.T) {
	a, _ := mat.Generate(8)
	b, _ := mat.Generate(8)
	wrong, _ := mat.NewDense(8)

	err := verify(fakeMultiplier{}, a, b, wrong)
	require.ErrorIs(t, err, ErrVerification)
}

func TestVerifyRejectsNaN(t *testing.T) {
	a, _ := mat.Generate(8)
	b, _ := mat.Generate(8)
	baseline, err := matmul.NewSequential().Multiply(a, b)
	require.NoError(t, err)

	err = verify(nanMultiplier{matmul.NewSequential()}, a, b, baseline)
	require.ErrorIs(t, err, ErrVerification)
}

func TestRunVerifyFailsCase(t *testing.T) {
	cfg := smallConfig()
	cfg.Verify = true
	a, _ := mat.Generate(cfg.Size)
	b, _ := mat.Generate(cfg.Size)

	m := NewMetrics()
	r := NewRunner(cfg, nil, WithMetrics(m))
	baseline, err := matmul.NewSequential().Multiply(a, b)
	require.NoError(t, err)

	c := Case{matmul.NameExecutor, 2}
	err = r.verifyCase(c, nanMultiplier{matmul.NewSequential()}, a, b, baseline)
	require.ErrorIs(t, err, ErrVerification)
	require.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues(matmul.NameExecutor, "2")))
}

// nanMultiplier corrupts one cell of an otherwise correct product.
type nanMultiplier struct {
	matmul.Multiplier
}

func (n nanMultiplier) Multiply(a, b *mat.Dense) (*mat.Dense, error) {
	c, err := n.Multiplier.Multiply(a, b)
	if err != nil {
		return nil, err
	}
	c.Set(0, 0, math.NaN())
	return c, nil
}

// fakeMultiplier returns the identity matrix regardless of its inputs.
type fakeMultiplier struct{}

func (fakeMultiplier) Multiply(a, _ *mat.Dense) (*mat.Dense, error) {
	c, err := mat.NewDense(a.Size())
	if err != nil {
		return nil, err
	}
	for i := range a.Size() {
		c.Set(i, i, 1)
	}
	return c, nil
}

func (fakeMultiplier) Name() string { return "fake" }
func (fakeMultiplier) Workers() int { return 1 }
