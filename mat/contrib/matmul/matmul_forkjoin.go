// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"fmt"

	"github.com/ajroetker/go-matbench/mat"
)

// DefaultThreshold is the row count at or below which ForkJoin computes a
// range directly instead of splitting it.
const DefaultThreshold = 64

// ForkJoin multiplies by recursively halving the row range and running the
// halves as fork/join tasks on a WorkersPool.
type ForkJoin struct {
	parallelism int
	threshold   int
	kernel      kernelFunc
}

// NewForkJoin returns the divide-and-conquer strategy bounded by parallelism.
func NewForkJoin(parallelism int, opts ...Option) (*ForkJoin, error) {
	if parallelism < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, parallelism)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.threshold < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreshold, o.threshold)
	}
	return &ForkJoin{parallelism: parallelism, threshold: o.threshold, kernel: mulRows}, nil
}

// Multiply implements Multiplier. The pool lives for this call only and is
// drained before Multiply returns.
func (f *ForkJoin) Multiply(a, b *mat.Dense) (*mat.Dense, error) {
	c, err := prepare(a, b)
	if err != nil {
		return nil, err
	}

	pool := NewWorkersPoolWithMax(f.parallelism)
	defer pool.Wait()

	if err := f.compute(pool, a, b, c, Range{0, c.Size()}); err != nil {
		return nil, err
	}
	return c, nil
}

// compute is one task: rows of r directly, or a split into two joined subtasks.
func (f *ForkJoin) compute(pool *WorkersPool, a, b, c *mat.Dense, r Range) error {
	if r.Len() <= f.threshold {
		return runTask(f.kernel, a, b, c, r)
	}
	mid := (r.Start + r.End) / 2
	return pool.Invoke(
		func() error { return f.compute(pool, a, b, c, Range{r.Start, mid}) },
		func() error { return f.compute(pool, a, b, c, Range{mid, r.End}) },
	)
}

// Name implements Multiplier.
func (f *ForkJoin) Name() string { return NameForkJoin }

// Workers implements Multiplier.
func (f *ForkJoin) Workers() int { return f.parallelism }

// Threshold returns the split threshold in rows.
func (f *ForkJoin) Threshold() int { return f.threshold }
