// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"fmt"

	"github.com/ajroetker/go-matbench/mat"
	"github.com/ajroetker/go-matbench/mat/contrib/workerpool"
)

// Partition splits [0, size) into workers contiguous ranges of size/workers
// rows each. The last range ends at size and so absorbs the remainder; when
// workers > size every range but the last is empty.
func Partition(size, workers int) []Range {
	rowsPerWorker := size / workers
	ranges := make([]Range, workers)
	for w := range workers {
		start := w * rowsPerWorker
		end := start + rowsPerWorker
		if w == workers-1 {
			end = size
		}
		ranges[w] = Range{start, end}
	}
	return ranges
}

// Executor multiplies by assigning each of a fixed number of workers one
// contiguous block of output rows, computed up front by Partition.
type Executor struct {
	workers int
	kernel  kernelFunc
}

// NewExecutor returns the partitioned strategy with the given worker count.
func NewExecutor(workers int) (*Executor, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, workers)
	}
	return &Executor{workers: workers, kernel: mulRows}, nil
}

// Multiply implements Multiplier. It starts a pool of Workers goroutines,
// waits for every range to finish and shuts the pool down before returning.
// If any range fails, all failures are returned and C is discarded.
func (e *Executor) Multiply(a, b *mat.Dense) (*mat.Dense, error) {
	c, err := prepare(a, b)
	if err != nil {
		return nil, err
	}

	ranges := Partition(c.Size(), e.workers)

	pool := workerpool.New(e.workers)
	defer pool.Close()

	err = pool.Run(len(ranges), func(i int) error {
		if ranges[i].Len() == 0 {
			return nil
		}
		return runTask(e.kernel, a, b, c, ranges[i])
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Name implements Multiplier.
func (e *Executor) Name() string { return NameExecutor }

// Workers implements Multiplier.
func (e *Executor) Workers() int { return e.workers }
