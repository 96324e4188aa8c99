// Copyright 2026 The go-matbench Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import (
	"fmt"

	"github.com/ajroetker/go-matbench/mat"
)

// kernelFunc computes rows r of c = a * b.
type kernelFunc func(a, b, c *mat.Dense, r Range) error

// mulRows is the scalar kernel shared by every strategy.
// C[i,j] = sum(A[i,k] * B[k,j]) for k in 0..n-1, i-j-k order.
func mulRows(a, b, c *mat.Dense, r Range) error {
	n := a.Size()
	bd := b.Data()
	for i := r.Start; i < r.End; i++ {
		ai := a.Row(i)
		ci := c.Row(i)
		for j := range n {
			var sum float64
			for k := range n {
				// The conversion forbids fusing into an FMA, keeping results
				// identical across architectures.
				sum += float64(ai[k] * bd[k*n+j])
			}
			ci[j] = sum
		}
	}
	return nil
}

// runTask runs kernel over r and reports any failure, including a panic, as a *TaskError.
func runTask(kernel kernelFunc, a, b, c *mat.Dense, r Range) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &TaskError{Range: r, Err: fmt.Errorf("%w: %v", ErrTaskPanic, p)}
		}
	}()
	if kerr := kernel(a, b, c, r); kerr != nil {
		return &TaskError{Range: r, Err: kerr}
	}
	return nil
}

// prepare validates the operands and allocates the zeroed output.
func prepare(a, b *mat.Dense) (*mat.Dense, error) {
	n, err := mat.SameSize(a, b)
	if err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}
	return mat.NewDense(n)
}

// Sequential multiplies on the calling goroutine.
type Sequential struct {
	kernel kernelFunc
}

// NewSequential returns the single-threaded baseline strategy.
func NewSequential() *Sequential {
	return &Sequential{kernel: mulRows}
}

// Multiply implements Multiplier.
func (s *Sequential) Multiply(a, b *mat.Dense) (*mat.Dense, error) {
	c, err := prepare(a, b)
	if err != nil {
		return nil, err
	}
	if err := runTask(s.kernel, a, b, c, Range{0, c.Size()}); err != nil {
		return nil, err
	}
	return c, nil
}

// Name implements Multiplier.
func (s *Sequential) Name() string { return NameSequential }

// Workers implements Multiplier; always 1.
func (s *Sequential) Workers() int { return 1 }
