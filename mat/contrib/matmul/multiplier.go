// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"fmt"

	"github.com/ajroetker/go-matbench/mat"
)

// Strategy names, as reported by Multiplier.Name and accepted by New.
const (
	NameSequential = "sequential"
	NameExecutor   = "executor"
	NameForkJoin   = "forkjoin"
)

// Multiplier computes C = A * B for square matrices of equal size.
type Multiplier interface {
	// Multiply returns a freshly allocated product. A and B are only read.
	Multiply(a, b *mat.Dense) (*mat.Dense, error)

	// Name identifies the strategy.
	Name() string

	// Workers is the number of concurrent execution units used per call.
	Workers() int
}

// Range is the half-open interval [Start, End) of output rows.
type Range struct {
	Start, End int
}

// Len returns the number of rows in r.
func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Option configures strategies built by New, NewForkJoin.
type Option func(*options)

type options struct {
	threshold int
}

func defaultOptions() options {
	return options{threshold: DefaultThreshold}
}

// WithThreshold sets the row count at or below which ForkJoin stops splitting.
func WithThreshold(rows int) Option {
	return func(o *options) {
		o.threshold = rows
	}
}

// New builds the strategy called name using workers execution units.
// Sequential ignores workers and always reports 1.
func New(name string, workers int, opts ...Option) (Multiplier, error) {
	switch name {
	case NameSequential:
		return NewSequential(), nil
	case NameExecutor:
		return NewExecutor(workers)
	case NameForkJoin:
		return NewForkJoin(workers, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Names returns every strategy name accepted by New.
func Names() []string {
	return []string{NameSequential, NameExecutor, NameForkJoin}
}
