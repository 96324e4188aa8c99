// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWorkers is returned when a worker count or parallelism is below 1.
	ErrInvalidWorkers = errors.New("matmul: worker count must be >= 1")

	// ErrInvalidThreshold is returned when a ForkJoin threshold is below 1.
	ErrInvalidThreshold = errors.New("matmul: threshold must be >= 1")

	// ErrUnknownStrategy is returned by New for an unrecognized strategy name.
	ErrUnknownStrategy = errors.New("matmul: unknown strategy")

	// ErrTaskPanic wraps the value of a unit of work that panicked.
	ErrTaskPanic = errors.New("matmul: task panicked")
)

// TaskError reports the failure of the unit of work computing Range.
type TaskError struct {
	Range Range
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("matmul: rows %s: %v", e.Range, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}
