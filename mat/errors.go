// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package mat

import "errors"

var (
	// ErrBadSize is returned when a matrix size is not a positive integer.
	ErrBadSize = errors.New("mat: size must be > 0")

	// ErrDimensionMismatch is returned when two operands do not have the same size.
	ErrDimensionMismatch = errors.New("mat: dimension mismatch")

	// ErrNilMatrix is returned when a nil *Dense is passed as an operand.
	ErrNilMatrix = errors.New("mat: nil matrix")
)
