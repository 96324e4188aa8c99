// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package mat

import (
	"fmt"
	"math"
	"strings"
)

// Dense is an n×n matrix of float64 values stored row-major.
type Dense struct {
	n    int
	data []float64 // len == n*n
}

// NewDense returns a zeroed n×n matrix.
func NewDense(n int) (*Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("NewDense(%d): %w", n, ErrBadSize)
	}
	return &Dense{n: n, data: make([]float64, n*n)}, nil
}

// NewDenseFrom builds an n×n matrix from rows. Every row must have n entries.
func NewDenseFrom(rows [][]float64) (*Dense, error) {
	n := len(rows)
	m, err := NewDense(n)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("NewDenseFrom: row %d has %d entries, want %d: %w",
				i, len(row), n, ErrDimensionMismatch)
		}
		copy(m.Row(i), row)
	}
	return m, nil
}

// Size returns n, the number of rows (and columns).
func (m *Dense) Size() int {
	return m.n
}

// At returns the element at (i, j). Out of range indices panic like slice indexing.
func (m *Dense) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Set stores v at (i, j).
func (m *Dense) Set(i, j int, v float64) {
	m.data[i*m.n+j] = v
}

// Row returns row i as a view into the backing storage.
// Writes through the returned slice modify the matrix.
func (m *Dense) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n : (i+1)*m.n]
}

// Data returns the flat row-major backing slice.
func (m *Dense) Data() []float64 {
	return m.data
}

// Equal reports whether m and o have the same size and bit-identical values.
func (m *Dense) Equal(o *Dense) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.n != o.n {
		return false
	}
	for i, v := range m.data {
		if math.Float64bits(v) != math.Float64bits(o.data[i]) {
			return false
		}
	}
	return true
}

// String renders the matrix one row per line, for debugging small sizes.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := range m.n {
		fmt.Fprintf(&sb, "%v\n", m.Row(i))
	}
	return sb.String()
}

// SameSize checks that a and b are non-nil and of equal size, returning that size.
func SameSize(a, b *Dense) (int, error) {
	if a == nil || b == nil {
		return 0, ErrNilMatrix
	}
	if a.n != b.n {
		return 0, fmt.Errorf("%d×%d vs %d×%d: %w", a.n, a.n, b.n, b.n, ErrDimensionMismatch)
	}
	return a.n, nil
}

// MaxRelDiff returns the largest elementwise relative difference between a and b,
// |a-b| / max(|a|, |b|). Cells where both values are zero contribute 0.
// A NaN in either matrix makes the result NaN.
func MaxRelDiff(a, b *Dense) (float64, error) {
	if _, err := SameSize(a, b); err != nil {
		return 0, err
	}
	var worst float64
	for i, x := range a.data {
		y := b.data[i]
		scale := math.Max(math.Abs(x), math.Abs(y))
		if scale == 0 {
			continue
		}
		worst = math.Max(worst, math.Abs(x-y)/scale)
	}
	return worst, nil
}
