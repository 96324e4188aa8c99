// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package mat

// DefaultSeed is the fixed seed used for benchmark inputs.
const DefaultSeed int64 = 6834723

// Generate returns a size×size matrix filled from a Source seeded with DefaultSeed.
func Generate(size int) (*Dense, error) {
	return GenerateWithSeed(size, DefaultSeed)
}

// GenerateWithSeed returns a size×size matrix whose values are drawn from a
// fresh Source in row-major order: (0,0), (0,1), ..., (1,0), ...
func GenerateWithSeed(size int, seed int64) (*Dense, error) {
	m, err := NewDense(size)
	if err != nil {
		return nil, err
	}
	src := NewSource(seed)
	for i := range m.data {
		m.data[i] = src.Float64()
	}
	return m, nil
}
