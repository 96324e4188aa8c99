// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package mat provides the dense square matrix type used by the multiplication
// strategies in mat/contrib/matmul, and a deterministic generator for the
// benchmark inputs.
//
// Matrices are stored row-major in a single flat slice:
//
//	a, _ := mat.Generate(1024)    // fixed seed, values in [0, 1)
//	row := a.Row(3)               // view of row 3, no copy
//	v := a.At(3, 7)
//
// Generate draws values from Source, a 48-bit linear congruential stream, in
// row-major order. Two calls with the same size and seed are bit-identical,
// so A and B can be regenerated by any implementation of the same stream.
package mat
