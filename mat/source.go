// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package mat

// 48-bit linear congruential generator parameters.
const (
	lcgMultiplier = 0x5DEECE66D
	lcgIncrement  = 0xB
	lcgMask       = (1 << 48) - 1
)

// Source is a 48-bit linear congruential pseudo-random stream.
//
// The stream (seed scrambling, state update and the 53-bit Float64 assembly)
// matches the generator the reference benchmark used to build its inputs, so a
// given seed yields the same matrices here as there. Source is not safe for
// concurrent use.
type Source struct {
	state uint64
}

// NewSource returns a stream positioned at seed.
func NewSource(seed int64) *Source {
	return &Source{state: (uint64(seed) ^ lcgMultiplier) & lcgMask}
}

// next advances the state and returns its top bits.
func (s *Source) next(bits uint) uint64 {
	s.state = (s.state*lcgMultiplier + lcgIncrement) & lcgMask
	return s.state >> (48 - bits)
}

// Float64 returns a value uniformly distributed in [0, 1) with 53 bits of precision.
func (s *Source) Float64() float64 {
	return float64(s.next(26)<<27+s.next(27)) * (1.0 / (1 << 53))
}
