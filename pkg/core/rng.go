package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// Cells returns n random cells. The first and last cell are always alive so
// the live span covers exactly n cells.
func (r *RNG) Cells(n int) []bool {
	cells := make([]bool, n)
	FillBinary(r.r, cells)
	if n > 0 {
		cells[0] = true
		cells[n-1] = true
	}
	return cells
}

// PatternCodes selects codes from 1..n-1, each with probability p. Code 0,
// the all-dead pattern, is never selected.
func (r *RNG) PatternCodes(n int, p float64) []uint8 {
	var codes []uint8
	for c := 1; c < n; c++ {
		if r.Chance(p) {
			codes = append(codes, uint8(c))
		}
	}
	return codes
}

// FillBinary fills the buffer with random alive/dead values.
func FillBinary(r *rand.Rand, buf []bool) {
	for i := range buf {
		buf[i] = r.IntN(2) == 1
	}
}
