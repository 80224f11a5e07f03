package generator

import "math"

// Rand is a SplitMix64 generator. The state is advanced by a fixed odd
// constant and mixed on output, so a seed maps to one sequence on every
// platform and Go release.
type Rand struct {
	state uint64
}

// NewRand returns a generator whose state starts at the seed's bit pattern.
func NewRand(seed int64) *Rand {
	return &Rand{state: uint64(seed)}
}

func (r *Rand) Uint64() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float64 returns a value in [0, 1) built from the top 53 bits.
func (r *Rand) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Intn returns a value in [0, n). It returns 0 without consuming state when n <= 1.
func (r *Rand) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	bound := uint64(n)
	limit := math.MaxUint64 - math.MaxUint64%bound
	for {
		if v := r.Uint64(); v < limit {
			return int(v % bound)
		}
	}
}
