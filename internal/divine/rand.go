package divine

// Rand is a deterministic pseudo-random generator over a 32-bit seed
// (mulberry32). The same seed always reproduces the same sequence, which
// is what makes a casting repeatable for a given image.
type Rand struct {
	state uint32
}

// NewRand returns a generator positioned at the start of the sequence
// for seed.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Float64 advances the state and returns the next value in [0, 1).
// Never allocates.
func (r *Rand) Float64() float64 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return float64(z^(z>>14)) / 4294967296.0
}
