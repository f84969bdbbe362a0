package board

// PseudoRand is a xorshift64* generator. Zobrist keys and magic multipliers are
// drawn from it with fixed seeds so every run produces the same tables.
type PseudoRand struct {
	s uint64
}

// NewPseudoRand returns a generator seeded with seed, which must be non-zero.
func NewPseudoRand(seed uint64) *PseudoRand {
	return &PseudoRand{s: seed}
}

// Uint64 returns the next value of the sequence.
func (r *PseudoRand) Uint64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 0x2545F4914F6CDD1D
}

// SparseUint64 returns a value with roughly an eighth of its bits set, which
// makes a good magic multiplier candidate.
func (r *PseudoRand) SparseUint64() uint64 {
	return r.Uint64() & r.Uint64() & r.Uint64()
}
