package board

import (
	"fmt"
	"math/bits"
)

// FindMagic searches for a multiplier that maps every blocker subset of the
// slider's mask on sq to a collision-free index. It gives up after tries
// candidates.
func FindMagic(s Slider, sq Square, rng *PseudoRand, tries int) (uint64, error) {
	mask := s.mask(sq)
	nbits := mask.PopCount()
	entries := 1 << nbits

	occs, atts := s.occupancies(sq)
	m := Magic{Mask: mask, Shift: uint8(64 - nbits)}

	magic, ok := searchMagic(m, occs, atts, make([]Bitboard, entries), make([]bool, entries), rng, tries)
	if !ok {
		return 0, fmt.Errorf("%w: %s on %s after %d candidates", ErrMagicNotFound, s, sq, tries)
	}
	return magic, nil
}

// searchMagic tries sparse random candidates for m. On success slots holds the
// attack table for the returned multiplier.
func searchMagic(m Magic, occs, atts, slots []Bitboard, used []bool, rng *PseudoRand, tries int) (uint64, bool) {
	for i := 0; i < tries; i++ {
		candidate := rng.SparseUint64()
		// Too few high bits cannot spread the mask over the index range.
		if bits.OnesCount64((uint64(m.Mask)*candidate)&0xFF00000000000000) < 6 {
			continue
		}
		m.Magic = candidate
		if fillMagic(&m, occs, atts, slots, used) {
			return candidate, true
		}
	}
	return 0, false
}
