package board

import (
	"fmt"
	"log"
)

// Magic bitboard lookup for sliding piece attacks. The multipliers live in
// magic_data.go; the attack tables are filled from them once at startup.

// Slider selects the ray set of a sliding piece.
type Slider uint8

const (
	BishopSlider Slider = iota
	RookSlider
)

func (s Slider) String() string {
	if s == BishopSlider {
		return "bishop"
	}
	return "rook"
}

// Magic holds the magic bitboard data for a single square.
type Magic struct {
	Mask   Bitboard // Relevant occupancy mask (excludes edges)
	Magic  uint64   // Magic multiplier
	Shift  uint8    // Bits to shift right
	Offset uint32   // Index into attack table
}

func (m *Magic) index(occupied Bitboard) uint32 {
	return uint32(((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift)
}

var (
	bishopMagics [64]Magic
	rookMagics   [64]Magic

	bishopTable [5248]Bitboard
	rookTable   [102400]Bitboard
)

// magicSeed seeds the re-derivation of a stored multiplier that fails verification.
const magicSeed uint64 = 0x45D3F1C9A7B2E601

func initMagics() {
	initSliderMagics(BishopSlider, &bishopMagicNumbers, &bishopMagics, bishopTable[:])
	initSliderMagics(RookSlider, &rookMagicNumbers, &rookMagics, rookTable[:])
}

func initSliderMagics(s Slider, numbers *[64]uint64, magics *[64]Magic, table []Bitboard) {
	var offset uint32
	for sq := A1; sq <= H8; sq++ {
		mask := s.mask(sq)
		nbits := mask.PopCount()
		entries := uint32(1) << nbits

		m := Magic{
			Mask:   mask,
			Magic:  numbers[sq],
			Shift:  uint8(64 - nbits),
			Offset: offset,
		}

		occs, atts := s.occupancies(sq)
		slots := table[offset : offset+entries]
		used := make([]bool, entries)

		// Every blocker subset must land on a slot that is empty or already holds
		// the same attack set.
		if !fillMagic(&m, occs, atts, slots, used) {
			magic, ok := searchMagic(m, occs, atts, slots, used, NewPseudoRand(magicSeed^uint64(sq)), 1<<24)
			if !ok {
				panic(fmt.Sprintf("board: no %s magic for %s", s, sq))
			}
			log.Printf("board: stored %s magic for %s collides, using %#016x", s, sq, magic)
			m.Magic = magic
		}

		magics[sq] = m
		offset += entries
	}
}

// fillMagic writes every attack set into slots at its magic index. It reports
// false on the first destructive collision.
func fillMagic(m *Magic, occs, atts, slots []Bitboard, used []bool) bool {
	clear(used)
	for i, occ := range occs {
		idx := m.index(occ)
		if used[idx] && slots[idx] != atts[i] {
			return false
		}
		slots[idx] = atts[i]
		used[idx] = true
	}
	return true
}

func (s Slider) mask(sq Square) Bitboard {
	if s == BishopSlider {
		return bishopMask(sq)
	}
	return rookMask(sq)
}

func (s Slider) slowAttacks(sq Square, occupied Bitboard) Bitboard {
	if s == BishopSlider {
		return bishopAttacksSlow(sq, occupied)
	}
	return rookAttacksSlow(sq, occupied)
}

// occupancies enumerates every blocker subset of the square's mask together
// with the attack set it produces.
func (s Slider) occupancies(sq Square) (occs, atts []Bitboard) {
	mask := s.mask(sq)
	nbits := mask.PopCount()
	n := 1 << nbits
	occs = make([]Bitboard, n)
	atts = make([]Bitboard, n)
	for i := 0; i < n; i++ {
		occs[i] = indexToOccupancy(i, nbits, mask)
		atts[i] = s.slowAttacks(sq, occs[i])
	}
	return occs, atts
}

// bishopMask returns the relevant occupancy mask for bishop at square.
// Excludes edge squares since they don't affect the result.
func bishopMask(sq Square) Bitboard {
	return bishopAttacksSlow(sq, 0) &^ (Rank1 | Rank8 | FileA | FileH)
}

// rookMask returns the relevant occupancy mask for rook at square.
func rookMask(sq Square) Bitboard {
	file := sq.File()
	rank := sq.Rank()

	var mask Bitboard

	for f := 1; f < 7; f++ {
		if f != file {
			mask |= SquareBB(NewSquare(f, rank))
		}
	}

	for r := 1; r < 7; r++ {
		if r != rank {
			mask |= SquareBB(NewSquare(file, r))
		}
	}

	return mask
}

// indexToOccupancy converts an index to an occupancy bitboard.
func indexToOccupancy(index, nbits int, mask Bitboard) Bitboard {
	var occ Bitboard
	for i := 0; i < nbits; i++ {
		sq := mask.PopLSB()
		if index&(1<<i) != 0 {
			occ |= SquareBB(sq)
		}
	}
	return occ
}

// bishopAttacksSlow computes bishop attacks by ray casting.
func bishopAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, occupied, [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}})
}

// rookAttacksSlow computes rook attacks by ray casting.
func rookAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, occupied, [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}})
}

func rayAttacks(sq Square, occupied Bitboard, dirs [4][2]int) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		for f, r := sq.File()+d[0], sq.Rank()+d[1]; f >= 0 && f <= 7 && r >= 0 && r <= 7; f, r = f+d[0], r+d[1] {
			s := SquareBB(NewSquare(f, r))
			attacks |= s
			if occupied&s != 0 {
				break
			}
		}
	}
	return attacks
}

func getBishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return bishopTable[m.Offset+m.index(occupied)]
}

func getRookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	return rookTable[m.Offset+m.index(occupied)]
}
