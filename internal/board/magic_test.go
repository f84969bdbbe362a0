package board

import (
	"errors"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestMagicAttacksMatchRayCasting(t *testing.T) {
	for _, s := range []Slider{BishopSlider, RookSlider} {
		for sq := A1; sq <= H8; sq++ {
			occs, atts := s.occupancies(sq)
			for i, occ := range occs {
				var got Bitboard
				if s == BishopSlider {
					got = BishopAttacks(sq, occ)
				} else {
					got = RookAttacks(sq, occ)
				}
				if got != atts[i] {
					t.Fatalf("%s on %s with blockers %#x: got=%#x want=%#x", s, sq, uint64(occ), uint64(got), uint64(atts[i]))
				}
			}
		}
	}
}

func TestMagicAttacksIgnoreIrrelevantBlockers(t *testing.T) {
	rng := NewPseudoRand(42)
	for i := 0; i < 2000; i++ {
		sq := Square(rng.Uint64() % 64)
		occ := Bitboard(rng.Uint64() & rng.Uint64())
		if got, want := BishopAttacks(sq, occ), bishopAttacksSlow(sq, occ); got != want {
			t.Fatalf("bishop on %s: got=%#x want=%#x", sq, uint64(got), uint64(want))
		}
		if got, want := RookAttacks(sq, occ), rookAttacksSlow(sq, occ); got != want {
			t.Fatalf("rook on %s: got=%#x want=%#x", sq, uint64(got), uint64(want))
		}
	}
}

func TestMagicAttacksAgainstDragontooth(t *testing.T) {
	rng := NewPseudoRand(7)
	for i := 0; i < 2000; i++ {
		sq := Square(rng.Uint64() % 64)
		occ := rng.Uint64() & rng.Uint64() & rng.Uint64()

		if got, want := uint64(BishopAttacks(sq, Bitboard(occ))), dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occ); got != want {
			t.Fatalf("bishop on %s blockers %#x: got=%#x want=%#x", sq, occ, got, want)
		}
		if got, want := uint64(RookAttacks(sq, Bitboard(occ))), dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ); got != want {
			t.Fatalf("rook on %s blockers %#x: got=%#x want=%#x", sq, occ, got, want)
		}
	}
}

func TestFindMagic(t *testing.T) {
	rng := NewPseudoRand(magicSeed)
	for _, tc := range []struct {
		slider Slider
		sq     Square
	}{
		{BishopSlider, A1},
		{BishopSlider, D4},
		{RookSlider, H8},
		{RookSlider, E4},
	} {
		magic, err := FindMagic(tc.slider, tc.sq, rng, 1<<22)
		if err != nil {
			t.Fatalf("FindMagic(%s, %s): %v", tc.slider, tc.sq, err)
		}

		mask := tc.slider.mask(tc.sq)
		m := Magic{Mask: mask, Magic: magic, Shift: uint8(64 - mask.PopCount())}
		occs, atts := tc.slider.occupancies(tc.sq)
		n := 1 << mask.PopCount()
		if !fillMagic(&m, occs, atts, make([]Bitboard, n), make([]bool, n)) {
			t.Errorf("%s magic %#x for %s collides", tc.slider, magic, tc.sq)
		}
	}
}

func TestFindMagicGivesUp(t *testing.T) {
	_, err := FindMagic(RookSlider, A1, NewPseudoRand(1), 0)
	if !errors.Is(err, ErrMagicNotFound) {
		t.Errorf("expected ErrMagicNotFound, got %v", err)
	}
}

func TestStepAttacks(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want Bitboard
	}{
		{"knight a1", KnightAttacks(A1), SquareBB(B3) | SquareBB(C2)},
		{"knight h8", KnightAttacks(H8), SquareBB(G6) | SquareBB(F7)},
		{"king a1", KingAttacks(A1), SquareBB(A2) | SquareBB(B1) | SquareBB(B2)},
		{"white pawn a2", PawnAttacks(A2, White), SquareBB(B3)},
		{"white pawn e4", PawnAttacks(E4, White), SquareBB(D5) | SquareBB(F5)},
		{"black pawn h7", PawnAttacks(H7, Black), SquareBB(G6)},
		{"white pawn h8", PawnAttacks(H8, White), Empty},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got=%#x want=%#x", tt.name, uint64(tt.got), uint64(tt.want))
		}
	}
	for sq := A1; sq <= H8; sq++ {
		if n := KnightAttacks(sq).PopCount(); n < 2 || n > 8 {
			t.Errorf("knight on %s attacks %d squares", sq, n)
		}
		if n := KingAttacks(sq).PopCount(); n < 3 || n > 8 {
			t.Errorf("king on %s attacks %d squares", sq, n)
		}
	}
}
