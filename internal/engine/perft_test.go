package engine

import (
	"testing"

	"github.com/ns8/epsilon/internal/board"
)

func TestPerft(t *testing.T) {
	tests := []struct {
		fen      string
		expected []uint64
	}{
		{board.StartFEN, []uint64{1, 20, 400, 8902}},
		{board.KiwipeteFEN, []uint64{1, 48, 2039}},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{1, 14, 191, 2812}},
	}
	for _, tt := range tests {
		b := mustParseFEN(t, tt.fen)
		for depth, want := range tt.expected {
			if got := Perft(b, depth); got != want {
				t.Errorf("%s: perft(%d) = %d, want %d", tt.fen, depth, got, want)
			}
		}
		if b.HistoryLen() != 0 {
			t.Errorf("%s: history not unwound", tt.fen)
		}
	}
}

func TestDivide(t *testing.T) {
	b := board.StartPosition()

	var moves []string
	var sum uint64
	total := Divide(b, 2, func(m board.Move, n uint64) {
		moves = append(moves, m.String())
		sum += n
		if n != 20 {
			t.Errorf("%s: %d, want 20", m, n)
		}
	})

	if total != 400 || sum != total {
		t.Errorf("Divide total = %d, sum %d, want 400", total, sum)
	}
	if len(moves) != 20 || moves[0] != "b1a3" || moves[19] != "h2h4" {
		t.Errorf("unexpected divide order: %v", moves)
	}
}

func TestPerftStats(t *testing.T) {
	tests := []struct {
		fen   string
		depth int
		want  PerftStats
	}{
		{board.StartFEN, 3, PerftStats{Nodes: 8902, Captures: 34, Checks: 12}},
		{board.KiwipeteFEN, 1, PerftStats{Nodes: 48, Captures: 8, Castles: 2}},
		{board.KiwipeteFEN, 2, PerftStats{Nodes: 2039, Captures: 351, EnPassant: 1, Castles: 91, Checks: 3}},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 2, PerftStats{Nodes: 191, Captures: 14, Checks: 10}},
	}
	for _, tt := range tests {
		b := mustParseFEN(t, tt.fen)
		if got := CollectPerftStats(b, tt.depth); got != tt.want {
			t.Errorf("%s depth %d:\n got=%+v\nwant=%+v", tt.fen, tt.depth, got, tt.want)
		}
	}
}
