package engine

import "github.com/ns8/epsilon/internal/board"

// Perft counts the legal leaf nodes of the move tree to the given depth.
// Legality is tested after each pseudolegal move, as in the search.
func Perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var ml board.MoveList
	b.GeneratePseudolegal(&ml)

	var nodes uint64
	for _, m := range ml.Slice() {
		b.ApplyMove(m)
		if !b.WasIllegalLastMove() {
			nodes += Perft(b, depth-1)
		}
		b.UndoLast()
	}
	return nodes
}

// Divide runs Perft below every legal root move, calling fn with each move and
// its count in generation order, and returns the total.
func Divide(b *board.Board, depth int, fn func(board.Move, uint64)) uint64 {
	if depth < 1 {
		return 1
	}

	var ml board.MoveList
	b.GeneratePseudolegal(&ml)

	var total uint64
	for _, m := range ml.Slice() {
		b.ApplyMove(m)
		if !b.WasIllegalLastMove() {
			n := Perft(b, depth-1)
			total += n
			if fn != nil {
				fn(m, n)
			}
		}
		b.UndoLast()
	}
	return total
}

// PerftStats breaks the leaf nodes of a perft run down by the last move played.
type PerftStats struct {
	Nodes      uint64
	Captures   uint64 // including en passant and capturing promotions
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

// CollectPerftStats runs perft to depth and classifies every leaf.
func CollectPerftStats(b *board.Board, depth int) PerftStats {
	var stats PerftStats
	if depth < 1 {
		stats.Nodes = 1
		return stats
	}
	collectPerftStats(b, depth, &stats)
	return stats
}

func collectPerftStats(b *board.Board, depth int, stats *PerftStats) {
	var ml board.MoveList
	b.GeneratePseudolegal(&ml)

	for _, m := range ml.Slice() {
		capture := m.Kind() == board.MoveEnPassant || b.PieceAt(m.To()) != board.NoPiece

		b.ApplyMove(m)
		if b.WasIllegalLastMove() {
			b.UndoLast()
			continue
		}

		if depth > 1 {
			collectPerftStats(b, depth-1, stats)
			b.UndoLast()
			continue
		}

		stats.Nodes++
		if capture {
			stats.Captures++
		}
		switch m.Kind() {
		case board.MoveEnPassant:
			stats.EnPassant++
		case board.MoveCastleKingside, board.MoveCastleQueenside:
			stats.Castles++
		case board.MovePromotion:
			stats.Promotions++
		}
		if b.InCheck() {
			stats.Checks++
		}
		b.UndoLast()
	}
}
