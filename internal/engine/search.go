package engine

import (
	"fmt"

	"github.com/ns8/epsilon/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// PVTable stores the principal variation.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

func (pv *PVTable) update(ply int, m board.Move) {
	pv.moves[ply][ply] = m
	next := ply + 1
	for i := next; i < pv.length[next]; i++ {
		pv.moves[ply][i] = pv.moves[next][i]
	}
	pv.length[ply] = pv.length[next]
}

// Searcher runs a fixed-depth negamax with alpha-beta pruning over the
// pseudolegal move tree, pruned by a shared transposition table.
type Searcher struct {
	tt    *TranspositionTable
	nodes uint64
	pv    PVTable
}

// NewSearcher creates a new searcher.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{tt: tt}
}

// Reset resets the searcher for a new search.
func (s *Searcher) Reset() {
	s.nodes = 0
	s.pv.length[0] = 0
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// GetPV returns the principal variation from the last search.
func (s *Searcher) GetPV() []board.Move {
	pv := make([]board.Move, s.pv.length[0])
	copy(pv, s.pv.moves[0][:s.pv.length[0]])
	return pv
}

// Search returns the best move at the given depth and its score from the side
// to move's perspective. The root is never looked up in the table. Among equal
// scores the first move in generation order wins. The board is left as it was.
func (s *Searcher) Search(b *board.Board, depth int) (board.Move, int, error) {
	if depth < 1 || depth >= MaxPly {
		return board.NoMove, 0, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}

	s.nodes++
	s.pv.length[0] = 0

	alpha, beta := -Infinity, Infinity
	bestMove, bestScore := board.NoMove, -Infinity

	var ml board.MoveList
	b.GeneratePseudolegal(&ml)
	for _, m := range ml.Slice() {
		b.ApplyMove(m)
		if b.WasIllegalLastMove() {
			b.UndoLast()
			continue
		}

		score := -s.negamax(b, depth-1, 1, -beta, -alpha)
		b.UndoLast()

		if score > bestScore {
			bestMove, bestScore = m, score
			alpha = max(alpha, score)
			s.pv.update(0, m)
		}
	}

	if bestMove == board.NoMove {
		if b.InCheck() {
			return board.NoMove, -MateScore, ErrCheckmate
		}
		return board.NoMove, 0, ErrStalemate
	}

	return bestMove, bestScore, nil
}

func (s *Searcher) negamax(b *board.Board, depth, ply, alpha, beta int) int {
	s.nodes++
	s.pv.length[ply] = ply

	if depth == 0 {
		return b.Evaluate()
	}

	origAlpha := alpha
	key := b.Hash()

	if entry, ok := s.tt.Probe(key); ok && int(entry.Depth) >= depth {
		score := AdjustScoreFromTT(int(entry.Score), ply)
		switch entry.Flag {
		case TTExact:
			return score
		case TTLowerBound:
			alpha = max(alpha, score)
		case TTUpperBound:
			if score <= alpha {
				return score
			}
		}
		if alpha >= beta {
			return score
		}
	}

	bestScore := -Infinity
	legal := 0

	var ml board.MoveList
	b.GeneratePseudolegal(&ml)
	for _, m := range ml.Slice() {
		b.ApplyMove(m)
		if b.WasIllegalLastMove() {
			b.UndoLast()
			continue
		}
		legal++

		score := -s.negamax(b, depth-1, ply+1, -beta, -alpha)
		b.UndoLast()

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				s.pv.update(ply, m)
			}
		}

		// Cutoffs return without touching the table.
		if score >= beta {
			return bestScore
		}
	}

	if legal == 0 {
		bestScore = 0
		if b.InCheck() {
			bestScore = -MateScore + ply
		}
		s.tt.Store(key, depth, AdjustScoreToTT(bestScore, ply), TTExact)
		return bestScore
	}

	flag := TTExact
	switch {
	case bestScore <= origAlpha:
		flag = TTUpperBound
	case bestScore >= beta:
		flag = TTLowerBound
	}
	s.tt.Store(key, depth, AdjustScoreToTT(bestScore, ply), flag)

	return bestScore
}
