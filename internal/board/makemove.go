package board

import "fmt"

// ApplyMove plays a move whose kind is already resolved. The previous state is
// pushed onto the history first. Legality is not checked; see WasIllegalLastMove.
func (b *Board) ApplyMove(m Move) {
	from, to := m.From(), m.To()
	piece := b.mailbox[from]
	if piece == NoPiece {
		panic(fmt.Sprintf("board: apply %s: no piece on %s", m, from))
	}

	b.history = append(b.history, b.historyState)

	us := piece.Color()
	captured := false

	if piece.Type() == King {
		b.castling &^= castlingRight(us, true) | castlingRight(us, false)
	}
	b.castling &^= rookHomeRights[from] | rookHomeRights[to]

	switch m.Kind() {
	case MoveQuiet:
		if b.mailbox[to] != NoPiece {
			panic(fmt.Sprintf("board: apply quiet %s: %s is occupied", m, to))
		}

	case MoveCapture:
		victim := b.mailbox[to]
		if victim == NoPiece {
			panic(fmt.Sprintf("board: apply capture %s: nothing on %s", m, to))
		}
		b.Remove(to, victim)
		captured = true

	case MoveEnPassant:
		victimSq := to - 8
		if us == Black {
			victimSq = to + 8
		}
		victim := b.mailbox[victimSq]
		if victim != NewPiece(Pawn, us.Other()) {
			panic(fmt.Sprintf("board: apply en passant %s: no pawn on %s", m, victimSq))
		}
		b.Remove(victimSq, victim)
		captured = true

	case MoveCastleKingside:
		b.castleRook(us, from+3, from+1)

	case MoveCastleQueenside:
		b.castleRook(us, from-4, from-1)

	case MovePromotion:
		b.Remove(from, piece)
		if victim := b.mailbox[to]; victim != NoPiece {
			b.Remove(to, victim)
			captured = true
		}
		b.Place(to, NewPiece(m.Promotion(), us))

	case MoveUnknown:
		panic(fmt.Sprintf("board: apply %s: move kind not resolved", m))

	default:
		panic(fmt.Sprintf("board: apply %s: bad move kind %d", m, m.Kind()))
	}

	if m.Kind() != MovePromotion {
		b.Remove(from, piece)
		b.Place(to, piece)
	}

	if piece.Type() == Pawn || captured {
		b.halfMove = 0
	} else {
		b.halfMove++
	}
	if us == Black {
		b.fullMove++
	}

	b.side = us.Other()

	b.enPassant = NoSquare
	if piece.Type() == Pawn && abs(int8(to)-int8(from)) == 16 {
		b.enPassant = Square((int(from) + int(to)) / 2)
	}

	b.UpdateOccupancy()
}

func (b *Board) castleRook(us Color, from, to Square) {
	rook := NewPiece(Rook, us)
	if b.mailbox[from] != rook {
		panic(fmt.Sprintf("board: castle: no %s rook on %s", us, from))
	}
	b.Remove(from, rook)
	b.Place(to, rook)
}

// UndoLast restores the state saved by the matching ApplyMove.
func (b *Board) UndoLast() {
	n := len(b.history)
	if n == 0 {
		panic("board: undo with empty history")
	}
	b.historyState = b.history[n-1]
	b.history = b.history[:n-1]
}

// ResolveMoveKind fills in the kind of a move decoded from notation by looking
// at the moving piece, the destination and the en passant square. Moves that
// already carry a kind are returned unchanged.
func (b *Board) ResolveMoveKind(m Move) Move {
	if m.Kind() != MoveUnknown {
		return m
	}

	from, to := m.From(), m.To()
	piece := b.mailbox[from]

	if piece.Type() == King {
		switch {
		case from == E1 && to == G1, from == E8 && to == G8:
			return m.WithKind(MoveCastleKingside)
		case from == E1 && to == C1, from == E8 && to == C8:
			return m.WithKind(MoveCastleQueenside)
		}
	}

	if piece.Type() == Pawn && to == b.enPassant {
		return m.WithKind(MoveEnPassant)
	}

	if b.mailbox[to] != NoPiece {
		return m.WithKind(MoveCapture)
	}
	return m.WithKind(MoveQuiet)
}

// MoveFromUCI decodes s and returns the matching pseudolegal move of the side to
// move. It does not test whether the move leaves the king in check.
func (b *Board) MoveFromUCI(s string) (Move, error) {
	m, err := ParseMove(s)
	if err != nil {
		return NoMove, err
	}

	if p := b.mailbox[m.From()]; p == NoPiece || p.Color() != b.side {
		return NoMove, fmt.Errorf("%w: %s: no %s piece on %s", ErrInvalidMove, s, b.side, m.From())
	}

	m = b.ResolveMoveKind(m)

	var ml MoveList
	b.GeneratePseudolegal(&ml)
	if !ml.Contains(m) {
		return NoMove, fmt.Errorf("%w: %s is not playable", ErrInvalidMove, s)
	}
	return m, nil
}
