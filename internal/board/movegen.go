package board

// AttacksOf returns the squares a piece of type pt and color c on sq attacks,
// restricted to enemy pieces. Pawns may also attack the en passant square.
func (b *Board) AttacksOf(pt PieceType, c Color, sq Square) Bitboard {
	targets := b.occupancy.Of(c.Other())
	if pt == Pawn && b.enPassant != NoSquare {
		targets |= SquareBB(b.enPassant)
	}
	return PieceAttacks(pt, c, sq, b.occupancy.All) & targets
}

// MovesOf returns the empty squares a piece of type pt and color c on sq can
// move to without capturing.
func (b *Board) MovesOf(pt PieceType, c Color, sq Square) Bitboard {
	empty := ^b.occupancy.All
	switch pt {
	case Pawn:
		moves := pawnPushes[c][sq] & empty
		if moves != 0 {
			moves |= pawnDoublePushes[c][sq] & empty
		}
		return moves
	case Knight:
		return knightAttacks[sq] & empty
	case Bishop:
		return BishopAttacks(sq, b.occupancy.All) & empty
	case Rook:
		return RookAttacks(sq, b.occupancy.All) & empty
	case Queen:
		return QueenAttacks(sq, b.occupancy.All) & empty
	case King:
		return kingAttacks[sq] & empty
	}
	return Empty
}

// GeneratePseudolegal fills ml with every pseudolegal move of the side to move.
// Origins are visited from a1 to h8; per origin castles come first, then quiet
// moves, then captures, each in ascending destination order.
func (b *Board) GeneratePseudolegal(ml *MoveList) {
	ml.Clear()
	us := b.side

	own := b.occupancy.Of(us)
	for own != 0 {
		from := own.PopLSB()
		pt := b.mailbox[from].Type()

		if pt == King && from == kingHome[us] {
			if b.CanCastleKingside() {
				ml.Add(NewMove(from, from+2, MoveCastleKingside))
			}
			if b.CanCastleQueenside() {
				ml.Add(NewMove(from, from-2, MoveCastleQueenside))
			}
		}

		quiets := b.MovesOf(pt, us, from)
		for quiets != 0 {
			to := quiets.PopLSB()
			if pt == Pawn && BackRanks.IsSet(to) {
				addPromotions(ml, from, to)
			} else {
				ml.Add(NewMove(from, to, MoveQuiet))
			}
		}

		attacks := b.AttacksOf(pt, us, from)
		for attacks != 0 {
			to := attacks.PopLSB()
			switch {
			case pt == Pawn && to == b.enPassant && abs(to.File()-from.File()) == 1:
				ml.Add(NewMove(from, to, MoveEnPassant))
			case pt == Pawn && BackRanks.IsSet(to):
				addPromotions(ml, from, to)
			default:
				ml.Add(NewMove(from, to, MoveCapture))
			}
		}
	}
}

func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

// LegalMoves returns the pseudolegal moves that do not leave the mover's king
// attacked, in generation order.
func (b *Board) LegalMoves() []Move {
	var ml MoveList
	b.GeneratePseudolegal(&ml)
	legal := make([]Move, 0, ml.Len())
	for _, m := range ml.Slice() {
		b.ApplyMove(m)
		if !b.WasIllegalLastMove() {
			legal = append(legal, m)
		}
		b.UndoLast()
	}
	return legal
}
