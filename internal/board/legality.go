package board

// IsSquareAttacked reports whether any enemy of the side to move attacks sq.
// The side to move's own attack pattern of each piece type is cast from sq and
// intersected with the enemy pieces of that type.
func (b *Board) IsSquareAttacked(sq Square) bool {
	us := b.side
	them := us.Other()
	for pt := Pawn; pt <= King; pt++ {
		if b.AttacksOf(pt, us, sq)&b.pieces[NewPiece(pt, them)] != 0 {
			return true
		}
	}
	return false
}

// InCheck returns true if the king of the side to move is attacked.
func (b *Board) InCheck() bool {
	ksq := b.KingSquare(b.side)
	return ksq != NoSquare && b.IsSquareAttacked(ksq)
}

// WasIllegalLastMove reports whether the move just applied left the mover's
// king attacked. The side to move is flipped back for the probe and restored
// afterwards; the caller still has to UndoLast.
func (b *Board) WasIllegalLastMove() bool {
	b.side = b.side.Other()
	illegal := b.InCheck()
	b.side = b.side.Other()
	return illegal
}

// CanCastleKingside reports whether the side to move may castle short: the
// right is held, the rook is home, f and g are empty, and e, f, g are not attacked.
func (b *Board) CanCastleKingside() bool {
	us := b.side
	if !b.castling.CanCastle(us, true) {
		return false
	}
	king := kingHome[us]
	if b.mailbox[king] != NewPiece(King, us) || b.mailbox[king+3] != NewPiece(Rook, us) {
		return false
	}
	if b.occupancy.All&(SquareBB(king+1)|SquareBB(king+2)) != 0 {
		return false
	}
	return !b.IsSquareAttacked(king) &&
		!b.IsSquareAttacked(king+1) &&
		!b.IsSquareAttacked(king+2)
}

// CanCastleQueenside reports whether the side to move may castle long: the
// right is held, the rook is home, b, c and d are empty, and e, d, c are not
// attacked. The b square only has to be empty.
func (b *Board) CanCastleQueenside() bool {
	us := b.side
	if !b.castling.CanCastle(us, false) {
		return false
	}
	king := kingHome[us]
	if b.mailbox[king] != NewPiece(King, us) || b.mailbox[king-4] != NewPiece(Rook, us) {
		return false
	}
	if b.occupancy.All&(SquareBB(king-1)|SquareBB(king-2)|SquareBB(king-3)) != 0 {
		return false
	}
	return !b.IsSquareAttacked(king) &&
		!b.IsSquareAttacked(king-1) &&
		!b.IsSquareAttacked(king-2)
}
