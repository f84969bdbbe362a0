package board

// Evaluate returns the material balance from the side to move's perspective.
func (b *Board) Evaluate() int {
	score := 0
	for pt := Pawn; pt <= King; pt++ {
		score += PieceValue[pt] * (b.pieces[NewPiece(pt, White)].PopCount() - b.pieces[NewPiece(pt, Black)].PopCount())
	}
	if b.side == Black {
		return -score
	}
	return score
}
