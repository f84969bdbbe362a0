package board

// Zobrist keys for position hashing, drawn from a fixed seed so hashes are
// stable across runs.
var (
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][Square]
	zobristEnPassant  [8]uint64        // One per file
	zobristCastling   [4]uint64        // One per right, in K, Q, k, q order
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

func initZobrist() {
	rng := NewPseudoRand(0x98F107A2BEEF1234)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.Uint64()
			}
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.Uint64()
	}

	for i := range zobristCastling {
		zobristCastling[i] = rng.Uint64()
	}

	zobristSideToMove = rng.Uint64()
}

// Hash computes the Zobrist key of the position from scratch.
func (b *Board) Hash() uint64 {
	var hash uint64

	for p := WhitePawn; p < NoPiece; p++ {
		bb := b.pieces[p]
		for bb != 0 {
			sq := bb.PopLSB()
			hash ^= zobristPiece[p.Color()][p.Type()][sq]
		}
	}

	if b.side == Black {
		hash ^= zobristSideToMove
	}

	for i, right := range castlingOrder {
		if b.castling&right != 0 {
			hash ^= zobristCastling[i]
		}
	}

	if b.enPassant != NoSquare {
		hash ^= zobristEnPassant[b.enPassant.File()]
	}

	return hash
}
