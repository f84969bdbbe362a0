package board

import (
	"fmt"
	"strings"
)

// Occupancy holds the aggregate occupancy masks derived from the piece bitboards.
type Occupancy struct {
	White Bitboard
	Black Bitboard
	All   Bitboard
}

// Of returns the occupancy of one color.
func (o Occupancy) Of(c Color) Bitboard {
	if c == White {
		return o.White
	}
	return o.Black
}

// historyState is a full snapshot of the mutable board fields. ApplyMove pushes
// one and UndoLast pops it back verbatim.
type historyState struct {
	pieces    [12]Bitboard // indexed by Piece
	mailbox   [64]Piece
	occupancy Occupancy
	side      Color
	enPassant Square
	castling  CastlingRights
	halfMove  int
	fullMove  int
}

// Board is the mutable chess position with a snapshot stack for reversible moves.
type Board struct {
	historyState
	history []historyState
}

// NewBoard returns an empty board with White to move and no rights.
func NewBoard() *Board {
	b := &Board{}
	b.enPassant = NoSquare
	b.fullMove = 1
	for sq := range b.mailbox {
		b.mailbox[sq] = NoPiece
	}
	return b
}

// StartPosition returns a board set up with the standard initial position.
func StartPosition() *Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// Place puts p on sq. Occupancy is not updated; call UpdateOccupancy after a
// batch of edits.
func (b *Board) Place(sq Square, p Piece) {
	b.pieces[p] |= SquareBB(sq)
	b.mailbox[sq] = p
}

// Remove takes p off sq. Occupancy is not updated.
func (b *Board) Remove(sq Square, p Piece) {
	b.pieces[p] &^= SquareBB(sq)
	b.mailbox[sq] = NoPiece
}

// UpdateOccupancy recalculates the occupancy masks from the piece bitboards.
func (b *Board) UpdateOccupancy() {
	var white, black Bitboard
	for pt := Pawn; pt <= King; pt++ {
		white |= b.pieces[NewPiece(pt, White)]
		black |= b.pieces[NewPiece(pt, Black)]
	}
	b.occupancy = Occupancy{White: white, Black: black, All: white | black}
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (b *Board) PieceAt(sq Square) Piece {
	return b.mailbox[sq]
}

// Pieces returns the bitboard of one piece.
func (b *Board) Pieces(p Piece) Bitboard {
	return b.pieces[p]
}

// Occupancy returns the aggregate occupancy masks.
func (b *Board) Occupancy() Occupancy {
	return b.occupancy
}

// SideToMove returns the color to move.
func (b *Board) SideToMove() Color {
	return b.side
}

// EnPassant returns the en passant target square, or NoSquare.
func (b *Board) EnPassant() Square {
	return b.enPassant
}

// Castling returns the castling rights still held.
func (b *Board) Castling() CastlingRights {
	return b.castling
}

// HalfMoveClock returns the number of plies since the last pawn move or capture.
func (b *Board) HalfMoveClock() int {
	return b.halfMove
}

// FullMoveNumber returns the move counter, starting at 1 and incremented after Black moves.
func (b *Board) FullMoveNumber() int {
	return b.fullMove
}

// HistoryLen returns the number of moves that can be undone.
func (b *Board) HistoryLen() int {
	return len(b.history)
}

// KingSquare returns the square of the king of color c, or NoSquare.
func (b *Board) KingSquare(c Color) Square {
	return b.pieces[NewPiece(King, c)].LSB()
}

// String renders the board without colors.
func (b *Board) String() string {
	var sb strings.Builder
	b.render(&sb, plainGlyph)
	fmt.Fprintf(&sb, "Fen: %s\n", b.ToFEN())
	return sb.String()
}
