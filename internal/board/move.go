package board

import "fmt"

// MoveKind classifies a move. MoveUnknown marks a move decoded from notation
// whose kind has not been resolved against a board yet.
type MoveKind uint8

const (
	MoveUnknown MoveKind = iota
	MoveQuiet
	MoveCapture
	MoveEnPassant
	MoveCastleKingside
	MoveCastleQueenside
	MovePromotion
)

func (k MoveKind) String() string {
	switch k {
	case MoveQuiet:
		return "quiet"
	case MoveCapture:
		return "capture"
	case MoveEnPassant:
		return "en passant"
	case MoveCastleKingside:
		return "castle kingside"
	case MoveCastleQueenside:
		return "castle queenside"
	case MovePromotion:
		return "promotion"
	default:
		return "unknown"
	}
}

// Move encodes a chess move in 18 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-14: move kind
// bits 15-17: promotion piece type (only with MovePromotion)
type Move uint32

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a move of the given kind.
func NewMove(from, to Square, kind MoveKind) Move {
	return Move(from) | Move(to)<<6 | Move(kind)<<12
}

// NewPromotion creates a promotion to the given piece type.
func NewPromotion(from, to Square, promo PieceType) Move {
	return NewMove(from, to, MovePromotion) | Move(promo)<<15
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Kind returns the move kind.
func (m Move) Kind() MoveKind {
	return MoveKind((m >> 12) & 7)
}

// Promotion returns the promotion piece type, or NoPieceType for other kinds.
func (m Move) Promotion() PieceType {
	if m.Kind() != MovePromotion {
		return NoPieceType
	}
	return PieceType((m >> 15) & 7)
}

// WithKind returns the move with its kind replaced.
func (m Move) WithKind(kind MoveKind) Move {
	return m&^(7<<12) | Move(kind)<<12
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.Kind() == MovePromotion {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove decodes a move in UCI notation. The result carries MoveUnknown
// unless a promotion suffix is present; Board.ResolveMoveKind completes it.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("%w: invalid promotion piece %q", ErrInvalidMove, s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	return NewMove(from, to, MoveUnknown), nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
