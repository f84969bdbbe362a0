package board

import "errors"

var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidFEN    = errors.New("invalid fen")
	ErrInvalidMove   = errors.New("invalid move")
	ErrMagicNotFound = errors.New("magic not found")
)
