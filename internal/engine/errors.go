package engine

import "errors"

var (
	// ErrCheckmate is returned by a search whose root position has no legal
	// moves and the side to move is in check.
	ErrCheckmate = errors.New("checkmate")

	// ErrStalemate is returned by a search whose root position has no legal
	// moves and the side to move is not in check.
	ErrStalemate = errors.New("stalemate")

	ErrInvalidDepth = errors.New("invalid search depth")
)
