package board

import "strings"

// SAN returns the move in Standard Algebraic Notation. m must be a resolved
// pseudolegal move of the side to move; the board is left unchanged.
func (b *Board) SAN(m Move) string {
	if m == NoMove {
		return "-"
	}

	switch m.Kind() {
	case MoveCastleKingside:
		return "O-O" + b.checkSuffix(m)
	case MoveCastleQueenside:
		return "O-O-O" + b.checkSuffix(m)
	}

	from, to := m.From(), m.To()
	pt := b.mailbox[from].Type()

	var sb strings.Builder
	if pt != Pawn {
		sb.WriteByte("PNBRQK"[pt])
		sb.WriteString(b.disambiguation(m, pt))
	}

	if b.mailbox[to] != NoPiece || m.Kind() == MoveEnPassant {
		if pt == Pawn {
			sb.WriteByte('a' + byte(from.File()))
		}
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())

	if m.Kind() == MovePromotion {
		sb.WriteByte('=')
		sb.WriteByte("PNBRQK"[m.Promotion()])
	}

	sb.WriteString(b.checkSuffix(m))
	return sb.String()
}

// checkSuffix returns "#" or "+" when m mates or checks, else "".
func (b *Board) checkSuffix(m Move) string {
	b.ApplyMove(m)
	defer b.UndoLast()

	if !b.InCheck() {
		return ""
	}
	if len(b.LegalMoves()) == 0 {
		return "#"
	}
	return "+"
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from another legal move of the same piece type to the same square.
func (b *Board) disambiguation(m Move, pt PieceType) string {
	from, to := m.From(), m.To()

	var sameFile, sameRank, ambiguous bool
	for _, other := range b.LegalMoves() {
		of := other.From()
		if other.To() != to || of == from || b.mailbox[of].Type() != pt {
			continue
		}
		ambiguous = true
		if of.File() == from.File() {
			sameFile = true
		}
		if of.Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}
