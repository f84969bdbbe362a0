package board

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	whiteGlyph = color.New(color.FgRed, color.Bold)
	blackGlyph = color.New(color.FgBlue, color.Bold)
)

func plainGlyph(p Piece) string {
	if p == NoPiece {
		return "."
	}
	return p.String()
}

func coloredGlyph(p Piece) string {
	switch p.Color() {
	case White:
		return whiteGlyph.Sprint(p.String())
	case Black:
		return blackGlyph.Sprint(p.String())
	}
	return "."
}

// Render writes a framed board to w, rank 8 on top. White pieces are printed
// red and black pieces blue when the terminal supports color.
func (b *Board) Render(w io.Writer) {
	b.render(w, coloredGlyph)
}

func (b *Board) render(w io.Writer, glyph func(Piece) string) {
	fmt.Fprintln(w, "  +-----------------+")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(w, "%d | ", rank+1)
		for file := 0; file < 8; file++ {
			fmt.Fprintf(w, "%s ", glyph(b.mailbox[NewSquare(file, rank)]))
		}
		fmt.Fprintln(w, "|")
	}
	fmt.Fprintln(w, "  +-----------------+")
	fmt.Fprintln(w, "    a b c d e f g h")
}
