// Command magicgen searches for magic multipliers for every square and writes
// them as the Go source of internal/board/magic_data.go.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"

	"github.com/ns8/epsilon/internal/board"
)

var (
	seed  = flag.Uint64("seed", 0x9E3779B97F4A7C15, "non-zero generator seed")
	tries = flag.Int("tries", 100_000_000, "candidates per square before giving up")
	out   = flag.String("out", "internal/board/magic_data.go", "output file, - for stdout")
)

func main() {
	flag.Parse()
	if *seed == 0 {
		log.Fatal("seed must be non-zero")
	}

	rng := board.NewPseudoRand(*seed)

	var buf bytes.Buffer
	buf.WriteString("// Code generated by cmd/magicgen. DO NOT EDIT.\n\n")
	buf.WriteString("package board\n\n")
	buf.WriteString("// Magic multipliers per square, A1 first. Regenerate with cmd/magicgen.\n\n")

	for _, s := range []board.Slider{board.BishopSlider, board.RookSlider} {
		fmt.Fprintf(&buf, "var %sMagicNumbers = [64]uint64{\n", s)
		for sq := board.A1; sq <= board.H8; sq++ {
			magic, err := board.FindMagic(s, sq, rng, *tries)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprintf(&buf, "%#016x,", magic)
			if sq%4 == 3 {
				buf.WriteByte('\n')
			} else {
				buf.WriteByte(' ')
			}
		}
		buf.WriteString("}\n\n")
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatal("could not format output: ", err)
	}

	if *out == "-" {
		os.Stdout.Write(src)
		return
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", *out)
}
