package uci

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ns8/epsilon/internal/board"
	"github.com/ns8/epsilon/internal/engine"
)

const statsRule = "------------------------------"

// handleDebug dispatches the "debug" command family.
func (u *UCI) handleDebug(line string, args []string) {
	unknown := func() {
		fmt.Fprintf(u.out, "info string Unknown debug command: %s\n", line)
	}
	if len(args) == 0 {
		unknown()
		return
	}

	switch args[0] {
	case "fen":
		fmt.Fprintln(u.out, u.board.ToFEN())

	case "print":
		if len(args) == 1 {
			u.board.Render(u.out)
			return
		}
		switch args[1] {
		case "occupied":
			occ := u.board.Occupancy()
			fmt.Fprintln(u.out, "Black")
			fmt.Fprint(u.out, occ.Black)
			fmt.Fprintln(u.out, "White")
			fmt.Fprint(u.out, occ.White)
			fmt.Fprintln(u.out, "All")
			fmt.Fprint(u.out, occ.All)
		case "attacks", "moves":
			if len(args) < 3 {
				unknown()
				return
			}
			u.printPieceTargets(args[1] == "attacks", args[2])
		default:
			unknown()
		}

	case "pos":
		if len(args) < 2 {
			unknown()
			return
		}
		fen := strings.Join(args[1:], " ")
		if args[1] == "kiwipete" {
			fen = board.KiwipeteFEN
		}
		b, err := board.ParseFEN(fen)
		if err != nil {
			u.info("Invalid FEN: %v", err)
			return
		}
		u.board = b

	case "enpassant":
		if ep := u.board.EnPassant(); ep != board.NoSquare {
			fmt.Fprintln(u.out, ep)
		} else {
			fmt.Fprintln(u.out, "None")
		}

	case "move":
		if len(args) < 2 {
			unknown()
			return
		}
		m, err := u.board.MoveFromUCI(args[1])
		if err != nil {
			u.info("%v", err)
			return
		}
		u.board.ApplyMove(m)
		if u.board.WasIllegalLastMove() {
			u.info("%s leaves the king in check", m)
		}

	case "undo":
		if u.board.HistoryLen() == 0 {
			u.info("Nothing to undo")
			return
		}
		u.board.UndoLast()

	case "castling":
		fmt.Fprintln(u.out, u.board.Castling())

	case "legal":
		moves := u.board.LegalMoves()
		if len(moves) == 0 {
			fmt.Fprintln(u.out, "None")
		}
		for _, m := range moves {
			fmt.Fprintf(u.out, "%s %s\n", m, u.board.SAN(m))
		}

	case "eval":
		fmt.Fprintln(u.out, u.board.Evaluate())

	case "allstats":
		u.printAllStats()

	case "perft":
		if len(args) >= 3 && args[1] == "singleline" {
			if depth, ok := u.parseDepth(args[2]); ok {
				nodes, elapsed := u.timedPerft(depth)
				fmt.Fprintf(u.out, "%d; %f; %d\n", nodes, elapsed.Seconds(), nodesPerSecond(nodes, elapsed))
			}
			return
		}
		if len(args) < 2 || args[1] == "singleline" {
			unknown()
			return
		}
		u.handlePerft(args[1:])

	case "divide":
		if len(args) < 2 {
			unknown()
			return
		}
		depth, ok := u.parseDepth(args[1])
		if !ok {
			return
		}
		total := engine.Divide(u.board, depth, func(m board.Move, n uint64) {
			fmt.Fprintf(u.out, "%s: %d\n", m, n)
		})
		fmt.Fprintf(u.out, "\n%d\n", total)

	case "perftstats":
		if len(args) < 2 {
			unknown()
			return
		}
		depth, ok := u.parseDepth(args[1])
		if !ok {
			return
		}
		stats := engine.CollectPerftStats(u.board, depth)
		u.printer.Fprintf(u.out, "Nodes: %d\n", stats.Nodes)
		u.printer.Fprintf(u.out, "Captures: %d\n", stats.Captures)
		u.printer.Fprintf(u.out, "En passant: %d\n", stats.EnPassant)
		u.printer.Fprintf(u.out, "Castles: %d\n", stats.Castles)
		u.printer.Fprintf(u.out, "Promotions: %d\n", stats.Promotions)
		u.printer.Fprintf(u.out, "Checks: %d\n", stats.Checks)

	default:
		unknown()
	}
}

// printPieceTargets prints the capture or quiet destinations of the piece on sq.
func (u *UCI) printPieceTargets(attacks bool, s string) {
	sq, err := board.ParseSquare(s)
	if err != nil {
		u.info("%v", err)
		return
	}
	p := u.board.PieceAt(sq)
	if p == board.NoPiece {
		return
	}
	if attacks {
		fmt.Fprint(u.out, u.board.AttacksOf(p.Type(), p.Color(), sq))
	} else {
		fmt.Fprint(u.out, u.board.MovesOf(p.Type(), p.Color(), sq))
	}
}

func (u *UCI) printAllStats() {
	b := u.board
	fmt.Fprintln(u.out, statsRule)
	fmt.Fprintf(u.out, "Castling rights: %s\n", b.Castling())
	fmt.Fprintf(u.out, "Color to move: %s\n", b.SideToMove())
	if ep := b.EnPassant(); ep != board.NoSquare {
		fmt.Fprintf(u.out, "En passant square: %s\n", ep)
	} else {
		fmt.Fprintln(u.out, "En passant square: None")
	}
	fmt.Fprintf(u.out, "Half-move clock: %d\n", b.HalfMoveClock())
	fmt.Fprintf(u.out, "Full-move number: %d\n", b.FullMoveNumber())
	fmt.Fprintf(u.out, "Hash: %#016x\n", b.Hash())

	tt := u.engine.TT()
	u.printer.Fprintf(u.out, "TT entries: %d (%d MB), hashfull %d, hit rate %.1f%%\n",
		tt.Size(), u.engine.HashSize(), tt.HashFull(), tt.HitRate())

	if u.store != nil {
		stats, err := u.store.LoadStats()
		if err != nil {
			u.info("Failed to load stats: %v", err)
		} else {
			u.printer.Fprintf(u.out, "Searches: %d, nodes %d, deepest %d, %.0f nodes/s\n",
				stats.Searches, stats.Nodes, stats.DeepestDepth, stats.NodesPerSecond())
		}
	}
	fmt.Fprintln(u.out, statsRule)
}

func (u *UCI) parseDepth(s string) (int, bool) {
	depth, err := strconv.Atoi(s)
	if err != nil || depth < 0 {
		u.info("Invalid depth: %q", s)
		return 0, false
	}
	return depth, true
}

// timedPerft counts nodes below the current position, consulting the perft
// cache when storage is attached.
func (u *UCI) timedPerft(depth int) (uint64, time.Duration) {
	fen := u.board.ToFEN()
	if u.store != nil {
		rec, found, err := u.store.LoadPerft(fen, depth)
		if err != nil {
			u.info("Failed to read perft cache: %v", err)
		} else if found {
			u.info("perft %d served from cache", depth)
			return rec.Nodes, rec.Elapsed
		}
	}

	start := time.Now()
	nodes := engine.Perft(u.board, depth)
	elapsed := time.Since(start)

	if u.store != nil {
		if err := u.store.SavePerft(fen, depth, nodes, elapsed); err != nil {
			u.info("Failed to write perft cache: %v", err)
		}
	}
	return nodes, elapsed
}

// handlePerft runs a perft test, at depth 5 unless one is given.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		var ok bool
		if depth, ok = u.parseDepth(args[0]); !ok {
			return
		}
	}

	nodes, elapsed := u.timedPerft(depth)
	u.printer.Fprintf(u.out, "Time: %.3fs\n", elapsed.Seconds())
	u.printer.Fprintf(u.out, "Nodes: %d\n", nodes)
	u.printer.Fprintf(u.out, "Nodes/s: %d\n", nodesPerSecond(nodes, elapsed))
}

func nodesPerSecond(nodes uint64, elapsed time.Duration) uint64 {
	if elapsed <= 0 {
		return 0
	}
	return uint64(float64(nodes) / elapsed.Seconds())
}
