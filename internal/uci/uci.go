// Package uci implements the line protocol spoken by the engine: a subset of
// the Universal Chess Interface plus a family of debug commands.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ns8/epsilon/internal/board"
	"github.com/ns8/epsilon/internal/engine"
	"github.com/ns8/epsilon/internal/storage"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine *engine.Engine
	board  *board.Board
	store  *storage.Storage

	out     io.Writer
	errOut  io.Writer
	printer *message.Printer
}

// Option configures a UCI handler.
type Option func(*UCI)

// WithOutput sets the writers for replies and diagnostics.
func WithOutput(out, errOut io.Writer) Option {
	return func(u *UCI) {
		u.out = out
		u.errOut = errOut
	}
}

// WithStorage persists options, search statistics and perft results.
func WithStorage(s *storage.Storage) Option {
	return func(u *UCI) {
		u.store = s
	}
}

// New creates a new UCI protocol handler.
func New(eng *engine.Engine, opts ...Option) *UCI {
	u := &UCI{
		engine:  eng,
		board:   board.StartPosition(),
		out:     os.Stdout,
		errOut:  os.Stderr,
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Board returns the current position.
func (u *UCI) Board() *board.Board {
	return u.board
}

// Run reads commands from r until quit or end of input.
func (u *UCI) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		if !u.Execute(scanner.Text()) {
			return nil
		}
	}

	return scanner.Err()
}

// Execute handles one command line. It returns false once the session should end.
func (u *UCI) Execute(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	parts := strings.Fields(line)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "uci":
		u.handleUCI()
	case "isready":
		fmt.Fprintln(u.out, "readyok")
	case "ucinewgame":
		u.handleNewGame()
	case "position":
		u.handlePosition(line, args)
	case "go":
		u.handleGo(args)
	case "stop":
		// Searches are synchronous; there is nothing to interrupt.
	case "quit":
		return false
	case "setoption":
		u.handleSetOption(args)
	// Debug commands
	case "d":
		u.board.Render(u.out)
	case "perft":
		u.handlePerft(args)
	case "debug":
		u.handleDebug(line, args)
	default:
		fmt.Fprintf(u.out, "info string Unknown command: %s\n", line)
	}

	return true
}

func (u *UCI) info(format string, args ...any) {
	fmt.Fprintf(u.errOut, "info string "+format+"\n", args...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	fmt.Fprintln(u.out, "id name Epsilon")
	fmt.Fprintln(u.out, "id author ns8")
	fmt.Fprintln(u.out)
	fmt.Fprintf(u.out, "option name Hash type spin default %d min 1 max %d\n", u.engine.HashSize(), engine.MaxHashMB)
	fmt.Fprintf(u.out, "option name Depth type spin default %d min 1 max %d\n", u.engine.Depth(), engine.MaxDepth)
	fmt.Fprintln(u.out, "uciok")
}

// handleNewGame resets the engine for a new game.
func (u *UCI) handleNewGame() {
	u.engine.Clear()
	u.board = board.StartPosition()
}

// handlePosition parses and sets up a position. The current board is only
// replaced when the position and every move parse.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (u *UCI) handlePosition(line string, args []string) {
	if len(args) == 0 {
		fmt.Fprintf(u.out, "info string Unknown command: %s\n", line)
		return
	}

	// Find "moves" keyword
	fenEnd, moveStart := len(args), len(args)
	for i, arg := range args {
		if arg == "moves" {
			fenEnd, moveStart = i, i+1
			break
		}
	}

	var b *board.Board
	switch args[0] {
	case "startpos":
		b = board.StartPosition()
	case "fen":
		var err error
		b, err = board.ParseFEN(strings.Join(args[1:fenEnd], " "))
		if err != nil {
			u.info("Invalid FEN: %v", err)
			return
		}
	default:
		fmt.Fprintf(u.out, "info string Unknown command: %s\n", line)
		return
	}

	for _, moveStr := range args[moveStart:] {
		if err := playLegal(b, moveStr); err != nil {
			u.info("Invalid move: %v", err)
			return
		}
	}

	u.board = b
}

// playLegal applies a move in notation if it is legal in b.
func playLegal(b *board.Board, s string) error {
	m, err := b.MoveFromUCI(s)
	if err != nil {
		return err
	}
	b.ApplyMove(m)
	if b.WasIllegalLastMove() {
		b.UndoLast()
		return fmt.Errorf("%w: %s leaves the king in check", board.ErrInvalidMove, s)
	}
	return nil
}

// GoOptions holds the parsed arguments of "go". Only the depth limits the
// search; clock arguments are accepted and ignored.
type GoOptions struct {
	Depth int
}

func (u *UCI) parseGoOptions(args []string) (GoOptions, error) {
	opts := GoOptions{Depth: u.engine.Depth()}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%w: missing value", engine.ErrInvalidDepth)
			}
			d, err := strconv.Atoi(args[i+1])
			if err != nil || d < 1 || d > engine.MaxDepth {
				return opts, fmt.Errorf("%w: %q", engine.ErrInvalidDepth, args[i+1])
			}
			opts.Depth = d
			i++
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime", "nodes", "mate":
			i++
		}
	}

	return opts, nil
}

// handleGo runs a fixed-depth search and replies with the best move.
func (u *UCI) handleGo(args []string) {
	opts, err := u.parseGoOptions(args)
	if err != nil {
		u.info("%v", err)
		return
	}

	u.engine.OnInfo = u.sendInfo
	res, err := u.engine.SearchDepth(u.board, opts.Depth)
	switch {
	case errors.Is(err, engine.ErrCheckmate), errors.Is(err, engine.ErrStalemate):
		u.info("No legal moves: %v", err)
		fmt.Fprintln(u.out, "bestmove 0000")
		return
	case err != nil:
		u.info("Search failed: %v", err)
		fmt.Fprintln(u.out, "bestmove 0000")
		return
	}

	if u.store != nil {
		if err := u.store.RecordSearch(opts.Depth, res.Nodes, res.Elapsed); err != nil {
			u.info("Failed to record search: %v", err)
		}
	}

	fmt.Fprintf(u.out, "bestmove %s\n", res.Move)
}

func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))
	parts = append(parts, "score "+engine.ScoreToString(info.Score))
	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	if info.HashFull > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %d", info.HashFull))
	}

	if len(info.PV) > 0 {
		pv := make([]string, len(info.PV))
		for i, m := range info.PV {
			pv[i] = m.String()
		}
		parts = append(parts, "pv "+strings.Join(pv, " "))
	}

	fmt.Fprintf(u.out, "info %s\n", strings.Join(parts, " "))
}

func (u *UCI) handleSetOption(args []string) {
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		u.info("Invalid value for %s: %q", name, value)
		return
	}

	switch strings.ToLower(name) {
	case "hash":
		err = u.engine.SetHashSize(n)
	case "depth":
		err = u.engine.SetDepth(n)
	default:
		u.info("Unknown option: %s", name)
		return
	}
	if err != nil {
		u.info("Invalid value for %s: %v", name, err)
		return
	}

	u.saveOptions()
}

func (u *UCI) saveOptions() {
	if u.store == nil {
		return
	}
	opts := &storage.Options{HashMB: u.engine.HashSize(), Depth: u.engine.Depth()}
	if err := u.store.SaveOptions(opts); err != nil {
		u.info("Failed to save options: %v", err)
	}
}
