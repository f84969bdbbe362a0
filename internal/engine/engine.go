package engine

import (
	"fmt"
	"time"

	"github.com/ns8/epsilon/internal/board"
)

// Defaults used by NewEngine callers that have no stored configuration.
const (
	DefaultHashMB = 16
	DefaultDepth  = 5
	MaxHashMB     = 4096
	MaxDepth      = 12
)

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	PV       []board.Move
	HashFull int // Permille of hash table used
}

// Result is the outcome of one search.
type Result struct {
	Move    board.Move
	Score   int
	Nodes   uint64
	Elapsed time.Duration
	PV      []board.Move
}

// Engine owns the transposition table and the default search depth. The
// table persists across searches until Clear or SetHashSize.
type Engine struct {
	searcher *Searcher
	tt       *TranspositionTable
	hashMB   int
	depth    int

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new chess engine with the given transposition table size
// in MB and default search depth.
func NewEngine(ttSizeMB, depth int) *Engine {
	tt := NewTranspositionTable(ttSizeMB)
	return &Engine{
		searcher: NewSearcher(tt),
		tt:       tt,
		hashMB:   ttSizeMB,
		depth:    depth,
	}
}

// Search finds the best move at the engine's default depth.
func (e *Engine) Search(b *board.Board) (Result, error) {
	return e.SearchDepth(b, e.depth)
}

// SearchDepth finds the best move at the given depth. If the side to move has
// no legal moves the error is ErrCheckmate or ErrStalemate.
func (e *Engine) SearchDepth(b *board.Board, depth int) (Result, error) {
	e.searcher.Reset()
	start := time.Now()

	move, score, err := e.searcher.Search(b, depth)
	res := Result{
		Move:    move,
		Score:   score,
		Nodes:   e.searcher.Nodes(),
		Elapsed: time.Since(start),
		PV:      e.searcher.GetPV(),
	}
	if err != nil {
		return res, err
	}

	if e.OnInfo != nil {
		e.OnInfo(SearchInfo{
			Depth:    depth,
			Score:    res.Score,
			Nodes:    res.Nodes,
			Time:     res.Elapsed,
			PV:       res.PV,
			HashFull: e.tt.HashFull(),
		})
	}

	return res, nil
}

// SetHashSize replaces the transposition table with an empty one of sizeMB.
func (e *Engine) SetHashSize(sizeMB int) error {
	if sizeMB < 1 || sizeMB > MaxHashMB {
		return fmt.Errorf("hash size %d MB out of range [1, %d]", sizeMB, MaxHashMB)
	}
	e.tt = NewTranspositionTable(sizeMB)
	e.searcher = NewSearcher(e.tt)
	e.hashMB = sizeMB
	return nil
}

// HashSize returns the configured table size in MB.
func (e *Engine) HashSize() int {
	return e.hashMB
}

// SetDepth sets the default search depth.
func (e *Engine) SetDepth(depth int) error {
	if depth < 1 || depth > MaxDepth {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidDepth, depth, MaxDepth)
	}
	e.depth = depth
	return nil
}

// Depth returns the default search depth.
func (e *Engine) Depth() int {
	return e.depth
}

// TT returns the engine's transposition table.
func (e *Engine) TT() *TranspositionTable {
	return e.tt
}

// Clear clears the transposition table.
func (e *Engine) Clear() {
	e.tt.Clear()
}

// ScoreToString converts a score to the UCI "cp"/"mate" form.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		return fmt.Sprintf("mate %d", (MateScore-score+1)/2)
	}
	if score < -MateScore+MaxPly {
		return fmt.Sprintf("mate -%d", (MateScore+score)/2)
	}
	return fmt.Sprintf("cp %d", score)
}
