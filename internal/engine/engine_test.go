package engine

import (
	"errors"
	"testing"

	"github.com/ns8/epsilon/internal/board"
)

func mustParseFEN(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func TestTranspositionStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1)

	if _, ok := tt.Probe(0xDEADBEEF); ok {
		t.Error("Expected cache miss on empty table")
	}

	tt.Store(0xDEADBEEF, 4, -123, TTLowerBound)
	entry, ok := tt.Probe(0xDEADBEEF)
	if !ok {
		t.Fatal("Expected cache hit after store")
	}
	if entry.Key != 0xDEADBEEF || entry.Depth != 4 || entry.Score != -123 || entry.Flag != TTLowerBound {
		t.Errorf("Wrong entry: %+v", entry)
	}

	// Zero key and zero depth still count as stored.
	tt.Store(0, 0, 7, TTExact)
	if entry, ok := tt.Probe(0); !ok || entry.Score != 7 {
		t.Errorf("Expected hit for key 0, got %+v ok=%v", entry, ok)
	}
}

func TestTranspositionDepthPreferred(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(0x1234567890ABCDEF)

	tt.Store(key, 6, 50, TTExact)
	tt.Store(key, 3, -50, TTUpperBound)
	if entry, _ := tt.Probe(key); entry.Depth != 6 || entry.Score != 50 {
		t.Errorf("Shallower store replaced deeper entry: %+v", entry)
	}

	tt.Store(key, 6, 20, TTLowerBound)
	if entry, _ := tt.Probe(key); entry.Score != 20 || entry.Flag != TTLowerBound {
		t.Errorf("Equal-depth store should replace: %+v", entry)
	}

	tt.Store(key, 8, 30, TTExact)
	if entry, _ := tt.Probe(key); entry.Depth != 8 || entry.Score != 30 {
		t.Errorf("Deeper store should replace: %+v", entry)
	}
}

func TestTranspositionCollision(t *testing.T) {
	tt := NewTranspositionTable(0)
	if tt.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", tt.Size())
	}

	tt.Store(1, 5, 100, TTExact)
	if _, ok := tt.Probe(2); ok {
		t.Error("Different key in the same slot must miss")
	}

	tt.Store(2, 4, 200, TTExact)
	if entry, ok := tt.Probe(1); !ok || entry.Score != 100 {
		t.Errorf("Shallower colliding store evicted entry: %+v ok=%v", entry, ok)
	}

	tt.Store(2, 5, 200, TTExact)
	if _, ok := tt.Probe(1); ok {
		t.Error("Old key should miss after replacement")
	}
	if entry, ok := tt.Probe(2); !ok || entry.Score != 200 {
		t.Errorf("Expected replacement entry: %+v ok=%v", entry, ok)
	}
}

func TestTranspositionStats(t *testing.T) {
	tt := NewTranspositionTable(1)
	if got, want := tt.Size(), uint64(1024*1024/16); got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}

	for key := uint64(0); key < 500; key++ {
		tt.Store(key, 1, 0, TTExact)
	}
	if got := tt.HashFull(); got != 500 {
		t.Errorf("HashFull() = %d, want 500", got)
	}

	tt.Probe(1)
	tt.Probe(100000)
	if got := tt.HitRate(); got != 50 {
		t.Errorf("HitRate() = %v, want 50", got)
	}

	tt.Clear()
	if tt.HashFull() != 0 || tt.HitRate() != 0 {
		t.Error("Clear left entries or statistics behind")
	}
	if _, ok := tt.Probe(1); ok {
		t.Error("Expected miss after Clear")
	}
}

func TestMateScoreAdjustment(t *testing.T) {
	for _, tc := range []struct{ score, ply int }{
		{MateScore - 3, 2},
		{-MateScore + 4, 4},
		{150, 7},
	} {
		stored := AdjustScoreToTT(tc.score, tc.ply)
		if got := AdjustScoreFromTT(stored, tc.ply); got != tc.score {
			t.Errorf("round trip of %d at ply %d = %d", tc.score, tc.ply, got)
		}
	}
	if got := AdjustScoreToTT(-MateScore+3, 3); got != -MateScore {
		t.Errorf("mate at the node itself should be stored as %d, got %d", -MateScore, got)
	}
}

func TestSearchMateInOne(t *testing.T) {
	for _, depth := range []int{2, 3} {
		b := mustParseFEN(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
		s := NewSearcher(NewTranspositionTable(1))

		move, score, err := s.Search(b, depth)
		if err != nil {
			t.Fatal(err)
		}
		if move.String() != "a1a8" {
			t.Errorf("depth %d: best move = %s, want a1a8", depth, move)
		}
		if score != MateScore-1 {
			t.Errorf("depth %d: score = %d, want %d", depth, score, MateScore-1)
		}
		if pv := s.GetPV(); len(pv) == 0 || pv[0] != move {
			t.Errorf("depth %d: PV %v does not start with %s", depth, pv, move)
		}
	}
}

func TestSearchWinsHangingQueen(t *testing.T) {
	b := mustParseFEN(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")
	move, score, err := NewSearcher(NewTranspositionTable(1)).Search(b, 2)
	if err != nil {
		t.Fatal(err)
	}
	if move.String() != "d2d5" || move.Kind() != board.MoveCapture {
		t.Errorf("best move = %s (%s), want d2d5 capture", move, move.Kind())
	}
	if score != 500 {
		t.Errorf("score = %d, want 500", score)
	}
}

func TestSearchFirstOfEqualMoves(t *testing.T) {
	b := board.StartPosition()
	move, score, err := NewSearcher(NewTranspositionTable(1)).Search(b, 1)
	if err != nil {
		t.Fatal(err)
	}
	if move.String() != "b1a3" || score != 0 {
		t.Errorf("Search(start, 1) = %s %d, want b1a3 0", move, score)
	}
}

func TestSearchDeterministic(t *testing.T) {
	for _, fen := range []string{board.StartFEN, board.KiwipeteFEN} {
		b := mustParseFEN(t, fen)

		m1, s1, err := NewSearcher(NewTranspositionTable(4)).Search(b, 3)
		if err != nil {
			t.Fatal(err)
		}
		m2, s2, err := NewSearcher(NewTranspositionTable(4)).Search(b, 3)
		if err != nil {
			t.Fatal(err)
		}

		if m1 != m2 || s1 != s2 {
			t.Errorf("%s: got %s/%d then %s/%d", fen, m1, s1, m2, s2)
		}
		if b.HistoryLen() != 0 || b.ToFEN() != fen {
			t.Errorf("search left the board modified: %s (history %d)", b.ToFEN(), b.HistoryLen())
		}
	}
}

// minimax is a plain negamax without pruning or table, used as a reference.
func minimax(b *board.Board, depth, ply int) int {
	if depth == 0 {
		return b.Evaluate()
	}
	best, legal := -Infinity, 0
	for _, m := range b.LegalMoves() {
		legal++
		b.ApplyMove(m)
		best = max(best, -minimax(b, depth-1, ply+1))
		b.UndoLast()
	}
	if legal == 0 {
		if b.InCheck() {
			return -MateScore + ply
		}
		return 0
	}
	return best
}

func TestSearchMatchesMinimax(t *testing.T) {
	fens := []string{
		board.StartFEN,
		board.KiwipeteFEN,
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/3q4/8/8/3R4/4K3 b - - 0 1",
		"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
	}

	// One table carries bounds from every earlier search into the next.
	shared := NewSearcher(NewTranspositionTable(4))

	for _, fen := range fens {
		b := mustParseFEN(t, fen)
		for depth := 1; depth <= 3; depth++ {
			want := minimax(b, depth, 0)

			_, fresh, err := NewSearcher(NewTranspositionTable(4)).Search(b, depth)
			if err != nil {
				t.Fatal(err)
			}
			if fresh != want {
				t.Errorf("%s depth %d: fresh table score = %d, want %d", fen, depth, fresh, want)
			}

			_, reused, err := shared.Search(b, depth)
			if err != nil {
				t.Fatal(err)
			}
			if reused != want {
				t.Errorf("%s depth %d: shared table score = %d, want %d", fen, depth, reused, want)
			}
		}
	}

	if shared.tt.HitRate() == 0 {
		t.Error("shared table was never hit")
	}
}

func TestSearchNoLegalMoves(t *testing.T) {
	tests := []struct {
		fen     string
		wantErr error
	}{
		{"R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", ErrCheckmate},
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", ErrStalemate},
	}
	for _, tt := range tests {
		b := mustParseFEN(t, tt.fen)
		move, _, err := NewSearcher(NewTranspositionTable(1)).Search(b, 3)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: err = %v, want %v", tt.fen, err, tt.wantErr)
		}
		if move != board.NoMove {
			t.Errorf("%s: move = %s, want none", tt.fen, move)
		}
	}
}

func TestSearchInvalidDepth(t *testing.T) {
	s := NewSearcher(NewTranspositionTable(1))
	for _, depth := range []int{0, -1, MaxPly} {
		if _, _, err := s.Search(board.StartPosition(), depth); !errors.Is(err, ErrInvalidDepth) {
			t.Errorf("depth %d: err = %v, want ErrInvalidDepth", depth, err)
		}
	}
}

func TestEngineSearch(t *testing.T) {
	eng := NewEngine(1, 2)

	var infos []SearchInfo
	eng.OnInfo = func(info SearchInfo) { infos = append(infos, info) }

	b := mustParseFEN(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")
	res, err := eng.Search(b)
	if err != nil {
		t.Fatal(err)
	}
	if res.Move.String() != "d2d5" {
		t.Errorf("Best move: %s, want d2d5", res.Move)
	}
	if res.Nodes == 0 {
		t.Error("Expected a node count")
	}
	if len(infos) != 1 || infos[0].Depth != 2 || infos[0].Score != res.Score {
		t.Errorf("Unexpected info callbacks: %+v", infos)
	}
	if eng.TT().probes == 0 {
		t.Error("Search did not consult the transposition table")
	}

	if _, err := eng.SearchDepth(mustParseFEN(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1"), 2); !errors.Is(err, ErrCheckmate) {
		t.Errorf("Expected ErrCheckmate, got %v", err)
	}
	if len(infos) != 1 {
		t.Error("OnInfo called for a search without a move")
	}
}

func TestEngineSettings(t *testing.T) {
	eng := NewEngine(1, DefaultDepth)

	if err := eng.SetDepth(0); !errors.Is(err, ErrInvalidDepth) {
		t.Errorf("SetDepth(0) = %v, want ErrInvalidDepth", err)
	}
	if err := eng.SetDepth(4); err != nil || eng.Depth() != 4 {
		t.Errorf("SetDepth(4) = %v, depth %d", err, eng.Depth())
	}

	eng.TT().Store(42, 1, 1, TTExact)
	if err := eng.SetHashSize(2); err != nil {
		t.Fatal(err)
	}
	if eng.HashSize() != 2 || eng.TT().Size() != 2*1024*1024/16 {
		t.Errorf("Unexpected table after resize: %d MB, %d entries", eng.HashSize(), eng.TT().Size())
	}
	if _, ok := eng.TT().Probe(42); ok {
		t.Error("Resized table should start empty")
	}
	if err := eng.SetHashSize(0); err == nil {
		t.Error("SetHashSize(0) should fail")
	}

	eng.TT().Store(42, 1, 1, TTExact)
	eng.Clear()
	if _, ok := eng.TT().Probe(42); ok {
		t.Error("Clear left entries behind")
	}
}

func TestScoreToString(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "cp 0"},
		{-250, "cp -250"},
		{MateScore - 1, "mate 1"},
		{MateScore - 3, "mate 2"},
		{-MateScore + 2, "mate -1"},
	}
	for _, tt := range tests {
		if got := ScoreToString(tt.score); got != tt.want {
			t.Errorf("ScoreToString(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
