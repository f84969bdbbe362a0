package board

import "testing"

func TestSAN(t *testing.T) {
	tests := []struct {
		fen  string
		move string
		want string
	}{
		{StartFEN, "e2e4", "e4"},
		{StartFEN, "g1f3", "Nf3"},
		{KiwipeteFEN, "e1g1", "O-O"},
		{KiwipeteFEN, "e1c1", "O-O-O"},
		{KiwipeteFEN, "e5f7", "Nxf7"},
		{KiwipeteFEN, "d5e6", "dxe6"},
		{KiwipeteFEN, "f3f6", "Qxf6"},
		{"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5d6", "exd6"},
		{"7k/8/8/8/8/8/8/R4R1K w - - 0 1", "a1c1", "Rac1"},
		{"7k/8/8/8/8/8/8/R4R1K w - - 0 1", "f1c1", "Rfc1"},
		{"7k/8/8/8/R7/8/8/R6K w - - 0 1", "a1a2", "R1a2"},
		{"7k/8/8/8/R7/8/8/R6K w - - 0 1", "a4a2", "R4a2"},
		{"4k3/8/8/8/8/Q7/8/Q1Q4K w - - 0 1", "a1b2", "Qa1b2"},
		{"4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a8", "Ra8+"},
		{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8", "Ra8#"},
		{"4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7b8q", "b8=Q+"},
		{"4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7b8n", "b8=N"},
		{"2r1k3/1P6/8/8/8/8/8/K7 w - - 0 1", "b7c8n", "bxc8=N"},
	}

	for _, tt := range tests {
		b := mustParseFEN(t, tt.fen)
		before := b.ToFEN()

		if got := b.SAN(mustMove(t, b, tt.move)); got != tt.want {
			t.Errorf("SAN(%s) in %s = %s, want %s", tt.move, tt.fen, got, tt.want)
		}
		if after := b.ToFEN(); after != before {
			t.Errorf("SAN(%s) changed the board: %s", tt.move, after)
		}
	}

	if got := NewBoard().SAN(NoMove); got != "-" {
		t.Errorf("SAN(NoMove) = %s, want -", got)
	}
}
