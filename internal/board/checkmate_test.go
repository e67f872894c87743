package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: black king on h8 boxed in by its own pawns,
	// white rook on a8 delivers mate.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.InCheck() {
		t.Error("Expected black to be in check")
	}
	if moves := pos.GenerateLegalMoves(); len(moves) != 0 {
		t.Errorf("Expected no legal moves, got %d: %v", len(moves), moves)
	}
	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("Checkmate position reported as stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// King CAN escape by capturing the rook on g8.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if pos.IsCheckmate() {
		t.Error("Expected NOT checkmate but got true")
	}

	want := NewMove(H8, G8)
	found := false
	for _, m := range pos.GenerateLegalMoves() {
		if m == want {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected escape move %v to be legal", want)
	}
}

func TestFoolsMateIsCheckmate(t *testing.T) {
	// The fastest possible checkmate: 1.f3 e5 2.g4 Qh4#.
	pos, err := ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
}

func TestStalemate(t *testing.T) {
	// Black to move has no legal moves but is not in check.
	pos, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if pos.InCheck() {
		t.Error("Expected black NOT to be in check")
	}
	if !pos.IsStalemate() {
		t.Error("Expected stalemate but got false")
	}
	if pos.IsCheckmate() {
		t.Error("Stalemate position reported as checkmate")
	}
	if !pos.IsDraw() {
		t.Error("Stalemate position should be a draw")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"kings only", "8/8/8/4k3/8/8/8/4K3 w - - 0 1", true},
		{"lone knight", "8/8/8/4k3/8/8/8/3NK3 w - - 0 1", true},
		{"lone bishop", "8/8/8/4k3/8/8/8/3BK3 w - - 0 1", true},
		{"same colored bishops", "8/8/3b4/4k3/8/8/3B4/4K3 w - - 0 1", true},
		{"opposite colored bishops", "8/8/4b3/4k3/8/8/3B4/4K3 w - - 0 1", false},
		{"single pawn", "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1", false},
		{"rook", "8/8/8/4k3/8/8/8/3RK3 w - - 0 1", false},
		{"two knights", "8/8/8/4k3/8/8/8/2NNK3 w - - 0 1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("Failed to parse FEN: %v", err)
			}
			if got := pos.IsInsufficientMaterial(); got != tc.want {
				t.Errorf("IsInsufficientMaterial() = %v, want %v", got, tc.want)
			}
		})
	}
}
