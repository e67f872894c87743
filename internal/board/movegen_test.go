package board

import "testing"

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		// Depth 5 takes longer, enable for thorough testing:
		// {5, 4865609},
	}

	for _, tc := range tests {
		got := Perft(&pos, tc.depth)
		if got != tc.expected {
			t.Errorf("Perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftKiwipete tests the Kiwipete position, which is dense with
// castling, promotion, and pin edge cases.
func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
		// {4, 4085603}, // Takes a while, enable for thorough testing
	}

	for _, tc := range tests {
		got := Perft(&pos, tc.depth)
		if got != tc.expected {
			t.Errorf("Perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftPosition3 tests en passant and pin edge cases.
func TestPerftPosition3(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		got := Perft(&pos, tc.depth)
		if got != tc.expected {
			t.Errorf("Perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftEnPassantPin covers the horizontal en passant pin: the black
// pawn on e4 may not capture d3 en passant because removing both pawns
// exposes the black king on a4 to the rook on h4.
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	for _, m := range pos.GenerateLegalMoves() {
		if m.EnPassant {
			t.Errorf("en passant move %v should be illegal (horizontal pin)", m)
		}
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range tests {
		got := Perft(&pos, tc.depth)
		if got != tc.expected {
			t.Errorf("Perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestEnPassantGenerated checks that a loaded en passant capture is
// actually offered.
func TestEnPassantGenerated(t *testing.T) {
	// After 1.e4 c5 2.e5 d5, white's e5 pawn can capture d6 en passant.
	pos, err := ParseFEN("rnbqkbnr/pp2pppp/8/2ppP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	want := NewEnPassant(E5, D6)
	found := false
	for _, m := range pos.GenerateLegalMoves() {
		if m == want {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected en passant move %v to be generated", want)
	}
}

// TestPromotionFanOut checks that a pawn on the seventh rank produces one
// move per promotion piece, in knight, bishop, rook, queen order.
func TestPromotionFanOut(t *testing.T) {
	pos, err := ParseFEN("8/4P3/8/8/8/8/8/k1K5 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	var promos []Move
	for _, m := range pos.GenerateLegalMoves() {
		if m.IsPromotion() {
			promos = append(promos, m)
		}
	}

	want := []Move{
		NewPromotion(E7, E8, Knight),
		NewPromotion(E7, E8, Bishop),
		NewPromotion(E7, E8, Rook),
		NewPromotion(E7, E8, Queen),
	}
	if len(promos) != len(want) {
		t.Fatalf("got %d promotion moves, want %d", len(promos), len(want))
	}
	for i := range want {
		if promos[i] != want[i] {
			t.Errorf("promotion %d = %v, want %v", i, promos[i], want[i])
		}
	}
}

// TestCastlingRules exercises the castling preconditions one by one.
func TestCastlingRules(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move Move
		want bool
	}{
		{
			name: "kingside allowed",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move: NewCastle(E1, G1),
			want: true,
		},
		{
			name: "queenside allowed",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move: NewCastle(E1, C1),
			want: true,
		},
		{
			name: "right forfeited",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1",
			move: NewCastle(E1, G1),
			want: false,
		},
		{
			name: "square between occupied",
			fen:  "r3k2r/8/8/8/8/8/8/R3KB1R w KQkq - 0 1",
			move: NewCastle(E1, G1),
			want: false,
		},
		{
			name: "king in check",
			fen:  "r3k2r/8/8/8/8/4r3/8/R3K2R w KQkq - 0 1",
			move: NewCastle(E1, G1),
			want: false,
		},
		{
			name: "transit square attacked",
			fen:  "r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1",
			move: NewCastle(E1, G1),
			want: false,
		},
		{
			name: "landing square attacked",
			fen:  "r3k2r/8/8/8/8/6r1/8/R3K2R w KQkq - 0 1",
			move: NewCastle(E1, G1),
			want: false,
		},
		{
			name: "black kingside allowed",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			move: NewCastle(E8, G8),
			want: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("Failed to parse FEN: %v", err)
			}
			found := false
			for _, m := range pos.GenerateLegalMoves() {
				if m == tc.move {
					found = true
					break
				}
			}
			if found != tc.want {
				t.Errorf("castle %v generated = %v, want %v", tc.move, found, tc.want)
			}
		})
	}
}

// TestPinnedPieceMoves checks that a pinned piece may not expose its king.
func TestPinnedPieceMoves(t *testing.T) {
	// White knight on d2 is pinned to the king on e1 by the bishop on b4.
	pos, err := ParseFEN("4k3/8/8/8/1b6/8/3N4/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	for _, m := range pos.GenerateLegalMoves() {
		if m.From == D2 {
			t.Errorf("pinned knight move %v should be illegal", m)
		}
	}
}

// TestLegalMovesNeverExposeKing applies every generated legal move and
// verifies the mover's king is not attacked afterwards.
func TestLegalMovesNeverExposeKing(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pp2pppp/8/2ppP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"8/4P3/8/8/8/8/8/k1K5 w - - 0 1",
		"4k3/8/8/8/1b6/8/3N4/4K3 w - - 0 1",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
		}
		us := pos.SideToMove

		for _, m := range pos.GenerateLegalMoves() {
			next := pos.Apply(m)
			if next.IsSquareAttacked(next.KingSquare(us), us.Other()) {
				t.Errorf("%q: move %v leaves the king attacked", fen, m)
			}
		}
	}
}
