package board

import "testing"

// mustParse is a test helper for positions built from literal FENs.
func mustParse(t *testing.T, fen string) Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	return pos
}

func TestApplyLeavesReceiverUntouched(t *testing.T) {
	pos := NewPosition()
	before := pos.ToFEN()

	_ = pos.Apply(NewMove(E2, E4))

	if after := pos.ToFEN(); after != before {
		t.Errorf("Apply modified the receiver: %q -> %q", before, after)
	}
}

func TestApplyDoublePushSetsEnPassant(t *testing.T) {
	pos := NewPosition()

	next := pos.Apply(NewMove(E2, E4))
	if next.EnPassant != E3 {
		t.Errorf("EnPassant = %v, want e3", next.EnPassant)
	}
	if next.SideToMove != Black {
		t.Errorf("SideToMove = %v, want Black", next.SideToMove)
	}

	// A quiet reply clears the target again.
	next = next.Apply(NewMove(G8, F6))
	if next.EnPassant != NoSquare {
		t.Errorf("EnPassant = %v, want none", next.EnPassant)
	}
}

func TestApplyEnPassantRemovesVictim(t *testing.T) {
	pos := mustParse(t, "rnbqkbnr/pp2pppp/8/2ppP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")

	next := pos.Apply(NewEnPassant(E5, D6))

	if next.Squares[D6] != WhitePawn {
		t.Errorf("d6 = %v, want white pawn", next.Squares[D6])
	}
	if next.Squares[D5] != NoPiece {
		t.Errorf("d5 = %v, want empty (captured pawn)", next.Squares[D5])
	}
	if next.Squares[E5] != NoPiece {
		t.Errorf("e5 = %v, want empty", next.Squares[E5])
	}
	if next.HalfMoveClock != 0 {
		t.Errorf("HalfMoveClock = %d, want 0 after capture", next.HalfMoveClock)
	}
}

func TestApplyCastleMovesRook(t *testing.T) {
	pos := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	kingside := pos.Apply(NewCastle(E1, G1))
	if kingside.Squares[G1] != WhiteKing || kingside.Squares[F1] != WhiteRook {
		t.Errorf("kingside castle: g1=%v f1=%v", kingside.Squares[G1], kingside.Squares[F1])
	}
	if kingside.Squares[E1] != NoPiece || kingside.Squares[H1] != NoPiece {
		t.Error("kingside castle left pieces on e1/h1")
	}
	if kingside.CastlingRights&(WhiteKingSideCastle|WhiteQueenSideCastle) != 0 {
		t.Errorf("white rights not cleared: %v", kingside.CastlingRights)
	}
	if kingside.CastlingRights&(BlackKingSideCastle|BlackQueenSideCastle) != BlackKingSideCastle|BlackQueenSideCastle {
		t.Errorf("black rights disturbed: %v", kingside.CastlingRights)
	}

	queenside := pos.Apply(NewCastle(E1, C1))
	if queenside.Squares[C1] != WhiteKing || queenside.Squares[D1] != WhiteRook {
		t.Errorf("queenside castle: c1=%v d1=%v", queenside.Squares[C1], queenside.Squares[D1])
	}
	if queenside.Squares[A1] != NoPiece {
		t.Error("queenside castle left the a1 rook in place")
	}
}

func TestApplyRookMoveAndCaptureClearRights(t *testing.T) {
	pos := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	// Moving the h1 rook forfeits white kingside castling only.
	next := pos.Apply(NewMove(H1, H4))
	if next.CastlingRights != WhiteQueenSideCastle|BlackKingSideCastle|BlackQueenSideCastle {
		t.Errorf("rights after Rh4 = %v", next.CastlingRights)
	}

	// Capturing the a8 rook forfeits black queenside castling.
	fresh := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	capture := fresh.Apply(NewMove(A1, A8))
	if capture.CastlingRights != WhiteKingSideCastle|BlackKingSideCastle {
		t.Errorf("rights after Rxa8 = %v", capture.CastlingRights)
	}
}

func TestApplyPromotionReplacesPawn(t *testing.T) {
	pos := mustParse(t, "8/4P3/8/8/8/8/8/k1K5 w - - 0 1")

	next := pos.Apply(NewPromotion(E7, E8, Queen))
	if next.Squares[E8] != WhiteQueen {
		t.Errorf("e8 = %v, want white queen", next.Squares[E8])
	}
	if next.Squares[E7] != NoPiece {
		t.Errorf("e7 = %v, want empty", next.Squares[E7])
	}

	under := pos.Apply(NewPromotion(E7, E8, Knight))
	if under.Squares[E8] != WhiteKnight {
		t.Errorf("e8 = %v, want white knight", under.Squares[E8])
	}
}

func TestApplyClocks(t *testing.T) {
	pos := mustParse(t, "4k3/8/8/8/8/8/4P3/RN2K3 w Q - 5 12")

	// Quiet knight move increments the half-move clock.
	quiet := pos.Apply(NewMove(B1, C3))
	if quiet.HalfMoveClock != 6 {
		t.Errorf("HalfMoveClock = %d, want 6", quiet.HalfMoveClock)
	}
	if quiet.FullMoveNumber != 12 {
		t.Errorf("FullMoveNumber = %d, want 12 (white moved)", quiet.FullMoveNumber)
	}

	// Pawn move resets it.
	pawn := pos.Apply(NewMove(E2, E3))
	if pawn.HalfMoveClock != 0 {
		t.Errorf("HalfMoveClock = %d, want 0 after pawn move", pawn.HalfMoveClock)
	}

	// Black's reply bumps the full-move number.
	reply := quiet.Apply(NewMove(E8, D8))
	if reply.FullMoveNumber != 13 {
		t.Errorf("FullMoveNumber = %d, want 13 (black moved)", reply.FullMoveNumber)
	}
}

func TestSignatureIgnoresClocks(t *testing.T) {
	a := mustParse(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	b := mustParse(t, "4k3/8/8/8/8/8/8/4K2R w K - 13 37")

	if a.Signature() != b.Signature() {
		t.Errorf("signatures differ: %q vs %q", a.Signature(), b.Signature())
	}

	c := mustParse(t, "4k3/8/8/8/8/8/8/4K2R w - - 0 1")
	if a.Signature() == c.Signature() {
		t.Error("signatures should differ when castling rights differ")
	}
}
