package engine

import (
	"testing"

	"github.com/colmak/rustychess/internal/board"
)

func mustParse(t *testing.T, fen string) board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	return pos
}

func TestEvaluateStartingPositionIsBalanced(t *testing.T) {
	pos := board.NewPosition()
	if got := Evaluate(&pos); got != 0 {
		t.Errorf("Evaluate(start) = %d, want 0", got)
	}
}

func TestEvaluateMaterial(t *testing.T) {
	// White has an extra queen on its back rank; no positional terms apply.
	pos := mustParse(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if got := Evaluate(&pos); got != QueenValue {
		t.Errorf("Evaluate = %d, want %d", got, QueenValue)
	}

	// The same position from black's seat scores the mirror image.
	flipped := mustParse(t, "4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	if got := Evaluate(&flipped); got != -QueenValue {
		t.Errorf("Evaluate = %d, want %d", got, -QueenValue)
	}
}

func TestEvaluateCenterBonus(t *testing.T) {
	center := mustParse(t, "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1")
	edge := mustParse(t, "4k3/8/8/8/8/P7/8/4K3 w - - 0 1")

	if c, e := Evaluate(&center), Evaluate(&edge); c != e+centerBonus {
		t.Errorf("center pawn = %d, edge pawn = %d, want difference %d", c, e, centerBonus)
	}
}

func TestEvaluateDevelopmentBonus(t *testing.T) {
	developed := mustParse(t, "4k3/8/8/8/8/5N2/8/4K3 w - - 0 1")
	home := mustParse(t, "4k3/8/8/8/8/8/8/4K1N1 w - - 0 1")

	if d, h := Evaluate(&developed), Evaluate(&home); d != h+developmentBonus {
		t.Errorf("developed knight = %d, home knight = %d, want difference %d", d, h, developmentBonus)
	}
}

func TestEvaluateCastlingRights(t *testing.T) {
	full := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if got := Evaluate(&full); got != 0 {
		t.Errorf("Evaluate with symmetric rights = %d, want 0", got)
	}

	// White has forfeited both rights and is penalized for it.
	forfeited := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1")
	if got := Evaluate(&forfeited); got != -2*castleRightBonus {
		t.Errorf("Evaluate with white rights gone = %d, want %d", got, -2*castleRightBonus)
	}
}
