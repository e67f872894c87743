// Package engine implements the move search: a static evaluator and a
// depth-limited negamax search with alpha-beta pruning.
package engine

import "github.com/colmak/rustychess/internal/board"

// Material values in centipawns.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

// Positional bonuses in centipawns.
const (
	centerBonus      = 10 // pawn or piece on d4, e4, d5 or e5
	developmentBonus = 15 // knight or bishop off its starting rank
	castleRightBonus = 10 // per retained castling right
)

// pieceValues is indexed by PieceType.
var pieceValues = [7]int{0, PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue}

var centerSquares = [4]board.Square{board.D4, board.E4, board.D5, board.E5}

// Evaluate scores the position in centipawns from the perspective of the
// side to move. Positive means the side to move stands better. The terms
// are material, center occupation, minor piece development, and retained
// castling rights.
func Evaluate(pos *board.Position) int {
	score := 0 // from white's perspective until the final flip

	for sq := board.A1; sq <= board.H8; sq++ {
		piece := pos.Squares[sq]
		if piece == board.NoPiece {
			continue
		}

		value := pieceValues[piece.Type()]

		if piece.Type() == board.Knight || piece.Type() == board.Bishop {
			if piece.Color() == board.White && sq.Rank() != 0 {
				value += developmentBonus
			}
			if piece.Color() == board.Black && sq.Rank() != 7 {
				value += developmentBonus
			}
		}

		if piece.Color() == board.White {
			score += value
		} else {
			score -= value
		}
	}

	for _, sq := range centerSquares {
		switch pos.Squares[sq].Color() {
		case board.White:
			score += centerBonus
		case board.Black:
			score -= centerBonus
		}
	}

	for _, c := range [2]board.Color{board.White, board.Black} {
		bonus := 0
		if pos.CastlingRights.CanCastle(c, true) {
			bonus += castleRightBonus
		}
		if pos.CastlingRights.CanCastle(c, false) {
			bonus += castleRightBonus
		}
		if c == board.White {
			score += bonus
		} else {
			score -= bonus
		}
	}

	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}
