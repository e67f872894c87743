package board

// Movement offsets as (file, rank) deltas.
var (
	knightOffsets = [8][2]int{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	kingOffsets = [8][2]int{
		{1, 0}, {1, 1}, {0, 1}, {-1, 1},
		{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	}
	rookDirections   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirections  = [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
)

// offsetSquare returns the square at (file+df, rank+dr), or NoSquare if
// that falls off the board.
func offsetSquare(sq Square, df, dr int) Square {
	file := sq.File() + df
	rank := sq.Rank() + dr
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return NewSquare(file, rank)
}

// pawnForward returns the pawn push direction for a color as a rank delta.
func pawnForward(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// IsSquareAttacked returns true if the square is attacked by any piece of
// the given color. It checks pawn diagonals, knight jumps, king adjacency,
// and the sliding rays for bishops, rooks, and queens.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	// Pawns attack diagonally forward, so look backward from the target.
	dr := -pawnForward(byColor)
	pawn := NewPiece(Pawn, byColor)
	for _, df := range [2]int{-1, 1} {
		if from := offsetSquare(sq, df, dr); from != NoSquare && p.Squares[from] == pawn {
			return true
		}
	}

	knight := NewPiece(Knight, byColor)
	for _, d := range knightOffsets {
		if from := offsetSquare(sq, d[0], d[1]); from != NoSquare && p.Squares[from] == knight {
			return true
		}
	}

	king := NewPiece(King, byColor)
	for _, d := range kingOffsets {
		if from := offsetSquare(sq, d[0], d[1]); from != NoSquare && p.Squares[from] == king {
			return true
		}
	}

	if p.rayAttacked(sq, byColor, rookDirections, Rook) {
		return true
	}
	return p.rayAttacked(sq, byColor, bishopDirections, Bishop)
}

// rayAttacked walks each direction from sq until it leaves the board or
// hits a piece, and reports whether that piece is an enemy slider of the
// given type or a queen.
func (p *Position) rayAttacked(sq Square, byColor Color, dirs [4][2]int, slider PieceType) bool {
	for _, d := range dirs {
		for cur := offsetSquare(sq, d[0], d[1]); cur != NoSquare; cur = offsetSquare(cur, d[0], d[1]) {
			piece := p.Squares[cur]
			if piece == NoPiece {
				continue
			}
			if piece.Color() == byColor {
				if pt := piece.Type(); pt == slider || pt == Queen {
					return true
				}
			}
			break
		}
	}
	return false
}
