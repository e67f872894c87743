package board

import "fmt"

// Move describes a single chess move. Promotion is NoPieceType except on
// pawn moves reaching the last rank, where it names the piece the pawn
// becomes. Castle marks the king's two-square castling move; EnPassant
// marks a pawn capture onto the en passant target square.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
	Castle    bool
	EnPassant bool
}

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// NewPromotion creates a promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move{From: from, To: to, Promotion: promo}
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move{From: from, To: to, EnPassant: true}
}

// NewCastle creates a castling move (the king's movement).
func NewCastle(from, to Square) Move {
	return Move{From: from, To: to, Castle: true}
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPieceType
}

// String returns the UCI coordinate form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(promotionChar(m.Promotion))
	}
	return s
}

// promotionChar returns the UCI suffix letter for a promotion piece.
func promotionChar(pt PieceType) byte {
	switch pt {
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	}
	return '?'
}

// ParsePromotion converts a UCI promotion suffix letter to a PieceType.
func ParsePromotion(c byte) (PieceType, error) {
	switch c {
	case 'n':
		return Knight, nil
	case 'b':
		return Bishop, nil
	case 'r':
		return Rook, nil
	case 'q':
		return Queen, nil
	}
	return NoPieceType, fmt.Errorf("invalid promotion piece: %c", c)
}

// ParseUCIMove parses a UCI coordinate move string into its from and to
// squares plus an optional promotion piece. It performs no legality
// checking and leaves the Castle and EnPassant flags unset; match the
// result against generated legal moves to obtain the full move.
func ParseUCIMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}

	m := Move{From: from, To: to}
	if len(s) == 5 {
		promo, err := ParsePromotion(s[4])
		if err != nil {
			return Move{}, err
		}
		m.Promotion = promo
	}

	return m, nil
}
