package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// Position represents a complete chess position. It is a plain value:
// copying one yields an independent snapshot, which is how Apply and the
// legality filter work.
type Position struct {
	// Squares holds the piece on each square, NoPiece when empty.
	Squares [64]Piece

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Plies since last pawn move or capture (for 50-move rule)
	FullMoveNumber int    // Full move counter, starts at 1
}

// NewPosition creates the starting position.
func NewPosition() Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Squares[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Squares[sq] == NoPiece
}

// KingSquare returns the square of the given color's king, or NoSquare
// if that king is absent (only possible on hand-built positions).
func (p *Position) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq := A1; sq <= H8; sq++ {
		if p.Squares[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	ksq := p.KingSquare(p.SideToMove)
	if ksq == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ksq, p.SideToMove.Other())
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.Squares[NewSquare(file, rank)]
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	return sb.String()
}

// Signature returns the repetition signature of the position: occupancy,
// side to move, castling rights, and en passant target. Two positions
// with equal signatures count as the same position for the threefold
// repetition rule. The move clocks are excluded.
func (p *Position) Signature() string {
	fen := p.ToFEN()
	fields := strings.Fields(fen)
	return strings.Join(fields[:4], " ")
}
