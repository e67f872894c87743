package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN reports a FEN string that could not be parsed or that
// describes a structurally impossible position. Errors returned by
// ParseFEN wrap it.
var ErrInvalidFEN = errors.New("invalid FEN")

// ParseFEN parses a FEN string and returns the position it describes.
// The two clock fields are optional and default to 0 and 1; everything
// else is validated strictly and never silently corrected.
func ParseFEN(fen string) (Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return Position{}, fmt.Errorf("%w: need 4 to 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	pos := Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}

	// Piece placement (field 0)
	if err := parsePiecePlacement(&pos, parts[0]); err != nil {
		return Position{}, err
	}

	// Side to move (field 1)
	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return Position{}, fmt.Errorf("%w: invalid side to move %q", ErrInvalidFEN, parts[1])
	}

	// Castling rights (field 2)
	if err := parseCastlingRights(&pos, parts[2]); err != nil {
		return Position{}, err
	}

	// En passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return Position{}, fmt.Errorf("%w: invalid en passant square %q", ErrInvalidFEN, parts[3])
		}
		if r := sq.Rank(); r != 2 && r != 5 {
			return Position{}, fmt.Errorf("%w: en passant square %s not on rank 3 or 6", ErrInvalidFEN, sq)
		}
		pos.EnPassant = sq
	}

	// Half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return Position{}, fmt.Errorf("%w: invalid half-move clock %q", ErrInvalidFEN, parts[4])
		}
		pos.HalfMoveClock = hmc
	}

	// Full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return Position{}, fmt.Errorf("%w: invalid full-move number %q", ErrInvalidFEN, parts[5])
		}
		pos.FullMoveNumber = fmn
	}

	if err := validate(&pos); err != nil {
		return Position{}, err
	}

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
			} else {
				piece := PieceFromChar(byte(c))
				if piece == NoPiece {
					return fmt.Errorf("%w: invalid piece character %q", ErrInvalidFEN, c)
				}
				pos.Squares[NewSquare(file, rank)] = piece
				file++
			}
		}

		if file != 8 {
			return fmt.Errorf("%w: rank %d describes %d squares", ErrInvalidFEN, rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.CastlingRights = NoCastling
		return nil
	}

	for _, c := range castling {
		switch c {
		case 'K':
			pos.CastlingRights |= WhiteKingSideCastle
		case 'Q':
			pos.CastlingRights |= WhiteQueenSideCastle
		case 'k':
			pos.CastlingRights |= BlackKingSideCastle
		case 'q':
			pos.CastlingRights |= BlackQueenSideCastle
		default:
			return fmt.Errorf("%w: invalid castling character %q", ErrInvalidFEN, c)
		}
	}

	return nil
}

// validate rejects positions no legal game can contain.
func validate(pos *Position) error {
	var kings [2]int
	for sq := A1; sq <= H8; sq++ {
		piece := pos.Squares[sq]
		if piece == NoPiece {
			continue
		}
		switch piece.Type() {
		case King:
			kings[piece.Color()]++
		case Pawn:
			if r := sq.Rank(); r == 0 || r == 7 {
				return fmt.Errorf("%w: pawn on rank %d", ErrInvalidFEN, r+1)
			}
		}
	}

	if kings[White] != 1 {
		return fmt.Errorf("%w: white has %d kings", ErrInvalidFEN, kings[White])
	}
	if kings[Black] != 1 {
		return fmt.Errorf("%w: black has %d kings", ErrInvalidFEN, kings[Black])
	}

	return nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.Squares[NewSquare(file, rank)]
			if piece == NoPiece {
				empty++
			} else {
				if empty > 0 {
					sb.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				sb.WriteString(piece.String())
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}
