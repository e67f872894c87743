package board

// Apply plays a move on a copy of the position and returns the result.
// The receiver is never modified. The move must be one generated for this
// position; Apply performs the full transition but no legality checking.
func (p *Position) Apply(m Move) Position {
	next := *p
	us := p.SideToMove
	piece := next.Squares[m.From]
	captured := next.Squares[m.To] != NoPiece

	// En passant captures the pawn beside the destination, not on it.
	if m.EnPassant {
		next.Squares[NewSquare(m.To.File(), m.From.Rank())] = NoPiece
		captured = true
	}

	// Move the piece, replacing it on promotion.
	next.Squares[m.From] = NoPiece
	if m.Promotion != NoPieceType {
		next.Squares[m.To] = NewPiece(m.Promotion, us)
	} else {
		next.Squares[m.To] = piece
	}

	// Castling also relocates the rook.
	if m.Castle {
		rank := m.From.Rank()
		if m.To > m.From {
			// Kingside: h-file rook to f-file
			next.Squares[NewSquare(5, rank)] = next.Squares[NewSquare(7, rank)]
			next.Squares[NewSquare(7, rank)] = NoPiece
		} else {
			// Queenside: a-file rook to d-file
			next.Squares[NewSquare(3, rank)] = next.Squares[NewSquare(0, rank)]
			next.Squares[NewSquare(0, rank)] = NoPiece
		}
	}

	// Castling rights are lost permanently when the king moves, and per
	// side when a rook leaves or anything lands on a rook home square.
	if piece.Type() == King {
		if us == White {
			next.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			next.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if m.From == A1 || m.To == A1 {
		next.CastlingRights &^= WhiteQueenSideCastle
	}
	if m.From == H1 || m.To == H1 {
		next.CastlingRights &^= WhiteKingSideCastle
	}
	if m.From == A8 || m.To == A8 {
		next.CastlingRights &^= BlackQueenSideCastle
	}
	if m.From == H8 || m.To == H8 {
		next.CastlingRights &^= BlackKingSideCastle
	}

	// A double pawn push opens en passant; any other move clears it.
	next.EnPassant = NoSquare
	if piece.Type() == Pawn {
		if diff := m.To.Rank() - m.From.Rank(); diff == 2 || diff == -2 {
			next.EnPassant = Square((int(m.From) + int(m.To)) / 2)
		}
	}

	if piece.Type() == Pawn || captured {
		next.HalfMoveClock = 0
	} else {
		next.HalfMoveClock++
	}
	if us == Black {
		next.FullMoveNumber++
	}

	next.SideToMove = us.Other()
	return next
}
