package board

// promotionOrder fixes the order promotion moves are generated in.
var promotionOrder = [4]PieceType{Knight, Bishop, Rook, Queen}

// GenerateLegalMoves generates all legal moves for the side to move, in a
// stable order: pawns, knights, bishops, rooks, queens, king, castling,
// each scanning origin squares from a1 to h8.
func (p *Position) GenerateLegalMoves() []Move {
	return p.filterLegal(p.generateAllMoves())
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves. The result
// may include moves that leave the mover's own king attacked.
func (p *Position) GeneratePseudoLegalMoves() []Move {
	return p.generateAllMoves()
}

// generateAllMoves generates all pseudo-legal moves.
func (p *Position) generateAllMoves() []Move {
	moves := make([]Move, 0, 64)
	us := p.SideToMove

	moves = p.generatePawnMoves(moves, us)
	moves = p.generateLeaperMoves(moves, us, Knight, knightOffsets)
	moves = p.generateSliderMoves(moves, us, Bishop, bishopDirections[:])
	moves = p.generateSliderMoves(moves, us, Rook, rookDirections[:])
	moves = p.generateSliderMoves(moves, us, Queen, queenDirections[:])
	moves = p.generateLeaperMoves(moves, us, King, kingOffsets)
	moves = p.generateCastlingMoves(moves, us)

	return moves
}

// generatePawnMoves generates all pawn moves: single and double pushes,
// diagonal captures, en passant, and promotions.
func (p *Position) generatePawnMoves(moves []Move, us Color) []Move {
	dir := pawnForward(us)
	startRank, promoRank := 1, 7
	if us == Black {
		startRank, promoRank = 6, 0
	}
	pawn := NewPiece(Pawn, us)

	for sq := A1; sq <= H8; sq++ {
		if p.Squares[sq] != pawn {
			continue
		}

		// Pushes
		if one := offsetSquare(sq, 0, dir); one != NoSquare && p.Squares[one] == NoPiece {
			moves = appendPawnMove(moves, sq, one, promoRank)
			if sq.Rank() == startRank {
				if two := offsetSquare(sq, 0, 2*dir); p.Squares[two] == NoPiece {
					moves = append(moves, NewMove(sq, two))
				}
			}
		}

		// Captures, file-down side first
		for _, df := range [2]int{-1, 1} {
			to := offsetSquare(sq, df, dir)
			if to == NoSquare {
				continue
			}
			if target := p.Squares[to]; target != NoPiece && target.Color() != us {
				moves = appendPawnMove(moves, sq, to, promoRank)
			} else if to == p.EnPassant {
				moves = append(moves, NewEnPassant(sq, to))
			}
		}
	}

	return moves
}

// appendPawnMove adds a pawn move, fanning out into the four promotion
// moves when the destination is the last rank.
func appendPawnMove(moves []Move, from, to Square, promoRank int) []Move {
	if to.Rank() != promoRank {
		return append(moves, NewMove(from, to))
	}
	for _, pt := range promotionOrder {
		moves = append(moves, NewPromotion(from, to, pt))
	}
	return moves
}

// generateLeaperMoves generates knight or king moves from their fixed
// offset sets.
func (p *Position) generateLeaperMoves(moves []Move, us Color, pt PieceType, offsets [8][2]int) []Move {
	piece := NewPiece(pt, us)

	for sq := A1; sq <= H8; sq++ {
		if p.Squares[sq] != piece {
			continue
		}
		for _, d := range offsets {
			to := offsetSquare(sq, d[0], d[1])
			if to == NoSquare {
				continue
			}
			if target := p.Squares[to]; target == NoPiece || target.Color() != us {
				moves = append(moves, NewMove(sq, to))
			}
		}
	}

	return moves
}

// generateSliderMoves generates bishop, rook, or queen moves by walking
// each ray until it leaves the board or hits a piece.
func (p *Position) generateSliderMoves(moves []Move, us Color, pt PieceType, dirs [][2]int) []Move {
	piece := NewPiece(pt, us)

	for sq := A1; sq <= H8; sq++ {
		if p.Squares[sq] != piece {
			continue
		}
		for _, d := range dirs {
			for to := offsetSquare(sq, d[0], d[1]); to != NoSquare; to = offsetSquare(to, d[0], d[1]) {
				target := p.Squares[to]
				if target == NoPiece {
					moves = append(moves, NewMove(sq, to))
					continue
				}
				if target.Color() != us {
					moves = append(moves, NewMove(sq, to))
				}
				break
			}
		}
	}

	return moves
}

// generateCastlingMoves generates castling moves. A castle requires the
// right to still exist, the squares between king and rook to be empty,
// and the king's start, transit, and landing squares to be unattacked.
func (p *Position) generateCastlingMoves(moves []Move, us Color) []Move {
	them := us.Other()

	if us == White {
		// Kingside (O-O)
		if p.CastlingRights&WhiteKingSideCastle != 0 {
			if p.Squares[F1] == NoPiece && p.Squares[G1] == NoPiece {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
					moves = append(moves, NewCastle(E1, G1))
				}
			}
		}

		// Queenside (O-O-O)
		if p.CastlingRights&WhiteQueenSideCastle != 0 {
			if p.Squares[B1] == NoPiece && p.Squares[C1] == NoPiece && p.Squares[D1] == NoPiece {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
					moves = append(moves, NewCastle(E1, C1))
				}
			}
		}
	} else {
		// Kingside (O-O)
		if p.CastlingRights&BlackKingSideCastle != 0 {
			if p.Squares[F8] == NoPiece && p.Squares[G8] == NoPiece {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
					moves = append(moves, NewCastle(E8, G8))
				}
			}
		}

		// Queenside (O-O-O)
		if p.CastlingRights&BlackQueenSideCastle != 0 {
			if p.Squares[B8] == NoPiece && p.Squares[C8] == NoPiece && p.Squares[D8] == NoPiece {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
					moves = append(moves, NewCastle(E8, C8))
				}
			}
		}
	}

	return moves
}

// filterLegal keeps the moves that do not leave the mover's own king
// attacked, by applying each move to a scratch copy of the position.
func (p *Position) filterLegal(moves []Move) []Move {
	legal := make([]Move, 0, len(moves))
	us := p.SideToMove

	for _, m := range moves {
		next := p.Apply(m)
		if !next.IsSquareAttacked(next.KingSquare(us), us.Other()) {
			legal = append(legal, m)
		}
	}

	return legal
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	us := p.SideToMove
	for _, m := range p.generateAllMoves() {
		next := p.Apply(m)
		if !next.IsSquareAttacked(next.KingSquare(us), us.Other()) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the side to move is in check with no legal moves.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is not in check but has no
// legal moves.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsDraw returns true if the position is drawn by stalemate, the fifty-move
// rule, or insufficient material. Repetition draws need move history and
// are detected a level up, in the game package.
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.HalfMoveClock >= 100 {
		return true
	}
	return p.IsInsufficientMaterial()
}

// IsInsufficientMaterial returns true if neither side can possibly deliver
// checkmate: king versus king, a lone minor piece, or one bishop each with
// both bishops on the same square color.
func (p *Position) IsInsufficientMaterial() bool {
	var knights, bishops [2]int
	var bishopParity [2]int

	for sq := A1; sq <= H8; sq++ {
		piece := p.Squares[sq]
		if piece == NoPiece {
			continue
		}
		c := piece.Color()
		switch piece.Type() {
		case Pawn, Rook, Queen:
			return false
		case Knight:
			knights[c]++
		case Bishop:
			bishops[c]++
			bishopParity[c] = (sq.File() + sq.Rank()) & 1
		}
	}

	minors := knights[White] + bishops[White] + knights[Black] + bishops[Black]

	// K vs K, or K+minor vs K
	if minors <= 1 {
		return true
	}

	// KB vs KB with bishops on the same square color
	if knights[White] == 0 && knights[Black] == 0 &&
		bishops[White] == 1 && bishops[Black] == 1 &&
		bishopParity[White] == bishopParity[Black] {
		return true
	}

	return false
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Used to validate move generation against known node counts.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		next := p.Apply(m)
		nodes += Perft(&next, depth-1)
	}

	return nodes
}
