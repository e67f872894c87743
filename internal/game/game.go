// Package game tracks a chess game over time: the current position, the
// moves that led to it, and the draw rules that need history to decide
// (threefold repetition). The board package handles single positions; this
// package handles the sequence.
package game

import (
	"errors"

	"github.com/colmak/rustychess/internal/board"
)

var (
	// ErrIllegalMove is returned when a move is not legal in the
	// current position.
	ErrIllegalMove = errors.New("illegal move")
	// ErrNoHistory is returned by UndoLast on a game with no moves.
	ErrNoHistory = errors.New("no moves to undo")
)

// historyEntry pairs an applied move with the position it was applied to,
// so undo is a plain restore.
type historyEntry struct {
	move board.Move
	prev board.Position
}

// Game is a chess game in progress. It is not safe for concurrent use;
// callers that share a Game across goroutines must serialize access.
type Game struct {
	pos     board.Position
	history []historyEntry
}

// New starts a game from the standard starting position.
func New() *Game {
	return &Game{pos: board.NewPosition()}
}

// FromFEN starts a game from an arbitrary position. The history begins
// empty, so repetition counting starts from this position.
func FromFEN(fen string) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{pos: pos}, nil
}

// Position returns a copy of the current position.
func (g *Game) Position() board.Position {
	return g.pos
}

// FEN returns the current position in FEN notation.
func (g *Game) FEN() string {
	return g.pos.ToFEN()
}

// Turn returns the color to move.
func (g *Game) Turn() board.Color {
	return g.pos.SideToMove
}

// LegalMoves returns all legal moves in the current position.
func (g *Game) LegalMoves() []board.Move {
	return g.pos.GenerateLegalMoves()
}

// FindMove looks up the legal move matching from, to and promotion.
// Castling and en passant flags are filled in from the generated move,
// so callers only need the squares (and the piece for promotions).
// Returns ErrIllegalMove if no legal move matches.
func (g *Game) FindMove(from, to board.Square, promotion board.PieceType) (board.Move, error) {
	for _, m := range g.pos.GenerateLegalMoves() {
		if m.From == from && m.To == to && m.Promotion == promotion {
			return m, nil
		}
	}
	return board.Move{}, ErrIllegalMove
}

// ApplyMove validates m against the legal moves of the current position
// and applies it. Only the From, To and Promotion fields are matched;
// a promotion move without its Promotion set does not match anything.
// On ErrIllegalMove the game is unchanged.
func (g *Game) ApplyMove(m board.Move) error {
	legal, err := g.FindMove(m.From, m.To, m.Promotion)
	if err != nil {
		return err
	}
	g.history = append(g.history, historyEntry{move: legal, prev: g.pos})
	g.pos = g.pos.Apply(legal)
	return nil
}

// UndoLast reverts the most recent move and returns it.
func (g *Game) UndoLast() (board.Move, error) {
	if len(g.history) == 0 {
		return board.Move{}, ErrNoHistory
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.pos = last.prev
	return last.move, nil
}

// Moves returns the applied moves in order.
func (g *Game) Moves() []board.Move {
	moves := make([]board.Move, len(g.history))
	for i, h := range g.history {
		moves[i] = h.move
	}
	return moves
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.pos.InCheck()
}

// IsCheckmate reports whether the side to move is checkmated.
func (g *Game) IsCheckmate() bool {
	return g.pos.IsCheckmate()
}

// IsStalemate reports whether the side to move is stalemated.
func (g *Game) IsStalemate() bool {
	return g.pos.IsStalemate()
}

// IsThreefoldRepetition reports whether the current position has occurred
// at least three times in this game. Positions repeat when their piece
// placement, side to move, castling rights and en passant target all
// match; the move clocks are ignored.
func (g *Game) IsThreefoldRepetition() bool {
	sig := g.pos.Signature()
	count := 1
	for _, h := range g.history {
		if h.prev.Signature() == sig {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// IsDraw reports whether the game is drawn by stalemate, the fifty-move
// rule, insufficient material or threefold repetition.
func (g *Game) IsDraw() bool {
	return g.pos.IsDraw() || g.IsThreefoldRepetition()
}

// IsOver reports whether no further moves can be played.
func (g *Game) IsOver() bool {
	return g.pos.IsCheckmate() || g.IsDraw()
}
