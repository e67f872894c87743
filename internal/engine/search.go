package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/colmak/rustychess/internal/board"
)

// Score bounds. Mate scores sit at MateScore plus the depth remaining when
// the mate was found, so mates closer to the root score higher and the
// search prefers the faster mate.
const (
	Infinity  = 30000
	MateScore = 29000
)

// ErrNoLegalMoves is returned when the searched position has no legal
// moves, i.e. it is already checkmate or stalemate.
var ErrNoLegalMoves = errors.New("no legal moves")

// Result is the outcome of a search.
type Result struct {
	Move  board.Move
	Score int // centipawns from the side to move's perspective
	Nodes uint64
	Depth int
}

// Engine searches positions for the best move. It holds no per-search
// state, so a single Engine is safe for concurrent use.
type Engine struct {
	workers int
}

// New creates an engine. workers is the number of goroutines that search
// root moves concurrently; values below 2 select the serial search. Both
// searches pick the same move for the same position and depth.
func New(workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{workers: workers}
}

// BestMove searches pos to the given depth and returns the best move
// found. depth must be at least 1. Returns ErrNoLegalMoves if the game is
// already over, and the context error if ctx is cancelled mid-search.
func (e *Engine) BestMove(ctx context.Context, pos board.Position, depth int) (Result, error) {
	if depth < 1 {
		return Result{}, fmt.Errorf("invalid search depth %d", depth)
	}

	moves := pos.GenerateLegalMoves()
	if len(moves) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	var nodes atomic.Uint64
	if e.workers > 1 && len(moves) > 1 {
		return e.searchParallel(ctx, pos, moves, depth, &nodes)
	}
	return e.searchSerial(ctx, pos, moves, depth, &nodes)
}

// searchSerial walks the root moves in generation order, narrowing alpha
// as it goes. Ties keep the earliest move.
func (e *Engine) searchSerial(ctx context.Context, pos board.Position, moves []board.Move, depth int, nodes *atomic.Uint64) (Result, error) {
	best := moves[0]
	alpha := -Infinity

	for _, m := range moves {
		next := pos.Apply(m)
		value, err := negamax(ctx, &next, depth-1, -Infinity, -alpha, nodes)
		if err != nil {
			return Result{}, err
		}
		if score := -value; score > alpha {
			alpha = score
			best = m
		}
	}

	return Result{Move: best, Score: alpha, Nodes: nodes.Load(), Depth: depth}, nil
}

// searchParallel scores every root move over the full window on a bounded
// worker pool, then reduces in generation order. The full window makes
// every score exact, so the reduction picks the same move the serial
// search would.
func (e *Engine) searchParallel(ctx context.Context, pos board.Position, moves []board.Move, depth int, nodes *atomic.Uint64) (Result, error) {
	scores := make([]int, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, m := range moves {
		g.Go(func() error {
			next := pos.Apply(m)
			value, err := negamax(ctx, &next, depth-1, -Infinity, Infinity, nodes)
			if err != nil {
				return err
			}
			scores[i] = -value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := 0
	for i := 1; i < len(moves); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	return Result{Move: moves[best], Score: scores[best], Nodes: nodes.Load(), Depth: depth}, nil
}

// negamax returns the value of pos from the side to move's perspective,
// searching depth plies ahead with alpha-beta pruning. Checkmate and
// stalemate are recognized at any depth; the fifty-move rule and
// insufficient material score as draws. Repetition needs game history and
// is left to the caller.
func negamax(ctx context.Context, pos *board.Position, depth, alpha, beta int, nodes *atomic.Uint64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	nodes.Add(1)

	moves := pos.GenerateLegalMoves()
	if len(moves) == 0 {
		if pos.InCheck() {
			return -(MateScore + depth), nil
		}
		return 0, nil
	}

	if pos.HalfMoveClock >= 100 || pos.IsInsufficientMaterial() {
		return 0, nil
	}

	if depth == 0 {
		return Evaluate(pos), nil
	}

	for _, m := range moves {
		next := pos.Apply(m)
		value, err := negamax(ctx, &next, depth-1, -beta, -alpha, nodes)
		if err != nil {
			return 0, err
		}
		if score := -value; score > alpha {
			alpha = score
			if alpha >= beta {
				break
			}
		}
	}
	return alpha, nil
}

// ScoreString formats a search score for display: mate scores as
// "mate N" in moves (negative when the side to move is being mated),
// everything else as pawns with two decimals. depth is the search depth
// that produced the score.
func ScoreString(score, depth int) string {
	if score >= MateScore {
		plies := depth - (score - MateScore)
		return fmt.Sprintf("mate %d", (plies+1)/2)
	}
	if score <= -MateScore {
		plies := depth - (-score - MateScore)
		return fmt.Sprintf("mate -%d", (plies+1)/2)
	}
	return fmt.Sprintf("%+.2f", float64(score)/100)
}
