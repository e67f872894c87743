// Package uci adapts the engine to the Universal Chess Interface so it
// can play under standard chess GUIs. The adapter owns no rule logic; it
// translates protocol commands into board and engine calls.
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/colmak/rustychess/internal/board"
	"github.com/colmak/rustychess/internal/engine"
)

// UCI implements the UCI protocol loop.
type UCI struct {
	engine *engine.Engine
	depth  int

	position board.Position

	in  io.Reader
	out io.Writer
	mu  sync.Mutex // guards out; search results arrive from a goroutine

	// Search state
	cancel     context.CancelFunc
	searchDone chan struct{}
}

// New creates a protocol handler reading commands from in and writing
// responses to out. depth is the search depth used when "go" names none.
func New(eng *engine.Engine, depth int, in io.Reader, out io.Writer) *UCI {
	return &UCI{
		engine:   eng,
		depth:    depth,
		position: board.NewPosition(),
		in:       in,
		out:      out,
	}
}

// Run processes commands until "quit" or end of input. Any in-flight
// search is stopped before Run returns.
func (u *UCI) Run() {
	defer u.handleStop()

	scanner := bufio.NewScanner(u.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "uci":
			u.printf("id name rustychess\n")
			u.printf("id author rustychess\n")
			u.printf("uciok\n")
		case "isready":
			u.printf("readyok\n")
		case "ucinewgame":
			u.handleStop()
			u.position = board.NewPosition()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			return
		// Debug commands
		case "d":
			u.printf("%s\n", u.position.String())
		case "perft":
			u.handlePerft(args)
		}
	}
}

func (u *UCI) printf(format string, args ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, format, args...)
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var pos board.Position
	moveStart := len(args)

	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
		for i, arg := range args {
			if arg == "moves" {
				moveStart = i + 1
				break
			}
		}
	case "fen":
		fenEnd := len(args)
		for i, arg := range args {
			if arg == "moves" {
				fenEnd = i
				moveStart = i + 1
				break
			}
		}
		parsed, err := board.ParseFEN(strings.Join(args[1:fenEnd], " "))
		if err != nil {
			u.printf("info string invalid fen: %v\n", err)
			return
		}
		pos = parsed
	default:
		return
	}

	for _, s := range args[moveStart:] {
		m, err := resolveMove(&pos, s)
		if err != nil {
			u.printf("info string invalid move: %v\n", err)
			return
		}
		pos = pos.Apply(m)
	}

	u.position = pos
}

// resolveMove matches a coordinate move against the position's legal
// moves, picking up the castle and en passant flags.
func resolveMove(pos *board.Position, s string) (board.Move, error) {
	m, err := board.ParseUCIMove(s)
	if err != nil {
		return board.Move{}, err
	}
	for _, legal := range pos.GenerateLegalMoves() {
		if legal.From == m.From && legal.To == m.To && legal.Promotion == m.Promotion {
			return legal, nil
		}
	}
	return board.Move{}, fmt.Errorf("illegal move %q", s)
}

// handleGo starts a search in the background. "go depth N" overrides the
// configured depth; other go parameters are ignored.
func (u *UCI) handleGo(args []string) {
	u.handleStop()

	depth := u.depth
	for i := 0; i < len(args); i++ {
		if args[i] == "depth" && i+1 < len(args) {
			if n, err := strconv.Atoi(args[i+1]); err == nil && n > 0 {
				depth = n
			}
			i++
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	u.cancel = cancel
	u.searchDone = done

	pos := u.position

	go func() {
		defer close(done)
		start := time.Now()

		res, err := u.engine.BestMove(ctx, pos, depth)
		if errors.Is(err, engine.ErrNoLegalMoves) {
			u.printf("bestmove 0000\n")
			return
		}
		if err != nil {
			// Stopped mid-search; the protocol still expects a move.
			moves := pos.GenerateLegalMoves()
			if len(moves) == 0 {
				u.printf("bestmove 0000\n")
				return
			}
			u.printf("bestmove %s\n", moves[0])
			return
		}

		u.sendInfo(res, time.Since(start))
		u.printf("bestmove %s\n", res.Move)
	}()
}

// sendInfo reports a finished search in UCI terms.
func (u *UCI) sendInfo(res engine.Result, elapsed time.Duration) {
	parts := []string{fmt.Sprintf("depth %d", res.Depth)}

	if res.Score >= engine.MateScore {
		plies := res.Depth - (res.Score - engine.MateScore)
		parts = append(parts, fmt.Sprintf("score mate %d", (plies+1)/2))
	} else if res.Score <= -engine.MateScore {
		plies := res.Depth - (-res.Score - engine.MateScore)
		parts = append(parts, fmt.Sprintf("score mate -%d", (plies+1)/2))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", res.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", res.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", elapsed.Milliseconds()))
	if elapsed > 0 {
		nps := uint64(float64(res.Nodes) / elapsed.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	u.printf("info %s\n", strings.Join(parts, " "))
}

// handleStop cancels the running search and waits for its bestmove.
func (u *UCI) handleStop() {
	if u.cancel == nil {
		return
	}
	u.cancel()
	<-u.searchDone
	u.cancel = nil
}

// handlePerft counts leaf nodes from the current position, a move
// generation check exposed for debugging.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			depth = n
		}
	}

	start := time.Now()
	nodes := board.Perft(&u.position, depth)
	elapsed := time.Since(start)

	u.printf("Nodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		u.printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
