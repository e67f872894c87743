// Command rustychess-play is a terminal game against the engine.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/colmak/rustychess/internal/board"
	"github.com/colmak/rustychess/internal/engine"
	"github.com/colmak/rustychess/internal/game"
)

var (
	depth     = flag.Int("depth", 4, "engine search depth")
	workers   = flag.Int("workers", runtime.NumCPU(), "number of parallel search workers")
	startFEN  = flag.String("fen", "", "start from this FEN instead of the initial position")
	playBlack = flag.Bool("black", false, "play the black pieces")
)

var (
	whitePiece = color.New(color.FgHiWhite, color.Bold)
	blackPiece = color.New(color.FgHiCyan, color.Bold)
	coords     = color.New(color.FgHiBlack)
	notice     = color.New(color.FgYellow)
	engineSays = color.New(color.FgGreen)
)

var (
	whiteGlyphs = [...]string{"", "♙", "♘", "♗", "♖", "♕", "♔"}
	blackGlyphs = [...]string{"", "♟", "♞", "♝", "♜", "♛", "♚"}
)

func main() {
	flag.Parse()

	g := game.New()
	if *startFEN != "" {
		var err error
		g, err = game.FromFEN(*startFEN)
		if err != nil {
			log.Fatalf("bad -fen: %v", err)
		}
	}

	human := board.White
	if *playBlack {
		human = board.Black
	}
	eng := engine.New(*workers)

	printBoard(g.Position())
	if announce(g) {
		return
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		if g.Turn() != human {
			if err := engineMove(g, eng); err != nil {
				log.Fatalf("engine: %v", err)
			}
			printBoard(g.Position())
			if announce(g) {
				return
			}
			continue
		}

		fmt.Printf("%s> ", strings.ToLower(human.String()))
		if !in.Scan() {
			return
		}
		line := strings.TrimSpace(in.Text())

		switch line {
		case "":
			continue
		case "quit", "exit":
			return
		case "help":
			printHelp()
			continue
		case "board":
			printBoard(g.Position())
			continue
		case "fen":
			fmt.Println(g.FEN())
			continue
		case "moves":
			printLegal(g)
			continue
		case "undo":
			undoToHumanTurn(g, human)
			printBoard(g.Position())
			continue
		}

		move, err := board.ParseUCIMove(strings.ReplaceAll(line, "-", ""))
		if err != nil {
			notice.Println("moves look like e2e4 or e7e8q (try help)")
			continue
		}
		if err := g.ApplyMove(move); err != nil {
			notice.Printf("illegal move %s\n", line)
			continue
		}
		printBoard(g.Position())
		if announce(g) {
			return
		}
	}
}

func printBoard(pos board.Position) {
	fmt.Println()
	for rank := 7; rank >= 0; rank-- {
		coords.Printf(" %d ", rank+1)
		for file := 0; file < 8; file++ {
			p := pos.PieceAt(board.NewSquare(file, rank))
			switch {
			case p == board.NoPiece:
				coords.Print(" ·")
			case p.Color() == board.White:
				whitePiece.Printf(" %s", whiteGlyphs[p.Type()])
			default:
				blackPiece.Printf(" %s", blackGlyphs[p.Type()])
			}
		}
		fmt.Println()
	}
	coords.Println("\n    a b c d e f g h")
}

func engineMove(g *game.Game, eng *engine.Engine) error {
	start := time.Now()
	res, err := eng.BestMove(context.Background(), g.Position(), *depth)
	if err != nil {
		return err
	}
	if err := g.ApplyMove(res.Move); err != nil {
		return err
	}
	engineSays.Printf("engine plays %s (%s, %d nodes, %v)\n",
		res.Move, engine.ScoreString(res.Score, res.Depth), res.Nodes,
		time.Since(start).Round(time.Millisecond))
	return nil
}

// announce reports the game status and returns true once it is over.
func announce(g *game.Game) bool {
	switch g.Status() {
	case game.StatusCheckmate:
		winner := strings.ToLower(g.Turn().Other().String())
		notice.Printf("checkmate, %s wins\n", winner)
		return true
	case game.StatusStalemate:
		notice.Println("stalemate")
		return true
	case game.StatusDraw:
		notice.Println("draw")
		return true
	case game.StatusCheck:
		notice.Println("check")
	}
	return false
}

// undoToHumanTurn takes back the engine's reply along with the move that
// prompted it, so the human is back on move.
func undoToHumanTurn(g *game.Game, human board.Color) {
	if _, err := g.UndoLast(); err != nil {
		notice.Println("nothing to undo")
		return
	}
	for g.Turn() != human {
		if _, err := g.UndoLast(); err != nil {
			break
		}
	}
}

func printLegal(g *game.Game) {
	moves := g.LegalMoves()
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	fmt.Println(strings.Join(parts, " "))
}

func printHelp() {
	fmt.Println(`  e2e4      play a move (e7e8q to promote)
  undo      take back your last move
  moves     list legal moves
  board     reprint the board
  fen       print the position as FEN
  quit      leave the game`)
}
