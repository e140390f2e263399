// Package game tracks a dama game in progress: position, turn, chain-capture
// state, move history and take-backs.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/hailam/damaplay/internal/board"
)

// MaxGamePlies ends a game as a draw after this many moves. The rules have
// no repetition draw, so drivers need their own stopping point.
const MaxGamePlies = 300

var (
	ErrGameOver      = errors.New("game is over")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// state is everything Undo restores.
type state struct {
	board   board.Board
	side    board.Side
	must    board.Square
	outcome board.Outcome
	plies   int
	history int // length of the notation history
}

// Game is a single game between two sides.
type Game struct {
	variant board.Variant
	setup   board.Setup
	cur     state

	legal       []board.Move
	history     []string
	checkpoints []state
	started     time.Time
}

// New starts a game from the initial position of v and s, white to move.
func New(v board.Variant, s board.Setup) *Game {
	return FromPosition(board.NewBoard(v, s), board.White, v, s)
}

// FromPosition starts a game from an arbitrary position.
func FromPosition(b board.Board, side board.Side, v board.Variant, s board.Setup) *Game {
	g := &Game{
		variant: v,
		setup:   s,
		cur: state{
			board: b,
			side:  side,
			must:  board.NoSquare,
		},
		started: time.Now(),
	}
	g.refresh()
	return g
}

// refresh recomputes the outcome and legal moves for the current state.
func (g *Game) refresh() {
	if g.cur.outcome == board.Ongoing {
		g.cur.outcome = board.CheckWinCondition(g.cur.board, g.cur.side, g.variant)
	}
	if g.cur.outcome == board.Ongoing && g.cur.plies >= MaxGamePlies {
		g.cur.outcome = board.Draw
	}

	g.legal = nil
	if g.cur.outcome == board.Ongoing {
		g.legal = board.GenerateMoves(g.cur.board, g.cur.side, g.cur.must, g.variant)
	}
}

// Play validates and executes m for the side to move.
func (g *Game) Play(m board.Move) (board.MoveResult, error) {
	if g.Over() {
		return board.MoveResult{}, ErrGameOver
	}
	if !board.Contains(g.legal, m) {
		return board.MoveResult{}, fmt.Errorf("%w: %s for %s", board.ErrInvalidMove, m, g.cur.side)
	}

	res := board.PerformMove(g.cur.board, m, g.cur.side, g.variant)
	g.history = append(g.history, res.Notation)
	g.cur = state{
		board:   res.Board,
		side:    res.Next,
		must:    res.MustCaptureFrom,
		plies:   g.cur.plies + 1,
		history: len(g.history),
	}
	g.refresh()
	return res, nil
}

// PlayText parses a move such as "c3-c4" or "c3xc5" and plays it.
func (g *Game) PlayText(s string) (board.MoveResult, error) {
	if g.Over() {
		return board.MoveResult{}, ErrGameOver
	}
	m, err := board.ParseMoveText(s, g.legal)
	if err != nil {
		return board.MoveResult{}, err
	}
	return g.Play(m)
}

// Checkpoint records the current state as an Undo target.
func (g *Game) Checkpoint() {
	g.checkpoints = append(g.checkpoints, g.cur)
}

// CanUndo reports whether a checkpoint exists.
func (g *Game) CanUndo() bool {
	return len(g.checkpoints) > 0
}

// Undo restores the most recent checkpoint.
func (g *Game) Undo() error {
	n := len(g.checkpoints)
	if n == 0 {
		return ErrNothingToUndo
	}
	g.cur = g.checkpoints[n-1]
	g.checkpoints = g.checkpoints[:n-1]
	g.history = g.history[:g.cur.history]
	g.refresh()
	return nil
}

// Board returns the current position.
func (g *Game) Board() board.Board { return g.cur.board }

// Side returns the side to move.
func (g *Game) Side() board.Side { return g.cur.side }

// MustCaptureFrom returns the square a chain capture must continue from, or
// board.NoSquare.
func (g *Game) MustCaptureFrom() board.Square { return g.cur.must }

// Variant returns the rules in play.
func (g *Game) Variant() board.Variant { return g.variant }

// Setup returns the initial setup.
func (g *Game) Setup() board.Setup { return g.setup }

// Outcome returns the result so far.
func (g *Game) Outcome() board.Outcome { return g.cur.outcome }

// Over reports whether the game has finished.
func (g *Game) Over() bool { return g.cur.outcome != board.Ongoing }

// Plies returns the number of moves played, counting each capture of a chain.
func (g *Game) Plies() int { return g.cur.plies }

// Started returns when the game began.
func (g *Game) Started() time.Time { return g.started }

// LegalMoves returns a copy of the moves available to the side to move.
func (g *Game) LegalMoves() []board.Move {
	return append([]board.Move(nil), g.legal...)
}

// History returns the notation of every move played, oldest first.
func (g *Game) History() []string {
	return append([]string(nil), g.history...)
}
