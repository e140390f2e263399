// Package engine implements the dama AI search engine.
package engine

import (
	"github.com/hailam/damaplay/internal/board"
)

// Weights are the evaluation coefficients of one difficulty profile.
type Weights struct {
	King               int // material value of a king
	Man                int // material value of a man
	Mobility           int // per legal move of difference
	Center             int // per piece in the central 4x4 zone
	PromotionPotential int // flat bonus for a man within 3 rows of crowning
	SideSafety         int // per piece on an edge column
	Trap               int // per capture of difference
	Sacrifice          int // material down but clearly more mobile
	Complexity         int // per capture available to either side
	Tricky             int // two or more captures available to us
}

// Evaluation profiles
var (
	DefaultWeights = Weights{
		King:               300,
		Man:                100,
		Mobility:           15,
		Center:             10,
		PromotionPotential: 25,
		SideSafety:         10,
		Trap:               50,
		Sacrifice:          60,
		Complexity:         20,
		Tricky:             30,
	}

	// EasyWeights is tactically blind: material and a little advancement only.
	EasyWeights = Weights{
		King:               150,
		Man:                100,
		Center:             1,
		PromotionPotential: 5,
	}

	MediumWeights = func() Weights {
		w := DefaultWeights
		w.King = 250
		w.Mobility = 8
		w.Center = 6
		return w
	}()

	HardWeights = Weights{
		King:               5000,
		Man:                100,
		Mobility:           40,
		Center:             25,
		PromotionPotential: 80,
		SideSafety:         30,
		Trap:               150,
		Sacrifice:          120,
		Complexity:         60,
		Tricky:             60,
	}
)

// tactical reports whether any term needing full move generation is enabled.
func (w Weights) tactical() bool {
	return w.Mobility != 0 || w.Trap != 0 || w.Complexity != 0 || w.Tricky != 0 || w.Sacrifice != 0
}

// Positional zone constants
const (
	centerMin        = 2
	centerMax        = 5
	advancementScale = 2 // bonus per row travelled by a man
	promotionZone    = 3 // rows from the crowning row that earn PromotionPotential
	trickyCaptures   = 2 // captures needed for the Tricky bonus
	sacrificeMargin  = 2 // mobility lead required for the Sacrifice bonus
)

// Evaluate returns the static evaluation of b from perspective's point of
// view; positive scores favour perspective.
func Evaluate(b board.Board, perspective board.Side, v board.Variant, w Weights) int {
	material := evaluateMaterial(&b, perspective, w)
	score := material + evaluatePosition(&b, perspective, w)

	if w.tactical() {
		score += evaluateTactics(b, perspective, v, w, material)
	}
	return score
}

// evaluateMaterial sums piece values, signed by ownership.
func evaluateMaterial(b *board.Board, perspective board.Side, w Weights) int {
	score := 0
	forEachPiece(b, func(sq board.Square, p board.Piece) {
		val := w.Man
		if p.IsKing() {
			val = w.King
		}
		score += sign(p, perspective) * val
	})
	return score
}

// evaluatePosition scores centre occupancy, edge safety and advancement of men.
func evaluatePosition(b *board.Board, perspective board.Side, w Weights) int {
	score := 0
	forEachPiece(b, func(sq board.Square, p board.Piece) {
		s := sign(p, perspective)
		row, col := int(sq.Row), int(sq.Col)

		if col >= centerMin && col <= centerMax && row >= centerMin && row <= centerMax {
			score += s * w.Center
		}
		if col == 0 || col == board.Size-1 {
			score += s * w.SideSafety
		}

		if p.IsKing() {
			return
		}
		owner := p.Owner()
		// Rows still to go before crowning.
		remaining := row - owner.PromotionRow()
		if remaining < 0 {
			remaining = -remaining
		}
		advancement := board.Size - 1 - remaining
		score += s * advancement * advancementScale
		if remaining <= promotionZone-1 {
			score += s * w.PromotionPotential
		}
	})
	return score
}

// evaluateTactics scores mobility and capture pressure for both sides.
func evaluateTactics(b board.Board, perspective board.Side, v board.Variant, w Weights, material int) int {
	mine := board.GenerateMoves(b, perspective, board.NoSquare, v)
	theirs := board.GenerateMoves(b, perspective.Other(), board.NoSquare, v)

	score := (len(mine) - len(theirs)) * w.Mobility

	if material < 0 && len(mine) > len(theirs)+sacrificeMargin {
		score += w.Sacrifice
	}

	myCaps, opCaps := countCaptures(mine), countCaptures(theirs)
	score += (myCaps - opCaps) * w.Trap
	score += (myCaps + opCaps) * w.Complexity
	if myCaps >= trickyCaptures {
		score += w.Tricky
	}
	return score
}

func countCaptures(moves []board.Move) int {
	n := 0
	for _, m := range moves {
		if m.Capture {
			n++
		}
	}
	return n
}

// forEachPiece calls fn for every occupied square.
func forEachPiece(b *board.Board, fn func(board.Square, board.Piece)) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.NewSquare(row, col)
			if p := b.At(sq); p != board.NoPiece {
				fn(sq, p)
			}
		}
	}
}

// sign is +1 for perspective's pieces and -1 for the opponent's.
func sign(p board.Piece, perspective board.Side) int {
	if p.Owner() == perspective {
		return 1
	}
	return -1
}
