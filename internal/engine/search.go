package engine

import (
	"github.com/hailam/damaplay/internal/board"
)

// Search constants
const (
	Infinity = 1_000_000
	MaxPly   = 128

	// MaxQuiescenceDepth caps capture-only search below the horizon, so
	// recursion never exceeds maxDepth + MaxQuiescenceDepth frames of
	// quiescence.
	MaxQuiescenceDepth = 12
)

// Pruning constants
const (
	nullMoveMinDepth  = 3 // Minimum depth for null-move pruning
	nullMoveReduction = 2 // Extra plies removed from the null-move search
	lmrMinDepth       = 3 // Minimum depth for late move reductions
	lmrMinIndex       = 3 // Quiet moves from this index on are reduced
	lmrReduction      = 1
)

// search holds the mutable state of a single BestMove call: transposition
// table, evaluation cache, move ordering tables and budget. It is created fresh per call and
// discarded on return.
type search struct {
	variant board.Variant
	weights Weights

	tt      *TranspositionTable
	evals   *EvalCache
	orderer *MoveOrderer
	budget  *Budget
}

func newSearch(v board.Variant, w Weights, budget *Budget, ttCapacity int) *search {
	return &search{
		variant: v,
		weights: w,
		tt:      NewTranspositionTable(ttCapacity),
		evals:   NewEvalCache(evalCacheBits),
		orderer: NewMoveOrderer(),
		budget:  budget,
	}
}

// terminalScore scores a finished game from side's point of view. Wins are
// biased by remaining depth so faster wins and slower losses are preferred.
func terminalScore(o board.Outcome, side board.Side, depth int) int {
	winner, ok := o.Winner()
	if !ok {
		return 0
	}
	if winner == side {
		return Infinity + depth
	}
	return -(Infinity + depth)
}
