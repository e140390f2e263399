package engine

import (
	"github.com/hailam/damaplay/internal/board"
)

// Move ordering priorities
const (
	TTMoveScore  = 1_000_000_000 // TT move gets highest priority
	CaptureScore = 500_000_000
	PromoteScore = 200_000_000
	KillerScore1 = 100_000_000 // First killer move
	KillerScore2 = 80_000_000  // Second killer move
)

// historyCap bounds a single history counter; all counters are halved when
// one reaches it.
const historyCap = 1 << 24

// MoveOrderer handles move ordering for the search.
type MoveOrderer struct {
	// Killer moves (quiet moves that caused beta cutoffs)
	killers [MaxPly][2]board.Move

	// History heuristic (indexed by Move.ID)
	history [64 * 64]int
}

// NewMoveOrderer creates a new move orderer.
func NewMoveOrderer() *MoveOrderer {
	mo := &MoveOrderer{}
	mo.Clear()
	return mo
}

// Clear resets killers and history.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
	for i := range mo.history {
		mo.history[i] = 0
	}
}

// ScoreMoves assigns scores to moves for ordering.
func (mo *MoveOrderer) ScoreMoves(moves []board.Move, ply int, ttMove board.Move) []int {
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = mo.scoreMove(m, ply, ttMove)
	}
	return scores
}

// scoreMove returns the ordering score for a single move.
func (mo *MoveOrderer) scoreMove(m board.Move, ply int, ttMove board.Move) int {
	score := 0
	if ttMove.From.IsValid() && m.SameSquares(ttMove) {
		score += TTMoveScore
	}
	if m.Capture {
		score += CaptureScore
	}
	if m.Promotes {
		score += PromoteScore
	}
	if ply < MaxPly {
		switch {
		case m.SameSquares(mo.killers[ply][0]):
			score += KillerScore1
		case m.SameSquares(mo.killers[ply][1]):
			score += KillerScore2
		}
	}
	return score + mo.history[m.ID()]
}

// ScoreCaptures orders quiescence moves: promotions first, then history.
func (mo *MoveOrderer) ScoreCaptures(moves []board.Move) []int {
	scores := make([]int, len(moves))
	for i, m := range moves {
		if m.Promotes {
			scores[i] = PromoteScore
		}
		scores[i] += mo.history[m.ID()]
	}
	return scores
}

// SortMoves sorts moves by their scores (descending). Equal scores keep
// their generation order.
func SortMoves(moves []board.Move, scores []int) {
	// Insertion sort: stable and sufficient for short move lists
	for i := 1; i < len(moves); i++ {
		m, s := moves[i], scores[i]
		j := i - 1
		for j >= 0 && scores[j] < s {
			moves[j+1], scores[j+1] = moves[j], scores[j]
			j--
		}
		moves[j+1], scores[j+1] = m, s
	}
}

// UpdateKillers adds a killer move at the given ply.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly {
		return
	}

	// Don't store if it's already the first killer
	if mo.killers[ply][0].SameSquares(m) {
		return
	}

	// Shift killers
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateHistory rewards a move that caused a cutoff at depth.
func (mo *MoveOrderer) UpdateHistory(m board.Move, depth int) {
	if depth < 1 {
		depth = 1
	}
	id := m.ID()
	mo.history[id] += depth * depth

	// Prevent overflow
	if mo.history[id] > historyCap {
		for i := range mo.history {
			mo.history[i] /= 2
		}
	}
}

// HistoryScore returns the history score for a move.
func (mo *MoveOrderer) HistoryScore(m board.Move) int {
	return mo.history[m.ID()]
}
