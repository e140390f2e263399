package engine

import (
	"github.com/hailam/damaplay/internal/board"
)

// Every search function returns (score, ok). ok is false once the budget is
// exhausted; callers must then return immediately without storing anything.

// searchRoot scores every root move at depth with a full window and returns
// the best one. Moves are searched in the given order and ties keep the
// earlier move.
func (s *search) searchRoot(b board.Board, moves []board.Move, side board.Side, depth int) (board.Move, int, bool) {
	bestMove := board.NoMove
	bestScore := -Infinity
	found := false

	for _, m := range moves {
		if !s.budget.Tick() {
			return board.NoMove, 0, false
		}

		res := board.PerformMove(b, m, side, s.variant)
		var score int
		var ok bool
		if res.Next == side {
			score, ok = s.negamax(res.Board, depth, 1, -Infinity, Infinity, side, res.MustCaptureFrom)
		} else {
			score, ok = s.negamax(res.Board, depth-1, 1, -Infinity, Infinity, side.Other(), board.NoSquare)
			score = -score
		}
		if !ok {
			return board.NoMove, 0, false
		}

		if !found || score > bestScore {
			bestScore = score
			bestMove = m
			found = true
		}
	}
	return bestMove, bestScore, true
}

// negamax searches b for side to move. Scores are from side's point of view.
func (s *search) negamax(b board.Board, depth, ply, alpha, beta int, side board.Side, mustCaptureFrom board.Square) (int, bool) {
	if !s.budget.Tick() {
		return 0, false
	}

	alphaOrig, betaOrig := alpha, beta
	key := b.Key(side, mustCaptureFrom)

	// Probe transposition table
	ttMove := board.NoMove
	if entry, found := s.tt.Probe(key); found {
		ttMove = entry.BestMove
		if entry.Depth >= depth {
			switch entry.Flag {
			case TTExact:
				return entry.Score, true
			case TTLowerBound:
				alpha = max(alpha, entry.Score)
			case TTUpperBound:
				beta = min(beta, entry.Score)
			}
			if alpha >= beta {
				return entry.Score, true
			}
		}
	}

	if outcome := board.CheckWinCondition(b, side, s.variant); outcome != board.Ongoing {
		return terminalScore(outcome, side, depth), true
	}

	// Horizon
	if depth <= 0 {
		return s.quiescence(b, 0, alpha, beta, side, mustCaptureFrom)
	}

	// Null move pruning. A side in the middle of a chain capture may not pass.
	if depth >= nullMoveMinDepth && !mustCaptureFrom.IsValid() {
		score, ok := s.negamax(b, depth-1-nullMoveReduction, ply+1, -beta, -beta+1, side.Other(), board.NoSquare)
		if !ok {
			return 0, false
		}
		if -score >= beta {
			return beta, true
		}
	}

	moves := board.GenerateMoves(b, side, mustCaptureFrom, s.variant)
	if len(moves) == 0 {
		return s.evaluate(b, side), true
	}
	SortMoves(moves, s.orderer.ScoreMoves(moves, ply, ttMove))

	bestScore := -Infinity
	bestMove := board.NoMove
	haveBest := false

	for i, m := range moves {
		res := board.PerformMove(b, m, side, s.variant)

		// Late move reduction
		reduction := 0
		if i >= lmrMinIndex && depth >= lmrMinDepth && m.IsQuiet() {
			reduction = lmrReduction
		}

		score, ok := s.searchChild(res, side, depth, ply, alpha, beta, i == 0, reduction)
		if !ok {
			return 0, false
		}

		if !haveBest || score > bestScore {
			bestScore = score
			bestMove = m
			haveBest = true
		}
		if score > alpha {
			alpha = score
		}

		// Beta cutoff
		if alpha >= beta {
			s.orderer.UpdateHistory(m, depth)
			if m.IsQuiet() {
				s.orderer.UpdateKillers(m, ply)
			}
			break
		}
	}

	flag := TTExact
	if bestScore <= alphaOrig {
		flag = TTUpperBound
	} else if bestScore >= betaOrig {
		flag = TTLowerBound
	}
	s.tt.Store(key, depth, bestScore, flag, bestMove)

	return bestScore, true
}

// searchChild searches the position after one move with principal variation
// search. The first child gets the full window; later children are probed
// with a null window, possibly reduced, and re-searched when they beat alpha.
//
// When the same side continues a chain capture the child keeps depth and
// window and its score is not negated.
func (s *search) searchChild(res board.MoveResult, side board.Side, depth, ply, alpha, beta int, first bool, reduction int) (int, bool) {
	if res.Next == side {
		if first {
			return s.negamax(res.Board, depth, ply+1, alpha, beta, side, res.MustCaptureFrom)
		}
		score, ok := s.negamax(res.Board, depth-reduction, ply+1, alpha, alpha+1, side, res.MustCaptureFrom)
		if !ok || score <= alpha {
			return score, ok
		}
		return s.negamax(res.Board, depth, ply+1, alpha, beta, side, res.MustCaptureFrom)
	}

	opp := side.Other()
	full := depth - 1
	if first {
		score, ok := s.negamax(res.Board, full, ply+1, -beta, -alpha, opp, board.NoSquare)
		return -score, ok
	}

	score, ok := s.negamax(res.Board, full-reduction, ply+1, -alpha-1, -alpha, opp, board.NoSquare)
	if !ok {
		return 0, false
	}
	score = -score
	if score <= alpha {
		return score, true
	}

	score, ok = s.negamax(res.Board, full, ply+1, -beta, -alpha, opp, board.NoSquare)
	return -score, ok
}

// quiescence resolves captures below the horizon. qPly counts plies since
// the horizon and is capped at MaxQuiescenceDepth.
func (s *search) quiescence(b board.Board, qPly, alpha, beta int, side board.Side, mustCaptureFrom board.Square) (int, bool) {
	if !s.budget.Tick() {
		return 0, false
	}

	if outcome := board.CheckWinCondition(b, side, s.variant); outcome != board.Ongoing {
		return terminalScore(outcome, side, 0), true
	}

	// Stand pat
	standPat := s.evaluate(b, side)
	if qPly >= MaxQuiescenceDepth {
		return standPat, true
	}
	if standPat >= beta {
		return beta, true
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := board.GenerateCaptures(b, side, mustCaptureFrom, s.variant)
	if len(moves) == 0 {
		return alpha, true
	}
	SortMoves(moves, s.orderer.ScoreCaptures(moves))

	for _, m := range moves {
		res := board.PerformMove(b, m, side, s.variant)

		var score int
		var ok bool
		if res.Next == side {
			score, ok = s.quiescence(res.Board, qPly+1, alpha, beta, side, res.MustCaptureFrom)
		} else {
			score, ok = s.quiescence(res.Board, qPly+1, -beta, -alpha, side.Other(), board.NoSquare)
			score = -score
		}
		if !ok {
			return 0, false
		}

		if score >= beta {
			return beta, true
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha, true
}
