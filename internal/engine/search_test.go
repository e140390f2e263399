package engine

import (
	"math/rand"
	"testing"

	"github.com/hailam/damaplay/internal/board"
)

// window is wider than any score, so searches with it return exact values.
const window = 2 * Infinity

func freshSearch(v board.Variant) *search {
	return newSearch(v, HardWeights, NewBudget(0, 0), DefaultTTCapacity)
}

// minimax is a full-width negamax with the same leaves as search.negamax:
// terminal scores biased by depth and capture-only resolution below the
// horizon. It has no pruning, ordering or table.
func minimax(b board.Board, depth int, side board.Side, must board.Square, v board.Variant) int {
	if o := board.CheckWinCondition(b, side, v); o != board.Ongoing {
		return terminalScore(o, side, depth)
	}
	if depth <= 0 {
		return quiesce(b, 0, side, must, v)
	}

	best := -window
	for _, m := range board.GenerateMoves(b, side, must, v) {
		res := board.PerformMove(b, m, side, v)
		var score int
		if res.Next == side {
			score = minimax(res.Board, depth, side, res.MustCaptureFrom, v)
		} else {
			score = -minimax(res.Board, depth-1, side.Other(), board.NoSquare, v)
		}
		best = max(best, score)
	}
	return best
}

func quiesce(b board.Board, qPly int, side board.Side, must board.Square, v board.Variant) int {
	if o := board.CheckWinCondition(b, side, v); o != board.Ongoing {
		return terminalScore(o, side, 0)
	}
	best := Evaluate(b, side, v, HardWeights)
	if qPly >= MaxQuiescenceDepth {
		return best
	}
	for _, m := range board.GenerateCaptures(b, side, must, v) {
		res := board.PerformMove(b, m, side, v)
		var score int
		if res.Next == side {
			score = quiesce(res.Board, qPly+1, side, res.MustCaptureFrom, v)
		} else {
			score = -quiesce(res.Board, qPly+1, side.Other(), board.NoSquare, v)
		}
		best = max(best, score)
	}
	return best
}

type position struct {
	b    board.Board
	side board.Side
	must board.Square
}

// randomPositions plays random games and samples ongoing positions, chain
// captures in progress included.
func randomPositions(v board.Variant, n int, seed int64) []position {
	setup := board.DiagonalSetup
	if v == board.Turkish {
		setup = board.Standard
	}
	rng := rand.New(rand.NewSource(seed))

	var out []position
	for len(out) < n {
		p := position{b: board.NewBoard(v, setup), side: board.White, must: board.NoSquare}
		plies := 4 + rng.Intn(40)
		for i := 0; i < plies; i++ {
			moves := board.GenerateMoves(p.b, p.side, p.must, v)
			if len(moves) == 0 {
				break
			}
			res := board.PerformMove(p.b, moves[rng.Intn(len(moves))], p.side, v)
			p = position{b: res.Board, side: res.Next, must: res.MustCaptureFrom}
		}
		if board.CheckWinCondition(p.b, p.side, v) == board.Ongoing {
			out = append(out, p)
		}
	}
	return out
}

func TestNegamaxMatchesMinimax(t *testing.T) {
	for _, v := range board.Variants {
		t.Run(v.String(), func(t *testing.T) {
			for i, p := range randomPositions(v, 12, int64(v)+1) {
				for depth := 1; depth <= 2; depth++ {
					want := minimax(p.b, depth, p.side, p.must, v)
					got, ok := freshSearch(v).negamax(p.b, depth, 1, -window, window, p.side, p.must)
					if !ok {
						t.Fatal("unlimited search aborted")
					}
					if got != want {
						t.Errorf("position %d depth %d (%s to move, chain %s): negamax %d, minimax %d\n%s",
							i, depth, p.side, p.must, got, want, p.b)
					}
				}
			}
		})
	}
}

func TestNullMoveSkippedDuringChain(t *testing.T) {
	// The white king must keep capturing from e4. Its only capture lands on
	// e6, where e7xe5 takes it back. Passing instead would leave black with
	// nothing to do against a king up.
	b := board.MustParseDiagram(`
		....b...
		....b...
		........
		....b...
		....W...
		....w...
		........
		........`)
	must := sq(4, 4)
	v := board.Turkish

	// Score of a pass: black to move, no captures, so quiescence stands pat.
	passScore := -Evaluate(b, board.Black, v, HardWeights)
	trueScore, _ := freshSearch(v).negamax(b, 3, 1, -window, window, board.White, must)
	if trueScore >= passScore-1 {
		t.Fatalf("position does not separate pass (%d) from forced capture (%d)", passScore, trueScore)
	}

	beta := passScore
	got, ok := freshSearch(v).negamax(b, 3, 1, beta-1, beta, board.White, must)
	if !ok {
		t.Fatal("search aborted")
	}
	if got >= beta {
		t.Errorf("mid-chain node failed high at %d (true score %d): a null move was tried", got, trueScore)
	}
}

func TestTranspositionCutoffs(t *testing.T) {
	b := board.NewBoard(board.Turkish, board.Standard)
	key := b.Key(board.White, board.NoSquare)

	tests := []struct {
		name        string
		depth       int
		score       int
		flag        TTFlag
		alpha, beta int
		want        int
	}{
		{"ExactDeeper", 5, 777, TTExact, -100, 400, 777},
		{"LowerBoundAboveBeta", 2, 500, TTLowerBound, -100, 400, 500},
		{"UpperBoundBelowAlpha", 2, -300, TTUpperBound, -100, 400, -300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := freshSearch(board.Turkish)
			s.tt.Store(key, tt.depth, tt.score, tt.flag, board.NoMove)

			got, ok := s.negamax(b, 2, 1, tt.alpha, tt.beta, board.White, board.NoSquare)
			if !ok || got != tt.want {
				t.Errorf("negamax = %d, %v; want %d", got, ok, tt.want)
			}
			if n := s.budget.Nodes(); n != 1 {
				t.Errorf("searched %d nodes, want the table hit only", n)
			}
		})
	}
}

func TestTranspositionBoundsKeepExactScore(t *testing.T) {
	b := board.NewBoard(board.Spanish, board.DiagonalSetup)
	key := b.Key(board.White, board.NoSquare)
	want, _ := freshSearch(board.Spanish).negamax(b, 2, 1, -window, window, board.White, board.NoSquare)

	tests := []struct {
		name  string
		depth int
		score int
		flag  TTFlag
	}{
		{"LowerBoundNarrowsAlpha", 2, want - 50, TTLowerBound},
		{"UpperBoundNarrowsBeta", 2, want + 50, TTUpperBound},
		{"ShallowEntryIgnored", 1, want + 1000, TTExact},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := freshSearch(board.Spanish)
			s.tt.Store(key, tt.depth, tt.score, tt.flag, board.NoMove)

			got, ok := s.negamax(b, 2, 1, -window, window, board.White, board.NoSquare)
			if !ok || got != want {
				t.Errorf("negamax = %d, %v; want %d", got, ok, want)
			}
			if s.budget.Nodes() <= 1 {
				t.Error("bound cut the search short")
			}
		})
	}
}

func TestReducedChildResearch(t *testing.T) {
	b := board.NewBoard(board.Turkish, board.Standard)
	moves := board.GenerateMoves(b, board.White, board.NoSquare, board.Turkish)
	m := moves[len(moves)-1]
	if !m.IsQuiet() {
		t.Fatalf("%v is not a quiet move", m)
	}
	res := board.PerformMove(b, m, board.White, board.Turkish)

	// Exact child scores at the reduced and the full depth.
	childScore := func(depth int) int {
		score, _ := freshSearch(board.Turkish).negamax(res.Board, depth, 2, -window, window, board.Black, board.NoSquare)
		return -score
	}
	full, reduced := childScore(2), childScore(2-lmrReduction)

	// The reduced null-window search beats alpha, so the child is searched
	// again at full depth and its exact score comes back.
	alpha := min(full, reduced) - 10
	got, ok := freshSearch(board.Turkish).searchChild(res, board.White, 3, 1, alpha, window, false, lmrReduction)
	if !ok || got != full {
		t.Errorf("re-searched child = %d, %v; want %d", got, ok, full)
	}

	// A child whose reduced search fails low is not searched again and stays
	// at or below alpha.
	alpha = max(full, reduced) + 10
	got, ok = freshSearch(board.Turkish).searchChild(res, board.White, 3, 1, alpha, window, false, lmrReduction)
	if !ok || got > alpha {
		t.Errorf("failing child = %d, %v; want at most %d", got, ok, alpha)
	}
}
