package board

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestChainCaptureForcing(t *testing.T) {
	b := MustParseDiagram(`
		........
		........
		........
		b.......
		........
		b......b
		w......w
		........`)

	first := capture(sq(6, 0), sq(4, 0), sq(5, 0))
	elsewhere := capture(sq(6, 7), sq(4, 7), sq(5, 7))

	moves := GenerateMoves(b, White, NoSquare, Turkish)
	if !Contains(moves, first) || !Contains(moves, elsewhere) {
		t.Fatalf("opening captures missing from %v", moves)
	}

	res := PerformMove(b, first, White, Turkish)
	if res.Next != White {
		t.Fatalf("next = %s, want white to continue", res.Next)
	}
	if res.MustCaptureFrom != sq(4, 0) {
		t.Fatalf("mustCaptureFrom = %s, want a4", res.MustCaptureFrom)
	}
	if !res.ChainContinues() {
		t.Error("ChainContinues = false")
	}

	got := GenerateMoves(res.Board, White, res.MustCaptureFrom, Turkish)
	want := []Move{capture(sq(4, 0), sq(2, 0), sq(3, 0))}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("continuation mismatch (-want +got):\n%s", diff)
	}

	end := PerformMove(res.Board, got[0], White, Turkish)
	if end.Next != Black || end.MustCaptureFrom != NoSquare {
		t.Errorf("after last capture: next=%s must=%s, want black and none", end.Next, end.MustCaptureFrom)
	}
	if n := end.Board.Count(Black); n != 1 {
		t.Errorf("black pieces = %d, want 1", n)
	}
}

func TestPromotionFinality(t *testing.T) {
	b := MustParseDiagram(`
		....b...
		...b....
		...w....
		........
		........
		........
		........
		.......b`)

	moves := GenerateMoves(b, White, NoSquare, Turkish)
	want := Move{From: sq(2, 3), To: sq(0, 3), Capture: true, Captured: sq(1, 3), Promotes: true}
	if diff := cmp.Diff([]Move{want}, moves); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	res := PerformMove(b, want, White, Turkish)
	if p := res.Board.At(sq(0, 3)); p != WhiteKing {
		t.Errorf("landing piece = %v, want white king", p)
	}
	// The new king could capture e8 next, but promotion ends the turn.
	if caps := GenerateCaptures(res.Board, White, sq(0, 3), Turkish); len(caps) == 0 {
		t.Fatal("test position should offer a further capture")
	}
	if res.Next != Black || res.ChainContinues() {
		t.Errorf("promoting capture left the turn with %s (chain %s)", res.Next, res.MustCaptureFrom)
	}
	if res.Notation != "d6xd8 (K)" {
		t.Errorf("notation = %q", res.Notation)
	}
}

func TestPromotionOnWalk(t *testing.T) {
	b := MustParseDiagram(`
		........
		..w.....
		........
		........
		........
		........
		.b......
		........`)

	for _, m := range GenerateMoves(b, White, NoSquare, Spanish) {
		if !m.Promotes {
			t.Errorf("%v reaches row 0 without promoting", m)
		}
	}
	for _, m := range GenerateMoves(b, Black, NoSquare, Spanish) {
		if !m.Promotes {
			t.Errorf("%v reaches row 7 without promoting", m)
		}
	}
}

func TestApplyMove(t *testing.T) {
	b := NewBoard(Spanish, DiagonalSetup)
	legal := GenerateMoves(b, White, NoSquare, Spanish)

	res, err := ApplyMove(b, legal[0], White, NoSquare, Spanish)
	if err != nil {
		t.Fatalf("ApplyMove(legal) error: %v", err)
	}
	if res.Next != Black {
		t.Errorf("next = %s, want black", res.Next)
	}

	bogus := walk(sq(5, 0), sq(3, 0))
	if _, err := ApplyMove(b, bogus, White, NoSquare, Spanish); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("ApplyMove(bogus) error = %v, want ErrInvalidMove", err)
	}

	// The original board is untouched.
	if b.At(legal[0].From) != WhiteMan {
		t.Error("ApplyMove mutated its input board")
	}
}

// TestMoveLegalityClosure plays seeded random games in every variant and
// checks each generated move against the board it was generated for.
func TestMoveLegalityClosure(t *testing.T) {
	for _, v := range Variants {
		for _, setup := range []Setup{Standard, DiagonalSetup} {
			t.Run(v.String()+"-"+setup.String(), func(t *testing.T) {
				rng := rand.New(rand.NewSource(int64(v)*7 + int64(setup)))
				for game := 0; game < 20; game++ {
					playRandomGame(t, rng, NewBoard(v, setup), v)
				}
			})
		}
	}
}

func playRandomGame(t *testing.T, rng *rand.Rand, b Board, v Variant) {
	t.Helper()
	side := White
	chain := NoSquare

	for ply := 0; ply < 200; ply++ {
		if CheckWinCondition(b, side, v) != Ongoing {
			return
		}
		moves := GenerateMoves(b, side, chain, v)
		if len(moves) == 0 {
			t.Fatalf("no moves for %s mid-chain at %s\n%s", side, chain, b)
		}
		checkCapturePolicy(t, b, side, chain, v, moves)

		for _, m := range moves {
			if p := b.At(m.From); p == NoPiece || p.Owner() != side {
				t.Fatalf("%v starts on %v, not a %s piece", m, p, side)
			}
			if !b.IsEmpty(m.To) {
				t.Fatalf("%v lands on an occupied square", m)
			}
			if chain.IsValid() && (m.From != chain || !m.Capture) {
				t.Fatalf("%v violates the chain from %s", m, chain)
			}
			if m.Capture != m.Captured.IsValid() {
				t.Fatalf("%v: capture flag and captured square disagree", m)
			}
		}

		m := moves[rng.Intn(len(moves))]
		before := b.Count(side.Other())
		res := PerformMove(b, m, side, v)
		if p := res.Board.At(m.To); p == NoPiece || p.Owner() != side {
			t.Fatalf("after %v the landing square holds %v", m, p)
		}
		if !res.Board.IsEmpty(m.From) {
			t.Fatalf("after %v the origin is still occupied", m)
		}
		if m.Capture && res.Board.Count(side.Other()) != before-1 {
			t.Fatalf("%v did not remove exactly one piece", m)
		}

		b, side, chain = res.Board, res.Next, res.MustCaptureFrom
	}
}

// checkCapturePolicy asserts the mandatory-capture filter and Moroccan optionality.
func checkCapturePolicy(t *testing.T, b Board, side Side, chain Square, v Variant, moves []Move) {
	t.Helper()
	if chain.IsValid() {
		return
	}

	var all []Move
	for _, s := range b.Squares(side) {
		all = append(all, MovesForPiece(b, s, v)...)
	}
	anyCapture, anyQuiet := false, false
	for _, m := range all {
		if m.Capture {
			anyCapture = true
		} else {
			anyQuiet = true
		}
	}

	switch {
	case v.CaptureMandatory() && anyCapture:
		for _, m := range moves {
			if !m.Capture {
				t.Fatalf("%s: quiet move %v offered while a capture exists", v, m)
			}
		}
	case !v.CaptureMandatory():
		if len(moves) != len(all) {
			t.Fatalf("%s filtered moves: %d of %d", v, len(moves), len(all))
		}
		if anyCapture && anyQuiet {
			hasQuiet := false
			for _, m := range moves {
				hasQuiet = hasQuiet || !m.Capture
			}
			if !hasQuiet {
				t.Fatalf("%s dropped quiet moves next to a capture", v)
			}
		}
	}
}
