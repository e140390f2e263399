package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/hailam/damaplay/internal/board"
	"github.com/hailam/damaplay/internal/engine"
	"github.com/hailam/damaplay/internal/storage"
)

// testEngine returns an engine whose levels are small, node-bounded and
// never random, so replies are reproducible.
func testEngine() *engine.Engine {
	var opts []engine.Option
	for _, l := range engine.Levels {
		lim := engine.DefaultLimits[l]
		lim.RandomChance = 0
		lim.MoveTime = 0
		lim.MaxDepth = min(lim.MaxDepth, 3)
		lim.Nodes = 2000
		opts = append(opts, engine.WithLimits(l, lim))
	}
	return engine.NewEngine(opts...)
}

type harness struct {
	c   *Console
	out *bytes.Buffer
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	out := &bytes.Buffer{}
	return &harness{c: New(testEngine(), out, opts...), out: out}
}

// exec runs the commands and returns what they printed.
func (h *harness) exec(t *testing.T, lines ...string) string {
	t.Helper()
	h.out.Reset()
	for _, line := range lines {
		if !h.c.Execute(line) {
			t.Fatalf("%q quit the console", line)
		}
	}
	return h.out.String()
}

func hvh() Option {
	p := storage.DefaultPreferences()
	p.GameMode = storage.ModeHumanVsHuman
	return WithPreferences(p)
}

func TestHumanVsHuman(t *testing.T) {
	h := newHarness(t, hvh())

	out := h.exec(t, "new turkish")
	if !strings.Contains(out, "newgame turkish standard") {
		t.Fatalf("new: %q", out)
	}

	out = h.exec(t, "moves")
	if !strings.HasPrefix(out, "moves white ") || !strings.Contains(out, "a3-a4") {
		t.Errorf("moves: %q", out)
	}

	out = h.exec(t, "move a3-a4", "move b6-b5")
	if strings.Contains(out, "bestmove") || strings.Contains(out, "error") {
		t.Errorf("human moves: %q", out)
	}

	out = h.exec(t, "history")
	if out != "1. a3-a4\n2. b6-b5\n" {
		t.Errorf("history: %q", out)
	}

	// Undo is unlimited between humans.
	for i := 0; i < 2; i++ {
		out = h.exec(t, "undo")
		if !strings.HasPrefix(out, "undone") {
			t.Fatalf("undo %d: %q", i, out)
		}
	}
	out = h.exec(t, "undo")
	if !strings.Contains(out, "error: nothing to undo") {
		t.Errorf("third undo: %q", out)
	}
}

func TestComputerReplies(t *testing.T) {
	h := newHarness(t)

	out := h.exec(t, "new spanish", "move c3-d4")
	if !strings.Contains(out, "played c3-d4") {
		t.Fatalf("move: %q", out)
	}
	if !strings.Contains(out, "bestmove ") || !strings.Contains(out, "info depth 1 ") {
		t.Errorf("computer did not answer: %q", out)
	}
	if h.c.game.Side() != h.c.human {
		t.Errorf("side to move = %s after the reply", h.c.game.Side())
	}
	if !strings.Contains(out, "winchance white ") {
		t.Errorf("no win chance after the reply: %q", out)
	}

	out = h.exec(t, "move c3-d4")
	if !strings.Contains(out, "error:") {
		t.Errorf("replaying a used move: %q", out)
	}

	// Undo restores the position before the human move.
	h.exec(t, "undo")
	if h.c.game.Plies() != 0 {
		t.Errorf("plies after undo = %d, want 0", h.c.game.Plies())
	}
}

func TestComputerPlaysWhite(t *testing.T) {
	h := newHarness(t)

	out := h.exec(t, "new moroccan", "side black")
	if !strings.Contains(out, "bestmove ") {
		t.Fatalf("computer did not open: %q", out)
	}
	if h.c.game.Side() != h.c.human {
		t.Errorf("side to move = %s, want black", h.c.game.Side())
	}
}

func TestHintsAreLimited(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "new")

	for i := storage.InitialHints - 1; i >= 0; i-- {
		out := h.exec(t, "hint")
		if !strings.HasPrefix(out, "hint ") && !strings.Contains(out, "\nhint ") {
			t.Fatalf("hint: %q", out)
		}
		if h.c.hintsLeft != i {
			t.Errorf("hints left = %d, want %d", h.c.hintsLeft, i)
		}
	}
	out := h.exec(t, "hint")
	if !strings.Contains(out, "error: no hints left") {
		t.Errorf("hint past the limit: %q", out)
	}
}

func TestFinishedGameIsRecorded(t *testing.T) {
	store, err := storage.Open(t.TempDir(), logr.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	h := newHarness(t, WithStorage(store))
	out := h.exec(t,
		"position ......../......../......../...b..../...w..../......../......../........ white",
		"move d4xd6")
	if !strings.Contains(out, "winner white") {
		t.Fatalf("capture of the last piece: %q", out)
	}

	out = h.exec(t, "move d6-d7")
	if !strings.Contains(out, "error: game is over") {
		t.Errorf("move after the end: %q", out)
	}

	stats, err := store.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 || stats.Wins != 1 || stats.WinsByLevel["medium"] != 1 {
		t.Errorf("stats = %+v", stats)
	}

	out = h.exec(t, "stats")
	if !strings.Contains(out, "games 1 wins 1") {
		t.Errorf("stats: %q", out)
	}
}

func TestPreferencesPersist(t *testing.T) {
	store, err := storage.Open(t.TempDir(), logr.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	h := newHarness(t, WithStorage(store))
	h.exec(t, "level hard", "mode hvh", "new spanish")

	prefs, err := store.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if prefs.Level != "hard" || prefs.GameMode != storage.ModeHumanVsHuman || prefs.Variant != "spanish" || prefs.Setup != "diagonal" {
		t.Errorf("preferences = %+v", prefs)
	}

	// A new console picks them up.
	h = newHarness(t, WithStorage(store))
	if h.c.level != engine.Hard || h.c.mode != storage.ModeHumanVsHuman {
		t.Errorf("reloaded level %s mode %s", h.c.level, h.c.mode)
	}
}

func TestErrors(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		line string
		want string
	}{
		{"frobnicate", `error: unknown command "frobnicate"`},
		{"moves", "error: no game in progress"},
		{"level hint", "error: invalid level"},
		{"level", "error: usage: level"},
		{"new checkers", "error: invalid variant"},
		{"mode cvc", `error: unknown mode "cvc"`},
		{"position ........ white", "error: invalid board diagram"},
		{"stats", "error: no storage configured"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out := h.exec(t, tt.line)
			if !strings.Contains(out, tt.want) {
				t.Errorf("%q printed %q, want %q", tt.line, out, tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(testEngine(), out, hvh())

	in := strings.NewReader("new turkish\n\nmove a3-a4\nquit\nmove b6-b5\n")
	if err := c.Run(in); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.game.Plies() != 1 {
		t.Errorf("plies = %d, want 1 (input after quit ignored)", c.game.Plies())
	}
}

func TestFinishedGameRecordedOnceAfterUndo(t *testing.T) {
	store, err := storage.Open(t.TempDir(), logr.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	h := newHarness(t, WithStorage(store), hvh())
	h.exec(t, "position ......../......../......../...b..../...w..../......../......../........ white")

	for i := 0; i < 2; i++ {
		out := h.exec(t, "move d4xd6")
		if !strings.Contains(out, "winner white") {
			t.Fatalf("win %d: %q", i, out)
		}
		if i == 0 {
			if out := h.exec(t, "undo"); !strings.HasPrefix(out, "undone") {
				t.Fatalf("undo: %q", out)
			}
		}
	}

	stats, err := store.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 || stats.Wins != 1 {
		t.Errorf("games %d wins %d, want 1 and 1", stats.GamesPlayed, stats.Wins)
	}

	// A new game is recorded again.
	h.exec(t, "position ......../......../......../...b..../...w..../......../......../........ white", "move d4xd6")
	if stats, _ = store.LoadStats(); stats.GamesPlayed != 2 {
		t.Errorf("games = %d after a second game, want 2", stats.GamesPlayed)
	}
}

func TestGoOnHumanTurnGetsAnswer(t *testing.T) {
	h := newHarness(t)

	out := h.exec(t, "new spanish", "go")
	if n := strings.Count(out, "bestmove "); n < 2 {
		t.Errorf("got %d engine moves, want the human's and the reply: %q", n, out)
	}
	if h.c.game.Side() != h.c.human {
		t.Errorf("side to move = %s, want %s", h.c.game.Side(), h.c.human)
	}
}

func TestPositionWithComputerToMove(t *testing.T) {
	h := newHarness(t)

	out := h.exec(t, "position ......../......../......../...b..../......../......../w......./........ black")
	if !strings.Contains(out, "bestmove ") {
		t.Errorf("computer did not move: %q", out)
	}
	if h.c.game.Side() != board.White {
		t.Errorf("side to move = %s, want white", h.c.game.Side())
	}
}
