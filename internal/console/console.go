// Package console implements a line-oriented text protocol for playing dama
// against the engine or another human.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"

	"github.com/hailam/damaplay/internal/board"
	"github.com/hailam/damaplay/internal/engine"
	"github.com/hailam/damaplay/internal/game"
	"github.com/hailam/damaplay/internal/storage"
)

// Console reads commands and writes responses, one per line.
type Console struct {
	engine *engine.Engine
	store  *storage.Storage // optional
	log    logr.Logger
	out    io.Writer

	prefs *storage.UserPreferences
	game  *game.Game
	level engine.Level
	mode  storage.GameMode
	human board.Side

	hintsLeft, undosLeft int
	hintsUsed, undosUsed int
	announced            bool // outcome of the current position printed
	recorded             bool // game stored; at most once per game
}

// Option configures a Console.
type Option func(*Console)

// WithStorage persists preferences and records finished games.
func WithStorage(s *storage.Storage) Option {
	return func(c *Console) { c.store = s }
}

// WithLogger sets the logger.
func WithLogger(log logr.Logger) Option {
	return func(c *Console) { c.log = log }
}

// WithPreferences overrides the starting preferences.
func WithPreferences(p *storage.UserPreferences) Option {
	return func(c *Console) { c.prefs = p }
}

// New creates a console writing to out. Preferences come from storage when
// available and otherwise from storage.DefaultPreferences.
func New(eng *engine.Engine, out io.Writer, opts ...Option) *Console {
	c := &Console{
		engine: eng,
		out:    out,
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.prefs == nil {
		c.prefs = storage.DefaultPreferences()
		if c.store != nil {
			prefs, err := c.store.LoadPreferences()
			if err != nil {
				c.log.Error(err, "loading preferences, using defaults")
			} else {
				c.prefs = prefs
			}
		}
	}
	c.applyPreferences()

	eng.OnInfo = c.sendInfo
	return c
}

// applyPreferences sets level, mode and side from c.prefs, ignoring
// unreadable values.
func (c *Console) applyPreferences() {
	c.level = engine.Medium
	if l, err := engine.ParseLevel(c.prefs.Level); err == nil && l != engine.Hint {
		c.level = l
	}
	c.mode = c.prefs.GameMode
	c.human = board.White
	if s, err := board.ParseSide(c.prefs.HumanSide); err == nil {
		c.human = s
	}
}

// Run processes commands from in until "quit" or end of input.
func (c *Console) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !c.Execute(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line. It returns false after "quit".
func (c *Console) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	var err error
	switch cmd {
	case "new":
		err = c.handleNew(args)
	case "level":
		err = c.handleLevel(args)
	case "mode":
		err = c.handleMode(args)
	case "side":
		err = c.handleSide(args)
	case "position":
		err = c.handlePosition(args)
	case "moves":
		err = c.handleMoves()
	case "move":
		err = c.handleMove(args)
	case "go":
		err = c.handleGo()
	case "hint":
		err = c.handleHint()
	case "undo":
		err = c.handleUndo()
	case "eval":
		err = c.handleEval()
	case "board", "d":
		err = c.handleBoard()
	case "history":
		err = c.handleHistory()
	case "stats":
		err = c.handleStats()
	case "quit":
		return false
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		c.printf("error: %v", err)
	}
	return true
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// handleNew starts a game: new [variant] [setup].
func (c *Console) handleNew(args []string) error {
	v, err := board.ParseVariant(c.prefs.Variant)
	if err != nil {
		v = board.Turkish
	}
	s, err := board.ParseSetup(c.prefs.Setup)
	if err != nil {
		s = board.Standard
	}

	if len(args) > 0 {
		if v, err = board.ParseVariant(args[0]); err != nil {
			return err
		}
		// Only Turkish has a distinct standard setup.
		s = board.Standard
		if v != board.Turkish {
			s = board.DiagonalSetup
		}
	}
	if len(args) > 1 {
		if s, err = board.ParseSetup(args[1]); err != nil {
			return err
		}
	}

	c.prefs.Variant, c.prefs.Setup = v.String(), s.String()
	c.savePreferences()

	c.startGame(game.New(v, s))
	c.printf("newgame %s %s", v, s)
	return c.playComputer()
}

func (c *Console) startGame(g *game.Game) {
	c.game = g
	c.announced, c.recorded = false, false
	c.hintsUsed, c.undosUsed = 0, 0
	c.hintsLeft, c.undosLeft = storage.InitialHints, storage.InitialUndos
}

// handleLevel sets the computer strength: level <easy|medium|hard>.
func (c *Console) handleLevel(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: level <easy|medium|hard>")
	}
	l, err := engine.ParseLevel(args[0])
	if err != nil {
		return err
	}
	if l == engine.Hint {
		return fmt.Errorf("%w: hint is reserved for hints", engine.ErrInvalidLevel)
	}
	c.level = l
	c.prefs.Level = l.String()
	c.savePreferences()
	c.printf("level %s", l)
	return nil
}

// handleMode switches between human and computer opponents: mode <hvh|hvc>.
func (c *Console) handleMode(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: mode <hvh|hvc>")
	}
	switch strings.ToLower(args[0]) {
	case "hvh":
		c.mode = storage.ModeHumanVsHuman
	case "hvc":
		c.mode = storage.ModeHumanVsComputer
	default:
		return fmt.Errorf("unknown mode %q", args[0])
	}
	c.prefs.GameMode = c.mode
	c.savePreferences()
	c.printf("mode %s", c.mode)
	return c.playComputer()
}

// handleSide chooses the human's side against the computer: side <white|black>.
func (c *Console) handleSide(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: side <white|black>")
	}
	s, err := board.ParseSide(args[0])
	if err != nil {
		return err
	}
	c.human = s
	c.prefs.HumanSide = s.String()
	c.savePreferences()
	c.printf("side %s", s)
	return c.playComputer()
}

// handlePosition loads a diagram: position <rows joined by '/'> <side>.
func (c *Console) handlePosition(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: position <diagram> <side>")
	}
	b, err := board.ParseDiagram(args[0])
	if err != nil {
		return err
	}
	side, err := board.ParseSide(args[1])
	if err != nil {
		return err
	}

	v, s := board.Turkish, board.Standard
	if c.game != nil {
		v, s = c.game.Variant(), c.game.Setup()
	}
	c.startGame(game.FromPosition(b, side, v, s))
	c.printf("position %s %s", b.Diagram(), side)
	return c.playComputer()
}

func (c *Console) requireGame() error {
	if c.game == nil {
		return errors.New("no game in progress, use new")
	}
	return nil
}

// handleMoves lists the legal moves for the side to move.
func (c *Console) handleMoves() error {
	if err := c.requireGame(); err != nil {
		return err
	}
	moves := c.game.LegalMoves()
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	c.printf("moves %s %s", c.game.Side(), strings.Join(names, " "))
	return nil
}

// handleMove plays a human move and lets the computer answer.
func (c *Console) handleMove(args []string) error {
	if err := c.requireGame(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: move <from-to>")
	}
	if c.computerToMove() {
		return fmt.Errorf("it is the computer's turn (%s)", c.game.Side())
	}

	if c.game.Over() {
		return game.ErrGameOver
	}
	m, err := board.ParseMoveText(args[0], c.game.LegalMoves())
	if err != nil {
		return err
	}

	c.game.Checkpoint()
	res, err := c.game.Play(m)
	if err != nil {
		return err
	}
	c.printf("played %s", res.Notation)
	if res.ChainContinues() {
		c.printf("continue %s", res.MustCaptureFrom)
	}

	if c.reportOutcome() {
		return nil
	}
	return c.playComputer()
}

// handleGo lets the engine play the whole turn of the side to move, then
// answers it if the computer owns the other side.
func (c *Console) handleGo() error {
	if err := c.requireGame(); err != nil {
		return err
	}
	if c.game.Over() {
		return game.ErrGameOver
	}
	side := c.game.Side()
	for !c.game.Over() && c.game.Side() == side {
		if err := c.engineMove(); err != nil {
			return err
		}
	}
	return c.playComputer()
}

// computerToMove reports whether the engine owns the side to move.
func (c *Console) computerToMove() bool {
	return c.game != nil && c.mode == storage.ModeHumanVsComputer &&
		!c.game.Over() && c.game.Side() != c.human
}

// playComputer plays engine moves, chain captures included, until the human
// is to move or the game ends.
func (c *Console) playComputer() error {
	played := false
	for c.computerToMove() {
		if err := c.engineMove(); err != nil {
			return err
		}
		played = true
	}
	if c.reportOutcome() {
		return nil
	}
	if played && c.prefs.ShowEval {
		return c.handleEval()
	}
	return nil
}

// engineMove plays one engine move for the side to move.
func (c *Console) engineMove() error {
	g := c.game
	m, ok := c.engine.BestMove(g.Board(), g.Side(), g.MustCaptureFrom(), g.Variant(), c.level)
	if !ok {
		return fmt.Errorf("no legal move for %s", g.Side())
	}
	res, err := g.Play(m)
	if err != nil {
		return err
	}
	c.printf("bestmove %s", res.Notation)
	return nil
}

// handleHint suggests a move for the side to move at hint strength.
// Against the computer only storage.InitialHints are available per game.
func (c *Console) handleHint() error {
	if err := c.requireGame(); err != nil {
		return err
	}
	if c.game.Over() {
		return game.ErrGameOver
	}
	limited := c.mode == storage.ModeHumanVsComputer
	if limited && c.hintsLeft <= 0 {
		return errors.New("no hints left")
	}

	g := c.game
	m, ok := c.engine.BestMove(g.Board(), g.Side(), g.MustCaptureFrom(), g.Variant(), engine.Hint)
	if !ok {
		return fmt.Errorf("no legal move for %s", g.Side())
	}
	c.hintsUsed++
	if limited {
		c.hintsLeft--
		c.printf("hint %s (%d left)", m, c.hintsLeft)
		return nil
	}
	c.printf("hint %s", m)
	return nil
}

// handleUndo takes back the last human move and any computer reply.
// Against the computer only storage.InitialUndos are available per game.
func (c *Console) handleUndo() error {
	if err := c.requireGame(); err != nil {
		return err
	}
	limited := c.mode == storage.ModeHumanVsComputer
	if limited && c.undosLeft <= 0 {
		return errors.New("no undos left")
	}
	if err := c.game.Undo(); err != nil {
		return err
	}

	c.announced = false
	c.undosUsed++
	if limited {
		c.undosLeft--
		c.printf("undone, %s to move (%d left)", c.game.Side(), c.undosLeft)
		return nil
	}
	c.printf("undone, %s to move", c.game.Side())
	return nil
}

// handleEval reports the win probability for the human against the
// computer, otherwise for the side to move.
func (c *Console) handleEval() error {
	if err := c.requireGame(); err != nil {
		return err
	}
	side := c.game.Side()
	if c.mode == storage.ModeHumanVsComputer {
		side = c.human
	}
	p := engine.WinProbability(c.game.Board(), side, c.game.Variant())
	c.printf("winchance %s %d%%", side, p)
	return nil
}

func (c *Console) handleBoard() error {
	if err := c.requireGame(); err != nil {
		return err
	}
	fmt.Fprint(c.out, c.game.Board().String())
	must := ""
	if sq := c.game.MustCaptureFrom(); sq.IsValid() {
		must = " must capture from " + sq.String()
	}
	c.printf("%s %s to move%s, ply %d", c.game.Variant(), c.game.Side(), must, c.game.Plies())
	return nil
}

func (c *Console) handleHistory() error {
	if err := c.requireGame(); err != nil {
		return err
	}
	for i, n := range c.game.History() {
		c.printf("%d. %s", i+1, n)
	}
	return nil
}

// handleStats prints stored statistics.
func (c *Console) handleStats() error {
	if c.store == nil {
		return errors.New("no storage configured")
	}
	stats, err := c.store.LoadStats()
	if err != nil {
		return err
	}
	c.printf("games %s wins %s losses %s draws %s winrate %.1f%%",
		humanize.Comma(int64(stats.GamesPlayed)), humanize.Comma(int64(stats.Wins)),
		humanize.Comma(int64(stats.Losses)), humanize.Comma(int64(stats.Draws)), stats.GetWinRate())
	c.printf("streak %d best %d hints %d undos %d playtime %s",
		stats.CurrentStreak, stats.LongestWinStrk, stats.HintsUsed, stats.UndosUsed,
		stats.TotalPlayTime.Round(time.Second))
	return nil
}

// reportOutcome prints the result once the game has ended and records it.
// A game finished again after an undo is announced but not stored twice.
// It returns true if the game is over.
func (c *Console) reportOutcome() bool {
	if c.game == nil || !c.game.Over() {
		return false
	}
	if c.announced {
		return true
	}
	c.announced = true

	outcome := c.game.Outcome()
	if outcome == board.Draw {
		c.printf("draw after %d plies", c.game.Plies())
	} else {
		c.printf("winner %s", outcome)
	}
	if !c.recorded {
		c.recorded = true
		c.recordGame(outcome)
	}
	return true
}

func (c *Console) recordGame(outcome board.Outcome) {
	if c.store == nil {
		return
	}
	winner, won := outcome.Winner()
	result := storage.GameResult{
		Won:      won && winner == c.human,
		Draw:     outcome == board.Draw,
		Mode:     c.mode,
		Variant:  c.game.Variant().String(),
		Moves:    c.game.Plies(),
		Hints:    c.hintsUsed,
		Undos:    c.undosUsed,
		Duration: time.Since(c.game.Started()),
	}
	if c.mode == storage.ModeHumanVsComputer {
		result.Level = c.level.String()
	}
	if _, err := c.store.RecordGame(result); err != nil {
		c.log.Error(err, "recording game")
	}
}

func (c *Console) savePreferences() {
	if c.store == nil {
		return
	}
	if err := c.store.SavePreferences(c.prefs); err != nil {
		c.log.Error(err, "saving preferences")
	}
}

// sendInfo outputs per-depth search info.
func (c *Console) sendInfo(info engine.Info) {
	score := fmt.Sprintf("score %d", info.Score)
	switch {
	case info.Score >= engine.Infinity:
		score = "score win"
	case info.Score <= -engine.Infinity:
		score = "score loss"
	}
	c.printf("info depth %d %s nodes %s time %s pv %s",
		info.Depth, score, humanize.Comma(int64(info.Nodes)),
		info.Elapsed.Round(time.Millisecond), info.Move)
}
