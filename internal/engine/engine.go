package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/hailam/damaplay/internal/board"
)

// Info contains information about a completed search depth.
type Info struct {
	Depth   int
	Score   int
	Nodes   uint64
	Elapsed time.Duration
	Move    board.Move
}

// Result is the outcome of one Search call.
type Result struct {
	Move    board.Move
	Score   int           // score of Move at Depth, from the mover's side
	Depth   int           // last fully completed depth; 0 if none
	Nodes   uint64        // nodes visited, including any aborted depth
	Elapsed time.Duration // wall-clock time spent
	Random  bool          // Move was a deliberate random pick
}

// Limits specifies the strength and budget of a search.
type Limits struct {
	Weights      Weights
	StartDepth   int           // first iterative-deepening depth (0 = 1)
	MaxDepth     int           // last iterative-deepening depth
	RandomChance float64       // probability of playing a random legal move
	MoveTime     time.Duration // wall-clock budget (0 = no limit)
	Nodes        uint64        // node budget (0 = no limit)
}

// Level represents the AI difficulty level.
type Level int

const (
	Easy   Level = iota // tactically blind, blunders often
	Medium              // shallow, rare blunders
	Hard                // deep, never random
	Hint                // strongest setting, used for player hints
)

// Levels lists every level in order of strength.
var Levels = []Level{Easy, Medium, Hard, Hint}

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Hint:
		return "hint"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel parses a level name as returned by Level.String.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return Easy, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// DefaultLimits maps each level to its search limits.
var DefaultLimits = map[Level]Limits{
	Easy:   {Weights: EasyWeights, StartDepth: 1, MaxDepth: 2, RandomChance: 0.55, MoveTime: 250 * time.Millisecond, Nodes: 3000},
	Medium: {Weights: MediumWeights, StartDepth: 1, MaxDepth: 4, RandomChance: 0.02, MoveTime: 450 * time.Millisecond, Nodes: 8000},
	Hard:   {Weights: HardWeights, StartDepth: 2, MaxDepth: 7, MoveTime: 650 * time.Millisecond, Nodes: 16000},
	Hint:   {Weights: HardWeights, StartDepth: 2, MaxDepth: 9, MoveTime: 900 * time.Millisecond, Nodes: 24000},
}

// FallbackLimits is used for levels missing from the engine's table.
var FallbackLimits = Limits{Weights: DefaultWeights, StartDepth: 1, MaxDepth: 4, MoveTime: 600 * time.Millisecond, Nodes: 15000}

// Engine is the dama AI engine. Searches on one Engine are serialised;
// separate engines share nothing.
type Engine struct {
	mu         sync.Mutex
	rng        *rand.Rand
	limits     map[Level]Limits
	ttCapacity int
	log        logr.Logger

	// Callbacks
	OnInfo func(Info)
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for blunders.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLimits overrides the limits used for level.
func WithLimits(l Level, lim Limits) Option {
	return func(e *Engine) { e.limits[l] = lim }
}

// WithLogger sets the logger; V(1) reports each completed depth.
func WithLogger(log logr.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithTTCapacity sets the transposition table capacity in entries.
func WithTTCapacity(n int) Option {
	return func(e *Engine) { e.ttCapacity = n }
}

// NewEngine creates a new engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		limits:     make(map[Level]Limits, len(DefaultLimits)),
		ttCapacity: DefaultTTCapacity,
		log:        logr.Discard(),
	}
	for l, lim := range DefaultLimits {
		e.limits[l] = lim
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Limits returns the limits the engine uses for level, or FallbackLimits
// for an unknown level.
func (e *Engine) Limits(l Level) Limits {
	e.mu.Lock()
	defer e.mu.Unlock()
	if lim, ok := e.limits[l]; ok {
		return lim
	}
	return FallbackLimits
}

// BestMove picks a move for side at the given level. ok is false when side
// has no legal move.
func (e *Engine) BestMove(b board.Board, side board.Side, mustCaptureFrom board.Square, v board.Variant, level Level) (board.Move, bool) {
	res, ok := e.Search(b, side, mustCaptureFrom, v, e.Limits(level))
	return res.Move, ok
}

// Search runs the root driver with explicit limits. ok is false when side
// has no legal move.
func (e *Engine) Search(b board.Board, side board.Side, mustCaptureFrom board.Square, v board.Variant, limits Limits) (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	moves := board.GenerateMoves(b, side, mustCaptureFrom, v)
	switch len(moves) {
	case 0:
		return Result{}, false
	case 1:
		return Result{Move: moves[0]}, true
	}

	// Random blunders for easier levels
	if limits.RandomChance > 0 && e.rng.Float64() < limits.RandomChance {
		m := moves[e.rng.Intn(len(moves))]
		e.log.V(1).Info("random move", "move", m.String(), "chance", limits.RandomChance)
		return Result{Move: m, Random: true}, true
	}

	budget := NewBudget(limits.Nodes, limits.MoveTime)
	s := newSearch(v, limits.Weights, budget, e.ttCapacity)

	sortCapturesFirst(moves)
	result := Result{Move: moves[0]}

	startDepth := max(limits.StartDepth, 1)

	// Iterative deepening
	for depth := startDepth; depth <= limits.MaxDepth; depth++ {
		move, score, ok := s.searchRoot(b, moves, side, depth)
		if !ok {
			e.log.V(1).Info("search aborted", "depth", depth, "nodes", budget.Nodes(), "elapsed", budget.Elapsed())
			break
		}

		result.Move = move
		result.Score = score
		result.Depth = depth
		promoteMove(moves, move)

		info := Info{
			Depth:   depth,
			Score:   score,
			Nodes:   budget.Nodes(),
			Elapsed: budget.Elapsed(),
			Move:    move,
		}
		e.log.V(1).Info("depth complete", "depth", depth, "score", score, "nodes", info.Nodes,
			"move", move.String(), "ttHitRate", s.tt.HitRate(), "evalHitRate", s.evals.HitRate())
		if e.OnInfo != nil {
			e.OnInfo(info)
		}
	}

	result.Nodes = budget.Nodes()
	result.Elapsed = budget.Elapsed()
	return result, true
}

// sortCapturesFirst moves captures ahead of quiet moves, otherwise keeping
// generation order.
func sortCapturesFirst(moves []board.Move) {
	scores := make([]int, len(moves))
	for i, m := range moves {
		if m.Capture {
			scores[i] = 1
		}
	}
	SortMoves(moves, scores)
}

// promoteMove moves m to the front of moves, shifting the moves before it.
func promoteMove(moves []board.Move, m board.Move) {
	for i, x := range moves {
		if x == m {
			copy(moves[1:i+1], moves[:i])
			moves[0] = m
			return
		}
	}
}
