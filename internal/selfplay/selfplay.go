// Package selfplay runs engine-versus-engine matches.
package selfplay

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/damaplay/internal/board"
	"github.com/hailam/damaplay/internal/engine"
	"github.com/hailam/damaplay/internal/game"
)

// Player is one side of a match.
type Player struct {
	Name   string
	Limits engine.Limits
}

// Config describes a match between players A and B. A plays white in even
// numbered games and black in odd ones.
type Config struct {
	Variant board.Variant
	Setup   board.Setup
	A, B    Player
	Games   int
	Workers int   // concurrent games (0 = GOMAXPROCS)
	Seed    int64 // random source for blunders; game i uses Seed+i
	Log     logr.Logger
}

// GameRecord is the result of one game.
type GameRecord struct {
	Index   int
	White   string
	Black   string
	Outcome board.Outcome
	Plies   int
	Nodes   uint64
	Elapsed time.Duration
	Moves   []string
}

// Winner returns the name of the winning player, or "" for a draw.
func (r GameRecord) Winner() string {
	switch r.Outcome {
	case board.WhiteWins:
		return r.White
	case board.BlackWins:
		return r.Black
	}
	return ""
}

// Summary aggregates a finished match.
type Summary struct {
	Games        []GameRecord // ordered by Index
	AWins, BWins int
	Draws        int
	Nodes        uint64
	Elapsed      time.Duration
}

// Score returns A's score with a win as 1 and a draw as 1/2.
func (s Summary) Score() float64 {
	if len(s.Games) == 0 {
		return 0
	}
	return (float64(s.AWins) + float64(s.Draws)/2) / float64(len(s.Games))
}

// Run plays the match. Games run concurrently, each with its own engines.
// The first error, including cancellation of ctx, stops the match.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	if cfg.Games <= 0 {
		return Summary{}, fmt.Errorf("selfplay: games must be positive, got %d", cfg.Games)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := cfg.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	start := time.Now()
	records := make([]GameRecord, cfg.Games)
	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			rec, err := playGame(ctx, cfg, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			records[i] = rec

			mu.Lock()
			done++
			log.V(1).Info("game finished", "game", i, "white", rec.White, "black", rec.Black,
				"result", rec.Outcome.String(), "plies", rec.Plies, "done", done, "of", cfg.Games)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{Games: records, Elapsed: time.Since(start)}
	for _, rec := range records {
		sum.Nodes += rec.Nodes
		winner, ok := rec.Outcome.Winner()
		switch {
		case !ok:
			sum.Draws++
		case (winner == board.White) == (rec.Index%2 == 0):
			sum.AWins++
		default:
			sum.BWins++
		}
	}
	return sum, nil
}

// playGame plays game i to completion.
func playGame(ctx context.Context, cfg Config, i int) (GameRecord, error) {
	white, black := cfg.A, cfg.B
	if i%2 == 1 {
		white, black = black, white
	}

	rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))
	players := map[board.Side]Player{board.White: white, board.Black: black}
	engines := map[board.Side]*engine.Engine{
		board.White: engine.NewEngine(engine.WithRand(rng)),
		board.Black: engine.NewEngine(engine.WithRand(rng)),
	}

	rec := GameRecord{Index: i, White: white.Name, Black: black.Name}
	start := time.Now()
	gm := game.New(cfg.Variant, cfg.Setup)
	for !gm.Over() {
		if err := ctx.Err(); err != nil {
			return rec, err
		}
		side := gm.Side()
		res, ok := engines[side].Search(gm.Board(), side, gm.MustCaptureFrom(), gm.Variant(), players[side].Limits)
		if !ok {
			return rec, fmt.Errorf("no move for %s in an ongoing game", side)
		}
		if _, err := gm.Play(res.Move); err != nil {
			return rec, err
		}
		rec.Nodes += res.Nodes
	}

	rec.Outcome = gm.Outcome()
	rec.Plies = gm.Plies()
	rec.Moves = gm.History()
	rec.Elapsed = time.Since(start)
	return rec, nil
}
