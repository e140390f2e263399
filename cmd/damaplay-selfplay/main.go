package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/stdr"

	"github.com/hailam/damaplay/internal/board"
	"github.com/hailam/damaplay/internal/engine"
	"github.com/hailam/damaplay/internal/selfplay"
)

var (
	variantName = flag.String("variant", "turkish", "turkish, spanish or moroccan")
	setupName   = flag.String("setup", "", "standard or diagonal (default: the variant's usual setup)")
	levelA      = flag.String("a", "hard", "level of player A")
	levelB      = flag.String("b", "medium", "level of player B")
	games       = flag.Int("games", 10, "number of games")
	workers     = flag.Int("workers", 0, "concurrent games (default GOMAXPROCS)")
	seed        = flag.Int64("seed", time.Now().UnixNano(), "random seed")
	verbose     = flag.Bool("moves", false, "print the moves of every game")
	verbosity   = flag.Int("v", 1, "log verbosity")
	cpuprofile  = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	v, err := board.ParseVariant(*variantName)
	if err != nil {
		log.Fatal(err)
	}
	s := board.DiagonalSetup
	if v == board.Turkish {
		s = board.Standard
	}
	if *setupName != "" {
		if s, err = board.ParseSetup(*setupName); err != nil {
			log.Fatal(err)
		}
	}

	a, err := player(*levelA, "A")
	if err != nil {
		log.Fatal(err)
	}
	b, err := player(*levelB, "B")
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := selfplay.Run(ctx, selfplay.Config{
		Variant: v,
		Setup:   s,
		A:       a,
		B:       b,
		Games:   *games,
		Workers: *workers,
		Seed:    *seed,
		Log:     logger.WithName("selfplay"),
	})
	if err != nil {
		log.Fatal(err)
	}

	report(sum, a, b)
}

func player(levelName, tag string) (selfplay.Player, error) {
	l, err := engine.ParseLevel(levelName)
	if err != nil {
		return selfplay.Player{}, err
	}
	return selfplay.Player{Name: tag + ":" + l.String(), Limits: engine.DefaultLimits[l]}, nil
}

func report(sum selfplay.Summary, a, b selfplay.Player) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "game\twhite\tblack\tresult\tplies\tnodes\ttime")
	for _, g := range sum.Games {
		result := g.Winner()
		if result == "" {
			result = "draw"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n", g.Index+1, g.White, g.Black, result,
			g.Plies, humanize.Comma(int64(g.Nodes)), g.Elapsed.Round(time.Millisecond))
	}
	w.Flush()

	if *verbose {
		for _, g := range sum.Games {
			fmt.Printf("\ngame %d:", g.Index+1)
			for i, m := range g.Moves {
				if i%10 == 0 {
					fmt.Println()
				}
				fmt.Printf(" %s", m)
			}
			fmt.Println()
		}
	}

	fmt.Printf("\n%s %d  %s %d  draws %d  score %.1f%%\n",
		a.Name, sum.AWins, b.Name, sum.BWins, sum.Draws, 100*sum.Score())
	fmt.Printf("%s nodes in %s (%s nodes/s)\n",
		humanize.Comma(int64(sum.Nodes)), sum.Elapsed.Round(time.Millisecond),
		humanize.Comma(int64(float64(sum.Nodes)/max(sum.Elapsed.Seconds(), 0.001))))
}
