// DamaPlay - Turkish, Spanish and Moroccan draughts in the terminal
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/hailam/damaplay/internal/console"
	"github.com/hailam/damaplay/internal/engine"
	"github.com/hailam/damaplay/internal/storage"
)

var (
	variant   = flag.String("variant", "", "start a game of turkish, spanish or moroccan")
	setup     = flag.String("setup", "", "initial setup: standard or diagonal")
	level     = flag.String("level", "", "computer strength: easy, medium or hard")
	human     = flag.String("human", "", "side played by the human: white or black")
	dbDir     = flag.String("db", "", "database directory (default: platform data dir)")
	noStore   = flag.Bool("nostore", false, "do not read or write preferences and statistics")
	verbosity = flag.Int("v", 0, "log verbosity")
)

func main() {
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	store, err := openStorage(logger)
	if err != nil {
		log.Printf("Warning: storage unavailable: %v (statistics will not be saved)", err)
	}
	if store != nil {
		defer store.Close()
		if first, _ := store.IsFirstLaunch(); first {
			fmt.Println("Welcome to DamaPlay. Type 'new' to start, 'moves' to list moves, 'quit' to leave.")
			if err := store.MarkFirstLaunchComplete(); err != nil {
				logger.Error(err, "marking first launch")
			}
		}
	}

	eng := engine.NewEngine(engine.WithLogger(logger.WithName("engine")))
	opts := []console.Option{console.WithLogger(logger.WithName("console"))}
	if store != nil {
		opts = append(opts, console.WithStorage(store))
	}
	c := console.New(eng, os.Stdout, opts...)

	// Flags are applied as commands so they are validated and persisted
	// like interactive input.
	for _, cmd := range startupCommands() {
		c.Execute(cmd)
	}

	if err := c.Run(os.Stdin); err != nil {
		log.Fatal(err)
	}
}

func openStorage(logger logr.Logger) (*storage.Storage, error) {
	if *noStore {
		return nil, nil
	}
	if *dbDir != "" {
		return storage.Open(*dbDir, logger.WithName("storage"))
	}
	return storage.NewStorage(logger.WithName("storage"))
}

func startupCommands() []string {
	var cmds []string
	if *level != "" {
		cmds = append(cmds, "level "+*level)
	}
	if *human != "" {
		cmds = append(cmds, "side "+*human)
	}
	if *variant != "" {
		cmds = append(cmds, "new "+*variant+" "+*setup)
	}
	return cmds
}
