package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd auto-plays rounds with a strategy agent and prints statistics
type SimulateCmd struct {
	Rounds   int    `kong:"default='10000',help='Number of rounds to simulate'"`
	Strategy string `kong:"default='basic',help='Strategy: basic, dealer, stand'"`
	Wager    int    `kong:"default='100',help='Wager per round'"`
	Decks    int    `kong:"default='6',help='Decks in the shoe'"`
	Seed     int64  `kong:"default='0',help='RNG seed (0 for random)'"`
	Workers  int    `kong:"default='0',help='Worker goroutines (0 for one per CPU)'"`
	Verbose  bool   `kong:"help='Verbose logging'"`
}

func (c *SimulateCmd) Run() error {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := shared.SetupLogger(c.Verbose)

	fmt.Printf("Simulating %d rounds of %s strategy (seed: %d)\n", c.Rounds, c.Strategy, seed)

	sim := simulator.New(simulator.Config{
		Rounds:   c.Rounds,
		Strategy: c.Strategy,
		Wager:    c.Wager,
		Decks:    c.Decks,
		Seed:     seed,
		Workers:  c.Workers,
		Logger:   logger,
	})

	start := time.Now()
	stats, err := sim.Run()
	if err != nil {
		return err
	}
	duration := time.Since(start)

	fmt.Printf("Completed in %s (%.0f rounds/sec)\n\n",
		duration.Round(time.Millisecond), float64(c.Rounds)/duration.Seconds())

	simulator.PrintSummary(os.Stdout, stats, c.Strategy)

	return nil
}
