package simulator

import (
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/session"
	"github.com/lox/blackjack/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	Strategy string
	Wager    int
	Decks    int
	Seed     int64
	Workers  int
	Logger   *log.Logger
}

// Simulator auto-plays blackjack rounds with a strategy agent
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Strategy == "" {
		config.Strategy = StrategyBasic
	}
	if config.Wager < 1 {
		config.Wager = 100
	}
	if config.Decks < 1 {
		config.Decks = session.DefaultDecks
	}
	if config.Workers < 1 {
		config.Workers = runtime.NumCPU()
		if config.Workers > 8 {
			config.Workers = 8
		}
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run executes the simulation and returns aggregated statistics. Round i
// plays from a fresh shoe seeded seed+i and records are folded in round
// order, so a given seed produces identical results at any worker count.
func (s *Simulator) Run() (*statistics.Statistics, error) {
	if s.config.Rounds < 1 {
		return nil, fmt.Errorf("simulation needs at least one round, got %d", s.config.Rounds)
	}
	agent, err := NewStrategy(s.config.Strategy, s.config.Wager)
	if err != nil {
		return nil, err
	}

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("simulation starting",
		"rounds", s.config.Rounds,
		"strategy", s.config.Strategy,
		"wager", s.config.Wager,
		"workers", s.config.Workers,
		"seed", s.config.Seed)

	records := make([]statistics.RoundRecord, s.config.Rounds)
	chunk := (s.config.Rounds + s.config.Workers - 1) / s.config.Workers

	var g errgroup.Group
	for start := 0; start < s.config.Rounds; start += chunk {
		start, end := start, min(start+chunk, s.config.Rounds)
		g.Go(func() error {
			for i := start; i < end; i++ {
				record, err := s.playRound(agent, randutil.RoundSeed(s.config.Seed, i))
				if err != nil {
					return fmt.Errorf("round %d failed: %w", i+1, err)
				}
				records[i] = record
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, record := range records {
		stats.Add(record)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("simulation complete",
		"rounds", stats.Rounds,
		"hands", stats.HandsSettled,
		"mean", stats.Mean(),
		"house_edge", stats.HouseEdge())
	return stats, nil
}

// playRound plays one strategy round against a fresh shoe. Each round is
// fully single threaded; parallelism only exists across rounds.
func (s *Simulator) playRound(agent game.Agent, roundSeed int64) (statistics.RoundRecord, error) {
	shoe, err := deck.NewShoe(randutil.New(roundSeed), s.config.Decks)
	if err != nil {
		return statistics.RoundRecord{}, fmt.Errorf("building shoe: %w", err)
	}
	player := game.NewPlayer("sim")
	result, err := game.NewRound(player, shoe, agent, nil, s.config.Logger).Play()
	if err != nil {
		return statistics.RoundRecord{}, fmt.Errorf("seed %d: %w", roundSeed, err)
	}
	return session.RecordFromResult(result, roundSeed), nil
}

// PrintSummary writes a results summary to w, colored when w is a terminal.
func PrintSummary(w io.Writer, stats *statistics.Statistics, strategy string) {
	out := termenv.NewOutput(w)
	title := func(text string) string {
		return out.String(text).Bold().String()
	}
	signed := func(v float64) string {
		text := fmt.Sprintf("%+.2f", v)
		switch {
		case v > 0:
			return out.String(text).Foreground(termenv.ANSIGreen).String()
		case v < 0:
			return out.String(text).Foreground(termenv.ANSIRed).String()
		}
		return text
	}

	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n%s\n", title(fmt.Sprintf("=== RESULTS: %s strategy ===", strategy)))
	fmt.Fprintf(w, "Rounds played: %d (%d hands settled)\n", stats.Rounds, stats.HandsSettled)
	fmt.Fprintf(w, "Total wagered: %d\n", stats.TotalWagered)
	fmt.Fprintf(w, "Net result: %s (house edge %.3f%%)\n", signed(stats.Sum), stats.HouseEdge()*100)

	fmt.Fprintf(w, "\n%s\n", title("=== PER-ROUND DISTRIBUTION ==="))
	fmt.Fprintf(w, "Mean: %.4f per round\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] per round\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.2f P25=%.2f P75=%.2f P95=%.2f\n",
		stats.Percentile(0.05), stats.Percentile(0.25),
		stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Biggest round: %s / %s\n", signed(stats.BiggestWin), signed(stats.BiggestLoss))

	fmt.Fprintf(w, "\n%s\n", title("=== HAND OUTCOMES ==="))
	fmt.Fprintf(w, "Wins: %d (%.1f%%), Losses: %d, Pushes: %d\n",
		stats.Wins, stats.WinRate()*100, stats.Losses, stats.Pushes)
	fmt.Fprintf(w, "Splits: %d rounds, Doubles: %d rounds, Dealer busts: %d (%.1f%%)\n",
		stats.SplitRounds, stats.DoubledRounds,
		stats.DealerBusts, float64(stats.DealerBusts)/float64(stats.Rounds)*100)
	fmt.Fprintf(w, "Streaks: best %+d, worst %+d\n", stats.BestStreak, stats.WorstStreak)
}
