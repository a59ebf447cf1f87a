package simulator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/statistics"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	s := New(Config{Rounds: 10})
	assert.Equal(t, StrategyBasic, s.config.Strategy)
	assert.Equal(t, 100, s.config.Wager)
	assert.Equal(t, 6, s.config.Decks)
	assert.GreaterOrEqual(t, s.config.Workers, 1)
	assert.LessOrEqual(t, s.config.Workers, 8)
	require.NotNil(t, s.config.Logger)
}

func TestSimulatorRunStandStrategy(t *testing.T) {
	t.Parallel()

	s := New(Config{
		Rounds:   50,
		Strategy: StrategyStand,
		Wager:    10,
		Decks:    1,
		Seed:     42,
		Workers:  4,
	})
	stats, err := s.Run()
	require.NoError(t, err)

	// Standing never splits, so every round settles exactly one hand.
	assert.Equal(t, 50, stats.Rounds)
	assert.Equal(t, 50, stats.HandsSettled)
	assert.Equal(t, 500, stats.TotalWagered)
	assert.Equal(t, 50, stats.Wins+stats.Losses+stats.Pushes)
	assert.True(t, stats.IsLedgerBalanced())
	assert.NoError(t, stats.Validate())
	assert.Len(t, stats.Values, 50)
}

func TestSimulatorRunDeterministicAcrossWorkers(t *testing.T) {
	t.Parallel()

	run := func(workers int) *statistics.Statistics {
		s := New(Config{
			Rounds:   30,
			Strategy: StrategyBasic,
			Wager:    100,
			Seed:     7,
			Workers:  workers,
		})
		stats, err := s.Run()
		require.NoError(t, err)
		return stats
	}

	serial := run(1)
	parallel := run(4)

	assert.Equal(t, serial.Values, parallel.Values)
	assert.Equal(t, serial.Sum, parallel.Sum)
	assert.Equal(t, serial.Wins, parallel.Wins)
	assert.Equal(t, serial.Losses, parallel.Losses)
	assert.Equal(t, serial.Pushes, parallel.Pushes)
	assert.Equal(t, serial.BestStreak, parallel.BestStreak)
	assert.Equal(t, serial.WorstStreak, parallel.WorstStreak)
	assert.Equal(t, serial.SplitRounds, parallel.SplitRounds)
	assert.Equal(t, serial.DoubledRounds, parallel.DoubledRounds)
}

func TestSimulatorRunRejectsZeroRounds(t *testing.T) {
	t.Parallel()

	_, err := New(Config{}).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one round")
}

func TestSimulatorRunUnknownStrategy(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Rounds: 1, Strategy: "yolo"}).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown strategy "yolo"`)
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	stats := &statistics.Statistics{}
	stats.Add(statistics.RoundRecord{Net: 50, Wagered: 100, Hands: 1, Wins: 1})
	stats.Add(statistics.RoundRecord{Net: -100, Wagered: 100, Hands: 1, Losses: 1})
	stats.Add(statistics.RoundRecord{Net: 0, Wagered: 100, Hands: 1, Pushes: 1})

	var buf bytes.Buffer
	PrintSummary(&buf, stats, "basic")

	output := buf.String()
	assert.Contains(t, output, "=== RESULTS: basic strategy ===")
	assert.Contains(t, output, "Rounds played: 3 (3 hands settled)")
	assert.Contains(t, output, "Total wagered: 300")
	assert.Contains(t, output, "house edge 16.667%")
	assert.Contains(t, output, "Wins: 1 (33.3%)")
	assert.Contains(t, output, "Median: 0.0000")
	assert.Contains(t, output, "Biggest round: +50.00 / -100.00")
	assert.Contains(t, output, "Streaks: best +1, worst -1")
}
