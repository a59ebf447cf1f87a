package statistics

import (
	"math"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdDev() != 0 {
		t.Errorf("Expected stddev of 0 for empty stats, got %f", stats.StdDev())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.Percentile(0.5) != 0 {
		t.Errorf("Expected percentile of 0 for empty stats, got %f", stats.Percentile(0.5))
	}
	if stats.WinRate() != 0 {
		t.Errorf("Expected win rate of 0 for empty stats, got %f", stats.WinRate())
	}
	if stats.HouseEdge() != 0 {
		t.Errorf("Expected house edge of 0 for empty stats, got %f", stats.HouseEdge())
	}
}

func TestStatistics_SingleRound(t *testing.T) {
	stats := &Statistics{}
	record := RoundRecord{
		Net:     0.5,
		Wagered: 100,
		Hands:   1,
		Wins:    1,
		Seed:    12345,
	}

	stats.Add(record)

	if stats.Rounds != 1 {
		t.Errorf("Expected 1 round, got %d", stats.Rounds)
	}
	if stats.Mean() != 0.5 {
		t.Errorf("Expected mean of 0.5, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.Median() != 0.5 {
		t.Errorf("Expected median of 0.5, got %f", stats.Median())
	}
	if stats.Wins != 1 {
		t.Errorf("Expected 1 win, got %d", stats.Wins)
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("Expected streak of 1, got %d", stats.CurrentStreak)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_MultipleRounds(t *testing.T) {
	stats := &Statistics{}
	nets := []float64{1.5, -1, 0, 2, -1}
	for _, net := range nets {
		record := RoundRecord{Net: net, Wagered: 100, Hands: 1}
		switch {
		case net > 0:
			record.Wins = 1
		case net < 0:
			record.Losses = 1
		default:
			record.Pushes = 1
		}
		stats.Add(record)
	}

	if stats.Rounds != 5 {
		t.Errorf("Expected 5 rounds, got %d", stats.Rounds)
	}
	if math.Abs(stats.Mean()-0.3) > 1e-9 {
		t.Errorf("Expected mean of 0.3, got %f", stats.Mean())
	}
	if math.Abs(stats.Variance()-1.95) > 1e-9 {
		t.Errorf("Expected variance of 1.95, got %f", stats.Variance())
	}
	if math.Abs(stats.Median()-0) > 1e-9 {
		t.Errorf("Expected median of 0, got %f", stats.Median())
	}
	if stats.Wins != 2 || stats.Losses != 2 || stats.Pushes != 1 {
		t.Errorf("Expected 2/2/1 wins/losses/pushes, got %d/%d/%d",
			stats.Wins, stats.Losses, stats.Pushes)
	}
	if math.Abs(stats.WinRate()-0.4) > 1e-9 {
		t.Errorf("Expected win rate of 0.4, got %f", stats.WinRate())
	}
	if stats.TotalWagered != 500 {
		t.Errorf("Expected 500 wagered, got %d", stats.TotalWagered)
	}
	if stats.BiggestWin != 2 {
		t.Errorf("Expected biggest win of 2, got %f", stats.BiggestWin)
	}
	if stats.BiggestLoss != -1 {
		t.Errorf("Expected biggest loss of -1, got %f", stats.BiggestLoss)
	}
	// Net +1.5 over 500 wagered favors the player.
	if math.Abs(stats.HouseEdge()-(-0.003)) > 1e-9 {
		t.Errorf("Expected house edge of -0.003, got %f", stats.HouseEdge())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_MedianEvenCount(t *testing.T) {
	stats := &Statistics{}
	for _, net := range []float64{-2, -1, 1, 4} {
		record := RoundRecord{Net: net, Hands: 1}
		if net > 0 {
			record.Wins = 1
		} else {
			record.Losses = 1
		}
		stats.Add(record)
	}

	if math.Abs(stats.Median()-0) > 1e-9 {
		t.Errorf("Expected median of 0, got %f", stats.Median())
	}
}

func TestStatistics_Percentile(t *testing.T) {
	stats := &Statistics{}
	for _, net := range []float64{1, 2, 3, 4, 5} {
		stats.Add(RoundRecord{Net: net, Hands: 1, Wins: 1})
	}

	if got := stats.Percentile(0); got != 1 {
		t.Errorf("Expected 0th percentile of 1, got %f", got)
	}
	if got := stats.Percentile(0.5); got != 3 {
		t.Errorf("Expected 50th percentile of 3, got %f", got)
	}
	if got := stats.Percentile(1); got != 5 {
		t.Errorf("Expected 100th percentile of 5, got %f", got)
	}
	if got := stats.Percentile(0.25); got != 2 {
		t.Errorf("Expected 25th percentile of 2, got %f", got)
	}
}

func TestStatistics_Streaks(t *testing.T) {
	stats := &Statistics{}
	nets := []float64{1, 1, -1, -1, -1, 0, 2}
	for _, net := range nets {
		record := RoundRecord{Net: net, Hands: 1}
		switch {
		case net > 0:
			record.Wins = 1
		case net < 0:
			record.Losses = 1
		default:
			record.Pushes = 1
		}
		stats.Add(record)
	}

	if stats.CurrentStreak != 1 {
		t.Errorf("Expected current streak of 1, got %d", stats.CurrentStreak)
	}
	if stats.BestStreak != 2 {
		t.Errorf("Expected best streak of 2, got %d", stats.BestStreak)
	}
	if stats.WorstStreak != -3 {
		t.Errorf("Expected worst streak of -3, got %d", stats.WorstStreak)
	}
}

func TestStatistics_RoundShapeCounters(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundRecord{Net: -1, Hands: 2, Wins: 1, Losses: 1, Split: true})
	stats.Add(RoundRecord{Net: 3, Hands: 1, Wins: 1, Doubled: true, DealerBust: true})

	if stats.SplitRounds != 1 {
		t.Errorf("Expected 1 split round, got %d", stats.SplitRounds)
	}
	if stats.DoubledRounds != 1 {
		t.Errorf("Expected 1 doubled round, got %d", stats.DoubledRounds)
	}
	if stats.DealerBusts != 1 {
		t.Errorf("Expected 1 dealer bust, got %d", stats.DealerBusts)
	}
	if stats.HandsSettled != 3 {
		t.Errorf("Expected 3 settled hands, got %d", stats.HandsSettled)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_ValidateFailures(t *testing.T) {
	tests := []struct {
		name  string
		stats *Statistics
	}{
		{
			name:  "no rounds",
			stats: &Statistics{},
		},
		{
			name: "ledger mismatch",
			stats: &Statistics{
				Rounds: 1, Values: []float64{1}, HandsSettled: 1, Wins: 1,
				AllUnits: 5, WinUnits: 1,
			},
		},
		{
			name: "values out of sync",
			stats: &Statistics{
				Rounds: 2, Values: []float64{1}, HandsSettled: 2, Wins: 2,
			},
		},
		{
			name: "outcome counts do not add up",
			stats: &Statistics{
				Rounds: 1, Values: []float64{1}, HandsSettled: 1, Wins: 2,
			},
		},
		{
			name: "fewer hands than rounds",
			stats: &Statistics{
				Rounds: 2, Values: []float64{1, 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.stats.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for i := 0; i < 100; i++ {
		net := float64(i%2)*2 - 1 // alternating -1, +1
		record := RoundRecord{Net: net, Hands: 1}
		if net > 0 {
			record.Wins = 1
		} else {
			record.Losses = 1
		}
		stats.Add(record)
	}

	low, high := stats.ConfidenceInterval95()
	if low >= high {
		t.Errorf("Expected low < high, got [%f, %f]", low, high)
	}
	if mean := stats.Mean(); mean < low || mean > high {
		t.Errorf("Mean %f outside interval [%f, %f]", mean, low, high)
	}
}
