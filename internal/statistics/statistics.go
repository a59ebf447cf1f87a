package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundRecord represents the outcome of a single settled blackjack round.
// Net is measured in currency units: a 3:2 win on a 100 wager records +50, a
// push records 0, a lost double-down on 100 records -200.
type RoundRecord struct {
	Net        float64 // Net units won/lost across all of the round's hands
	Wagered    int     // Total staked this round including doubles and split halves
	Hands      int     // Settled hands this round (2+ after splits)
	Wins       int     // Hands won
	Losses     int     // Hands lost
	Pushes     int     // Hands pushed
	Split      bool    // Round featured a split
	Doubled    bool    // Round featured a double down
	DealerBust bool    // Dealer busted
	Seed       int64   // RNG seed for this round (for replay)
}

// Statistics tracks comprehensive blackjack session statistics
type Statistics struct {
	Rounds int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	// Detailed analytics - track ALL settled hands, not just rounds
	HandsSettled int
	Wins         int
	Losses       int
	Pushes       int
	WinUnits     float64 // Net units from winning rounds
	LossUnits    float64 // Net units from losing rounds
	AllUnits     float64 // Total units for sanity check

	// Round shape analytics
	SplitRounds   int
	DoubledRounds int
	DealerBusts   int
	TotalWagered  int
	BiggestWin    float64 // Largest single-round net win
	BiggestLoss   float64 // Largest single-round net loss (negative)

	// Streaks, counted over rounds: positive runs of winning rounds,
	// negative runs of losing rounds, zero-net rounds reset both.
	CurrentStreak int
	BestStreak    int
	WorstStreak   int
}

// Mean returns the arithmetic mean of round nets in currency units
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of round nets
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of round nets
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	se := s.StdError()
	margin := 1.96 * se // 95% confidence
	return mean - margin, mean + margin
}

// Add incorporates a settled round into the statistics
func (s *Statistics) Add(record RoundRecord) {
	net := record.Net
	s.Rounds++
	s.Sum += net
	s.Sum2 += net * net
	s.Values = append(s.Values, net)

	s.HandsSettled += record.Hands
	s.Wins += record.Wins
	s.Losses += record.Losses
	s.Pushes += record.Pushes
	s.TotalWagered += record.Wagered

	// Track all units (wins and losses) in appropriate buckets
	switch {
	case net > 0:
		s.WinUnits += net
	case net < 0:
		s.LossUnits += net
	}
	s.AllUnits += net // Total for sanity check

	if net > s.BiggestWin {
		s.BiggestWin = net
	}
	if net < s.BiggestLoss {
		s.BiggestLoss = net
	}

	if record.Split {
		s.SplitRounds++
	}
	if record.Doubled {
		s.DoubledRounds++
	}
	if record.DealerBust {
		s.DealerBusts++
	}

	// Streak bookkeeping
	switch {
	case net > 0:
		if s.CurrentStreak < 0 {
			s.CurrentStreak = 0
		}
		s.CurrentStreak++
		if s.CurrentStreak > s.BestStreak {
			s.BestStreak = s.CurrentStreak
		}
	case net < 0:
		if s.CurrentStreak > 0 {
			s.CurrentStreak = 0
		}
		s.CurrentStreak--
		if s.CurrentStreak < s.WorstStreak {
			s.WorstStreak = s.CurrentStreak
		}
	default:
		s.CurrentStreak = 0
	}
}

// Median returns the median of round nets
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the fraction of settled hands won
func (s *Statistics) WinRate() float64 {
	if s.HandsSettled == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.HandsSettled)
}

// HouseEdge returns the house take as a fraction of total wagered; positive
// values favor the house.
func (s *Statistics) HouseEdge() float64 {
	if s.TotalWagered == 0 {
		return 0
	}
	return -s.Sum / float64(s.TotalWagered)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllUnits-s.WinUnits-s.LossUnits) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	// Check ledger balance
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllUnits=%.6f, WinUnits=%.6f, LossUnits=%.6f",
			s.AllUnits, s.WinUnits, s.LossUnits)
	}

	// Check that rounds count is positive
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	// Check that values array matches rounds count
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	// Check that per-outcome hand counts add up
	if s.Wins+s.Losses+s.Pushes != s.HandsSettled {
		return fmt.Errorf("outcome counts (%d+%d+%d) do not match settled hands (%d)",
			s.Wins, s.Losses, s.Pushes, s.HandsSettled)
	}

	// A round settles at least one hand
	if s.HandsSettled < s.Rounds {
		return fmt.Errorf("settled hands (%d) below rounds count (%d)", s.HandsSettled, s.Rounds)
	}

	return nil
}
