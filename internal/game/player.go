package game

import "fmt"

// Player carries one person's bankroll ledger across rounds: the display
// name, the lifetime sum of placed wagers and the running profit/loss.
type Player struct {
	Name       string
	totalWager int
	profitLoss int
}

// NewPlayer creates a player with a zeroed ledger.
func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

// PlaceWager records a wager in the lifetime total. Fails with
// ErrInvalidWager unless the amount is positive.
func (p *Player) PlaceWager(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidWager, amount)
	}
	p.totalWager += amount
	return nil
}

// UpdateProfitLoss folds winnings into the running net. The winnings are
// netted against the lifetime wager total, not the current round's wager.
// TODO: netting against totalWager drifts across multi-round sessions;
// needs a rules decision before changing.
func (p *Player) UpdateProfitLoss(winnings int) {
	p.profitLoss += winnings - p.totalWager
}

// TotalWager returns the lifetime sum of placed wagers.
func (p *Player) TotalWager() int {
	return p.totalWager
}

// ProfitLoss returns the running net.
func (p *Player) ProfitLoss() int {
	return p.profitLoss
}
