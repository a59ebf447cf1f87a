package simulator

import (
	"fmt"
	"slices"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Strategy names accepted by NewStrategy.
const (
	StrategyBasic  = "basic"
	StrategyDealer = "dealer"
	StrategyStand  = "stand"
)

// NewStrategy builds the named strategy agent playing a fixed wager per
// round. Strategies hold no mutable state and are safe to share across
// simulation workers.
func NewStrategy(name string, wager int) (game.Agent, error) {
	if wager < 1 {
		return nil, fmt.Errorf("%w: strategy wager %d must be positive", game.ErrInvalidWager, wager)
	}
	switch name {
	case StrategyBasic:
		return &basicStrategy{wager: wager}, nil
	case StrategyDealer:
		return &dealerStrategy{wager: wager}, nil
	case StrategyStand:
		return &standStrategy{wager: wager}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// dealerStrategy plays the dealer's own rules: hit below 17, then stand.
type dealerStrategy struct {
	wager int
}

func (s *dealerStrategy) NextWager(game.BankrollView) (int, error) {
	return s.wager, nil
}

func (s *dealerStrategy) NextAction(view game.TableView) (game.Action, error) {
	if view.Hand.Value < 17 {
		return game.Hit, nil
	}
	return game.Stand, nil
}

// standStrategy stands on everything.
type standStrategy struct {
	wager int
}

func (s *standStrategy) NextWager(game.BankrollView) (int, error) {
	return s.wager, nil
}

func (s *standStrategy) NextAction(game.TableView) (game.Action, error) {
	return game.Stand, nil
}

// basicStrategy is a simplified basic strategy over hand totals: split aces
// and eights, double hard 10 and 11 against a weak up card, hit stiff totals
// only when the dealer shows 7 or better. It only ever answers with actions
// the table reports as valid, so a rejected action can never loop.
type basicStrategy struct {
	wager int
}

func (s *basicStrategy) NextWager(game.BankrollView) (int, error) {
	return s.wager, nil
}

func (s *basicStrategy) NextAction(view game.TableView) (game.Action, error) {
	value := view.Hand.Value
	up := view.Dealer.Value

	if slices.Contains(view.Valid, game.Split) {
		rank := view.Hand.Cards[0].Rank
		if rank == deck.Ace || rank == deck.Eight {
			return game.Split, nil
		}
	}
	if slices.Contains(view.Valid, game.DoubleDown) {
		if (value == 10 || value == 11) && up >= 2 && up <= 9 {
			return game.DoubleDown, nil
		}
	}
	switch {
	case value < 12:
		return game.Hit, nil
	case value < 17 && up >= 7:
		return game.Hit, nil
	default:
		return game.Stand, nil
	}
}
