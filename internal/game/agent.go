package game

import (
	"io"

	"github.com/lox/blackjack/internal/deck"
)

// HandView is a read-only snapshot of a hand for rendering and decisions.
type HandView struct {
	Cards  []deck.Card
	Value  int
	Wager  int
	Busted bool
	Locked bool
}

// DealerView shows the dealer's hand as the player may see it. While the
// hole card is hidden only the up card and its partial value are populated.
type DealerView struct {
	UpCard     deck.Card
	HoleHidden bool
	Cards      []deck.Card // nil while the hole card is hidden
	Value      int         // partial value of the up card while hidden
	Busted     bool
}

// BankrollView mirrors the player ledger for display.
type BankrollView struct {
	Name       string
	TotalWager int
	ProfitLoss int
}

// TableView is the full decision context handed to an agent.
type TableView struct {
	Hand     HandView
	Dealer   DealerView
	Bankroll BankrollView
	Valid    []Action
}

// Agent decides wagers and actions for a player. Agents receive immutable
// snapshots and return decisions; they never mutate game state. An error
// from either method means input ended (EOF or cancellation) and aborts the
// round.
type Agent interface {
	// NextWager asks for the wager to open a round with.
	NextWager(bankroll BankrollView) (int, error)
	// NextAction picks an action for the hand described by view.
	NextAction(view TableView) (Action, error)
}

// ScriptedAgent replays queued wagers and actions in order, for tests and
// scripted scenarios. Once a queue empties the agent reports io.EOF.
type ScriptedAgent struct {
	Wagers  []int
	Actions []Action
}

// NextWager pops the next queued wager.
func (a *ScriptedAgent) NextWager(BankrollView) (int, error) {
	if len(a.Wagers) == 0 {
		return 0, io.EOF
	}
	w := a.Wagers[0]
	a.Wagers = a.Wagers[1:]
	return w, nil
}

// NextAction pops the next queued action.
func (a *ScriptedAgent) NextAction(TableView) (Action, error) {
	if len(a.Actions) == 0 {
		return 0, io.EOF
	}
	act := a.Actions[0]
	a.Actions = a.Actions[1:]
	return act, nil
}
