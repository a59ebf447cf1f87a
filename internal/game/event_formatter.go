package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowHoleCard bool // render the dealer hole card face up in deal lines
	ShowValues   bool // append computed hand values to card lines
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any game event into a human-readable string.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartEvent:
		return ef.FormatRoundStart(e)
	case CardDealtEvent:
		return ef.FormatCardDealt(e)
	case PlayerActionEvent:
		return ef.FormatPlayerAction(e)
	case HandSplitEvent:
		return ef.FormatHandSplit(e)
	case DealerRevealEvent:
		return ef.FormatDealerReveal(e)
	case RoundSettledEvent:
		return ef.FormatRoundSettled(e)
	default:
		return fmt.Sprintf("[%s]", event.EventType())
	}
}

// FormatRoundStart formats a round start event
func (ef *EventFormatter) FormatRoundStart(event RoundStartEvent) string {
	line1 := fmt.Sprintf("\033[1mRound %s\033[0m", shortID(event.RoundID))
	line2 := fmt.Sprintf("%s wagers $%d (%d cards in shoe)", event.PlayerName, event.Wager, event.ShoeSize)
	return fmt.Sprintf("%s\n%s", line1, line2)
}

// FormatCardDealt formats a card dealt event
func (ef *EventFormatter) FormatCardDealt(event CardDealtEvent) string {
	if event.Hidden && !ef.opts.ShowHoleCard {
		return "Dealt to dealer: [??]"
	}
	return fmt.Sprintf("Dealt to %s: %s", event.To, ef.formatCardsWithColor([]deck.Card{event.Card}))
}

// FormatPlayerAction formats a player action event
func (ef *EventFormatter) FormatPlayerAction(event PlayerActionEvent) string {
	if event.Rejected {
		return fmt.Sprintf("%s rejected: %s", event.Action, event.Reason)
	}

	text := fmt.Sprintf("%s: %s", event.Action, ef.formatCardsWithColor(event.Hand.Cards))
	if ef.opts.ShowValues {
		text += fmt.Sprintf(" (%d)", event.Hand.Value)
	}
	if event.Hand.Busted {
		text += " \033[1mBUST\033[0m"
	}
	return text
}

// FormatHandSplit formats a hand split event
func (ef *EventFormatter) FormatHandSplit(event HandSplitEvent) string {
	return fmt.Sprintf("split with %s: %s and %s ($%d each)",
		ef.formatCardWithColor(event.Drawn),
		ef.formatCardsWithColor(event.First.Cards),
		ef.formatCardsWithColor(event.Second.Cards),
		event.First.Wager)
}

// FormatDealerReveal formats a dealer reveal event
func (ef *EventFormatter) FormatDealerReveal(event DealerRevealEvent) string {
	text := fmt.Sprintf("\n\033[1m*** DEALER ***\033[0m %s", ef.formatCardsWithColor(event.Dealer.Cards))
	if ef.opts.ShowValues {
		text += fmt.Sprintf(" (%d)", event.Dealer.Value)
	}
	if event.Dealer.Busted {
		text += " \033[1mBUST\033[0m"
	}
	return text
}

// FormatRoundSettled formats a round settled event
func (ef *EventFormatter) FormatRoundSettled(event RoundSettledEvent) string {
	var result strings.Builder

	result.WriteString(fmt.Sprintf("=== %s ===\n", strings.ToUpper(event.Outcome.String())))
	result.WriteString(fmt.Sprintf("%s %d vs dealer %d",
		ef.formatCardsWithColor(event.Hand.Cards), event.Hand.Value, event.Dealer.Value))
	if event.Hand.Busted {
		result.WriteString(" (busted)")
	}
	result.WriteString("\n")

	switch event.Outcome {
	case Push:
		result.WriteString(fmt.Sprintf("Wager of $%d returned\n", event.Wager))
	case Win:
		result.WriteString(fmt.Sprintf("Winnings: $%d on a $%d wager\n", event.Winnings, event.Wager))
	case Loss:
		result.WriteString(fmt.Sprintf("Wager of $%d lost\n", event.Wager))
	}

	result.WriteString(fmt.Sprintf("%s: wagered $%d lifetime, net $%d",
		event.Bankroll.Name, event.Bankroll.TotalWager, event.Bankroll.ProfitLoss))

	return result.String()
}

// FormatHand renders a hand snapshot for display outside the event stream.
func (ef *EventFormatter) FormatHand(label string, view HandView) string {
	text := fmt.Sprintf("%s: %s", label, ef.formatCardsWithColor(view.Cards))
	if ef.opts.ShowValues {
		text += fmt.Sprintf(" (%d)", view.Value)
	}
	if view.Busted {
		text += " \033[1mBUST\033[0m"
	}
	return text
}

// FormatDealer renders the dealer snapshot, masking the hole card while it
// is hidden and reporting the visible partial value as a lower bound.
func (ef *EventFormatter) FormatDealer(view DealerView) string {
	if view.HoleHidden {
		return fmt.Sprintf("dealer: [%s ??] (≥ %d)", ef.formatCardWithColor(view.UpCard), view.Value)
	}
	text := fmt.Sprintf("dealer: %s", ef.formatCardsWithColor(view.Cards))
	if ef.opts.ShowValues {
		text += fmt.Sprintf(" (%d)", view.Value)
	}
	if view.Busted {
		text += " \033[1mBUST\033[0m"
	}
	return text
}

// formatCardsWithColor formats a slice of cards with color styling
func (ef *EventFormatter) formatCardsWithColor(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}

	var formatted []string
	for _, card := range cards {
		formatted = append(formatted, ef.formatCardWithColor(card))
	}

	return "[" + strings.Join(formatted, " ") + "]"
}

// formatCardWithColor formats a single card with color styling
func (ef *EventFormatter) formatCardWithColor(card deck.Card) string {
	if card.IsRed() {
		return fmt.Sprintf("\033[31m%s\033[0m", card.String())
	}
	return card.String()
}

// shortID trims a round ID down to its leading segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
