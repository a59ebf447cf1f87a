package game

import (
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeCardDealt    EventType = "card_dealt"
	EventTypePlayerAction EventType = "player_action"
	EventTypeHandSplit    EventType = "hand_split"
	EventTypeDealerReveal EventType = "dealer_reveal"
	EventTypeRoundSettled EventType = "round_settled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published when a wager is accepted and a round begins
type RoundStartEvent struct {
	RoundID    string
	PlayerName string
	Wager      int
	ShoeSize   int
	timestamp  time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(roundID, playerName string, wager, shoeSize int) RoundStartEvent {
	return RoundStartEvent{
		RoundID:    roundID,
		PlayerName: playerName,
		Wager:      wager,
		ShoeSize:   shoeSize,
		timestamp:  time.Now(),
	}
}

// CardDealtEvent is published for each card dealt during the opening deal
type CardDealtEvent struct {
	RoundID   string
	To        Role
	Card      deck.Card
	Hidden    bool // the dealer hole card is dealt face down
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// NewCardDealtEvent creates a new card dealt event
func NewCardDealtEvent(roundID string, to Role, card deck.Card, hidden bool) CardDealtEvent {
	return CardDealtEvent{
		RoundID:   roundID,
		To:        to,
		Card:      card,
		Hidden:    hidden,
		timestamp: time.Now(),
	}
}

// PlayerActionEvent is published when a player action is applied or rejected
type PlayerActionEvent struct {
	RoundID   string
	Action    Action
	Hand      HandView
	Rejected  bool
	Reason    string
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerActionEvent creates a new player action event
func NewPlayerActionEvent(roundID string, action Action, hand HandView, rejected bool, reason string) PlayerActionEvent {
	return PlayerActionEvent{
		RoundID:   roundID,
		Action:    action,
		Hand:      hand,
		Rejected:  rejected,
		Reason:    reason,
		timestamp: time.Now(),
	}
}

// HandSplitEvent is published when a hand is split into two
type HandSplitEvent struct {
	RoundID   string
	Drawn     deck.Card
	First     HandView
	Second    HandView
	timestamp time.Time
}

func (e HandSplitEvent) EventType() EventType { return EventTypeHandSplit }
func (e HandSplitEvent) Timestamp() time.Time { return e.timestamp }

// NewHandSplitEvent creates a new hand split event
func NewHandSplitEvent(roundID string, drawn deck.Card, first, second HandView) HandSplitEvent {
	return HandSplitEvent{
		RoundID:   roundID,
		Drawn:     drawn,
		First:     first,
		Second:    second,
		timestamp: time.Now(),
	}
}

// DealerRevealEvent is published when the dealer's hole card is revealed and
// the dealer finishes drawing
type DealerRevealEvent struct {
	RoundID   string
	Dealer    DealerView
	timestamp time.Time
}

func (e DealerRevealEvent) EventType() EventType { return EventTypeDealerReveal }
func (e DealerRevealEvent) Timestamp() time.Time { return e.timestamp }

// NewDealerRevealEvent creates a new dealer reveal event
func NewDealerRevealEvent(roundID string, dealer DealerView) DealerRevealEvent {
	return DealerRevealEvent{
		RoundID:   roundID,
		Dealer:    dealer,
		timestamp: time.Now(),
	}
}

// RoundSettledEvent is published once per settled hand
type RoundSettledEvent struct {
	RoundID   string
	Outcome   Outcome
	Wager     int
	Winnings  int
	Hand      HandView
	Dealer    DealerView
	Bankroll  BankrollView
	timestamp time.Time
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
func (e RoundSettledEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundSettledEvent creates a new round settled event
func NewRoundSettledEvent(roundID string, outcome Outcome, wager, winnings int, hand HandView, dealer DealerView, bankroll BankrollView) RoundSettledEvent {
	return RoundSettledEvent{
		RoundID:   roundID,
		Outcome:   outcome,
		Wager:     wager,
		Winnings:  winnings,
		Hand:      hand,
		Dealer:    dealer,
		Bankroll:  bankroll,
		timestamp: time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
