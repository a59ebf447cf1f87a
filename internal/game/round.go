package game

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lox/blackjack/internal/deck"
)

// RoundState tracks a round through its lifecycle.
type RoundState int

const (
	AwaitingWager RoundState = iota
	Dealt
	PlayerTurn
	DealerTurn
	Settled
)

func (s RoundState) String() string {
	return [...]string{"awaiting_wager", "dealt", "player_turn", "dealer_turn", "settled"}[s]
}

// HandOutcome records one settled hand within a round.
type HandOutcome struct {
	Hand     *Hand
	Outcome  Outcome
	Winnings int
}

// RoundResult contains the results of a completed round
type RoundResult struct {
	RoundID string
	Wager   int
	Hands   []HandOutcome
	Dealer  *Hand
	Split   bool
	Doubled bool
}

// Round orchestrates one hand of play from wager to settlement. It borrows
// the player, exclusively owns the shoe and the hands, and is discarded once
// settled. A split enqueues replacement hands which play out one after
// another against the same dealer hand and shoe.
type Round struct {
	id         string
	player     *Player
	shoe       *deck.Shoe
	agent      Agent
	logger     *log.Logger
	events     EventBus
	state      RoundState
	dealer     *Hand
	dealerDone bool
	split      bool
	doubled    bool
}

// NewRound creates a round for one hand of play.
func NewRound(player *Player, shoe *deck.Shoe, agent Agent, events EventBus, logger *log.Logger) *Round {
	if player == nil {
		panic("player is required for a round")
	}
	if shoe == nil {
		panic("shoe is required for a round")
	}
	if agent == nil {
		panic("agent is required for a round")
	}
	if events == nil {
		events = NewEventBus()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Round{
		id:     uuid.New().String(),
		player: player,
		shoe:   shoe,
		agent:  agent,
		events: events,
		logger: logger,
		state:  AwaitingWager,
	}
}

// ID returns the round identifier.
func (r *Round) ID() string {
	return r.id
}

// State returns the round's lifecycle state.
func (r *Round) State() RoundState {
	return r.state
}

// Play runs the round to completion: wager, deal, player turns with any
// splits, dealer turn and settlement per hand. A returned error is either an
// ended input stream or an exhausted shoe; both abort the round while the
// session continues.
func (r *Round) Play() (*RoundResult, error) {
	wager, err := r.awaitWager()
	if err != nil {
		return nil, err
	}

	playerHand, err := r.deal(wager)
	if err != nil {
		return nil, err
	}

	result := &RoundResult{RoundID: r.id, Wager: wager, Dealer: r.dealer}

	pending := []*Hand{playerHand}
	for len(pending) > 0 {
		hand := pending[0]
		pending = pending[1:]

		r.state = PlayerTurn
		halves, err := r.playerTurn(hand)
		if err != nil {
			return nil, err
		}
		if halves != nil {
			// The hand was replaced by its two halves; play those next.
			pending = append(halves, pending...)
			continue
		}

		r.state = DealerTurn
		if err := r.dealerTurn(); err != nil {
			return nil, err
		}

		outcome, winnings := Settle(hand, r.dealer)
		r.player.UpdateProfitLoss(winnings)
		r.logger.Debug("hand settled",
			"round", shortID(r.id),
			"outcome", outcome,
			"wager", hand.Wager(),
			"winnings", winnings,
			"player", hand.Value(),
			"dealer", r.dealer.Value())
		r.events.Publish(NewRoundSettledEvent(r.id, outcome, hand.Wager(), winnings,
			r.handView(hand), r.dealerView(true), r.bankrollView()))
		result.Hands = append(result.Hands, HandOutcome{Hand: hand, Outcome: outcome, Winnings: winnings})
	}

	r.state = Settled
	result.Split = r.split
	result.Doubled = r.doubled
	return result, nil
}

// awaitWager prompts until the agent supplies a positive wager. Rejected
// amounts re-prompt rather than failing the round.
func (r *Round) awaitWager() (int, error) {
	for {
		amount, err := r.agent.NextWager(r.bankrollView())
		if err != nil {
			return 0, fmt.Errorf("reading wager: %w", err)
		}
		if err := r.player.PlaceWager(amount); err != nil {
			r.logger.Debug("wager rejected", "round", shortID(r.id), "amount", amount)
			continue
		}
		return amount, nil
	}
}

// deal opens the round: player, player, dealer, dealer, with the dealer's
// second card face down.
func (r *Round) deal(wager int) (*Hand, error) {
	playerHand := NewHand(RolePlayer, WithWager(wager))
	r.dealer = NewHand(RoleDealer)

	r.events.Publish(NewRoundStartEvent(r.id, r.player.Name, wager, r.shoe.AvailableCount()))
	r.logger.Debug("round started",
		"round", shortID(r.id),
		"player", r.player.Name,
		"wager", wager,
		"shoe", r.shoe.AvailableCount())

	order := []*Hand{playerHand, playerHand, r.dealer, r.dealer}
	for i, h := range order {
		card, err := r.shoe.Draw()
		if err != nil {
			return nil, fmt.Errorf("dealing: %w", err)
		}
		h.AddCard(card)
		r.events.Publish(NewCardDealtEvent(r.id, h.Role(), card, i == 3))
	}

	r.state = Dealt
	return playerHand, nil
}

// playerTurn drives one hand's action loop. A successful split returns the
// two replacement hands and leaves the original unsettled; otherwise the
// loop runs until the hand locks or reaches five cards.
func (r *Round) playerTurn(hand *Hand) ([]*Hand, error) {
	for hand.CardCount() < 5 && !hand.Locked() {
		action, err := r.agent.NextAction(r.tableView(hand))
		if err != nil {
			return nil, fmt.Errorf("reading action: %w", err)
		}

		switch action {
		case Hit:
			if err := hand.Hit(r.shoe); err != nil {
				if errors.Is(err, ErrHandLocked) {
					r.reject(hand, action, err)
					continue
				}
				return nil, err
			}
		case Stand:
			hand.Stand()
		case DoubleDown:
			if err := hand.DoubleDown(r.shoe); err != nil {
				if errors.Is(err, ErrInvalidAction) {
					r.reject(hand, action, err)
					continue
				}
				return nil, err
			}
			r.doubled = true
		case Split:
			halves, err := r.splitHand(hand)
			if err != nil {
				return nil, err
			}
			if halves == nil {
				continue
			}
			return halves, nil
		default:
			r.reject(hand, action, fmt.Errorf("%w: unknown action %d", ErrInvalidAction, int(action)))
			continue
		}

		r.events.Publish(NewPlayerActionEvent(r.id, action, r.handView(hand), false, ""))
		r.logger.Debug("player action",
			"round", shortID(r.id),
			"action", action,
			"value", hand.Value(),
			"cards", hand.CardCount())
	}
	return nil, nil
}

// splitHand attempts a split. The hand must be a two-card pair before a card
// is drawn; the drawn card must then match the pair. A gate rejection leaves
// the shoe untouched; a mismatched draw is discarded with the attempt. Either
// way the turn continues on the original hand. One split per round: the
// halves of a split cannot split again.
func (r *Round) splitHand(hand *Hand) ([]*Hand, error) {
	if r.split {
		r.reject(hand, Split, fmt.Errorf("%w: hand has already been split", ErrInvalidAction))
		return nil, nil
	}
	if !hand.IsPair() {
		r.reject(hand, Split, fmt.Errorf("%w: split requires a two-card pair", ErrInvalidAction))
		return nil, nil
	}

	drawn, err := r.shoe.Draw()
	if err != nil {
		return nil, err
	}

	first, second, err := hand.Split(drawn)
	if err != nil {
		r.reject(hand, Split, err)
		return nil, nil
	}

	r.split = true
	r.events.Publish(NewHandSplitEvent(r.id, drawn, r.handView(first), r.handView(second)))
	r.logger.Debug("hand split",
		"round", shortID(r.id),
		"drawn", drawn.String(),
		"wager", first.Wager())
	return []*Hand{first, second}, nil
}

// dealerTurn finishes the dealer hand once per round. Later split hands
// settle against the same finished dealer hand, so re-entry is a no-op.
func (r *Round) dealerTurn() error {
	if r.dealerDone {
		return nil
	}
	if err := r.dealer.AutoPlay(r.shoe); err != nil {
		return fmt.Errorf("dealer drawing: %w", err)
	}
	r.dealerDone = true
	r.events.Publish(NewDealerRevealEvent(r.id, r.dealerView(true)))
	r.logger.Debug("dealer stands",
		"round", shortID(r.id),
		"value", r.dealer.Value(),
		"busted", r.dealer.Busted(),
		"cards", r.dealer.CardCount())
	return nil
}

func (r *Round) reject(hand *Hand, action Action, err error) {
	r.logger.Debug("action rejected",
		"round", shortID(r.id),
		"action", action,
		"reason", err)
	r.events.Publish(NewPlayerActionEvent(r.id, action, r.handView(hand), true, err.Error()))
}

// Settle scores a player hand against the dealer, returning the outcome and
// the gross winnings. Branch order is contractual: the push test runs before
// the bust tests, so equal values always push and two busted hands push with
// the wager returned.
func Settle(player, dealer *Hand) (Outcome, int) {
	switch {
	case player.Value() == dealer.Value() || (player.Busted() && dealer.Busted()):
		return Push, player.Wager()
	case player.Busted():
		return Loss, 0
	case dealer.Busted():
		return Win, 2 * player.Wager()
	case player.Value() > dealer.Value():
		// Wins against a standing dealer pay three to two, rounded down.
		return Win, player.Wager() * 3 / 2
	default:
		return Loss, 0
	}
}

func (r *Round) handView(h *Hand) HandView {
	return HandView{
		Cards:  h.Cards(),
		Value:  h.Value(),
		Wager:  h.Wager(),
		Busted: h.Busted(),
		Locked: h.Locked(),
	}
}

// dealerView renders the dealer hand. While unrevealed only the up card and
// its partial value are visible.
func (r *Round) dealerView(revealed bool) DealerView {
	cards := r.dealer.Cards()
	if !revealed {
		return DealerView{
			UpCard:     cards[0],
			HoleHidden: true,
			Value:      handValue(cards[:1]),
		}
	}
	return DealerView{
		UpCard: cards[0],
		Cards:  cards,
		Value:  r.dealer.Value(),
		Busted: r.dealer.Busted(),
	}
}

func (r *Round) bankrollView() BankrollView {
	return BankrollView{
		Name:       r.player.Name,
		TotalWager: r.player.TotalWager(),
		ProfitLoss: r.player.ProfitLoss(),
	}
}

// tableView assembles the decision context handed to the agent. Split leaves
// the advisory action list once the round's one split is spent.
func (r *Round) tableView(hand *Hand) TableView {
	valid := hand.ValidActions()
	if r.split {
		valid = slices.DeleteFunc(valid, func(a Action) bool { return a == Split })
	}
	return TableView{
		Hand:     r.handView(hand),
		Dealer:   r.dealerView(r.dealerDone),
		Bankroll: r.bankrollView(),
		Valid:    valid,
	}
}
