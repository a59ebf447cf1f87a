package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrInvalidConfig is returned when a shoe is constructed with a
// non-positive deck count.
var ErrInvalidConfig = errors.New("invalid shoe configuration")

// ErrShoeExhausted is returned when drawing from a shoe with no cards left.
var ErrShoeExhausted = errors.New("shoe exhausted")

// Shoe holds one or more standard 52-card decks and deals cards in uniformly
// random order without replacement. The composition is fixed at construction;
// dealing marks positions drawn rather than reordering them, so a reset
// restores the full shoe without recomposing it.
type Shoe struct {
	cards     []Card
	drawn     []bool
	remaining int
	rng       *rand.Rand
	stacked   bool
}

// NewShoe creates a shoe of deckCount standard decks with explicit RNG.
// The RNG is required to make randomness explicit and testing deterministic.
func NewShoe(rng *rand.Rand, deckCount int) (*Shoe, error) {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	if deckCount < 1 {
		return nil, fmt.Errorf("%w: deck count %d must be at least 1", ErrInvalidConfig, deckCount)
	}

	cards := make([]Card, 0, deckCount*52)
	for d := 0; d < deckCount; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				cards = append(cards, Card{Suit: suit, Rank: rank})
			}
		}
	}

	return &Shoe{
		cards:     cards,
		drawn:     make([]bool, len(cards)),
		remaining: len(cards),
		rng:       rng,
	}, nil
}

// NewStackedShoe creates a shoe that deals the given cards in order, with
// resets replaying the same sequence (for deterministic testing).
func NewStackedShoe(cards ...Card) *Shoe {
	if len(cards) == 0 {
		panic("a stacked shoe needs at least one card")
	}
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Shoe{
		cards:     stacked,
		drawn:     make([]bool, len(stacked)),
		remaining: len(stacked),
		stacked:   true,
	}
}

// Draw picks uniformly at random among the undrawn positions, marks the
// position drawn and returns its card. Fails with ErrShoeExhausted when no
// cards remain. Stacked shoes deal in insertion order instead.
func (s *Shoe) Draw() (Card, error) {
	if s.remaining == 0 {
		return Card{}, ErrShoeExhausted
	}

	n := 0
	if !s.stacked {
		n = s.rng.IntN(s.remaining)
	}
	for i := range s.cards {
		if s.drawn[i] {
			continue
		}
		if n == 0 {
			s.drawn[i] = true
			s.remaining--
			return s.cards[i], nil
		}
		n--
	}

	// Unreachable while remaining stays in sync with the markers.
	return Card{}, ErrShoeExhausted
}

// Reset clears all drawn markers, restoring the full composition.
func (s *Shoe) Reset() {
	for i := range s.drawn {
		s.drawn[i] = false
	}
	s.remaining = len(s.cards)
}

// AvailableCount returns the number of undrawn cards.
func (s *Shoe) AvailableCount() int {
	return s.remaining
}

// Size returns the total number of cards in the shoe composition.
func (s *Shoe) Size() int {
	return len(s.cards)
}
