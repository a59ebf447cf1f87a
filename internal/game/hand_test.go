package game

import (
	"errors"
	"slices"
	"testing"

	"github.com/lox/blackjack/internal/deck"
)

// hand builds a player hand from compact card notation.
func hand(t *testing.T, wager int, cards string) *Hand {
	t.Helper()
	return NewHand(RolePlayer, WithWager(wager), WithCards(deck.MustParseCards(cards)...))
}

func dealerHand(t *testing.T, cards string) *Hand {
	t.Helper()
	return NewHand(RoleDealer, WithCards(deck.MustParseCards(cards)...))
}

func TestHandValueNoAces(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards string
		want  int
	}{
		{name: "two numbered cards", cards: "9d8c", want: 17},
		{name: "court cards score ten", cards: "KhQd", want: 20},
		{name: "low run", cards: "2c3d4h", want: 9},
		{name: "jack ten", cards: "JsTc", want: 20},
		{name: "five small cards", cards: "2c2d3h3s4c", want: 14},
		{name: "bust", cards: "Th9dKc", want: 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hand(t, 10, tt.cards)
			if got := h.Value(); got != tt.want {
				t.Errorf("Value() = %d, want %d", got, tt.want)
			}
			if got := h.Busted(); got != (tt.want > 21) {
				t.Errorf("Busted() = %v, want %v", got, tt.want > 21)
			}
		})
	}
}

func TestHandValueGreedyAces(t *testing.T) {
	t.Parallel()
	// Aces resolve greedily left to right: eleven unless the running total
	// including this ace would pass twenty-one, never revisited afterwards.
	tests := []struct {
		name  string
		cards string
		want  int
	}{
		{name: "ace ten is twenty-one", cards: "AsTd", want: 21},
		{name: "blackjack", cards: "AsKd", want: 21},
		{name: "two aces and a nine", cards: "AsAh9d", want: 21},
		{name: "three aces and an eight", cards: "AsAhAd8c", want: 21},
		{name: "four aces", cards: "AsAhAdAc", want: 14},
		{name: "soft sixteen", cards: "As5d", want: 16},
		{name: "early ace stays eleven", cards: "As5d9c", want: 25},
		{name: "ace ten ace goes over", cards: "AsTdAh", want: 22},
		{name: "ten before ace demotes it", cards: "TdAs", want: 21},
		{name: "ten ten ace", cards: "TdThAs", want: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hand(t, 10, tt.cards)
			if got := h.Value(); got != tt.want {
				t.Errorf("Value(%s) = %d, want %d", tt.cards, got, tt.want)
			}
		})
	}
}

func TestDealerSoft17Override(t *testing.T) {
	t.Parallel()
	// A three-card dealer hand whose base value lands on 6 reports 17.
	d := dealerHand(t, "2c2d2h")
	if got := d.Value(); got != 17 {
		t.Errorf("dealer Value() = %d, want 17", got)
	}

	// The override is dealer-only and requires exactly three cards.
	p := hand(t, 10, "2c2d2h")
	if got := p.Value(); got != 6 {
		t.Errorf("player Value() = %d, want 6", got)
	}
	twoCards := dealerHand(t, "2c4d")
	if got := twoCards.Value(); got != 6 {
		t.Errorf("two-card dealer Value() = %d, want 6", got)
	}
	fourCards := dealerHand(t, "2c2d2h2s")
	if got := fourCards.Value(); got != 8 {
		t.Errorf("four-card dealer Value() = %d, want 8", got)
	}
}

func TestNewHandValidation(t *testing.T) {
	t.Parallel()
	t.Run("negative wager panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("NewHand() should panic on a negative wager")
			}
		}()
		NewHand(RolePlayer, WithWager(-5))
	})

	t.Run("dealer wager panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("NewHand() should panic on a dealer wager")
			}
		}()
		NewHand(RoleDealer, WithWager(10))
	})
}

func TestAddCardBustLocks(t *testing.T) {
	t.Parallel()
	h := hand(t, 10, "Th9d")
	if h.Busted() || h.Locked() {
		t.Fatalf("fresh nineteen should be open, busted=%v locked=%v", h.Busted(), h.Locked())
	}

	h.AddCard(deck.MustParseCards("Kc")[0])
	if !h.Busted() {
		t.Error("hand over twenty-one should be busted")
	}
	if !h.Locked() {
		t.Error("busted hand should be locked")
	}
}

func TestHitLockedHand(t *testing.T) {
	t.Parallel()
	shoe := deck.NewStackedShoe(deck.MustParseCards("2c")...)

	h := hand(t, 10, "Th9d")
	h.Stand()
	if err := h.Hit(shoe); !errors.Is(err, ErrHandLocked) {
		t.Errorf("Hit() on stood hand error = %v, want ErrHandLocked", err)
	}
	if got := h.CardCount(); got != 2 {
		t.Errorf("CardCount() after rejected hit = %d, want 2", got)
	}
}

func TestHitFiveCardHand(t *testing.T) {
	t.Parallel()
	shoe := deck.NewStackedShoe(deck.MustParseCards("2c")...)

	h := hand(t, 10, "2c2d3h3s4c")
	if h.Locked() {
		t.Fatal("five small cards should not be locked")
	}
	if err := h.Hit(shoe); !errors.Is(err, ErrHandLocked) {
		t.Errorf("Hit() on five-card hand error = %v, want ErrHandLocked", err)
	}
}

func TestHitDrawsFromShoe(t *testing.T) {
	t.Parallel()
	shoe := deck.NewStackedShoe(deck.MustParseCards("5h")...)

	h := hand(t, 10, "Th9d")
	if err := h.Hit(shoe); err != nil {
		t.Fatalf("Hit() error = %v", err)
	}
	if got := h.Value(); got != 24 {
		t.Errorf("Value() after hit = %d, want 24", got)
	}
	if !h.Busted() || !h.Locked() {
		t.Errorf("busting hit should lock, busted=%v locked=%v", h.Busted(), h.Locked())
	}
	if got := shoe.AvailableCount(); got != 0 {
		t.Errorf("shoe AvailableCount() = %d, want 0", got)
	}
}

func TestHitExhaustedShoe(t *testing.T) {
	t.Parallel()
	shoe := deck.NewStackedShoe(deck.MustParseCards("2c")...)
	if _, err := shoe.Draw(); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	h := hand(t, 10, "Th5d")
	if err := h.Hit(shoe); !errors.Is(err, deck.ErrShoeExhausted) {
		t.Errorf("Hit() with empty shoe error = %v, want ErrShoeExhausted", err)
	}
}

func TestStandLocks(t *testing.T) {
	t.Parallel()
	h := hand(t, 10, "Th9d")
	h.Stand()
	if !h.Locked() {
		t.Error("Stand() should lock the hand")
	}
	if h.Busted() {
		t.Error("Stand() should not bust the hand")
	}
}

func TestDoubleDown(t *testing.T) {
	t.Parallel()
	shoe := deck.NewStackedShoe(deck.MustParseCards("5h")...)

	h := hand(t, 50, "4c5d")
	if err := h.DoubleDown(shoe); err != nil {
		t.Fatalf("DoubleDown() error = %v", err)
	}
	if got := h.Wager(); got != 100 {
		t.Errorf("Wager() after double down = %d, want 100", got)
	}
	if got := h.CardCount(); got != 3 {
		t.Errorf("CardCount() after double down = %d, want 3", got)
	}
	if !h.Locked() {
		t.Error("double down should lock the hand")
	}
}

func TestDoubleDownRequiresTwoCards(t *testing.T) {
	t.Parallel()
	shoe := deck.NewStackedShoe(deck.MustParseCards("5h")...)

	h := hand(t, 50, "2c3d4h")
	if err := h.DoubleDown(shoe); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("DoubleDown() on three cards error = %v, want ErrInvalidAction", err)
	}
	if got := h.Wager(); got != 50 {
		t.Errorf("Wager() after rejected double down = %d, want 50", got)
	}
	if got := shoe.AvailableCount(); got != 1 {
		t.Errorf("rejected double down should not draw, shoe has %d", got)
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()
	h := hand(t, 101, "8h8c")
	drawn := deck.MustParseCards("8d")[0]

	first, second, err := h.Split(drawn)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	// Each half carries half the original wager, rounded down.
	if got := first.Wager(); got != 50 {
		t.Errorf("first Wager() = %d, want 50", got)
	}
	if got := second.Wager(); got != 50 {
		t.Errorf("second Wager() = %d, want 50", got)
	}

	wantFirst := deck.MustParseCards("8h")
	if !slices.Equal(first.Cards(), wantFirst) {
		t.Errorf("first Cards() = %v, want %v", first.Cards(), wantFirst)
	}
	wantSecond := deck.MustParseCards("8c8d")
	if !slices.Equal(second.Cards(), wantSecond) {
		t.Errorf("second Cards() = %v, want %v", second.Cards(), wantSecond)
	}
}

func TestSplitRejectsMismatchedDraw(t *testing.T) {
	t.Parallel()
	h := hand(t, 100, "8h8c")
	drawn := deck.MustParseCards("9d")[0]

	if _, _, err := h.Split(drawn); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Split() with mismatched draw error = %v, want ErrInvalidAction", err)
	}
	if got := h.CardCount(); got != 2 {
		t.Errorf("failed split should leave the hand intact, CardCount() = %d", got)
	}
}

func TestSplitRejectsNonPairSizes(t *testing.T) {
	t.Parallel()
	drawn := deck.MustParseCards("8d")[0]

	three := hand(t, 100, "8h8c8s")
	if _, _, err := three.Split(drawn); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Split() on three cards error = %v, want ErrInvalidAction", err)
	}
}

func TestDealerAutoPlayStandsAtSeventeen(t *testing.T) {
	t.Parallel()
	shoe := deck.NewStackedShoe(deck.MustParseCards("5h2c")...)

	d := dealerHand(t, "Th2d")
	if err := d.AutoPlay(shoe); err != nil {
		t.Fatalf("AutoPlay() error = %v", err)
	}
	if got := d.Value(); got != 17 {
		t.Errorf("dealer Value() = %d, want 17", got)
	}
	// The second stacked card stays in the shoe.
	if got := shoe.AvailableCount(); got != 1 {
		t.Errorf("shoe AvailableCount() = %d, want 1", got)
	}
}

func TestDealerAutoPlayCanBust(t *testing.T) {
	t.Parallel()
	shoe := deck.NewStackedShoe(deck.MustParseCards("Kh")...)

	d := dealerHand(t, "Th6d")
	if err := d.AutoPlay(shoe); err != nil {
		t.Fatalf("AutoPlay() error = %v", err)
	}
	if !d.Busted() {
		t.Errorf("dealer at %d should be busted", d.Value())
	}
}

func TestDealerAutoPlaySoft17Stops(t *testing.T) {
	t.Parallel()
	// Dealer 2,2 draws a 2 for a base value of 6, which the three-card
	// override reports as 17, so drawing stops there.
	shoe := deck.NewStackedShoe(deck.MustParseCards("2hKs")...)

	d := dealerHand(t, "2c2d")
	if err := d.AutoPlay(shoe); err != nil {
		t.Fatalf("AutoPlay() error = %v", err)
	}
	if got := d.Value(); got != 17 {
		t.Errorf("dealer Value() = %d, want 17", got)
	}
	if got := d.CardCount(); got != 3 {
		t.Errorf("dealer CardCount() = %d, want 3", got)
	}
}

func TestDealerAutoPlayShoeExhausted(t *testing.T) {
	t.Parallel()
	shoe := deck.NewStackedShoe(deck.MustParseCards("2c")...)
	if _, err := shoe.Draw(); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	d := dealerHand(t, "Th2d")
	if err := d.AutoPlay(shoe); !errors.Is(err, deck.ErrShoeExhausted) {
		t.Errorf("AutoPlay() with empty shoe error = %v, want ErrShoeExhausted", err)
	}
}

func TestAutoPlayPanicsForPlayer(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Error("AutoPlay() should panic for a player hand")
		}
	}()
	shoe := deck.NewStackedShoe(deck.MustParseCards("2c")...)
	_ = hand(t, 10, "Th2d").AutoPlay(shoe)
}

func TestValidActions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		hand  *Hand
		want  []Action
		setup func(h *Hand)
	}{
		{
			name: "two-card pair offers everything",
			hand: hand(t, 10, "8h8c"),
			want: []Action{Hit, Stand, DoubleDown, Split},
		},
		{
			name: "two unmatched cards cannot split",
			hand: hand(t, 10, "8h9c"),
			want: []Action{Hit, Stand, DoubleDown},
		},
		{
			name: "three cards can only hit or stand",
			hand: hand(t, 10, "2h3c4d"),
			want: []Action{Hit, Stand},
		},
		{
			name:  "stood hand has no actions",
			hand:  hand(t, 10, "Th9c"),
			setup: func(h *Hand) { h.Stand() },
			want:  nil,
		},
		{
			name: "busted hand has no actions",
			hand: hand(t, 10, "Th9cKd"),
			want: nil,
		},
		{
			name: "five-card hand has no actions",
			hand: hand(t, 10, "2c2d3h3s4c"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(tt.hand)
			}
			got := tt.hand.ValidActions()
			if !slices.Equal(got, tt.want) {
				t.Errorf("ValidActions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCardsReturnsCopy(t *testing.T) {
	t.Parallel()
	h := hand(t, 10, "Th9d")
	cards := h.Cards()
	cards[0] = deck.MustParseCards("2c")[0]
	if got := h.Cards()[0]; got != deck.MustParseCards("Th")[0] {
		t.Errorf("mutating the returned slice changed the hand: %s", got)
	}
}

func TestIsPair(t *testing.T) {
	t.Parallel()
	if !hand(t, 10, "8h8c").IsPair() {
		t.Error("matching ranks should be a pair")
	}
	if hand(t, 10, "8h9c").IsPair() {
		t.Error("mismatched ranks should not be a pair")
	}
	if hand(t, 10, "8h8c8d").IsPair() {
		t.Error("three cards should not be a pair")
	}
	// Suits are irrelevant, only ranks are compared.
	if !hand(t, 10, "KhKc").IsPair() {
		t.Error("two kings should be a pair")
	}
}
