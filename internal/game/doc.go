// Package game implements the core blackjack game logic.
//
// The main type is Round, which manages a single round of play from wager
// through dealing, player actions, the dealer turn and settlement.
//
// # Basic Usage
//
// Create and run a round against a scripted agent:
//
//	rng := randutil.New(42)
//	shoe, _ := deck.NewShoe(rng, 6)
//	player := game.NewPlayer("Alice")
//	agent := &game.ScriptedAgent{Wagers: []int{100}, Actions: []game.Action{game.Stand}}
//	round := game.NewRound(player, shoe, agent, nil, nil)
//	result, err := round.Play()
//
// # Deterministic Testing
//
// Rounds draw every card from the injected Shoe, which in turn draws from an
// injected *rand.Rand, so a fixed seed replays the identical sequence of
// deals. ScriptedAgent supplies canned wagers and actions for tests.
//
// # Architecture
//
// Round delegates responsibilities to specialized components:
//   - Hand: Card collection, greedy ace valuation and the action rules
//   - Player: The wager and profit/loss ledger across a session
//   - Agent: Supplies wagers and actions from a human or a strategy
//   - deck.Shoe: Uniform draws without replacement from N combined decks
//
// Everything is single threaded; a Round and its collaborators must be
// confined to one goroutine.
package game
