package session

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// DefaultDecks is the shoe size used when the config does not say otherwise.
const DefaultDecks = 6

// MenuChoice selects the next session activity.
type MenuChoice int

const (
	PlayRound MenuChoice = iota
	ViewStats
	Exit
)

func (c MenuChoice) String() string {
	return [...]string{"play round", "view stats", "exit"}[c]
}

// Report is a point-in-time view of the session for the stats screen.
type Report struct {
	PlayerName   string
	TotalWager   int
	ProfitLoss   int
	RoundsPlayed int
	Stats        *statistics.Statistics
	StartedAt    time.Time
	Elapsed      time.Duration
}

// UI supplies menu choices and renders session output. Calls block until the
// player responds; io.EOF from the menu ends the session like choosing Exit.
type UI interface {
	NextMenuChoice() (MenuChoice, error)
	ShowReport(report Report)
	ShowMessage(text string)
}

// Config holds configuration for an interactive session
type Config struct {
	PlayerName string
	Decks      int
	Seed       int64
	Logger     *log.Logger
	Clock      quartz.Clock
	Events     game.EventBus
}

// Session owns the player across rounds and runs the outer menu loop. Each
// round plays from a fresh shoe seeded off the session seed, so the shoe is
// never reused across rounds.
type Session struct {
	player    *game.Player
	agent     game.Agent
	ui        UI
	decks     int
	seed      int64
	logger    *log.Logger
	clock     quartz.Clock
	events    game.EventBus
	stats     *statistics.Statistics
	rounds    int
	startedAt time.Time
}

// New creates a session for the named player.
func New(cfg Config, agent game.Agent, ui UI) *Session {
	if agent == nil {
		panic("agent is required for a session")
	}
	if ui == nil {
		panic("ui is required for a session")
	}
	if cfg.Decks < 1 {
		cfg.Decks = DefaultDecks
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Events == nil {
		cfg.Events = game.NewEventBus()
	}
	return &Session{
		player: game.NewPlayer(cfg.PlayerName),
		agent:  agent,
		ui:     ui,
		decks:  cfg.Decks,
		seed:   cfg.Seed,
		logger: cfg.Logger.WithPrefix("session"),
		clock:  cfg.Clock,
		events: cfg.Events,
		stats:  &statistics.Statistics{},
	}
}

// Player returns the session's player ledger.
func (s *Session) Player() *game.Player {
	return s.player
}

// RoundsPlayed returns the number of rounds settled so far.
func (s *Session) RoundsPlayed() int {
	return s.rounds
}

// Run drives the menu loop until the player exits or input ends. Round
// failures other than end of input abort that round and return to the menu.
func (s *Session) Run() error {
	s.startedAt = s.clock.Now()
	s.logger.Info("session started", "player", s.player.Name, "decks", s.decks, "seed", s.seed)

	for {
		choice, err := s.ui.NextMenuChoice()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.finish()
				return nil
			}
			return fmt.Errorf("reading menu choice: %w", err)
		}

		switch choice {
		case PlayRound:
			if err := s.playRound(); err != nil {
				if errors.Is(err, io.EOF) {
					s.finish()
					return nil
				}
				s.logger.Error("round aborted", "error", err)
				s.ui.ShowMessage(fmt.Sprintf("Round aborted: %v", err))
			}
		case ViewStats:
			s.ui.ShowReport(s.Report())
		case Exit:
			s.finish()
			return nil
		default:
			s.logger.Warn("unknown menu choice", "choice", int(choice))
		}
	}
}

// playRound plays one round against a fresh shoe.
func (s *Session) playRound() error {
	roundSeed := randutil.RoundSeed(s.seed, s.rounds)
	shoe, err := deck.NewShoe(randutil.New(roundSeed), s.decks)
	if err != nil {
		return fmt.Errorf("building shoe: %w", err)
	}

	start := s.clock.Now()
	round := game.NewRound(s.player, shoe, s.agent, s.events, s.logger)
	result, err := round.Play()
	if err != nil {
		return err
	}

	s.rounds++
	record := RecordFromResult(result, roundSeed)
	s.stats.Add(record)
	s.logger.Debug("round complete",
		"rounds", s.rounds,
		"net", record.Net,
		"hands", record.Hands,
		"duration", s.clock.Since(start))
	return nil
}

// Report assembles the stats view.
func (s *Session) Report() Report {
	return Report{
		PlayerName:   s.player.Name,
		TotalWager:   s.player.TotalWager(),
		ProfitLoss:   s.player.ProfitLoss(),
		RoundsPlayed: s.rounds,
		Stats:        s.stats,
		StartedAt:    s.startedAt,
		Elapsed:      s.clock.Since(s.startedAt),
	}
}

func (s *Session) finish() {
	if s.rounds > 0 {
		if err := s.stats.Validate(); err != nil {
			s.logger.Error("statistics validation failed", "error", err)
		}
	}
	s.logger.Info("session over",
		"player", s.player.Name,
		"rounds", s.rounds,
		"wagered", s.player.TotalWager(),
		"net", s.player.ProfitLoss(),
		"elapsed", s.clock.Since(s.startedAt))
}

// RecordFromResult converts a settled round into a statistics record. Net is
// the sum over hands of winnings minus that hand's final wager.
func RecordFromResult(result *game.RoundResult, seed int64) statistics.RoundRecord {
	record := statistics.RoundRecord{
		Hands:      len(result.Hands),
		Split:      result.Split,
		Doubled:    result.Doubled,
		DealerBust: result.Dealer.Busted(),
		Seed:       seed,
	}
	for _, h := range result.Hands {
		record.Wagered += h.Hand.Wager()
		record.Net += float64(h.Winnings - h.Hand.Wager())
		switch h.Outcome {
		case game.Win:
			record.Wins++
		case game.Loss:
			record.Losses++
		case game.Push:
			record.Pushes++
		}
	}
	return record
}
