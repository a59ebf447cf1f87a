package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/session"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs an interactive session in the terminal
type PlayCmd struct {
	Config   string `kong:"short='c',default='blackjack.hcl',help='Path to HCL configuration file'"`
	Name     string `kong:"short='n',help='Player name (overrides config)'"`
	Wager    int    `kong:"short='w',help='Default wager per round (overrides config)'"`
	Decks    int    `kong:"help='Decks in the shoe (overrides config)'"`
	Seed     int64  `kong:"help='Deterministic shoe seed (0 for random)'"`
	LogLevel string `kong:"short='l',help='Log level (overrides config)'"`
	LogFile  string `kong:"help='Log file path (the TUI owns the terminal)'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Apply command line overrides
	if c.Name != "" {
		cfg.Player.Name = c.Name
	}
	if c.Wager > 0 {
		cfg.Player.DefaultWager = c.Wager
	}
	if c.Decks > 0 {
		cfg.Table.Decks = c.Decks
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// The TUI owns the terminal, so logs go to a file or nowhere
	logger, logFile, err := shared.SetupFileLogger(c.LogFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer func() { _ = logFile.Close() }()
	}

	logger.Info("starting blackjack",
		"player", cfg.Player.Name,
		"decks", cfg.Table.Decks,
		"seed", seed,
		"config", c.Config)

	events := game.NewEventBus()
	model := tui.NewModel(logger)
	bridge := tui.NewBridge(model, events, cfg.Player.DefaultWager, logger)

	sess := session.New(session.Config{
		PlayerName: cfg.Player.Name,
		Decks:      cfg.Table.Decks,
		Seed:       seed,
		Logger:     logger,
		Events:     events,
	}, bridge, bridge)

	program := tea.NewProgram(model, tea.WithAltScreen())

	model.AddLogEntry(fmt.Sprintf("=== Blackjack: %s takes a seat ===", cfg.Player.Name))
	model.AddLogEntry(fmt.Sprintf("Shoe: %d decks, default wager $%d", cfg.Table.Decks, cfg.Player.DefaultWager))
	model.AddLogEntry("Enter plays a round. Type help for commands.")
	model.AddLogEntry("")

	// The session drives the bridge's prompts; the TUI loop owns the screen
	go func() {
		if err := sess.Run(); err != nil {
			logger.Error("session failed", "error", err)
		}
		model.SendQuitSignal()
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
