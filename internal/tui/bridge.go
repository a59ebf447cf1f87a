package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/session"
)

// Bridge connects a running session to the TUI model. It answers the
// session's menu, wager and action prompts from user input, and mirrors
// game events into the scrolling log.
type Bridge struct {
	tui          *Model
	formatter    *game.EventFormatter
	defaultWager int
	logger       *log.Logger
}

// NewBridge creates a bridge and subscribes it to the game's event bus
func NewBridge(tui *Model, events game.EventBus, defaultWager int, logger *log.Logger) *Bridge {
	bridge := &Bridge{
		tui: tui,
		formatter: game.NewEventFormatter(game.FormattingOptions{
			ShowHoleCard: false,
			ShowValues:   true,
		}),
		defaultWager: defaultWager,
		logger:       logger.WithPrefix("bridge"),
	}

	events.Subscribe(bridge)

	return bridge
}

// OnEvent implements game.EventSubscriber, relaying events to the log pane
func (b *Bridge) OnEvent(event game.GameEvent) {
	line := b.formatter.Format(event)
	if line == "" {
		return
	}
	b.tui.AddLogEntry(line)
}

// NextMenuChoice implements session.UI, reading the next menu command
func (b *Bridge) NextMenuChoice() (session.MenuChoice, error) {
	b.tui.SetMenuPrompt()

	for {
		result := b.tui.WaitForAction()
		if !result.Continue {
			return session.Exit, io.EOF
		}

		switch result.Action {
		case "play", "p", "deal", "":
			return session.PlayRound, nil
		case "stats", "st":
			return session.ViewStats, nil
		case "quit", "q", "exit":
			return session.Exit, io.EOF
		case "help", "?":
			b.showHelp()
		default:
			b.tui.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("Unknown command %q", result.Action)))
			b.showHelp()
		}
	}
}

// NextWager implements game.Agent, reading the round's opening wager
func (b *Bridge) NextWager(bankroll game.BankrollView) (int, error) {
	b.tui.SetWagerPrompt(bankroll, b.defaultWager)

	for {
		result := b.tui.WaitForAction()
		if !result.Continue {
			return 0, io.EOF
		}

		if result.Action == "" {
			return b.defaultWager, nil
		}

		wager, err := strconv.Atoi(result.Action)
		if err != nil || wager <= 0 {
			b.tui.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("Invalid wager %q: enter a positive amount", result.Action)))
			continue
		}

		return wager, nil
	}
}

// NextAction implements game.Agent, reading the decision for the hand in play
func (b *Bridge) NextAction(view game.TableView) (game.Action, error) {
	b.tui.SetActionPrompt(view)

	for {
		result := b.tui.WaitForAction()
		if !result.Continue {
			return game.Stand, io.EOF
		}

		action, ok := parseAction(result.Action)
		if !ok {
			b.tui.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("Unknown action %q. Valid actions: %s",
				result.Action, formatValidActions(view.Valid))))
			continue
		}

		if !actionIsValid(action, view.Valid) {
			b.tui.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("Can't %s right now. Valid actions: %s",
				action, formatValidActions(view.Valid))))
			continue
		}

		return action, nil
	}
}

// ShowReport implements session.UI, printing the session ledger to the log
func (b *Bridge) ShowReport(report session.Report) {
	for _, line := range reportLines(report) {
		b.tui.AddLogEntry(line)
	}
}

// ShowMessage implements session.UI
func (b *Bridge) ShowMessage(text string) {
	b.tui.AddLogEntry(WarningStyle.Render(text))
}

// showHelp prints the menu commands to the log pane
func (b *Bridge) showHelp() {
	b.tui.AddLogEntry(InfoStyle.Render("Commands:"))
	b.tui.AddLogEntry(InfoStyle.Render("  play (p)   deal a round"))
	b.tui.AddLogEntry(InfoStyle.Render("  stats (st) show session stats"))
	b.tui.AddLogEntry(InfoStyle.Render("  quit (q)   leave the table"))
	b.tui.AddLogEntry(InfoStyle.Render("During a round: hit (h), stand (s), double (d), split (sp)"))
}

// parseAction maps user input to a game action
func parseAction(input string) (game.Action, bool) {
	switch input {
	case "hit", "h":
		return game.Hit, true
	case "stand", "s":
		return game.Stand, true
	case "double", "dd", "d":
		return game.DoubleDown, true
	case "split", "sp":
		return game.Split, true
	default:
		return game.Stand, false
	}
}

// actionIsValid reports whether the table will accept the action
func actionIsValid(action game.Action, valid []game.Action) bool {
	for _, v := range valid {
		if v == action {
			return true
		}
	}
	return false
}

// formatValidActions renders the accepted actions for an error message
func formatValidActions(valid []game.Action) string {
	names := make([]string, len(valid))
	for i, action := range valid {
		names[i] = action.String()
	}
	return strings.Join(names, ", ")
}

// reportLines formats a session report for the log pane
func reportLines(report session.Report) []string {
	lines := []string{
		HandInfoStyle.Render(fmt.Sprintf("*** SESSION STATS: %s ***", report.PlayerName)),
		fmt.Sprintf("Rounds played: %d", report.RoundsPlayed),
		fmt.Sprintf("Total wagered: $%d", report.TotalWager),
		fmt.Sprintf("Net result: %s", formatSigned(report.ProfitLoss)),
		fmt.Sprintf("Time at table: %s", report.Elapsed.Round(time.Second)),
	}

	if stats := report.Stats; stats != nil && stats.HandsSettled > 0 {
		lines = append(lines,
			fmt.Sprintf("Hands: %d won (%.1f%%), %d lost, %d pushed",
				stats.Wins, stats.WinRate()*100, stats.Losses, stats.Pushes),
			fmt.Sprintf("Splits: %d, doubles: %d, dealer busts: %d",
				stats.SplitRounds, stats.DoubledRounds, stats.DealerBusts),
			fmt.Sprintf("Biggest round: %s / %s",
				formatSigned(int(stats.BiggestWin)), formatSigned(int(stats.BiggestLoss))),
			fmt.Sprintf("Streaks: best %+d, worst %+d", stats.BestStreak, stats.WorstStreak),
		)
	}

	return lines
}

// formatSigned renders a signed dollar amount with win/loss coloring
func formatSigned(amount int) string {
	text := fmt.Sprintf("$%+d", amount)
	if amount > 0 {
		return SuccessStyle.Render(text)
	}
	if amount < 0 {
		return ErrorStyle.Render(text)
	}
	return text
}

var _ session.UI = (*Bridge)(nil)
var _ game.Agent = (*Bridge)(nil)
var _ game.EventSubscriber = (*Bridge)(nil)
