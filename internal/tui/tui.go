package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// promptKind tells the model what the input line currently means.
type promptKind int

const (
	promptMenu promptKind = iota
	promptWager
	promptAction
)

// Model represents the Bubble Tea model for the blackjack table
type Model struct {
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog      []string
	actionResult chan ActionResult
	quitSignal   chan bool
	quitting     bool
	focusedPane  int // 0 = log viewport, 1 = input

	// Display state, updated by the bridge as the session progresses
	prompt       promptKind
	bankroll     game.BankrollView
	hand         game.HandView
	dealer       game.DealerView
	valid        []game.Action
	defaultWager int
	acting       bool

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode support
	testMode    bool
	capturedLog []string
}

// ActionResult represents one line of user input after parsing
type ActionResult struct {
	Action   string
	Args     []string
	Continue bool
	Error    error
}

// QuitMsg signals the program to exit
type QuitMsg struct{}

// NewModel creates a new TUI model
func NewModel(logger *log.Logger) *Model {
	return NewModelWithOptions(logger, false)
}

// NewModelWithOptions creates a new TUI model with the given options
func NewModelWithOptions(logger *log.Logger, testMode bool) *Model {
	// Initialize text input
	ti := textinput.New()
	ti.Placeholder = "Press Enter to deal a round"
	ti.Focus()
	ti.CharLimit = 50
	ti.Width = 50

	// Initialize viewport for scrollable log
	vp := viewport.New(80, 20)
	vp.SetContent("Welcome to the table. Place a wager to begin.")

	return &Model{
		logger:       logger.WithPrefix("tui"),
		logViewport:  vp,
		actionInput:  ti,
		gameLog:      []string{"Welcome to the table. Place a wager to begin."},
		actionResult: make(chan ActionResult, 1),
		quitSignal:   make(chan bool, 1),
		focusedPane:  1,
		testMode:     testMode,
		capturedLog:  make([]string, 0),
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.listenForQuit(),
	)
}

// listenForQuit returns a command that listens for quit signals
func (m *Model) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.initialized = true

		// Update viewport dimensions
		headerHeight := 3
		footerHeight := 6
		verticalMargins := headerHeight + footerHeight

		m.logViewport.Width = msg.Width - 4
		m.logViewport.Height = msg.Height - verticalMargins

		// Update the viewport content when resized
		m.updateViewportContent()

	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			// Tell any waiting prompt the user is leaving
			select {
			case m.actionResult <- ActionResult{Action: "quit", Continue: false}:
			default:
			}
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)

		case "tab":
			// Switch between panes
			m.focusedPane = (m.focusedPane + 1) % 2
			if m.focusedPane == 1 {
				m.actionInput.Focus()
			} else {
				m.actionInput.Blur()
			}

		case "enter":
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				m.processInput(input)
			}

		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}

		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}

		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}

		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}

		case "home":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}

		case "end":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	// Update text input if focused
	if m.focusedPane == 1 {
		var cmd tea.Cmd
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Update viewport
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// processInput parses one submitted line and hands it to the waiting prompt
func (m *Model) processInput(input string) {
	parts := strings.Fields(strings.ToLower(input))

	var action string
	var args []string
	if len(parts) > 0 {
		action = parts[0]
		args = parts[1:]
	}

	// Drop the line when no prompt is waiting so the UI loop never blocks
	select {
	case m.actionResult <- ActionResult{Action: action, Args: args, Continue: true}:
	default:
		m.logger.Debug("dropped input, no prompt waiting", "input", input)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return "Thanks for playing!\n"
	}

	if !m.initialized {
		return "Initializing..."
	}

	// Build the layout
	header := m.renderHeader()
	logPane := m.renderLogPane()
	sidebarPane := m.renderSidebarPane()
	actionPane := m.renderActionPane()

	// Combine log and sidebar horizontally
	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		logPane,
		sidebarPane,
	)

	// Stack everything vertically
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		mainContent,
		actionPane,
	)
}

// renderHeader renders the top header bar
func (m *Model) renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1).
		Width(m.width)

	title := fmt.Sprintf("BLACKJACK - %s", m.bankroll.Name)
	return headerStyle.Render(title)
}

// renderLogPane renders the scrollable game log viewport
func (m *Model) renderLogPane() string {
	borderColor := lipgloss.Color("#444444")
	if m.focusedPane == 0 {
		borderColor = lipgloss.Color("#7D56F4")
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(m.width * 2 / 3).
		Height(m.logViewport.Height)

	return logStyle.Render(m.logViewport.View())
}

// renderSidebarPane renders the bankroll and table panel
func (m *Model) renderSidebarPane() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(m.width/3 - 2).
		Height(m.logViewport.Height)

	var content strings.Builder

	content.WriteString(InfoStyle.Render("BANKROLL"))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("%s\n", m.bankroll.Name))
	content.WriteString(fmt.Sprintf("Wagered: $%d\n", m.bankroll.TotalWager))
	content.WriteString(fmt.Sprintf("Net: %s\n", m.formatNet(m.bankroll.ProfitLoss)))

	if m.acting {
		content.WriteString("\n")
		content.WriteString(InfoStyle.Render("TABLE"))
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("Dealer: %s\n", m.formatDealer()))
		content.WriteString(fmt.Sprintf("You: %s (%d)\n", m.formatCards(m.hand.Cards), m.hand.Value))
		content.WriteString(fmt.Sprintf("Wager: $%d\n", m.hand.Wager))
	}

	return sidebarStyle.Render(content.String())
}

// renderActionPane renders the bottom input area
func (m *Model) renderActionPane() string {
	borderColor := lipgloss.Color("#444444")
	if m.focusedPane == 1 {
		borderColor = lipgloss.Color("#7D56F4")
	}

	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(m.width - 2)

	var content strings.Builder

	switch m.prompt {
	case promptMenu:
		m.actionInput.Placeholder = "play, stats, quit (Enter plays a round)"

	case promptWager:
		m.actionInput.Placeholder = fmt.Sprintf("wager amount (Enter wagers $%d)", m.defaultWager)
		content.WriteString(HandInfoStyle.Render(fmt.Sprintf("Place your wager, %s", m.bankroll.Name)))
		content.WriteString("\n")

	case promptAction:
		m.actionInput.Placeholder = "hit (h), stand (s), double (d), split (sp)"
		content.WriteString(HandInfoStyle.Render(fmt.Sprintf("Your hand: %s (%d)   Dealer: %s",
			m.formatCards(m.hand.Cards), m.hand.Value, m.formatDealer())))
		content.WriteString("\n")
		content.WriteString(m.renderAvailableActions())
		content.WriteString("\n")
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑/↓ scroll, PgUp/PgDn page, Home/End jump, Tab back to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab: switch panes • Enter: submit • Ctrl+C: quit"))
	}

	return actionStyle.Render(content.String())
}

// renderAvailableActions shows which actions the table will accept
func (m *Model) renderAvailableActions() string {
	if len(m.hand.Cards) == 0 {
		return ""
	}

	labels := make([]string, 0, len(m.valid))
	for _, action := range m.valid {
		switch action {
		case game.Hit:
			labels = append(labels, "(h)it")
		case game.Stand:
			labels = append(labels, "(s)tand")
		case game.DoubleDown:
			labels = append(labels, "(d)ouble down")
		case game.Split:
			labels = append(labels, "(sp)lit")
		}
	}

	return ActionsStyle.Render("Actions: " + strings.Join(labels, "  "))
}

// formatDealer renders the dealer's cards, masking the hole card while hidden
func (m *Model) formatDealer() string {
	if m.dealer.HoleHidden {
		return fmt.Sprintf("[%s ??] (≥ %d)", m.styleCard(m.dealer.UpCard), m.dealer.Value)
	}
	return fmt.Sprintf("%s (%d)", m.formatCards(m.dealer.Cards), m.dealer.Value)
}

// formatCards renders a bracketed, colorized card list
func (m *Model) formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}

	styled := make([]string, len(cards))
	for i, card := range cards {
		styled[i] = m.styleCard(card)
	}

	return "[" + strings.Join(styled, " ") + "]"
}

// styleCard colorizes a single card by suit
func (m *Model) styleCard(card deck.Card) string {
	if card.Suit.IsRed() {
		return RedCardStyle.Render(card.String())
	}
	return BlackCardStyle.Render(card.String())
}

// formatNet renders a profit/loss amount with its sign and color
func (m *Model) formatNet(amount int) string {
	text := fmt.Sprintf("%+d", amount)
	if amount > 0 {
		return SuccessStyle.Render(text)
	}
	if amount < 0 {
		return ErrorStyle.Render(text)
	}
	return text
}

// updateViewportContent updates the viewport with the current game log
func (m *Model) updateViewportContent() {
	content := strings.Join(m.gameLog, "\n")
	m.logViewport.SetContent(content)
	m.logViewport.GotoBottom()
}

// AddLogEntry adds an entry to the game log
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	// Capture log entries in test mode
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
	}

	// Keep only last 1000 entries to prevent unbounded growth
	if len(m.gameLog) > 1000 {
		m.gameLog = m.gameLog[len(m.gameLog)-1000:]
	}

	m.updateViewportContent()
}

// SetMenuPrompt marks the input line as the session menu
func (m *Model) SetMenuPrompt() {
	m.prompt = promptMenu
	m.acting = false
}

// SetWagerPrompt asks for the round's opening wager
func (m *Model) SetWagerPrompt(bankroll game.BankrollView, defaultWager int) {
	m.prompt = promptWager
	m.bankroll = bankroll
	m.defaultWager = defaultWager
	m.acting = false
}

// SetActionPrompt shows the decision context for the hand in play
func (m *Model) SetActionPrompt(view game.TableView) {
	m.prompt = promptAction
	m.hand = view.Hand
	m.dealer = view.Dealer
	m.bankroll = view.Bankroll
	m.valid = view.Valid
	m.acting = true
}

// WaitForAction blocks until the user provides input
func (m *Model) WaitForAction() ActionResult {
	return <-m.actionResult
}

// SendQuitSignal signals the TUI to quit
func (m *Model) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
		// Channel full or closed
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	return m.capturedLog
}

// IsTestMode returns whether the model is in test mode
func (m *Model) IsTestMode() bool {
	return m.testMode
}

// InjectAction injects an action result for testing
func (m *Model) InjectAction(action string, args ...string) {
	if !m.testMode {
		return
	}
	m.actionResult <- ActionResult{
		Action:   action,
		Args:     args,
		Continue: true,
	}
}
