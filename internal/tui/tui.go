package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/session"
)

// TUIModel is the Bubble Tea model for coaching one side of a game.
type TUIModel struct {
	session *session.Session
	logger  *log.Logger
	save    func(*session.Session) error

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog     []string
	scoreboard  session.Scoreboard
	prompt      *session.Prompt
	status      string
	statusErr   bool
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode      bool
	capturedLog   []string
	eventCallback func(eventType string)
}

// NewTUIModel creates a model for a started session.
func NewTUIModel(s *session.Session, logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(s, logger, false)
}

// NewTUIModelWithOptions creates a model with test mode option. Test mode
// captures log entries and skips viewport updates.
func NewTUIModelWithOptions(s *session.Session, logger *log.Logger, testMode bool) *TUIModel {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &TUIModel{
		session:     s,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		gameLog:     []string{},
		focusedPane: 1,
		testMode:    testMode,
		capturedLog: []string{},
	}
	for _, d := range s.Drives() {
		for _, p := range d.Plays {
			m.AddLogEntry(m.formatPlay(p))
		}
		m.AddLogEntry(m.formatDrive(d))
	}
	m.apply(s.State())
	return m
}

// SetSaveFunc enables the save command.
func (m *TUIModel) SetSaveFunc(save func(*session.Session) error) {
	m.save = save
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				quit := m.HandleInput(m.actionInput.Value())
				m.actionInput.SetValue("")
				if quit {
					m.quitting = true
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// HandleInput runs one typed command and reports whether the user asked to
// quit. With the ball, play calls go to the session; otherwise Enter runs
// the next play.
func (m *TUIModel) HandleInput(input string) bool {
	fields := strings.Fields(strings.ToLower(input))
	cmd := ""
	if len(fields) > 0 {
		cmd = fields[0]
	}

	var (
		u   session.Update
		err error
	)
	switch cmd {
	case "quit", "q", "exit":
		return true
	case "help", "h", "?":
		m.AddLogEntry(InfoStyle.Render(helpText))
		return false
	case "save":
		m.doSave()
		return false
	case "drive", "d":
		u, err = m.session.AutoDrive()
	case "end", "sim":
		u, err = m.session.ToEnd()
	case "next", "n":
		u, err = m.session.AutoPlays(1)
	default:
		if m.prompt == nil {
			if cmd != "" {
				m.setStatus(fmt.Sprintf("%q: waiting for your ball. Enter runs the next play, 'drive' finishes the drive.", cmd), true)
				return false
			}
			u, err = m.session.AutoPlays(1)
			break
		}
		call, perr := football.ParseCall(cmd)
		if perr != nil {
			m.setStatus(fmt.Sprintf("Unknown call %q. Try run, pass, punt, fg or auto.", cmd), true)
			return false
		}
		u, err = m.session.Submit(call)
	}

	if err != nil {
		switch {
		case errors.Is(err, football.ErrGameOver):
			m.setStatus("The game is over. Type quit to exit.", true)
		case errors.Is(err, session.ErrNotYourBall):
			m.setStatus("You are on defense.", true)
		default:
			m.logger.Error("Session failed", "error", err)
			m.setStatus(err.Error(), true)
		}
		return false
	}
	m.apply(u)
	return false
}

const helpText = `Commands:
  run | r, pass | p, punt, fg, auto | a   call the next play (your ball)
  Enter | next                            run the next play
  drive                                   finish the current drive
  end                                     simulate to the final whistle
  save                                    save the game
  quit                                    exit`

// apply records an update from the session.
func (m *TUIModel) apply(u session.Update) {
	for _, p := range u.Plays {
		m.AddLogEntry(m.formatPlay(p))
		m.notifyEventCallback("play")
	}
	for _, d := range u.Drives {
		m.AddLogEntry(m.formatDrive(d))
		m.notifyEventCallback("drive")
	}
	if u.Scoreboard.Final && !m.scoreboard.Final {
		m.AddBoldLogEntry(finalLine(u.Scoreboard))
		m.notifyEventCallback("final")
	}
	m.scoreboard = u.Scoreboard
	m.prompt = u.Prompt
	m.status = ""
	m.statusErr = false
}

func (m *TUIModel) doSave() {
	if m.save == nil {
		m.setStatus("No save file configured (use --save).", true)
		return
	}
	if err := m.save(m.session); err != nil {
		m.setStatus(fmt.Sprintf("Save failed: %v", err), true)
		return
	}
	m.setStatus("Game saved.", false)
}

func (m *TUIModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
	if m.testMode {
		m.capturedLog = append(m.capturedLog, s)
	}
}

func (m *TUIModel) formatPlay(p football.Play) string {
	situation := fmt.Sprintf("%d&%d %s", p.Down, p.ToGo, FieldPosition(p.Position))
	when := p.Period()
	if p.Overtime == 0 {
		when += " " + clock(p.SecondsLeft)
	}
	line := fmt.Sprintf("%-8s %-11s %s", when, situation, p.Description)
	if p.Offense == m.session.Human() {
		line = "* " + line
	} else {
		line = "  " + line
	}
	switch p.Result {
	case football.ResultTouchdown, football.ResultFieldGoalGood, football.ResultSafety:
		return SuccessStyle.Render(line)
	case football.ResultInterception, football.ResultFumble:
		return ErrorStyle.Render(line)
	}
	if p.FirstDown {
		return GameLogStyle.Render(line) + ActionsStyle.Render(" 1ST")
	}
	return GameLogStyle.Render(line)
}

func (m *TUIModel) formatDrive(d football.Drive) string {
	g := m.session.Game()
	team := g.Teams[d.Offense].Name
	el := d.Elapsed()
	return DriveStyle.Render(fmt.Sprintf("-- %s: %s, %d plays, %d yards, %d:%02d  (%d-%d)",
		team, strings.ReplaceAll(string(d.Result), "_", " "), len(d.Plays), d.Yards(), el/60, el%60,
		d.Score[football.Home], d.Score[football.Away]))
}

func finalLine(sb session.Scoreboard) string {
	s := fmt.Sprintf("FINAL: %s %d, %s %d", sb.Teams[0], sb.Score[0], sb.Teams[1], sb.Score[1])
	if strings.HasPrefix(sb.Period, "OT") {
		s += " (" + sb.Period + ")"
	}
	return s
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight-2, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-actionHeight-4, 1)
	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderSidebarPane shows the scoreboard.
func (m *TUIModel) renderSidebarPane() string {
	sb := m.scoreboard
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(fmt.Sprintf(" %s  %s ", sb.Period, sb.Clock)))
	b.WriteString("\n\n")
	for side := range 2 {
		marker := "  "
		if sb.Ball != nil && int(*sb.Ball) == side {
			marker = "> "
		}
		name := sb.Teams[side]
		if football.Side(side) == m.session.Human() {
			name += " (you)"
		}
		b.WriteString(ScoreStyle.Render(fmt.Sprintf("%s%-20s %3d", marker, name, sb.Score[side])))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case sb.Final:
		b.WriteString(SuccessStyle.Render("Final"))
	case sb.Ball != nil:
		b.WriteString(PlayerInfoStyle.Render(fmt.Sprintf("%s and %d at %s", ordinal(sb.Down), sb.ToGo, FieldPosition(sb.Position))))
	}
	b.WriteString("\n")

	if p := m.prompt; p != nil {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(fmt.Sprintf("FG chance: %.0f%%", p.FieldGoalChance*100)))
		b.WriteString("\n")
		if p.PointsNeeded > 0 {
			b.WriteString(WarningStyle.Render(fmt.Sprintf("Need %d points", p.PointsNeeded)))
			b.WriteString("\n")
		}
		if p.Advice != "" {
			b.WriteString(InfoStyle.Render(fmt.Sprintf("Book says: %s", p.Advice)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderActionPane renders the action input pane
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	switch {
	case m.scoreboard.Final:
		content.WriteString(SituationStyle.Render("Game over."))
		m.actionInput.Placeholder = "quit to exit"
	case m.prompt != nil:
		content.WriteString(SituationStyle.Render(fmt.Sprintf("Your ball: %s and %d at %s",
			ordinal(m.prompt.Down), m.prompt.ToGo, FieldPosition(m.prompt.Position))))
		content.WriteString("\n")
		content.WriteString(m.renderAvailableCalls())
		m.actionInput.Placeholder = "run, pass, punt, fg, auto"
	default:
		content.WriteString(SituationStyle.Render("Opponent has the ball."))
		m.actionInput.Placeholder = "Enter for next play, 'drive' to finish the drive"
	}
	content.WriteString("\n")

	if m.status != "" {
		style := SuccessStyle
		if m.statusErr {
			style = ErrorStyle
		}
		content.WriteString(style.Render(m.status))
		content.WriteString("\n")
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • help for commands • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	}
	content.WriteString(InfoStyle.Render(help))
	return content.String()
}

func (m *TUIModel) renderAvailableCalls() string {
	var calls []string
	for _, c := range m.prompt.Calls {
		style := SuccessStyle
		if c == m.prompt.Advice {
			style = WarningStyle
		}
		calls = append(calls, style.Render("["+strings.ReplaceAll(string(c), "_", " ")+"]"))
	}
	return ActionsStyle.Render("Calls: " + strings.Join(calls, " "))
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// AddBoldLogEntry appends a bold entry to the game log.
func (m *TUIModel) AddBoldLogEntry(entry string) {
	bold := lipgloss.NewStyle().Bold(true).Render(entry)
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		m.gameLog = append(m.gameLog, bold)
		return
	}
	m.AddLogEntry(bold)
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}

// SetEventCallback sets a callback invoked for each play, drive and final
// whistle in test mode.
func (m *TUIModel) SetEventCallback(callback func(eventType string)) {
	if m.testMode {
		m.eventCallback = callback
	}
}

func (m *TUIModel) notifyEventCallback(eventType string) {
	if m.testMode && m.eventCallback != nil {
		m.eventCallback(eventType)
	}
}

// Run starts the interactive program and blocks until the user quits.
func Run(m *TUIModel) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// FieldPosition renders a spot on the offense's scale as "own 25", "opp 30"
// or "50".
func FieldPosition(pos int) string {
	switch {
	case pos == 50:
		return "50"
	case pos < 50:
		return fmt.Sprintf("own %d", pos)
	default:
		return fmt.Sprintf("opp %d", 100-pos)
	}
}

func clock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func ordinal(down int) string {
	switch down {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", down)
	}
}
