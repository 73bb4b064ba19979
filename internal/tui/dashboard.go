package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appdiet/appdiet/internal/engine"
	"github.com/appdiet/appdiet/internal/errors"
	"github.com/appdiet/appdiet/internal/model"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// passDoneMsg is sent when a manual evaluation pass finishes.
type passDoneMsg struct {
	fired int
	err   error
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	snapshots *model.SnapshotList

	service *engine.Service

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time
	checking   bool

	// Configuration
	refreshInterval time.Duration
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Service         *engine.Service
	RefreshInterval time.Duration
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = 5 * time.Second
	}

	return &DashboardModel{
		service:         config.Service,
		refreshInterval: config.RefreshInterval,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Clear expired messages
		if !m.messageExp.IsZero() && time.Now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		m.loadData()
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil

	case passDoneMsg:
		m.checking = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.setMessage(fmt.Sprintf("Check complete, %d alert(s) fired", msg.fired), 3*time.Second)
			m.loadData()
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		m.loadData()
		m.setMessage("Refreshed", time.Second)
		return m, nil

	case "c":
		if m.checking {
			return m, nil
		}
		m.checking = true
		m.setMessage("Running check...", 10*time.Second)
		return m, m.passCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	sections = append(sections, m.renderSnapshots())
	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Appdiet Dashboard")
	now := time.Now().Format("Mon Jan 2, 15:04:05")
	timeStr := StyleSubtitle.Render(now)

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", timeStr) + "\n"
}

// renderSnapshots renders the per-app usage boxes.
func (m *DashboardModel) renderSnapshots() string {
	if m.snapshots == nil || len(m.snapshots.Snapshots) == 0 {
		return StyleSnapshotBox.Render(StyleSubtitle.Render("No usage data yet. Press c to run a check."))
	}

	var lines []string
	for _, snap := range m.snapshots.Snapshots {
		lines = append(lines, m.renderSnapshot(snap))
	}

	total := fmt.Sprintf("Total  %s", formatMinutes(m.snapshots.TotalMinutes))
	if m.snapshots.TotalGoal > 0 {
		total += fmt.Sprintf(" / %s", formatMinutes(m.snapshots.TotalGoal))
	}
	lines = append(lines, "", total)
	lines = append(lines, StyleSubtitle.Render("As of "+m.snapshots.TakenAt.Format("15:04")))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	for _, snap := range m.snapshots.Snapshots {
		if snap.GoalMinutes > 0 && snap.TodayMinutes > snap.GoalMinutes {
			return StyleOverBox.Render(content)
		}
	}
	return StyleSnapshotBox.Render(content)
}

// renderSnapshot renders one app's usage line.
func (m *DashboardModel) renderSnapshot(snap model.Snapshot) string {
	name := snap.AppID
	var nameStyle lipgloss.Style
	if app, ok := model.AppByID(snap.AppID); ok {
		name = app.DisplayName
		nameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(app.Color))
	}

	line := fmt.Sprintf("%-12s %8s", nameStyle.Render(name), formatMinutes(snap.TodayMinutes))
	if snap.GoalMinutes > 0 {
		line += fmt.Sprintf(" / %-8s %s %3.0f%%",
			formatMinutes(snap.GoalMinutes),
			ProgressBar(snap.Percentage(), 20),
			snap.Percentage())
	}

	streak := snap.StreakText()
	switch {
	case snap.Streak > 0:
		streak = StyleSuccess.Render(streak)
	case snap.Streak < 0:
		streak = StyleError.Render(streak)
	default:
		streak = StyleSubtitle.Render(streak)
	}

	return line + "  " + streak
}

// loadData reloads the latest snapshot from storage.
func (m *DashboardModel) loadData() {
	list, err := m.service.LatestSnapshot()
	if err != nil {
		m.err = err
		return
	}
	m.snapshots = list
	m.err = nil
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// passCmd runs an evaluation pass off the UI loop.
func (m *DashboardModel) passCmd() tea.Cmd {
	return func() tea.Msg {
		events, err := m.service.RunPass(context.Background())
		if err != nil && errors.Is(err, errors.ErrPassInProgress) {
			err = nil
		}
		return passDoneMsg{fired: len(events), err: err}
	}
}

// formatMinutes renders a minute count as "1h 05m" or "45m".
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	model := NewDashboardModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
