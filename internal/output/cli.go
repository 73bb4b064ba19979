package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/appdiet/appdiet/internal/model"
	"github.com/appdiet/appdiet/internal/usage"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// AppName formats a tracked app's display name in its brand color.
func (c *CLIFormatter) AppName(app model.TrackedApp) string {
	if c.IsColorEnabled() {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(app.Color)).Render(app.DisplayName)
	}
	return app.DisplayName
}

// Streak formats a signed streak, green for kept goals and red for
// failed ones.
func (c *CLIFormatter) Streak(streak int) string {
	text := model.Snapshot{Streak: streak}.StreakText()
	if !c.IsColorEnabled() {
		return text
	}
	if streak > 0 {
		return styleSuccess.Render(text)
	}
	if streak < 0 {
		return styleError.Render(text)
	}
	return styleMuted.Render(text)
}

// PrintSnapshots prints the per-app status table plus the total row.
func (c *CLIFormatter) PrintSnapshots(list *model.SnapshotList) {
	if list == nil || len(list.Snapshots) == 0 {
		c.Muted("No usage data yet.")
		c.Muted("Run 'appdiet check' or start the daemon to collect usage.")
		return
	}

	rows := make([]TableRow, 0, len(list.Snapshots)+1)
	for _, snap := range list.Snapshots {
		name := snap.AppID
		if app, ok := model.AppByID(snap.AppID); ok {
			name = c.AppName(app)
		}
		rows = append(rows, TableRow{Columns: []string{
			name,
			FormatMinutes(snap.TodayMinutes),
			goalColumn(snap.GoalMinutes),
			percentColumn(snap),
			c.Streak(snap.Streak),
		}})
	}
	rows = append(rows, TableRow{Columns: []string{
		"Total",
		FormatMinutes(list.TotalMinutes),
		goalColumn(list.TotalGoal),
		"",
		"",
	}})

	c.PrintTable([]string{"App", "Today", "Goal", "Used", "Streak"}, rows)
	c.Println()
	c.Muted("As of " + FormatTimeShort(list.TakenAt))
}

func goalColumn(goal int) string {
	if goal <= 0 {
		return "-"
	}
	return FormatMinutes(goal)
}

func percentColumn(snap model.Snapshot) string {
	if snap.GoalMinutes <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%% %s", snap.Percentage(), ProgressBar(snap.Percentage(), 10))
}

// DayMarker renders a single calendar day as a colored marker.
func (c *CLIFormatter) DayMarker(status model.DayStatus) string {
	var marker string
	var style lipgloss.Style
	switch status {
	case model.DayFail:
		marker, style = "✗", styleError
	case model.DayWarning:
		marker, style = "△", styleWarning
	default:
		marker, style = "●", styleSuccess
	}
	if c.IsColorEnabled() {
		return style.Render(marker)
	}
	return marker
}

// PrintCalendar prints day records as a compact list plus month stats.
func (c *CLIFormatter) PrintCalendar(records []usage.DayRecord, stats usage.MonthStats) {
	if len(records) == 0 {
		c.Muted("No recorded days yet.")
		return
	}

	for _, rec := range records {
		c.Printf("%s  %s  %s / %s\n",
			c.DayMarker(rec.Status), rec.Date,
			FormatMinutes(rec.Minutes), FormatMinutes(rec.Goal))
	}

	c.Println()
	c.Printf("%s: %d kept, %d failed (%d recorded)\n",
		stats.Month, stats.Kept, stats.Failed, stats.Recorded)
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return bar
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	// Print headers
	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], h))
	}
	c.Println(styleBold.Render(headerLine.String()))

	// Print separator
	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(sep.String())

	// Print rows
	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				pad := widths[i] - lipgloss.Width(col)
				if pad < 0 {
					pad = 0
				}
				rowLine.WriteString(col + strings.Repeat(" ", pad) + "  ")
			}
		}
		c.Println(rowLine.String())
	}
}
