package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/appdiet/appdiet/internal/errors"
	"github.com/appdiet/appdiet/internal/model"
	"github.com/appdiet/appdiet/internal/output"
	"github.com/appdiet/appdiet/internal/parser"
	"github.com/appdiet/appdiet/internal/usage"
)

// Calendar command flags.
var calendarFlagApp string

// calendarCmd represents the calendar command.
var calendarCmd = &cobra.Command{
	Use:     "calendar [MONTH]",
	Aliases: []string{"cal", "history"},
	Short:   "Show the success calendar",
	Long: `Show past days as kept, warning, or failed against your goals.

Without --app the aggregate across all tracked apps is shown. The month
argument accepts natural language ("last month", "june") and defaults
to the current month.

Examples:
  appdiet calendar
  appdiet calendar --app youtube
  appdiet calendar last month`,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().StringVarP(&calendarFlagApp, "app", "a", "",
		"Show statuses for a single app instead of the aggregate")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	ref := time.Now()
	if len(args) > 0 {
		parsed, err := parser.ParseMonth(strings.Join(args, " "), ref)
		if err != nil {
			return fmt.Errorf("invalid month %q: %w", strings.Join(args, " "), err)
		}
		ref = parsed
	}

	appID := ""
	if calendarFlagApp != "" {
		id := strings.ToLower(strings.TrimSpace(calendarFlagApp))
		if _, ok := model.AppByID(id); !ok {
			return fmt.Errorf("%w: %s", errors.ErrUnknownApp, calendarFlagApp)
		}
		appID = id
	}

	selected, err := ctx.ConfigRepo.SelectedApps()
	if err != nil {
		return err
	}
	goals, err := ctx.GoalRepo.Map(selected)
	if err != nil {
		return err
	}
	history, err := ctx.UsageRepo.History()
	if err != nil {
		return err
	}

	records := usage.DayStatuses(history, goals, model.AppsByIDs(selected), appID)
	stats := usage.StatsForMonth(records, ref)

	// Only show days of the requested month
	prefix := ref.Format("2006-01")
	var monthRecords []usage.DayRecord
	for _, rec := range records {
		if strings.HasPrefix(rec.Date, prefix) {
			monthRecords = append(monthRecords, rec)
		}
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(output.NewCalendarResponse(monthRecords, stats))
	}

	cli := ctx.CLIFormatter()
	if appID != "" {
		if app, ok := model.AppByID(appID); ok {
			cli.Title(app.DisplayName)
		}
	} else {
		cli.Title("All tracked apps")
	}
	cli.PrintCalendar(monthRecords, stats)
	return nil
}
