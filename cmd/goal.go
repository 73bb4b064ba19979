package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appdiet/appdiet/internal/errors"
	"github.com/appdiet/appdiet/internal/model"
	"github.com/appdiet/appdiet/internal/output"
	"github.com/appdiet/appdiet/internal/parser"
)

// goalCmd represents the goal command.
var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals"},
	Short:   "Manage daily time goals per app",
	Long: `View and manage daily time goals for your tracked apps.

Duration format: use h for hours, m for minutes (e.g., "1h", "45m",
"1h30m"), or a bare number of minutes.

Examples:
  appdiet goal
  appdiet goal set youtube 1h
  appdiet goal set instagram 45m
  appdiet goal clear youtube`,
	RunE: runGoalList,
}

// goalSetCmd sets a daily goal for an app.
var goalSetCmd = &cobra.Command{
	Use:   "set APP DURATION",
	Short: "Set a daily time goal for an app",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalSet,
}

// goalClearCmd removes the goal for an app.
var goalClearCmd = &cobra.Command{
	Use:     "clear APP",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove the goal for an app",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalClear,
}

func init() {
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalClearCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalList(cmd *cobra.Command, args []string) error {
	selected, err := ctx.ConfigRepo.SelectedApps()
	if err != nil {
		return err
	}
	goals, err := ctx.GoalRepo.Map(selected)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		out := make(map[string]int, len(goals))
		for id, minutes := range goals {
			out[id] = minutes
		}
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status": "ok",
			"goals":  out,
		})
	}

	cli := ctx.CLIFormatter()
	rows := make([]output.TableRow, 0, len(selected))
	for _, app := range model.AppsByIDs(selected) {
		goal := "-"
		if minutes := goals.For(app.ID); minutes > 0 {
			goal = output.FormatMinutes(minutes)
		}
		rows = append(rows, output.TableRow{Columns: []string{cli.AppName(app), goal}})
	}
	if len(rows) == 0 {
		cli.Muted("No apps selected. Use 'appdiet apps select' first.")
		return nil
	}
	cli.PrintTable([]string{"App", "Daily goal"}, rows)
	return nil
}

func runGoalSet(cmd *cobra.Command, args []string) error {
	id := strings.ToLower(strings.TrimSpace(args[0]))
	app, ok := model.AppByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrUnknownApp, args[0])
	}

	minutes, err := parser.ParseGoalMinutes(args[1])
	if err != nil {
		return err
	}

	goal := &model.Goal{
		Key:     model.GenerateGoalKey(app.ID),
		AppID:   app.ID,
		Minutes: minutes,
	}
	if err := ctx.GoalRepo.Upsert(goal); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status":  "ok",
			"app_id":  app.ID,
			"minutes": minutes,
		})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Goal for %s set to %s per day",
		app.DisplayName, output.FormatMinutes(minutes)))
	return nil
}

func runGoalClear(cmd *cobra.Command, args []string) error {
	id := strings.ToLower(strings.TrimSpace(args[0]))
	app, ok := model.AppByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrUnknownApp, args[0])
	}

	if err := ctx.GoalRepo.Delete(app.ID); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status": "ok",
			"app_id": app.ID,
		})
	}

	ctx.CLIFormatter().Success("Goal for " + app.DisplayName + " removed")
	return nil
}
