package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appdiet/appdiet/internal/errors"
	"github.com/appdiet/appdiet/internal/model"
	"github.com/appdiet/appdiet/internal/output"
)

// appsCmd represents the apps command.
var appsCmd = &cobra.Command{
	Use:     "apps",
	Aliases: []string{"app"},
	Short:   "Show and select the apps to track",
	Long: `Show the supported app catalog and your current selection, or change
which apps are tracked. At most 3 apps can be selected at once.

Examples:
  appdiet apps
  appdiet apps select youtube instagram webtoon`,
	RunE: runAppsList,
}

// appsSelectCmd replaces the tracked-app selection.
var appsSelectCmd = &cobra.Command{
	Use:   "select APP [APP...]",
	Short: "Select which apps to track",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAppsSelect,
}

func init() {
	appsCmd.AddCommand(appsSelectCmd)
	rootCmd.AddCommand(appsCmd)
}

func runAppsList(cmd *cobra.Command, args []string) error {
	selected, err := ctx.ConfigRepo.SelectedApps()
	if err != nil {
		return err
	}
	selectedSet := make(map[string]bool, len(selected))
	for _, id := range selected {
		selectedSet[id] = true
	}

	if ctx.IsJSON() {
		type appOut struct {
			ID          string `json:"id"`
			DisplayName string `json:"display_name"`
			Package     string `json:"package"`
			Selected    bool   `json:"selected"`
		}
		var apps []appOut
		for _, app := range model.Catalog() {
			apps = append(apps, appOut{
				ID:          app.ID,
				DisplayName: app.DisplayName,
				Package:     app.Package,
				Selected:    selectedSet[app.ID],
			})
		}
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status": "ok",
			"apps":   apps,
		})
	}

	cli := ctx.CLIFormatter()
	rows := make([]output.TableRow, 0, len(model.Catalog()))
	for _, app := range model.Catalog() {
		mark := ""
		if selectedSet[app.ID] {
			mark = "✓"
		}
		rows = append(rows, output.TableRow{Columns: []string{
			mark, app.ID, cli.AppName(app), app.Package,
		}})
	}
	cli.PrintTable([]string{"", "ID", "App", "Package"}, rows)
	return nil
}

func runAppsSelect(cmd *cobra.Command, args []string) error {
	if len(args) > model.MaxSelectedApps {
		return errors.ErrTooManyApps
	}

	seen := make(map[string]bool, len(args))
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id := strings.ToLower(strings.TrimSpace(arg))
		if _, ok := model.AppByID(id); !ok {
			return fmt.Errorf("%w: %s", errors.ErrUnknownApp, arg)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	config, err := ctx.ConfigRepo.Get()
	if err != nil {
		return err
	}
	config.SelectApps(ids)
	if err := ctx.ConfigRepo.Update(config); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status":        "ok",
			"selected_apps": ids,
		})
	}

	names := make([]string, 0, len(ids))
	for _, app := range model.AppsByIDs(ids) {
		names = append(names, app.DisplayName)
	}
	ctx.CLIFormatter().Success("Now tracking: " + strings.Join(names, ", "))
	return nil
}
