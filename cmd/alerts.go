package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appdiet/appdiet/internal/errors"
	"github.com/appdiet/appdiet/internal/model"
	"github.com/appdiet/appdiet/internal/output"
)

// alertsCmd represents the alerts command.
var alertsCmd = &cobra.Command{
	Use:     "alerts",
	Aliases: []string{"alert"},
	Short:   "Manage threshold alert settings",
	Long: `Show and change the threshold alert settings.

Alerts fire at 50%, 70%, and 100% of a goal, per app and for total
screen time. Each of the six toggles can be switched independently:
ind-50, ind-70, ind-100, total-50, total-70, total-100.

The 100% alert repeats while you stay over the goal; the interval
between repeats is configurable (3, 5, 10, 15, or 30 minutes).

Examples:
  appdiet alerts
  appdiet alerts disable ind-50
  appdiet alerts enable total-100
  appdiet alerts interval 10`,
	RunE: runAlertsShow,
}

// alertsEnableCmd enables a threshold toggle.
var alertsEnableCmd = &cobra.Command{
	Use:   "enable TOGGLE",
	Short: "Enable a threshold alert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setToggle(args[0], true)
	},
}

// alertsDisableCmd disables a threshold toggle.
var alertsDisableCmd = &cobra.Command{
	Use:   "disable TOGGLE",
	Short: "Disable a threshold alert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setToggle(args[0], false)
	},
}

// alertsIntervalCmd sets the 100%-exceeded repeat interval.
var alertsIntervalCmd = &cobra.Command{
	Use:   "interval MINUTES",
	Short: "Set the repeat interval for 100% alerts",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlertsInterval,
}

func init() {
	alertsCmd.AddCommand(alertsEnableCmd)
	alertsCmd.AddCommand(alertsDisableCmd)
	alertsCmd.AddCommand(alertsIntervalCmd)
	rootCmd.AddCommand(alertsCmd)
}

func runAlertsShow(cmd *cobra.Command, args []string) error {
	settings, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status":   "ok",
			"settings": settings,
		})
	}

	cli := ctx.CLIFormatter()
	rows := []output.TableRow{
		{Columns: []string{"ind-50", onOff(settings.Individual50)}},
		{Columns: []string{"ind-70", onOff(settings.Individual70)}},
		{Columns: []string{"ind-100", onOff(settings.Individual100)}},
		{Columns: []string{"total-50", onOff(settings.Total50)}},
		{Columns: []string{"total-70", onOff(settings.Total70)}},
		{Columns: []string{"total-100", onOff(settings.Total100)}},
	}
	cli.PrintTable([]string{"Alert", "State"}, rows)
	cli.Println()
	cli.Printf("Repeat interval: %dm\n", settings.RepeatIntervalMinutes)
	return nil
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

// setToggle flips one of the six threshold toggles.
func setToggle(name string, enabled bool) error {
	scope, tier, err := parseToggle(name)
	if err != nil {
		return err
	}

	settings, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}

	if scope == model.ScopeTotal {
		err = settings.SetTotal(tier, enabled)
	} else {
		err = settings.SetIndividual(tier, enabled)
	}
	if err != nil {
		return err
	}

	if err := ctx.SettingsRepo.Set(settings); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status":  "ok",
			"toggle":  name,
			"enabled": enabled,
		})
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Alert %s %s", name, state))
	return nil
}

// parseToggle parses toggle names like "ind-70" and "total-100".
func parseToggle(name string) (scope string, tier int, err error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(name)), "-", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("invalid alert toggle %q (use e.g. ind-70 or total-100)", name)
	}

	switch parts[0] {
	case "ind", "individual":
		scope = "ind"
	case "total":
		scope = model.ScopeTotal
	default:
		return "", 0, fmt.Errorf("invalid alert scope %q (use ind or total)", parts[0])
	}

	tier, convErr := strconv.Atoi(parts[1])
	if convErr != nil || (tier != model.Tier50 && tier != model.Tier70 && tier != model.Tier100) {
		return "", 0, fmt.Errorf("invalid alert tier %q (use 50, 70, or 100)", parts[1])
	}

	return scope, tier, nil
}

func runAlertsInterval(cmd *cobra.Command, args []string) error {
	minutes, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.ErrInvalidInterval
	}

	settings, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}
	settings.RepeatIntervalMinutes = minutes

	if err := ctx.SettingsRepo.Set(settings); err != nil {
		return fmt.Errorf("%w: %d", errors.ErrInvalidInterval, minutes)
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status":                  "ok",
			"repeat_interval_minutes": minutes,
		})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Repeat interval set to %dm", minutes))
	return nil
}
