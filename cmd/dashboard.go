package cmd

import (
	"github.com/spf13/cobra"

	"github.com/appdiet/appdiet/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "ui"},
	Short:   "Open the interactive dashboard",
	Long: `Open a live terminal dashboard showing today's usage against your
goals, with streaks and progress bars. Refreshes automatically.

Keys: r refresh, c run check, q quit.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.DashboardConfig{
		Service: ctx.Service,
	})
}
