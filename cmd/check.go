package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appdiet/appdiet/internal/output"
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:     "check",
	Aliases: []string{"sync", "refresh"},
	Short:   "Run one evaluation pass now",
	Long: `Fetch the latest usage samples, rebuild today's totals and streaks,
and fire any threshold alerts that are due. This is the same pass the
daemon runs on its schedule.

Examples:
  appdiet check
  appdiet check --format json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	events, err := ctx.Service.RunPass(cmd.Context())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(output.NewCheckResponse(events))
	}

	cli := ctx.CLIFormatter()
	if len(events) == 0 {
		cli.Success("Check complete, no alerts due")
	} else {
		cli.Success(fmt.Sprintf("Check complete, %d alert(s) fired", len(events)))
		for _, e := range events {
			cli.Printf("  %s: %s\n", e.Title, e.Body)
		}
	}
	cli.Println()

	list, err := ctx.Service.LatestSnapshot()
	if err != nil {
		return err
	}
	cli.PrintSnapshots(list)
	return nil
}
