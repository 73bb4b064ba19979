package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/appdiet/appdiet/internal/model"
	"github.com/appdiet/appdiet/internal/output"
)

// Webhook command flags.
var webhookAddFlagType string

// webhookCmd represents the webhook command.
var webhookCmd = &cobra.Command{
	Use:     "webhook",
	Aliases: []string{"webhooks", "wh"},
	Short:   "Manage notification webhooks",
	Long: `Manage the webhooks that receive threshold alerts.

Discord and Slack URLs are detected automatically; anything else is
treated as a generic JSON endpoint.

Examples:
  appdiet webhook add mydiscord https://discord.com/api/webhooks/...
  appdiet webhook list
  appdiet webhook test mydiscord
  appdiet webhook remove mydiscord`,
	RunE: runWebhookList,
}

// webhookAddCmd adds a webhook.
var webhookAddCmd = &cobra.Command{
	Use:   "add NAME URL",
	Short: "Add a notification webhook",
	Args:  cobra.ExactArgs(2),
	RunE:  runWebhookAdd,
}

// webhookListCmd lists webhooks.
var webhookListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured webhooks",
	RunE:    runWebhookList,
}

// webhookRemoveCmd removes a webhook.
var webhookRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a webhook",
	Args:    cobra.ExactArgs(1),
	RunE:    runWebhookRemove,
}

// webhookTestCmd sends a test notification.
var webhookTestCmd = &cobra.Command{
	Use:   "test NAME",
	Short: "Send a test notification to a webhook",
	Args:  cobra.ExactArgs(1),
	RunE:  runWebhookTest,
}

// webhookEnableCmd enables a webhook.
var webhookEnableCmd = &cobra.Command{
	Use:   "enable NAME",
	Short: "Enable a webhook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setWebhookEnabled(args[0], true)
	},
}

// webhookDisableCmd disables a webhook.
var webhookDisableCmd = &cobra.Command{
	Use:   "disable NAME",
	Short: "Disable a webhook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setWebhookEnabled(args[0], false)
	},
}

func init() {
	webhookAddCmd.Flags().StringVarP(&webhookAddFlagType, "type", "t", "",
		"Webhook type: discord, slack, generic (auto-detected when omitted)")

	webhookCmd.AddCommand(webhookAddCmd)
	webhookCmd.AddCommand(webhookListCmd)
	webhookCmd.AddCommand(webhookRemoveCmd)
	webhookCmd.AddCommand(webhookTestCmd)
	webhookCmd.AddCommand(webhookEnableCmd)
	webhookCmd.AddCommand(webhookDisableCmd)
	rootCmd.AddCommand(webhookCmd)
}

func runWebhookAdd(cmd *cobra.Command, args []string) error {
	name, url := args[0], args[1]

	if !model.IsValidWebhookName(name) {
		return fmt.Errorf("invalid webhook name %q (alphanumeric, dash, underscore; max 50 chars)", name)
	}

	webhookType := strings.ToLower(webhookAddFlagType)
	if webhookType == "" {
		webhookType = model.DetectWebhookType(url)
	}
	if !model.IsValidWebhookType(webhookType) {
		return fmt.Errorf("invalid webhook type %q (use discord, slack, or generic)", webhookAddFlagType)
	}

	webhook := model.NewWebhook(name, webhookType, url)
	if err := ctx.WebhookRepo.Create(webhook); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status": "ok",
			"name":   name,
			"type":   webhookType,
		})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Webhook %s added (%s)", name, webhookType))
	return nil
}

func runWebhookList(cmd *cobra.Command, args []string) error {
	webhooks, err := ctx.WebhookRepo.List()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		type webhookOut struct {
			Name    string `json:"name"`
			Type    string `json:"type"`
			URL     string `json:"url"`
			Enabled bool   `json:"enabled"`
		}
		out := make([]webhookOut, 0, len(webhooks))
		for _, wh := range webhooks {
			out = append(out, webhookOut{
				Name:    wh.Name,
				Type:    wh.Type,
				URL:     wh.MaskedURL(),
				Enabled: wh.Enabled,
			})
		}
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status":   "ok",
			"webhooks": out,
		})
	}

	cli := ctx.CLIFormatter()
	if len(webhooks) == 0 {
		cli.Muted("No webhooks configured.")
		cli.Muted("Use 'appdiet webhook add <name> <url>' to add one.")
		return nil
	}

	rows := make([]output.TableRow, 0, len(webhooks))
	for _, wh := range webhooks {
		rows = append(rows, output.TableRow{Columns: []string{
			wh.Name, wh.Type, onOff(wh.Enabled), wh.MaskedURL(),
		}})
	}
	cli.PrintTable([]string{"Name", "Type", "State", "URL"}, rows)
	return nil
}

func runWebhookRemove(cmd *cobra.Command, args []string) error {
	if err := ctx.WebhookRepo.Delete(args[0]); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status": "ok",
			"name":   args[0],
		})
	}

	ctx.CLIFormatter().Success("Webhook " + args[0] + " removed")
	return nil
}

func runWebhookTest(cmd *cobra.Command, args []string) error {
	result := ctx.Dispatcher.TestWebhook(cmd.Context(), args[0])

	if ctx.IsJSON() {
		out := map[string]interface{}{
			"status":      "ok",
			"webhook":     result.WebhookName,
			"success":     result.Success,
			"status_code": result.StatusCode,
		}
		if result.Error != nil {
			out["status"] = "error"
			out["error"] = result.Error.Error()
		}
		return ctx.JSONFormatter().JSON(out)
	}

	cli := ctx.CLIFormatter()
	if result.Error != nil {
		cli.Error(fmt.Sprintf("Test failed for %s: %v", args[0], result.Error))
		return nil
	}
	cli.Success(fmt.Sprintf("Test sent to %s (HTTP %d, %v)",
		args[0], result.StatusCode, result.Duration.Round(time.Millisecond)))
	return nil
}

func setWebhookEnabled(name string, enabled bool) error {
	if err := ctx.WebhookRepo.SetEnabled(name, enabled); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(map[string]interface{}{
			"status":  "ok",
			"name":    name,
			"enabled": enabled,
		})
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	ctx.CLIFormatter().Success("Webhook " + name + " " + state)
	return nil
}
