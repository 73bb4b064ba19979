package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appdiet/appdiet/internal/daemon"
)

// Daemon command flags.
var (
	daemonStartFlagForeground bool
	daemonLogsFlagTail        int
)

// daemonCmd represents the daemon command.
var daemonCmd = &cobra.Command{
	Use:     "daemon [command]",
	Aliases: []string{"d", "bg"},
	Short:   "Manage the background daemon",
	Long: `Manage the Appdiet background daemon that periodically re-evaluates
usage against goals and sends threshold alerts via configured webhooks.

Examples:
  appdiet daemon start
  appdiet daemon status
  appdiet daemon stop
  appdiet daemon logs --tail 20`,
	RunE: runDaemonStatus,
}

// daemonStartCmd starts the daemon.
var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the background daemon",
	Long: `Start the Appdiet background daemon.

Examples:
  appdiet daemon start           # Start in background
  appdiet daemon start -F        # Start in foreground (for debugging)`,
	RunE: runDaemonStart,
}

// daemonStopCmd stops the daemon.
var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the background daemon",
	RunE:  runDaemonStop,
}

// daemonStatusCmd shows daemon status.
var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runDaemonStatus,
}

// daemonLogsCmd shows daemon logs.
var daemonLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View daemon logs",
	RunE:  runDaemonLogs,
}

func init() {
	daemonStartCmd.Flags().BoolVarP(&daemonStartFlagForeground, "foreground", "F", false,
		"Run in the foreground instead of detaching")
	daemonLogsCmd.Flags().IntVar(&daemonLogsFlagTail, "tail", 20,
		"Number of log lines to show")

	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonLogsCmd)
	rootCmd.AddCommand(daemonCmd)
}

// isBackgroundDaemonStart reports whether cmd is "daemon start" without
// --foreground. The runtime context stays uninitialized so the spawned
// child can take the database lock instead of the parent.
func isBackgroundDaemonStart(cmd *cobra.Command) bool {
	return cmd.Name() == "start" &&
		cmd.Parent() != nil && cmd.Parent().Name() == "daemon" &&
		!daemonStartFlagForeground
}

// isDaemonControlCommand reports whether cmd only manages the daemon
// process. Stop, status, and logs read PID and state files, never the
// database, so they stay usable while the daemon holds the lock.
func isDaemonControlCommand(cmd *cobra.Command) bool {
	if cmd.Name() == "daemon" {
		return true
	}
	if cmd.Parent() == nil || cmd.Parent().Name() != "daemon" {
		return false
	}
	switch cmd.Name() {
	case "stop", "status", "logs":
		return true
	}
	return false
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	if daemonStartFlagForeground {
		d := daemon.NewDaemon(ctx.Service)
		d.SetDebug(ctx.Debug)
		ctx.CLIFormatter().Muted("Running in foreground. Press Ctrl+C to stop.")
		return d.Start(cmd.Context())
	}

	// Background mode runs without a runtime context; the child process
	// opens the database itself.
	d := daemon.NewDaemon(nil)
	d.SetDebug(flagDebug)

	pid, err := d.StartBackground()
	if err != nil {
		return err
	}

	if flagFormat == "json" {
		return printDaemonJSON(map[string]interface{}{"status": "ok", "pid": pid})
	}

	fmt.Printf("Daemon started (pid %d)\n", pid)
	return nil
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	d := daemon.NewDaemon(nil)
	if err := d.Stop(); err != nil {
		return err
	}

	if flagFormat == "json" {
		return printDaemonJSON(map[string]interface{}{"status": "ok"})
	}

	fmt.Println("Daemon stopped")
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	d := daemon.NewDaemon(nil)
	status := d.GetStatus()

	if flagFormat == "json" {
		return printDaemonJSON(status)
	}

	if !status.Running {
		fmt.Println("Daemon is not running.")
		fmt.Println("Use 'appdiet daemon start' to start it.")
		return nil
	}

	fmt.Printf("Daemon running (pid %d)\n", status.PID)
	if status.Uptime != "" {
		fmt.Printf("  Uptime: %s\n", status.Uptime)
	}
	return nil
}

func runDaemonLogs(cmd *cobra.Command, args []string) error {
	logPath := daemon.GetLogPath()

	file, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No daemon logs yet.")
			return nil
		}
		return err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	start := len(lines) - daemonLogsFlagTail
	if start < 0 {
		start = 0
	}
	fmt.Println(strings.Join(lines[start:], "\n"))
	return nil
}

// printDaemonJSON encodes v to stdout for the context-free daemon
// commands.
func printDaemonJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
