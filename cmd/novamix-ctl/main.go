// Novamix-ctl is the control utility for a running novamixd daemon.
//
// It talks to the daemon's loopback control server: one-shot status and
// feature commands over its WebSocket endpoint, and a live mixer
// dashboard that follows the ChatMix dial in real time.
//
// Usage:
//
//	novamix-ctl [command] [flags]
//
// Running without arguments shows the current status.
// See 'novamix-ctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/novamix/novamix/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "novamix-ctl",
	Short: "Arctis Nova ChatMix control utility",
	Long: `Control utility for a running novamixd daemon.

Queries live mixer state and sends feature commands (volume, EQ, Sonar
icon, ChatMix controls) over the daemon's loopback control server.

If no command is specified, the current status is shown.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show status when no subcommand provided
		return runStatus(cmd, args)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("novamix-ctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
