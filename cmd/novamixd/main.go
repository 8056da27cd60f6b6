// Novamixd is the control daemon for SteelSeries Arctis Nova base
// stations.
//
// It opens the base station's vendor HID interface, dispatches the
// device's binary reports to the attached features, and keeps two
// virtual PipeWire sinks (game and chat) whose volumes track the
// hardware ChatMix dial. A loopback WebSocket server exposes live state
// and control to the novamix-ctl utility.
//
// Usage:
//
//	novamixd [flags]
//
// Running without arguments starts the daemon with the configuration
// from ~/.config/novamix/config.yaml (built-in defaults when absent).
// See 'novamixd --help' for available flags.
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
	Use:   "novamixd",
	Short: "Arctis Nova ChatMix daemon",
	Long: `Control daemon for SteelSeries Arctis Nova base stations.

Splits game and chat audio into two virtual PipeWire sinks and keeps
their volumes synced with the hardware ChatMix dial. On models with a
writable control endpoint it also enables ChatMix mode and the Sonar
icon at startup.

Requires PipeWire (pactl and pw-loopback on PATH) and read access to
the base station's hidraw node.`,
	Version: version.Version,
	RunE:    runDaemon,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(writeConfigCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("novamixd %s (commit: %s)\n", version.Version, version.Commit)
	},
}
