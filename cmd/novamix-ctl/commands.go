package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/novamix/novamix/internal/ctlclient"
	"github.com/novamix/novamix/internal/server"
	"github.com/novamix/novamix/internal/ui"
)

// Command flags
var (
	daemonAddr   string
	outputFormat string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&daemonAddr, "addr", "127.0.0.1:8732", "Daemon control server address")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "styled", "Output format (styled, json)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(eqCmd)
	rootCmd.AddCommand(iconCmd)
	rootCmd.AddCommand(controlsCmd)
}

// statusCmd shows the daemon's state snapshot
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current mixer state",
	Long: `Display the daemon's current state: ChatMix dial position, master
volume, EQ, and headset power (on models that report it).`,
	Example: `  # Styled status (also the default command)
  novamix-ctl status
  novamix-ctl

  # JSON output for scripting
  novamix-ctl status --format json`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	state, err := ctlclient.NewClient(daemonAddr).Status()
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	default:
		fmt.Println(ui.RenderStatus(state))
	}
	return nil
}

// watchCmd runs the live dashboard
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live mixer dashboard",
	Long: `Follow the mixer in real time: game/chat level bars track the
hardware dial, and volume, EQ, and power updates appear as the device
reports them.

Keys: s toggles the Sonar icon, c enables ChatMix controls, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stream, err := ctlclient.NewClient(daemonAddr).Dial()
		if err != nil {
			return err
		}
		defer stream.Close()
		return ui.RunWatch(stream)
	},
}

// volumeCmd sets the master volume
var volumeCmd = &cobra.Command{
	Use:   "volume <attenuation>",
	Short: "Set master volume attenuation",
	Long: `Set the master volume as attenuation in dB steps below maximum.
0 is loudest; 56 is the quietest the hardware accepts.`,
	Example: `  # Full volume
  novamix-ctl volume 0

  # 20 dB below maximum
  novamix-ctl volume 20`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		attenuation, err := strconv.Atoi(args[0])
		if err != nil || attenuation < 0 || attenuation > 56 {
			return fmt.Errorf("attenuation must be a number between 0 and 56")
		}
		return sendCommand(server.Command{Command: "set_volume", Value: attenuation})
	},
}

// eqCmd groups the equalizer commands
var eqCmd = &cobra.Command{
	Use:   "eq",
	Short: "Equalizer control",
}

var eqPresetCmd = &cobra.Command{
	Use:   "preset <0-4>",
	Short: "Select an EQ preset",
	Long: `Select an equalizer preset: 0 flat, 1 bass boost, 2 focus,
3 smiley, 4 custom. Per-band writes only take effect while the custom
preset is active.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		preset, err := strconv.Atoi(args[0])
		if err != nil || preset < 0 || preset > 4 {
			return fmt.Errorf("preset must be a number between 0 and 4")
		}
		return sendCommand(server.Command{Command: "set_eq_preset", Value: preset})
	},
}

var eqBandCmd = &cobra.Command{
	Use:   "band <band> <gain>",
	Short: "Set one custom EQ band",
	Long: `Set one band of the custom EQ preset. Gain is in dB from -10 to
+10 in half-dB steps; the custom preset (4) must be selected first.`,
	Example: `  # Boost band 2 by 5 dB
  novamix-ctl eq preset 4
  novamix-ctl eq band 2 5

  # Cut band 0 by 2.5 dB
  novamix-ctl eq band 0 -2.5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		band, err := strconv.Atoi(args[0])
		if err != nil || band < 0 || band > 9 {
			return fmt.Errorf("band must be a number between 0 and 9")
		}
		gain, err := strconv.ParseFloat(args[1], 64)
		if err != nil || gain < -10 || gain > 10 {
			return fmt.Errorf("gain must be between -10 and +10 dB")
		}
		// Raw wire value: dB = (value-20)/2
		value := int(math.Round(gain*2)) + 20
		return sendCommand(server.Command{Command: "set_eq_band", Band: band, Value: value})
	},
}

func init() {
	eqCmd.AddCommand(eqPresetCmd)
	eqCmd.AddCommand(eqBandCmd)
}

// iconCmd toggles the Sonar icon
var iconCmd = &cobra.Command{
	Use:   "icon <on|off>",
	Short: "Toggle the Sonar icon on the base station display",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return sendCommand(server.Command{Command: "set_sonar_icon", On: on})
	},
}

// controlsCmd toggles device-side ChatMix mode
var controlsCmd = &cobra.Command{
	Use:   "controls <on|off>",
	Short: "Enable or disable ChatMix controls on the base station",
	Long: `Switch the base station in or out of ChatMix mode. While enabled
the device emits dial reports; the daemon normally enables this at
startup and disables it on shutdown.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return sendCommand(server.Command{Command: "set_chatmix_controls", On: on})
	},
}

func parseOnOff(arg string) (bool, error) {
	switch arg {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("expected 'on' or 'off', got %q", arg)
}

// sendCommand performs one command round-trip over the WebSocket channel.
func sendCommand(cmd server.Command) error {
	stream, err := ctlclient.NewClient(daemonAddr).Dial()
	if err != nil {
		return err
	}
	defer stream.Close()

	result, err := stream.Do(cmd)
	if err != nil {
		return err
	}
	if result.Error != "" {
		return fmt.Errorf("%s failed: %s", result.Command, result.Error)
	}
	if !result.Supported {
		return fmt.Errorf("%s: not supported by this model (receive-only endpoint?)", result.Command)
	}
	fmt.Printf("%s: ok\n", result.Command)
	return nil
}
