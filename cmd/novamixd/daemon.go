package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/novamix/novamix/internal/audio"
	"github.com/novamix/novamix/internal/config"
	"github.com/novamix/novamix/internal/headset"
	"github.com/novamix/novamix/internal/logging"
	"github.com/novamix/novamix/internal/server"
)

// Daemon flags
var (
	configPath   string
	modelID      string
	logLevel     string
	listenAddr   string
	noServer     bool
	originalSink string
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/novamix/config.yaml)")
	rootCmd.Flags().StringVar(&modelID, "model", "", fmt.Sprintf("Device model, overrides config (%v)", headset.ModelIDs()))
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&listenAddr, "listen", "", "Control server listen address, overrides config")
	rootCmd.Flags().BoolVar(&noServer, "no-server", false, "Disable the control server")
	rootCmd.Flags().StringVar(&originalSink, "original-sink", "", "Real output sink name, skips auto-detection")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Flags override the config file.
	if modelID != "" {
		cfg.Model = modelID
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if listenAddr != "" {
		cfg.Server.Listen = listenAddr
	}
	if noServer {
		cfg.Server.Enabled = false
	}
	if originalSink != "" {
		cfg.ChatMix.OriginalSink = originalSink
	}

	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer logging.Sync()

	model, err := headset.ModelByID(cfg.Model)
	if err != nil {
		return err
	}

	dev, err := headset.FindDevice(model)
	if err != nil {
		if errors.Is(err, headset.ErrDeviceNotFound) {
			return fmt.Errorf("%s not found: is the base station plugged in?", model.Name)
		}
		return err
	}

	logging.Info("device opened",
		zap.String("model", model.Name),
		zap.Bool("writable", model.HasTX),
	)

	hub := server.NewHub(model.Name)
	router := audio.NewPipeWireRouter()
	ep := model.Endpoint()

	opts := []headset.ChatMixOption{
		headset.WithSinkNames(cfg.ChatMix.GameSink, cfg.ChatMix.ChatSink),
	}
	if cfg.ChatMix.OriginalSink != "" {
		opts = append(opts, headset.WithOriginalSink(cfg.ChatMix.OriginalSink))
	}
	if model.PowerReports {
		opts = append(opts, headset.WithPowerReports())
	}

	features := []headset.Feature{
		headset.NewChatMix(dev, ep, router, model.SinkMatch, hub, opts...),
	}
	// Volume, EQ, and the Sonar icon need the writable control endpoint;
	// on receive-only dongles there is nothing for them to do.
	if model.HasTX {
		features = append(features,
			headset.NewVolume(dev, ep, hub),
			headset.NewEQ(dev, ep, hub),
			headset.NewSonarIcon(dev, ep),
		)
	}
	dev.Attach(features...)
	dev.Open()

	control := headset.NewControl(dev)
	if cfg.SonarIcon {
		if _, err := control.SetSonarIcon(true); err != nil {
			logging.Error("enabling sonar icon", zap.Error(err))
		}
	}
	if cfg.ChatMix.EnableControls {
		if _, err := control.SetChatMixControls(true); err != nil {
			logging.Error("enabling chatmix controls", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serverErr := make(chan error, 1)
	if cfg.Server.Enabled {
		srv := server.New(server.Config{Listen: cfg.Server.Listen}, hub, control)
		go func() {
			serverErr <- srv.Start(ctx)
		}()
	}

	timeout := time.Duration(cfg.ReadTimeoutMS) * time.Millisecond
	logging.Info("dispatch loop running", zap.Duration("read_timeout", timeout))

	runErr := dev.Run(ctx, ep, timeout)

	// The dispatch loop is down either way; take the server with it.
	cancel()
	if cfg.Server.Enabled {
		if err := <-serverErr; err != nil {
			logging.Error("control server", zap.Error(err))
		}
	}

	if runErr != nil {
		return fmt.Errorf("device loop: %w", runErr)
	}
	logging.Info("shut down cleanly")
	return nil
}

// writeConfigCmd materializes the effective configuration, so users have a
// file to edit instead of reconstructing the schema from documentation.
var writeConfigCmd = &cobra.Command{
	Use:   "write-config",
	Short: "Write the default configuration file",
	Long: `Write the effective configuration to the config file location.

Starts from built-in defaults, applies any existing config file and
command-line overrides, and saves the result. Existing settings are
preserved; the file is created if missing.`,
	Example: `  # Create ~/.config/novamix/config.yaml with defaults
  novamixd write-config

  # Seed the config with a specific model
  novamixd write-config --model nova-pro-wireless`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if modelID != "" {
			if _, err := headset.ModelByID(modelID); err != nil {
				return err
			}
			cfg.Model = modelID
		}

		if err := cfg.Save(configPath); err != nil {
			return err
		}

		path := configPath
		if path == "" {
			path, err = config.GetConfigPath()
			if err != nil {
				return err
			}
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	writeConfigCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/novamix/config.yaml)")
	writeConfigCmd.Flags().StringVar(&modelID, "model", "", fmt.Sprintf("Device model (%v)", headset.ModelIDs()))
}
