package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "novamix"
	configFile = "config.yaml"

	// CurrentVersion is the config schema version this build reads.
	CurrentVersion = 1
)

// Config is the daemon configuration, loaded from YAML and overridden by
// flags.
type Config struct {
	Version int `yaml:"version"`

	// Model is the device model identifier (see headset.ModelIDs).
	Model string `yaml:"model"`

	// LogLevel controls zap verbosity; empty defers to NOVAMIX_LOG_LEVEL.
	LogLevel string `yaml:"log_level,omitempty"`

	// ReadTimeoutMS bounds each blocking read so the dispatch loop can
	// observe cancellation. 0 means unbounded reads.
	ReadTimeoutMS int `yaml:"read_timeout_ms"`

	ChatMix   ChatMixConfig `yaml:"chatmix"`
	SonarIcon bool          `yaml:"sonar_icon"`
	Server    ServerConfig  `yaml:"server"`
}

// ChatMixConfig configures the ChatMix sink orchestrator.
type ChatMixConfig struct {
	// EnableControls switches the base station into ChatMix mode at
	// startup (writable models only).
	EnableControls bool `yaml:"enable_controls"`

	// OriginalSink names the real output sink explicitly, skipping
	// auto-detection.
	OriginalSink string `yaml:"original_sink,omitempty"`

	GameSink string `yaml:"game_sink"`
	ChatSink string `yaml:"chat_sink"`
}

// ServerConfig configures the local control/status server.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version:       CurrentVersion,
		Model:         "nova-5x",
		ReadTimeoutMS: 1000,
		ChatMix: ChatMixConfig{
			EnableControls: true,
			GameSink:       "NovaGame",
			ChatSink:       "NovaChat",
		},
		SonarIcon: true,
		Server: ServerConfig{
			Enabled: true,
			Listen:  "127.0.0.1:8732",
		},
	}
}

// GetConfigDir returns the OS-appropriate configuration directory for the
// application. This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/novamix or $HOME/.config/novamix
//   - macOS: $HOME/.config/novamix (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\novamix
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	default:
		// Linux and other Unix-like systems: Use XDG_CONFIG_HOME or $HOME/.config
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads the configuration from path. An empty path means the default
// location; a missing file at the default location yields Default(), while
// an explicitly named missing file is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, CurrentVersion)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.ReadTimeoutMS < 0 {
		return fmt.Errorf("read_timeout_ms must not be negative")
	}
	if c.ChatMix.GameSink == "" || c.ChatMix.ChatSink == "" {
		return fmt.Errorf("game_sink and chat_sink must not be empty")
	}
	if c.Server.Enabled && c.Server.Listen == "" {
		return fmt.Errorf("server.listen must be set when the server is enabled")
	}
	return nil
}

// Save writes the configuration to path (default location when empty),
// creating the config directory as needed. The write is atomic to prevent
// corruption on crash.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# novamix configuration file\n# Location: " + path + "\n\n")
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}
