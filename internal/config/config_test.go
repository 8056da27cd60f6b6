package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if cfg.Model != "nova-5x" {
		t.Errorf("Model = %q, want %q", cfg.Model, "nova-5x")
	}
	if cfg.ReadTimeoutMS != 1000 {
		t.Errorf("ReadTimeoutMS = %d, want 1000", cfg.ReadTimeoutMS)
	}
	if cfg.ChatMix.GameSink != "NovaGame" || cfg.ChatMix.ChatSink != "NovaChat" {
		t.Errorf("sink names = %q/%q, want NovaGame/NovaChat", cfg.ChatMix.GameSink, cfg.ChatMix.ChatSink)
	}
	if !cfg.Server.Enabled {
		t.Error("Server.Enabled should default to true")
	}
}

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if dir == "" {
		t.Error("GetConfigDir() returned empty string")
	}
	if !strings.Contains(dir, appName) {
		t.Errorf("GetConfigDir() = %v, should contain %q", dir, appName)
	}
}

func TestLoadMissingDefaultIsDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model != Default().Model {
		t.Errorf("missing default config should yield defaults, got model %q", cfg.Model)
	}
}

func TestLoadMissingExplicitIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of explicitly named missing file should fail")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		verify  func(t *testing.T, cfg *Config)
	}{
		{
			name: "full config",
			yaml: `version: 1
model: nova-pro-wireless
read_timeout_ms: 500
chatmix:
  enable_controls: false
  original_sink: my_sink
  game_sink: Game
  chat_sink: Chat
sonar_icon: false
server:
  enabled: false
  listen: 127.0.0.1:9000
`,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Model != "nova-pro-wireless" {
					t.Errorf("Model = %q", cfg.Model)
				}
				if cfg.ReadTimeoutMS != 500 {
					t.Errorf("ReadTimeoutMS = %d, want 500", cfg.ReadTimeoutMS)
				}
				if cfg.ChatMix.EnableControls {
					t.Error("EnableControls should be false")
				}
				if cfg.ChatMix.OriginalSink != "my_sink" {
					t.Errorf("OriginalSink = %q", cfg.ChatMix.OriginalSink)
				}
			},
		},
		{
			name: "partial config keeps defaults",
			yaml: "version: 1\nmodel: nova-5x\n",
			verify: func(t *testing.T, cfg *Config) {
				if cfg.ChatMix.GameSink != "NovaGame" {
					t.Errorf("GameSink = %q, want default NovaGame", cfg.ChatMix.GameSink)
				}
			},
		},
		{
			name:    "wrong version",
			yaml:    "version: 9\nmodel: nova-5x\n",
			wantErr: true,
		},
		{
			name:    "empty model",
			yaml:    "version: 1\nmodel: \"\"\n",
			wantErr: true,
		},
		{
			name:    "negative timeout",
			yaml:    "version: 1\nmodel: nova-5x\nread_timeout_ms: -5\n",
			wantErr: true,
		},
		{
			name:    "not yaml",
			yaml:    "{{{{",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0600); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.verify != nil && err == nil {
				tt.verify(t, cfg)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Model = "nova-pro-wireless"
	cfg.ChatMix.OriginalSink = "explicit_sink"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Model != cfg.Model {
		t.Errorf("Model = %q, want %q", loaded.Model, cfg.Model)
	}
	if loaded.ChatMix.OriginalSink != "explicit_sink" {
		t.Errorf("OriginalSink = %q, want explicit_sink", loaded.ChatMix.OriginalSink)
	}
}
