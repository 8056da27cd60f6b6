package ui

import (
	"testing"

	"github.com/novamix/novamix/internal/headset"
	"github.com/novamix/novamix/internal/server"
)

func TestApplyEvent(t *testing.T) {
	var state server.State

	applyEvent(&state, headset.Event{Type: headset.EventChatMix, GamePercent: 70, ChatPercent: 30})
	if state.GamePercent != 70 || state.ChatPercent != 30 {
		t.Errorf("mix = %d/%d, want 70/30", state.GamePercent, state.ChatPercent)
	}

	applyEvent(&state, headset.Event{Type: headset.EventVolume, Attenuation: 12})
	if state.Attenuation != 12 {
		t.Errorf("Attenuation = %d, want 12", state.Attenuation)
	}

	applyEvent(&state, headset.Event{Type: headset.EventEQBand, Band: 3, Value: 28})
	if state.EQBands[3] != 28 {
		t.Errorf("EQBands[3] = %d, want 28", state.EQBands[3])
	}

	applyEvent(&state, headset.Event{Type: headset.EventPower, Power: "off"})
	if state.Power != "off" {
		t.Errorf("Power = %q, want off", state.Power)
	}

	// Unrelated events must not clobber earlier fields.
	applyEvent(&state, headset.Event{Type: headset.EventEQPreset, Preset: 2})
	if state.GamePercent != 70 || state.Attenuation != 12 {
		t.Error("preset event clobbered unrelated state")
	}
}

func TestFormatAttenuation(t *testing.T) {
	tests := []struct {
		attenuation int
		want        string
	}{
		{0, "max"},
		{1, "-1 dB"},
		{56, "-56 dB"},
	}
	for _, tt := range tests {
		if got := formatAttenuation(tt.attenuation); got != tt.want {
			t.Errorf("formatAttenuation(%d) = %q, want %q", tt.attenuation, got, tt.want)
		}
	}
}

func TestFormatEQPreset(t *testing.T) {
	if got := FormatEQPreset(4); got != "4 (custom)" {
		t.Errorf("FormatEQPreset(4) = %q", got)
	}
	if got := FormatEQPreset(9); got != "9" {
		t.Errorf("FormatEQPreset(9) = %q", got)
	}
}

func TestFormatEQBands(t *testing.T) {
	if got := formatEQBands(nil); got != "" {
		t.Errorf("formatEQBands(nil) = %q, want empty", got)
	}

	// Bands render sorted with half-dB gains relative to the 0 dB point.
	got := formatEQBands(map[int]int{2: 30, 0: 20, 1: 19})
	want := "0:+0.0dB 1:-0.5dB 2:+5.0dB"
	if got != want {
		t.Errorf("formatEQBands = %q, want %q", got, want)
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name   string
		result server.Result
		want   string
	}{
		{"ok", server.Result{Command: "set_sonar_icon", Supported: true}, "set_sonar_icon: ok"},
		{"unsupported", server.Result{Command: "set_volume"}, "set_volume: not supported by this model"},
		{"error", server.Result{Command: "set_volume", Error: "device gone"}, "set_volume: device gone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatResult(tt.result); got != tt.want {
				t.Errorf("formatResult = %q, want %q", got, tt.want)
			}
		})
	}
}
