package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/novamix/novamix/internal/server"
)

// RenderStatus formats a one-shot state snapshot for the status command.
func RenderStatus(state server.State) string {
	title := TitleStyle.Render("novamix")
	model := ModelStyle.Render(state.Model)

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", model),
		"",
		statusLine("Game", fmt.Sprintf("%3d%%  %s", state.GamePercent, textBar(state.GamePercent, GameColor))),
		statusLine("Chat", fmt.Sprintf("%3d%%  %s", state.ChatPercent, textBar(state.ChatPercent, ChatColor))),
		statusLine("Volume", formatAttenuation(state.Attenuation)),
		statusLine("EQ", FormatEQPreset(state.EQPreset)),
	}

	if bands := formatEQBands(state.EQBands); bands != "" {
		lines = append(lines, statusLine("Bands", bands))
	}
	if state.Power != "" {
		power := ValueStyle.Render(state.Power)
		if state.Power == "off" {
			power = PowerOffStyle.Render("off")
		}
		lines = append(lines, statusLine("Headset", power))
	}

	return StatusBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func statusLine(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), ValueStyle.Render(value))
}

// textBar renders a fixed-width unicode level bar for non-interactive output.
func textBar(percent int, color lipgloss.Color) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * MixBarWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", MixBarWidth-filled)
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

// formatAttenuation renders the volume as dB steps below maximum.
func formatAttenuation(attenuation int) string {
	if attenuation == 0 {
		return "max"
	}
	return fmt.Sprintf("-%d dB", attenuation)
}

// FormatEQPreset names the built-in presets; preset 4 is the writable
// custom slot.
func FormatEQPreset(preset int) string {
	names := map[int]string{
		0: "flat",
		1: "bass boost",
		2: "focus",
		3: "smiley",
		4: "custom",
	}
	if name, ok := names[preset]; ok {
		return fmt.Sprintf("%d (%s)", preset, name)
	}
	return fmt.Sprintf("%d", preset)
}

func formatEQBands(bands map[int]int) string {
	if len(bands) == 0 {
		return ""
	}
	keys := make([]int, 0, len(bands))
	for k := range bands {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		gain := float64(bands[k]-20) / 2
		parts = append(parts, fmt.Sprintf("%d:%+.1fdB", k, gain))
	}
	return strings.Join(parts, " ")
}
