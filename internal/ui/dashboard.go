package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/novamix/novamix/internal/ctlclient"
	"github.com/novamix/novamix/internal/headset"
	"github.com/novamix/novamix/internal/server"
)

// Message types for the event stream
type envelopeMsg server.Envelope

type streamErrMsg struct{ err error }

// watchKeyMap defines key bindings for the watch dashboard
type watchKeyMap struct {
	SonarIcon key.Binding
	Controls  key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SonarIcon, k.Controls, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.SonarIcon, k.Controls, k.Quit}}
}

// WatchModel is the live mixer dashboard. It renders the daemon's state
// snapshot and updates it from the event stream; a couple of keys toggle
// device features through the same connection.
type WatchModel struct {
	stream *ctlclient.Stream
	state  server.State

	gameBar progress.Model
	chatBar progress.Model

	width      int
	lastResult string
	err        error

	help help.Model
	keys watchKeyMap
}

// NewWatchModel creates the dashboard over an open stream.
func NewWatchModel(stream *ctlclient.Stream) WatchModel {
	gameBar := progress.New(progress.WithSolidFill(string(GameColor)), progress.WithoutPercentage())
	gameBar.Width = MixBarWidth
	chatBar := progress.New(progress.WithSolidFill(string(ChatColor)), progress.WithoutPercentage())
	chatBar.Width = MixBarWidth

	keys := watchKeyMap{
		SonarIcon: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sonar icon"),
		),
		Controls: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chatmix controls"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	return WatchModel{
		stream:  stream,
		gameBar: gameBar,
		chatBar: chatBar,
		width:   GetTerminalWidth(),
		help:    help.New(),
		keys:    keys,
	}
}

// Init starts reading the event stream.
func (m WatchModel) Init() tea.Cmd {
	return waitForEnvelope(m.stream)
}

// waitForEnvelope blocks on the stream and delivers the next envelope.
func waitForEnvelope(stream *ctlclient.Stream) tea.Cmd {
	return func() tea.Msg {
		env, err := stream.Next()
		if err != nil {
			return streamErrMsg{err: err}
		}
		return envelopeMsg(env)
	}
}

// Update handles stream messages and key presses.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.SonarIcon):
			return m, m.toggle("set_sonar_icon")
		case key.Matches(msg, m.keys.Controls):
			return m, m.toggle("set_chatmix_controls")
		}
		return m, nil

	case envelopeMsg:
		switch msg.Type {
		case "state":
			if msg.State != nil {
				m.state = *msg.State
			}
		case "event":
			if msg.Event != nil {
				applyEvent(&m.state, *msg.Event)
			}
		case "result":
			if msg.Result != nil {
				m.lastResult = formatResult(*msg.Result)
			}
		}
		return m, waitForEnvelope(m.stream)

	case streamErrMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// toggle sends a feature toggle. The daemon's result envelope comes back
// through the normal stream read.
func (m WatchModel) toggle(command string) tea.Cmd {
	stream := m.stream
	return func() tea.Msg {
		if err := stream.Send(server.Command{Command: command, On: true}); err != nil {
			return streamErrMsg{err: err}
		}
		return nil
	}
}

// applyEvent folds a device event into the state snapshot.
func applyEvent(state *server.State, e headset.Event) {
	switch e.Type {
	case headset.EventChatMix:
		state.GamePercent = e.GamePercent
		state.ChatPercent = e.ChatPercent
	case headset.EventVolume:
		state.Attenuation = e.Attenuation
	case headset.EventEQPreset:
		state.EQPreset = e.Preset
	case headset.EventEQBand:
		if state.EQBands == nil {
			state.EQBands = make(map[int]int)
		}
		state.EQBands[e.Band] = e.Value
	case headset.EventPower:
		state.Power = e.Power
	}
}

func formatResult(r server.Result) string {
	if r.Error != "" {
		return fmt.Sprintf("%s: %s", r.Command, r.Error)
	}
	if !r.Supported {
		return fmt.Sprintf("%s: not supported by this model", r.Command)
	}
	return fmt.Sprintf("%s: ok", r.Command)
}

// View renders the dashboard.
func (m WatchModel) View() string {
	if m.err != nil {
		return ErrorStyle.Render("connection lost: "+m.err.Error()) + "\n"
	}

	title := TitleStyle.Render("novamix")
	model := ModelStyle.Render(m.state.Model)
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", model)

	gameLine := lipgloss.JoinHorizontal(lipgloss.Top,
		LabelStyle.Render("Game"),
		m.gameBar.ViewAs(float64(m.state.GamePercent)/100),
		ValueStyle.Render(fmt.Sprintf(" %3d%%", m.state.GamePercent)),
	)
	chatLine := lipgloss.JoinHorizontal(lipgloss.Top,
		LabelStyle.Render("Chat"),
		m.chatBar.ViewAs(float64(m.state.ChatPercent)/100),
		ValueStyle.Render(fmt.Sprintf(" %3d%%", m.state.ChatPercent)),
	)

	volumeLine := lipgloss.JoinHorizontal(lipgloss.Top,
		LabelStyle.Render("Volume"),
		ValueStyle.Render(formatAttenuation(m.state.Attenuation)),
	)
	eqLine := lipgloss.JoinHorizontal(lipgloss.Top,
		LabelStyle.Render("EQ"),
		ValueStyle.Render(FormatEQPreset(m.state.EQPreset)),
	)

	lines := []string{header, "", gameLine, chatLine, "", volumeLine, eqLine}

	if bands := formatEQBands(m.state.EQBands); bands != "" {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			LabelStyle.Render("Bands"), ValueStyle.Render(bands)))
	}
	if m.state.Power != "" {
		power := ValueStyle.Render(m.state.Power)
		if m.state.Power == "off" {
			power = PowerOffStyle.Render("off  (sinks stopped)")
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			LabelStyle.Render("Headset"), power))
	}

	if m.lastResult != "" {
		lines = append(lines, "", ResultStyle.Render(m.lastResult))
	}
	lines = append(lines, "", m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// RunWatch runs the dashboard until the user quits or the stream drops.
func RunWatch(stream *ctlclient.Stream) error {
	model := NewWatchModel(stream)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(WatchModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
