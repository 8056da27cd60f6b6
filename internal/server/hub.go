package server

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/novamix/novamix/internal/headset"
	"github.com/novamix/novamix/internal/logging"
)

// State is the last-known device state, rebuilt from the event stream and
// sent to every client on connect.
type State struct {
	Model       string      `json:"model"`
	GamePercent int         `json:"game_percent"`
	ChatPercent int         `json:"chat_percent"`
	Attenuation int         `json:"attenuation"`
	EQPreset    int         `json:"eq_preset"`
	EQBands     map[int]int `json:"eq_bands,omitempty"`
	Power       string      `json:"power,omitempty"`
}

// Envelope is the server-to-client message frame.
type Envelope struct {
	Type   string         `json:"type"` // "state", "event", or "result"
	State  *State         `json:"state,omitempty"`
	Event  *headset.Event `json:"event,omitempty"`
	Result *Result        `json:"result,omitempty"`
}

// Result reports the outcome of a client command.
type Result struct {
	Command   string `json:"command"`
	Supported bool   `json:"supported"`
	Error     string `json:"error,omitempty"`
}

// Hub fans device events out to connected WebSocket clients and keeps the
// state snapshot. It implements headset.Notifier; Publish is called from
// the dispatch loop and must not block, so slow clients have their events
// dropped rather than queued unboundedly.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	state   State
}

// NewHub creates an empty hub for the given device model name.
func NewHub(model string) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		state:   State{Model: model},
	}
}

// Publish updates the state snapshot and broadcasts the event.
func (h *Hub) Publish(e headset.Event) {
	h.mu.Lock()
	switch e.Type {
	case headset.EventChatMix:
		h.state.GamePercent = e.GamePercent
		h.state.ChatPercent = e.ChatPercent
	case headset.EventVolume:
		h.state.Attenuation = e.Attenuation
	case headset.EventEQPreset:
		h.state.EQPreset = e.Preset
	case headset.EventEQBand:
		if h.state.EQBands == nil {
			h.state.EQBands = make(map[int]int)
		}
		h.state.EQBands[e.Band] = e.Value
	case headset.EventPower:
		h.state.Power = e.Power
	}

	data, err := json.Marshal(Envelope{Type: "event", Event: &e})
	if err != nil {
		h.mu.Unlock()
		logging.Error("marshaling event", zap.Error(err))
		return
	}
	for c := range h.clients {
		c.trySend(data)
	}
	h.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (h *Hub) Snapshot() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	state := h.state
	if state.EQBands != nil {
		bands := make(map[int]int, len(state.EQBands))
		for k, v := range state.EQBands {
			bands[k] = v
		}
		state.EQBands = bands
	}
	return state
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	logging.Info("control client connected", zap.Int("clients", n))
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()
	logging.Info("control client disconnected", zap.Int("clients", n))
}

// closeAll disconnects every client. Used on server shutdown.
func (h *Hub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		c.close()
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()
}
