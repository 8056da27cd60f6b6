package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/novamix/novamix/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Buffered events per client; events beyond this are dropped for that
	// client rather than blocking the dispatch loop.
	sendBuffer = 32
)

// Command is a client-to-server control request.
type Command struct {
	Command string `json:"command"`
	Value   int    `json:"value,omitempty"`
	Band    int    `json:"band,omitempty"`
	On      bool   `json:"on,omitempty"`
}

// client is one connected WebSocket control client.
type client struct {
	hub        *Hub
	controller Controller
	conn       *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newClient(hub *Hub, controller Controller, conn *websocket.Conn) *client {
	return &client{
		hub:        hub,
		controller: controller,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
	}
}

// trySend queues a message without blocking; the message is dropped when
// the client cannot keep up or is already closed.
func (c *client) trySend(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		logging.Debug("dropping event for slow control client")
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump drains the send queue onto the connection.
func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
		time.Now().Add(writeWait))
}

// readPump reads and applies client commands until the connection drops.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			logging.Warn("bad control command", zap.Error(err))
			continue
		}
		c.handleCommand(cmd)
	}
}

func (c *client) handleCommand(cmd Command) {
	var (
		supported bool
		err       error
	)

	switch cmd.Command {
	case "get_state":
		state := c.hub.Snapshot()
		c.sendEnvelope(Envelope{Type: "state", State: &state})
		return
	case "set_volume":
		supported, err = c.controller.SetVolume(cmd.Value)
	case "set_eq_preset":
		supported, err = c.controller.SetEQPreset(cmd.Value)
	case "set_eq_band":
		supported, err = c.controller.SetEQBand(cmd.Band, cmd.Value)
	case "set_sonar_icon":
		supported, err = c.controller.SetSonarIcon(cmd.On)
	case "set_chatmix_controls":
		supported, err = c.controller.SetChatMixControls(cmd.On)
	default:
		c.sendEnvelope(Envelope{Type: "result", Result: &Result{
			Command: cmd.Command,
			Error:   "unknown command",
		}})
		return
	}

	result := &Result{Command: cmd.Command, Supported: supported}
	if err != nil {
		result.Error = err.Error()
	}
	c.sendEnvelope(Envelope{Type: "result", Result: result})
}

func (c *client) sendEnvelope(env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		logging.Error("marshaling envelope", zap.Error(err))
		return
	}
	c.trySend(data)
}
