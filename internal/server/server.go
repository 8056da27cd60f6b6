package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/novamix/novamix/internal/logging"
)

// Controller is the typed command surface the server applies client
// commands through. The boolean results report feature presence; absent
// features are reported to the client, not treated as errors.
type Controller interface {
	SetVolume(attenuation int) (bool, error)
	SetEQPreset(preset int) (bool, error)
	SetEQBand(band, value int) (bool, error)
	SetSonarIcon(on bool) (bool, error)
	SetChatMixControls(on bool) (bool, error)
}

// Config holds the control server configuration.
type Config struct {
	// Listen is the TCP address to bind, normally loopback-only.
	Listen string
}

// Server exposes device state and control over a local WebSocket endpoint.
type Server struct {
	config     Config
	hub        *Hub
	controller Controller
	upgrader   websocket.Upgrader
}

// New creates a control server publishing through hub and applying
// commands through controller.
func New(config Config, hub *Hub, controller Controller) *Server {
	return &Server{
		config:     config,
		hub:        hub,
		controller: controller,
		upgrader: websocket.Upgrader{
			// The server binds loopback; cross-origin browser access is
			// not a supported surface.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler: /ws for the event stream and command
// channel, /status for a one-shot JSON state snapshot.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully and
// disconnects all clients.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.config.Listen,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	logging.Info("control server listening", zap.String("addr", s.config.Listen))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		s.hub.closeAll()
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("control server: %w", err)
		}
		return nil
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := newClient(s.hub, s.controller, conn)
	s.hub.register(c)

	// Snapshot first, so clients render current state before any event.
	state := s.hub.Snapshot()
	c.sendEnvelope(Envelope{Type: "state", State: &state})

	go c.writePump()
	go c.readPump()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	state := s.hub.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		logging.Warn("writing status response", zap.Error(err))
	}
}
