package ctlclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/novamix/novamix/internal/server"
)

const (
	// DefaultTimeout is the default HTTP and dial timeout
	DefaultTimeout = 5 * time.Second

	// resultWait bounds how long Do waits for the daemon to answer a
	// command. Events arriving in between are returned to the caller.
	resultWait = 5 * time.Second
)

// Client talks to a running daemon over its loopback control server.
type Client struct {
	// Addr is the daemon's listen address (e.g., "127.0.0.1:8732")
	Addr string

	// HTTPClient is used for the one-shot /status endpoint
	HTTPClient *http.Client
}

// NewClient creates a client for the daemon at addr.
func NewClient(addr string) *Client {
	return &Client{
		Addr:       addr,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Status fetches a one-shot state snapshot over HTTP.
func (c *Client) Status() (server.State, error) {
	var state server.State

	statusURL := url.URL{Scheme: "http", Host: c.Addr, Path: "/status"}
	resp, err := c.HTTPClient.Get(statusURL.String())
	if err != nil {
		return state, fmt.Errorf("is the daemon running? %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return state, fmt.Errorf("daemon returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return state, fmt.Errorf("decoding status: %w", err)
	}
	return state, nil
}

// Dial opens the WebSocket event stream and command channel.
func (c *Client) Dial() (*Stream, error) {
	wsURL := url.URL{Scheme: "ws", Host: c.Addr, Path: "/ws"}

	dialer := websocket.Dialer{HandshakeTimeout: DefaultTimeout}
	conn, _, err := dialer.Dial(wsURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("is the daemon running? %w", err)
	}
	return &Stream{conn: conn}, nil
}

// Stream is an open WebSocket session with the daemon. It is not safe
// for concurrent use; the watch UI and the one-shot commands each own
// their stream exclusively.
type Stream struct {
	conn *websocket.Conn
}

// Next blocks until the daemon sends the next envelope.
func (s *Stream) Next() (server.Envelope, error) {
	var env server.Envelope
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return env, err
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("decoding envelope: %w", err)
	}
	return env, nil
}

// Send queues a command without waiting for the result.
func (s *Stream) Send(cmd server.Command) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Do sends a command and waits for its result, discarding interleaved
// events and state snapshots.
func (s *Stream) Do(cmd server.Command) (server.Result, error) {
	if err := s.Send(cmd); err != nil {
		return server.Result{}, err
	}

	deadline := time.Now().Add(resultWait)
	_ = s.conn.SetReadDeadline(deadline)
	defer s.conn.SetReadDeadline(time.Time{})

	for {
		env, err := s.Next()
		if err != nil {
			return server.Result{}, fmt.Errorf("waiting for result: %w", err)
		}
		if env.Type == "result" && env.Result != nil {
			return *env.Result, nil
		}
	}
}

// Close closes the underlying connection.
func (s *Stream) Close() error {
	return s.conn.Close()
}
