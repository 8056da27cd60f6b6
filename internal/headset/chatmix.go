package headset

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/novamix/novamix/internal/audio"
	"github.com/novamix/novamix/internal/logging"
	"github.com/novamix/novamix/internal/protocol"
)

// ErrSinkNotFound is returned when no sink in the audio server's list
// matches the model's sink name. It is fatal to ChatMix activation but not
// to the daemon: the feature stays attached and inert.
var ErrSinkNotFound = errors.New("original sink not found")

// Default virtual sink names.
const (
	DefaultGameSink = "NovaGame"
	DefaultChatSink = "NovaChat"
)

// ChatMix splits game and chat audio into two virtual loopback sinks whose
// volumes track the hardware dial. It resolves the real headset sink once,
// keeps both virtual sinks alive, applies dial positions as sink volumes,
// and tears everything down on close or power-off.
type ChatMix struct {
	writer   ControlWriter
	ep       Endpoint
	router   audio.Router
	notifier Notifier

	// sinkMatch is the substring identifying the real sink; originalSink
	// caches the resolved name for the feature's lifetime. Setting
	// originalSink up front skips auto-detection.
	sinkMatch    string
	originalSink string

	gameSinkName string
	chatSinkName string

	mu              sync.Mutex
	gameSink        audio.Sink
	chatSink        audio.Sink
	controlsEnabled bool
	powerReports    bool
}

// ChatMixOption configures a ChatMix feature at construction.
type ChatMixOption func(*ChatMix)

// WithOriginalSink sets the real sink name explicitly, skipping
// auto-detection.
func WithOriginalSink(name string) ChatMixOption {
	return func(c *ChatMix) { c.originalSink = name }
}

// WithSinkNames overrides the virtual sink names.
func WithSinkNames(game, chat string) ChatMixOption {
	return func(c *ChatMix) {
		if game != "" {
			c.gameSinkName = game
		}
		if chat != "" {
			c.chatSinkName = chat
		}
	}
}

// WithPowerReports registers the power-state opcode so base station power
// transitions drive sink lifecycle. Only meaningful on models whose dongle
// emits them.
func WithPowerReports() ChatMixOption {
	return func(c *ChatMix) { c.powerReports = true }
}

// NewChatMix builds the ChatMix feature for the given endpoint. sinkMatch
// is the substring locating the model's real output sink.
func NewChatMix(w ControlWriter, ep Endpoint, router audio.Router, sinkMatch string, notifier Notifier, opts ...ChatMixOption) *ChatMix {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	c := &ChatMix{
		writer:       w,
		ep:           ep,
		router:       router,
		notifier:     notifier,
		sinkMatch:    sinkMatch,
		gameSinkName: DefaultGameSink,
		chatSinkName: DefaultChatSink,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ChatMix) Kind() Kind         { return KindChatMix }
func (c *ChatMix) Endpoint() Endpoint { return c.ep }

func (c *ChatMix) Opcodes() map[byte]Handler {
	table := map[byte]Handler{
		protocol.OpChatMixReport: c.handleReport,
	}
	if c.powerReports {
		table[protocol.OpPowerState] = c.handlePower
	}
	return table
}

// OnOpen proactively starts the virtual sinks so the very first dial
// movement already has a destination.
func (c *ChatMix) OnOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureSinksRunning(); err != nil {
		return fmt.Errorf("chatmix open: %w", err)
	}
	return nil
}

// OnClose disables device-side ChatMix signaling before tearing down the
// audio path, so a late dial event cannot race against removed sinks.
func (c *ChatMix) OnClose() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controlsEnabled {
		if err := c.setControls(false); err != nil {
			logging.Error("disabling chatmix controls on close", zap.Error(err))
		}
	}
	c.stopSinks()
	return nil
}

// SetControls enables or disables the base station's ChatMix controls.
// The local enabled state is recorded only after a successful write; on a
// receive-only endpoint the write is unsupported and state is unchanged.
func (c *ChatMix) SetControls(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setControls(on)
}

func (c *ChatMix) setControls(on bool) error {
	supported, err := c.writer.WriteControl(c.ep, protocol.OpChatMixEnable, boolByte(on))
	if err != nil {
		return err
	}
	if supported {
		c.controlsEnabled = on
	}
	return nil
}

// Enabled reports whether ChatMix controls are currently enabled on the
// device.
func (c *ChatMix) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controlsEnabled
}

// handleReport processes a ChatMix dial report: make sure both sinks are
// alive, then apply the two volumes. Dial movement is the most
// latency-sensitive signal, so liveness is re-checked on every report —
// the audio stack can kill a sink at any time outside our control.
func (c *ChatMix) handleReport(pkt []byte) {
	report, err := protocol.ParseChatMixReport(pkt)
	if err != nil {
		logging.Warn("bad chatmix report", zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureSinksRunning(); err != nil {
		logging.Error("chatmix sinks unavailable", zap.Error(err))
		return
	}

	if err := c.router.SetVolume("input."+c.gameSinkName, report.GamePercent); err != nil {
		logging.Error("setting game volume", zap.Error(err))
	}
	if err := c.router.SetVolume("input."+c.chatSinkName, report.ChatPercent); err != nil {
		logging.Error("setting chat volume", zap.Error(err))
	}

	c.notifier.Publish(Event{
		Type:        EventChatMix,
		GamePercent: report.GamePercent,
		ChatPercent: report.ChatPercent,
	})
}

// handlePower reacts to base station power transitions: off stops both
// sinks, on restarts them. Anything else is ignored.
func (c *ChatMix) handlePower(pkt []byte) {
	state, err := protocol.ParsePowerState(pkt)
	if err != nil {
		logging.Warn("bad power report", zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch state {
	case protocol.PowerOff:
		logging.Info("base station powered off")
		c.stopSinks()
	case protocol.PowerOn:
		logging.Info("base station powered on")
		if err := c.ensureSinksRunning(); err != nil {
			logging.Error("restarting sinks on power on", zap.Error(err))
			return
		}
	default:
		return
	}

	c.notifier.Publish(Event{Type: EventPower, Power: state.String()})
}

// resolveOriginalSink finds the real headset sink by substring match and
// caches it. Idempotent: once resolved (or configured explicitly) it does
// no further work, so the sink-listing query runs at most once.
func (c *ChatMix) resolveOriginalSink() error {
	if c.originalSink != "" {
		return nil
	}
	sinks, err := c.router.ListSinks()
	if err != nil {
		return fmt.Errorf("listing sinks: %w", err)
	}
	for _, sink := range sinks {
		if strings.Contains(sink.Name, c.sinkMatch) {
			logging.Info("resolved original sink", zap.String("sink", sink.Name))
			c.originalSink = sink.Name
			return nil
		}
	}
	return fmt.Errorf("no sink matching %q: %w", c.sinkMatch, ErrSinkNotFound)
}

// ensureSinksRunning checks each virtual sink independently and restarts
// the ones that are dead or never started. Restart-on-death only: a live
// sink is never restarted. Caller holds c.mu.
func (c *ChatMix) ensureSinksRunning() error {
	if err := c.resolveOriginalSink(); err != nil {
		return err
	}

	if c.gameSink == nil || !c.gameSink.Alive() {
		sink, err := c.router.StartLoopback(c.originalSink, c.gameSinkName)
		if err != nil {
			return fmt.Errorf("starting game sink: %w", err)
		}
		c.gameSink = sink
	}
	if c.chatSink == nil || !c.chatSink.Alive() {
		sink, err := c.router.StartLoopback(c.originalSink, c.chatSinkName)
		if err != nil {
			return fmt.Errorf("starting chat sink: %w", err)
		}
		c.chatSink = sink
	}
	return nil
}

// stopSinks terminates both virtual sinks. Caller holds c.mu. Handles are
// dropped so a later ensure call restarts cleanly even if the processes
// take a moment to die.
func (c *ChatMix) stopSinks() {
	if c.gameSink != nil {
		if err := c.gameSink.Stop(); err != nil {
			logging.Error("stopping game sink", zap.Error(err))
		}
		c.gameSink = nil
	}
	if c.chatSink != nil {
		if err := c.chatSink.Stop(); err != nil {
			logging.Error("stopping chat sink", zap.Error(err))
		}
		c.chatSink = nil
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
