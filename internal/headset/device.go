package headset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/novamix/novamix/internal/hiddev"
	"github.com/novamix/novamix/internal/logging"
	"github.com/novamix/novamix/internal/protocol"
)

// ErrDeviceNotFound is returned by FindDevice when the model's USB
// interface is not present. Re-exported from the transport so callers need
// not import hiddev for the common failure check.
var ErrDeviceNotFound = hiddev.ErrDeviceNotFound

// Device is the feature registry: it owns the HID channel exclusively,
// holds the set of attached features (one per kind), builds the
// per-endpoint opcode dispatch table, and runs the open/close lifecycle.
type Device struct {
	channel hiddev.Channel
	model   Model

	features  map[Kind]Feature
	listeners map[Endpoint]map[byte]Handler

	openHooks  []OpenHook
	closeHooks []CloseHook

	closing   atomic.Bool
	closeOnce sync.Once
}

// FindDevice locates the model's vendor interface and opens it. Fails fast
// with ErrDeviceNotFound when the hardware is absent; within a single run
// absence is not transient, so there is no retry.
func FindDevice(m Model) (*Device, error) {
	ch, err := hiddev.Find(m.VendorID, m.ProductID, m.Interface)
	if err != nil {
		return nil, err
	}
	return NewDevice(ch, m), nil
}

// NewDevice wraps an already-open channel. Used directly by tests; normal
// callers go through FindDevice.
func NewDevice(ch hiddev.Channel, m Model) *Device {
	return &Device{
		channel:   ch,
		model:     m,
		features:  make(map[Kind]Feature),
		listeners: make(map[Endpoint]map[byte]Handler),
	}
}

// Model returns the model table the device was constructed with.
func (d *Device) Model() Model { return d.model }

// Attach registers features with the device. For each feature the opcode
// table is merged into the endpoint's dispatch table; on an opcode conflict
// the first registration wins and the conflict is logged, since handlers
// are expected to be mutually exclusive by protocol design. Attaching a
// second feature of the same kind replaces the action entry, but opcode
// merging stays additive. Open and close hooks are recorded in attachment
// order.
func (d *Device) Attach(features ...Feature) {
	for _, f := range features {
		d.attach(f)
	}
}

func (d *Device) attach(f Feature) {
	ep := f.Endpoint()
	table := d.listeners[ep]
	if table == nil {
		table = make(map[byte]Handler)
		d.listeners[ep] = table
	}
	for opcode, handler := range f.Opcodes() {
		if _, taken := table[opcode]; taken {
			logging.Warn("opcode already registered, keeping first handler",
				zap.String("opcode", protocol.OpcodeString(opcode)),
				zap.String("feature", string(f.Kind())),
			)
			continue
		}
		table[opcode] = handler
	}

	if _, replaced := d.features[f.Kind()]; replaced {
		logging.Warn("replacing feature of same kind", zap.String("kind", string(f.Kind())))
	}
	d.features[f.Kind()] = f

	if hook, ok := f.(OpenHook); ok {
		d.openHooks = append(d.openHooks, hook)
	}
	if hook, ok := f.(CloseHook); ok {
		d.closeHooks = append(d.closeHooks, hook)
	}
}

// Open fires every open hook in attachment order. Hooks are independent;
// one failing is logged and does not stop the rest, so a feature whose
// activation fails stays attached but inert.
func (d *Device) Open() {
	for _, hook := range d.openHooks {
		if err := hook.OnOpen(); err != nil {
			logging.Error("open hook failed", zap.Error(err))
		}
	}
}

// Close sets the closing flag and fires every close hook exactly once,
// regardless of how many times Close is called or what triggered it
// (normal stop, signal, fatal read error). The channel is released last.
func (d *Device) Close() {
	d.closing.Store(true)
	d.closeOnce.Do(func() {
		for _, hook := range d.closeHooks {
			if err := hook.OnClose(); err != nil {
				logging.Error("close hook failed", zap.Error(err))
			}
		}
		if err := d.channel.Close(); err != nil {
			logging.Error("closing channel", zap.Error(err))
		}
	})
}

// Closing reports whether shutdown has been requested.
func (d *Device) Closing() bool { return d.closing.Load() }

// DispatchOnce performs one bounded read on the endpoint and routes the
// packet by its first byte. A timeout is a normal outcome (nothing to do);
// an unknown opcode is silently dropped to tolerate the many undocumented
// messages these base stations emit. Any other read error is terminal.
func (d *Device) DispatchOnce(ep Endpoint, timeout time.Duration) error {
	buf := make([]byte, ep.PacketSize)
	n, err := d.channel.Read(buf, timeout)
	if err != nil {
		if errors.Is(err, hiddev.ErrReadTimeout) {
			return nil
		}
		return err
	}
	if n == 0 {
		return nil
	}

	pkt := buf[:n]
	logging.LogPacket("rx", protocol.OpcodeString(pkt[0]), pkt)

	handler, ok := d.listeners[ep][pkt[0]]
	if !ok {
		logging.Debug("dropping unknown opcode",
			zap.String("opcode", protocol.OpcodeString(pkt[0])),
		)
		return nil
	}
	handler(pkt)
	return nil
}

// Run is the dispatch loop: it reads and routes packets until the context
// is cancelled, Close is called, or a terminal read error occurs. The
// close sequence runs exactly once on every exit path. A bounded timeout
// exists purely so the loop can observe cancellation between reads; with
// timeout zero the loop relies on the transport surfacing an interrupted
// blocking read as a terminal error.
func (d *Device) Run(ctx context.Context, ep Endpoint, timeout time.Duration) error {
	defer d.Close()

	for {
		if ctx.Err() != nil || d.closing.Load() {
			return nil
		}
		if err := d.DispatchOnce(ep, timeout); err != nil {
			if ctx.Err() != nil || d.closing.Load() {
				// Shutdown interrupted the blocking read; this is the
				// normal close trigger, not a failure.
				return nil
			}
			return fmt.Errorf("dispatch: %w", err)
		}
	}
}

// WriteControl encodes and sends a control packet on the endpoint. Returns
// (false, nil) when the endpoint has no outbound address: receive-only
// devices are a legitimate configuration, and callers probe capability
// through this result rather than through errors.
func (d *Device) WriteControl(ep Endpoint, opcode byte, payload ...byte) (bool, error) {
	if !ep.HasTX {
		return false, nil
	}
	pkt, err := protocol.EncodeWrite(ep.TXMarker, opcode, payload, ep.PacketSize)
	if err != nil {
		return true, err
	}
	if _, err := d.channel.Write(pkt); err != nil {
		return true, fmt.Errorf("control write %s: %w", protocol.OpcodeString(opcode), err)
	}
	logging.LogPacket("tx", protocol.OpcodeString(opcode), pkt)
	return true, nil
}

// Invoke looks up an attached feature by kind and calls fn on it. A kind
// that was never attached is a normal outcome — not every device exposes
// every feature — reported as (false, nil) with no device I/O performed.
func Invoke[F Feature](d *Device, kind Kind, fn func(F) error) (bool, error) {
	f, ok := d.features[kind]
	if !ok {
		return false, nil
	}
	typed, ok := f.(F)
	if !ok {
		return false, fmt.Errorf("feature %s has unexpected type %T", kind, f)
	}
	return true, fn(typed)
}
