package headset

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/novamix/novamix/internal/logging"
	"github.com/novamix/novamix/internal/protocol"
)

// CustomEQPreset is the preset slot that must be active for per-band
// writes to take effect.
const CustomEQPreset = 4

// EQ exposes preset and per-band equalizer control. Like Volume it is a
// stateless writer whose handlers consume the device's unsolicited EQ
// reports.
type EQ struct {
	writer   ControlWriter
	ep       Endpoint
	notifier Notifier
}

// NewEQ builds the EQ feature for the given endpoint.
func NewEQ(w ControlWriter, ep Endpoint, notifier Notifier) *EQ {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &EQ{writer: w, ep: ep, notifier: notifier}
}

func (e *EQ) Kind() Kind         { return KindEQ }
func (e *EQ) Endpoint() Endpoint { return e.ep }

func (e *EQ) Opcodes() map[byte]Handler {
	return map[byte]Handler{
		protocol.OpEQBand:   e.handleBand,
		protocol.OpEQPreset: e.handlePreset,
	}
}

// SetPreset selects an EQ preset. Preset CustomEQPreset enables per-band
// control.
func (e *EQ) SetPreset(preset byte) error {
	if preset > CustomEQPreset {
		return fmt.Errorf("preset %d out of range (0-%d)", preset, CustomEQPreset)
	}
	_, err := e.writer.WriteControl(e.ep, protocol.OpEQPreset, preset)
	return err
}

// SetBand writes one EQ band with a raw value; dB = (value-20)/2. Takes
// effect only while the custom preset is active.
func (e *EQ) SetBand(band, value byte) error {
	_, err := e.writer.WriteControl(e.ep, protocol.OpEQBand, band, value)
	return err
}

func (e *EQ) handleBand(pkt []byte) {
	report, err := protocol.ParseEQBandReport(pkt)
	if err != nil {
		logging.Warn("bad eq band report", zap.Error(err))
		return
	}
	logging.Debug("eq band report",
		zap.Int("band", report.Band),
		zap.Float64("gain_db", report.Gain()),
	)
	e.notifier.Publish(Event{Type: EventEQBand, Band: report.Band, Value: report.Value})
}

func (e *EQ) handlePreset(pkt []byte) {
	preset, err := protocol.ParseEQPresetReport(pkt)
	if err != nil {
		logging.Warn("bad eq preset report", zap.Error(err))
		return
	}
	logging.Debug("eq preset report", zap.Int("preset", preset))
	e.notifier.Publish(Event{Type: EventEQPreset, Preset: preset})
}
