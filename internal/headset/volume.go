package headset

import (
	"go.uber.org/zap"

	"github.com/novamix/novamix/internal/logging"
	"github.com/novamix/novamix/internal/protocol"
)

// Volume is the master attenuation control. It is a stateless pass-through
// writer; the report handler exists so unsolicited volume reports are
// consumed (and published) instead of being dropped as unknown opcodes.
type Volume struct {
	writer   ControlWriter
	ep       Endpoint
	notifier Notifier
}

// NewVolume builds the volume feature for the given endpoint.
func NewVolume(w ControlWriter, ep Endpoint, notifier Notifier) *Volume {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Volume{writer: w, ep: ep, notifier: notifier}
}

func (v *Volume) Kind() Kind         { return KindVolume }
func (v *Volume) Endpoint() Endpoint { return v.ep }

func (v *Volume) Opcodes() map[byte]Handler {
	return map[byte]Handler{protocol.OpVolume: v.handleReport}
}

// SetVolume sets the master volume as attenuation in dB steps below
// maximum (0 = loudest).
func (v *Volume) SetVolume(attenuation byte) error {
	_, err := v.writer.WriteControl(v.ep, protocol.OpVolume, attenuation)
	return err
}

func (v *Volume) handleReport(pkt []byte) {
	attenuation, err := protocol.ParseVolumeReport(pkt)
	if err != nil {
		logging.Warn("bad volume report", zap.Error(err))
		return
	}
	logging.Debug("volume report", zap.Int("attenuation", attenuation))
	v.notifier.Publish(Event{Type: EventVolume, Attenuation: attenuation})
}
