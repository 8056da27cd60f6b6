package headset

import (
	"fmt"
	"sort"

	"github.com/novamix/novamix/internal/protocol"
)

// Model is the per-device-model constant table: USB identity, packet
// geometry, and which protocol quirks the model has. Models are plain
// values passed into construction; nothing is inherited or mutated.
type Model struct {
	// Name is the human-readable model name.
	Name string

	// ID is the stable identifier used in config files and flags.
	ID string

	VendorID  uint16
	ProductID uint16

	// Interface is the bInterfaceNumber carrying the vendor protocol.
	Interface int

	// PacketSize is the interface's wMaxPacketSize.
	PacketSize int

	// RXAddress and TXAddress are the endpoint addresses. HasTX is false
	// for receive-only models, which cannot accept control writes.
	RXAddress byte
	TXAddress byte
	HasTX     bool

	// SinkMatch is the substring identifying the model's output sink in
	// the audio server's sink list.
	SinkMatch string

	// PowerReports marks models whose wireless dongle reports base
	// station power transitions (opcode 0xB9).
	PowerReports bool
}

// Endpoint returns the model's vendor protocol endpoint.
func (m Model) Endpoint() Endpoint {
	return Endpoint{
		Interface:  m.Interface,
		RXAddress:  m.RXAddress,
		TXAddress:  m.TXAddress,
		HasTX:      m.HasTX,
		PacketSize: m.PacketSize,
		TXMarker:   protocol.DirectionTX,
		RXMarker:   protocol.DirectionRX,
	}
}

// NovaProWireless is the Arctis Nova Pro Wireless base station. Full
// control surface: volume, EQ, ChatMix, and the Sonar icon.
var NovaProWireless = Model{
	Name:       "Arctis Nova Pro Wireless",
	ID:         "nova-pro-wireless",
	VendorID:   0x1038,
	ProductID:  0x12E0,
	Interface:  4,
	PacketSize: 64,
	RXAddress:  0x84,
	TXAddress:  0x04,
	HasTX:      true,
	SinkMatch:  "SteelSeries_Arctis_Nova_Pro_Wireless",
}

// Nova5X is the Arctis Nova 5X wireless dongle. Receive-only: it reports
// the ChatMix dial and power transitions but accepts no control writes.
var Nova5X = Model{
	Name:         "Arctis Nova 5X",
	ID:           "nova-5x",
	VendorID:     0x1038,
	ProductID:    0x2253,
	Interface:    5,
	PacketSize:   64,
	RXAddress:    0x84,
	HasTX:        false,
	SinkMatch:    "SteelSeries_Arctis_Nova_5X",
	PowerReports: true,
}

var models = map[string]Model{
	NovaProWireless.ID: NovaProWireless,
	Nova5X.ID:          Nova5X,
}

// ModelByID looks up a supported model by its config identifier.
func ModelByID(id string) (Model, error) {
	m, ok := models[id]
	if !ok {
		return Model{}, fmt.Errorf("unknown model %q (supported: %v)", id, ModelIDs())
	}
	return m, nil
}

// ModelIDs returns the supported model identifiers, sorted.
func ModelIDs() []string {
	ids := make([]string, 0, len(models))
	for id := range models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
