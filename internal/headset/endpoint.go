package headset

import "fmt"

// Endpoint identifies one logical communication path on the device: the USB
// interface carrying the vendor protocol, its endpoint addresses, the fixed
// packet size, and the direction-marker bytes the protocol uses on that
// path. Endpoints are immutable values and compare by field equality, which
// lets the dispatch table group features sharing a physical channel.
type Endpoint struct {
	// Interface is the USB bInterfaceNumber the channel lives on.
	Interface int

	// RXAddress is the inbound endpoint address (e.g. 0x84 for EP 4 IN).
	RXAddress byte

	// TXAddress is the outbound endpoint address. Only meaningful when
	// HasTX is set; receive-only devices expose no outbound endpoint,
	// which is a valid state, not an error.
	TXAddress byte
	HasTX     bool

	// PacketSize is the interface's wMaxPacketSize. Control writes are
	// zero-padded to exactly this length.
	PacketSize int

	// TXMarker and RXMarker are the direction bytes prefixed to outbound
	// packets and consumed from inbound packets by the transport.
	TXMarker byte
	RXMarker byte
}

func (e Endpoint) String() string {
	dir := "rx-only"
	if e.HasTX {
		dir = fmt.Sprintf("tx=0x%02X", e.TXAddress)
	}
	return fmt.Sprintf("if%d rx=0x%02X %s size=%d", e.Interface, e.RXAddress, dir, e.PacketSize)
}
