package protocol

import "fmt"

// Direction markers. The first byte of every outbound packet selects the
// data direction; the transport strips the marker from inbound packets
// before they reach the dispatch loop.
const (
	DirectionTX = 0x06 // to base station
	DirectionRX = 0x07 // from base station
)

// Opcodes (first payload byte of an inbound packet, second byte of an
// outbound packet). These values are fixed per device family.
const (
	// OpVolume carries master volume attenuation, 1 byte (0 = loudest).
	OpVolume = 0x25

	// OpEQPreset sets and reports the enabled EQ preset, 1 byte.
	// Preset 4 is the custom preset required for per-band writes.
	OpEQPreset = 0x2E

	// OpEQBand sets and reports a single EQ band, 2 bytes: band index and
	// raw value. Raw values map to dB as (value-20)/2.
	OpEQBand = 0x31

	// OpChatMixReport carries the ChatMix dial position, 2 bytes:
	// game volume percent and chat volume percent (0-100).
	OpChatMixReport = 0x45

	// OpChatMixEnable toggles the base station's ChatMix controls, 1 byte
	// (0 = disabled, 1 = enabled). While enabled the dial emits
	// OpChatMixReport packets instead of adjusting master volume.
	OpChatMixEnable = 0x49

	// OpSonarIcon toggles the Sonar icon on the base station display,
	// 1 byte. As far as anyone knows this only controls the icon.
	OpSonarIcon = 0x8D

	// OpPowerState reports base station power transitions (wireless
	// dongle models only), 1 byte: PowerStateOff or PowerStateOn.
	OpPowerState = 0xB9
)

// OpPowerState payload values.
const (
	PowerStateOff = 0x02
	PowerStateOn  = 0x03
)

// OpcodeString returns a human-readable opcode name for log output.
func OpcodeString(opcode byte) string {
	switch opcode {
	case OpVolume:
		return "volume"
	case OpEQPreset:
		return "eq-preset"
	case OpEQBand:
		return "eq-band"
	case OpChatMixReport:
		return "chatmix"
	case OpChatMixEnable:
		return "chatmix-enable"
	case OpSonarIcon:
		return "sonar-icon"
	case OpPowerState:
		return "power-state"
	default:
		return fmt.Sprintf("unknown(0x%02X)", opcode)
	}
}
