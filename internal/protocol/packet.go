package protocol

import "fmt"

// EncodeWrite builds a fixed-length control packet for the device:
// [marker, opcode, payload...] left-aligned and zero-padded to size.
// Size is the endpoint's maximum packet size; the device rejects short
// writes, so the padding is not optional.
func EncodeWrite(marker byte, opcode byte, payload []byte, size int) ([]byte, error) {
	if size < 2 {
		return nil, fmt.Errorf("packet size %d too small for marker and opcode", size)
	}
	if 2+len(payload) > size {
		return nil, fmt.Errorf("payload of %d bytes does not fit in %d byte packet", len(payload), size)
	}

	pkt := make([]byte, size)
	pkt[0] = marker
	pkt[1] = opcode
	copy(pkt[2:], payload)
	return pkt, nil
}

// ChatMixReport is the decoded ChatMix dial position.
type ChatMixReport struct {
	GamePercent int // 0-100
	ChatPercent int // 0-100
}

// ParseChatMixReport decodes an OpChatMixReport packet. The packet starts
// at the opcode byte (direction marker already consumed by the transport).
func ParseChatMixReport(pkt []byte) (ChatMixReport, error) {
	if err := checkOpcode(pkt, OpChatMixReport, 3); err != nil {
		return ChatMixReport{}, err
	}
	return ChatMixReport{
		GamePercent: int(pkt[1]),
		ChatPercent: int(pkt[2]),
	}, nil
}

// PowerState is a decoded base station power transition.
type PowerState byte

const (
	PowerOff PowerState = PowerStateOff
	PowerOn  PowerState = PowerStateOn
)

func (s PowerState) String() string {
	switch s {
	case PowerOff:
		return "off"
	case PowerOn:
		return "on"
	default:
		return fmt.Sprintf("unknown(0x%02X)", byte(s))
	}
}

// ParsePowerState decodes an OpPowerState packet. Values other than
// PowerOff and PowerOn are returned as-is; the caller decides whether to
// ignore them.
func ParsePowerState(pkt []byte) (PowerState, error) {
	if err := checkOpcode(pkt, OpPowerState, 2); err != nil {
		return 0, err
	}
	return PowerState(pkt[1]), nil
}

// ParseVolumeReport decodes an OpVolume packet into the reported
// attenuation in whole dB steps below maximum (0 = loudest).
func ParseVolumeReport(pkt []byte) (int, error) {
	if err := checkOpcode(pkt, OpVolume, 2); err != nil {
		return 0, err
	}
	return int(pkt[1]), nil
}

// EQBandReport is a decoded single-band EQ report.
type EQBandReport struct {
	Band  int
	Value int // raw; dB = (Value-20)/2
}

// Gain returns the band gain in dB.
func (r EQBandReport) Gain() float64 {
	return float64(r.Value-20) / 2
}

// ParseEQBandReport decodes an OpEQBand packet.
func ParseEQBandReport(pkt []byte) (EQBandReport, error) {
	if err := checkOpcode(pkt, OpEQBand, 3); err != nil {
		return EQBandReport{}, err
	}
	return EQBandReport{Band: int(pkt[1]), Value: int(pkt[2])}, nil
}

// ParseEQPresetReport decodes an OpEQPreset packet into the active preset.
func ParseEQPresetReport(pkt []byte) (int, error) {
	if err := checkOpcode(pkt, OpEQPreset, 2); err != nil {
		return 0, err
	}
	return int(pkt[1]), nil
}

func checkOpcode(pkt []byte, opcode byte, minLen int) error {
	if len(pkt) < minLen {
		return fmt.Errorf("%s packet too short: %d bytes (need %d)",
			OpcodeString(opcode), len(pkt), minLen)
	}
	if pkt[0] != opcode {
		return fmt.Errorf("unexpected opcode 0x%02X (want %s)", pkt[0], OpcodeString(opcode))
	}
	return nil
}
