// Package protocol implements the SteelSeries Nova base station binary
// protocol.
//
// This package handles construction and decoding of the vendor HID messages
// exchanged with Arctis Nova base stations over the control interface.
//
// # Protocol Overview
//
// Control writes to the base station have this structure:
//   - Byte 0: direction marker (0x06, to base station)
//   - Byte 1: opcode
//   - Bytes 2..N: parameters
//   - Remainder: zero padding to the endpoint's maximum packet size
//
// Inbound reports start directly at the opcode byte; the transport consumes
// the direction marker (0x07) on read:
//   - Byte 0: opcode
//   - Bytes 1..N: parameters
//
// # Opcodes
//
// The documented opcode table covers volume (0x25), EQ preset (0x2E), EQ
// band (0x31), ChatMix dial reports (0x45), ChatMix enable (0x49), the
// Sonar icon (0x8D), and base station power state (0xB9). Base stations
// emit plenty of undocumented opcodes; callers are expected to drop those
// silently rather than treat them as errors.
//
// # Usage Example - Construction
//
//	pkt, err := protocol.EncodeWrite(protocol.DirectionTX,
//	    protocol.OpChatMixEnable, []byte{1}, 64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// write pkt to the device
//
// # Usage Example - Decoding
//
//	report, err := protocol.ParseChatMixReport(pkt)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("game %d%% chat %d%%\n", report.GamePercent, report.ChatPercent)
//
// # Thread Safety
//
// All construction and decoding functions are stateless and safe for
// concurrent use.
package protocol
