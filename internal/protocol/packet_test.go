package protocol

import (
	"bytes"
	"testing"
)

func TestEncodeWrite(t *testing.T) {
	tests := []struct {
		name    string
		marker  byte
		opcode  byte
		payload []byte
		size    int
		wantErr bool
		verify  func(t *testing.T, pkt []byte)
	}{
		{
			name:    "chatmix enable",
			marker:  DirectionTX,
			opcode:  OpChatMixEnable,
			payload: []byte{1},
			size:    64,
			verify: func(t *testing.T, pkt []byte) {
				if len(pkt) != 64 {
					t.Errorf("len = %d, want 64", len(pkt))
				}
				if pkt[0] != DirectionTX {
					t.Errorf("marker = 0x%02X, want 0x%02X", pkt[0], DirectionTX)
				}
				if pkt[1] != OpChatMixEnable {
					t.Errorf("opcode = 0x%02X, want 0x%02X", pkt[1], OpChatMixEnable)
				}
				if pkt[2] != 1 {
					t.Errorf("payload[0] = %d, want 1", pkt[2])
				}
				if !bytes.Equal(pkt[3:], make([]byte, 61)) {
					t.Error("padding is not zeroed")
				}
			},
		},
		{
			name:   "empty payload",
			marker: DirectionTX,
			opcode: OpSonarIcon,
			size:   64,
			verify: func(t *testing.T, pkt []byte) {
				if !bytes.Equal(pkt[2:], make([]byte, 62)) {
					t.Error("padding is not zeroed")
				}
			},
		},
		{
			name:    "payload fills packet exactly",
			marker:  DirectionTX,
			opcode:  OpEQBand,
			payload: []byte{1, 2},
			size:    4,
			verify: func(t *testing.T, pkt []byte) {
				want := []byte{DirectionTX, OpEQBand, 1, 2}
				if !bytes.Equal(pkt, want) {
					t.Errorf("pkt = %v, want %v", pkt, want)
				}
			},
		},
		{
			name:    "payload too large",
			marker:  DirectionTX,
			opcode:  OpEQBand,
			payload: []byte{1, 2, 3},
			size:    4,
			wantErr: true,
		},
		{
			name:    "size too small for header",
			marker:  DirectionTX,
			opcode:  OpVolume,
			size:    1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkt, err := EncodeWrite(tt.marker, tt.opcode, tt.payload, tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EncodeWrite() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.verify != nil {
				tt.verify(t, pkt)
			}
		})
	}
}

// TestEncodeWriteRoundTrip verifies that a simulated device-side decode of
// an encoded packet recovers the marker, opcode, and parameters.
func TestEncodeWriteRoundTrip(t *testing.T) {
	pkt, err := EncodeWrite(DirectionTX, OpChatMixReport, []byte{40, 60}, 64)
	if err != nil {
		t.Fatalf("EncodeWrite() error = %v", err)
	}

	if pkt[0] != DirectionTX {
		t.Errorf("marker = 0x%02X, want 0x%02X", pkt[0], DirectionTX)
	}

	// The device strips the marker; the remainder is an opcode-first packet.
	report, err := ParseChatMixReport(pkt[1:])
	if err != nil {
		t.Fatalf("ParseChatMixReport() error = %v", err)
	}
	if report.GamePercent != 40 || report.ChatPercent != 60 {
		t.Errorf("report = %+v, want game 40 chat 60", report)
	}
}

func TestParseChatMixReport(t *testing.T) {
	tests := []struct {
		name    string
		pkt     []byte
		want    ChatMixReport
		wantErr bool
	}{
		{
			name: "valid report",
			pkt:  []byte{OpChatMixReport, 100, 37},
			want: ChatMixReport{GamePercent: 100, ChatPercent: 37},
		},
		{
			name: "trailing padding ignored",
			pkt:  append([]byte{OpChatMixReport, 0, 0}, make([]byte, 61)...),
			want: ChatMixReport{GamePercent: 0, ChatPercent: 0},
		},
		{
			name:    "too short",
			pkt:     []byte{OpChatMixReport, 50},
			wantErr: true,
		},
		{
			name:    "wrong opcode",
			pkt:     []byte{OpVolume, 50, 50},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChatMixReport(tt.pkt)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseChatMixReport() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseChatMixReport() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParsePowerState(t *testing.T) {
	tests := []struct {
		name    string
		pkt     []byte
		want    PowerState
		wantErr bool
	}{
		{name: "power off", pkt: []byte{OpPowerState, 2}, want: PowerOff},
		{name: "power on", pkt: []byte{OpPowerState, 3}, want: PowerOn},
		{name: "unknown value passes through", pkt: []byte{OpPowerState, 9}, want: PowerState(9)},
		{name: "too short", pkt: []byte{OpPowerState}, wantErr: true},
		{name: "wrong opcode", pkt: []byte{OpChatMixReport, 2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePowerState(tt.pkt)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePowerState() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParsePowerState() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPowerStateString(t *testing.T) {
	if got := PowerOff.String(); got != "off" {
		t.Errorf("PowerOff.String() = %q, want %q", got, "off")
	}
	if got := PowerOn.String(); got != "on" {
		t.Errorf("PowerOn.String() = %q, want %q", got, "on")
	}
	if got := PowerState(7).String(); got != "unknown(0x07)" {
		t.Errorf("PowerState(7).String() = %q, want %q", got, "unknown(0x07)")
	}
}

func TestParseEQBandReport(t *testing.T) {
	report, err := ParseEQBandReport([]byte{OpEQBand, 3, 24})
	if err != nil {
		t.Fatalf("ParseEQBandReport() error = %v", err)
	}
	if report.Band != 3 {
		t.Errorf("Band = %d, want 3", report.Band)
	}
	if report.Value != 24 {
		t.Errorf("Value = %d, want 24", report.Value)
	}
	if gain := report.Gain(); gain != 2.0 {
		t.Errorf("Gain() = %v, want 2.0", gain)
	}

	if _, err := ParseEQBandReport([]byte{OpEQBand, 3}); err == nil {
		t.Error("ParseEQBandReport() should fail on short packet")
	}
}

func TestParseVolumeReport(t *testing.T) {
	attenuation, err := ParseVolumeReport([]byte{OpVolume, 12})
	if err != nil {
		t.Fatalf("ParseVolumeReport() error = %v", err)
	}
	if attenuation != 12 {
		t.Errorf("attenuation = %d, want 12", attenuation)
	}
}

func TestParseEQPresetReport(t *testing.T) {
	preset, err := ParseEQPresetReport([]byte{OpEQPreset, 4})
	if err != nil {
		t.Fatalf("ParseEQPresetReport() error = %v", err)
	}
	if preset != 4 {
		t.Errorf("preset = %d, want 4", preset)
	}
}

func TestOpcodeString(t *testing.T) {
	tests := []struct {
		opcode byte
		want   string
	}{
		{OpVolume, "volume"},
		{OpEQPreset, "eq-preset"},
		{OpEQBand, "eq-band"},
		{OpChatMixReport, "chatmix"},
		{OpChatMixEnable, "chatmix-enable"},
		{OpSonarIcon, "sonar-icon"},
		{OpPowerState, "power-state"},
		{0xFF, "unknown(0xFF)"},
	}

	for _, tt := range tests {
		if got := OpcodeString(tt.opcode); got != tt.want {
			t.Errorf("OpcodeString(0x%02X) = %q, want %q", tt.opcode, got, tt.want)
		}
	}
}
