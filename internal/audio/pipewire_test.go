package audio

import "testing"

func TestParseSinkList(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []SinkInfo
	}{
		{
			name: "typical output",
			out: "55\talsa_output.pci-0000_0b_00.4.analog-stereo\tPipeWire\ts32le 2ch 48000Hz\tSUSPENDED\n" +
				"87\talsa_output.usb-SteelSeries_Arctis_Nova_5X-00.analog-stereo\tPipeWire\ts16le 2ch 48000Hz\tRUNNING\n",
			want: []SinkInfo{
				{ID: "55", Name: "alsa_output.pci-0000_0b_00.4.analog-stereo"},
				{ID: "87", Name: "alsa_output.usb-SteelSeries_Arctis_Nova_5X-00.analog-stereo"},
			},
		},
		{
			name: "empty output",
			out:  "",
			want: nil,
		},
		{
			name: "trailing newline only",
			out:  "\n",
			want: nil,
		},
		{
			name: "malformed line skipped",
			out:  "not-a-sink-line\n12\tgood_sink\tPipeWire\n",
			want: []SinkInfo{{ID: "12", Name: "good_sink"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSinkList(tt.out)
			if len(got) != len(tt.want) {
				t.Fatalf("parseSinkList() returned %d sinks, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sink[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
