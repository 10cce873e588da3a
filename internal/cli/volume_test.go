package cli

import "testing"

func TestParseVolumeArg(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		current int
		step    int
		want    int
		wantErr bool
	}{
		{name: "absolute", arg: "50", current: 30, step: 5, want: 50},
		{name: "absolute zero", arg: "0", current: 30, step: 5, want: 0},
		{name: "bare plus steps up", arg: "+", current: 30, step: 5, want: 35},
		{name: "bare minus steps down", arg: "-", current: 30, step: 5, want: 25},
		{name: "relative up", arg: "+15", current: 30, step: 5, want: 45},
		{name: "relative down", arg: "-10", current: 30, step: 5, want: 20},
		{name: "relative clamps high", arg: "+50", current: 90, step: 5, want: 100},
		{name: "relative clamps low", arg: "-50", current: 10, step: 5, want: 0},
		{name: "step clamps at top", arg: "+", current: 98, step: 5, want: 100},
		{name: "absolute over 100", arg: "150", current: 30, step: 5, wantErr: true},
		{name: "garbage", arg: "loud", current: 30, step: 5, wantErr: true},
		{name: "garbage relative", arg: "+much", current: 30, step: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVolumeArg(tt.arg, tt.current, tt.step)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseVolumeArg(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseVolumeArg(%q, %d, %d) = %d, want %d", tt.arg, tt.current, tt.step, got, tt.want)
			}
		})
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-10, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{140, 100},
	}

	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
