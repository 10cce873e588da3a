package cli

import "testing"

func TestParseIndex(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{arg: "1", want: 0},
		{arg: "7", want: 6},
		{arg: "0", wantErr: true},
		{arg: "-2", wantErr: true},
		{arg: "first", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseIndex(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIndex(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseIndex(%q) = %d, want %d", tt.arg, got, tt.want)
			}
		})
	}
}
