package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{"zero", 0, "0:00"},
		{"under a minute", 59, "0:59"},
		{"minute and a half", 90, "1:30"},
		{"over an hour", 3725, "1:02:05"},
		{"negative clamps to zero", -5, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exactly10!", 10, "exactly10!"},
		{"truncated", "a longer string here", 10, "a longe..."},
		{"tiny max", "abcdef", 3, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		width   int
		want    string
	}{
		{"empty", 0, 100, 4, "────"},
		{"half", 50, 100, 4, "━━──"},
		{"full", 100, 100, 4, "━━━━"},
		{"past the end", 150, 100, 4, "━━━━"},
		{"unknown total", 30, 0, 4, "────"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatProgress(tt.current, tt.total, tt.width); got != tt.want {
				t.Errorf("FormatProgress(%d, %d, %d) = %q, want %q", tt.current, tt.total, tt.width, got, tt.want)
			}
		})
	}
}

func TestTableWriter(t *testing.T) {
	var buf bytes.Buffer
	table := NewTableWriter(&buf, "NAME", "MODE")
	table.Row("Kitchen", "play")
	table.Row("Bedroom", "stop")
	table.Flush()

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header = %q, want NAME first", lines[0])
	}
	if !strings.Contains(lines[1], "Kitchen") || !strings.Contains(lines[1], "play") {
		t.Errorf("row = %q, want Kitchen and play", lines[1])
	}
}
