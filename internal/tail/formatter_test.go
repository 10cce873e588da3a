package tail

import (
	"strings"
	"testing"
	"time"

	"github.com/ryanlidster/slimctl/internal/core"
)

func trackEvent(tp EventType, artist, title string) Event {
	return Event{
		Type:      tp,
		Timestamp: time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC),
		Current: &core.PlaybackState{
			Player: "Kitchen",
			Mode:   core.ModePlay,
			Volume: 50,
			Track:  &core.Track{Title: title, Artist: artist},
		},
	}
}

func TestFormatDefault(t *testing.T) {
	f := NewFormatter()
	got := f.Format(trackEvent(EventTrackChange, "Blur", "Song 2"))
	want := "🎵 Now playing: Blur - Song 2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatPlain(t *testing.T) {
	f := NewFormatter(WithEmoji(false))
	got := f.Format(trackEvent(EventTrackChange, "Blur", "Song 2"))
	want := "Now playing: Blur - Song 2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatTimestamp(t *testing.T) {
	f := NewFormatter(WithEmoji(false), WithTimestamp(true))
	got := f.Format(trackEvent(EventTrackChange, "Blur", "Song 2"))
	if !strings.HasPrefix(got, "15:04:05 ") {
		t.Errorf("missing timestamp prefix: %q", got)
	}
}

func TestFormatStreamWithoutArtist(t *testing.T) {
	f := NewFormatter(WithEmoji(false))
	got := f.Format(trackEvent(EventTrackChange, "", "BBC Radio 6 Music"))
	want := "Now playing: BBC Radio 6 Music"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatTemplate(t *testing.T) {
	f := NewFormatter(WithTemplate("{{.Type}}: {{.Title}} [{{.Volume}}]"))
	got := f.Format(trackEvent(EventTrackChange, "Blur", "Song 2"))
	want := "track_change: Song 2 [50]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatBadTemplateFallsBack(t *testing.T) {
	// An unparseable template is ignored and the default line is used.
	f := NewFormatter(WithEmoji(false), WithTemplate("{{.Title"))
	got := f.Format(trackEvent(EventTrackChange, "Blur", "Song 2"))
	want := "Now playing: Blur - Song 2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatDescriptions(t *testing.T) {
	f := NewFormatter(WithEmoji(false))

	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			name: "finished",
			event: Event{
				Type: EventTrackComplete,
				Previous: &core.PlaybackState{
					Track: &core.Track{Title: "Song 2", Artist: "Blur"},
				},
			},
			want: "Finished: Blur - Song 2",
		},
		{
			name: "skipped",
			event: Event{
				Type: EventTrackSkip,
				Previous: &core.PlaybackState{
					Track: &core.Track{Title: "Song 2", Artist: "Blur"},
				},
			},
			want: "Skipped: Blur - Song 2",
		},
		{
			name:  "paused",
			event: Event{Type: EventPause},
			want:  "Paused",
		},
		{
			name:  "stopped",
			event: Event{Type: EventStop},
			want:  "Stopped",
		},
		{
			name: "volume",
			event: Event{
				Type:    EventVolumeChange,
				Current: &core.PlaybackState{Volume: 65},
			},
			want: "Volume: 65%",
		},
		{
			name: "muted",
			event: Event{
				Type:    EventMuteChange,
				Current: &core.PlaybackState{Muted: true},
			},
			want: "Muted",
		},
		{
			name: "unmuted",
			event: Event{
				Type:    EventMuteChange,
				Current: &core.PlaybackState{Muted: false},
			},
			want: "Unmuted",
		},
		{
			name: "playlist edit",
			event: Event{
				Type: EventPlaylistChange,
				Playlist: &core.Playlist{
					Tracks: []core.Track{{Title: "One"}, {Title: "Two"}, {Title: "Three"}},
				},
			},
			want: "Playlist changed: 3 tracks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.event); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
