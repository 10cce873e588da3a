package tail

import (
	"testing"
	"time"

	"github.com/ryanlidster/slimctl/internal/core"
)

func testState(mode core.Mode, trackID string, elapsed, duration time.Duration) *core.PlaybackState {
	s := &core.PlaybackState{
		Player:   "Kitchen",
		Ref:      "00:04:20:12:ab:cd",
		Mode:     mode,
		Elapsed:  elapsed,
		Duration: duration,
		Volume:   50,
	}
	if trackID != "" {
		s.Track = &core.Track{
			ID:       trackID,
			Title:    "Track " + trackID,
			Artist:   "Artist",
			Duration: duration,
		}
	}
	return s
}

func withVolume(s *core.PlaybackState, v int) *core.PlaybackState {
	s.Volume = v
	return s
}

func withMute(s *core.PlaybackState, muted bool) *core.PlaybackState {
	s.Muted = muted
	return s
}

func TestDiffStates(t *testing.T) {
	tests := []struct {
		name string
		prev *core.PlaybackState
		curr *core.PlaybackState
		want []EventType
	}{
		{
			name: "first poll with track",
			prev: nil,
			curr: testState(core.ModePlay, "1", 0, 240*time.Second),
			want: []EventType{EventTrackChange},
		},
		{
			name: "first poll idle",
			prev: nil,
			curr: testState(core.ModeStop, "", 0, 0),
			want: nil,
		},
		{
			name: "no change",
			prev: testState(core.ModePlay, "1", 10*time.Second, 240*time.Second),
			curr: testState(core.ModePlay, "1", 11*time.Second, 240*time.Second),
			want: nil,
		},
		{
			name: "track completed naturally",
			prev: testState(core.ModePlay, "1", 230*time.Second, 240*time.Second),
			curr: testState(core.ModePlay, "2", 0, 200*time.Second),
			want: []EventType{EventTrackComplete},
		},
		{
			name: "track skipped early",
			prev: testState(core.ModePlay, "1", 30*time.Second, 240*time.Second),
			curr: testState(core.ModePlay, "2", 0, 200*time.Second),
			want: []EventType{EventTrackSkip},
		},
		{
			name: "pause",
			prev: testState(core.ModePlay, "1", 30*time.Second, 240*time.Second),
			curr: testState(core.ModePause, "1", 30*time.Second, 240*time.Second),
			want: []EventType{EventPause},
		},
		{
			name: "resume",
			prev: testState(core.ModePause, "1", 30*time.Second, 240*time.Second),
			curr: testState(core.ModePlay, "1", 30*time.Second, 240*time.Second),
			want: []EventType{EventResume},
		},
		{
			name: "stop keeps the track",
			prev: testState(core.ModePlay, "1", 30*time.Second, 240*time.Second),
			curr: testState(core.ModeStop, "1", 0, 240*time.Second),
			want: []EventType{EventStop},
		},
		{
			name: "volume change",
			prev: testState(core.ModePlay, "1", 30*time.Second, 240*time.Second),
			curr: withVolume(testState(core.ModePlay, "1", 31*time.Second, 240*time.Second), 65),
			want: []EventType{EventVolumeChange},
		},
		{
			name: "mute swallows the volume move",
			prev: testState(core.ModePlay, "1", 30*time.Second, 240*time.Second),
			curr: withMute(withVolume(testState(core.ModePlay, "1", 31*time.Second, 240*time.Second), 0), true),
			want: []EventType{EventMuteChange},
		},
		{
			name: "unmute",
			prev: withMute(testState(core.ModePlay, "1", 30*time.Second, 240*time.Second), true),
			curr: testState(core.ModePlay, "1", 31*time.Second, 240*time.Second),
			want: []EventType{EventMuteChange},
		},
		{
			name: "stream drops to idle",
			prev: testState(core.ModePlay, "1", 30*time.Second, 240*time.Second),
			curr: testState(core.ModeStop, "", 0, 0),
			want: []EventType{EventTrackSkip, EventStop},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := diffStates(tt.prev, tt.curr)
			if len(events) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(events), len(tt.want))
			}
			for i, e := range events {
				if e.Type != tt.want[i] {
					t.Errorf("event %d: got type %v, want %v", i, e.Type, tt.want[i])
				}
			}
		})
	}
}

func TestDiffStatesCarriesStates(t *testing.T) {
	prev := testState(core.ModePlay, "1", 30*time.Second, 240*time.Second)
	curr := testState(core.ModePlay, "2", 0, 200*time.Second)

	events := diffStates(prev, curr)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	e := events[0]
	if e.Previous == nil || e.Previous.Track.ID != "1" {
		t.Errorf("previous state not carried")
	}
	if e.Current == nil || e.Current.Track.ID != "2" {
		t.Errorf("current state not carried")
	}
	if e.Timestamp.IsZero() {
		t.Errorf("timestamp not set")
	}
}

func TestTrackChangedByKey(t *testing.T) {
	// Remote streams have no database ID; the key falls back to the URL.
	prev := testState(core.ModePlay, "", 0, 0)
	prev.Track = &core.Track{Title: "Morning Show", URL: "http://radio.example/a", Remote: true}
	curr := testState(core.ModePlay, "", 0, 0)
	curr.Track = &core.Track{Title: "Morning Show", URL: "http://radio.example/b", Remote: true}

	if !trackChanged(prev, curr) {
		t.Errorf("URL change should count as a track change")
	}

	curr.Track.URL = prev.Track.URL
	if trackChanged(prev, curr) {
		t.Errorf("same URL should not count as a track change")
	}
}
