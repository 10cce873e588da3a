package core

import "time"

// Mode represents a player's transport state.
type Mode string

const (
	ModePlay  Mode = "play"
	ModePause Mode = "pause"
	ModeStop  Mode = "stop"
)

// IsPlaying returns true if the mode indicates active playback.
func (m Mode) IsPlaying() bool {
	return m == ModePlay
}

// PlaybackState represents the current playback state of a player.
type PlaybackState struct {
	Player   string        `json:"player"`
	Ref      string        `json:"ref"`
	Mode     Mode          `json:"mode"`
	Track    *Track        `json:"track"`
	Elapsed  time.Duration `json:"elapsed"`
	Duration time.Duration `json:"duration"`
	Volume   int           `json:"volume"`
	Muted    bool          `json:"muted"`
}

// HasTrack returns true if there is an active track.
func (s *PlaybackState) HasTrack() bool {
	return s != nil && s.Track != nil
}

// IsPlaying returns true if the player is actively playing.
func (s *PlaybackState) IsPlaying() bool {
	return s != nil && s.Mode.IsPlaying()
}

// ProgressPercent returns playback progress as a percentage (0-100).
// A zero duration reports zero progress rather than dividing by it.
func (s *PlaybackState) ProgressPercent() float64 {
	if s == nil || s.Duration == 0 {
		return 0
	}
	return float64(s.Elapsed) / float64(s.Duration) * 100
}

// Remaining returns the time left in the current track. It goes
// negative when the reported elapsed time overshoots the duration.
func (s *PlaybackState) Remaining() time.Duration {
	if s == nil {
		return 0
	}
	return s.Duration - s.Elapsed
}
