package tail

import (
	"context"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/ryanlidster/slimctl/internal/core"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventTrackChange EventType = iota
	EventTrackComplete
	EventTrackSkip
	EventPause
	EventResume
	EventStop
	EventVolumeChange
	EventMuteChange
	EventPlaylistChange
)

// Event represents a playback state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *core.PlaybackState
	Current   *core.PlaybackState
	Playlist  *core.Playlist
}

// Watcher polls a player for state changes and emits events.
type Watcher struct {
	player   core.Player
	interval time.Duration
	events   chan Event
	done     chan struct{}
}

// NewWatcher creates a new state watcher.
func NewWatcher(player core.Player, interval time.Duration) *Watcher {
	if interval == 0 {
		interval = time.Second
	}
	return &Watcher{
		player:   player,
		interval: interval,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
}

// Events returns the channel of playback events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins polling for state changes.
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	var prev *core.PlaybackState

	// Get initial state
	state, err := w.player.GetState(ctx)
	if err == nil {
		prev = state
	}
	prevHash := w.seedPlaylistHash(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			curr, err := w.player.GetState(ctx)
			if err != nil {
				continue
			}

			for _, e := range diffStates(prev, curr) {
				w.emit(e)
			}
			prev = curr

			prevHash = w.watchPlaylist(ctx, curr, prevHash)
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
}

func (w *Watcher) emit(e Event) {
	select {
	case w.events <- e:
	default:
		// Drop event if channel is full
	}
}

// watchPlaylist re-hashes the playlist and emits a change event when the
// content moved. The cursor is not part of the hash, so skipping tracks
// does not count as a playlist edit.
func (w *Watcher) watchPlaylist(ctx context.Context, curr *core.PlaybackState, prevHash uint64) uint64 {
	pl, err := w.player.GetPlaylist(ctx)
	if err != nil {
		return prevHash
	}

	hash, err := hashstructure.Hash(pl.Tracks, hashstructure.FormatV2, nil)
	if err != nil {
		return prevHash
	}

	if prevHash != 0 && hash != prevHash {
		w.emit(Event{
			Type:      EventPlaylistChange,
			Timestamp: time.Now(),
			Current:   curr,
			Playlist:  pl,
		})
	}
	return hash
}

// seedPlaylistHash primes the playlist watch; errors leave it unseeded
// so the first successful poll does not report a phantom edit.
func (w *Watcher) seedPlaylistHash(ctx context.Context) uint64 {
	pl, err := w.player.GetPlaylist(ctx)
	if err != nil {
		return 0
	}
	hash, err := hashstructure.Hash(pl.Tracks, hashstructure.FormatV2, nil)
	if err != nil {
		return 0
	}
	return hash
}

// diffStates compares two states and returns detected events.
func diffStates(prev, curr *core.PlaybackState) []Event {
	if curr == nil {
		return nil
	}

	now := time.Now()
	var events []Event

	// First poll - no previous state
	if prev == nil {
		if curr.HasTrack() {
			events = append(events, Event{
				Type:      EventTrackChange,
				Timestamp: now,
				Current:   curr,
			})
		}
		return events
	}

	// Track change detection
	if trackChanged(prev, curr) {
		eventType := EventTrackChange

		// Check if it was a completion vs skip
		if prev.HasTrack() && wasCompleted(prev) {
			eventType = EventTrackComplete
		} else if prev.HasTrack() && wasSkipped(prev) {
			eventType = EventTrackSkip
		}

		events = append(events, Event{
			Type:      eventType,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	// Mode transition detection
	if prev.Mode != curr.Mode {
		var eventType EventType
		switch curr.Mode {
		case core.ModePause:
			eventType = EventPause
		case core.ModeStop:
			eventType = EventStop
		default:
			eventType = EventResume
		}
		events = append(events, Event{
			Type:      eventType,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	// Mute change detection
	muteFlipped := prev.Muted != curr.Muted
	if muteFlipped {
		events = append(events, Event{
			Type:      EventMuteChange,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	// Volume change detection. Muting moves the reported mixer volume on
	// some players, so a flip swallows the accompanying volume event.
	if prev.Volume != curr.Volume && !muteFlipped {
		events = append(events, Event{
			Type:      EventVolumeChange,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	return events
}

// trackChanged returns true if the track changed.
func trackChanged(prev, curr *core.PlaybackState) bool {
	if prev.Track == nil && curr.Track == nil {
		return false
	}
	if prev.Track == nil || curr.Track == nil {
		return true
	}
	return prev.Track.Key() != curr.Track.Key()
}

// wasCompleted returns true if the track likely completed naturally.
func wasCompleted(state *core.PlaybackState) bool {
	if state.Duration == 0 {
		return false
	}
	// Consider completed if elapsed is >= 95% of duration
	threshold := float64(state.Duration) * 0.95
	return float64(state.Elapsed) >= threshold
}

// wasSkipped returns true if the track was likely skipped.
func wasSkipped(state *core.PlaybackState) bool {
	if state.Duration == 0 {
		return true // Assume skip if we can't determine
	}
	// Consider skipped if elapsed is < 95% of duration
	threshold := float64(state.Duration) * 0.95
	return float64(state.Elapsed) < threshold
}
