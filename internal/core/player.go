package core

import "context"

// Player defines the interface for controlling a single playback device.
type Player interface {
	// Playback control
	Play(ctx context.Context) error
	Stop(ctx context.Context) error
	Pause(ctx context.Context) error
	Unpause(ctx context.Context) error
	TogglePause(ctx context.Context) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	SeekTo(ctx context.Context, seconds float64) error

	// Volume control
	SetVolume(ctx context.Context, volume int) error
	VolumeUp(ctx context.Context, step int) error
	VolumeDown(ctx context.Context, step int) error
	ToggleMute(ctx context.Context) error

	// State queries
	GetState(ctx context.Context) (*PlaybackState, error)
	GetPlaylist(ctx context.Context) (*Playlist, error)

	// Playlist manipulation
	PlayIndex(ctx context.Context, index int) error
	AddItem(ctx context.Context, item string) error
}
