package lms

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	slimerrors "github.com/ryanlidster/slimctl/internal/errors"
)

const (
	// DefaultVolumeStep is the mixer step used when no step is given.
	DefaultVolumeStep = 5

	// DefaultSkipSeconds is the jump used by forward/rewind when no
	// amount is given.
	DefaultSkipSeconds = 10
)

// Player is a handle on one playback device attached to a Server. The
// handle caches nothing but identity (reference, name, model, address):
// volume, mode, position and everything else is queried fresh on every
// read, keeping the server the single source of truth. A Player is not
// safe for concurrent use; share the Server instead, its channel is.
type Player struct {
	srv *Server
	ref string

	name  string
	model string
	addr  string
}

// NewPlayer attaches a handle to the player identified by ref, the
// opaque reference token (usually the player's MAC address) that routes
// every command. No format validation is applied to ref; construction
// fails only when the identity refresh cannot reach the server.
func NewPlayer(ctx context.Context, srv *Server, ref string) (*Player, error) {
	p := &Player{srv: srv, ref: ref}
	if err := p.Refresh(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// AttachPlayer wraps an already-enumerated player in a handle without
// any round trips, taking its identity snapshot from the enumeration
// entry instead of refreshing.
func AttachPlayer(srv *Server, info PlayerInfo) *Player {
	return &Player{
		srv:   srv,
		ref:   info.Ref,
		name:  info.Name,
		model: info.Model,
		addr:  info.Addr,
	}
}

// NewPlayerByIndex resolves the player at the server's ordinal index,
// then attaches a handle to it. The extra resolution round trip is
// inherently racy against players joining or leaving; prefer NewPlayer
// when the reference is known.
func NewPlayerByIndex(ctx context.Context, srv *Server, index int) (*Player, error) {
	res, err := srv.Request(ctx, "", "player", "id", strconv.Itoa(index), "?")
	if err != nil {
		return nil, err
	}
	ref := stringField(res, "_id", "")
	if ref == "" {
		return nil, fmt.Errorf("player index %d: %w", index, slimerrors.ErrPlayerNotFound)
	}
	return NewPlayer(ctx, srv, ref)
}

// Ref returns the immutable reference token the player is addressed by.
func (p *Player) Ref() string {
	return p.ref
}

// Server returns the server the player is attached to.
func (p *Player) Server() *Server {
	return p.srv
}

// Model returns the model name captured by the last Refresh.
func (p *Player) Model() string {
	return p.model
}

// Addr returns the network address captured by the last Refresh.
func (p *Player) Addr() string {
	return p.addr
}

func (p *Player) String() string {
	if p.name == "" {
		return p.ref
	}
	return fmt.Sprintf("%s (%s)", p.name, p.ref)
}

// Equal reports whether other identifies the same player. It accepts
// another Player or a bare reference string; references compare
// case-insensitively. Any other value is simply not equal.
func (p *Player) Equal(other any) bool {
	switch o := other.(type) {
	case *Player:
		return o != nil && strings.EqualFold(p.ref, o.ref)
	case Player:
		return strings.EqualFold(p.ref, o.ref)
	case string:
		return strings.EqualFold(p.ref, o)
	default:
		return false
	}
}

// Refresh re-reads the identity snapshot: name (only when the cache is
// empty), model and network address. It runs once at construction.
// Mutable playback state is never cached, so there is nothing else to
// refresh.
func (p *Player) Refresh(ctx context.Context) error {
	if _, err := p.Name(ctx); err != nil {
		return err
	}

	res, err := p.Send(ctx, "player", "model", "?")
	if err != nil {
		return err
	}
	p.model = stringField(res, "_model", "")

	res, err = p.Send(ctx, "player", "ip", "?")
	if err != nil {
		return err
	}
	p.addr = stringField(res, "_ip", "")
	return nil
}

// Send issues one command addressed to this player and returns the raw
// result mapping. Any state the command mutates lives server-side; the
// round trip is the only local effect.
func (p *Player) Send(ctx context.Context, words ...string) (Result, error) {
	return p.srv.Request(ctx, p.ref, words...)
}

// Name returns the player's name, reading it from the server only when
// the cached copy is empty.
func (p *Player) Name(ctx context.Context) (string, error) {
	if p.name != "" {
		return p.name, nil
	}
	res, err := p.Send(ctx, "name", "?")
	if err != nil {
		return "", err
	}
	p.name = stringField(res, "_value", "")
	return p.name, nil
}

// SetName renames the player on the server.
func (p *Player) SetName(ctx context.Context, name string) error {
	if _, err := p.Send(ctx, "name", name); err != nil {
		return err
	}
	p.name = name
	return nil
}

// Mode returns the playback mode reported by the server: "play",
// "pause" or "stop".
func (p *Player) Mode(ctx context.Context) (string, error) {
	res, err := p.Send(ctx, "mode", "?")
	if err != nil {
		return "", err
	}
	return stringField(res, "_mode", ""), nil
}

// Play starts playing the current playlist item.
func (p *Player) Play(ctx context.Context) error {
	_, err := p.Send(ctx, "play")
	return err
}

// Stop stops the player.
func (p *Player) Stop(ctx context.Context) error {
	_, err := p.Send(ctx, "stop")
	return err
}

// Pause pauses the player. Pausing an already paused player does not
// resume it.
func (p *Player) Pause(ctx context.Context) error {
	_, err := p.Send(ctx, "pause", "1")
	return err
}

// Unpause resumes a paused player.
func (p *Player) Unpause(ctx context.Context) error {
	_, err := p.Send(ctx, "pause", "0")
	return err
}

// TogglePause flips between playing and paused.
func (p *Player) TogglePause(ctx context.Context) error {
	_, err := p.Send(ctx, "pause")
	return err
}

// Next jumps to the next playlist item.
func (p *Player) Next(ctx context.Context) error {
	_, err := p.Send(ctx, "playlist", "jump", "+1")
	return err
}

// Prev jumps to the previous playlist item.
func (p *Player) Prev(ctx context.Context) error {
	_, err := p.Send(ctx, "playlist", "jump", "-1")
	return err
}

// SeekTo moves playback to an absolute position in the current track.
// A non-finite position is dropped without a server call.
func (p *Player) SeekTo(ctx context.Context, seconds float64) error {
	if !isFinite(seconds) {
		return nil
	}
	_, err := p.Send(ctx, "time", strconv.FormatFloat(seconds, 'f', -1, 64))
	return err
}

// Forward jumps ahead in the current track, truncating fractional
// seconds. A non-finite amount is dropped without a server call.
func (p *Player) Forward(ctx context.Context, seconds float64) error {
	if !isFinite(seconds) {
		return nil
	}
	_, err := p.Send(ctx, "time", fmt.Sprintf("+%d", int(seconds)))
	return err
}

// Rewind jumps backwards in the current track, truncating fractional
// seconds. A non-finite amount is dropped without a server call.
func (p *Player) Rewind(ctx context.Context, seconds float64) error {
	if !isFinite(seconds) {
		return nil
	}
	_, err := p.Send(ctx, "time", fmt.Sprintf("-%d", int(seconds)))
	return err
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Volume returns the current mixer volume, 0 when the field is missing
// or malformed.
func (p *Player) Volume(ctx context.Context) (int, error) {
	res, err := p.Send(ctx, "mixer", "volume", "?")
	if err != nil {
		return 0, err
	}
	return intField(res, "_volume", 0), nil
}

// SetVolume sets the mixer volume, clamping v to [0,100] before
// sending.
func (p *Player) SetVolume(ctx context.Context, v int) error {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	_, err := p.Send(ctx, "mixer", "volume", strconv.Itoa(v))
	return err
}

// VolumeUp raises the volume by step, or by DefaultVolumeStep when step
// is not positive.
func (p *Player) VolumeUp(ctx context.Context, step int) error {
	if step <= 0 {
		step = DefaultVolumeStep
	}
	_, err := p.Send(ctx, "mixer", "volume", fmt.Sprintf("+%d", step))
	return err
}

// VolumeDown lowers the volume by step, or by DefaultVolumeStep when
// step is not positive.
func (p *Player) VolumeDown(ctx context.Context, step int) error {
	if step <= 0 {
		step = DefaultVolumeStep
	}
	_, err := p.Send(ctx, "mixer", "volume", fmt.Sprintf("-%d", step))
	return err
}

// Muted reports whether the player is muted; a missing or malformed
// field reads as unmuted.
func (p *Player) Muted(ctx context.Context) (bool, error) {
	res, err := p.Send(ctx, "mixer", "muting", "?")
	if err != nil {
		return false, err
	}
	return boolField(res, "_muting"), nil
}

// SetMuted mutes or unmutes the player.
func (p *Player) SetMuted(ctx context.Context, muted bool) error {
	arg := "0"
	if muted {
		arg = "1"
	}
	_, err := p.Send(ctx, "mixer", "muting", arg)
	return err
}

// Mute mutes the player.
func (p *Player) Mute(ctx context.Context) error {
	return p.SetMuted(ctx, true)
}

// Unmute unmutes the player.
func (p *Player) Unmute(ctx context.Context) error {
	return p.SetMuted(ctx, false)
}

// ToggleMute flips the muting state.
func (p *Player) ToggleMute(ctx context.Context) error {
	_, err := p.Send(ctx, "mixer", "muting")
	return err
}

// TimeElapsed returns the seconds elapsed in the current track, 0.0
// when the field is missing or malformed.
func (p *Player) TimeElapsed(ctx context.Context) (float64, error) {
	res, err := p.Send(ctx, "time", "?")
	if err != nil {
		return 0, err
	}
	return floatField(res, "_time", 0.0), nil
}

// TrackDuration returns the length of the current track in seconds,
// 0.0 when the field is missing or malformed.
func (p *Player) TrackDuration(ctx context.Context) (float64, error) {
	res, err := p.Send(ctx, "duration", "?")
	if err != nil {
		return 0, err
	}
	return floatField(res, "_duration", 0.0), nil
}

// ElapsedAndDuration returns the elapsed time and total duration of the
// current track.
func (p *Player) ElapsedAndDuration(ctx context.Context) (elapsed, duration float64, err error) {
	duration, err = p.TrackDuration(ctx)
	if err != nil {
		return 0, 0, err
	}
	elapsed, err = p.TimeElapsed(ctx)
	if err != nil {
		return 0, 0, err
	}
	return elapsed, duration, nil
}

// TimeRemaining returns the seconds left in the current track. The
// result goes negative when elapsed time overshoots the duration; it is
// not clamped.
func (p *Player) TimeRemaining(ctx context.Context) (float64, error) {
	elapsed, duration, err := p.ElapsedAndDuration(ctx)
	if err != nil {
		return 0, err
	}
	return duration - elapsed, nil
}

// PercentElapsed returns how far playback is through the current track,
// scaled to [0, scale]. A zero duration yields 0.0 instead of a
// division error.
func (p *Player) PercentElapsed(ctx context.Context, scale float64) (float64, error) {
	elapsed, duration, err := p.ElapsedAndDuration(ctx)
	if err != nil {
		return 0, err
	}
	if duration == 0 {
		return 0.0, nil
	}
	return (elapsed / duration) * scale, nil
}

// CurrentTitle returns the title of the current track, or the stream
// title for remote streams.
func (p *Player) CurrentTitle(ctx context.Context) (string, error) {
	res, err := p.Send(ctx, "current_title", "?")
	if err != nil {
		return "", err
	}
	return stringField(res, "_current_title", ""), nil
}

// TrackTitle returns the title of the current playlist item.
func (p *Player) TrackTitle(ctx context.Context) (string, error) {
	res, err := p.Send(ctx, "title", "?")
	if err != nil {
		return "", err
	}
	return stringField(res, "_title", ""), nil
}

// TrackArtist returns the artist of the current playlist item.
func (p *Player) TrackArtist(ctx context.Context) (string, error) {
	res, err := p.Send(ctx, "artist", "?")
	if err != nil {
		return "", err
	}
	return stringField(res, "_artist", ""), nil
}

// TrackAlbum returns the album of the current playlist item.
func (p *Player) TrackAlbum(ctx context.Context) (string, error) {
	res, err := p.Send(ctx, "album", "?")
	if err != nil {
		return "", err
	}
	return stringField(res, "_album", ""), nil
}

// SignalStrength returns the player's wifi signal strength, 0 for
// wired players.
func (p *Player) SignalStrength(ctx context.Context) (int, error) {
	res, err := p.Send(ctx, "signalstrength", "?")
	if err != nil {
		return 0, err
	}
	return intField(res, "_signalstrength", 0), nil
}
