package playback

import (
	"context"
	"time"

	"github.com/ryanlidster/slimctl/internal/core"
	"github.com/ryanlidster/slimctl/internal/lms"
)

// Player implements core.Player on top of an attached player handle.
type Player struct {
	lp *lms.Player
}

// New wraps a player handle for use behind core.Player.
func New(lp *lms.Player) *Player {
	return &Player{lp: lp}
}

// Handle returns the underlying player handle.
func (p *Player) Handle() *lms.Player {
	return p.lp
}

// Play starts playback.
func (p *Player) Play(ctx context.Context) error {
	return p.lp.Play(ctx)
}

// Stop stops playback.
func (p *Player) Stop(ctx context.Context) error {
	return p.lp.Stop(ctx)
}

// Pause pauses playback.
func (p *Player) Pause(ctx context.Context) error {
	return p.lp.Pause(ctx)
}

// Unpause resumes paused playback.
func (p *Player) Unpause(ctx context.Context) error {
	return p.lp.Unpause(ctx)
}

// TogglePause toggles between playing and paused.
func (p *Player) TogglePause(ctx context.Context) error {
	return p.lp.TogglePause(ctx)
}

// Next skips to the next playlist entry.
func (p *Player) Next(ctx context.Context) error {
	return p.lp.Next(ctx)
}

// Prev skips to the previous playlist entry.
func (p *Player) Prev(ctx context.Context) error {
	return p.lp.Prev(ctx)
}

// SeekTo seeks to a position in the current track.
func (p *Player) SeekTo(ctx context.Context, seconds float64) error {
	return p.lp.SeekTo(ctx, seconds)
}

// SetVolume sets the playback volume (0-100).
func (p *Player) SetVolume(ctx context.Context, volume int) error {
	return p.lp.SetVolume(ctx, volume)
}

// VolumeUp raises the volume by step points.
func (p *Player) VolumeUp(ctx context.Context, step int) error {
	return p.lp.VolumeUp(ctx, step)
}

// VolumeDown lowers the volume by step points.
func (p *Player) VolumeDown(ctx context.Context, step int) error {
	return p.lp.VolumeDown(ctx, step)
}

// ToggleMute toggles the mute state.
func (p *Player) ToggleMute(ctx context.Context) error {
	return p.lp.ToggleMute(ctx)
}

// PlayIndex jumps playback to a playlist position.
func (p *Player) PlayIndex(ctx context.Context, index int) error {
	return p.lp.PlayIndex(ctx, index)
}

// PlayItem replaces the playlist with an item and plays it.
func (p *Player) PlayItem(ctx context.Context, item string) error {
	return p.lp.PlayItem(ctx, item)
}

// AddItem appends an item to the playlist.
func (p *Player) AddItem(ctx context.Context, item string) error {
	return p.lp.AddItem(ctx, item)
}

// GetState returns the current playback state.
func (p *Player) GetState(ctx context.Context) (*core.PlaybackState, error) {
	name, err := p.lp.Name(ctx)
	if err != nil {
		return nil, err
	}
	mode, err := p.lp.Mode(ctx)
	if err != nil {
		return nil, err
	}
	elapsed, duration, err := p.lp.ElapsedAndDuration(ctx)
	if err != nil {
		return nil, err
	}
	volume, err := p.lp.Volume(ctx)
	if err != nil {
		return nil, err
	}
	muted, err := p.lp.Muted(ctx)
	if err != nil {
		return nil, err
	}

	state := &core.PlaybackState{
		Player:   name,
		Ref:      p.lp.Ref(),
		Mode:     convertMode(mode),
		Elapsed:  secondsToDuration(elapsed),
		Duration: secondsToDuration(duration),
		Volume:   volume,
		Muted:    muted,
	}

	tracks, err := p.lp.CurrentPlaylistDetail(ctx, 1, nil)
	if err != nil {
		return nil, err
	}
	if len(tracks) > 0 {
		state.Track = convertTrack(tracks[0])
	} else {
		// Remote streams sometimes report a title without a playlist entry.
		title, err := p.lp.CurrentTitle(ctx)
		if err != nil {
			return nil, err
		}
		if title != "" {
			state.Track = &core.Track{Title: title}
		}
	}

	return state, nil
}

// GetPlaylist returns the player's current playlist.
func (p *Player) GetPlaylist(ctx context.Context) (*core.Playlist, error) {
	count, err := p.lp.TrackCount(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return &core.Playlist{}, nil
	}

	pos, err := p.lp.PlaylistPosition(ctx)
	if err != nil {
		return nil, err
	}
	infos, err := p.lp.PlaylistDetail(ctx, lms.PlaylistQuery{Amount: count})
	if err != nil {
		return nil, err
	}

	pl := &core.Playlist{
		Tracks:       make([]core.Track, len(infos)),
		CurrentIndex: pos,
	}
	for i, ti := range infos {
		pl.Tracks[i] = *convertTrack(ti)
	}
	return pl, nil
}

// GetDevices returns the players attached to the server.
func (p *Player) GetDevices(ctx context.Context) ([]core.Device, error) {
	return Devices(ctx, p.lp.Server())
}

// Devices lists the server's attached players as core devices.
func Devices(ctx context.Context, srv *lms.Server) ([]core.Device, error) {
	infos, err := srv.Players(ctx)
	if err != nil {
		return nil, err
	}

	devices := make([]core.Device, len(infos))
	for i := range infos {
		devices[i] = *convertDevice(&infos[i])
	}
	return devices, nil
}

// convertMode maps a reported transport mode to a core mode.
func convertMode(mode string) core.Mode {
	switch mode {
	case "play":
		return core.ModePlay
	case "pause":
		return core.ModePause
	default:
		return core.ModeStop
	}
}

// convertTrack converts a playlist entry to a core track.
func convertTrack(ti lms.TrackInfo) *core.Track {
	if ti == nil {
		return nil
	}
	return &core.Track{
		ID:         ti.ID(),
		Title:      ti.Title(),
		Artist:     ti.Artist(),
		Album:      ti.Album(),
		Duration:   secondsToDuration(ti.Duration()),
		Index:      ti.Index(),
		Remote:     ti.Remote(),
		URL:        ti.URL(),
		ArtworkURL: ti.ArtworkURL(),
	}
}

// convertDevice converts an attached-player listing to a core device.
func convertDevice(pi *lms.PlayerInfo) *core.Device {
	if pi == nil {
		return nil
	}
	return &core.Device{
		Ref:       pi.Ref,
		Name:      pi.Name,
		Model:     pi.Model,
		Addr:      pi.Addr,
		Connected: pi.Connected,
	}
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
