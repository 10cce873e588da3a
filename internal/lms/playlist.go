package lms

import (
	"context"
	"strconv"
	"strings"
)

// PlaylistQuery selects a slice of the playlist. The zero value asks
// for the whole playlist from the top with the server's default tags.
type PlaylistQuery struct {
	Start  int
	Amount int // <=0 resolves to the live track count
	Tags   []string
}

// TrackInfo is one entry of a status query's playlist_loop, kept as the
// raw mapping the server returned: which keys exist depends entirely on
// the tags that were requested. The accessors coerce the conventional
// fields and fall back to zero values for fields that were not asked
// for.
type TrackInfo map[string]any

// ID returns the track identifier. Remote tracks get negative ids.
func (t TrackInfo) ID() string {
	return stringField(Result(t), "id", "")
}

// Title returns the track title.
func (t TrackInfo) Title() string {
	return stringField(Result(t), "title", "")
}

// Artist returns the track artist.
func (t TrackInfo) Artist() string {
	return stringField(Result(t), "artist", "")
}

// Album returns the track album.
func (t TrackInfo) Album() string {
	return stringField(Result(t), "album", "")
}

// Duration returns the track length in seconds.
func (t TrackInfo) Duration() float64 {
	return floatField(Result(t), "duration", 0.0)
}

// Index returns the track's position in the playlist.
func (t TrackInfo) Index() int {
	return intField(Result(t), "playlist index", 0)
}

// Remote reports whether the track is a remote stream.
func (t TrackInfo) Remote() bool {
	return boolField(Result(t), "remote")
}

// URL returns the track's location.
func (t TrackInfo) URL() string {
	return stringField(Result(t), "url", "")
}

// ArtworkURL returns the cover art location for remote tracks.
func (t TrackInfo) ArtworkURL() string {
	return stringField(Result(t), "artwork_url", "")
}

// CoverID returns the server-side cover art identifier.
func (t TrackInfo) CoverID() string {
	return stringField(Result(t), "coverid", "")
}

// Filesize returns the track's size in bytes.
func (t TrackInfo) Filesize() int {
	return intField(Result(t), "filesize", 0)
}

// TrackCount returns the number of items in the playlist, 0 when the
// field is missing or malformed.
func (p *Player) TrackCount(ctx context.Context) (int, error) {
	res, err := p.Send(ctx, "playlist", "tracks", "?")
	if err != nil {
		return 0, err
	}
	return intField(res, "_tracks", 0), nil
}

// PlaylistPosition returns the zero-based index of the current item, 0
// when the field is missing or malformed.
func (p *Player) PlaylistPosition(ctx context.Context) (int, error) {
	res, err := p.Send(ctx, "playlist", "index", "?")
	if err != nil {
		return 0, err
	}
	return intField(res, "_index", 0), nil
}

// PlaylistInfo runs the status query described by q and returns the raw
// playlist_loop entries untouched. A failure of the status query itself
// is swallowed into an empty result. Resolving a missing Amount needs a
// live TrackCount first, and that lookup's error does propagate.
func (p *Player) PlaylistInfo(ctx context.Context, q PlaylistQuery) ([]TrackInfo, error) {
	amount := q.Amount
	if amount <= 0 {
		n, err := p.TrackCount(ctx)
		if err != nil {
			return nil, err
		}
		amount = n
	}

	words := []string{"status", strconv.Itoa(q.Start), strconv.Itoa(amount)}
	if len(q.Tags) > 0 {
		words = append(words, "tags:"+strings.Join(q.Tags, ","))
	}

	res, err := p.Send(ctx, words...)
	if err != nil {
		return nil, nil
	}
	return trackLoop(res), nil
}

// PlaylistDetail is PlaylistInfo with q.Tags defaulted to DetailedTags
// when nil. An explicitly empty tag list stays empty.
func (p *Player) PlaylistDetail(ctx context.Context, q PlaylistQuery) ([]TrackInfo, error) {
	if q.Tags == nil {
		q.Tags = DetailedTags()
	}
	return p.PlaylistInfo(ctx, q)
}

// CurrentPlaylistDetail returns detailed entries from the currently
// playing item onward. An amount of zero or less means all remaining
// tracks; a nil tag list gets DetailedTags.
func (p *Player) CurrentPlaylistDetail(ctx context.Context, amount int, tags []string) ([]TrackInfo, error) {
	pos, err := p.PlaylistPosition(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = DetailedTags()
	}
	return p.PlaylistInfo(ctx, PlaylistQuery{Start: pos, Amount: amount, Tags: tags})
}

func trackLoop(res Result) []TrackInfo {
	loop, ok := res["playlist_loop"].([]any)
	if !ok {
		return nil
	}
	tracks := make([]TrackInfo, 0, len(loop))
	for _, entry := range loop {
		if m, ok := entry.(map[string]any); ok {
			tracks = append(tracks, TrackInfo(m))
		}
	}
	return tracks
}

// PlayIndex starts playing the playlist item at the zero-based index.
func (p *Player) PlayIndex(ctx context.Context, index int) error {
	_, err := p.Send(ctx, "playlist", "index", strconv.Itoa(index))
	return err
}

// PlayItem plays item (a URL or file path), replacing the playlist.
func (p *Player) PlayItem(ctx context.Context, item string) error {
	_, err := p.Send(ctx, "playlist", "play", item)
	return err
}

// AddItem appends item to the playlist.
func (p *Player) AddItem(ctx context.Context, item string) error {
	_, err := p.Send(ctx, "playlist", "add", item)
	return err
}

// InsertItem inserts item after the current track.
func (p *Player) InsertItem(ctx context.Context, item string) error {
	_, err := p.Send(ctx, "playlist", "insert", item)
	return err
}

// DeleteItem removes item from the playlist by identity.
func (p *Player) DeleteItem(ctx context.Context, item string) error {
	_, err := p.Send(ctx, "playlist", "deleteitem", item)
	return err
}

// EraseIndex removes the playlist item at the zero-based index.
func (p *Player) EraseIndex(ctx context.Context, index int) error {
	_, err := p.Send(ctx, "playlist", "delete", strconv.Itoa(index))
	return err
}

// ClearPlaylist empties the playlist. This also stops the player.
func (p *Player) ClearPlaylist(ctx context.Context) error {
	_, err := p.Send(ctx, "playlist", "clear")
	return err
}

// Move moves the playlist item at index from to position to.
func (p *Player) Move(ctx context.Context, from, to int) error {
	_, err := p.Send(ctx, "playlist", "move", strconv.Itoa(from), strconv.Itoa(to))
	return err
}
