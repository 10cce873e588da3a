package core

// Playlist represents a player's current playlist.
type Playlist struct {
	Tracks       []Track `json:"tracks"`
	CurrentIndex int     `json:"current_index"`
}

// Current returns the track at the playlist cursor, or nil if the
// playlist is empty or the cursor is out of range.
func (p *Playlist) Current() *Track {
	if p == nil || len(p.Tracks) == 0 || p.CurrentIndex < 0 || p.CurrentIndex >= len(p.Tracks) {
		return nil
	}
	return &p.Tracks[p.CurrentIndex]
}

// Upcoming returns the tracks after the playlist cursor.
func (p *Playlist) Upcoming() []Track {
	if p == nil || len(p.Tracks) == 0 || p.CurrentIndex < 0 || p.CurrentIndex >= len(p.Tracks)-1 {
		return nil
	}
	return p.Tracks[p.CurrentIndex+1:]
}

// Len returns the total number of tracks in the playlist.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Tracks)
}

// IsEmpty returns true if the playlist has no tracks.
func (p *Playlist) IsEmpty() bool {
	return p.Len() == 0
}
