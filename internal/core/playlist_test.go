package core

import "testing"

func TestPlaylistCurrent(t *testing.T) {
	pl := &Playlist{
		Tracks: []Track{
			{Title: "One"},
			{Title: "Two"},
			{Title: "Three"},
		},
		CurrentIndex: 1,
	}

	if got := pl.Current(); got == nil || got.Title != "Two" {
		t.Errorf("Current() = %v, want Two", got)
	}

	up := pl.Upcoming()
	if len(up) != 1 || up[0].Title != "Three" {
		t.Errorf("Upcoming() = %v, want [Three]", up)
	}
}

func TestPlaylistCursorOutOfRange(t *testing.T) {
	pl := &Playlist{
		Tracks:       []Track{{Title: "One"}},
		CurrentIndex: 5,
	}
	if got := pl.Current(); got != nil {
		t.Errorf("Current() = %v, want nil", got)
	}
	if got := pl.Upcoming(); got != nil {
		t.Errorf("Upcoming() = %v, want nil", got)
	}
}

func TestPlaylistEmpty(t *testing.T) {
	var pl *Playlist
	if !pl.IsEmpty() {
		t.Error("nil playlist should be empty")
	}
	if pl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", pl.Len())
	}
	if pl.Current() != nil {
		t.Error("Current() on nil playlist should be nil")
	}
}
