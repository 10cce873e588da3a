package lms

import (
	"context"
	"strings"
	"testing"
)

func TestTrackCount(t *testing.T) {
	tests := []struct {
		name   string
		result map[string]any
		want   int
	}{
		{"number", map[string]any{"_tracks": 7}, 7},
		{"string", map[string]any{"_tracks": "12"}, 12},
		{"missing", map[string]any{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, p := newTestPlayer(t)
			f.stub("playlist tracks ?", tt.result)
			got, err := p.TrackCount(context.Background())
			if err != nil {
				t.Fatalf("TrackCount() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("TrackCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlaylistPosition(t *testing.T) {
	f, p := newTestPlayer(t)
	f.stub("playlist index ?", map[string]any{"_index": "3"})

	got, err := p.PlaylistPosition(context.Background())
	if err != nil || got != 3 {
		t.Errorf("PlaylistPosition() = %d, %v, want 3, nil", got, err)
	}
}

func TestPlaylistInfoPassthrough(t *testing.T) {
	f, p := newTestPlayer(t)
	f.stub("status 1 1", map[string]any{
		"playlist_loop": []any{
			map[string]any{
				"id":             "-137990288",
				"playlist index": 1,
				"title":          "Mardy Bum",
			},
		},
	})

	got, err := p.PlaylistInfo(context.Background(), PlaylistQuery{Start: 1, Amount: 1})
	if err != nil {
		t.Fatalf("PlaylistInfo() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("PlaylistInfo() returned %d entries, want 1", len(got))
	}

	entry := got[0]
	if entry.ID() != "-137990288" {
		t.Errorf("ID() = %q, want %q", entry.ID(), "-137990288")
	}
	if entry.Title() != "Mardy Bum" {
		t.Errorf("Title() = %q, want %q", entry.Title(), "Mardy Bum")
	}
	if entry.Index() != 1 {
		t.Errorf("Index() = %d, want 1", entry.Index())
	}
	// The mapping comes through untouched, extra keys and all.
	if len(entry) != 3 {
		t.Errorf("entry has %d keys, want the 3 the server sent", len(entry))
	}
}

func TestPlaylistInfoSuppressesQueryFailure(t *testing.T) {
	f, p := newTestPlayer(t)
	f.failOn("status 0 5")

	got, err := p.PlaylistInfo(context.Background(), PlaylistQuery{Amount: 5})
	if err != nil {
		t.Errorf("PlaylistInfo() error = %v, want suppressed failure", err)
	}
	if len(got) != 0 {
		t.Errorf("PlaylistInfo() = %v, want empty", got)
	}
}

func TestPlaylistInfoResolvesAmount(t *testing.T) {
	f, p := newTestPlayer(t)
	f.stub("playlist tracks ?", map[string]any{"_tracks": 7})
	f.stub("status 0 7", map[string]any{"playlist_loop": []any{}})

	if _, err := p.PlaylistInfo(context.Background(), PlaylistQuery{}); err != nil {
		t.Fatalf("PlaylistInfo() error = %v", err)
	}

	want := []string{"playlist tracks ?", "status 0 7"}
	got := f.commands()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("commands = %v, want %v", got, want)
	}
}

func TestPlaylistInfoAmountResolutionFailurePropagates(t *testing.T) {
	f, p := newTestPlayer(t)
	f.failOn("playlist tracks ?")

	if _, err := p.PlaylistInfo(context.Background(), PlaylistQuery{}); err == nil {
		t.Error("PlaylistInfo() error = nil, want track count failure to propagate")
	}
}

func TestPlaylistInfoEmptyPlaylist(t *testing.T) {
	f, p := newTestPlayer(t)
	f.stub("status 0 4", map[string]any{})

	got, err := p.PlaylistInfo(context.Background(), PlaylistQuery{Amount: 4})
	if err != nil {
		t.Fatalf("PlaylistInfo() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("PlaylistInfo() = %v, want empty", got)
	}
}

func TestPlaylistDetailDefaultTags(t *testing.T) {
	f, p := newTestPlayer(t)
	f.stub("status 0 2 tags:a,c,d,j,K,l,x,J", map[string]any{"playlist_loop": []any{}})

	if _, err := p.PlaylistDetail(context.Background(), PlaylistQuery{Amount: 2}); err != nil {
		t.Fatalf("PlaylistDetail() error = %v", err)
	}
	if got := f.commands()[0]; got != "status 0 2 tags:a,c,d,j,K,l,x,J" {
		t.Errorf("sent %q, want default detailed tags", got)
	}
}

func TestPlaylistDetailExplicitEmptyTags(t *testing.T) {
	f, p := newTestPlayer(t)

	if _, err := p.PlaylistDetail(context.Background(), PlaylistQuery{Amount: 2, Tags: []string{}}); err != nil {
		t.Fatalf("PlaylistDetail() error = %v", err)
	}
	if got := f.commands()[0]; got != "status 0 2" {
		t.Errorf("sent %q, want no tags parameter", got)
	}
}

func TestCurrentPlaylistDetail(t *testing.T) {
	f, p := newTestPlayer(t)
	f.stub("playlist index ?", map[string]any{"_index": 3})
	f.stub("status 3 2 tags:a,c,d,j,K,l,x,J", map[string]any{
		"playlist_loop": []any{
			map[string]any{"title": "Lightning Bolt", "playlist index": 3},
			map[string]any{"title": "Two Fingers", "playlist index": 4},
		},
	})

	got, err := p.CurrentPlaylistDetail(context.Background(), 2, nil)
	if err != nil {
		t.Fatalf("CurrentPlaylistDetail() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("CurrentPlaylistDetail() returned %d entries, want 2", len(got))
	}
	if got[0].Title() != "Lightning Bolt" {
		t.Errorf("first entry = %q, want %q", got[0].Title(), "Lightning Bolt")
	}
}

func TestCurrentPlaylistDetailPositionFailurePropagates(t *testing.T) {
	f, p := newTestPlayer(t)
	f.failOn("playlist index ?")

	if _, err := p.CurrentPlaylistDetail(context.Background(), 1, nil); err == nil {
		t.Error("CurrentPlaylistDetail() error = nil, want position failure to propagate")
	}
}

func TestPlaylistCommands(t *testing.T) {
	tests := []struct {
		name string
		call func(context.Context, *Player) error
		want string
	}{
		{"play index", func(ctx context.Context, p *Player) error { return p.PlayIndex(ctx, 4) }, "playlist index 4"},
		{"play item", func(ctx context.Context, p *Player) error { return p.PlayItem(ctx, "http://ice1.somafm.com/groovesalad-256-mp3") }, "playlist play http://ice1.somafm.com/groovesalad-256-mp3"},
		{"add", func(ctx context.Context, p *Player) error { return p.AddItem(ctx, "file:///music/a.flac") }, "playlist add file:///music/a.flac"},
		{"insert", func(ctx context.Context, p *Player) error { return p.InsertItem(ctx, "file:///music/b.flac") }, "playlist insert file:///music/b.flac"},
		{"delete item", func(ctx context.Context, p *Player) error { return p.DeleteItem(ctx, "file:///music/c.flac") }, "playlist deleteitem file:///music/c.flac"},
		{"erase index", func(ctx context.Context, p *Player) error { return p.EraseIndex(ctx, 2) }, "playlist delete 2"},
		{"clear", func(ctx context.Context, p *Player) error { return p.ClearPlaylist(ctx) }, "playlist clear"},
		{"move", func(ctx context.Context, p *Player) error { return p.Move(ctx, 1, 5) }, "playlist move 1 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, p := newTestPlayer(t)
			if err := tt.call(context.Background(), p); err != nil {
				t.Fatalf("%s error = %v", tt.name, err)
			}
			if got := strings.Join(f.lastCall().words, " "); got != tt.want {
				t.Errorf("sent %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrackInfoAccessors(t *testing.T) {
	track := TrackInfo{
		"id":             "-161090728",
		"title":          "Lightning Bolt",
		"artist":         "Jake Bugg",
		"album":          "Jake Bugg",
		"duration":       "144",
		"playlist index": 7,
		"remote":         1,
		"artwork_url":    "http://tunein.example.org/art/6ba50b.jpg",
		"coverid":        "-161090728",
		"url":            "wimp://track:6ba50b",
		"filesize":       4186522,
	}

	if got := track.Duration(); got != 144 {
		t.Errorf("Duration() = %v, want 144", got)
	}
	if !track.Remote() {
		t.Error("Remote() = false, want true")
	}
	if got := track.Index(); got != 7 {
		t.Errorf("Index() = %d, want 7", got)
	}
	if got := track.Artist(); got != "Jake Bugg" {
		t.Errorf("Artist() = %q, want %q", got, "Jake Bugg")
	}
	if got := track.URL(); got != "wimp://track:6ba50b" {
		t.Errorf("URL() = %q, want %q", got, "wimp://track:6ba50b")
	}
	if got := track.Filesize(); got != 4186522 {
		t.Errorf("Filesize() = %d, want 4186522", got)
	}

	empty := TrackInfo{}
	if got := empty.Duration(); got != 0 {
		t.Errorf("empty Duration() = %v, want 0", got)
	}
	if empty.Remote() {
		t.Error("empty Remote() = true, want false")
	}
}
