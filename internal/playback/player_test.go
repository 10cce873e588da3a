package playback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ryanlidster/slimctl/internal/core"
	"github.com/ryanlidster/slimctl/internal/lms"
)

const testRef = "00:04:20:12:ab:cd"

// newStubPlayer builds a player backed by a canned-response server. The
// stubs map routes joined command words to JSON-RPC results.
func newStubPlayer(t *testing.T, stubs map[string]any) *Player {
	t.Helper()

	base := map[string]any{
		"name ?":         map[string]any{"_value": "Kitchen"},
		"player model ?": map[string]any{"_model": "squeezebox3"},
		"player ip ?":    map[string]any{"_ip": "10.0.0.42:41337"},
	}
	for k, v := range stubs {
		base[k] = v
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		var words []string
		if err := json.Unmarshal(req.Params[1], &words); err != nil {
			t.Errorf("decode command words: %v", err)
			return
		}
		result, ok := base[strings.Join(words, " ")]
		if !ok {
			result = map[string]any{}
		}
		json.NewEncoder(w).Encode(map[string]any{"result": result})
	}))
	t.Cleanup(ts.Close)

	u, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("parse test server url: %v", err)
	}
	port, _ := strconv.Atoi(u.Port())

	lp, err := lms.NewPlayer(context.Background(), lms.NewServer(u.Hostname(), port), testRef)
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}
	return New(lp)
}

func TestGetState(t *testing.T) {
	p := newStubPlayer(t, map[string]any{
		"mode ?":           map[string]any{"_mode": "play"},
		"duration ?":       map[string]any{"_duration": 241.5},
		"time ?":           map[string]any{"_time": 60.5},
		"mixer volume ?":   map[string]any{"_volume": 75},
		"mixer muting ?":   map[string]any{"_muting": 0},
		"playlist index ?": map[string]any{"_index": 1},
		"status 1 1 tags:a,c,d,j,K,l,x,J": map[string]any{
			"playlist_loop": []any{
				map[string]any{
					"id":             "4126",
					"title":          "Mardy Bum",
					"artist":         "Arctic Monkeys",
					"album":          "Whatever People Say I Am",
					"duration":       241.5,
					"playlist index": 1,
				},
			},
		},
	})

	state, err := p.GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}

	if state.Player != "Kitchen" {
		t.Errorf("Player = %q, want %q", state.Player, "Kitchen")
	}
	if state.Ref != testRef {
		t.Errorf("Ref = %q, want %q", state.Ref, testRef)
	}
	if state.Mode != core.ModePlay {
		t.Errorf("Mode = %q, want %q", state.Mode, core.ModePlay)
	}
	if state.Elapsed != 60500*time.Millisecond {
		t.Errorf("Elapsed = %v, want %v", state.Elapsed, 60500*time.Millisecond)
	}
	if state.Duration != 241500*time.Millisecond {
		t.Errorf("Duration = %v, want %v", state.Duration, 241500*time.Millisecond)
	}
	if state.Volume != 75 {
		t.Errorf("Volume = %d, want 75", state.Volume)
	}
	if state.Muted {
		t.Error("Muted = true, want false")
	}
	if !state.HasTrack() {
		t.Fatal("HasTrack() = false, want true")
	}
	if state.Track.Title != "Mardy Bum" {
		t.Errorf("Track.Title = %q, want %q", state.Track.Title, "Mardy Bum")
	}
	if state.Track.Artist != "Arctic Monkeys" {
		t.Errorf("Track.Artist = %q, want %q", state.Track.Artist, "Arctic Monkeys")
	}
	if state.Track.Index != 1 {
		t.Errorf("Track.Index = %d, want 1", state.Track.Index)
	}
}

func TestGetStateStreamTitleFallback(t *testing.T) {
	p := newStubPlayer(t, map[string]any{
		"mode ?":          map[string]any{"_mode": "play"},
		"current_title ?": map[string]any{"_current_title": "BBC Radio 6 Music"},
	})

	state, err := p.GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if !state.HasTrack() {
		t.Fatal("HasTrack() = false, want fallback track")
	}
	if state.Track.Title != "BBC Radio 6 Music" {
		t.Errorf("Track.Title = %q, want %q", state.Track.Title, "BBC Radio 6 Music")
	}
}

func TestGetStateNothingPlaying(t *testing.T) {
	p := newStubPlayer(t, map[string]any{
		"mode ?": map[string]any{"_mode": "stop"},
	})

	state, err := p.GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if state.Mode != core.ModeStop {
		t.Errorf("Mode = %q, want %q", state.Mode, core.ModeStop)
	}
	if state.HasTrack() {
		t.Errorf("HasTrack() = true, want false, track %v", state.Track)
	}
}

func TestGetPlaylist(t *testing.T) {
	p := newStubPlayer(t, map[string]any{
		"playlist tracks ?": map[string]any{"_tracks": 2},
		"playlist index ?":  map[string]any{"_index": 1},
		"status 0 2 tags:a,c,d,j,K,l,x,J": map[string]any{
			"playlist_loop": []any{
				map[string]any{"id": "100", "title": "One", "playlist index": 0},
				map[string]any{"id": "101", "title": "Two", "playlist index": 1},
			},
		},
	})

	pl, err := p.GetPlaylist(context.Background())
	if err != nil {
		t.Fatalf("GetPlaylist() error = %v", err)
	}
	if pl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", pl.Len())
	}
	if pl.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1", pl.CurrentIndex)
	}
	if cur := pl.Current(); cur == nil || cur.Title != "Two" {
		t.Errorf("Current() = %v, want Two", cur)
	}
}

func TestGetPlaylistEmpty(t *testing.T) {
	p := newStubPlayer(t, map[string]any{
		"playlist tracks ?": map[string]any{"_tracks": 0},
	})

	pl, err := p.GetPlaylist(context.Background())
	if err != nil {
		t.Fatalf("GetPlaylist() error = %v", err)
	}
	if !pl.IsEmpty() {
		t.Errorf("IsEmpty() = false, want true, tracks %v", pl.Tracks)
	}
}

func TestGetDevices(t *testing.T) {
	p := newStubPlayer(t, map[string]any{
		"player count ?": map[string]any{"_count": 1},
		"players 0 1": map[string]any{
			"players_loop": []any{
				map[string]any{
					"playerid":  testRef,
					"name":      "Kitchen",
					"model":     "squeezebox3",
					"ip":        "10.0.0.42:41337",
					"connected": 1,
				},
			},
		},
	})

	devices, err := p.GetDevices(context.Background())
	if err != nil {
		t.Fatalf("GetDevices() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("len(devices) = %d, want 1", len(devices))
	}
	d := devices[0]
	if d.Ref != testRef || d.Name != "Kitchen" || d.Model != "squeezebox3" || !d.Connected {
		t.Errorf("device = %+v", d)
	}
}

func TestConvertTrack(t *testing.T) {
	ti := lms.TrackInfo{
		"id":             float64(4126),
		"title":          "Mardy Bum",
		"artist":         "Arctic Monkeys",
		"album":          "Whatever People Say I Am, That's What I'm Not",
		"duration":       float64(181),
		"playlist index": float64(3),
		"remote":         float64(0),
		"url":            "file:///music/mardy-bum.flac",
	}

	track := convertTrack(ti)

	if track.ID != "4126" {
		t.Errorf("ID = %q, want %q", track.ID, "4126")
	}
	if track.Title != "Mardy Bum" {
		t.Errorf("Title = %q, want %q", track.Title, "Mardy Bum")
	}
	if track.Artist != "Arctic Monkeys" {
		t.Errorf("Artist = %q, want %q", track.Artist, "Arctic Monkeys")
	}
	if track.Duration != 181*time.Second {
		t.Errorf("Duration = %v, want %v", track.Duration, 181*time.Second)
	}
	if track.Index != 3 {
		t.Errorf("Index = %d, want 3", track.Index)
	}
	if track.Remote {
		t.Error("Remote = true, want false")
	}
	if track.URL != "file:///music/mardy-bum.flac" {
		t.Errorf("URL = %q", track.URL)
	}
}

func TestConvertNilTrack(t *testing.T) {
	if got := convertTrack(nil); got != nil {
		t.Errorf("convertTrack(nil) = %v, want nil", got)
	}
}

func TestConvertDevice(t *testing.T) {
	pi := &lms.PlayerInfo{
		Ref:       testRef,
		Name:      "Kitchen",
		Model:     "receiver",
		Addr:      "10.0.0.42:41337",
		Connected: true,
	}

	d := convertDevice(pi)

	if d.Ref != testRef {
		t.Errorf("Ref = %q, want %q", d.Ref, testRef)
	}
	if d.Model != "receiver" {
		t.Errorf("Model = %q, want %q", d.Model, "receiver")
	}
	if !d.Connected {
		t.Error("Connected = false, want true")
	}
}

func TestConvertMode(t *testing.T) {
	tests := []struct {
		mode string
		want core.Mode
	}{
		{"play", core.ModePlay},
		{"pause", core.ModePause},
		{"stop", core.ModeStop},
		{"", core.ModeStop},
	}

	for _, tt := range tests {
		if got := convertMode(tt.mode); got != tt.want {
			t.Errorf("convertMode(%q) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
