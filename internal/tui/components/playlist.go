package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/ryanlidster/slimctl/internal/core"
	"github.com/ryanlidster/slimctl/internal/tui/styles"
)

// Playlist displays the player's current playlist
type Playlist struct {
	offset   int
	selected int
	visible  int
}

// NewPlaylist creates a new Playlist component
func NewPlaylist() *Playlist {
	return &Playlist{}
}

// SelectNext moves the selection down
func (p *Playlist) SelectNext() {
	p.selected++
	if p.visible > 0 && p.selected >= p.offset+p.visible {
		p.offset = p.selected - p.visible + 1
	}
}

// SelectPrev moves the selection up
func (p *Playlist) SelectPrev() {
	if p.selected > 0 {
		p.selected--
	}
	if p.selected < p.offset {
		p.offset = p.selected
	}
}

// Selected returns the selected index
func (p *Playlist) Selected() int {
	return p.selected
}

// Render renders the playlist panel
func (p *Playlist) Render(playlist *core.Playlist, width, height int, focused bool) string {
	title := styles.PanelTitle("Playlist", focused)

	var content string
	if playlist == nil || playlist.IsEmpty() {
		content = styles.Muted.Render("Playlist is empty")
	} else {
		content = p.renderTracks(playlist, width-4, height-4, focused)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (p *Playlist) renderTracks(playlist *core.Playlist, width, maxLines int, focused bool) string {
	tracks := playlist.Tracks

	// Clamp selection and offset after playlist edits
	if p.selected >= len(tracks) {
		p.selected = len(tracks) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
	if p.offset >= len(tracks) {
		p.offset = 0
	}

	// Leave room for "more" indicator
	visibleCount := maxLines - 1
	if visibleCount < 1 {
		visibleCount = 1
	}
	p.visible = visibleCount

	start := p.offset
	end := start + visibleCount
	if end > len(tracks) {
		end = len(tracks)
	}

	lines := make([]string, 0, end-start+1)

	// Fixed overhead: "XXX. " (5) + selector (2) + marker (2) + " — " (3)
	const overhead = 12

	for i := start; i < end; i++ {
		track := tracks[i]

		num := fmt.Sprintf("%3d.", i+1)

		selector := "  "
		if focused && i == p.selected {
			selector = "▸ "
		}

		title, artist := fitTitleArtist(track.Title, track.Artist, width-overhead)

		var line string
		switch {
		case i == playlist.CurrentIndex:
			line = styles.Playing.Render(fmt.Sprintf("%s%s ▶ %s — %s", selector, num, title, artist))
		case focused && i == p.selected:
			line = fmt.Sprintf("%s%s   %s — %s",
				selector,
				styles.Dim.Render(num),
				styles.Highlight.Render(title),
				styles.Muted.Render(artist))
		default:
			line = fmt.Sprintf("%s%s   %s — %s",
				selector,
				styles.Dim.Render(num),
				title,
				styles.Muted.Render(artist))
		}

		lines = append(lines, line)
	}

	if end < len(tracks) {
		more := styles.Dim.Render(fmt.Sprintf("      ... and %d more", len(tracks)-end))
		lines = append(lines, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// fitTitleArtist truncates a title/artist pair to the available width,
// giving the artist at least a third of the space when both overflow.
func fitTitleArtist(title, artist string, available int) (string, string) {
	if len(title)+len(artist) <= available {
		return title, artist
	}

	minArtist := available / 3
	if minArtist < 10 {
		minArtist = 10
	}
	if minArtist > available-10 {
		minArtist = available - 10
	}

	artistSpace := minArtist
	if len(artist) < artistSpace {
		artistSpace = len(artist)
	}
	titleSpace := available - artistSpace

	return truncate(title, titleSpace), truncate(artist, artistSpace)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
