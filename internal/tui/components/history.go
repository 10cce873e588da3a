package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/ryanlidster/slimctl/internal/core"
	"github.com/ryanlidster/slimctl/internal/tui/styles"
)

// HistoryEntry represents a track in play history
type HistoryEntry struct {
	Track    *core.Track
	PlayedAt time.Time
	Skipped  bool
}

// History displays recently played tracks
type History struct{}

// NewHistory creates a new History component
func NewHistory() *History {
	return &History{}
}

// Render renders the history panel
func (h *History) Render(entries []HistoryEntry, width, height int, focused bool) string {
	title := styles.PanelTitle("History", focused)

	var content string
	if len(entries) == 0 {
		content = styles.Muted.Render("No history yet")
	} else {
		content = h.renderHistory(entries, width-4, height-4)
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

func (h *History) renderHistory(entries []HistoryEntry, width, maxLines int) string {
	lines := make([]string, 0, maxLines)

	// Fixed overhead: icon (2) + " — " (3) + a space before the time
	const overhead = 6

	for i, entry := range entries {
		if i >= maxLines {
			break
		}

		track := entry.Track
		if track == nil {
			continue
		}

		// Time ago (right-aligned)
		timeAgo := humanize.Time(entry.PlayedAt)
		timeWidth := len(timeAgo)

		icon := "✓"
		if entry.Skipped {
			icon = "⏭"
		}

		available := width - overhead - timeWidth
		title, artist := fitTitleArtist(track.Title, track.Artist, available)

		trackInfo := title
		if artist != "" {
			trackInfo = fmt.Sprintf("%s — %s", title, artist)
		}

		// Pad so the timestamp lands on the right edge
		padding := width - 2 - len(trackInfo) - timeWidth
		if padding < 1 {
			padding = 1
		}

		line := fmt.Sprintf("%s %s%s%s",
			styles.Dim.Render(icon),
			trackInfo,
			styles.Repeat(" ", padding),
			styles.Dim.Render(timeAgo))

		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
