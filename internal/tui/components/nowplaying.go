package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ryanlidster/slimctl/internal/core"
	"github.com/ryanlidster/slimctl/internal/tui/styles"
)

// NowPlaying displays the currently playing track
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(state *core.PlaybackState, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	if state == nil || state.Track == nil {
		content = styles.Muted.Render("Nothing playing")
	} else {
		content = n.renderTrack(state, width-4)
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

func (n *NowPlaying) renderTrack(state *core.PlaybackState, width int) string {
	track := state.Track

	icon := styles.StatusIcon(state.IsPlaying())
	titleStyle := styles.Title.Width(width - 4)
	title := titleStyle.Render(track.Title)

	artist := styles.Subtitle.Render(track.Artist)
	album := styles.Dim.Render(track.Album)

	progress := n.renderProgress(state, width)

	// Player info
	playerInfo := fmt.Sprintf("🔊 %s", state.Player)
	if state.Muted {
		playerInfo += " (muted)"
	} else {
		playerInfo += fmt.Sprintf("  %d%%", state.Volume)
	}
	playerInfo = styles.Muted.Render(playerInfo)

	controls := n.renderControls(state)

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+artist,
		"  "+album,
		"",
		progress,
		"",
		playerInfo,
		controls,
	)
}

// renderProgress draws the elapsed/total progress line. Remote streams
// report elapsed time with no known duration, so they get a plain
// elapsed counter instead of a bar.
func (n *NowPlaying) renderProgress(state *core.PlaybackState, width int) string {
	if state.Duration == 0 {
		return fmt.Sprintf("%s %s", formatDuration(state.Elapsed), styles.Dim.Render("(stream)"))
	}

	// Account for times on either side
	progressWidth := width - 14
	if progressWidth < 10 {
		progressWidth = 10
	}
	bar := styles.ProgressBar(state.ProgressPercent(), progressWidth)
	return fmt.Sprintf("%s %s %s", formatDuration(state.Elapsed), bar, formatDuration(state.Duration))
}

func (n *NowPlaying) renderControls(state *core.PlaybackState) string {
	controls := styles.Dim.Render("⏮ ")

	if state.IsPlaying() {
		controls += styles.Playing.Render("⏸")
	} else {
		controls += styles.Paused.Render("▶")
	}

	controls += styles.Dim.Render(" ⏭")

	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Render(controls)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
