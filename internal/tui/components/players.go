package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ryanlidster/slimctl/internal/core"
	"github.com/ryanlidster/slimctl/internal/tui/styles"
)

// Players displays the players attached to the server
type Players struct {
	selected int
}

// NewPlayers creates a new Players component
func NewPlayers() *Players {
	return &Players{selected: 0}
}

// SelectNext selects the next player
func (p *Players) SelectNext() {
	p.selected++
}

// SelectPrev selects the previous player
func (p *Players) SelectPrev() {
	if p.selected > 0 {
		p.selected--
	}
}

// Selected returns the selected player index
func (p *Players) Selected() int {
	return p.selected
}

// Render renders the players panel. The player matching activeRef is
// marked as the one under control, and the one matching def gets a
// default star.
func (p *Players) Render(players []core.Device, width, height int, focused bool, activeRef, def string) string {
	title := styles.PanelTitle("Players", focused)

	var content string
	if len(players) == 0 {
		content = styles.Muted.Render("No players found")
	} else {
		content = p.renderPlayers(players, width-4, height-4, focused, activeRef, def)
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

func (p *Players) renderPlayers(players []core.Device, width, maxLines int, focused bool, activeRef, def string) string {
	// Adjust selected if out of bounds
	if p.selected >= len(players) {
		p.selected = len(players) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}

	lines := make([]string, 0, len(players))

	for i, player := range players {
		icon := styles.ConnectedIcon(player.Connected)

		selector := "  "
		if focused && i == p.selected {
			selector = "▸ "
		}

		active := ""
		if strings.EqualFold(player.Ref, activeRef) {
			active = styles.Playing.Render(" ●")
		}

		star := ""
		if isDefault(player, def) {
			star = styles.Paused.Render(" ★")
		}

		name := player.Name
		if i == p.selected && focused {
			name = styles.Highlight.Render(name)
		}

		model := styles.Dim.Render("(" + player.Model + ")")

		line := fmt.Sprintf("%s%s %s %s%s%s", selector, icon, name, model, active, star)
		lines = append(lines, line)

		if len(lines) >= maxLines {
			break
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// isDefault reports whether a player matches the configured default,
// which may hold either a reference or a display name.
func isDefault(player core.Device, def string) bool {
	if def == "" {
		return false
	}
	return strings.EqualFold(player.Ref, def) || strings.EqualFold(player.Name, def)
}
