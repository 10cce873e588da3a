package wizard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ryanlidster/slimctl/internal/core"
)

// PlayerModel is the bubbletea model for the player picker.
type PlayerModel struct {
	players  []core.Device
	cursor   int
	selected *core.Device
	width    int
	height   int
}

// Styles for player picker
var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	pickerItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	pickerSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	pickerConnectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82"))

	pickerDisconnectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	pickerDetailStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

// NewPlayerModel creates a new player picker model.
func NewPlayerModel(players []core.Device) PlayerModel {
	return PlayerModel{
		players: players,
		width:   80,
		height:  20,
	}
}

// Init initializes the model.
func (m PlayerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "enter", " ":
			if len(m.players) > 0 && m.cursor < len(m.players) {
				m.selected = &m.players[m.cursor]
				return m, tea.Quit
			}

		case "up", "k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j", "ctrl+n":
			if m.cursor < len(m.players)-1 {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			m.cursor = len(m.players) - 1
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the model.
func (m PlayerModel) View() string {
	var b strings.Builder

	// Title
	b.WriteString(pickerTitleStyle.Render("🔊 Select Player"))
	b.WriteString("\n\n")

	if len(m.players) == 0 {
		b.WriteString(pickerDisconnectedStyle.Render("No players found"))
		b.WriteString("\n\n")
		b.WriteString(pickerDetailStyle.Render("Make sure your players are powered on and attached to the server."))
	} else {
		for i, player := range m.players {
			// Build player line
			var line strings.Builder

			// Connection indicator
			if player.Connected {
				line.WriteString(pickerConnectedStyle.Render("● "))
			} else {
				line.WriteString(pickerDisconnectedStyle.Render("○ "))
			}

			// Player name
			line.WriteString(player.Name)

			// Model and reference
			if player.Model != "" {
				line.WriteString(" " + pickerDetailStyle.Render("("+player.Model+")"))
			}
			line.WriteString(pickerDetailStyle.Render(" - " + player.Ref))

			// Render with selection style
			if i == m.cursor {
				b.WriteString(pickerSelectedStyle.Render("▸ " + line.String()))
			} else {
				b.WriteString(pickerItemStyle.Render("  " + line.String()))
			}
			b.WriteString("\n")
		}
	}

	// Help
	b.WriteString("\n")
	b.WriteString(pickerDetailStyle.Render("↑/↓ navigate • enter select • esc quit"))
	b.WriteString("\n")
	b.WriteString(pickerDetailStyle.Render("● connected  ○ disconnected"))

	return b.String()
}

// Selected returns the selected player, or nil if none.
func (m PlayerModel) Selected() *core.Device {
	return m.selected
}

// RunPlayerPicker runs the player picker and returns the selected player.
func RunPlayerPicker(players []core.Device) (*core.Device, error) {
	model := NewPlayerModel(players)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(PlayerModel).Selected(), nil
}
