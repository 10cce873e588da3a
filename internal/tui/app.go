package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ryanlidster/slimctl/internal/config"
	"github.com/ryanlidster/slimctl/internal/core"
	"github.com/ryanlidster/slimctl/internal/lms"
	"github.com/ryanlidster/slimctl/internal/playback"
	"github.com/ryanlidster/slimctl/internal/tui/components"
	"github.com/ryanlidster/slimctl/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelNowPlaying Panel = iota
	PanelPlaylist
	PanelPlayers
	PanelHistory
)

// App holds the TUI application state
type App struct {
	player        *playback.Player
	refreshRate   time.Duration
	volumeStep    int
	defaultPlayer string // Ref or name from config
}

// New creates a TUI application controlling the given player.
func New(player *playback.Player, refreshRate time.Duration, volumeStep int, defaultPlayer string) *App {
	if refreshRate <= 0 {
		refreshRate = time.Second
	}
	return &App{
		player:        player,
		refreshRate:   refreshRate,
		volumeStep:    volumeStep,
		defaultPlayer: defaultPlayer,
	}
}

// Model is the main TUI model
type Model struct {
	app          *App
	width        int
	height       int
	focusedPanel Panel

	// State
	state    *core.PlaybackState
	playlist *core.Playlist
	players  []core.Device
	history  []components.HistoryEntry

	// Components
	nowPlaying   *components.NowPlaying
	playlistView *components.Playlist
	playersView  *components.Players
	historyView  *components.History

	// Overlays
	showHelp bool
	showAdd  bool
	addInput textinput.Model

	// Error handling
	lastError   error
	errorExpiry time.Time // When to clear the error

	// Quit flag
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	ti := textinput.New()
	ti.Placeholder = "http://stream.example.org/radio or /music/album/track.flac"
	ti.CharLimit = 200
	ti.Width = 56

	return Model{
		app:          app,
		focusedPanel: PanelNowPlaying,
		nowPlaying:   components.NewNowPlaying(),
		playlistView: components.NewPlaylist(),
		playersView:  components.NewPlayers(),
		historyView:  components.NewHistory(),
		history:      make([]components.HistoryEntry, 0),
		addInput:     ti,
	}
}

// Messages
type tickMsg time.Time
type stateMsg *core.PlaybackState
type playlistMsg *core.Playlist
type playersMsg []core.Device
type errMsg error
type refreshAfterActionMsg struct{}
type defaultPlayerSetMsg string // Ref that was saved as default
type switchedPlayerMsg *playback.Player

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchState() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		state, err := m.app.player.GetState(ctx)
		if err != nil {
			return errMsg(err)
		}
		return stateMsg(state)
	}
}

func (m Model) fetchPlaylist() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		playlist, err := m.app.player.GetPlaylist(ctx)
		if err != nil {
			return errMsg(err)
		}
		return playlistMsg(playlist)
	}
}

func (m Model) fetchPlayers() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		players, err := m.app.player.GetDevices(ctx)
		if err != nil {
			return errMsg(err)
		}
		return playersMsg(players)
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tick(),
		m.fetchState(),
		m.fetchPlaylist(),
		m.fetchPlayers(),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.tick(), m.fetchState())

	case stateMsg:
		if time.Now().After(m.errorExpiry) {
			m.lastError = nil
		}
		old := m.state
		m.state = msg

		oldKey := ""
		if old != nil {
			oldKey = old.Track.Key()
		}

		// On track change, update history and refresh the playlist
		if m.state.Track.Key() != oldKey {
			m.markOutcome(old)
			if m.state.HasTrack() {
				m.addToHistory(m.state.Track)
			}
			return m, m.fetchPlaylist()
		}
		return m, nil

	case playlistMsg:
		if time.Now().After(m.errorExpiry) {
			m.lastError = nil
		}
		m.playlist = msg
		return m, nil

	case playersMsg:
		if time.Now().After(m.errorExpiry) {
			m.lastError = nil
		}
		m.players = msg
		return m, nil

	case errMsg:
		m.lastError = msg
		m.errorExpiry = time.Now().Add(5 * time.Second) // Show error for 5 seconds
		return m, nil

	case defaultPlayerSetMsg:
		m.app.defaultPlayer = string(msg)
		return m, nil

	case switchedPlayerMsg:
		m.app.player = msg
		return m, tea.Batch(m.fetchState(), m.fetchPlaylist())

	case refreshAfterActionMsg:
		return m, tea.Batch(m.fetchState(), m.fetchPlaylist())
	}

	// Forward other messages to the input when the add overlay is open
	if m.showAdd {
		var inputCmd tea.Cmd
		m.addInput, inputCmd = m.addInput.Update(msg)
		return m, inputCmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (always work)
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	// Add-to-playlist overlay
	if m.showAdd {
		return m.handleAddKeyPress(msg)
	}

	// Normal mode
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "a":
		m.showAdd = true
		m.addInput.SetValue("")
		m.addInput.Focus()
		return m, textinput.Blink

	case "tab":
		m.focusedPanel = (m.focusedPanel + 1) % 4
		return m, nil

	case "shift+tab":
		m.focusedPanel = (m.focusedPanel + 3) % 4
		return m, nil
	}

	// Playback controls
	switch msg.String() {
	case " ":
		return m, m.togglePlayPause()
	case "n":
		return m, m.nextTrack()
	case "p":
		return m, m.prevTrack()
	case "+", "=":
		return m, m.volumeUp()
	case "-":
		return m, m.volumeDown()
	case "m":
		return m, m.toggleMute()
	case "r":
		return m, tea.Batch(m.fetchState(), m.fetchPlaylist(), m.fetchPlayers())
	}

	// Panel-specific keys
	switch m.focusedPanel {
	case PanelPlaylist:
		switch msg.String() {
		case "j", "down":
			m.playlistView.SelectNext()
		case "k", "up":
			m.playlistView.SelectPrev()
		case "enter":
			return m, m.playSelected()
		}
	case PanelPlayers:
		switch msg.String() {
		case "j", "down":
			m.playersView.SelectNext()
		case "k", "up":
			m.playersView.SelectPrev()
		case "enter":
			return m, m.switchPlayer()
		case "d":
			return m, m.setDefaultPlayer()
		}
	}

	return m, nil
}

func (m Model) handleAddKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.showAdd = false
		m.addInput.Blur()
		return m, nil

	case "enter":
		item := strings.TrimSpace(m.addInput.Value())
		m.showAdd = false
		m.addInput.Blur()
		if item == "" {
			return m, nil
		}
		return m, m.addItem(item)
	}

	var inputCmd tea.Cmd
	m.addInput, inputCmd = m.addInput.Update(msg)
	return m, inputCmd
}

func (m Model) togglePlayPause() tea.Cmd {
	return func() tea.Msg {
		_ = m.app.player.TogglePause(context.Background())
		time.Sleep(200 * time.Millisecond)
		return refreshAfterActionMsg{}
	}
}

func (m Model) nextTrack() tea.Cmd {
	return func() tea.Msg {
		_ = m.app.player.Next(context.Background())
		// Small delay to let the server update state
		time.Sleep(200 * time.Millisecond)
		return refreshAfterActionMsg{}
	}
}

func (m Model) prevTrack() tea.Cmd {
	return func() tea.Msg {
		_ = m.app.player.Prev(context.Background())
		// Small delay to let the server update state
		time.Sleep(200 * time.Millisecond)
		return refreshAfterActionMsg{}
	}
}

func (m Model) volumeUp() tea.Cmd {
	return func() tea.Msg {
		_ = m.app.player.VolumeUp(context.Background(), m.app.volumeStep)
		return nil
	}
}

func (m Model) volumeDown() tea.Cmd {
	return func() tea.Msg {
		_ = m.app.player.VolumeDown(context.Background(), m.app.volumeStep)
		return nil
	}
}

func (m Model) toggleMute() tea.Cmd {
	return func() tea.Msg {
		_ = m.app.player.ToggleMute(context.Background())
		time.Sleep(200 * time.Millisecond)
		return refreshAfterActionMsg{}
	}
}

func (m Model) playSelected() tea.Cmd {
	return func() tea.Msg {
		index := m.playlistView.Selected()
		if m.playlist == nil || index < 0 || index >= m.playlist.Len() {
			return nil
		}
		_ = m.app.player.PlayIndex(context.Background(), index)
		time.Sleep(200 * time.Millisecond)
		return refreshAfterActionMsg{}
	}
}

func (m Model) addItem(item string) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.player.AddItem(context.Background(), item); err != nil {
			return errMsg(err)
		}
		time.Sleep(200 * time.Millisecond)
		return refreshAfterActionMsg{}
	}
}

// switchPlayer points the UI at the selected player.
func (m Model) switchPlayer() tea.Cmd {
	return func() tea.Msg {
		selected := m.playersView.Selected()
		if selected < 0 || selected >= len(m.players) {
			return nil
		}
		d := m.players[selected]

		srv := m.app.player.Handle().Server()
		lp := lms.AttachPlayer(srv, lms.PlayerInfo{
			Ref:       d.Ref,
			Name:      d.Name,
			Model:     d.Model,
			Addr:      d.Addr,
			Connected: d.Connected,
		})
		return switchedPlayerMsg(playback.New(lp))
	}
}

func (m Model) setDefaultPlayer() tea.Cmd {
	return func() tea.Msg {
		selected := m.playersView.Selected()
		if selected < 0 || selected >= len(m.players) {
			return nil
		}
		player := m.players[selected]

		// The reference survives renames, so store it rather than the name.
		if err := saveDefaultPlayer(player.Ref); err != nil {
			return errMsg(err)
		}
		return defaultPlayerSetMsg(player.Ref)
	}
}

// saveDefaultPlayer persists the default player reference to the config file
func saveDefaultPlayer(ref string) error {
	configPath := config.FindFile()
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home dir: %w", err)
		}
		configPath = filepath.Join(home, ".slimrc")
	}

	// Read existing config
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte{}
		} else {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Decode into a raw map so unknown keys survive the round trip
	var rawConfig map[string]interface{}
	if len(data) > 0 {
		if _, err := toml.Decode(string(data), &rawConfig); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	} else {
		rawConfig = make(map[string]interface{})
	}

	defaults, ok := rawConfig["defaults"].(map[string]interface{})
	if !ok {
		defaults = make(map[string]interface{})
		rawConfig["defaults"] = defaults
	}
	defaults["player"] = ref

	// Write back
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer f.Close()

	_, _ = fmt.Fprintln(f, "# Slimctl Configuration")
	_, _ = fmt.Fprintln(f, "# https://github.com/ryanlidster/slimctl")
	_, _ = fmt.Fprintln(f, "")

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	return encoder.Encode(rawConfig)
}

// markOutcome flags the newest history entry as skipped when its track
// ended well before completion.
func (m *Model) markOutcome(old *core.PlaybackState) {
	if len(m.history) == 0 || old == nil || old.Track == nil {
		return
	}
	head := &m.history[0]
	if head.Track == nil || head.Track.Key() != old.Track.Key() {
		return
	}
	if old.Duration > 0 && float64(old.Elapsed) < float64(old.Duration)*0.95 {
		head.Skipped = true
	}
}

func (m *Model) addToHistory(track *core.Track) {
	entry := components.HistoryEntry{
		Track:    track,
		PlayedAt: time.Now(),
	}

	// Add to front, keep max 50 entries
	m.history = append([]components.HistoryEntry{entry}, m.history...)
	if len(m.history) > 50 {
		m.history = m.history[:50]
	}
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	// Show overlays if active
	if m.showHelp {
		return m.renderHelp()
	}

	if m.showAdd {
		return m.renderAdd()
	}

	// Main layout: two columns
	// Left: Now Playing (top), Playlist (bottom)
	// Right: Players (top), History (bottom)

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 2
	topHeight := m.height * 40 / 100
	bottomHeight := m.height - topHeight - 2

	activeRef := m.app.player.Handle().Ref()

	// Render panels
	nowPlaying := m.nowPlaying.Render(m.state, leftWidth-2, topHeight-2, m.focusedPanel == PanelNowPlaying)
	playlistView := m.playlistView.Render(m.playlist, leftWidth-2, bottomHeight-2, m.focusedPanel == PanelPlaylist)
	playersView := m.playersView.Render(m.players, rightWidth-2, topHeight-2, m.focusedPanel == PanelPlayers, activeRef, m.app.defaultPlayer)
	historyView := m.historyView.Render(m.history, rightWidth-2, bottomHeight-2, m.focusedPanel == PanelHistory)

	// Compose layout
	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, playlistView)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, playersView, historyView)

	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)

	// Status bar
	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, main, statusBar)
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:quit  ?:help  a:add  space:play/pause  n:next  p:prev  +/-:volume  m:mute  tab:switch panel")

	if m.lastError != nil {
		status = styles.Alert.Render("Error: " + m.lastError.Error())
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := "Slimctl UI - Keyboard Shortcuts"
	divider := styles.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  a            Add URL or path to playlist
  Tab          Next panel
  Shift+Tab    Previous panel
  r            Refresh

  Playback
  ────────
  Space        Play/Pause
  n            Next track
  p            Previous track
  +/=          Volume up
  -            Volume down
  m            Toggle mute

  Playlist Panel
  ──────────────
  j/↓          Select next
  k/↑          Select previous
  Enter        Play selected

  Players Panel
  ─────────────
  j/↓          Select next
  k/↑          Select previous
  Enter        Control this player
  d            Set as default (★)

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

func (m Model) renderAdd() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
	b.WriteString(titleStyle.Render("Add to playlist"))
	b.WriteString("\n\n")

	b.WriteString(m.addInput.View())
	b.WriteString("\n\n")

	b.WriteString(styles.Dim.Render("Enter:add  Esc:close"))

	content := lipgloss.NewStyle().
		Width(64).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.FocusedBorder.Render(content))
}

// Run starts the TUI application
func Run(app *App) error {
	model := NewModel(app)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
