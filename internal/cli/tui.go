package cli

import (
	"context"
	"time"

	"github.com/ryanlidster/slimctl/internal/tui"
	"github.com/ryanlidster/slimctl/internal/tui/styles"
	"github.com/spf13/cobra"
)

var tuiRefresh int

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard provides a live view with:
  • Now Playing - current track, progress, volume
  • Playlist - the player's current playlist
  • Players - players attached to the server
  • History - tracks played this session

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  a            Add URL or path to playlist
  Space        Play/Pause
  n            Next track
  p            Previous track
  +/-          Volume up/down
  m            Toggle mute
  Tab          Switch panel`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "Refresh interval in milliseconds (default from config)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	player, err := resolvePlayback(ctx)
	if err != nil {
		return err
	}

	styles.SetTheme(cfg.TUI.Theme)

	refresh := tuiRefresh
	if refresh <= 0 {
		refresh = cfg.TUI.RefreshInterval
	}
	refreshRate := time.Duration(refresh) * time.Millisecond

	app := tui.New(player, refreshRate, cfg.Defaults.VolumeStep, cfg.Defaults.Player)
	return tui.Run(app)
}
