package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/ryanlidster/slimctl/internal/core"
	"github.com/ryanlidster/slimctl/internal/lms"
	"github.com/ryanlidster/slimctl/internal/playback"
)

var statusCopyURL bool

var statusCmd = &cobra.Command{
	Use:   "status [player]",
	Short: "Show current playback status",
	Long:  `Shows what the selected player is doing: track, position, volume and sync group.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusCopyURL, "copy-url", false, "Copy the current track URL to the clipboard")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayerArg(ctx, args)
	if err != nil {
		return err
	}

	state, err := playback.New(lp).GetState(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	syncedWith, err := syncedNames(ctx, lp)
	if err != nil && Verbose() {
		fmt.Fprintf(os.Stderr, "sync query failed: %v\n", err)
	}

	// Hardware players report wireless signal strength; line-in and
	// software players report 0.
	signal := 0
	if Verbose() {
		if s, err := lp.SignalStrength(ctx); err == nil {
			signal = s
		}
	}

	if statusCopyURL {
		if state.Track == nil || state.Track.URL == "" {
			return fmt.Errorf("no track URL to copy")
		}
		if err := clipboard.WriteAll(state.Track.URL); err != nil {
			return fmt.Errorf("failed to copy URL: %w", err)
		}
		if !JSONOutput() {
			fmt.Println("Copied track URL to clipboard")
		}
	}

	if JSONOutput() {
		return outputStatusJSON(state, syncedWith, signal)
	}
	return outputStatusTable(state, syncedWith, signal)
}

// syncedNames resolves the names of the players synced with p.
func syncedNames(ctx context.Context, p *lms.Player) ([]string, error) {
	refs, err := p.SyncedRefs(ctx)
	if err != nil || len(refs) == 0 {
		return nil, err
	}
	return resolveNames(ctx, p.Server(), refs), nil
}

func outputStatusJSON(state *core.PlaybackState, syncedWith []string, signal int) error {
	item := map[string]interface{}{
		"player":  state.Player,
		"ref":     state.Ref,
		"mode":    state.Mode,
		"playing": state.IsPlaying(),
		"volume":  state.Volume,
		"muted":   state.Muted,
	}

	if state.Track != nil {
		track := map[string]interface{}{
			"title":  state.Track.Title,
			"artist": state.Track.Artist,
			"album":  state.Track.Album,
			"remote": state.Track.Remote,
		}
		if state.Track.URL != "" {
			track["url"] = state.Track.URL
		}
		item["track"] = track
		item["elapsed"] = state.Elapsed.Round(time.Second).String()
		item["duration"] = state.Duration.Round(time.Second).String()
		item["progress_percent"] = state.ProgressPercent()
	}

	if len(syncedWith) > 0 {
		item["synced_with"] = syncedWith
	}
	if signal > 0 {
		item["signal_strength"] = signal
	}

	return json.NewEncoder(os.Stdout).Encode(item)
}

func outputStatusTable(state *core.PlaybackState, syncedWith []string, signal int) error {
	if state.Track == nil {
		fmt.Printf("%s: nothing playing\n", state.Player)
		return nil
	}

	playIcon := "▶"
	switch state.Mode {
	case core.ModePause:
		playIcon = "⏸"
	case core.ModeStop:
		playIcon = "⏹"
	}

	fmt.Printf("%s %s\n", playIcon, state.Track.Title)
	if state.Track.Artist != "" && state.Track.Album != "" {
		fmt.Printf("  %s — %s\n", state.Track.Artist, state.Track.Album)
	} else if state.Track.Artist != "" {
		fmt.Printf("  %s\n", state.Track.Artist)
	}

	if state.Duration > 0 {
		bar := FormatProgress(int(state.Elapsed.Seconds()), int(state.Duration.Seconds()), 30)
		fmt.Printf("  %s %s / %s\n", bar, formatDuration(state.Elapsed), formatDuration(state.Duration))
	} else if state.Elapsed > 0 {
		// Remote streams report elapsed time with no known duration.
		fmt.Printf("  %s\n", formatDuration(state.Elapsed))
	}

	volume := fmt.Sprintf("%d%%", state.Volume)
	if state.Muted {
		volume = "muted"
	}
	fmt.Printf("  🔊 %s (%s)\n", state.Player, volume)

	if len(syncedWith) > 0 {
		fmt.Printf("  ⛓ synced with %s\n", strings.Join(syncedWith, ", "))
	}

	if signal > 0 {
		fmt.Printf("  📶 signal %d%%\n", signal)
	}

	return nil
}

func formatDuration(d time.Duration) string {
	return FormatDuration(int(d.Round(time.Second).Seconds()))
}
