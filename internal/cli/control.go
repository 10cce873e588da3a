package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryanlidster/slimctl/internal/lms"
)

var playCmd = &cobra.Command{
	Use:   "play [url]",
	Short: "Start playback",
	Long: `Start playback on the selected player. With a URL argument the
playlist is replaced by that item; without one the current playlist
starts playing.

Examples:
  slimctl play
  slimctl play http://stream.example.org/radio.mp3
  slimctl play file:///music/album/01.flac`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop playback",
	Long:  `Stop the current playback.`,
	RunE:  runStop,
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	Long:  `Pause the current playback.`,
	RunE:  runPause,
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume playback",
	Long:  `Resume paused playback.`,
	RunE:  runResume,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle between play and pause",
	Long:  `Pause the player when it is playing, resume it when it is paused.`,
	RunE:  runToggle,
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to next track",
	Long:  `Skip to the next track in the playlist.`,
	RunE:  runNext,
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Go to previous track",
	Long:  `Go back to the previous track.`,
	RunE:  runPrev,
}

var restartCmd = &cobra.Command{
	Use:     "restart",
	Aliases: []string{"replay"},
	Short:   "Restart current track",
	Long:    `Restart the current track from the beginning.`,
	RunE:    runRestart,
}

var seekCmd = &cobra.Command{
	Use:   "seek <position>",
	Short: "Seek within the current track",
	Long: `Jump to a position in the current track.

Positions are plain seconds, clock notation, or a relative offset:
  slimctl seek 90
  slimctl seek 1:30
  slimctl seek 1:02:05
  slimctl seek +30
  slimctl seek -15`,
	Args: cobra.ExactArgs(1),
	RunE: runSeek,
}

var forwardCmd = &cobra.Command{
	Use:     "forward [seconds]",
	Aliases: []string{"ff"},
	Short:   "Jump forward in the current track",
	Long:    `Jump forward by the given number of seconds, or by defaults.skip_seconds.`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runForward,
}

var rewindCmd = &cobra.Command{
	Use:     "rewind [seconds]",
	Aliases: []string{"rw"},
	Short:   "Jump backward in the current track",
	Long:    `Jump backward by the given number of seconds, or by defaults.skip_seconds.`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runRewind,
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(seekCmd)
	rootCmd.AddCommand(forwardCmd)
	rootCmd.AddCommand(rewindCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		item := args[0]
		if err := lp.PlayItem(ctx, item); err != nil {
			return fmt.Errorf("failed to play %s: %w", item, err)
		}
		if JSONOutput() {
			_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "playing", "item": item})
		} else {
			fmt.Printf("▶ Playing %s\n", item)
		}
		return nil
	}

	if err := lp.Play(ctx); err != nil {
		return fmt.Errorf("failed to play: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "playing"})
	} else {
		fmt.Println("▶ Playing")
	}

	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "stopped"})
	} else {
		fmt.Println("⏹ Stopped")
	}

	return nil
}

func runPause(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.Pause(ctx); err != nil {
		return fmt.Errorf("failed to pause: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "paused"})
	} else {
		fmt.Println("⏸ Paused")
	}

	return nil
}

func runResume(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.Unpause(ctx); err != nil {
		return fmt.Errorf("failed to resume: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "playing"})
	} else {
		fmt.Println("▶ Resumed")
	}

	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.TogglePause(ctx); err != nil {
		return fmt.Errorf("failed to toggle: %w", err)
	}

	// Report the mode the player landed in.
	mode, err := lp.Mode(ctx)
	if err != nil {
		mode = ""
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "toggled", "mode": mode})
	} else {
		switch mode {
		case "play":
			fmt.Println("▶ Playing")
		case "pause":
			fmt.Println("⏸ Paused")
		default:
			fmt.Println("⏯ Toggled")
		}
	}

	return nil
}

func runNext(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.Next(ctx); err != nil {
		return fmt.Errorf("failed to skip: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "skipped"})
	} else {
		fmt.Println("⏭ Skipped to next track")
	}

	return nil
}

func runPrev(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.Prev(ctx); err != nil {
		return fmt.Errorf("failed to go back: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "previous"})
	} else {
		fmt.Println("⏮ Previous track")
	}

	return nil
}

func runRestart(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.SeekTo(ctx, 0); err != nil {
		return fmt.Errorf("failed to restart: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "restarted"})
	} else {
		fmt.Println("⏪ Restarted track")
	}

	return nil
}

func runSeek(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	arg := args[0]

	// Relative offsets jump from the current position.
	if strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-") {
		return runSeekRelative(ctx, arg)
	}

	seconds, err := parsePosition(arg)
	if err != nil {
		return err
	}

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.SeekTo(ctx, seconds); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"status": "seeked", "position": seconds})
	} else {
		fmt.Printf("⏩ Seeked to %s\n", FormatDuration(int(seconds)))
	}

	return nil
}

func runSeekRelative(ctx context.Context, arg string) error {
	seconds, err := strconv.ParseFloat(arg[1:], 64)
	if err != nil || seconds < 0 {
		return fmt.Errorf("invalid position %q", arg)
	}

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if arg[0] == '+' {
		err = lp.Forward(ctx, seconds)
	} else {
		err = lp.Rewind(ctx, seconds)
	}
	if err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"status": "seeked", "offset": arg})
	} else if arg[0] == '+' {
		fmt.Printf("⏩ Forward %gs\n", seconds)
	} else {
		fmt.Printf("⏪ Rewound %gs\n", seconds)
	}

	return nil
}

func runForward(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	seconds, err := skipAmount(args)
	if err != nil {
		return err
	}

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.Forward(ctx, seconds); err != nil {
		return fmt.Errorf("failed to jump forward: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"status": "forward", "seconds": seconds})
	} else {
		fmt.Printf("⏩ Forward %gs\n", seconds)
	}

	return nil
}

func runRewind(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	seconds, err := skipAmount(args)
	if err != nil {
		return err
	}

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.Rewind(ctx, seconds); err != nil {
		return fmt.Errorf("failed to jump backward: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"status": "rewind", "seconds": seconds})
	} else {
		fmt.Printf("⏪ Rewound %gs\n", seconds)
	}

	return nil
}

// skipAmount returns the jump size for forward and rewind: the argument
// when given, defaults.skip_seconds otherwise.
func skipAmount(args []string) (float64, error) {
	if len(args) > 0 {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("invalid number of seconds: %s", args[0])
		}
		return v, nil
	}
	if cfg.Defaults.SkipSeconds > 0 {
		return float64(cfg.Defaults.SkipSeconds), nil
	}
	return lms.DefaultSkipSeconds, nil
}

// parsePosition converts a position argument into seconds. Accepted
// forms: plain seconds ("90", "90.5"), mm:ss ("1:30") and h:mm:ss
// ("1:02:05").
func parsePosition(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid position %q", s)
	}

	if len(parts) == 1 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid position %q", s)
		}
		return v, nil
	}

	total := 0.0
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid position %q", s)
		}
		if i > 0 && v >= 60 {
			return 0, fmt.Errorf("invalid position %q", s)
		}
		total = total*60 + v
	}
	return total, nil
}
