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

var (
	volumeUp   bool
	volumeDown bool
	muteToggle bool
)

var volumeCmd = &cobra.Command{
	Use:     "volume [level]",
	Aliases: []string{"vol"},
	Short:   "Show, set or adjust volume",
	Long: `Show the player's volume, set it to an absolute level (0-100) or
nudge it relative to where it is.

Examples:
  slimctl volume           # Show current volume
  slimctl volume 50        # Set volume to 50%
  slimctl volume +5        # Nudge volume up by 5%
  slimctl volume --up      # Increase by defaults.volume_step
  slimctl volume --down    # Decrease by defaults.volume_step`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVolume,
}

var muteCmd = &cobra.Command{
	Use:       "mute [on|off|toggle]",
	Short:     "Mute the player",
	Long:      `Mute the player. "off" unmutes, "toggle" flips the current state.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off", "toggle"},
	RunE:      runMute,
}

var unmuteCmd = &cobra.Command{
	Use:   "unmute",
	Short: "Unmute the player",
	Long:  `Restore the player's volume after a mute.`,
	RunE:  runUnmute,
}

func init() {
	volumeCmd.Flags().BoolVar(&volumeUp, "up", false, "Increase volume by the configured step")
	volumeCmd.Flags().BoolVar(&volumeDown, "down", false, "Decrease volume by the configured step")
	muteCmd.Flags().BoolVar(&muteToggle, "toggle", false, "Flip the mute state")

	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(muteCmd)
	rootCmd.AddCommand(unmuteCmd)
}

func runVolume(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	current, err := lp.Volume(ctx)
	if err != nil {
		return fmt.Errorf("failed to get volume: %w", err)
	}

	step := cfg.Defaults.VolumeStep
	if step <= 0 {
		step = lms.DefaultVolumeStep
	}

	var target *int
	switch {
	case volumeUp && volumeDown:
		return fmt.Errorf("--up and --down are mutually exclusive")
	case volumeUp:
		t := clampVolume(current + step)
		target = &t
	case volumeDown:
		t := clampVolume(current - step)
		target = &t
	case len(args) > 0:
		t, err := parseVolumeArg(args[0], current, step)
		if err != nil {
			return err
		}
		target = &t
	}

	if target == nil {
		// Just show current volume
		muted, err := lp.Muted(ctx)
		if err != nil {
			return fmt.Errorf("failed to get mute state: %w", err)
		}
		if JSONOutput() {
			_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"volume": current, "muted": muted})
		} else if muted {
			fmt.Printf("🔇 Volume: %d%% (muted)\n", current)
		} else {
			fmt.Printf("🔊 Volume: %d%%\n", current)
		}
		return nil
	}

	if err := lp.SetVolume(ctx, *target); err != nil {
		return fmt.Errorf("failed to set volume: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"volume": *target, "previous": current})
	} else {
		fmt.Printf("🔊 Volume: %d%% (was %d%%)\n", *target, current)
	}

	return nil
}

func runMute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	mode := "on"
	if muteToggle {
		mode = "toggle"
	}
	if len(args) > 0 {
		mode = args[0]
	}

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	switch mode {
	case "toggle":
		if err := lp.ToggleMute(ctx); err != nil {
			return fmt.Errorf("failed to toggle mute: %w", err)
		}
		muted, err := lp.Muted(ctx)
		if err != nil {
			return fmt.Errorf("failed to get mute state: %w", err)
		}
		return reportMute(muted)

	case "off":
		if err := lp.Unmute(ctx); err != nil {
			return fmt.Errorf("failed to unmute: %w", err)
		}
		return reportMute(false)

	case "on":
		if err := lp.Mute(ctx); err != nil {
			return fmt.Errorf("failed to mute: %w", err)
		}
		return reportMute(true)

	default:
		return fmt.Errorf("invalid mute state %q (use on, off or toggle)", mode)
	}
}

func runUnmute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.Unmute(ctx); err != nil {
		return fmt.Errorf("failed to unmute: %w", err)
	}
	return reportMute(false)
}

func reportMute(muted bool) error {
	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]bool{"muted": muted})
	}
	if muted {
		fmt.Println("🔇 Muted")
	} else {
		fmt.Println("🔊 Unmuted")
	}
	return nil
}

// parseVolumeArg interprets a volume argument. Signed values nudge
// relative to the current level, with a bare sign meaning one configured
// step. Anything else is an absolute level.
func parseVolumeArg(arg string, current, step int) (int, error) {
	switch {
	case arg == "+":
		return clampVolume(current + step), nil
	case arg == "-":
		return clampVolume(current - step), nil
	case strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-"):
		delta, err := strconv.Atoi(arg)
		if err != nil {
			return 0, fmt.Errorf("invalid volume adjustment: %s", arg)
		}
		return clampVolume(current + delta), nil
	default:
		v, err := strconv.Atoi(arg)
		if err != nil {
			return 0, fmt.Errorf("invalid volume level: %s", arg)
		}
		if v < 0 || v > 100 {
			return 0, fmt.Errorf("volume must be between 0 and 100")
		}
		return v, nil
	}
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
