package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ryanlidster/slimctl/internal/core"
	"github.com/ryanlidster/slimctl/internal/tail"
	"github.com/spf13/cobra"
)

var (
	tailPlain      bool
	tailTimestamps bool
	tailFormat     string
	tailInterval   time.Duration
)

var tailCmd = &cobra.Command{
	Use:     "tail [player]",
	Aliases: []string{"follow"},
	Args:    cobra.MaximumNArgs(1),
	Short:   "Follow playback changes in real-time",
	Long: `Watch a player for state changes and print them as they happen.

Events tracked:
  - Track changes (new song started)
  - Track completions (song finished)
  - Track skips (song skipped before completion)
  - Pause/Resume/Stop
  - Volume and mute changes
  - Playlist edits`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailPlain, "plain", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamps, "timestamps", "t", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")
	tailCmd.Flags().DurationVarP(&tailInterval, "interval", "i", 0, "poll interval (default from config)")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	// Handle Ctrl+C gracefully
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	player, err := resolvePlaybackArg(ctx, args)
	if err != nil {
		return err
	}

	formatter := tail.NewFormatter(
		tail.WithEmoji(!tailPlain && !cfg.Tail.Plain),
		tail.WithTimestamp(tailTimestamps || cfg.Tail.Timestamps),
		tail.WithTemplate(tailTemplate()),
	)

	// Show the current song on startup
	showInitialState(ctx, player, formatter)

	watcher := tail.NewWatcher(player, pollInterval())

	// Start watching in background
	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Start(ctx)
	}()

	// Print events as they arrive
	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			fmt.Println(formatter.Format(event))

		case err := <-errCh:
			if err == context.Canceled {
				return nil
			}
			return err
		}
	}
}

// tailTemplate returns the event template, preferring the flag over config.
func tailTemplate() string {
	if tailFormat != "" {
		return tailFormat
	}
	return cfg.Tail.Format
}

// pollInterval returns the poll interval, preferring the flag over config.
func pollInterval() time.Duration {
	if tailInterval > 0 {
		return tailInterval
	}
	if cfg.Tail.Interval > 0 {
		return time.Duration(cfg.Tail.Interval) * time.Millisecond
	}
	return time.Second
}

// showInitialState displays the current song on startup so the stream
// does not begin silent.
func showInitialState(ctx context.Context, p core.Player, formatter *tail.Formatter) {
	state, err := p.GetState(ctx)
	if err == nil && state != nil && state.Track != nil {
		event := tail.Event{
			Type:      tail.EventTrackChange,
			Timestamp: time.Now(),
			Current:   state,
		}
		fmt.Println(formatter.Format(event))
	}
}
