package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryanlidster/slimctl/internal/lms"
)

var (
	syncFollow bool
	syncIndex  int
	syncShow   bool
)

var syncCmd = &cobra.Command{
	Use:   "sync [target]",
	Short: "Show or form a sync group",
	Long: `Without arguments, shows the players synced with the selected player.

With a target the selected player pulls it into its own group, so both
play the same stream. With --follow the direction flips: the selected
player joins the target's group instead.

Examples:
  slimctl sync                    # Show the current sync group
  slimctl sync --show             # Same, explicitly
  slimctl sync Bedroom            # Pull Bedroom into this player's group
  slimctl sync Bedroom --follow   # Join Bedroom's group
  slimctl sync --index 2          # Pull the player at server index 2 in`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

var unsyncCmd = &cobra.Command{
	Use:   "unsync",
	Short: "Leave the sync group",
	Long:  `Remove the selected player from its synchronization group.`,
	RunE:  runUnsync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncFollow, "follow", false, "Join the target's group instead of pulling it in")
	syncCmd.Flags().IntVar(&syncIndex, "index", -1, "Target the player at this server index")
	syncCmd.Flags().BoolVar(&syncShow, "show", false, "Show the current sync group")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(unsyncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if syncShow || (len(args) == 0 && syncIndex < 0) {
		return showSyncGroup(ctx, lp)
	}
	if len(args) > 0 && syncIndex >= 0 {
		return fmt.Errorf("give either a target or --index, not both")
	}

	target, label, err := syncTarget(ctx, lp, args)
	if err != nil {
		return err
	}

	if err := lp.Sync(ctx, target, !syncFollow); err != nil {
		return fmt.Errorf("failed to sync: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"status": "synced",
			"target": label,
			"master": !syncFollow,
		})
	} else if syncFollow {
		fmt.Printf("⛓ Joined %s's group\n", label)
	} else {
		fmt.Printf("⛓ Pulled %s into the group\n", label)
	}

	return nil
}

func runUnsync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.Unsync(ctx); err != nil {
		return fmt.Errorf("failed to unsync: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "unsynced"})
	} else {
		fmt.Println("⛓ Left the sync group")
	}

	return nil
}

// syncTarget builds the sync target from the argument or --index flag.
// A name or reference resolves to a live handle so follower syncs can
// address it.
func syncTarget(ctx context.Context, lp *lms.Player, args []string) (lms.SyncTarget, string, error) {
	if len(args) > 0 {
		other, err := findPlayer(ctx, lp.Server(), args[0])
		if err != nil {
			return lms.SyncTarget{}, "", err
		}
		if other.Equal(lp) {
			return lms.SyncTarget{}, "", fmt.Errorf("cannot sync a player with itself")
		}
		return lms.SyncTarget{Player: other}, other.String(), nil
	}

	idx := syncIndex
	return lms.SyncTarget{Index: &idx}, fmt.Sprintf("player %d", idx), nil
}

func showSyncGroup(ctx context.Context, lp *lms.Player) error {
	refs, err := lp.SyncedRefs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sync group: %w", err)
	}

	if len(refs) == 0 {
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"synced_with": []string{}})
		}
		fmt.Println("Not synced")
		return nil
	}

	names := resolveNames(ctx, lp.Server(), refs)

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"synced_with": refs,
			"names":       names,
		})
	}

	fmt.Printf("⛓ Synced with %s\n", strings.Join(names, ", "))
	return nil
}

// resolveNames maps player references to names, keeping the bare
// reference for players missing from the enumeration.
func resolveNames(ctx context.Context, srv *lms.Server, refs []string) []string {
	names := make([]string, len(refs))
	copy(names, refs)

	infos, err := srv.Players(ctx)
	if err != nil {
		return names
	}

	byRef := make(map[string]string, len(infos))
	for _, info := range infos {
		byRef[strings.ToLower(info.Ref)] = info.Name
	}

	for i, ref := range refs {
		if name, ok := byRef[strings.ToLower(ref)]; ok && name != "" {
			names[i] = name
		}
	}
	return names
}
