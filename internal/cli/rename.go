package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <name>",
	Short: "Rename the selected player",
	Long: `Set the display name of the selected player. The reference stays
the same, so config entries keyed by reference keep working.`,
	Args: cobra.ExactArgs(1),
	RunE: runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	old := lp.String()
	if err := lp.SetName(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "renamed",
			"name":   args[0],
			"ref":    lp.Ref(),
		})
	} else {
		fmt.Printf("Renamed %s to %q\n", old, args[0])
	}

	return nil
}
