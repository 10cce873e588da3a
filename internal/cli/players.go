package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	slimerrors "github.com/ryanlidster/slimctl/internal/errors"
	"github.com/ryanlidster/slimctl/internal/lms"
)

var playersCmd = &cobra.Command{
	Use:     "players",
	Aliases: []string{"ls"},
	Short:   "List players attached to the server",
	Long:    `Lists every player the server knows about with its connection state, playback mode and volume.`,
	RunE:    runPlayers,
}

func init() {
	rootCmd.AddCommand(playersCmd)
}

type playerRow struct {
	Ref        string   `json:"ref"`
	Name       string   `json:"name"`
	Model      string   `json:"model"`
	Addr       string   `json:"addr,omitempty"`
	Connected  bool     `json:"connected"`
	Mode       string   `json:"mode,omitempty"`
	Volume     *int     `json:"volume,omitempty"`
	SyncedWith []string `json:"synced_with,omitempty"`
}

func runPlayers(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	srv := connect()
	infos, err := srv.Players(ctx)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}

	if len(infos) == 0 {
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode([]playerRow{})
		}
		fmt.Println("No players found")
		return nil
	}

	result := collectPlayers(ctx, srv, infos)

	if JSONOutput() {
		if err := json.NewEncoder(os.Stdout).Encode(result.Data); err != nil {
			return err
		}
	} else {
		outputPlayersTable(result.Data)
	}

	if result.HasErrors() && Verbose() {
		fmt.Fprintln(os.Stderr, result.ErrorSummary())
	}
	return nil
}

// collectPlayers enriches the bare listing with each player's mode and
// volume. A player that does not answer still gets its row; the failure
// is recorded instead of aborting the whole listing.
func collectPlayers(ctx context.Context, srv *lms.Server, infos []lms.PlayerInfo) *slimerrors.PartialResult[[]playerRow] {
	result := &slimerrors.PartialResult[[]playerRow]{}

	for _, info := range infos {
		row := playerRow{
			Ref:       info.Ref,
			Name:      info.Name,
			Model:     info.Model,
			Addr:      info.Addr,
			Connected: info.Connected,
		}

		if info.Connected {
			p := lms.AttachPlayer(srv, info)

			mode, err := p.Mode(ctx)
			if err != nil {
				result.AddError(fmt.Errorf("%s: mode: %w", info.Name, err))
			} else {
				row.Mode = mode
			}

			vol, err := p.Volume(ctx)
			if err != nil {
				result.AddError(fmt.Errorf("%s: volume: %w", info.Name, err))
			} else {
				row.Volume = &vol
			}

			refs, err := p.SyncedRefs(ctx)
			if err != nil {
				result.AddError(fmt.Errorf("%s: sync: %w", info.Name, err))
			} else {
				row.SyncedWith = refs
			}
		}

		result.Data = append(result.Data, row)
	}

	return result
}

func outputPlayersTable(rows []playerRow) {
	table := NewTable("", "NAME", "MODEL", "MODE", "VOLUME", "SYNC", "ADDR", "REF")
	for _, row := range rows {
		mode := row.Mode
		if mode == "" {
			mode = "-"
		}
		volume := "-"
		if row.Volume != nil {
			volume = fmt.Sprintf("%d%%", *row.Volume)
		}
		sync := "-"
		if n := len(row.SyncedWith); n > 0 {
			sync = fmt.Sprintf("⛓ %d", n)
		}
		addr := row.Addr
		if addr == "" {
			addr = "-"
		}
		name := row.Name
		if isDefaultPlayer(row) {
			name += " *"
		}
		table.Row(StatusIcon(row.Connected), name, row.Model, mode, volume, sync, addr, row.Ref)
	}
	table.Flush()

	if cfg.Defaults.Player != "" {
		fmt.Println("\n* default player")
	}
}

// isDefaultPlayer reports whether the row matches defaults.player.
func isDefaultPlayer(row playerRow) bool {
	def := cfg.Defaults.Player
	if def == "" {
		return false
	}
	return strings.EqualFold(row.Ref, def) || strings.EqualFold(row.Name, def)
}
