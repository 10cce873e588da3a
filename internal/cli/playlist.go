package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ryanlidster/slimctl/internal/lms"
)

var playlistLimit int

var playlistCmd = &cobra.Command{
	Use:     "playlist",
	Aliases: []string{"pl", "queue"},
	Short:   "Show and edit the player's playlist",
	Long:    `Shows the current playlist and edits it: add, reorder, remove and jump.`,
	RunE:    runPlaylistList,
}

var playlistPlayCmd = &cobra.Command{
	Use:   "play <url>",
	Short: "Replace the playlist with an item and play it",
	Long:  `Replace the whole playlist with the given URL and start playing it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistPlay,
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Append an item to the playlist",
	Long: `Append a URL to the end of the playlist.

Examples:
  slimctl playlist add file:///music/album/02.flac
  slimctl playlist add http://stream.example.org/radio.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runPlaylistAdd,
}

var playlistInsertCmd = &cobra.Command{
	Use:     "insert <url>",
	Aliases: []string{"next"},
	Short:   "Insert an item after the current track",
	Long:    `Insert a URL right after the current track, so it plays next.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runPlaylistInsert,
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <position>",
	Short: "Remove the track at a position",
	Long:  `Remove the track at the given position, counting from 1 as shown by the listing.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistRemove,
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete <url>",
	Short: "Remove all occurrences of a URL",
	Long:  `Remove every playlist entry whose URL matches the argument.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistDelete,
}

var playlistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the playlist",
	Long:  `Remove every track from the playlist. Playback stops.`,
	RunE:  runPlaylistClear,
}

var playlistMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a track to another position",
	Long:  `Move the track at position <from> to position <to>, counting from 1.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runPlaylistMove,
}

var playlistJumpCmd = &cobra.Command{
	Use:     "jump <position>",
	Aliases: []string{"goto"},
	Short:   "Play the track at a position",
	Long:    `Start playing the track at the given position, counting from 1.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runPlaylistJump,
}

var playlistIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Show the current playlist position",
	RunE:  runPlaylistIndex,
}

func init() {
	playlistCmd.Flags().IntVarP(&playlistLimit, "limit", "l", 20, "Maximum number of tracks to show (0 for all)")

	playlistCmd.AddCommand(playlistPlayCmd)
	playlistCmd.AddCommand(playlistAddCmd)
	playlistCmd.AddCommand(playlistInsertCmd)
	playlistCmd.AddCommand(playlistRemoveCmd)
	playlistCmd.AddCommand(playlistDeleteCmd)
	playlistCmd.AddCommand(playlistClearCmd)
	playlistCmd.AddCommand(playlistMoveCmd)
	playlistCmd.AddCommand(playlistJumpCmd)
	playlistCmd.AddCommand(playlistIndexCmd)
	rootCmd.AddCommand(playlistCmd)
}

func runPlaylistList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	count, err := lp.TrackCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to get playlist: %w", err)
	}

	if count == 0 {
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"playlist": []interface{}{},
				"total":    0,
			})
		}
		fmt.Println("Playlist is empty")
		return nil
	}

	position, err := lp.PlaylistPosition(ctx)
	if err != nil {
		return fmt.Errorf("failed to get playlist position: %w", err)
	}

	tracks, err := lp.PlaylistInfo(ctx, lms.PlaylistQuery{
		Amount: count,
		Tags:   listTags(),
	})
	if err != nil {
		return fmt.Errorf("failed to get playlist: %w", err)
	}

	if JSONOutput() {
		return outputPlaylistJSON(tracks, count, position)
	}
	return outputPlaylistTable(tracks, count, position)
}

// listTags selects the track fields the listing renders.
func listTags() []string {
	return []string{
		lms.TagArtist,
		lms.TagAlbum,
		lms.TagDuration,
		lms.TagFilesize,
		lms.TagURL,
		lms.TagRemote,
	}
}

func outputPlaylistJSON(tracks []lms.TrackInfo, total, position int) error {
	output := make([]map[string]interface{}, len(tracks))
	for i, t := range tracks {
		item := map[string]interface{}{
			"index":  t.Index(),
			"title":  t.Title(),
			"artist": t.Artist(),
			"album":  t.Album(),
			"url":    t.URL(),
			"remote": t.Remote(),
		}
		if d := t.Duration(); d > 0 {
			item["duration"] = d
		}
		if size := t.Filesize(); size > 0 {
			item["filesize"] = size
		}
		output[i] = item
	}

	return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
		"playlist": output,
		"total":    total,
		"position": position,
	})
}

func outputPlaylistTable(tracks []lms.TrackInfo, total, position int) error {
	var totalSize uint64
	var totalSeconds float64
	for _, t := range tracks {
		totalSize += uint64(t.Filesize())
		totalSeconds += t.Duration()
	}

	header := fmt.Sprintf("Playlist (%s tracks, %s", humanize.Comma(int64(total)), FormatDuration(int(totalSeconds)))
	if totalSize > 0 {
		header += ", " + humanize.Bytes(totalSize)
	}
	fmt.Println(header + "):")

	shown := tracks
	if playlistLimit > 0 && len(shown) > playlistLimit {
		shown = shown[:playlistLimit]
	}

	for _, t := range shown {
		prefix := "  "
		if t.Index() == position {
			prefix = "▶ "
		}

		line := fmt.Sprintf("%s%3d. %s", prefix, t.Index()+1, TruncateString(t.Title(), 50))
		if artist := t.Artist(); artist != "" {
			line += " — " + artist
		}

		var details []string
		if d := t.Duration(); d > 0 {
			details = append(details, FormatDuration(int(d)))
		}
		if size := t.Filesize(); size > 0 {
			details = append(details, humanize.Bytes(uint64(size)))
		}
		if t.Remote() {
			details = append(details, "stream")
		}
		if len(details) > 0 {
			line += " (" + strings.Join(details, ", ") + ")"
		}

		fmt.Println(line)
	}

	if len(tracks) > len(shown) {
		fmt.Printf("\n... and %d more tracks\n", len(tracks)-len(shown))
	}

	return nil
}

func runPlaylistPlay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

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

func runPlaylistAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	item := args[0]
	if err := lp.AddItem(ctx, item); err != nil {
		return fmt.Errorf("failed to add to playlist: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "added", "item": item})
	} else {
		fmt.Printf("Added to playlist: %s\n", item)
	}

	return nil
}

func runPlaylistInsert(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	item := args[0]
	if err := lp.InsertItem(ctx, item); err != nil {
		return fmt.Errorf("failed to insert into playlist: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "inserted", "item": item})
	} else {
		fmt.Printf("Playing next: %s\n", item)
	}

	return nil
}

func runPlaylistRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.EraseIndex(ctx, index); err != nil {
		return fmt.Errorf("failed to remove track: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"status": "removed", "position": index + 1})
	} else {
		fmt.Printf("Removed track %d\n", index+1)
	}

	return nil
}

func runPlaylistDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	item := args[0]
	if err := lp.DeleteItem(ctx, item); err != nil {
		return fmt.Errorf("failed to delete from playlist: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "deleted", "item": item})
	} else {
		fmt.Printf("Deleted from playlist: %s\n", item)
	}

	return nil
}

func runPlaylistClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.ClearPlaylist(ctx); err != nil {
		return fmt.Errorf("failed to clear playlist: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "cleared"})
	} else {
		fmt.Println("Playlist cleared")
	}

	return nil
}

func runPlaylistMove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	from, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	to, err := parseIndex(args[1])
	if err != nil {
		return err
	}

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.Move(ctx, from, to); err != nil {
		return fmt.Errorf("failed to move track: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"status": "moved", "from": from + 1, "to": to + 1})
	} else {
		fmt.Printf("Moved track %d to %d\n", from+1, to+1)
	}

	return nil
}

func runPlaylistJump(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	if err := lp.PlayIndex(ctx, index); err != nil {
		return fmt.Errorf("failed to jump: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"status": "playing", "position": index + 1})
	} else {
		fmt.Printf("⏭ Jumped to track %d\n", index+1)
	}

	return nil
}

func runPlaylistIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lp, err := resolvePlayer(ctx)
	if err != nil {
		return err
	}

	count, err := lp.TrackCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to get playlist: %w", err)
	}

	if count == 0 {
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(map[string]int{"position": 0, "total": 0})
		}
		fmt.Println("Playlist is empty")
		return nil
	}

	position, err := lp.PlaylistPosition(ctx)
	if err != nil {
		return fmt.Errorf("failed to get playlist position: %w", err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]int{"position": position, "total": count})
	}
	fmt.Printf("Track %d of %d\n", position+1, count)
	return nil
}

// parseIndex converts a 1-based position argument into the 0-based
// index the server expects.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position: %s", arg)
	}
	return n - 1, nil
}
