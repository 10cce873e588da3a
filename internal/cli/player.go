package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	slimerrors "github.com/ryanlidster/slimctl/internal/errors"
	"github.com/ryanlidster/slimctl/internal/lms"
	"github.com/ryanlidster/slimctl/internal/playback"
	"github.com/ryanlidster/slimctl/internal/wizard"
)

// connect builds a server handle from the loaded configuration.
func connect() *lms.Server {
	srv := lms.NewServer(cfg.Server.Host, cfg.Server.Port)
	if t := cfg.Server.Timeout(); t > 0 {
		srv.SetTimeout(t)
	}
	if Verbose() {
		srv.SetVerbose(true, requestLogger())
	}
	return srv
}

// requestLogger returns the sink for verbose request logging: the
// configured log file when one is set, stderr otherwise.
func requestLogger() func(format string, args ...interface{}) {
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			// The handle stays open for the life of the process.
			return log.New(f, "", log.LstdFlags).Printf
		}
		fmt.Fprintf(os.Stderr, "cannot open log file %s: %v\n", cfg.Log.File, err)
	}
	return func(format string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// selectedPlayer returns the requested player name or reference, the
// --player flag over the configured default.
func selectedPlayer() string {
	if playerFlag != "" {
		return playerFlag
	}
	return cfg.Defaults.Player
}

// resolvePlayer picks the player to control: the --player flag wins,
// then defaults.player from config, then the single connected player,
// then an interactive picker when stdout is a terminal.
func resolvePlayer(ctx context.Context) (*lms.Player, error) {
	srv := connect()

	if sel := selectedPlayer(); sel != "" {
		return findPlayer(ctx, srv, sel)
	}

	players, err := playback.Devices(ctx, srv)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	if d := wizard.ConnectedPlayer(players); d != nil {
		return lms.NewPlayer(ctx, srv, d.Ref)
	}

	d, err := wizard.PromptPlayer(players)
	if err != nil {
		return nil, err
	}
	if d != nil {
		return lms.NewPlayer(ctx, srv, d.Ref)
	}

	return nil, slimerrors.ErrNoPlayer
}

// resolvePlayerArg resolves the player to control, giving a positional
// argument priority over the --player flag and the configured default.
func resolvePlayerArg(ctx context.Context, args []string) (*lms.Player, error) {
	if len(args) > 0 {
		return findPlayer(ctx, connect(), args[0])
	}
	return resolvePlayer(ctx)
}

// resolvePlayback resolves the selected player and wraps it in the
// playback adapter.
func resolvePlayback(ctx context.Context) (*playback.Player, error) {
	lp, err := resolvePlayer(ctx)
	if err != nil {
		return nil, err
	}
	return playback.New(lp), nil
}

// resolvePlaybackArg is resolvePlayerArg wrapped in the playback adapter.
func resolvePlaybackArg(ctx context.Context, args []string) (*playback.Player, error) {
	lp, err := resolvePlayerArg(ctx, args)
	if err != nil {
		return nil, err
	}
	return playback.New(lp), nil
}

// findPlayer matches a name or reference against the server's player
// list: an exact reference first, then an exact name ignoring case,
// then a partial name.
func findPlayer(ctx context.Context, srv *lms.Server, nameOrRef string) (*lms.Player, error) {
	infos, err := srv.Players(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	for _, info := range infos {
		if strings.EqualFold(info.Ref, nameOrRef) {
			return lms.NewPlayer(ctx, srv, info.Ref)
		}
	}

	for _, info := range infos {
		if strings.EqualFold(info.Name, nameOrRef) {
			return lms.NewPlayer(ctx, srv, info.Ref)
		}
	}

	needle := strings.ToLower(nameOrRef)
	for _, info := range infos {
		if strings.Contains(strings.ToLower(info.Name), needle) {
			return lms.NewPlayer(ctx, srv, info.Ref)
		}
	}

	return nil, fmt.Errorf("player %q: %w", nameOrRef, slimerrors.ErrPlayerNotFound)
}
