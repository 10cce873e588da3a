package lms

import (
	"context"
	"strconv"
	"strings"

	slimerrors "github.com/ryanlidster/slimctl/internal/errors"
)

// SyncTarget names the player to form a group with, by handle, by
// reference or by server index. One of the three is required; when
// several are set a handle wins over a reference, a reference over an
// index.
type SyncTarget struct {
	Player *Player
	Ref    string
	Index  *int
}

func (t SyncTarget) empty() bool {
	return t.Player == nil && t.Ref == "" && t.Index == nil
}

func (t SyncTarget) resolve() string {
	switch {
	case t.Player != nil:
		return t.Player.ref
	case t.Ref != "":
		return t.Ref
	default:
		return strconv.Itoa(*t.Index)
	}
}

// Sync joins this player and target into one synchronization group.
//
// The underlying command names the player that should be added and is
// addressed to the player whose group it joins, so direction matters.
// As master this player issues sync {target} itself, pulling the target
// into its own group. As follower the command goes out through the
// target's channel naming this player, merging it into the target's
// group; that path addresses the target directly, so an index alone is
// not enough and is rejected.
func (p *Player) Sync(ctx context.Context, target SyncTarget, asMaster bool) error {
	if target.empty() {
		return slimerrors.ErrNoSyncTarget
	}
	if !asMaster && target.Player == nil && target.Ref == "" {
		return slimerrors.ErrSyncRefRequired
	}

	if asMaster {
		_, err := p.Send(ctx, "sync", target.resolve())
		return err
	}

	_, err := p.srv.Request(ctx, target.resolve(), "sync", p.ref)
	return err
}

// Unsync removes this player from its synchronization group.
func (p *Player) Unsync(ctx context.Context) error {
	_, err := p.Send(ctx, "sync", "-")
	return err
}

// SyncedRefs returns the references of the players synced with this
// one. The server reports "-" for an unsynced player, which comes back
// as an empty list.
func (p *Player) SyncedRefs(ctx context.Context) ([]string, error) {
	res, err := p.Send(ctx, "sync", "?")
	if err != nil {
		return nil, err
	}
	sync := stringField(res, "_sync", "")
	if sync == "-" || sync == "" {
		return nil, nil
	}
	return strings.Split(sync, ","), nil
}

// SyncedPlayers returns a live handle for every player synced with this
// one. Each member costs one construction round trip; use SyncedRefs
// when the bare references are enough.
func (p *Player) SyncedPlayers(ctx context.Context) ([]*Player, error) {
	refs, err := p.SyncedRefs(ctx)
	if err != nil {
		return nil, err
	}
	players := make([]*Player, 0, len(refs))
	for _, ref := range refs {
		member, err := NewPlayer(ctx, p.srv, ref)
		if err != nil {
			return nil, err
		}
		players = append(players, member)
	}
	return players, nil
}
