package wizard

import (
	"os"

	"github.com/ryanlidster/slimctl/internal/core"
	"golang.org/x/term"
)

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PromptPlayer launches the player picker if stdout is a terminal.
// Returns the selected player, or nil if cancelled or not interactive.
func PromptPlayer(players []core.Device) (*core.Device, error) {
	if !IsTerminal() || len(players) == 0 {
		return nil, nil
	}
	return RunPlayerPicker(players)
}

// ConnectedPlayer returns the single connected player if there is exactly one.
func ConnectedPlayer(players []core.Device) *core.Device {
	var connected *core.Device
	count := 0
	for i := range players {
		if players[i].Connected {
			connected = &players[i]
			count++
		}
	}
	if count == 1 {
		return connected
	}
	return nil
}
