package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumenworks/chanhub/cli/internal/api"
)

// gateState tracks whether the signed-in user may manage platform users.
type gateState int

const (
	// gateIdle means the users tab has not been opened yet, so no check
	// is in flight.
	gateIdle gateState = iota
	gatePending
	gateGranted
	gateDenied
	gateUnauthenticated
)

type gateResolvedMsg struct{ state gateState }

// resolveGateCmd fetches the user's permissions and maps them to a gate
// state. Any fetch failure closes the gate rather than leaving it open.
func resolveGateCmd(client *api.Client, userID int) tea.Cmd {
	if userID <= 0 {
		return func() tea.Msg {
			return gateResolvedMsg{state: gateUnauthenticated}
		}
	}
	return func() tea.Msg {
		records, err := client.GetUserPermissions(userID)
		if err != nil {
			return gateResolvedMsg{state: gateDenied}
		}
		if api.HasUserManagement(records) {
			return gateResolvedMsg{state: gateGranted}
		}
		return gateResolvedMsg{state: gateDenied}
	}
}
