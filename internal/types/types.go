package types

import (
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/engine"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/room"
)

// ClientMessage is what a connected client sends over the websocket.
// Type selects the operation; the other fields are per-type payload.
type ClientMessage struct {
	Type     string `json:"type"`
	TeamID   string `json:"team_id,omitempty"`
	UserName string `json:"user_name,omitempty"`
	Mode     string `json:"mode,omitempty"`

	// Custom auction setup.
	Teams   []engine.Team   `json:"teams,omitempty"`
	Players []engine.Player `json:"players,omitempty"`
	Rules   *engine.Rules   `json:"rules,omitempty"`
}

type ServerMessage struct {
	Type     string         `json:"type"` // "StateSnapshot" | "Error"
	Snapshot *room.Snapshot `json:"snapshot,omitempty"`
	Error    string         `json:"error,omitempty"`
}
