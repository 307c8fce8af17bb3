// Package roster supplies the static data the auction runs on: teams,
// players and rules. It holds no auction logic.
package roster

import (
	"context"

	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/engine"
)

type Roster struct {
	Teams   []engine.Team
	Players []engine.Player
	Rules   engine.Rules
}

// Source loads a roster baseline. The engine installs whatever it gets
// and never reaches back into the source mid-auction.
type Source interface {
	Load(ctx context.Context) (Roster, error)
}

// Static serves the built-in IPL roster.
type Static struct{}

func (Static) Load(context.Context) (Roster, error) {
	return Roster{
		Teams:   DefaultTeams(),
		Players: DefaultPlayers(),
		Rules:   DefaultRules(),
	}, nil
}

// NewState builds the engine baseline from a loaded roster.
func (r Roster) NewState() engine.State {
	return engine.NewState(r.Teams, r.Players, r.Rules)
}
