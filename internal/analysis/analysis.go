// Package analysis produces the descriptive blurb shown for a player on
// the block. The engine treats it as an opaque keyed lookup: requested
// once when a player is first presented, cached on the player record,
// never retried on failure.
package analysis

import (
	"context"
	"fmt"

	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/engine"
)

type Provider interface {
	PlayerAnalysis(ctx context.Context, p engine.Player) (string, error)
}

// Offline generates analysis text from the player's own stats, with no
// network dependency.
type Offline struct{}

func (Offline) PlayerAnalysis(_ context.Context, p engine.Player) (string, error) {
	experience := "a newcomer still finding his feet"
	switch {
	case p.Stats.Matches >= 150:
		experience = "a seasoned campaigner with a proven record"
	case p.Stats.Matches >= 50:
		experience = "an established name with solid experience"
	}

	var skill string
	switch p.Role {
	case engine.RoleBatter:
		skill = fmt.Sprintf("%d runs at a strike rate of %.1f", p.Stats.Runs, p.Stats.StrikeRate)
	case engine.RoleBowler:
		skill = fmt.Sprintf("%d wickets at an economy of %.2f", p.Stats.Wickets, p.Stats.Economy)
	case engine.RoleWicketKeeper:
		skill = fmt.Sprintf("%d runs with the gloves as a bonus", p.Stats.Runs)
	case engine.RoleAllRounder:
		skill = fmt.Sprintf("%d runs and %d wickets across formats", p.Stats.Runs, p.Stats.Wickets)
	default:
		skill = fmt.Sprintf("%d matches of top-flight cricket", p.Stats.Matches)
	}

	origin := "A domestic stalwart"
	if p.IsOverseas {
		origin = "An overseas signing"
	}

	return fmt.Sprintf("%s, %s. %d matches, %s. Expect bidding interest from squads short in this role.",
		origin, experience, p.Stats.Matches, skill), nil
}
