// Package strategy decides, for each autonomous team, whether and when
// to bid on the player currently on the block. The heuristic is
// intentionally approximate and stochastic; the random source is
// injected so tests can pin outcomes.
package strategy

import (
	"math/rand"
	"time"

	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/engine"
)

type Config struct {
	// HardCap is the absolute ceiling a bot will ever bid to.
	HardCap int64
	// ReservePerSlot is the purse a bot keeps back for every squad slot
	// it still has to fill, so it never bids itself out of a full squad.
	ReservePerSlot int64
	// ReferencePurse scales the purse-power boost: richer teams bid a
	// little more aggressively.
	ReferencePurse int64

	// Role minimums below which a shortage boosts the valuation.
	MinBatters       int
	MinBowlers       int
	MinWicketKeepers int
	MinAllRounders   int
}

func DefaultConfig() Config {
	return Config{
		HardCap:          55_000_000,
		ReservePerSlot:   2_000_000,
		ReferencePurse:   200_000_000,
		MinBatters:       5,
		MinBowlers:       5,
		MinWicketKeepers: 2,
		MinAllRounders:   3,
	}
}

type Engine struct {
	cfg Config
	rng *rand.Rand
}

func New(cfg Config, rng *rand.Rand) *Engine {
	return &Engine{cfg: cfg, rng: rng}
}

// EvaluateBid reports whether the team wants the player at the price the
// next bid would cost. The decision multiplies a stats-derived valuation
// by need, purse power and a random sentiment factor, so two identical
// calls may disagree.
func (e *Engine) EvaluateBid(s *engine.State, team engine.Team, player engine.Player) bool {
	if team.SquadCount >= s.Rules.MaxSquadSize {
		return false
	}
	if player.IsOverseas && team.OverseasCount >= s.Rules.MaxOverseas {
		return false
	}

	nextBid := s.NextAmount()
	if nextBid > e.cfg.HardCap {
		return false
	}
	if team.PurseRemaining < nextBid {
		return false
	}

	// Keep enough back to fill the remaining slots.
	slotsRemaining := int64(s.Rules.MaxSquadSize - team.SquadCount)
	if team.PurseRemaining-nextBid < slotsRemaining*e.cfg.ReservePerSlot {
		return false
	}

	// Experience boost with diminishing returns past 100 matches.
	matches := player.Stats.Matches
	if matches > 100 {
		matches = 100
	}
	valuation := float64(player.BasePrice)
	valuation += float64(player.BasePrice) * (float64(matches) / 50) * 0.5

	needFactor := e.needFactor(s, team, player.Role)
	purseBoost := 1 + (float64(team.PurseRemaining)/float64(e.cfg.ReferencePurse))*0.1
	sentiment := 0.9 + e.rng.Float64()*0.2

	return float64(nextBid) < valuation*needFactor*purseBoost*sentiment
}

// needFactor weighs how badly the squad needs the player's role.
// Wicketkeeper shortages weigh highest, then all-rounders, then
// batters and bowlers equally.
func (e *Engine) needFactor(s *engine.State, team engine.Team, role engine.Role) float64 {
	counts := map[engine.Role]int{}
	for _, id := range team.Players {
		if p := s.Player(id); p != nil {
			counts[p.Role]++
		}
	}

	factor := 1.0
	switch role {
	case engine.RoleBatter:
		if counts[engine.RoleBatter] < e.cfg.MinBatters {
			factor += 0.5
		}
	case engine.RoleBowler:
		if counts[engine.RoleBowler] < e.cfg.MinBowlers {
			factor += 0.5
		}
	case engine.RoleWicketKeeper:
		if counts[engine.RoleWicketKeeper] < e.cfg.MinWicketKeepers {
			factor += 1.0
		}
	case engine.RoleAllRounder:
		if counts[engine.RoleAllRounder] < e.cfg.MinAllRounders {
			factor += 0.8
		}
	}
	return factor
}

// PickBidder runs one evaluation cycle: every team except the current
// leader is a candidate, human-controlled teams only join when autopilot
// is on, and exactly one interested team is chosen uniformly at random.
// This resolves simultaneous independent decisions to a single bid per
// cycle rather than letting every interested team bid at once.
func (e *Engine) PickBidder(s *engine.State, humanTeams map[string]bool, autopilot bool) (string, bool) {
	player := s.CurrentPlayer()
	if player == nil || player.Status != engine.StatusOnAuction {
		return "", false
	}

	var interested []string
	for _, team := range s.Teams {
		if s.CurrentBid != nil && s.CurrentBid.TeamID == team.ID {
			continue
		}
		if humanTeams[team.ID] && !autopilot {
			continue
		}
		if e.EvaluateBid(s, team, *player) {
			interested = append(interested, team.ID)
		}
	}
	if len(interested) == 0 {
		return "", false
	}
	return interested[e.rng.Intn(len(interested))], true
}

// ReactionDelay draws how long the bots "think" before the next cycle.
// With the countdown critically low they react faster.
func (e *Engine) ReactionDelay(timerSeconds int) time.Duration {
	if timerSeconds < 5 {
		return time.Duration(500+e.rng.Float64()*1000) * time.Millisecond
	}
	return time.Duration(1000+e.rng.Float64()*2000) * time.Millisecond
}
