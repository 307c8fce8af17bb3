package engine

import "sort"

// Auction sets in their canonical order. Custom rosters may carry sets
// that are not listed here; those sort after every known set, keeping
// their relative order.
const (
	SetMarquee       = "MARQUEE"
	SetBatters1      = "BATTERS_1"
	SetAllRounders1  = "ALL_ROUNDERS_1"
	SetWicketKeepers = "WICKETKEEPERS_1"
	SetFastBowlers1  = "FAST_BOWLERS_1"
	SetSpinners1     = "SPINNERS_1"
	SetUncapped      = "UNCAPPED"
)

var SetOrder = []string{
	SetMarquee,
	SetBatters1,
	SetAllRounders1,
	SetWicketKeepers,
	SetFastBowlers1,
	SetSpinners1,
	SetUncapped,
}

func setRank(set string) int {
	for i, s := range SetOrder {
		if s == set {
			return i
		}
	}
	return len(SetOrder)
}

// SortPlayersBySet returns a copy of players ordered by canonical set
// precedence. The sort is stable so identical rosters always produce the
// identical auction sequence.
func SortPlayersBySet(players []Player) []Player {
	out := append([]Player(nil), players...)
	sort.SliceStable(out, func(i, j int) bool {
		return setRank(out[i].Set) < setRank(out[j].Set)
	})
	return out
}
