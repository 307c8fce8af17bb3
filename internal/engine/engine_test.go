package engine

import (
	"errors"
	"testing"
)

func testRules() Rules {
	return Rules{MaxOverseas: 8, MaxSquadSize: 25, MinBidIncrement: 0}
}

func testState() State {
	teams := []Team{
		{ID: "ta", Name: "Team A", ShortName: "TA", PurseRemaining: 100_000_000, Players: []string{}},
		{ID: "tb", Name: "Team B", ShortName: "TB", PurseRemaining: 100_000_000, Players: []string{}},
	}
	players := []Player{
		{ID: "p2", Name: "Uncapped Quick", Role: RoleBowler, IsOverseas: true, BasePrice: 1_000_000, Set: SetUncapped, Status: StatusUpcoming},
		{ID: "p1", Name: "Marquee Bat", Role: RoleBatter, BasePrice: 2_000_000, Set: SetMarquee, Status: StatusUpcoming, Stats: Stats{Matches: 50}},
	}
	return NewState(teams, players, testRules())
}

func started(t *testing.T) State {
	t.Helper()
	_, s, err := Apply(testState(), Command{Type: CmdStartAuction})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return s
}

func mustApply(t *testing.T, s State, cmd Command) State {
	t.Helper()
	_, ns, err := Apply(s, cmd)
	if err != nil {
		t.Fatalf("apply %s: %v", cmd.Type, err)
	}
	return ns
}

func containsEvent(events []Event, et EventType) bool {
	for _, e := range events {
		if e.Type == et {
			return true
		}
	}
	return false
}

func onAuctionCount(s State) int {
	n := 0
	for _, p := range s.Players {
		if p.Status == StatusOnAuction {
			n++
		}
	}
	return n
}

func TestStartAuction_PresentsFirstPlayerByCanonicalOrder(t *testing.T) {
	events, s, err := Apply(testState(), Command{Type: CmdStartAuction})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Phase != PhaseAuction {
		t.Fatalf("want phase AUCTION, got %v", s.Phase)
	}
	// p1 is marquee, p2 uncapped; canonical order puts p1 first even
	// though p2 came first in the input slice.
	if s.CurrentPlayerID != "p1" {
		t.Fatalf("want current player p1, got %q", s.CurrentPlayerID)
	}
	if s.TimerSeconds != InitialTimerSeconds {
		t.Fatalf("want timer %d, got %d", InitialTimerSeconds, s.TimerSeconds)
	}
	if s.Paused {
		t.Fatalf("auction should be unpaused after start")
	}
	if !containsEvent(events, EvtAuctionStarted) || !containsEvent(events, EvtPlayerPresented) {
		t.Fatalf("missing start events: %+v", events)
	}
	if onAuctionCount(s) != 1 {
		t.Fatalf("want exactly one ON_AUCTION player, got %d", onAuctionCount(s))
	}
}

func TestStartAuction_TwiceRejected(t *testing.T) {
	s := started(t)
	_, _, err := Apply(s, Command{Type: CmdStartAuction})
	if !errors.Is(err, ErrAuctionRunning) {
		t.Fatalf("want ErrAuctionRunning, got %v", err)
	}
}

func TestStartAuction_EmptyRosterGoesToSummary(t *testing.T) {
	s := NewState([]Team{{ID: "ta"}}, []Player{}, testRules())
	events, ns, err := Apply(s, Command{Type: CmdStartAuction})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ns.Phase != PhaseSummary {
		t.Fatalf("want SUMMARY, got %v", ns.Phase)
	}
	if !containsEvent(events, EvtAuctionCompleted) {
		t.Fatalf("expected EvtAuctionCompleted")
	}
}

func TestPlaceBid_OpeningBidIsBasePrice(t *testing.T) {
	s := started(t)
	events, ns, err := Apply(s, Command{Type: CmdPlaceBid, TeamID: "ta"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ns.CurrentBid == nil || ns.CurrentBid.Amount != 2_000_000 {
		t.Fatalf("want opening bid at base price 2000000, got %+v", ns.CurrentBid)
	}
	if ns.TimerSeconds != BidTimerSeconds {
		t.Fatalf("want timer reset to %d, got %d", BidTimerSeconds, ns.TimerSeconds)
	}
	if len(ns.History) != 1 {
		t.Fatalf("want 1 bid in history, got %d", len(ns.History))
	}
	if !containsEvent(events, EvtBidPlaced) {
		t.Fatalf("expected EvtBidPlaced")
	}
	// Purse is only debited at settlement, not on bid.
	if ns.Team("ta").PurseRemaining != 100_000_000 {
		t.Fatalf("purse must not move on bid, got %d", ns.Team("ta").PurseRemaining)
	}
}

func TestPlaceBid_OutbidPaysTierIncrement(t *testing.T) {
	s := started(t)
	s = mustApply(t, s, Command{Type: CmdPlaceBid, TeamID: "ta"})
	s = mustApply(t, s, Command{Type: CmdPlaceBid, TeamID: "tb"})
	// 2,000,000 is in the lowest band, step 500,000.
	if s.CurrentBid.Amount != 2_500_000 {
		t.Fatalf("want 2500000, got %d", s.CurrentBid.Amount)
	}
	if s.CurrentBid.TeamID != "tb" {
		t.Fatalf("want leader tb, got %s", s.CurrentBid.TeamID)
	}
}

func TestPlaceBid_MinIncrementOverridesTier(t *testing.T) {
	s := started(t)
	s.Rules.MinBidIncrement = 2_000_000
	s = mustApply(t, s, Command{Type: CmdPlaceBid, TeamID: "ta"})
	s = mustApply(t, s, Command{Type: CmdPlaceBid, TeamID: "tb"})
	if s.CurrentBid.Amount != 4_000_000 {
		t.Fatalf("want 4000000 with min increment, got %d", s.CurrentBid.Amount)
	}
}

func TestPlaceBid_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*State)
		teamID  string
		wantErr error
	}{
		{
			name:    "rejected while paused",
			mutate:  func(s *State) { s.Paused = true },
			teamID:  "ta",
			wantErr: ErrAuctionPaused,
		},
		{
			name:    "unknown team",
			mutate:  func(s *State) {},
			teamID:  "nope",
			wantErr: ErrUnknownTeam,
		},
		{
			name:    "squad at cap",
			mutate:  func(s *State) { s.Team("ta").SquadCount = s.Rules.MaxSquadSize },
			teamID:  "ta",
			wantErr: ErrSquadFull,
		},
		{
			name: "overseas slots exhausted",
			mutate: func(s *State) {
				s.Player("p1").IsOverseas = true
				s.Team("ta").OverseasCount = s.Rules.MaxOverseas
			},
			teamID:  "ta",
			wantErr: ErrOverseasFull,
		},
		{
			name:    "purse below bid",
			mutate:  func(s *State) { s.Team("ta").PurseRemaining = 1_999_999 },
			teamID:  "ta",
			wantErr: ErrInsufficientPurse,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := started(t)
			tc.mutate(&s)
			_, ns, err := Apply(s, Command{Type: CmdPlaceBid, TeamID: tc.teamID})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
			if ns.CurrentBid != nil || len(ns.History) != 0 {
				t.Fatalf("rejected bid must not mutate state")
			}
		})
	}
}

func TestPlaceBid_NoPlayerInLobbyPhase(t *testing.T) {
	_, _, err := Apply(testState(), Command{Type: CmdPlaceBid, TeamID: "ta"})
	if !errors.Is(err, ErrNotAuctionPhase) {
		t.Fatalf("want ErrNotAuctionPhase, got %v", err)
	}
}

func TestBidSequence_StrictlyIncreasing(t *testing.T) {
	s := started(t)
	teams := []string{"ta", "tb"}
	var prev int64
	for i := 0; i < 12; i++ {
		s = mustApply(t, s, Command{Type: CmdPlaceBid, TeamID: teams[i%2]})
		amount := s.CurrentBid.Amount
		if i > 0 {
			inc := amount - prev
			want := StandardIncrement(prev)
			if s.Rules.MinBidIncrement > want {
				want = s.Rules.MinBidIncrement
			}
			if inc < want {
				t.Fatalf("bid %d: increment %d below required %d", i, inc, want)
			}
			if amount <= prev {
				t.Fatalf("bid %d: amounts must be strictly increasing", i)
			}
		}
		prev = amount
	}
}

func TestExpiry_SettlesSaleAtomically(t *testing.T) {
	s := started(t)
	s = mustApply(t, s, Command{Type: CmdPlaceBid, TeamID: "ta"})
	events, ns, err := Apply(s, Command{Type: CmdTimerExpired})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	p := ns.Player("p1")
	if p.Status != StatusSold || p.SoldTo != "ta" || p.SoldPrice != 2_000_000 {
		t.Fatalf("bad settlement: %+v", p)
	}
	team := ns.Team("ta")
	if team.PurseRemaining != 98_000_000 {
		t.Fatalf("want purse 98000000, got %d", team.PurseRemaining)
	}
	if team.SquadCount != 1 || len(team.Players) != 1 || team.Players[0] != "p1" {
		t.Fatalf("squad not updated: %+v", team)
	}
	if team.OverseasCount != 0 {
		t.Fatalf("domestic player must not bump overseas count")
	}
	if !ns.Paused {
		t.Fatalf("auction must pause after settlement")
	}
	if !containsEvent(events, EvtPlayerSold) {
		t.Fatalf("expected EvtPlayerSold")
	}
}

func TestExpiry_OverseasCounterBumped(t *testing.T) {
	s := started(t)
	s = mustApply(t, s, Command{Type: CmdTimerExpired}) // p1 unsold
	s = mustApply(t, s, Command{Type: CmdNextPlayer})   // p2, overseas
	s = mustApply(t, s, Command{Type: CmdPlaceBid, TeamID: "tb"})
	s = mustApply(t, s, Command{Type: CmdTimerExpired})
	if s.Team("tb").OverseasCount != 1 {
		t.Fatalf("want overseas count 1, got %d", s.Team("tb").OverseasCount)
	}
}

func TestExpiry_NoBidsMeansUnsold(t *testing.T) {
	s := started(t)
	events, ns, err := Apply(s, Command{Type: CmdTimerExpired})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ns.Player("p1").Status != StatusUnsold {
		t.Fatalf("want UNSOLD, got %v", ns.Player("p1").Status)
	}
	for _, team := range ns.Teams {
		if team.PurseRemaining != 100_000_000 || team.SquadCount != 0 {
			t.Fatalf("no team may be mutated on an unsold player: %+v", team)
		}
	}
	if !containsEvent(events, EvtPlayerUnsold) {
		t.Fatalf("expected EvtPlayerUnsold")
	}
}

func TestExpiry_Idempotent(t *testing.T) {
	s := started(t)
	s = mustApply(t, s, Command{Type: CmdPlaceBid, TeamID: "ta"})
	s = mustApply(t, s, Command{Type: CmdTimerExpired})

	_, again, err := Apply(s, Command{Type: CmdTimerExpired})
	if !errors.Is(err, ErrNoPlayerOnAuction) {
		t.Fatalf("second expiry must no-op, got %v", err)
	}
	if again.Team("ta").PurseRemaining != 98_000_000 {
		t.Fatalf("double settlement debited the purse twice")
	}
	if len(again.History) != 1 {
		t.Fatalf("double settlement touched history")
	}
}

func TestSkip_ForcesUnsoldWithoutConsumingBid(t *testing.T) {
	s := started(t)
	s = mustApply(t, s, Command{Type: CmdPlaceBid, TeamID: "ta"})
	s = mustApply(t, s, Command{Type: CmdSkipPlayer})
	if s.Player("p1").Status != StatusUnsold {
		t.Fatalf("want UNSOLD after skip")
	}
	if s.CurrentBid != nil {
		t.Fatalf("skip must clear the leading bid")
	}
	if s.Team("ta").PurseRemaining != 100_000_000 {
		t.Fatalf("skip must not settle the pending bid")
	}
	if !s.Paused {
		t.Fatalf("skip must pause")
	}
}

func TestNextPlayer_RejectedWhileUnsettled(t *testing.T) {
	s := started(t)
	_, _, err := Apply(s, Command{Type: CmdNextPlayer})
	if !errors.Is(err, ErrPlayerStillOnAuction) {
		t.Fatalf("want ErrPlayerStillOnAuction, got %v", err)
	}
}

func TestNextPlayer_AdvancesThenCompletes(t *testing.T) {
	s := started(t)
	s = mustApply(t, s, Command{Type: CmdTimerExpired})
	s = mustApply(t, s, Command{Type: CmdNextPlayer})
	if s.CurrentPlayerID != "p2" {
		t.Fatalf("want p2 on the block, got %q", s.CurrentPlayerID)
	}
	if s.TimerSeconds != InitialTimerSeconds || s.Paused {
		t.Fatalf("new player must get a fresh unpaused countdown")
	}
	if onAuctionCount(s) != 1 {
		t.Fatalf("want exactly one ON_AUCTION player")
	}

	s = mustApply(t, s, Command{Type: CmdTimerExpired})
	events, s, err := Apply(s, Command{Type: CmdNextPlayer})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Phase != PhaseSummary {
		t.Fatalf("want SUMMARY once the pool is exhausted, got %v", s.Phase)
	}
	if !containsEvent(events, EvtAuctionCompleted) {
		t.Fatalf("expected EvtAuctionCompleted")
	}
	if onAuctionCount(s) != 0 {
		t.Fatalf("no player may stay ON_AUCTION in SUMMARY")
	}
}

func TestPauseResume(t *testing.T) {
	s := started(t)
	s = mustApply(t, s, Command{Type: CmdPauseAuction})
	if !s.Paused {
		t.Fatalf("want paused")
	}
	_, _, err := Apply(s, Command{Type: CmdPlaceBid, TeamID: "ta"})
	if !errors.Is(err, ErrAuctionPaused) {
		t.Fatalf("bids must be rejected while paused, got %v", err)
	}
	s = mustApply(t, s, Command{Type: CmdResumeAuction})
	if s.Paused {
		t.Fatalf("want unpaused after resume")
	}
}

func TestSetPurses_LobbyOnly(t *testing.T) {
	s := testState()
	s = mustApply(t, s, Command{
		Type:         CmdSetPurses,
		Purses:       map[string]int64{"ta": 550_000_000},
		DefaultPurse: 1_200_000_000,
	})
	if s.Team("ta").PurseRemaining != 550_000_000 {
		t.Fatalf("override not applied")
	}
	if s.Team("tb").PurseRemaining != 1_200_000_000 {
		t.Fatalf("fallback not applied")
	}

	running := started(t)
	_, _, err := Apply(running, Command{Type: CmdSetPurses, DefaultPurse: 1})
	if !errors.Is(err, ErrAuctionRunning) {
		t.Fatalf("purse changes mid-auction must be rejected, got %v", err)
	}
}

func TestSetupCustom(t *testing.T) {
	rules := Rules{MaxOverseas: 4, MaxSquadSize: 18, MinBidIncrement: 100_000}
	teams := []Team{{ID: "x1", Players: []string{}}}
	players := []Player{
		{ID: "c2", Set: "MYSTERY_SET", Status: StatusUpcoming},
		{ID: "c1", Set: SetMarquee, Status: StatusUpcoming},
	}

	s := mustApply(t, testState(), Command{Type: CmdSetupCustom, Teams: teams, Players: players, Rules: &rules})
	if s.Phase != PhaseLobby {
		t.Fatalf("custom setup must leave the room in LOBBY")
	}
	if s.Rules != rules {
		t.Fatalf("rules not installed: %+v", s.Rules)
	}
	// Known sets sort before unknown ones.
	if s.Players[0].ID != "c1" || s.Players[1].ID != "c2" {
		t.Fatalf("custom roster not canonically ordered: %+v", s.Players)
	}

	running := started(t)
	_, _, err := Apply(running, Command{Type: CmdSetupCustom, Teams: teams, Players: players, Rules: &rules})
	if !errors.Is(err, ErrAuctionRunning) {
		t.Fatalf("custom setup mid-auction must be rejected, got %v", err)
	}

	_, _, err = Apply(testState(), Command{Type: CmdSetupCustom, Teams: teams, Players: players, Rules: &Rules{MaxSquadSize: 0}})
	if !errors.Is(err, ErrInvalidSetup) {
		t.Fatalf("want ErrInvalidSetup, got %v", err)
	}
}

func TestCacheAnalysis_FirstResultWins(t *testing.T) {
	s := started(t)
	events, s, err := Apply(s, Command{Type: CmdCacheAnalysis, PlayerID: "p1", Analysis: "solid top-order option"})
	if err != nil {
		t.Fatalf("cache analysis: %v", err)
	}
	if s.Player("p1").Analysis != "solid top-order option" {
		t.Fatalf("analysis not cached")
	}
	if !containsEvent(events, EvtAnalysisCached) {
		t.Fatalf("a fresh write must announce itself")
	}
	events, s, err = Apply(s, Command{Type: CmdCacheAnalysis, PlayerID: "p1", Analysis: "other text"})
	if err != nil {
		t.Fatalf("duplicate cache analysis: %v", err)
	}
	if s.Player("p1").Analysis != "solid top-order option" {
		t.Fatalf("cached analysis must not be overwritten")
	}
	if len(events) != 0 {
		t.Fatalf("a dropped duplicate must produce no events, got %v", events)
	}
	_, _, err = Apply(s, Command{Type: CmdCacheAnalysis, PlayerID: "ghost", Analysis: "x"})
	if !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("want ErrUnknownPlayer, got %v", err)
	}
}
