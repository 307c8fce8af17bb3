package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAuctionRunning = errors.New("auction already running")
var ErrNotAuctionPhase = errors.New("auction is not in progress")
var ErrNoPlayerOnAuction = errors.New("no player on auction")
var ErrPlayerStillOnAuction = errors.New("current player not settled")
var ErrAuctionPaused = errors.New("auction is paused")
var ErrSquadFull = errors.New("squad is at the size limit")
var ErrOverseasFull = errors.New("overseas slots exhausted")
var ErrInsufficientPurse = errors.New("purse cannot cover the bid")
var ErrUnknownTeam = errors.New("unknown team")
var ErrUnknownPlayer = errors.New("unknown player")
var ErrInvalidSetup = errors.New("invalid auction setup")
var ErrUnsupportedCommand = errors.New("unsupported command")

type CommandType string

const (
	CmdStartAuction  CommandType = "StartAuction"
	CmdPlaceBid      CommandType = "PlaceBid"
	CmdNextPlayer    CommandType = "NextPlayer"
	CmdSkipPlayer    CommandType = "SkipPlayer"
	CmdPauseAuction  CommandType = "PauseAuction"
	CmdResumeAuction CommandType = "ResumeAuction"
	CmdTimerExpired  CommandType = "TimerExpired"
	CmdSetPurses     CommandType = "SetPurses"
	CmdSetupCustom   CommandType = "SetupCustom"
	CmdCacheAnalysis CommandType = "CacheAnalysis"
)

type Command struct {
	Type     CommandType
	TeamID   string
	PlayerID string
	Analysis string

	// SetPurses: per-team override with a fallback for teams not listed.
	Purses       map[string]int64
	DefaultPurse int64

	// SetupCustom payload.
	Teams   []Team
	Players []Player
	Rules   *Rules
}

type EventType string

const (
	EvtAuctionStarted   EventType = "AuctionStarted"
	EvtPlayerPresented  EventType = "PlayerPresented"
	EvtBidPlaced        EventType = "BidPlaced"
	EvtPlayerSold       EventType = "PlayerSold"
	EvtPlayerUnsold     EventType = "PlayerUnsold"
	EvtAuctionPaused    EventType = "AuctionPaused"
	EvtAuctionResumed   EventType = "AuctionResumed"
	EvtAuctionCompleted EventType = "AuctionCompleted"
	EvtTimerReset       EventType = "TimerReset"
	EvtRosterInstalled  EventType = "RosterInstalled"
	EvtAnalysisCached   EventType = "AnalysisCached"
)

type Event struct {
	Type     EventType
	PlayerID string
	TeamID   string
	Amount   int64
	Seconds  int
	Bid      *Bid
}

// Apply runs one command against the state and returns the events it
// produced plus the successor state. On error the input state is
// returned unchanged; callers that want the silent-rejection contract
// simply drop the error without broadcasting.
func Apply(s State, cmd Command) ([]Event, State, error) {
	switch cmd.Type {
	case CmdStartAuction:
		return applyStart(s)
	case CmdPlaceBid:
		return applyBid(s, cmd.TeamID)
	case CmdNextPlayer:
		return applyNextPlayer(s)
	case CmdSkipPlayer:
		return applySkip(s)
	case CmdPauseAuction:
		return applyPause(s)
	case CmdResumeAuction:
		return applyResume(s)
	case CmdTimerExpired:
		return applyExpiry(s)
	case CmdSetPurses:
		return applySetPurses(s, cmd)
	case CmdSetupCustom:
		return applySetup(s, cmd)
	case CmdCacheAnalysis:
		return applyCacheAnalysis(s, cmd)
	default:
		return nil, s, ErrUnsupportedCommand
	}
}

// present puts a player on the block: ON_AUCTION status, fresh long
// countdown, no leading bid, unpaused.
func present(ns *State, playerID string) []Event {
	p := ns.Player(playerID)
	p.Status = StatusOnAuction
	ns.CurrentPlayerID = playerID
	ns.CurrentBid = nil
	ns.TimerSeconds = InitialTimerSeconds
	ns.Paused = false
	return []Event{
		{Type: EvtPlayerPresented, PlayerID: playerID},
		{Type: EvtTimerReset, Seconds: InitialTimerSeconds},
	}
}

func applyStart(s State) ([]Event, State, error) {
	if s.Phase != PhaseLobby {
		return nil, s, ErrAuctionRunning
	}

	ns := s.clone()
	ns.Phase = PhaseAuction
	events := []Event{{Type: EvtAuctionStarted}}

	first := ns.nextUpcoming()
	if first == nil {
		ns.Phase = PhaseSummary
		events = append(events, Event{Type: EvtAuctionCompleted})
		return events, ns, nil
	}
	events = append(events, present(&ns, first.ID)...)
	return events, ns, nil
}

func applyBid(s State, teamID string) ([]Event, State, error) {
	if s.Phase != PhaseAuction {
		return nil, s, ErrNotAuctionPhase
	}
	if s.Paused {
		return nil, s, ErrAuctionPaused
	}
	player := s.CurrentPlayer()
	if player == nil || player.Status != StatusOnAuction {
		return nil, s, ErrNoPlayerOnAuction
	}
	team := s.Team(teamID)
	if team == nil {
		return nil, s, ErrUnknownTeam
	}
	if team.SquadCount >= s.Rules.MaxSquadSize {
		return nil, s, ErrSquadFull
	}
	if player.IsOverseas && team.OverseasCount >= s.Rules.MaxOverseas {
		return nil, s, ErrOverseasFull
	}

	// The opening bid is at base price; only outbids pay the increment.
	amount := player.BasePrice
	if s.CurrentBid != nil {
		amount = NextBidAmount(s.CurrentBid.Amount, s.Rules)
	}
	if team.PurseRemaining < amount {
		return nil, s, ErrInsufficientPurse
	}

	bid := Bid{
		ID:       uuid.NewString(),
		TeamID:   teamID,
		PlayerID: player.ID,
		Amount:   amount,
		PlacedAt: time.Now().UTC(),
	}

	ns := s.clone()
	ns.CurrentBid = &bid
	ns.History = append([]Bid{bid}, ns.History...)
	ns.TimerSeconds = BidTimerSeconds

	return []Event{
		{Type: EvtBidPlaced, PlayerID: bid.PlayerID, TeamID: teamID, Amount: amount, Bid: &bid},
		{Type: EvtTimerReset, Seconds: BidTimerSeconds},
	}, ns, nil
}

// applyExpiry is the settlement step. It fires at most once per player:
// a second invocation finds the player no longer ON_AUCTION and no-ops
// with an error instead of double-settling.
func applyExpiry(s State) ([]Event, State, error) {
	if s.Phase != PhaseAuction {
		return nil, s, ErrNotAuctionPhase
	}
	player := s.CurrentPlayer()
	if player == nil || player.Status != StatusOnAuction {
		return nil, s, ErrNoPlayerOnAuction
	}

	ns := s.clone()
	p := ns.Player(player.ID)
	now := time.Now().UTC()

	var events []Event
	if ns.CurrentBid != nil {
		bid := ns.CurrentBid
		team := ns.Team(bid.TeamID)
		p.Status = StatusSold
		p.SoldPrice = bid.Amount
		p.SoldTo = bid.TeamID
		p.SoldAt = now

		team.PurseRemaining -= bid.Amount
		team.Players = append(team.Players, p.ID)
		team.SquadCount++
		if p.IsOverseas {
			team.OverseasCount++
		}
		events = append(events, Event{Type: EvtPlayerSold, PlayerID: p.ID, TeamID: bid.TeamID, Amount: bid.Amount})
	} else {
		p.Status = StatusUnsold
		p.SoldAt = now
		events = append(events, Event{Type: EvtPlayerUnsold, PlayerID: p.ID})
	}

	ns.TimerSeconds = 0
	ns.Paused = true
	events = append(events, Event{Type: EvtAuctionPaused})
	return events, ns, nil
}

func applyNextPlayer(s State) ([]Event, State, error) {
	if s.Phase != PhaseAuction {
		return nil, s, ErrNotAuctionPhase
	}
	// Advancing is only legal once the current player has been settled
	// (expiry or skip); it never performs settlement itself.
	if p := s.CurrentPlayer(); p != nil && p.Status == StatusOnAuction {
		return nil, s, ErrPlayerStillOnAuction
	}

	ns := s.clone()
	next := ns.nextUpcoming()
	if next == nil {
		ns.Phase = PhaseSummary
		ns.CurrentPlayerID = ""
		ns.CurrentBid = nil
		ns.Paused = true
		return []Event{{Type: EvtAuctionCompleted}}, ns, nil
	}
	return present(&ns, next.ID), ns, nil
}

func applySkip(s State) ([]Event, State, error) {
	if s.Phase != PhaseAuction {
		return nil, s, ErrNotAuctionPhase
	}
	player := s.CurrentPlayer()
	if player == nil || player.Status != StatusOnAuction {
		return nil, s, ErrNoPlayerOnAuction
	}

	ns := s.clone()
	p := ns.Player(player.ID)
	p.Status = StatusUnsold
	p.SoldAt = time.Now().UTC()
	ns.CurrentBid = nil
	ns.Paused = true
	return []Event{
		{Type: EvtPlayerUnsold, PlayerID: p.ID},
		{Type: EvtAuctionPaused},
	}, ns, nil
}

func applyPause(s State) ([]Event, State, error) {
	if s.Phase != PhaseAuction {
		return nil, s, ErrNotAuctionPhase
	}
	ns := s.clone()
	ns.Paused = true
	return []Event{{Type: EvtAuctionPaused}}, ns, nil
}

func applyResume(s State) ([]Event, State, error) {
	if s.Phase != PhaseAuction {
		return nil, s, ErrNotAuctionPhase
	}
	player := s.CurrentPlayer()
	if player == nil || player.Status != StatusOnAuction {
		return nil, s, ErrNoPlayerOnAuction
	}
	ns := s.clone()
	ns.Paused = false
	return []Event{{Type: EvtAuctionResumed}}, ns, nil
}

// applySetPurses re-derives every team's starting purse from a mode
// table, falling back to the default for teams with no override. Only
// legal before the auction starts.
func applySetPurses(s State, cmd Command) ([]Event, State, error) {
	if s.Phase != PhaseLobby {
		return nil, s, ErrAuctionRunning
	}
	ns := s.clone()
	for i := range ns.Teams {
		purse := cmd.DefaultPurse
		if p, ok := cmd.Purses[ns.Teams[i].ID]; ok {
			purse = p
		}
		ns.Teams[i].PurseRemaining = purse
	}
	return []Event{{Type: EvtRosterInstalled}}, ns, nil
}

func applySetup(s State, cmd Command) ([]Event, State, error) {
	if s.Phase != PhaseLobby {
		return nil, s, ErrAuctionRunning
	}
	if len(cmd.Teams) == 0 || len(cmd.Players) == 0 || cmd.Rules == nil {
		return nil, s, ErrInvalidSetup
	}
	if cmd.Rules.MaxSquadSize <= 0 || cmd.Rules.MaxOverseas < 0 || cmd.Rules.MinBidIncrement < 0 {
		return nil, s, ErrInvalidSetup
	}

	ns := NewState(cmd.Teams, cmd.Players, *cmd.Rules)
	return []Event{{Type: EvtRosterInstalled}}, ns, nil
}

// applyCacheAnalysis stores the analysis text fetched for a player. The
// first result wins; a dropped duplicate produces no events, so callers
// can tell a real write from a no-op.
func applyCacheAnalysis(s State, cmd Command) ([]Event, State, error) {
	player := s.Player(cmd.PlayerID)
	if player == nil {
		return nil, s, ErrUnknownPlayer
	}
	if player.Analysis != "" || cmd.Analysis == "" {
		return nil, s, nil
	}
	ns := s.clone()
	ns.Player(cmd.PlayerID).Analysis = cmd.Analysis
	return []Event{{Type: EvtAnalysisCached, PlayerID: cmd.PlayerID}}, ns, nil
}
