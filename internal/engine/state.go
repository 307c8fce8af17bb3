package engine

import "time"

type Phase string

const (
	PhaseLobby   Phase = "LOBBY"
	PhaseAuction Phase = "AUCTION"
	PhaseSummary Phase = "SUMMARY"
)

type Role string

const (
	RoleBatter       Role = "BATTER"
	RoleBowler       Role = "BOWLER"
	RoleWicketKeeper Role = "WICKET_KEEPER"
	RoleAllRounder   Role = "ALL_ROUNDER"
)

type PlayerStatus string

const (
	StatusUpcoming  PlayerStatus = "UPCOMING"
	StatusOnAuction PlayerStatus = "ON_AUCTION"
	StatusSold      PlayerStatus = "SOLD"
	StatusUnsold    PlayerStatus = "UNSOLD"
)

// Countdown windows in seconds. Every new leading bid shrinks the
// deadline back to the short window.
const (
	InitialTimerSeconds = 20
	BidTimerSeconds     = 10
)

// Stats is the career record the valuation heuristic feeds on.
type Stats struct {
	Matches    int     `json:"matches"`
	Runs       int     `json:"runs"`
	Wickets    int     `json:"wickets"`
	StrikeRate float64 `json:"strikeRate"`
	Economy    float64 `json:"economy"`
}

type Player struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Role       Role         `json:"role"`
	IsOverseas bool         `json:"isOverseas"`
	BasePrice  int64        `json:"basePrice"`
	Set        string       `json:"set"`
	Stats      Stats        `json:"stats"`
	Status     PlayerStatus `json:"status"`
	SoldPrice  int64        `json:"soldPrice,omitempty"`
	SoldTo     string       `json:"soldTo,omitempty"`
	SoldAt     time.Time    `json:"soldAt,omitempty"`
	Analysis   string       `json:"analysis,omitempty"`
}

type Team struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ShortName      string   `json:"shortName"`
	PurseRemaining int64    `json:"purseRemaining"`
	SquadCount     int      `json:"squadCount"`
	OverseasCount  int      `json:"overseasCount"`
	Players        []string `json:"players"`
}

// Bid is immutable once created.
type Bid struct {
	ID       string    `json:"id"`
	TeamID   string    `json:"teamId"`
	PlayerID string    `json:"playerId"`
	Amount   int64     `json:"amount"`
	PlacedAt time.Time `json:"placedAt"`
}

type Rules struct {
	MaxOverseas     int   `json:"maxOverseas"`
	MaxSquadSize    int   `json:"maxSquadSize"`
	MinBidIncrement int64 `json:"minBidIncrement"`
}

// State is the aggregate root. It is owned by a single room loop;
// everything else reads snapshots or submits commands.
type State struct {
	Phase           Phase    `json:"phase"`
	Teams           []Team   `json:"teams"`
	Players         []Player `json:"players"`
	CurrentPlayerID string   `json:"currentPlayerId,omitempty"`
	CurrentBid      *Bid     `json:"currentBid,omitempty"`
	TimerSeconds    int      `json:"timerSeconds"`
	Paused          bool     `json:"paused"`
	History         []Bid    `json:"history"`
	Rules           Rules    `json:"rules"`
}

// NewState installs a roster as the auction baseline. Players are sorted
// into canonical set order exactly once, here; the UPCOMING scan never
// re-sorts.
func NewState(teams []Team, players []Player, rules Rules) State {
	return State{
		Phase:        PhaseLobby,
		Teams:        cloneTeams(teams),
		Players:      SortPlayersBySet(players),
		TimerSeconds: InitialTimerSeconds,
		Paused:       true,
		History:      []Bid{},
		Rules:        rules,
	}
}

// clone copies the slices that command handlers mutate so Apply never
// writes through a snapshot a client is still reading.
func (s State) clone() State {
	ns := s
	ns.Teams = cloneTeams(s.Teams)
	ns.Players = append([]Player(nil), s.Players...)
	ns.History = append([]Bid(nil), s.History...)
	return ns
}

func cloneTeams(teams []Team) []Team {
	out := append([]Team(nil), teams...)
	for i := range out {
		out[i].Players = append([]string(nil), teams[i].Players...)
	}
	return out
}

// Team returns the team with the given ID, or nil.
func (s *State) Team(id string) *Team {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i]
		}
	}
	return nil
}

// Player returns the player with the given ID, or nil.
func (s *State) Player(id string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// CurrentPlayer returns the player currently on the block, or nil.
func (s *State) CurrentPlayer() *Player {
	if s.CurrentPlayerID == "" {
		return nil
	}
	return s.Player(s.CurrentPlayerID)
}

// CurrentAmount is the leading bid amount, or the current player's base
// price when no bid has been placed yet.
func (s *State) CurrentAmount() int64 {
	if s.CurrentBid != nil {
		return s.CurrentBid.Amount
	}
	if p := s.CurrentPlayer(); p != nil {
		return p.BasePrice
	}
	return 0
}

// NextAmount is what the next accepted bid would cost: the base price if
// nobody has bid, otherwise the leading amount plus the effective
// increment.
func (s *State) NextAmount() int64 {
	if p := s.CurrentPlayer(); p == nil {
		return 0
	} else if s.CurrentBid == nil {
		return p.BasePrice
	}
	return NextBidAmount(s.CurrentBid.Amount, s.Rules)
}

func (s *State) nextUpcoming() *Player {
	for i := range s.Players {
		if s.Players[i].Status == StatusUpcoming {
			return &s.Players[i]
		}
	}
	return nil
}
