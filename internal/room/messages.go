package room

import "github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/engine"

type Msg interface{ isRoomMsg() }

// Join registers a client connection and adds the display name to the
// connected-user directory (idempotent by name). The first user to join
// becomes the host.
type Join struct {
	ClientID string
	UserName string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isRoomMsg() {}

type Leave struct{ ClientID string }

func (Leave) isRoomMsg() {}

// FromClient carries an engine command submitted by a connected client.
// Rejected commands are dropped without a broadcast.
type FromClient struct {
	Cmd engine.Command
}

func (FromClient) isRoomMsg() {}

// SelectTeam binds a user to a team and promotes them to controller.
// Last write wins when two users pick the same team.
type SelectTeam struct {
	UserName string
	TeamID   string
}

func (SelectTeam) isRoomMsg() {}

// AssignTeam is the host assigning a team to any connected user.
type AssignTeam struct {
	Actor    string
	UserName string
	TeamID   string
}

func (AssignTeam) isRoomMsg() {}

// ToggleAutopilot lets the strategy engine bid for human teams too.
type ToggleAutopilot struct{}

func (ToggleAutopilot) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

// Internal timer messages. Each carries the generation it was armed
// under; the loop drops fires whose generation has moved on, so a
// cancelled countdown or bot cycle can never mutate state.
type timerTick struct{ gen uint64 }

func (timerTick) isRoomMsg() {}

type botWake struct{ gen uint64 }

func (botWake) isRoomMsg() {}

type analysisReady struct {
	PlayerID string
	Text     string
}

func (analysisReady) isRoomMsg() {}

type UserRole string

const (
	RoleSpectator UserRole = "SPECTATOR"
	RoleTeam      UserRole = "TEAM"
	RoleAdmin     UserRole = "ADMIN"
)

type ConnectedUser struct {
	Name           string   `json:"name"`
	SelectedTeamID string   `json:"selectedTeamId,omitempty"`
	Role           UserRole `json:"role"`
}

type Snapshot struct {
	Version   int             `json:"version"`
	Code      string          `json:"code"`
	State     engine.State    `json:"state"`
	Users     []ConnectedUser `json:"users"`
	Host      string          `json:"host,omitempty"`
	Autopilot bool            `json:"autopilot"`
}

// View is the test-only reflection of room internals.
type View struct {
	Version    int
	NumClients int
	State      engine.State
	Users      []ConnectedUser
	Host       string
	Autopilot  bool
}
