// Package room runs one auction per goroutine. All state mutation goes
// through a single message inbox, so a countdown expiry and an in-flight
// bid can never interleave partially: whichever message drains first
// wins, the other sees the new state.
package room

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/analysis"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/engine"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/strategy"
)

type Config struct {
	Code     string
	State    engine.State
	Strategy *strategy.Engine
	Analysis analysis.Provider // optional
	Logger   *zap.Logger

	// TickInterval is one countdown "second". Tests shrink it.
	TickInterval time.Duration
	// ReactionDelay overrides the strategy engine's bot pacing in tests.
	ReactionDelay func(timerSeconds int) time.Duration
}

type Room struct {
	inbox   chan Msg
	code    string
	state   engine.State
	version int
	clients map[string]chan Snapshot
	users   []ConnectedUser
	host    string

	autopilot bool
	strat     *strategy.Engine
	analysis  analysis.Provider
	logger    *zap.Logger

	tick     time.Duration
	botDelay func(int) time.Duration

	// Arming a timer bumps its generation; a fire carrying an older
	// generation is stale and gets dropped.
	timerGen uint64
	botGen   uint64

	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, cfg Config) *Room {
	ctx, cancel := context.WithCancel(parent)

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.ReactionDelay == nil && cfg.Strategy != nil {
		cfg.ReactionDelay = cfg.Strategy.ReactionDelay
	}

	r := &Room{
		inbox:    make(chan Msg, 64),
		code:     cfg.Code,
		state:    cfg.State,
		clients:  make(map[string]chan Snapshot),
		strat:    cfg.Strategy,
		analysis: cfg.Analysis,
		logger:   cfg.Logger.With(zap.String("room", cfg.Code)),
		tick:     cfg.TickInterval,
		botDelay: cfg.ReactionDelay,
		ctx:      ctx,
		cancel:   cancel,
	}

	go r.loop()
	return r
}

// Inbox exposes the message channel to the ws layer and tests.
func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.handleJoin(msg)

			case Leave:
				if ch, ok := r.clients[msg.ClientID]; ok {
					close(ch)
					delete(r.clients, msg.ClientID)
				}

			case FromClient:
				r.apply(msg.Cmd)

			case SelectTeam:
				r.setUserTeam(msg.UserName, msg.TeamID)
				r.broadcast()

			case AssignTeam:
				// Only the host assigns teams to others.
				if msg.Actor != r.host {
					break
				}
				r.setUserTeam(msg.UserName, msg.TeamID)
				r.broadcast()

			case ToggleAutopilot:
				r.autopilot = !r.autopilot
				r.broadcast()

			case timerTick:
				r.handleTick(msg)

			case botWake:
				r.handleBotWake(msg)

			case analysisReady:
				r.handleAnalysis(msg)

			case GetState:
				msg.Reply <- View{
					Version:    r.version,
					NumClients: len(r.clients),
					State:      r.state,
					Users:      append([]ConnectedUser(nil), r.users...),
					Host:       r.host,
					Autopilot:  r.autopilot,
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

// apply runs a command through the engine. Errors are silent rejections:
// no state change, no broadcast.
func (r *Room) apply(cmd engine.Command) {
	events, ns, err := engine.Apply(r.state, cmd)
	if err != nil {
		r.logger.Debug("command rejected",
			zap.String("command", string(cmd.Type)),
			zap.Error(err))
		return
	}

	r.state = ns
	r.version++
	r.handleEvents(events)
	r.broadcast()
	r.rearm()
}

func (r *Room) handleEvents(events []engine.Event) {
	for _, ev := range events {
		switch ev.Type {
		case engine.EvtPlayerPresented:
			r.requestAnalysis(ev.PlayerID)
		case engine.EvtBidPlaced:
			r.logger.Info("bid placed",
				zap.String("player", ev.PlayerID),
				zap.String("team", ev.TeamID),
				zap.Int64("amount", ev.Amount))
		case engine.EvtPlayerSold:
			r.logger.Info("player sold",
				zap.String("player", ev.PlayerID),
				zap.String("team", ev.TeamID),
				zap.Int64("amount", ev.Amount))
		case engine.EvtPlayerUnsold:
			r.logger.Info("player unsold", zap.String("player", ev.PlayerID))
		case engine.EvtAuctionCompleted:
			r.logger.Info("auction completed")
		}
	}
}

// rearm cancels and reschedules both timers for the current state.
// Every transition that touches phase, player, pause or leading bid
// funnels through apply, so this is the single place timers restart.
func (r *Room) rearm() {
	r.timerGen++
	r.botGen++
	if !r.running() {
		return
	}
	r.armTick()
	r.armBot()
}

func (r *Room) running() bool {
	p := r.state.CurrentPlayer()
	return r.state.Phase == engine.PhaseAuction &&
		!r.state.Paused &&
		p != nil && p.Status == engine.StatusOnAuction
}

func (r *Room) armTick() {
	gen := r.timerGen
	time.AfterFunc(r.tick, func() {
		select {
		case r.inbox <- timerTick{gen: gen}:
		case <-r.ctx.Done():
		}
	})
}

func (r *Room) armBot() {
	if r.strat == nil {
		return
	}
	gen := r.botGen
	delay := r.botDelay(r.state.TimerSeconds)
	time.AfterFunc(delay, func() {
		select {
		case r.inbox <- botWake{gen: gen}:
		case <-r.ctx.Done():
		}
	})
}

func (r *Room) handleTick(msg timerTick) {
	if msg.gen != r.timerGen || !r.running() {
		return
	}

	r.state.TimerSeconds--
	if r.state.TimerSeconds > 0 {
		r.version++
		r.broadcast()
		r.timerGen++
		r.armTick()
		return
	}

	r.state.TimerSeconds = 0
	r.apply(engine.Command{Type: engine.CmdTimerExpired})
}

// handleBotWake runs one strategy cycle. The cycle reschedules itself
// when nothing changed; a successful bid goes through apply, which
// re-arms everything with fresh generations.
func (r *Room) handleBotWake(msg botWake) {
	if r.strat == nil || msg.gen != r.botGen || !r.running() {
		return
	}

	humans := make(map[string]bool, len(r.users))
	for _, u := range r.users {
		if u.SelectedTeamID != "" {
			humans[u.SelectedTeamID] = true
		}
	}

	teamID, ok := r.strat.PickBidder(&r.state, humans, r.autopilot)
	if !ok {
		r.botGen++
		r.armBot()
		return
	}
	r.apply(engine.Command{Type: engine.CmdPlaceBid, TeamID: teamID})
	// A rejected bid leaves the old generations valid; re-arm the cycle
	// so a transient rejection does not stall the bots.
	if msg.gen == r.botGen {
		r.botGen++
		r.armBot()
	}
}

// requestAnalysis fetches descriptive text for a freshly presented
// player, once. Failures are terminal for that player: no retry, no
// block, the cached field just stays empty.
func (r *Room) requestAnalysis(playerID string) {
	if r.analysis == nil {
		return
	}
	p := r.state.Player(playerID)
	if p == nil || p.Analysis != "" {
		return
	}
	player := *p
	go func() {
		text, err := r.analysis.PlayerAnalysis(r.ctx, player)
		if err != nil {
			r.logger.Debug("analysis lookup failed",
				zap.String("player", player.ID),
				zap.Error(err))
			return
		}
		select {
		case r.inbox <- analysisReady{PlayerID: player.ID, Text: text}:
		case <-r.ctx.Done():
		}
	}()
}

func (r *Room) handleAnalysis(msg analysisReady) {
	events, ns, err := engine.Apply(r.state, engine.Command{
		Type:     engine.CmdCacheAnalysis,
		PlayerID: msg.PlayerID,
		Analysis: msg.Text,
	})
	// A dropped duplicate leaves the state untouched; rebroadcasting an
	// identical snapshot would just churn clients.
	if err != nil || len(events) == 0 {
		return
	}
	r.state = ns
	r.version++
	r.broadcast()
}

func (r *Room) handleJoin(msg Join) {
	r.clients[msg.ClientID] = msg.Outbox

	if msg.UserName != "" {
		found := false
		for _, u := range r.users {
			if u.Name == msg.UserName {
				found = true
				break
			}
		}
		if !found {
			role := RoleSpectator
			if r.host == "" {
				r.host = msg.UserName
				role = RoleAdmin
			}
			r.users = append(r.users, ConnectedUser{Name: msg.UserName, Role: role})
		}
	}

	msg.Outbox <- r.snapshot()
}

func (r *Room) setUserTeam(name, teamID string) {
	if r.state.Team(teamID) == nil {
		return
	}
	for i := range r.users {
		if r.users[i].Name == name {
			r.users[i].SelectedTeamID = teamID
			if r.users[i].Role == RoleSpectator {
				r.users[i].Role = RoleTeam
			}
			return
		}
	}
}

func (r *Room) snapshot() Snapshot {
	return Snapshot{
		Version:   r.version,
		Code:      r.code,
		State:     r.state,
		Users:     append([]ConnectedUser(nil), r.users...),
		Host:      r.host,
		Autopilot: r.autopilot,
	}
}

func (r *Room) broadcast() {
	snap := r.snapshot()
	for id, ch := range r.clients {
		select {
		case ch <- snap:
			// ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(r.clients, id)
		}
	}
}

func (r *Room) shutdown() {
	r.timerGen++
	r.botGen++
	for id, ch := range r.clients {
		close(ch) // Tell client no more snapshots
		delete(r.clients, id)
	}
	r.cancel()
}
