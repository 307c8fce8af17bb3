package hub

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/analysis"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/engine"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/room"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/strategy"
)

type HubMsg interface{ isHubMsg() }

type CreateRoom struct {
	Code  string
	State engine.State
	Reply chan *room.Room
}

type GetRoom struct {
	Code  string
	Reply chan *room.Room
}

type EnsureRoom struct {
	Code  string
	State engine.State // only used if creation happens
	Reply chan *room.Room
}

type RemoveRoom struct {
	Code string
}

type ShutdownHub struct{}

func (CreateRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (EnsureRoom) isHubMsg()  {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

// Deps is everything a new room needs beyond its initial state.
type Deps struct {
	Logger       *zap.Logger
	Analysis     analysis.Provider
	Strategy     strategy.Config
	TickInterval time.Duration
	// Seed fixes the strategy randomness; 0 means seed from the clock.
	Seed int64
}

type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	deps   Deps
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, deps Deps) *Hub {
	ctx, cancel := context.WithCancel(parent)
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		deps:   deps,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				if rm := h.rooms[msg.Code]; rm != nil {
					msg.Reply <- rm
					break
				}
				msg.Reply <- h.create(msg.Code, msg.State)

			case GetRoom:
				msg.Reply <- h.rooms[msg.Code] // May be nil

			case EnsureRoom:
				if rm := h.rooms[msg.Code]; rm != nil {
					msg.Reply <- rm
					break
				}
				msg.Reply <- h.create(msg.Code, msg.State)

			case RemoveRoom:
				delete(h.rooms, msg.Code)

			case ShutdownHub:
				for _, rm := range h.rooms {
					rm.Inbox() <- room.Shutdown{}
				}
				clear(h.rooms)
				h.cancel()
			}
		}
	}
}

func (h *Hub) create(code string, state engine.State) *room.Room {
	seed := h.deps.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	strat := strategy.New(h.deps.Strategy, rand.New(rand.NewSource(seed)))

	rm := room.New(h.ctx, room.Config{
		Code:         code,
		State:        state,
		Strategy:     strat,
		Analysis:     h.deps.Analysis,
		Logger:       h.deps.Logger,
		TickInterval: h.deps.TickInterval,
	})
	h.rooms[code] = rm
	h.deps.Logger.Info("room created", zap.String("room", code))
	return rm
}
