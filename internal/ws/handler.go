package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/engine"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/hub"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/room"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/roster"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/types"
)

func Handler(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		name := r.URL.Query().Get("name")

		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
		rm := <-reply
		if rm == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan room.Snapshot, 8)
		clientID := uuid.NewString()

		rm.Inbox() <- room.Join{ClientID: clientID, UserName: name, Outbox: out}
		defer func() { rm.Inbox() <- room.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := types.ServerMessage{Type: "StateSnapshot", Snapshot: &snap}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"Error","error":"bad json"}`))
				continue
			}

			msg, ok := toRoomMsg(cm, name)
			if !ok {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"Error","error":"unknown type"}`))
				continue
			}

			rm.Inbox() <- msg
		}
	}
}

func toRoomMsg(m types.ClientMessage, user string) (room.Msg, bool) {
	switch m.Type {
	case "StartAuction":
		return room.FromClient{Cmd: engine.Command{Type: engine.CmdStartAuction}}, true
	case "PlaceBid":
		return room.FromClient{Cmd: engine.Command{Type: engine.CmdPlaceBid, TeamID: m.TeamID}}, true
	case "NextPlayer":
		return room.FromClient{Cmd: engine.Command{Type: engine.CmdNextPlayer}}, true
	case "SkipPlayer":
		return room.FromClient{Cmd: engine.Command{Type: engine.CmdSkipPlayer}}, true
	case "PauseAuction":
		return room.FromClient{Cmd: engine.Command{Type: engine.CmdPauseAuction}}, true
	case "ResumeAuction":
		return room.FromClient{Cmd: engine.Command{Type: engine.CmdResumeAuction}}, true
	case "SetMode":
		purses, fallback := roster.ModePurses(roster.Mode(m.Mode))
		return room.FromClient{Cmd: engine.Command{
			Type:         engine.CmdSetPurses,
			Purses:       purses,
			DefaultPurse: fallback,
		}}, true
	case "SetupCustom":
		return room.FromClient{Cmd: engine.Command{
			Type:    engine.CmdSetupCustom,
			Teams:   m.Teams,
			Players: m.Players,
			Rules:   m.Rules,
		}}, true
	case "SelectTeam":
		return room.SelectTeam{UserName: user, TeamID: m.TeamID}, true
	case "AssignTeam":
		return room.AssignTeam{Actor: user, UserName: m.UserName, TeamID: m.TeamID}, true
	case "ToggleAutopilot":
		return room.ToggleAutopilot{}, true
	default:
		return nil, false
	}
}
