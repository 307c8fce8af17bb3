package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/engine"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/hub"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/ws"
)

func SetupRoutes(h *hub.Hub, newState func() engine.State) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Post("/rooms", CreateRoom(h, newState))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h))
	return r
}
