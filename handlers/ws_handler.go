package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/dartsliga/league-system/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The live feed is public read-only data; cross-origin browsers may
	// subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type LiveHandler struct {
	hub    *live.Hub
	logger *slog.Logger
}

func NewLiveHandler(hub *live.Hub, logger *slog.Logger) *LiveHandler {
	return &LiveHandler{hub: hub, logger: logger}
}

// SeasonFeed upgrades the connection and subscribes it to the season's
// result room.
func (h *LiveHandler) SeasonFeed(w http.ResponseWriter, r *http.Request) {
	seasonID, err := urlParamInt(r, "seasonID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := live.NewClient(h.hub, conn, live.SeasonRoom(seasonID))
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
