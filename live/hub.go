package live

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/dartsliga/league-system/models"
)

// Message is the wire envelope of the live results feed.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

const MessageTypeResultPosted = "RESULT_POSTED"

// Hub fans submitted match results out to websocket clients grouped into
// per-season rooms.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	rooms map[string]map[*Client]bool
	mu    sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func SeasonRoom(seasonID int) string {
	return fmt.Sprintf("season_%d", seasonID)
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.Room]; ok {
				if _, registered := clients[client]; registered {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.Room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom sends a message to every client of one room. Clients whose
// send buffer is full are skipped rather than blocking the caller.
func (h *Hub) BroadcastToRoom(roomID string, message interface{}) {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Printf("live: failed to marshal message for room %s: %v", roomID, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		client.enqueue(messageBytes)
	}
}

// PublishResult announces a completed match result to the season's room.
func (h *Hub) PublishResult(seasonID int, match *models.Match) {
	room := SeasonRoom(seasonID)
	h.BroadcastToRoom(room, Message{
		Type:    MessageTypeResultPosted,
		Payload: match,
		RoomID:  room,
	})
}
