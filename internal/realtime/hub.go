package realtime

import (
	"encoding/json"
	"sync"
)

// Event types broadcast to a user's connected clients after task mutations.
const (
	EventTaskCreated   = "task_created"
	EventTaskSynced    = "task_synced"
	EventTaskCompleted = "task_completed"
)

// TaskEvent is the wire payload sent over the websocket.
type TaskEvent struct {
	Type    string `json:"type"`
	TaskID  uint   `json:"task_id,omitempty"`
	Count   int    `json:"count,omitempty"`
	UserID  string `json:"user_id"`
	Version int    `json:"version"`
}

// BroadcastTaskEvent marshals and sends an event to all of a user's clients.
func (h *Hub) BroadcastTaskEvent(evt TaskEvent) {
	evt.Version = 1
	if bytes, err := json.Marshal(evt); err == nil {
		h.Broadcast(evt.UserID, bytes)
	}
}

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and broadcasts events to them.
type Hub struct {
	mu              sync.RWMutex
	userIdToClients map[string]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			userIdToClients: make(map[string]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIdToClients[userID]; !ok {
		h.userIdToClients[userID] = make(map[Client]struct{})
	}
	h.userIdToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if user has no more clients, cleans up map.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIdToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIdToClients, userID)
		}
	}
}

// Broadcast sends a message to all clients of a user.
func (h *Hub) Broadcast(userID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := h.userIdToClients[userID]
	for c := range clients {
		if ok := c.Send(message); !ok {
			// client write failed; the handler cleans it up on its side
		}
	}
}
