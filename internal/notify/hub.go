// Package notify pushes task updates to connected viewers over WebSocket.
// Clients subscribe to a single task list; events published for a list reach
// only that list's subscribers.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gehrmanng/taskplanner/internal/logger"
)

// Event is the wire format of a push message.
type Event struct {
	Event      string      `json:"event"`
	TaskListID string      `json:"taskListId"`
	Payload    interface{} `json:"payload,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Hub tracks subscribers per task list and fans events out to them.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan *Event
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan *Event, 256),
	}
}

// Run processes registrations and event fan-out until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case event := <-h.events:
			h.fanOut(event)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// Publish queues an event for the subscribers of the given task list.
// Fire-and-forget: when the event queue is full the event is dropped.
func (h *Hub) Publish(room, event string, payload interface{}) {
	e := &Event{
		Event:      event,
		TaskListID: room,
		Payload:    payload,
		Timestamp:  time.Now(),
	}
	select {
	case h.events <- e:
	default:
		logger.WarnLog(context.Background(), "event queue full, dropping %s for list %s", event, room)
	}
}

// Subscribers returns the number of clients subscribed to a task list.
func (h *Hub) Subscribers(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[client.room] == nil {
		h.rooms[client.room] = make(map[*Client]bool)
	}
	h.rooms[client.room][client] = true
	logger.DebugLog(context.Background(), "client %s subscribed to list %s", client.id, client.room)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.rooms[client.room]
	if clients == nil || !clients[client] {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.rooms, client.room)
	}
	close(client.send)
	logger.DebugLog(context.Background(), "client %s unsubscribed from list %s", client.id, client.room)
}

func (h *Hub) fanOut(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.ErrorLog(context.Background(), "failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[event.TaskListID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer, drop the event for this client.
			logger.WarnLog(context.Background(), "send buffer full for client %s", client.id)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, clients := range h.rooms {
		for client := range clients {
			close(client.send)
		}
		delete(h.rooms, room)
	}
}
