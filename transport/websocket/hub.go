package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/playgrid/tictactoe-arena/internal/arena"
)

// Hub tracks the live connections by player id and fans outbound events out
// to them. It is the arena's Notifier: Send never blocks, a connection that
// cannot keep up loses the event.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "ws-hub"),
		clients: make(map[string]*Client),
	}
}

func (that *Hub) add(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.clients[client.id] = client
}

func (that *Hub) remove(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if current, ok := that.clients[client.id]; ok && current == client {
		delete(that.clients, client.id)
		// the send channel is never closed: a concurrent Send may still
		// hold it. Closing done is what stops the write pump.
		close(client.done)
	}
}

// Count returns the number of live connections.
func (that *Hub) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return len(that.clients)
}

// Send delivers one event to one connection. Unknown ids and full send
// buffers are dropped, the core never waits on a socket.
func (that *Hub) Send(playerID string, event arena.Event) {
	that.mu.RLock()
	client, ok := that.clients[playerID]
	that.mu.RUnlock()

	if !ok {
		return
	}

	var raw json.RawMessage
	if event.Payload != nil {
		var err error
		if raw, err = json.Marshal(event.Payload); err != nil {
			that.logger.Error("failed to marshal event payload", "type", event.Type, "error", err)
			return
		}
	}

	message, err := json.Marshal(Message{Action: event.Type, Payload: raw})
	if err != nil {
		that.logger.Error("failed to marshal event", "type", event.Type, "error", err)
		return
	}

	select {
	case <-client.done:
		// connection is tearing down, the event has nowhere to go
	case client.send <- message:
	default:
		that.logger.Warn("dropping event for slow connection", "playerID", playerID, "type", event.Type)
	}
}
