package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"servicehub/pkg/logger"
)

// Event is the envelope for everything pushed to a client: live snapshot
// deliveries, chat notifications, and subscription errors.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Client represents one connected view-layer client.
type Client struct {
	Identity string
	Conn     *websocket.Conn
	Send     chan []byte
}

// Manager tracks active connections by identity.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.Identity] = client
				m.mutex.Unlock()
				logger.Info("Client registered: %s", client.Identity)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.Identity]; ok && current == client {
					delete(m.clients, client.Identity)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Info("Client unregistered: %s", client.Identity)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendEvent delivers an event to a specific identity, dropping it when the
// client is not connected or its queue is full.
func (m *Manager) SendEvent(identity string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal event %q: %v", event.Type, err)
		return
	}

	m.mutex.RLock()
	client, ok := m.clients[identity]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- data:
	default:
		logger.Warn("Dropping event %q for %s: send queue full", event.Type, identity)
	}
}

// WritePump sends queued messages to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("WebSocket write failed for %s: %v", c.Identity, err)
			return
		}
	}
}
