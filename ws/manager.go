package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Event types pushed to live pages.
const (
	EventContentUpdated  = "content_updated"
	EventProjectsChanged = "projects_changed"
	EventPong            = "pong"
)

// Event is the envelope sent to every connected page.
type Event struct {
	Type      string    `json:"type"`
	Section   string    `json:"section,omitempty"`
	ProjectID int       `json:"projectId,omitempty"`
	Action    string    `json:"action,omitempty"`
	At        time.Time `json:"at"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex // one writer at a time per connection
}

func (c *client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Manager keeps track of connected pages.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*client // clientID -> conn
}

func NewManager() *Manager {
	return &Manager{clients: make(map[string]*client)}
}

// Register adds a connection and returns its client id.
func (m *Manager) Register(conn *websocket.Conn) string {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[id] = &client{conn: conn}
	return id
}

// Unregister closes and removes a connection.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.clients[id]; ok {
		_ = c.conn.Close()
		delete(m.clients, id)
	}
}

// Send writes one event to a single client.
func (m *Manager) Send(id string, event Event) error {
	m.mu.RLock()
	c, ok := m.clients[id]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.write(payload)
}

// Publish broadcasts event to every client. Clients that fail a write are
// dropped.
func (m *Manager) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("encode live event")
		return
	}

	m.mu.RLock()
	targets := make(map[string]*client, len(m.clients))
	for id, c := range m.clients {
		targets[id] = c
	}
	m.mu.RUnlock()

	for id, c := range targets {
		if err := c.write(payload); err != nil {
			log.Warn().Err(err).Str("client", id).Msg("dropping live client")
			m.Unregister(id)
		}
	}
}

// Count returns the number of connected clients.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
