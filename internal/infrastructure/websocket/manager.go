package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"zedorolo/pkg/logger"
)

// Client represents one connected user feed.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager keeps every active connection plus which proposal thread each user
// currently has open, so message events can be read-marked immediately for an
// actively viewing party.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client

	// viewers[proposalID][userID] set while the user has the thread open
	viewers map[string]map[string]bool
	mutex   sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		viewers:    make(map[string]map[string]bool),
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("Realtime client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.UserID]; ok {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				for _, users := range m.viewers {
					delete(users, client.UserID)
				}
				m.mutex.Unlock()
				logger.Info("Realtime client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser sends a raw payload to a specific user if connected.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		// Slow consumer; drop rather than block the sender.
		logger.Warn("Dropping realtime event for slow client %s", userID)
	}
}

// JoinThread marks userID as actively viewing a proposal thread.
func (m *Manager) JoinThread(userID, proposalID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.viewers[proposalID] == nil {
		m.viewers[proposalID] = make(map[string]bool)
	}
	m.viewers[proposalID][userID] = true
}

// LeaveThread is the deterministic teardown for JoinThread.
func (m *Manager) LeaveThread(userID, proposalID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if users, ok := m.viewers[proposalID]; ok {
		delete(users, userID)
		if len(users) == 0 {
			delete(m.viewers, proposalID)
		}
	}
}

// IsViewing reports whether userID currently has the thread open.
func (m *Manager) IsViewing(userID, proposalID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.viewers[proposalID][userID]
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("websocket read: %v", err)
			}
			break
		}

		m.HandleClientMessage(c, message)
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("websocket write: %v", err)
			return
		}
	}
}
