package websocket

import (
	"encoding/json"
	"time"

	"zedorolo/pkg/logger"
)

// Event types pushed to clients.
const (
	EventProposalUpdate = "proposal_update"
	EventNewMessage     = "new_message"
	EventNotification   = "notification"
	EventPong           = "pong"
)

// Message types accepted from clients.
const (
	MessageTypePing        = "ping"
	MessageTypeJoinThread  = "join_thread"
	MessageTypeLeaveThread = "leave_thread"
)

type WSEvent struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type clientMessage struct {
	Type       string `json:"type"`
	ProposalID string `json:"proposal_id,omitempty"`
}

// Publish marshals an event and delivers it to each recipient's feed.
// Delivery is best-effort; offline users catch up from the store.
func (m *Manager) Publish(eventType string, data interface{}, userIDs ...string) {
	event := WSEvent{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal %s event: %v", eventType, err)
		return
	}

	for _, userID := range userIDs {
		m.SendToUser(userID, payload)
	}
}

// HandleClientMessage processes one inbound client frame.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var msg clientMessage
	if err := json.Unmarshal(messageBytes, &msg); err != nil {
		logger.Warn("Invalid websocket frame from %s: %v", client.UserID, err)
		return
	}

	switch msg.Type {
	case MessageTypePing:
		m.Publish(EventPong, nil, client.UserID)

	case MessageTypeJoinThread:
		if msg.ProposalID != "" {
			m.JoinThread(client.UserID, msg.ProposalID)
		}

	case MessageTypeLeaveThread:
		if msg.ProposalID != "" {
			m.LeaveThread(client.UserID, msg.ProposalID)
		}

	default:
		logger.Debug("Ignoring websocket frame type %q from %s", msg.Type, client.UserID)
	}
}
