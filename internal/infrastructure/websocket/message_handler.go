package websocket

import (
	"encoding/json"
	"time"

	"mediavault/pkg/logger"
)

const (
	EventTypeChange = "change"
	EventTypePing   = "ping"
	EventTypePong   = "pong"
	EventTypeError  = "error"
)

// Event is the single frame shape on the change feed.
type Event struct {
	Type      string   `json:"type"`
	Resource  string   `json:"resource,omitempty"`
	Action    string   `json:"action,omitempty"`
	IDs       []string `json:"ids,omitempty"`
	Message   string   `json:"message,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// HandleClientMessage answers pings; the feed is otherwise one-way.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var event Event
	if err := json.Unmarshal(messageBytes, &event); err != nil {
		logger.Debug("Event subscriber %s sent malformed frame: %v", client.ID, err)
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	switch event.Type {
	case EventTypePing:
		m.sendToClient(client, Event{
			Type:      EventTypePong,
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		})
	default:
		m.sendErrorToClient(client, "Unknown message type")
	}
}

func (m *Manager) sendErrorToClient(client *Client, message string) {
	m.sendToClient(client, Event{
		Type:      EventTypeError,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}
