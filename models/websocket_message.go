package models

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// WebSocketMessageType represents message type constants
type WebSocketMessageType string

const (
	EventMessage WebSocketMessageType = "event"
	ErrorMessage WebSocketMessageType = "error"
)

// StandardMessage is the frame pushed to live feed clients.
type StandardMessage struct {
	ID           string                 `json:"id"`
	Type         WebSocketMessageType   `json:"type"`
	Event        string                 `json:"event,omitempty"`
	Timestamp    time.Time              `json:"timestamp"`
	Payload      map[string]interface{} `json:"payload"`
	ResourceID   string                 `json:"resource_id,omitempty"`
	ResourceType string                 `json:"resource_type,omitempty"`
}

func NewStandardMessage(msgType WebSocketMessageType, event string, payload map[string]interface{}) *StandardMessage {
	return &StandardMessage{
		ID:        uuid.New().String(),
		Type:      msgType,
		Event:     event,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// WithResource adds resource information to the message
func (m *StandardMessage) WithResource(resourceType string, resourceID string) *StandardMessage {
	m.ResourceType = resourceType
	m.ResourceID = resourceID
	return m
}

// MessageFromEvent wraps a committed event for the live feed.
func MessageFromEvent(ev Event) *StandardMessage {
	payload := map[string]interface{}{}
	if len(ev.Data) > 0 {
		var data interface{}
		if err := json.Unmarshal(ev.Data, &data); err == nil {
			payload["data"] = data
		}
	}
	msg := NewStandardMessage(EventMessage, string(ev.Event), payload)
	msg.Timestamp = ev.Timestamp
	return msg.WithResource(ev.Entity, strconv.FormatUint(uint64(ev.EntityID), 10))
}
