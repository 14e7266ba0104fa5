package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// Event types in format: <resource>.<action>
	ListCreated EventType = "list.created"
	ListUpdated EventType = "list.updated"
	ListDeleted EventType = "list.deleted"

	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"

	SubtaskCreated EventType = "subtask.created"
	SubtaskUpdated EventType = "subtask.updated"
	SubtaskDeleted EventType = "subtask.deleted"

	MyDayAdded   EventType = "myday.added"
	MyDayRemoved EventType = "myday.removed"
)

// Event describes one committed change. It is not persisted.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Event     EventType       `json:"event"`
	Version   int             `json:"version"`
	Entity    string          `json:"entity"`
	EntityID  uint            `json:"entity_id"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

func NewEvent(event EventType, entity string, entityID uint, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Event:     event,
		Version:   1,
		Entity:    entity,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Data:      dataBytes,
	}, nil
}
