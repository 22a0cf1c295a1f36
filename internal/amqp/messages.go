package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType names what happened to an entry.
type EventType string

const (
	EventEntryCreated EventType = "entry.created"
	EventEntryDeleted EventType = "entry.deleted"
)

// EntryEventMessage is a lightweight notification about a ledger mutation.
// It carries only identifiers; consumers read the entry from the store.
type EntryEventMessage struct {
	Type      EventType `json:"type"`
	EntryID   int64     `json:"entry_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryCreatedMessage(entryID int64, userID string) *EntryEventMessage {
	return &EntryEventMessage{
		Type:      EventEntryCreated,
		EntryID:   entryID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func NewEntryDeletedMessage(entryID int64, userID string) *EntryEventMessage {
	return &EntryEventMessage{
		Type:      EventEntryDeleted,
		EntryID:   entryID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *EntryEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EntryEventMessageFromJSON decodes and validates a message body.
func EntryEventMessageFromJSON(data []byte) (*EntryEventMessage, error) {
	var msg EntryEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Type {
	case EventEntryCreated, EventEntryDeleted:
	default:
		return nil, fmt.Errorf("unknown event type %q", msg.Type)
	}
	if msg.EntryID <= 0 {
		return nil, fmt.Errorf("invalid entry id %d", msg.EntryID)
	}
	return &msg, nil
}
