package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginRejected  EventType = "login_rejected"
	EventUserCreated    EventType = "user_created"
	EventUserDeleted    EventType = "user_deleted"
)

// AllTypes lists every event type emitted by the services.
var AllTypes = []EventType{
	EventLoginSucceeded,
	EventLoginRejected,
	EventUserCreated,
	EventUserDeleted,
}

// Event represents an account or authentication event emitted by services.
// UserID is zero when the event does not resolve to a stored account.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	UserID    int64     `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent stamps a fresh event.
func NewEvent(eventType EventType, userID int64, username string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Username:  username,
		Timestamp: time.Now().UTC(),
	}
}
