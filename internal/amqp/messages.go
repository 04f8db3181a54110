package amqp

import (
	"encoding/json"
	"time"
)

// Change verbs carried by activity change messages.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// ActivityChangeMessage announces that an activity was created, updated, or
// deleted. It carries only the id and verb; consumers read the current
// state from the store.
type ActivityChangeMessage struct {
	ActivityID string    `json:"activityId"`
	Change     string    `json:"change"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewActivityChangeMessage builds a change message stamped with the current
// time.
func NewActivityChangeMessage(activityID, change string) *ActivityChangeMessage {
	return &ActivityChangeMessage{
		ActivityID: activityID,
		Change:     change,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ActivityChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ActivityChangeMessageFromJSON parses a message from JSON bytes.
func ActivityChangeMessageFromJSON(data []byte) (*ActivityChangeMessage, error) {
	var msg ActivityChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
