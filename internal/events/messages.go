package events

import (
	"encoding/json"
	"time"
)

// Type names a domain event. It doubles as the AMQP routing key.
type Type string

const (
	BudgetCreated   Type = "budget.created"
	BudgetUpdated   Type = "budget.updated"
	BudgetDeleted   Type = "budget.deleted"
	ReportGenerated Type = "report.generated"
	ReportUpdated   Type = "report.updated"
	ReportDeleted   Type = "report.deleted"
)

// Event is the message body published after a successful mutation.
// Consumers fetch the resource itself if they need more than its id.
type Event struct {
	Type       Type      `json:"type"`
	OwnerID    string    `json:"ownerId"`
	ResourceID string    `json:"resourceId"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewEvent creates an event stamped with the current UTC time.
func NewEvent(eventType Type, ownerID, resourceID string) Event {
	return Event{
		Type:       eventType,
		OwnerID:    ownerID,
		ResourceID: resourceID,
		Timestamp:  time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON decodes an event body.
func EventFromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}
