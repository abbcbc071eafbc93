// Package events publishes bill activity to a message broker.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types, also used as routing keys.
const (
	BillCreated = "bill.created"
	BillUpdated = "bill.updated"
	BillDeleted = "bill.deleted"
	ItemAdded   = "item.added"
	ItemUpdated = "item.updated"
	ItemRemoved = "item.removed"
)

// Event is a lightweight notification that something changed on a bill.
// Consumers fetch the bill itself if they need more than the identifiers.
type Event struct {
	Type      string    `json:"type"`
	BillID    string    `json:"billId"`
	Reference string    `json:"reference,omitempty"`
	ItemID    string    `json:"itemId,omitempty"`
	ActorID   string    `json:"actorId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event of the given type stamped with the current time.
func NewEvent(eventType, billID, reference, actorID string) *Event {
	return &Event{
		Type:      eventType,
		BillID:    billID,
		Reference: reference,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
	}
}

// WithItem sets the item the event refers to.
func (e *Event) WithItem(itemID string) *Event {
	e.ItemID = itemID
	return e
}

// ToJSON converts the event to JSON bytes
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON creates an event from JSON bytes
func FromJSON(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// NoopPublisher discards every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *Event) error { return nil }
func (NoopPublisher) Close() error                          { return nil }
