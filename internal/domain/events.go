package domain

import "fmt"

// EventKind classifies the notification events a staff client derives
// from an order snapshot. Events are not delivered as messages; each
// poll recomputes them from scratch by diffing the snapshot against
// slot/status predicates.
type EventKind string

const (
	EventNewOrder        EventKind = "NEW_ORDER"
	EventReadyForService EventKind = "READY_FOR_SERVICE"
	EventAdminAssigned   EventKind = "ADMIN_ASSIGNED"

	// Wire-only kinds used on the event exchange, never in seen-sets.
	EventStatusChanged EventKind = "STATUS_CHANGED"
	EventSlotClaimed   EventKind = "SLOT_CLAIMED"
)

// Event is a notification derived from a snapshot. Its ID is stable
// across polls so a durable seen-set can suppress repeat alerts.
type Event struct {
	ID      string
	Kind    EventKind
	OrderID int
}

// NewEvent builds an event with the canonical "<kind>-<orderId>" id.
func NewEvent(kind EventKind, orderID int) Event {
	return Event{
		ID:      fmt.Sprintf("%s-%d", kind, orderID),
		Kind:    kind,
		OrderID: orderID,
	}
}
