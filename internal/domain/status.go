package domain

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReady      Status = "READY"
	StatusServed     Status = "SERVED"
	StatusCancelled  Status = "CANCELLED"
)

// Slot identifies one of the two independent staff-assignment fields
// on an order. The kitchen slot is claimed while the order is PENDING,
// the service slot once it is READY.
type Slot string

const (
	SlotKitchen Slot = "KITCHEN"
	SlotService Slot = "SERVICE"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusServed || s == StatusCancelled
}

// Next returns the direct successor along the fulfilment path.
// Terminal statuses have no successor.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusPending:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusReady, true
	case StatusReady:
		return StatusServed, true
	default:
		return "", false
	}
}

// Valid reports whether s is one of the known order statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusReady, StatusServed, StatusCancelled:
		return true
	}
	return false
}

// Valid reports whether s is a known assignment slot.
func (s Slot) Valid() bool {
	return s == SlotKitchen || s == SlotService
}
