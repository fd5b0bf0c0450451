package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a cafe order entity. Items and the stored total are
// immutable after creation; status and the two assignment slots are
// mutated only through the methods below, with the store's conditional
// writes as the authoritative arbiter under concurrency.
type Order struct {
	ID              int
	Status          Status
	Items           []OrderItem
	Total           decimal.Decimal
	KitchenWorkerID *int
	ServiceWorkerID *int
	TableNumber     *int
	PaymentMethod   string
	PaymentStatus   PaymentStatus
	CreatedAt       time.Time
	AcceptedAt      *time.Time
	ServedAt        *time.Time
	UpdatedAt       time.Time
}

// OrderItem represents a line in an order.
type OrderItem struct {
	ID         int
	OrderID    int
	MenuItemID int
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
}

// NewOrder creates a pending, unclaimed order and stores its total.
// The stored total is the source of truth afterwards; it is never
// recomputed from the items.
func NewOrder(items []OrderItem, tableNumber *int, paymentMethod string) (*Order, error) {
	order := &Order{
		Items:         items,
		TableNumber:   tableNumber,
		PaymentMethod: paymentMethod,
		PaymentStatus: PaymentPending,
		Status:        StatusPending,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	order.Total = CalculateTotal(items)
	return order, nil
}

// Validate applies creation-time business rules.
func (o *Order) Validate() error {
	if len(o.Items) < 1 || len(o.Items) > 20 {
		return errors.New("order must have 1-20 items")
	}
	for _, item := range o.Items {
		if len(item.Name) < 1 || len(item.Name) > 50 {
			return errors.New("item name must be 1-50 characters")
		}
		if item.Quantity < 1 || item.Quantity > 10 {
			return errors.New("item quantity must be 1-10")
		}
		if item.UnitPrice.IsNegative() || item.UnitPrice.IsZero() {
			return errors.New("item price must be positive")
		}
	}
	if o.TableNumber != nil && (*o.TableNumber < 1 || *o.TableNumber > 100) {
		return errors.New("table number must be between 1 and 100")
	}
	return nil
}

// CalculateTotal sums quantity * unit price over the items.
func CalculateTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// SlotHolder returns the staff id currently holding the given slot,
// or nil if the slot is empty.
func (o *Order) SlotHolder(slot Slot) *int {
	if slot == SlotKitchen {
		return o.KitchenWorkerID
	}
	return o.ServiceWorkerID
}

// CanTransitionTo reports whether target is the direct successor of
// the current status. Skipping edges is never allowed.
func (o *Order) CanTransitionTo(target Status) bool {
	next, ok := o.Status.Next()
	return ok && next == target
}

// transitionOwner returns the slot whose holder is authorized for the
// edge ending at target.
func transitionOwner(target Status) Slot {
	if target == StatusServed {
		return SlotService
	}
	return SlotKitchen
}

// TransitionTo advances the order one step along the fulfilment path.
// The acting staff must hold the slot authorized for the edge: the
// kitchen slot for PENDING->IN_PROGRESS and IN_PROGRESS->READY, the
// service slot for READY->SERVED. Reaching SERVED stamps ServedAt.
func (o *Order) TransitionTo(target Status, actingStaffID int) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidTransition
	}

	holder := o.SlotHolder(transitionOwner(target))
	if holder == nil || *holder != actingStaffID {
		return ErrNotOwner
	}

	o.Status = target
	o.UpdatedAt = time.Now().UTC()
	if target == StatusServed {
		now := time.Now().UTC()
		o.ServedAt = &now
	}
	return nil
}

// Cancel is the administrative override: reachable from any
// non-terminal status, no slot ownership required.
func (o *Order) Cancel() error {
	if o.Status.IsTerminal() {
		return ErrInvalidTransition
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Claim fills an empty assignment slot. KITCHEN requires the order to
// be PENDING, SERVICE requires READY; claiming the service slot stamps
// AcceptedAt (the start of the serving window). The in-memory check
// mirrors the store's conditional write; only the store's answer is
// authoritative when clients race.
func (o *Order) Claim(slot Slot, staffID int, now time.Time) error {
	switch slot {
	case SlotKitchen:
		if o.Status != StatusPending {
			return ErrInvalidState
		}
		if o.KitchenWorkerID != nil {
			return ErrAlreadyClaimed
		}
		o.KitchenWorkerID = &staffID
	case SlotService:
		if o.Status != StatusReady {
			return ErrInvalidState
		}
		if o.ServiceWorkerID != nil {
			return ErrAlreadyClaimed
		}
		o.ServiceWorkerID = &staffID
		o.AcceptedAt = &now
	default:
		return ErrInvalidState
	}
	o.UpdatedAt = now
	return nil
}

// ServingDuration returns servedAt - acceptedAt when both timestamps
// are present, excluding the sample otherwise.
func (o *Order) ServingDuration() (time.Duration, bool) {
	if o.AcceptedAt == nil || o.ServedAt == nil {
		return 0, false
	}
	return o.ServedAt.Sub(*o.AcceptedAt), true
}
