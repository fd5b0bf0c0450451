package interfaces

import (
	"context"
	"time"

	"github.com/akhilak5/cafe-ops/internal/domain"
)

// OrderRepository is the store-facing contract of the order lifecycle.
// ClaimSlot and UpdateStatus are conditional writes: they succeed only
// if the slot is still empty / the status is still the expected one at
// write time, and report the domain error for the losing side of a
// race. The per-order row is the only shared mutable resource in the
// system; all contention resolves here.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id int) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)

	// ClaimSlot fills the slot iff it is empty and the order status
	// matches the slot's precondition. acceptedAt is stamped only for
	// the service slot. Returns ErrAlreadyClaimed, ErrInvalidState or
	// ErrNotFound on failure.
	ClaimSlot(ctx context.Context, orderID int, slot domain.Slot, staffID int, acceptedAt time.Time) (*domain.Order, error)

	// UpdateStatus moves the order from the expected current status to
	// target iff the row still carries the expected status. servedAt
	// is stamped only when target is SERVED. Returns
	// ErrInvalidTransition or ErrNotFound on failure.
	UpdateStatus(ctx context.Context, orderID int, from, to domain.Status, servedAt *time.Time) (*domain.Order, error)

	SetPayment(ctx context.Context, orderID int, method string, status domain.PaymentStatus) (*domain.Order, error)
}

// StaffRepository reads the staff directory. The core never writes it.
type StaffRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Staff, error)
	ListAll(ctx context.Context) ([]domain.Staff, error)
}
