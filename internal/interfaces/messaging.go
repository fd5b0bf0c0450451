package interfaces

import (
	"context"
	"time"

	"github.com/akhilak5/cafe-ops/internal/domain"
)

// OrderEventMessage is published on the cafe_events fanout exchange
// whenever an order changes status, is claimed, or is created. The
// stream is observability-only: staff clients converge by polling and
// never rely on delivery of these messages.
type OrderEventMessage struct {
	MessageID string           `json:"message_id"`
	Kind      domain.EventKind `json:"kind"`
	OrderID   int              `json:"order_id"`
	Status    domain.Status    `json:"status"`
	StaffID   *int             `json:"staff_id,omitempty"`
	Slot      *domain.Slot     `json:"slot,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// MessagePublisher publishes order events (adapter/rabbitmq).
type MessagePublisher interface {
	PublishOrderEvent(ctx context.Context, msg OrderEventMessage) error
}

// MessageConsumer consumes order events (adapter/rabbitmq).
type MessageConsumer interface {
	ConsumeOrderEvents(ctx context.Context, handler OrderEventHandler) error
}

type OrderEventHandler func(ctx context.Context, body []byte) error

// StoreClient is the staff client's view of the Order Store / Staff
// Directory, implemented over HTTP in adapter/httpclient. Mutations
// return the store's confirmed state; callers must still re-sync
// before trusting derived views.
type StoreClient interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListStaff(ctx context.Context) ([]domain.Staff, error)
	SetStatus(ctx context.Context, orderID int, target domain.Status, actingStaffID int) (*domain.Order, error)
	ClaimSlot(ctx context.Context, orderID int, slot domain.Slot, staffID int) (*domain.Order, error)
	SetPayment(ctx context.Context, orderID int, method string, status domain.PaymentStatus) (*domain.Order, error)
}
