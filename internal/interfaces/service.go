package interfaces

import (
	"context"

	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/shopspring/decimal"
)

// Commands accepted by the ordering service.
type CreateOrderCommand struct {
	Items         []CreateOrderItemCommand
	TableNumber   *int
	PaymentMethod string
}

type CreateOrderItemCommand struct {
	MenuItemID int
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
}

// OrderingService creates orders on behalf of the checkout collaborator.
type OrderingService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
}

// LifecycleService applies status transitions and payment marks.
type LifecycleService interface {
	SetStatus(ctx context.Context, orderID int, target domain.Status, actingStaffID int) (*domain.Order, error)
	Cancel(ctx context.Context, orderID int) (*domain.Order, error)
	SetPayment(ctx context.Context, orderID int, method string, status domain.PaymentStatus) (*domain.Order, error)
}

// AssignmentService runs the claim protocol.
type AssignmentService interface {
	Claim(ctx context.Context, orderID int, slot domain.Slot, staffID int) (*domain.Order, error)
}

// WorkloadService exposes the read-side workload aggregations.
type WorkloadService interface {
	StaffWorkload(ctx context.Context, role domain.Role) ([]WorkloadSample, error)
}

// WorkloadSample is the per-staff active order count used to present
// capacity information at claim/assignment time. Derived, never stored.
type WorkloadSample struct {
	StaffID           int     `json:"staff_id"`
	StaffName         string  `json:"staff_name"`
	ActiveOrders      int     `json:"active_orders"`
	DoneToday         int     `json:"done_today"`
	AvgServingMinutes float64 `json:"avg_serving_minutes,omitempty"`
}

// DirectoryService reads the staff directory.
type DirectoryService interface {
	ListStaff(ctx context.Context) ([]domain.Staff, error)
}
