package http

import (
	"time"

	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/shopspring/decimal"
)

// Wire representations shared by the api handlers and the station
// store client, so both sides of the HTTP boundary agree on one shape.

type OrderPayload struct {
	ID              int                `json:"id"`
	Status          string             `json:"status"`
	Items           []OrderItemPayload `json:"items"`
	Total           decimal.Decimal    `json:"total"`
	KitchenWorkerID *int               `json:"kitchen_worker_id"`
	ServiceWorkerID *int               `json:"service_worker_id"`
	TableNumber     *int               `json:"table_number"`
	PaymentMethod   string             `json:"payment_method"`
	PaymentStatus   string             `json:"payment_status"`
	CreatedAt       time.Time          `json:"created_at"`
	AcceptedAt      *time.Time         `json:"accepted_at"`
	ServedAt        *time.Time         `json:"served_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type OrderItemPayload struct {
	MenuItemID int             `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type StaffPayload struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// ErrorResponse carries a stable machine-readable code alongside the
// message so clients can map failures back to the error taxonomy.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func FromOrder(o *domain.Order) OrderPayload {
	items := make([]OrderItemPayload, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemPayload{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}
	return OrderPayload{
		ID:              o.ID,
		Status:          string(o.Status),
		Items:           items,
		Total:           o.Total,
		KitchenWorkerID: o.KitchenWorkerID,
		ServiceWorkerID: o.ServiceWorkerID,
		TableNumber:     o.TableNumber,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   string(o.PaymentStatus),
		CreatedAt:       o.CreatedAt,
		AcceptedAt:      o.AcceptedAt,
		ServedAt:        o.ServedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (p OrderPayload) ToDomain() domain.Order {
	items := make([]domain.OrderItem, len(p.Items))
	for i, item := range p.Items {
		items[i] = domain.OrderItem{
			OrderID:    p.ID,
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}
	return domain.Order{
		ID:              p.ID,
		Status:          domain.Status(p.Status),
		Items:           items,
		Total:           p.Total,
		KitchenWorkerID: p.KitchenWorkerID,
		ServiceWorkerID: p.ServiceWorkerID,
		TableNumber:     p.TableNumber,
		PaymentMethod:   p.PaymentMethod,
		PaymentStatus:   domain.PaymentStatus(p.PaymentStatus),
		CreatedAt:       p.CreatedAt,
		AcceptedAt:      p.AcceptedAt,
		ServedAt:        p.ServedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func FromStaff(s domain.Staff) StaffPayload {
	return StaffPayload{
		ID:     s.ID,
		Name:   s.Name,
		Email:  s.Email,
		Role:   string(s.Role),
		Status: string(s.Status),
	}
}

func (p StaffPayload) ToDomain() domain.Staff {
	return domain.Staff{
		ID:     p.ID,
		Name:   p.Name,
		Email:  p.Email,
		Role:   domain.Role(p.Role),
		Status: domain.StaffStatus(p.Status),
	}
}
