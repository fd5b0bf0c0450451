package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
	"github.com/jackc/pgx/v5"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, status, total, kitchen_worker_id, service_worker_id, table_number,
	       payment_method, payment_status, created_at, accepted_at, served_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (status, total, table_number, payment_method, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		order.Status, order.Total, order.TableNumber,
		order.PaymentMethod, order.PaymentStatus, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		itemQuery := `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		err = tx.QueryRow(ctx, itemQuery,
			order.ID, order.Items[i].MenuItemID, order.Items[i].Name,
			order.Items[i].Quantity, order.Items[i].UnitPrice,
		).Scan(&order.Items[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
		order.Items[i].OrderID = order.ID
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order domain.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.Status, &order.Total, &order.KitchenWorkerID, &order.ServiceWorkerID,
		&order.TableNumber, &order.PaymentMethod, &order.PaymentStatus,
		&order.CreatedAt, &order.AcceptedAt, &order.ServedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	if err := r.loadItems(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.Status, &order.Total, &order.KitchenWorkerID, &order.ServiceWorkerID,
			&order.TableNumber, &order.PaymentMethod, &order.PaymentStatus,
			&order.CreatedAt, &order.AcceptedAt, &order.ServedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	query := `SELECT id, order_id, menu_item_id, name, quantity, unit_price FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return nil
}

// ClaimSlot is the conditional write resolving claim races: the UPDATE
// succeeds only if the slot is still empty and the status still matches
// the slot's precondition at write time. Zero rows affected means the
// claim lost; the current row is re-read to tell AlreadyClaimed apart
// from InvalidState.
func (r *orderRepository) ClaimSlot(ctx context.Context, orderID int, slot domain.Slot, staffID int, acceptedAt time.Time) (*domain.Order, error) {
	var tag CommandTag
	var err error

	switch slot {
	case domain.SlotKitchen:
		tag, err = r.db.Exec(ctx, `
			UPDATE orders SET kitchen_worker_id = $2, updated_at = $3
			WHERE id = $1 AND status = 'PENDING' AND kitchen_worker_id IS NULL
		`, orderID, staffID, acceptedAt)
	case domain.SlotService:
		tag, err = r.db.Exec(ctx, `
			UPDATE orders SET service_worker_id = $2, accepted_at = $3, updated_at = $3
			WHERE id = $1 AND status = 'READY' AND service_worker_id IS NULL
		`, orderID, staffID, acceptedAt)
	default:
		return nil, domain.ErrInvalidState
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim slot: %w", err)
	}

	if tag.RowsAffected() == 0 {
		current, err := r.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if current.SlotHolder(slot) != nil {
			return nil, domain.ErrAlreadyClaimed
		}
		return nil, domain.ErrInvalidState
	}

	return r.FindByID(ctx, orderID)
}

// UpdateStatus moves the order along one edge, conditional on the row
// still carrying the expected current status. A concurrent transition
// makes the write a no-op and surfaces as InvalidTransition.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int, from, to domain.Status, servedAt *time.Time) (*domain.Order, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $3, served_at = COALESCE($4, served_at), updated_at = $5
		WHERE id = $1 AND status = $2
	`, orderID, from, to, servedAt, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := r.FindByID(ctx, orderID); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidTransition
	}

	return r.FindByID(ctx, orderID)
}

func (r *orderRepository) SetPayment(ctx context.Context, orderID int, method string, status domain.PaymentStatus) (*domain.Order, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET payment_method = $2, payment_status = $3, updated_at = $4
		WHERE id = $1
	`, orderID, method, status, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to set payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	return r.FindByID(ctx, orderID)
}
