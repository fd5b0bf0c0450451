package ordering

import (
	"context"
	"fmt"
	"time"

	"github.com/akhilak5/cafe-ops/internal/adapter/logger"
	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
)

// Service creates orders on behalf of the checkout collaborator. The
// total is computed once here and stored; it is never recomputed from
// the items afterwards.
type Service struct {
	orderRepo interfaces.OrderRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
}

func NewService(orderRepo interfaces.OrderRepository, publisher interfaces.MessagePublisher, logger logger.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) CreateOrder(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Order, error) {
	items := make([]domain.OrderItem, len(cmd.Items))
	for i, item := range cmd.Items {
		items[i] = domain.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}

	order, err := domain.NewOrder(items, cmd.TableNumber, cmd.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	msg := interfaces.OrderEventMessage{
		Kind:      domain.EventNewOrder,
		OrderID:   order.ID,
		Status:    order.Status,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, msg); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish new-order event", "", map[string]interface{}{
			"order_id": order.ID,
		}, err)
	}

	s.logger.Info("order_created", fmt.Sprintf("Order %d created", order.ID), "", map[string]interface{}{
		"order_id": order.ID,
		"total":    order.Total.String(),
		"items":    len(order.Items),
	})

	return order, nil
}
