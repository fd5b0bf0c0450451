package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/akhilak5/cafe-ops/internal/adapter/logger"
	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
)

// Service applies order status transitions. Validation happens twice:
// in-memory against the freshly read order (edge legality, slot
// ownership), then again at the store through the conditional write,
// which is what actually decides races between clients.
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

func (s *Service) SetStatus(ctx context.Context, orderID int, target domain.Status, actingStaffID int) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	work := *order
	if err := work.TransitionTo(target, actingStaffID); err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, order.Status, target, work.ServedAt)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, interfaces.OrderEventMessage{
		Kind:    eventKindFor(target),
		OrderID: updated.ID,
		Status:  updated.Status,
		StaffID: &actingStaffID,
	})

	s.logger.Info("status_changed", fmt.Sprintf("Order %d -> %s", orderID, target), "", map[string]interface{}{
		"order_id": orderID,
		"from":     order.Status,
		"to":       target,
		"staff_id": actingStaffID,
	})

	return updated, nil
}

// Cancel is the administrative override; it requires no slot ownership
// and is legal from any non-terminal status.
func (s *Service) Cancel(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, order.Status, domain.StatusCancelled, nil)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, interfaces.OrderEventMessage{
		Kind:    domain.EventStatusChanged,
		OrderID: updated.ID,
		Status:  updated.Status,
	})

	return updated, nil
}

func (s *Service) SetPayment(ctx context.Context, orderID int, method string, status domain.PaymentStatus) (*domain.Order, error) {
	updated, err := s.orderRepo.SetPayment(ctx, orderID, method, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment_updated", fmt.Sprintf("Order %d payment %s (%s)", orderID, status, method), "", map[string]interface{}{
		"order_id": orderID,
		"method":   method,
		"status":   status,
	})

	return updated, nil
}

func (s *Service) publishEvent(ctx context.Context, msg interfaces.OrderEventMessage) {
	msg.Timestamp = time.Now().UTC()
	if err := s.publisher.PublishOrderEvent(ctx, msg); err != nil {
		// The event stream is observability-only; a failed publish must
		// not fail the transition.
		s.logger.Error("event_publish_failed", "Failed to publish order event", "", map[string]interface{}{
			"order_id": msg.OrderID,
		}, err)
	}
}

func eventKindFor(target domain.Status) domain.EventKind {
	if target == domain.StatusReady {
		return domain.EventReadyForService
	}
	return domain.EventStatusChanged
}
