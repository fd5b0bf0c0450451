package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akhilak5/cafe-ops/internal/adapter/logger"
	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
)

// Service runs the claim protocol. A claim is a conditional write at
// the store: it fills the slot only if the slot is still empty at
// write time, so at most one staff member ever holds it. Losing the
// race is a normal outcome (AlreadyClaimed), not an exception.
type Service struct {
	orderRepo interfaces.OrderRepository
	staffRepo interfaces.StaffRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
}

func NewService(orderRepo interfaces.OrderRepository, staffRepo interfaces.StaffRepository, publisher interfaces.MessagePublisher, logger logger.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		staffRepo: staffRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Claim fills the slot with staffID. The staff member must exist, be
// active (or invited), and carry the role the slot requires; admins
// assigning on a worker's behalf pass the worker's id, so the role
// check always applies to the assignee.
func (s *Service) Claim(ctx context.Context, orderID int, slot domain.Slot, staffID int) (*domain.Order, error) {
	if !slot.Valid() {
		return nil, domain.ErrInvalidState
	}

	staff, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !staff.Eligible() || !staff.CanClaim(slot) {
		return nil, domain.ErrRoleMismatch
	}

	updated, err := s.orderRepo.ClaimSlot(ctx, orderID, slot, staffID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyClaimed) {
			s.logger.Debug("claim_lost", fmt.Sprintf("Order %d %s slot already taken", orderID, slot), "", map[string]interface{}{
				"order_id": orderID,
				"slot":     slot,
				"staff_id": staffID,
			})
		}
		return nil, err
	}

	msg := interfaces.OrderEventMessage{
		Kind:      domain.EventSlotClaimed,
		OrderID:   updated.ID,
		Status:    updated.Status,
		StaffID:   &staffID,
		Slot:      &slot,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, msg); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish claim event", "", map[string]interface{}{
			"order_id": updated.ID,
		}, err)
	}

	s.logger.Info("slot_claimed", fmt.Sprintf("Order %d %s slot claimed by staff %d", orderID, slot, staffID), "", map[string]interface{}{
		"order_id": orderID,
		"slot":     slot,
		"staff_id": staffID,
	})

	return updated, nil
}
