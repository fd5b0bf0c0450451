package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akhilak5/cafe-ops/internal/adapter/logger"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
)

// NotificationHandler logs every order event seen on the fanout
// exchange. It is the whole of the notifier mode.
type NotificationHandler struct {
	logger logger.Logger
}

func NewNotificationHandler(logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{logger: logger}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var msg interfaces.OrderEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	h.logger.Info("order_event", fmt.Sprintf("Order %d: %s", msg.OrderID, msg.Kind), msg.MessageID, map[string]interface{}{
		"kind":     msg.Kind,
		"order_id": msg.OrderID,
		"status":   msg.Status,
		"staff_id": msg.StaffID,
	})
	return nil
}
