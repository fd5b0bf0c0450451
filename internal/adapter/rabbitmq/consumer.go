package rabbitmq

import (
	"context"
	"fmt"

	"github.com/akhilak5/cafe-ops/internal/interfaces"
)

type consumer struct {
	conn     Connection
	prefetch int
}

func NewConsumer(conn Connection, prefetch int) interfaces.MessageConsumer {
	if prefetch <= 0 {
		prefetch = 1
	}
	return &consumer{conn: conn, prefetch: prefetch}
}

// ConsumeOrderEvents drains the fanout exchange through an exclusive
// per-process queue and hands each body to the handler. Handler errors
// requeue the delivery.
func (c *consumer) ConsumeOrderEvents(ctx context.Context, handler interfaces.OrderEventHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(ExchangeEvents, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	queueName, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", ExchangeEvents, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	msgs, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := handler(ctx, d.Body); err != nil {
				d.Nack(false, true)
				continue
			}
			d.Ack(false)
		}
	}
}
