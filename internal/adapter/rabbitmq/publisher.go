package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akhilak5/cafe-ops/internal/interfaces"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher struct {
	conn Connection
}

func NewPublisher(conn Connection) interfaces.MessagePublisher {
	return &publisher{conn: conn}
}

// PublishOrderEvent fans out an order event to every subscriber. The
// event stream carries no delivery semantics; staff clients converge
// by polling regardless of what is published here.
func (p *publisher) PublishOrderEvent(ctx context.Context, msg interfaces.OrderEventMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(ExchangeEvents, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.Publish(ExchangeEvents, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    msg.MessageID,
		Timestamp:    msg.Timestamp,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}
