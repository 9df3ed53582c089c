package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"agrisoil-backend/utils"

	amqp "github.com/rabbitmq/amqp091-go"
)

type OrderEventPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished atomic.Int64
	messagesFailed    atomic.Int64
	lastPublishNano   atomic.Int64
}

// PublisherStats is a point-in-time snapshot for the health endpoint.
type PublisherStats struct {
	Published   int64     `json:"published"`
	Failed      int64     `json:"failed"`
	LastPublish time.Time `json:"last_publish"`
}

// NewOrderEventPublisher creates a new order event publisher
func NewOrderEventPublisher(conn *RabbitMQConnection) *OrderEventPublisher {
	return &OrderEventPublisher{
		conn: conn,
	}
}

// Stats is safe to call concurrently with publishes.
func (p *OrderEventPublisher) Stats() PublisherStats {
	stats := PublisherStats{
		Published: p.messagesPublished.Load(),
		Failed:    p.messagesFailed.Load(),
	}
	if nano := p.lastPublishNano.Load(); nano != 0 {
		stats.LastPublish = time.Unix(0, nano)
	}
	return stats
}

// PublishOrderEvent publishes an order lifecycle event to the
// order_events queue.
func (p *OrderEventPublisher) PublishOrderEvent(ctx context.Context, kind OrderEventKind, orderID, userID, status string, totalAmount float64) error {
	// Ensure the queue exists
	_, err := p.conn.Channel.QueueDeclare(
		OrderQueue, // queue name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		p.messagesFailed.Add(1)
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	evt := OrderEvent{
		ID:          utils.GenerateRandomStringWithLength(6),
		Kind:        kind,
		OrderID:     orderID,
		UserID:      userID,
		Status:      status,
		TotalAmount: totalAmount,
		CreatedAt:   time.Now(),
	}

	body, err := json.Marshal(evt)
	if err != nil {
		p.messagesFailed.Add(1)
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",         // exchange
		OrderQueue, // routing key (queue name)
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed.Add(1)
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	p.messagesPublished.Add(1)
	p.lastPublishNano.Store(time.Now().UnixNano())

	slog.Info("Order event published",
		"queue", OrderQueue,
		"kind", kind,
		"order_id", orderID,
	)

	return nil
}
