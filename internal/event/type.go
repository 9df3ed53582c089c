package event

import "time"

// OrderQueue carries order lifecycle events for downstream consumers
// (fulfilment, notification).
const OrderQueue = "order_events"

type OrderEventKind string

const (
	OrderCreated       OrderEventKind = "order.created"
	OrderPaid          OrderEventKind = "order.paid"
	OrderPaymentFailed OrderEventKind = "order.payment_failed"
	OrderStatusChanged OrderEventKind = "order.status_changed"
)

type OrderEvent struct {
	ID          string         `json:"id"`
	Kind        OrderEventKind `json:"kind"`
	OrderID     string         `json:"order_id"`
	UserID      string         `json:"user_id"`
	Status      string         `json:"status"`
	TotalAmount float64        `json:"total_amount"`
	CreatedAt   time.Time      `json:"created_at"`
}
