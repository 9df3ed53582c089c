package models

import "time"

// Order lifecycle states. A paid order moves PENDING -> PAID ->
// CONFIRMED; SHIPPED and DELIVERED follow fulfilment. FAILED marks a
// rejected payment.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusFailed    = "FAILED"
)

// ValidOrderStatus reports whether s is a known lifecycle state.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusConfirmed,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
		OrderStatusFailed:
		return true
	}
	return false
}

type Order struct {
	OrderID           string      `db:"order_id" json:"order_id"`
	UserID            string      `db:"user_id" json:"user_id"`
	TotalAmount       float64     `db:"total_amount" json:"total_amount"`
	Status            string      `db:"status" json:"status"`
	ShippingAddress   string      `db:"shipping_address" json:"shipping_address"`
	PhoneNumber       string      `db:"phone_number" json:"phone_number"`
	Notes             *string     `db:"notes" json:"notes,omitempty"`
	RazorpayOrderID   *string     `db:"razorpay_order_id" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID *string     `db:"razorpay_payment_id" json:"razorpay_payment_id,omitempty"`
	CreatedAt         time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at" json:"updated_at"`
	Items             []OrderItem `db:"-" json:"order_items"`
}

type OrderItem struct {
	OrderItemID     string  `db:"order_item_id" json:"order_item_id"`
	OrderID         string  `db:"order_id" json:"order_id"`
	ProductID       string  `db:"product_id" json:"product_id"`
	ProductName     string  `db:"product_name" json:"product_name,omitempty"`
	Quantity        int     `db:"quantity" json:"quantity"`
	PriceAtPurchase float64 `db:"price_at_purchase" json:"price_at_purchase"`
}
