package repository

import (
	"database/sql"
	"fmt"
	"time"

	"agrisoil-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

type IOrderRepository interface {
	CreateOrder(tx *sqlx.Tx, order *models.Order) error
	GetOrderByID(id string) (*models.Order, error)
	GetOrderByRazorpayOrderID(razorpayOrderID string) (*models.Order, error)
	GetOrdersByUser(userID string, limit, offset int) ([]*models.Order, error)
	GetAllOrders(limit, offset int) ([]*models.Order, error)
	UpdateStatus(orderID, status string) error
	AttachRazorpayOrder(orderID, razorpayOrderID string) error
	MarkPaid(orderID, razorpayPaymentID string) error
	BeginTx() (*sqlx.Tx, error)
}

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) IOrderRepository {
	return &OrderRepository{
		db: db,
	}
}

// CreateOrder inserts the order row and its items inside the caller's
// transaction.
func (r *OrderRepository) CreateOrder(tx *sqlx.Tx, order *models.Order) error {
	orderQuery := `
		INSERT INTO orders (order_id, user_id, total_amount, status, shipping_address,
		                    phone_number, notes, razorpay_order_id, created_at, updated_at)
		VALUES (:order_id, :user_id, :total_amount, :status, :shipping_address,
		        :phone_number, :notes, :razorpay_order_id, :created_at, :updated_at)
	`

	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	if _, err := tx.NamedExec(orderQuery, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_item_id, order_id, product_id, quantity, price_at_purchase)
		VALUES (:order_item_id, :order_id, :product_id, :quantity, :price_at_purchase)
	`
	for i := range order.Items {
		order.Items[i].OrderID = order.OrderID
		if _, err := tx.NamedExec(itemQuery, order.Items[i]); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	return nil
}

func (r *OrderRepository) GetOrderByID(id string) (*models.Order, error) {
	var order models.Order
	query := `SELECT * FROM orders WHERE order_id = $1`

	err := r.db.Get(&order, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := r.loadItems(&order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *OrderRepository) GetOrderByRazorpayOrderID(razorpayOrderID string) (*models.Order, error) {
	var order models.Order
	query := `SELECT * FROM orders WHERE razorpay_order_id = $1`

	err := r.db.Get(&order, query, razorpayOrderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := r.loadItems(&order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *OrderRepository) GetOrdersByUser(userID string, limit, offset int) ([]*models.Order, error) {
	var orders []*models.Order
	query := `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	err := r.db.Select(&orders, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	for _, order := range orders {
		if err := r.loadItems(order); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *OrderRepository) GetAllOrders(limit, offset int) ([]*models.Order, error) {
	var orders []*models.Order
	query := `SELECT * FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.Select(&orders, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	for _, order := range orders {
		if err := r.loadItems(order); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *OrderRepository) UpdateStatus(orderID, status string) error {
	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE order_id = $3`

	result, err := r.db.Exec(query, status, time.Now(), orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("order not found")
	}

	return nil
}

func (r *OrderRepository) AttachRazorpayOrder(orderID, razorpayOrderID string) error {
	query := `UPDATE orders SET razorpay_order_id = $1, updated_at = $2 WHERE order_id = $3`

	result, err := r.db.Exec(query, razorpayOrderID, time.Now(), orderID)
	if err != nil {
		return fmt.Errorf("failed to attach gateway order: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("order not found")
	}

	return nil
}

func (r *OrderRepository) MarkPaid(orderID, razorpayPaymentID string) error {
	query := `
		UPDATE orders
		SET status = $1, razorpay_payment_id = $2, updated_at = $3
		WHERE order_id = $4
	`

	result, err := r.db.Exec(query, models.OrderStatusPaid, razorpayPaymentID, time.Now(), orderID)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("order not found")
	}

	return nil
}

func (r *OrderRepository) loadItems(order *models.Order) error {
	query := `
		SELECT oi.order_item_id, oi.order_id, oi.product_id, p.name AS product_name,
		       oi.quantity, oi.price_at_purchase
		FROM order_items oi
		JOIN products p ON p.product_id = oi.product_id
		WHERE oi.order_id = $1
	`

	items := []models.OrderItem{}
	if err := r.db.Select(&items, query, order.OrderID); err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	order.Items = items
	return nil
}

func (r *OrderRepository) BeginTx() (*sqlx.Tx, error) {
	return r.db.Beginx()
}
