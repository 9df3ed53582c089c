package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"agrisoil-backend/internal/event"
	"agrisoil-backend/internal/models"
	"agrisoil-backend/internal/repository"
	"agrisoil-backend/utils"

	"github.com/google/uuid"
)

type IOrderService interface {
	CreateOrder(userID string, req models.CreateOrderRequest) (*models.Order, error)
	GetOrder(orderID, requesterID string, requesterIsAdmin bool) (*models.Order, error)
	GetUserOrders(userID string, limit, offset int) ([]*models.Order, error)
	GetAllOrders(limit, offset int) ([]*models.Order, error)
	UpdateStatus(orderID, status string) (*models.Order, error)
}

type OrderService struct {
	orderRepo   repository.IOrderRepository
	productRepo repository.IProductRepository
	publisher   *event.OrderEventPublisher
}

func NewOrderService(orderRepo repository.IOrderRepository, productRepo repository.IProductRepository, publisher *event.OrderEventPublisher) IOrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// CreateOrder prices the requested items from the database, reserves
// stock and stores the order in one transaction. Stock is deducted at
// creation so two buyers cannot claim the last unit.
func (s *OrderService) CreateOrder(userID string, req models.CreateOrderRequest) (*models.Order, error) {
	order := &models.Order{
		OrderID:         "OR-" + utils.GenerateRandomStringWithLength(10),
		UserID:          userID,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
	}
	if req.Notes != "" {
		order.Notes = &req.Notes
	}

	tx, err := s.orderRepo.BeginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var total float64
	for _, item := range req.Items {
		product, err := s.productRepo.GetProductByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsAvailable {
			return nil, fmt.Errorf("product %s is not available", product.Name)
		}

		if err := s.productRepo.DecrementStock(tx, product.ProductID, item.Quantity); err != nil {
			return nil, err
		}

		total += product.Price * float64(item.Quantity)
		order.Items = append(order.Items, models.OrderItem{
			OrderItemID:     uuid.NewString(),
			OrderID:         order.OrderID,
			ProductID:       product.ProductID,
			ProductName:     product.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: product.Price,
		})
	}
	order.TotalAmount = total

	if err := s.orderRepo.CreateOrder(tx, order); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	s.publish(event.OrderCreated, order)
	return order, nil
}

// GetOrder returns an order to its owner or to an admin.
func (s *OrderService) GetOrder(orderID, requesterID string, requesterIsAdmin bool) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID && !requesterIsAdmin {
		return nil, fmt.Errorf("order does not belong to this user")
	}
	return order, nil
}

func (s *OrderService) GetUserOrders(userID string, limit, offset int) ([]*models.Order, error) {
	return s.orderRepo.GetOrdersByUser(userID, limit, offset)
}

func (s *OrderService) GetAllOrders(limit, offset int) ([]*models.Order, error) {
	return s.orderRepo.GetAllOrders(limit, offset)
}

func (s *OrderService) UpdateStatus(orderID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	s.publish(event.OrderStatusChanged, order)
	return order, nil
}

func (s *OrderService) publish(kind event.OrderEventKind, order *models.Order) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishOrderEvent(ctx, kind, order.OrderID, order.UserID, order.Status, order.TotalAmount); err != nil {
		log.Printf("failed to publish %s event for order %s: %v", kind, order.OrderID, err)
	}
}
