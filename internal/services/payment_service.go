package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"agrisoil-backend/internal/config"
	"agrisoil-backend/internal/event"
	"agrisoil-backend/internal/models"
	"agrisoil-backend/internal/repository"
	"agrisoil-backend/utils"

	"github.com/google/uuid"
)

const (
	defaultRazorpayBaseURL = "https://api.razorpay.com"
	freeShippingThreshold  = 500.0
	shippingCharge         = 50.0
)

// GatewayOrder is what the checkout page needs to open the Razorpay
// widget.
type GatewayOrder struct {
	OrderID         string  `json:"order_id"`
	RazorpayOrderID string  `json:"razorpay_order_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	RazorpayKeyID   string  `json:"razorpay_key_id"`
	ShippingCharge  float64 `json:"shipping_charge"`
	SubtotalAmount  float64 `json:"subtotal_amount"`
}

type IPaymentService interface {
	CreateGatewayOrder(userID string, req models.CreateOrderRequest) (*GatewayOrder, error)
	VerifyPayment(req models.VerifyPaymentRequest) (*models.Order, error)
}

type PaymentService struct {
	cfg          config.PaymentConfig
	orderRepo    repository.IOrderRepository
	productRepo  repository.IProductRepository
	userRepo     repository.IUserRepository
	emailService IEmailService
	publisher    *event.OrderEventPublisher
	client       *http.Client
}

func NewPaymentService(
	cfg config.PaymentConfig,
	orderRepo repository.IOrderRepository,
	productRepo repository.IProductRepository,
	userRepo repository.IUserRepository,
	emailService IEmailService,
	publisher *event.OrderEventPublisher,
) IPaymentService {
	return &PaymentService{
		cfg:          cfg,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		emailService: emailService,
		publisher:    publisher,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateGatewayOrder prices the cart, reserves stock, stores a PENDING
// order with shipping included and registers it with Razorpay. Orders
// above the free shipping threshold ship at no charge.
func (s *PaymentService) CreateGatewayOrder(userID string, req models.CreateOrderRequest) (*GatewayOrder, error) {
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

	var subtotal float64
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

		subtotal += product.Price * float64(item.Quantity)
		order.Items = append(order.Items, models.OrderItem{
			OrderItemID:     uuid.NewString(),
			OrderID:         order.OrderID,
			ProductID:       product.ProductID,
			ProductName:     product.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: product.Price,
		})
	}

	shipping := shippingCharge
	if subtotal > freeShippingThreshold {
		shipping = 0
	}
	order.TotalAmount = subtotal + shipping

	if err := s.orderRepo.CreateOrder(tx, order); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	razorpayOrderID, err := s.createRazorpayOrder(order.OrderID, order.TotalAmount)
	if err != nil {
		// Stock stays reserved; the order can be retried or cancelled
		// from the admin side.
		log.Printf("razorpay order creation failed for %s: %v", order.OrderID, err)
		return nil, err
	}

	if err := s.orderRepo.AttachRazorpayOrder(order.OrderID, razorpayOrderID); err != nil {
		return nil, err
	}

	s.publishEvent(event.OrderCreated, order)

	return &GatewayOrder{
		OrderID:         order.OrderID,
		RazorpayOrderID: razorpayOrderID,
		Amount:          order.TotalAmount,
		Currency:        "INR",
		RazorpayKeyID:   s.cfg.RazorpayKeyID,
		ShippingCharge:  shipping,
		SubtotalAmount:  subtotal,
	}, nil
}

// VerifyPayment checks Razorpay's payment signature. A valid signature
// confirms the order; an invalid one marks it FAILED.
func (s *PaymentService) VerifyPayment(req models.VerifyPaymentRequest) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByRazorpayOrderID(req.RazorpayOrderID)
	if err != nil {
		return nil, err
	}

	if !s.signatureValid(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		if err := s.orderRepo.UpdateStatus(order.OrderID, models.OrderStatusFailed); err != nil {
			log.Printf("failed to mark order %s as failed: %v", order.OrderID, err)
		}
		order.Status = models.OrderStatusFailed
		s.publishEvent(event.OrderPaymentFailed, order)
		return nil, fmt.Errorf("payment signature verification failed")
	}

	if err := s.orderRepo.MarkPaid(order.OrderID, req.RazorpayPaymentID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(order.OrderID, models.OrderStatusConfirmed); err != nil {
		return nil, err
	}

	order, err = s.orderRepo.GetOrderByID(order.OrderID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(event.OrderPaid, order)
	s.sendConfirmationEmail(order)

	return order, nil
}

func (s *PaymentService) signatureValid(razorpayOrderID, razorpayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.cfg.RazorpayKeySecret))
	mac.Write([]byte(razorpayOrderID + "|" + razorpayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *PaymentService) createRazorpayOrder(receipt string, amount float64) (string, error) {
	baseURL := s.cfg.RazorpayBaseURL
	if baseURL == "" {
		baseURL = defaultRazorpayBaseURL
	}

	// Razorpay amounts are integers in paise.
	payload := map[string]any{
		"amount":   int(math.Round(amount * 100)),
		"currency": "INR",
		"receipt":  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(s.cfg.RazorpayKeyID, s.cfg.RazorpayKeySecret)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var gatewayOrder struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &gatewayOrder); err != nil {
		return "", fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if gatewayOrder.ID == "" {
		return "", fmt.Errorf("payment gateway returned no order id")
	}
	return gatewayOrder.ID, nil
}

func (s *PaymentService) publishEvent(kind event.OrderEventKind, order *models.Order) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishOrderEvent(ctx, kind, order.OrderID, order.UserID, order.Status, order.TotalAmount); err != nil {
		log.Printf("failed to publish %s event for order %s: %v", kind, order.OrderID, err)
	}
}

func (s *PaymentService) sendConfirmationEmail(order *models.Order) {
	if s.emailService == nil {
		return
	}
	user, err := s.userRepo.GetUserByID(order.UserID)
	if err != nil {
		log.Printf("cannot send confirmation for order %s: %v", order.OrderID, err)
		return
	}
	go func() {
		if err := s.emailService.SendOrderConfirmation(user.Email, user.Username, order.OrderID, order.TotalAmount); err != nil {
			log.Printf("failed to send confirmation email for order %s: %v", order.OrderID, err)
		}
	}()
}
