package handlers

import (
	"net/http"

	"agrisoil-backend/internal/models"
	"agrisoil-backend/internal/services"
	"agrisoil-backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService services.IPaymentService
	jwtService     *services.JWTService
}

func NewPaymentHandler(paymentService services.IPaymentService, jwtService *services.JWTService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		jwtService:     jwtService,
	}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.Engine) {
	paymentGroup := router.Group("/api/payment", RequireAuth(h.jwtService))
	paymentGroup.POST("/create-order", h.CreateOrder)
	paymentGroup.POST("/verify", h.VerifyPayment)
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	gatewayOrder, err := h.paymentService.CreateGatewayOrder(c.GetString("user_id"), req)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("PAYMENT_ORDER_FAILED", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(gatewayOrder))
}

func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	order, err := h.paymentService.VerifyPayment(req)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("PAYMENT_VERIFICATION_FAILED", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(order))
}
