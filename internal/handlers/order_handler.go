package handlers

import (
	"net/http"
	"strings"

	"agrisoil-backend/internal/models"
	"agrisoil-backend/internal/services"
	"agrisoil-backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.IOrderService
	jwtService   *services.JWTService
}

func NewOrderHandler(orderService services.IOrderService, jwtService *services.JWTService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		jwtService:   jwtService,
	}
}

func (h *OrderHandler) RegisterRoutes(router *gin.Engine) {
	orderGroup := router.Group("/api/orders", RequireAuth(h.jwtService))
	orderGroup.POST("", h.CreateOrder)
	orderGroup.GET("", h.ListMyOrders)
	orderGroup.GET("/all", RequireAdmin(), h.ListAllOrders)
	orderGroup.GET("/:id", h.GetOrder)
	orderGroup.PATCH("/:id/status", RequireAdmin(), h.UpdateStatus)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	order, err := h.orderService.CreateOrder(c.GetString("user_id"), req)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("ORDER_FAILED", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(order))
}

func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	limit, err := utils.GetQueryParamAsInt(c, "limit", 50)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}
	offset, err := utils.GetQueryParamAsInt(c, "offset", 0)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	orders, err := h.orderService.GetUserOrders(c.GetString("user_id"), limit, offset)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("INTERNAL_ERROR", "Failed to list orders")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(orders))
}

func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	limit, err := utils.GetQueryParamAsInt(c, "limit", 50)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}
	offset, err := utils.GetQueryParamAsInt(c, "offset", 0)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	orders, err := h.orderService.GetAllOrders(limit, offset)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("INTERNAL_ERROR", "Failed to list orders")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(orders))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Param("id"), c.GetString("user_id"), c.GetBool("is_admin"))
	if err != nil {
		if strings.Contains(err.Error(), "does not belong") {
			errorResponse := utils.CreateErrorResponse("FORBIDDEN", err.Error())
			c.JSON(http.StatusForbidden, errorResponse)
			return
		}
		errorResponse := utils.CreateErrorResponse("NOT_FOUND", "Order not found")
		c.JSON(http.StatusNotFound, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(order))
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Param("id"), strings.ToUpper(req.Status))
	if err != nil {
		errorResponse := utils.CreateErrorResponse("UPDATE_FAILED", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(order))
}
