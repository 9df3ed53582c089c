package handlers

import (
	"net/http"
	"strings"

	"agrisoil-backend/internal/models"
	"agrisoil-backend/internal/services"
	"agrisoil-backend/utils"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService services.IProductService
	jwtService     *services.JWTService
}

func NewProductHandler(productService services.IProductService, jwtService *services.JWTService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		jwtService:     jwtService,
	}
}

func (h *ProductHandler) RegisterRoutes(router *gin.Engine) {
	productGroup := router.Group("/api/products")
	productGroup.GET("", h.ListProducts)
	productGroup.GET("/:id", h.GetProduct)
	productGroup.GET("/search/by-crop/:crop_name", h.SearchByCrop)
	productGroup.POST("/search/by-crops", h.SearchByCrops)

	adminGroup := router.Group("/api/products", RequireAuth(h.jwtService), RequireAdmin())
	adminGroup.POST("", h.CreateProduct)
	adminGroup.PUT("/:id", h.UpdateProduct)
	adminGroup.DELETE("/:id", h.DeleteProduct)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
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

	category := c.Query("category")
	search := c.Query("search")

	products, err := h.productService.GetProducts(limit, offset, category, search)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("INTERNAL_ERROR", "Failed to list products")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(products))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Param("id"))
	if err != nil {
		errorResponse := utils.CreateErrorResponse("NOT_FOUND", "Product not found")
		c.JSON(http.StatusNotFound, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(product))
}

func (h *ProductHandler) SearchByCrop(c *gin.Context) {
	cropName := strings.TrimSpace(c.Param("crop_name"))

	limit, err := utils.GetQueryParamAsInt(c, "limit", 5)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	products, err := h.productService.SearchByCrop(cropName, limit)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("INTERNAL_ERROR", "Product search failed")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"crop_name": cropName,
		"products":  products,
	}))
}

func (h *ProductHandler) SearchByCrops(c *gin.Context) {
	var req models.SearchByCropsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	limit, err := utils.GetQueryParamAsInt(c, "limit", 6)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	products, err := h.productService.GetRelatedProducts(req.CropNames, limit)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("INTERNAL_ERROR", "Product search failed")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"crop_names": req.CropNames,
		"products":   products,
	}))
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	product, err := h.productService.CreateProduct(req)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("CREATE_FAILED", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(product))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	product, err := h.productService.UpdateProduct(c.Param("id"), req)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("UPDATE_FAILED", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(product))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Param("id")); err != nil {
		errorResponse := utils.CreateErrorResponse("DELETE_FAILED", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"message": "Product removed from catalogue",
	}))
}
