package handlers

import (
	"net/http"

	"agrisoil-backend/internal/models"
	"agrisoil-backend/internal/services"
	"agrisoil-backend/utils"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	predictionService services.IPredictionService
}

func NewPredictionHandler(predictionService services.IPredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
	}
}

func (h *PredictionHandler) RegisterRoutes(router *gin.Engine) {
	predictionGroup := router.Group("/api/prediction")
	predictionGroup.POST("/predict", h.PredictCrop)
	predictionGroup.POST("/classify-soil", h.ClassifySoil)
	predictionGroup.POST("/analyze", h.Analyze)
	predictionGroup.POST("/hybrid-analyze", h.HybridAnalyze)
	predictionGroup.GET("/model-status", h.ModelStatus)
}

func (h *PredictionHandler) PredictCrop(c *gin.Context) {
	var input models.PredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	prediction, err := h.predictionService.PredictCrop(input.ToMeasurement())
	if err != nil {
		errorResponse := utils.CreateErrorResponse("SERVICE_UNAVAILABLE", "Crop prediction is currently unavailable")
		c.JSON(http.StatusServiceUnavailable, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(prediction))
}

func (h *PredictionHandler) ClassifySoil(c *gin.Context) {
	var input models.PredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	classification, err := h.predictionService.ClassifySoil(input.ToMeasurement())
	if err != nil {
		errorResponse := utils.CreateErrorResponse("SERVICE_UNAVAILABLE", "Soil classification is currently unavailable")
		c.JSON(http.StatusServiceUnavailable, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(classification))
}

func (h *PredictionHandler) Analyze(c *gin.Context) {
	var input models.PredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	analysis, err := h.predictionService.Analyze(input.ToMeasurement())
	if err != nil {
		errorResponse := utils.CreateErrorResponse("SERVICE_UNAVAILABLE", "Analysis is currently unavailable")
		c.JSON(http.StatusServiceUnavailable, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(analysis))
}

// HybridAnalyze is the main recommendation endpoint. It degrades to a
// rules-only answer when the classifier service is down, so it fails
// only on invalid input.
func (h *PredictionHandler) HybridAnalyze(c *gin.Context) {
	var input models.PredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	result, err := h.predictionService.HybridAnalyze(input.ToMeasurement())
	if err != nil {
		errorResponse := utils.CreateErrorResponse("INTERNAL_ERROR", "Hybrid analysis failed")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(result))
}

func (h *PredictionHandler) ModelStatus(c *gin.Context) {
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(h.predictionService.ModelStatus()))
}
