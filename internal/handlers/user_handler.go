package handlers

import (
	"net/http"

	"agrisoil-backend/internal/services"
	"agrisoil-backend/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the admin user management endpoints.
type UserHandler struct {
	authService services.IAuthService
	jwtService  *services.JWTService
}

func NewUserHandler(authService services.IAuthService, jwtService *services.JWTService) *UserHandler {
	return &UserHandler{
		authService: authService,
		jwtService:  jwtService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.Engine) {
	userGroup := router.Group("/api/users", RequireAuth(h.jwtService), RequireAdmin())
	userGroup.GET("", h.ListUsers)
	userGroup.GET("/:id", h.GetUser)
	userGroup.DELETE("/:id", h.DeleteUser)
	userGroup.PATCH("/:id/toggle-admin", h.ToggleAdmin)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
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

	users, err := h.authService.GetAllUsers(limit, offset)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("INTERNAL_ERROR", "Failed to list users")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(users))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.authService.GetUserByID(c.Param("id"))
	if err != nil {
		errorResponse := utils.CreateErrorResponse("NOT_FOUND", "User not found")
		c.JSON(http.StatusNotFound, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	actingUserID := c.GetString("user_id")

	if err := h.authService.DeleteUser(c.Param("id"), actingUserID); err != nil {
		errorResponse := utils.CreateErrorResponse("DELETE_FAILED", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"message": "User deleted",
	}))
}

func (h *UserHandler) ToggleAdmin(c *gin.Context) {
	actingUserID := c.GetString("user_id")

	user, err := h.authService.ToggleAdmin(c.Param("id"), actingUserID)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("UPDATE_FAILED", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(user))
}
