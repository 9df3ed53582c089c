package handlers

import (
	"log"
	"net/http"
	"strings"

	"agrisoil-backend/internal/models"
	"agrisoil-backend/internal/services"
	"agrisoil-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  services.IAuthService
	oauthService services.IOAuthService
	jwtService   *services.JWTService
}

func NewAuthHandler(authService services.IAuthService, oauthService services.IOAuthService, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		oauthService: oauthService,
		jwtService:   jwtService,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	authGroup := router.Group("/api/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/google", h.GoogleLogin)
	authGroup.POST("/twitter", h.TwitterLogin)
	authGroup.POST("/forgot-password", h.ForgotPassword)
	authGroup.POST("/verify-otp", h.VerifyOTP)
	authGroup.POST("/reset-password", h.ResetPassword)
	authGroup.GET("/me", RequireAuth(h.jwtService), h.Me)
	authGroup.PUT("/me", RequireAuth(h.jwtService), h.UpdateMe)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("REGISTRATION_FAILED", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("LOGIN_FAILED", err.Error())
		c.JSON(http.StatusUnauthorized, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"user":  user,
		"token": token,
	}))
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req models.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	identity, err := h.oauthService.VerifyGoogleToken(req.Token)
	if err != nil {
		log.Printf("google token verification failed: %v", err)
		errorResponse := utils.CreateErrorResponse("OAUTH_FAILED", "Google token verification failed")
		c.JSON(http.StatusUnauthorized, errorResponse)
		return
	}

	h.completeOAuthLogin(c, identity)
}

func (h *AuthHandler) TwitterLogin(c *gin.Context) {
	var req models.TwitterAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	identity, err := h.oauthService.ExchangeTwitterCode(req.Code, req.CodeVerifier, req.RedirectURI)
	if err != nil {
		log.Printf("twitter code exchange failed: %v", err)
		errorResponse := utils.CreateErrorResponse("OAUTH_FAILED", "Twitter authorization failed")
		c.JSON(http.StatusUnauthorized, errorResponse)
		return
	}

	h.completeOAuthLogin(c, identity)
}

func (h *AuthHandler) completeOAuthLogin(c *gin.Context, identity *services.OAuthIdentity) {
	user, token, err := h.authService.FindOrCreateOAuthUser(identity.Email, identity.Name, identity.Provider)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("OAUTH_FAILED", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"user":  user,
		"token": token,
	}))
}

// ForgotPassword always answers the same way so callers cannot probe
// which emails are registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := h.authService.ForgotPassword(strings.TrimSpace(req.Email)); err != nil {
		log.Printf("forgot password failed for %s: %v", req.Email, err)
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"message": "If the email is registered, a reset code has been sent",
	}))
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := h.authService.VerifyOTP(req.Email, req.OTP); err != nil {
		errorResponse := utils.CreateErrorResponse("INVALID_OTP", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"message": "OTP verified",
	}))
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := h.authService.ResetPassword(req.Email, req.OTP, req.NewPassword); err != nil {
		errorResponse := utils.CreateErrorResponse("RESET_FAILED", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"message": "Password has been reset",
	}))
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("NOT_FOUND", "User not found")
		c.JSON(http.StatusNotFound, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(user))
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("VALIDATION_ERROR", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	user, err := h.authService.UpdateProfile(c.GetString("user_id"), req)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("UPDATE_FAILED", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(user))
}
