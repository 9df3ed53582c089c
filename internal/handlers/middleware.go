package handlers

import (
	"net/http"
	"strings"

	"agrisoil-backend/internal/services"
	"agrisoil-backend/utils"

	"github.com/gin-gonic/gin"
)

// RequireAuth validates the Bearer token and stores the caller's
// identity on the request context.
func RequireAuth(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorResponse := utils.CreateErrorResponse("UNAUTHORIZED", "Authorization header is required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse)
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			errorResponse := utils.CreateErrorResponse("UNAUTHORIZED", "Authorization header must be a Bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse)
			return
		}

		claims, err := jwtService.VerifyToken(tokenString)
		if err != nil {
			errorResponse := utils.CreateErrorResponse("UNAUTHORIZED", "Invalid or expired token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("is_admin", claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			errorResponse := utils.CreateErrorResponse("FORBIDDEN", "Admin access required")
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse)
			return
		}
		c.Next()
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
