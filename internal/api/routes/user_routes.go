// internal/api/routes/user_routes.go
package routes

import (
	"job-board-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account and session routes. Only /me requires
// authentication.
func RegisterAuthRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api/v1)
	authHandler handlers.AuthHandlerInterface, // Use interface
	authMiddleware gin.HandlerFunc,
) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authMiddleware, authHandler.GetMe)
	}
}
