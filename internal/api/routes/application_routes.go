// internal/api/routes/application_routes.go
package routes

import (
	"job-board-api/internal/api/handlers"
	"job-board-api/internal/api/middleware"
	"job-board-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers all routes related to applications.
// Every application route requires authentication; role middleware narrows
// candidate-only and employer-only endpoints.
func RegisterApplicationRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api/v1)
	applicationHandler handlers.ApplicationHandlerInterface, // Use interface
	authMiddleware gin.HandlerFunc,
) {
	apps := rg.Group("/applications")
	apps.Use(authMiddleware)
	{
		candidateOnly := middleware.RequireRole(models.RoleCandidate)
		employerOnly := middleware.RequireRole(models.RoleEmployer, models.RoleAdmin)

		apps.GET("/mine", candidateOnly, applicationHandler.ListMyApplications)
		apps.GET("/received", employerOnly, applicationHandler.ListReceivedApplications)
		apps.GET("/stats", employerOnly, applicationHandler.GetApplicationStats)
		apps.GET("/:id", applicationHandler.GetApplicationByID)
		apps.PATCH("/:id/status", employerOnly, applicationHandler.UpdateApplicationStatus)
		apps.DELETE("/:id", candidateOnly, applicationHandler.WithdrawApplication)
	}
}
