// internal/api/routes/job_routes.go
package routes

import (
	"job-board-api/internal/api/handlers"
	"job-board-api/internal/api/middleware"
	"job-board-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to job postings. Search and
// single-job reads are public; mutations require the employer role and
// applying requires the candidate role.
func RegisterJobRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api/v1)
	jobHandler handlers.JobHandlerInterface, // Use interface
	applicationHandler handlers.ApplicationHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", jobHandler.SearchJobs)     // Public search over active jobs
		jobs.GET("/:id", jobHandler.GetJobByID) // Public single-job read

		employerOnly := middleware.RequireRole(models.RoleEmployer, models.RoleAdmin)
		jobs.POST("", authMiddleware, employerOnly, jobHandler.CreateJob)
		jobs.GET("/mine", authMiddleware, employerOnly, jobHandler.ListMyJobs)
		jobs.PUT("/:id", authMiddleware, employerOnly, jobHandler.UpdateJob)
		jobs.DELETE("/:id", authMiddleware, employerOnly, jobHandler.DeleteJob)
		jobs.POST("/:id/close", authMiddleware, employerOnly, jobHandler.CloseJob)
		jobs.POST("/:id/reopen", authMiddleware, employerOnly, jobHandler.ReopenJob)

		candidateOnly := middleware.RequireRole(models.RoleCandidate)
		jobs.POST("/:id/apply", authMiddleware, candidateOnly, applicationHandler.ApplyToJob)
	}
}
