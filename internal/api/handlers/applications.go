package handlers

import (
	"errors"
	"log"
	"net/http"

	"job-board-api/internal/api/middleware"
	"job-board-api/internal/models"
	"job-board-api/internal/services"
	"job-board-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ApplicationHandler holds dependencies for application lifecycle operations.
type ApplicationHandler struct {
	service   services.ApplicationService
	validator *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, validate *validator.Validate) *ApplicationHandler {
	return &ApplicationHandler{
		service:   service,
		validator: validate,
	}
}

// ApplyToJob godoc
//	@Summary		Apply for a job
//	@Description	Creates a pending application for the authenticated candidate against an active job.
//	@Tags			applications
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string					true	"Job ID to apply for"	Format(uuid)
//	@Param			application	body		dto.ApplyToJobRequest	true	"Application details"
//	@Success		201			{object}	dto.ApplicationResponse	"Application created successfully"
//	@Failure		400			{object}	map[string]string		"Validation error"
//	@Failure		401			{object}	map[string]string		"Unauthorized"
//	@Failure		404			{object}	map[string]string		"Job not found or not accepting applications"
//	@Failure		409			{object}	map[string]string		"Already applied to this job"
//	@Failure		500			{object}	map[string]string		"Internal Server Error"
//	@Router			/jobs/{id}/apply [post]
//	@Security		BearerAuth
func (h *ApplicationHandler) ApplyToJob(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("ApplyToJob: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dto.ApplyToJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.JobID = jobID
	req.CandidateID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": FormatValidationErrors(err)})
		return
	}

	application, err := h.service.Apply(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, services.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			log.Printf("ApplyToJob: Error applying to job %s: %v", jobID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply for job"})
		}
		return
	}

	c.JSON(http.StatusCreated, MapApplicationModelToResponse(application))
}

// GetApplicationByID godoc
//	@Summary		Get an application by ID
//	@Description	Retrieves one application. Candidates see their own, employers see applications to their jobs, admins see all.
//	@Tags			applications
//	@Produce		json
//	@Param			id	path		string					true	"Application ID"	Format(uuid)
//	@Success		200	{object}	dto.ApplicationResponse	"Successfully retrieved application"
//	@Failure		400	{object}	map[string]string		"Invalid ID format"
//	@Failure		401	{object}	map[string]string		"Unauthorized"
//	@Failure		404	{object}	map[string]string		"Application not found"
//	@Failure		500	{object}	map[string]string		"Internal Server Error"
//	@Router			/applications/{id} [get]
//	@Security		BearerAuth
func (h *ApplicationHandler) GetApplicationByID(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("GetApplicationByID: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	role, err := middleware.GetRoleFromContext(c)
	if err != nil {
		log.Printf("GetApplicationByID: Error getting role from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return
	}

	req := dto.GetApplicationByIDRequest{
		ID:            appID,
		RequesterID:   userID,
		RequesterRole: role,
	}

	application, err := h.service.GetApplicationByID(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			log.Printf("GetApplicationByID: Error fetching application %s: %v", appID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch application"})
		}
		return
	}

	c.JSON(http.StatusOK, MapApplicationModelToResponse(application))
}

// UpdateApplicationStatus godoc
//	@Summary		Update an application's status
//	@Description	Moves an application through the review workflow. Only the employer owning the job may do this.
//	@Tags			applications
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Application ID"	Format(uuid)
//	@Param			status	body		dto.UpdateApplicationStatusRequest	true	"New status and optional notes"
//	@Success		200		{object}	dto.ApplicationResponse				"Application updated"
//	@Failure		400		{object}	map[string]string					"Validation error"
//	@Failure		401		{object}	map[string]string					"Unauthorized"
//	@Failure		404		{object}	map[string]string					"Application not found"
//	@Failure		409		{object}	map[string]string					"Transition not allowed"
//	@Failure		500		{object}	map[string]string					"Internal Server Error"
//	@Router			/applications/{id}/status [patch]
//	@Security		BearerAuth
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("UpdateApplicationStatus: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.ID = appID
	req.EmployerID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": FormatValidationErrors(err)})
		return
	}

	application, err := h.service.UpdateStatus(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else if errors.Is(err, services.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			log.Printf("UpdateApplicationStatus: Error updating application %s: %v", appID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		}
		return
	}

	c.JSON(http.StatusOK, MapApplicationModelToResponse(application))
}

// ListMyApplications godoc
//	@Summary		List my applications
//	@Description	Returns a page of the authenticated candidate's applications.
//	@Tags			applications
//	@Produce		json
//	@Param			status	query		string						false	"Status filter"	Enums(pending, reviewing, shortlisted, accepted, rejected)
//	@Param			job_id	query		string						false	"Job filter"	Format(uuid)
//	@Param			page	query		int							false	"Page number"	default(1)
//	@Param			limit	query		int							false	"Page size"		default(10)
//	@Success		200		{object}	dto.ApplicationListResponse	"Candidate's applications"
//	@Failure		400		{object}	map[string]string			"Validation error"
//	@Failure		401		{object}	map[string]string			"Unauthorized"
//	@Failure		500		{object}	map[string]string			"Internal Server Error"
//	@Router			/applications/mine [get]
//	@Security		BearerAuth
func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("ListMyApplications: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListApplicationsByCandidateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	req.CandidateID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": FormatValidationErrors(err)})
		return
	}

	apps, total, err := h.service.ListByCandidate(c.Request.Context(), &req)
	if err != nil {
		log.Printf("ListMyApplications: Error listing applications for candidate %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list applications"})
		return
	}

	c.JSON(http.StatusOK, buildApplicationListResponse(apps, total, req.Page, req.Limit))
}

// ListReceivedApplications godoc
//	@Summary		List received applications
//	@Description	Returns a page of applications to the authenticated employer's jobs.
//	@Tags			applications
//	@Produce		json
//	@Param			status			query		string						false	"Status filter"		Enums(pending, reviewing, shortlisted, accepted, rejected)
//	@Param			job_id			query		string						false	"Job filter"		Format(uuid)
//	@Param			candidate_id	query		string						false	"Candidate filter"	Format(uuid)
//	@Param			page			query		int							false	"Page number"		default(1)
//	@Param			limit			query		int							false	"Page size"			default(10)
//	@Success		200				{object}	dto.ApplicationListResponse	"Received applications"
//	@Failure		400				{object}	map[string]string			"Validation error"
//	@Failure		401				{object}	map[string]string			"Unauthorized"
//	@Failure		500				{object}	map[string]string			"Internal Server Error"
//	@Router			/applications/received [get]
//	@Security		BearerAuth
func (h *ApplicationHandler) ListReceivedApplications(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("ListReceivedApplications: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListApplicationsByEmployerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	req.EmployerID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": FormatValidationErrors(err)})
		return
	}

	apps, total, err := h.service.ListByEmployer(c.Request.Context(), &req)
	if err != nil {
		log.Printf("ListReceivedApplications: Error listing applications for employer %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list applications"})
		return
	}

	c.JSON(http.StatusOK, buildApplicationListResponse(apps, total, req.Page, req.Limit))
}

// GetApplicationStats godoc
//	@Summary		Get application statistics
//	@Description	Returns per-status counts over all applications to the authenticated employer's jobs.
//	@Tags			applications
//	@Produce		json
//	@Success		200	{object}	dto.ApplicationStatsResponse	"Application counts"
//	@Failure		401	{object}	map[string]string				"Unauthorized"
//	@Failure		500	{object}	map[string]string				"Internal Server Error"
//	@Router			/applications/stats [get]
//	@Security		BearerAuth
func (h *ApplicationHandler) GetApplicationStats(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("GetApplicationStats: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), userID)
	if err != nil {
		log.Printf("GetApplicationStats: Error computing stats for employer %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, MapStatsModelToResponse(stats))
}

// WithdrawApplication godoc
//	@Summary		Withdraw an application
//	@Description	Deletes the authenticated candidate's pending application. Reports whether anything was withdrawn.
//	@Tags			applications
//	@Produce		json
//	@Param			id	path		string				true	"Application ID"	Format(uuid)
//	@Success		200	{object}	map[string]bool		"Withdrawal outcome"
//	@Failure		400	{object}	map[string]string	"Invalid ID format"
//	@Failure		401	{object}	map[string]string	"Unauthorized"
//	@Failure		500	{object}	map[string]string	"Internal Server Error"
//	@Router			/applications/{id} [delete]
//	@Security		BearerAuth
func (h *ApplicationHandler) WithdrawApplication(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("WithdrawApplication: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return
	}

	req := dto.WithdrawApplicationRequest{
		ID:          appID,
		CandidateID: userID,
	}

	withdrawn, err := h.service.Withdraw(c.Request.Context(), &req)
	if err != nil {
		log.Printf("WithdrawApplication: Error withdrawing application %s: %v", appID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to withdraw application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"withdrawn": withdrawn})
}

func buildApplicationListResponse(apps []models.Application, total, page, limit int) dto.ApplicationListResponse {
	resp := dto.ApplicationListResponse{
		Applications: make([]dto.ApplicationResponse, 0, len(apps)),
		Total:        total,
		Page:         page,
		Limit:        limit,
	}
	for i := range apps {
		resp.Applications = append(resp.Applications, MapApplicationModelToResponse(&apps[i]))
	}
	return resp
}
