package handlers

import (
	"context"
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

// JobHandler holds dependencies for job posting operations.
type JobHandler struct {
	service   services.JobService
	validator *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate) *JobHandler {
	return &JobHandler{
		service:   service,
		validator: validate,
	}
}

// CreateJob godoc
//	@Summary		Create a job posting
//	@Description	Creates a new active job owned by the authenticated employer.
//	@Tags			jobs
//	@Accept			json
//	@Produce		json
//	@Param			job	body		dto.CreateJobRequest	true	"Job details"
//	@Success		201	{object}	dto.JobResponse			"Job created successfully"
//	@Failure		400	{object}	map[string]string		"Validation error"
//	@Failure		401	{object}	map[string]string		"Unauthorized"
//	@Failure		403	{object}	map[string]string		"Forbidden - requires employer role"
//	@Failure		500	{object}	map[string]string		"Internal Server Error"
//	@Router			/jobs [post]
//	@Security		BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("CreateJob: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.EmployerID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": FormatValidationErrors(err)})
		return
	}

	job, err := h.service.CreateJob(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			log.Printf("CreateJob: Error creating job: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		}
		return
	}

	c.JSON(http.StatusCreated, MapJobModelToJobResponse(job))
}

// GetJobByID godoc
//	@Summary		Get a job by ID
//	@Description	Retrieves a single job posting. Publicly accessible.
//	@Tags			jobs
//	@Produce		json
//	@Param			id	path		string				true	"Job ID"	Format(uuid)
//	@Success		200	{object}	dto.JobResponse		"Successfully retrieved job"
//	@Failure		400	{object}	map[string]string	"Invalid ID format"
//	@Failure		404	{object}	map[string]string	"Job not found"
//	@Failure		500	{object}	map[string]string	"Internal Server Error"
//	@Router			/jobs/{id} [get]
func (h *JobHandler) GetJobByID(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := h.service.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			log.Printf("GetJobByID: Error fetching job %s: %v", jobID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job"})
		}
		return
	}

	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// UpdateJob godoc
//	@Summary		Update a job posting
//	@Description	Updates fields on a job owned by the authenticated employer.
//	@Tags			jobs
//	@Accept			json
//	@Produce		json
//	@Param			id	path		string					true	"Job ID"	Format(uuid)
//	@Param			job	body		dto.UpdateJobRequest	true	"Fields to update"
//	@Success		200	{object}	dto.JobResponse			"Job updated successfully"
//	@Failure		400	{object}	map[string]string		"Validation error"
//	@Failure		401	{object}	map[string]string		"Unauthorized"
//	@Failure		404	{object}	map[string]string		"Job not found"
//	@Failure		500	{object}	map[string]string		"Internal Server Error"
//	@Router			/jobs/{id} [put]
//	@Security		BearerAuth
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("UpdateJob: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.ID = jobID
	req.EmployerID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": FormatValidationErrors(err)})
		return
	}

	job, err := h.service.UpdateJob(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			log.Printf("UpdateJob: Error updating job %s: %v", jobID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
		}
		return
	}

	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// DeleteJob godoc
//	@Summary		Delete a job posting
//	@Description	Removes a job owned by the authenticated employer.
//	@Tags			jobs
//	@Produce		json
//	@Param			id	path	string	true	"Job ID"	Format(uuid)
//	@Success		204	"Job deleted"
//	@Failure		400	{object}	map[string]string	"Invalid ID format"
//	@Failure		401	{object}	map[string]string	"Unauthorized"
//	@Failure		404	{object}	map[string]string	"Job not found"
//	@Failure		500	{object}	map[string]string	"Internal Server Error"
//	@Router			/jobs/{id} [delete]
//	@Security		BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("DeleteJob: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	if err := h.service.DeleteJob(c.Request.Context(), jobID, userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			log.Printf("DeleteJob: Error deleting job %s: %v", jobID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// CloseJob godoc
//	@Summary		Close a job posting
//	@Description	Stops a job from accepting new applications. Existing applications are unaffected.
//	@Tags			jobs
//	@Produce		json
//	@Param			id	path		string				true	"Job ID"	Format(uuid)
//	@Success		200	{object}	dto.JobResponse		"Job closed"
//	@Failure		400	{object}	map[string]string	"Invalid ID format"
//	@Failure		401	{object}	map[string]string	"Unauthorized"
//	@Failure		404	{object}	map[string]string	"Job not found"
//	@Failure		409	{object}	map[string]string	"Job already closed"
//	@Failure		500	{object}	map[string]string	"Internal Server Error"
//	@Router			/jobs/{id}/close [post]
//	@Security		BearerAuth
func (h *JobHandler) CloseJob(c *gin.Context) {
	h.setJobStatus(c, "CloseJob", h.service.CloseJob)
}

// ReopenJob godoc
//	@Summary		Reopen a job posting
//	@Description	Makes a closed or draft job active again.
//	@Tags			jobs
//	@Produce		json
//	@Param			id	path		string				true	"Job ID"	Format(uuid)
//	@Success		200	{object}	dto.JobResponse		"Job reopened"
//	@Failure		400	{object}	map[string]string	"Invalid ID format"
//	@Failure		401	{object}	map[string]string	"Unauthorized"
//	@Failure		404	{object}	map[string]string	"Job not found"
//	@Failure		409	{object}	map[string]string	"Job already active"
//	@Failure		500	{object}	map[string]string	"Internal Server Error"
//	@Router			/jobs/{id}/reopen [post]
//	@Security		BearerAuth
func (h *JobHandler) ReopenJob(c *gin.Context) {
	h.setJobStatus(c, "ReopenJob", h.service.ReopenJob)
}

func (h *JobHandler) setJobStatus(c *gin.Context, op string, fn func(ctx context.Context, id, employerID uuid.UUID) (*models.Job, error)) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("%s: Error getting user ID from context: %v", op, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := fn(c.Request.Context(), jobID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else if errors.Is(err, services.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			log.Printf("%s: Error changing status of job %s: %v", op, jobID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change job status"})
		}
		return
	}

	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// SearchJobs godoc
//	@Summary		Search jobs
//	@Description	Returns a page of active jobs matching the filters. Publicly accessible.
//	@Tags			jobs
//	@Produce		json
//	@Param			q			query		string				false	"Full-text query over title, description and skills"
//	@Param			location	query		string				false	"Location filter (substring match)"
//	@Param			type		query		string				false	"Job type"			Enums(full_time, part_time, contract, internship)
//	@Param			experience	query		string				false	"Experience level"	Enums(entry, junior, mid, senior, lead)
//	@Param			remote		query		bool				false	"Remote only"
//	@Param			page		query		int					false	"Page number"	default(1)
//	@Param			limit		query		int					false	"Page size"		default(10)
//	@Success		200			{object}	dto.JobListResponse	"Matching jobs"
//	@Failure		400			{object}	map[string]string	"Validation error"
//	@Failure		500			{object}	map[string]string	"Internal Server Error"
//	@Router			/jobs [get]
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dto.SearchJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": FormatValidationErrors(err)})
		return
	}

	jobs, total, err := h.service.SearchJobs(c.Request.Context(), &req)
	if err != nil {
		log.Printf("SearchJobs: Error searching jobs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search jobs"})
		return
	}

	resp := dto.JobListResponse{
		Jobs:  make([]dto.JobResponse, 0, len(jobs)),
		Total: total,
		Page:  req.Page,
		Limit: req.Limit,
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, MapJobModelToJobResponse(&jobs[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// ListMyJobs godoc
//	@Summary		List my job postings
//	@Description	Returns a page of the authenticated employer's jobs, any status.
//	@Tags			jobs
//	@Produce		json
//	@Param			status	query		string				false	"Status filter"	Enums(active, closed, draft)
//	@Param			page	query		int					false	"Page number"	default(1)
//	@Param			limit	query		int					false	"Page size"		default(10)
//	@Success		200		{object}	dto.JobListResponse	"Employer's jobs"
//	@Failure		400		{object}	map[string]string	"Validation error"
//	@Failure		401		{object}	map[string]string	"Unauthorized"
//	@Failure		500		{object}	map[string]string	"Internal Server Error"
//	@Router			/jobs/mine [get]
//	@Security		BearerAuth
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("ListMyJobs: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListJobsByEmployerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	req.EmployerID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": FormatValidationErrors(err)})
		return
	}

	jobs, total, err := h.service.ListJobsByEmployer(c.Request.Context(), &req)
	if err != nil {
		log.Printf("ListMyJobs: Error listing jobs for employer %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}

	resp := dto.JobListResponse{
		Jobs:  make([]dto.JobResponse, 0, len(jobs)),
		Total: total,
		Page:  req.Page,
		Limit: req.Limit,
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, MapJobModelToJobResponse(&jobs[i]))
	}

	c.JSON(http.StatusOK, resp)
}
