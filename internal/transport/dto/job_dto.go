package dto

import (
	"time"

	"job-board-api/internal/models"

	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// CreateJobRequest defines the structure for creating a new job posting.
type CreateJobRequest struct {
	Title            string                 `json:"title" validate:"required,min=3,max=200"`
	Description      string                 `json:"description" validate:"required"`
	Requirements     []string               `json:"requirements,omitempty"`
	Responsibilities []string               `json:"responsibilities,omitempty"`
	Company          string                 `json:"company" validate:"required"`
	Location         string                 `json:"location" validate:"required"`
	Type             models.JobType         `json:"type" validate:"required,oneof=full_time part_time contract internship"`
	Experience       models.ExperienceLevel `json:"experience" validate:"required,oneof=entry junior mid senior lead"`
	SalaryMin        *float64               `json:"salary_min,omitempty" validate:"omitempty,gt=0"`
	SalaryMax        *float64               `json:"salary_max,omitempty" validate:"omitempty,gt=0"`
	SalaryCurrency   string                 `json:"salary_currency,omitempty" validate:"omitempty,len=3"`
	Skills           []string               `json:"skills,omitempty"`
	Benefits         []string               `json:"benefits,omitempty"`
	Deadline         *time.Time             `json:"deadline,omitempty"`
	Remote           bool                   `json:"remote"`
	EmployerID       uuid.UUID              `json:"-"` // Set internally by handler from auth context
}

// UpdateJobRequest defines the structure for updating a job. The lookup is
// scoped by (ID, EmployerID); nil fields are left unchanged.
type UpdateJobRequest struct {
	ID               uuid.UUID               `json:"-" validate:"required"`
	EmployerID       uuid.UUID               `json:"-"`
	Title            *string                 `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description      *string                 `json:"description,omitempty"`
	Requirements     []string                `json:"requirements,omitempty"`
	Responsibilities []string                `json:"responsibilities,omitempty"`
	Location         *string                 `json:"location,omitempty"`
	Type             *models.JobType         `json:"type,omitempty" validate:"omitempty,oneof=full_time part_time contract internship"`
	Experience       *models.ExperienceLevel `json:"experience,omitempty" validate:"omitempty,oneof=entry junior mid senior lead"`
	SalaryMin        *float64                `json:"salary_min,omitempty" validate:"omitempty,gt=0"`
	SalaryMax        *float64                `json:"salary_max,omitempty" validate:"omitempty,gt=0"`
	SalaryCurrency   *string                 `json:"salary_currency,omitempty" validate:"omitempty,len=3"`
	Skills           []string                `json:"skills,omitempty"`
	Benefits         []string                `json:"benefits,omitempty"`
	Deadline         *time.Time              `json:"deadline,omitempty"`
	Remote           *bool                   `json:"remote,omitempty"`
}

// SearchJobsRequest defines parameters for the public job search. Only active
// jobs are matched.
type SearchJobsRequest struct {
	Query      *string                 `form:"q"`
	Location   *string                 `form:"location"`
	Type       *models.JobType         `form:"type" validate:"omitempty,oneof=full_time part_time contract internship"`
	Experience *models.ExperienceLevel `form:"experience" validate:"omitempty,oneof=entry junior mid senior lead"`
	Remote     *bool                   `form:"remote"`
	Page       int                     `form:"page,default=1" validate:"omitempty,gte=1"`
	Limit      int                     `form:"limit,default=10" validate:"omitempty,gte=1,lte=100"`
}

// ListJobsByEmployerRequest defines parameters for an employer listing their
// own postings.
type ListJobsByEmployerRequest struct {
	EmployerID uuid.UUID         `json:"-" validate:"required"`
	Status     *models.JobStatus `form:"status" validate:"omitempty,oneof=active closed draft"`
	Page       int               `form:"page,default=1" validate:"omitempty,gte=1"`
	Limit      int               `form:"limit,default=10" validate:"omitempty,gte=1,lte=100"`
}

// --- Job Response DTOs ---

// JobResponse defines the standard job data returned to the client.
type JobResponse struct {
	ID               uuid.UUID              `json:"id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Requirements     []string               `json:"requirements"`
	Responsibilities []string               `json:"responsibilities"`
	Company          string                 `json:"company"`
	Location         string                 `json:"location"`
	Type             models.JobType         `json:"type"`
	Experience       models.ExperienceLevel `json:"experience"`
	SalaryMin        *float64               `json:"salary_min,omitempty"`
	SalaryMax        *float64               `json:"salary_max,omitempty"`
	SalaryCurrency   string                 `json:"salary_currency,omitempty"`
	Skills           []string               `json:"skills"`
	Benefits         []string               `json:"benefits"`
	EmployerID       uuid.UUID              `json:"employer_id"`
	Status           models.JobStatus       `json:"status"`
	ApplicationCount int                    `json:"application_count"`
	Deadline         *time.Time             `json:"deadline,omitempty"`
	Remote           bool                   `json:"remote"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// JobListResponse wraps a page of jobs with the filtered total.
type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}
