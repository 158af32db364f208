package dto

import (
	"time"

	"job-board-api/internal/models"

	"github.com/google/uuid"
)

// --- Application Request DTOs ---

// ApplyToJobRequest defines the payload for a candidate applying to a job.
// JobID comes from the path and CandidateID from the auth context.
type ApplyToJobRequest struct {
	JobID          uuid.UUID           `json:"-"`
	CandidateID    uuid.UUID           `json:"-"`
	CoverLetter    string              `json:"cover_letter" validate:"required"`
	ResumeURL      string              `json:"resume_url" validate:"required"`
	ExpectedSalary *float64            `json:"expected_salary,omitempty" validate:"omitempty,gt=0"`
	SalaryCurrency string              `json:"salary_currency,omitempty" validate:"omitempty,len=3"`
	Availability   models.Availability `json:"availability,omitempty" validate:"omitempty,oneof=immediate two_weeks one_month negotiable"`
	CandidateNotes string              `json:"candidate_notes,omitempty"`
	Mobile         string              `json:"mobile,omitempty"`
	Location       string              `json:"location,omitempty"`
}

// UpdateApplicationStatusRequest defines the payload for an employer moving an
// application through the review workflow.
type UpdateApplicationStatusRequest struct {
	ID            uuid.UUID                `json:"-" validate:"required"`
	EmployerID    uuid.UUID                `json:"-"`
	Status        models.ApplicationStatus `json:"status" validate:"required,oneof=pending reviewing shortlisted accepted rejected"`
	EmployerNotes *string                  `json:"employer_notes,omitempty"`
}

// UpdateApplicationStatusData carries the repository-level status update,
// assembled by the service after the transition has been validated.
type UpdateApplicationStatusData struct {
	ID            uuid.UUID
	Status        models.ApplicationStatus
	EmployerNotes *string
	ReviewedAt    *time.Time
}

// GetApplicationByIDRequest defines a role-scoped application lookup.
type GetApplicationByIDRequest struct {
	ID            uuid.UUID   `json:"-" validate:"required"`
	RequesterID   uuid.UUID   `json:"-"`
	RequesterRole models.Role `json:"-"`
}

// ListApplicationsByCandidateRequest defines parameters for a candidate listing
// their own applications.
type ListApplicationsByCandidateRequest struct {
	CandidateID uuid.UUID                 `json:"-" validate:"required"`
	Status      *models.ApplicationStatus `form:"status" validate:"omitempty,oneof=pending reviewing shortlisted accepted rejected"`
	JobID       *uuid.UUID                `form:"job_id"`
	Page        int                       `form:"page,default=1" validate:"omitempty,gte=1"`
	Limit       int                       `form:"limit,default=10" validate:"omitempty,gte=1,lte=100"`
}

// ListApplicationsByEmployerRequest defines parameters for an employer listing
// applications to their jobs.
type ListApplicationsByEmployerRequest struct {
	EmployerID  uuid.UUID                 `json:"-" validate:"required"`
	Status      *models.ApplicationStatus `form:"status" validate:"omitempty,oneof=pending reviewing shortlisted accepted rejected"`
	JobID       *uuid.UUID                `form:"job_id"`
	CandidateID *uuid.UUID                `form:"candidate_id"`
	Page        int                       `form:"page,default=1" validate:"omitempty,gte=1"`
	Limit       int                       `form:"limit,default=10" validate:"omitempty,gte=1,lte=100"`
}

// WithdrawApplicationRequest defines the payload for a candidate withdrawing a
// pending application.
type WithdrawApplicationRequest struct {
	ID          uuid.UUID `json:"-" validate:"required"`
	CandidateID uuid.UUID `json:"-"`
}

// --- Application Response DTOs ---

// ApplicationResponse defines the standard application data returned to the client.
type ApplicationResponse struct {
	ID             uuid.UUID                `json:"id"`
	JobID          uuid.UUID                `json:"job_id"`
	CandidateID    uuid.UUID                `json:"candidate_id"`
	EmployerID     uuid.UUID                `json:"employer_id"`
	Status         models.ApplicationStatus `json:"status"`
	CoverLetter    string                   `json:"cover_letter"`
	ResumeURL      string                   `json:"resume_url"`
	ExpectedSalary *float64                 `json:"expected_salary,omitempty"`
	SalaryCurrency string                   `json:"salary_currency,omitempty"`
	Availability   models.Availability      `json:"availability"`
	CandidateNotes string                   `json:"candidate_notes,omitempty"`
	EmployerNotes  string                   `json:"employer_notes,omitempty"`
	Mobile         string                   `json:"mobile,omitempty"`
	Location       string                   `json:"location,omitempty"`
	AppliedAt      time.Time                `json:"applied_at"`
	ReviewedAt     *time.Time               `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// ApplicationListResponse wraps a page of applications with the filtered total.
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}

// ApplicationStatsResponse mirrors models.ApplicationStats for the employer
// dashboard.
type ApplicationStatsResponse struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Reviewing   int `json:"reviewing"`
	Shortlisted int `json:"shortlisted"`
	Rejected    int `json:"rejected"`
	Accepted    int `json:"accepted"`
}
