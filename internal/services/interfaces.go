package services

import (
	"context"

	"job-board-api/internal/models"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
)

// AuthService defines the interface for account and token business logic.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, string, error) // Returns user, access token, refresh token
	Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// JobService defines the interface for job-related business logic.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	UpdateJob(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, id, employerID uuid.UUID) error
	CloseJob(ctx context.Context, id, employerID uuid.UUID) (*models.Job, error)
	ReopenJob(ctx context.Context, id, employerID uuid.UUID) (*models.Job, error)
	SearchJobs(ctx context.Context, req *dto.SearchJobsRequest) ([]models.Job, int, error)
	ListJobsByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, int, error)
}

// ApplicationService defines the interface for the application lifecycle.
type ApplicationService interface {
	Apply(ctx context.Context, req *dto.ApplyToJobRequest) (*models.Application, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	GetApplicationByID(ctx context.Context, req *dto.GetApplicationByIDRequest) (*models.Application, error)
	ListByCandidate(ctx context.Context, req *dto.ListApplicationsByCandidateRequest) ([]models.Application, int, error)
	ListByEmployer(ctx context.Context, req *dto.ListApplicationsByEmployerRequest) ([]models.Application, int, error)
	Stats(ctx context.Context, employerID uuid.UUID) (*models.ApplicationStats, error)
	Withdraw(ctx context.Context, req *dto.WithdrawApplicationRequest) (bool, error)
}

// NotificationService reacts to application status changes. Dispatch is
// best-effort: every failure is logged and swallowed so a notification can
// never undo a committed status change.
type NotificationService interface {
	Dispatch(ctx context.Context, status models.ApplicationStatus, candidate *models.User, job *models.Job, employer *models.User)
}
