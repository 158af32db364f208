package storage

import (
	"context"

	"job-board-api/internal/models"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// JobRepository defines the interface for job data operations.
type JobRepository interface {
	Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	// GetByIDAndEmployer scopes the lookup by owner so a miss and an ownership
	// mismatch are indistinguishable to the caller.
	GetByIDAndEmployer(ctx context.Context, id, employerID uuid.UUID) (*models.Job, error)
	Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error)
	UpdateStatus(ctx context.Context, id, employerID uuid.UUID, status models.JobStatus) (*models.Job, error)
	Delete(ctx context.Context, id, employerID uuid.UUID) error
	Search(ctx context.Context, req *dto.SearchJobsRequest) ([]models.Job, int, error)
	ListByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, int, error)
	PushApplication(ctx context.Context, jobID, applicationID uuid.UUID) error
	PullApplication(ctx context.Context, jobID, applicationID uuid.UUID) error
	WithTx(tx pgx.Tx) JobRepository
}

// ApplicationRepository defines the interface for application data operations.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	GetByIDAndEmployer(ctx context.Context, id, employerID uuid.UUID) (*models.Application, error)
	GetByIDAndCandidate(ctx context.Context, id, candidateID uuid.UUID) (*models.Application, error)
	GetByJobAndCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (*models.Application, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusData) (*models.Application, error)
	ListByCandidate(ctx context.Context, req *dto.ListApplicationsByCandidateRequest) ([]models.Application, int, error)
	ListByEmployer(ctx context.Context, req *dto.ListApplicationsByEmployerRequest) ([]models.Application, int, error)
	StatsByEmployer(ctx context.Context, employerID uuid.UUID) (*models.ApplicationStats, error)
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx pgx.Tx) ApplicationRepository
}
