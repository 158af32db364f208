package services

import (
	"context"
	"fmt"
	"log"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
)

type jobService struct {
	jobRepo storage.JobRepository
}

// NewJobService creates a new instance of JobService.
func NewJobService(jobRepo storage.JobRepository) JobService {
	return &jobService{jobRepo: jobRepo}
}

// CreateJob creates a new job posting owned by the requesting employer.
func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMax < *req.SalaryMin {
		return nil, fmt.Errorf("%w: salary_max must not be below salary_min", ErrValidation)
	}

	job, err := s.jobRepo.Create(ctx, req)
	if err != nil {
		log.Printf("CreateJob: Error creating job for employer %s: %v", req.EmployerID, err)
		return nil, mapRepoError(err, "creating job")
	}
	return job, nil
}

// GetJobByID retrieves a job by its id.
func (s *jobService) GetJobByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s", id))
	}
	return job, nil
}

// UpdateJob updates a job owned by the requesting employer. A missing job and
// an ownership mismatch both come back as ErrNotFound.
func (s *jobService) UpdateJob(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMax < *req.SalaryMin {
		return nil, fmt.Errorf("%w: salary_max must not be below salary_min", ErrValidation)
	}

	job, err := s.jobRepo.Update(ctx, req)
	if err != nil {
		log.Printf("UpdateJob: Error updating job %s: %v", req.ID, err)
		return nil, mapRepoError(err, "updating job")
	}
	return job, nil
}

// DeleteJob removes a job owned by the requesting employer.
func (s *jobService) DeleteJob(ctx context.Context, id, employerID uuid.UUID) error {
	if err := s.jobRepo.Delete(ctx, id, employerID); err != nil {
		log.Printf("DeleteJob: Error deleting job %s: %v", id, err)
		return mapRepoError(err, "deleting job")
	}
	log.Printf("Job %s deleted successfully by employer %s", id, employerID)
	return nil
}

// CloseJob stops a job from accepting new applications. Closing an already
// closed job is rejected as an invalid state.
func (s *jobService) CloseJob(ctx context.Context, id, employerID uuid.UUID) (*models.Job, error) {
	return s.setStatus(ctx, id, employerID, models.JobStatusClosed)
}

// ReopenJob makes a closed or draft job active again.
func (s *jobService) ReopenJob(ctx context.Context, id, employerID uuid.UUID) (*models.Job, error) {
	return s.setStatus(ctx, id, employerID, models.JobStatusActive)
}

func (s *jobService) setStatus(ctx context.Context, id, employerID uuid.UUID, status models.JobStatus) (*models.Job, error) {
	job, err := s.jobRepo.GetByIDAndEmployer(ctx, id, employerID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s for status change", id))
	}
	if job.Status == status {
		return nil, fmt.Errorf("%w: job is already %s", ErrInvalidState, status)
	}

	updated, err := s.jobRepo.UpdateStatus(ctx, id, employerID, status)
	if err != nil {
		log.Printf("setStatus: Error setting job %s to %s: %v", id, status, err)
		return nil, mapRepoError(err, "updating job status")
	}
	return updated, nil
}

// SearchJobs returns a page of active jobs matching the filters.
func (s *jobService) SearchJobs(ctx context.Context, req *dto.SearchJobsRequest) ([]models.Job, int, error) {
	applyListDefaults(&req.Page, &req.Limit)

	jobs, total, err := s.jobRepo.Search(ctx, req)
	if err != nil {
		log.Printf("SearchJobs: Error searching jobs: %v", err)
		return nil, 0, mapRepoError(err, "searching jobs")
	}
	return jobs, total, nil
}

// ListJobsByEmployer returns a page of the employer's own jobs, any status.
func (s *jobService) ListJobsByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, int, error) {
	applyListDefaults(&req.Page, &req.Limit)

	jobs, total, err := s.jobRepo.ListByEmployer(ctx, req)
	if err != nil {
		log.Printf("ListJobsByEmployer: Error listing jobs for employer %s: %v", req.EmployerID, err)
		return nil, 0, mapRepoError(err, "listing employer jobs")
	}
	return jobs, total, nil
}
