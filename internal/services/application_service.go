package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxBeginner starts database transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type applicationService struct {
	db       TxBeginner
	appRepo  storage.ApplicationRepository
	jobRepo  storage.JobRepository
	userRepo storage.UserRepository
	notifier NotificationService
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(db TxBeginner, appRepo storage.ApplicationRepository, jobRepo storage.JobRepository, userRepo storage.UserRepository, notifier NotificationService) ApplicationService {
	return &applicationService{
		db:       db,
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Apply creates a new application for a candidate against an active job.
func (s *applicationService) Apply(ctx context.Context, req *dto.ApplyToJobRequest) (*models.Application, error) {
	// 1. Fetch the Job to check its state
	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s for application", req.JobID))
	}
	if job.Status != models.JobStatusActive {
		log.Printf("Apply: Attempt to apply to non-active job %s (Status: %s)", req.JobID, job.Status)
		return nil, fmt.Errorf("%w: job is not accepting applications", ErrNotFound)
	}

	// 2. Advisory duplicate check; the unique index on (job_id, candidate_id)
	// is the authoritative guard under concurrent submissions.
	if _, err := s.appRepo.GetByJobAndCandidate(ctx, req.JobID, req.CandidateID); err == nil {
		log.Printf("Apply: Candidate %s already applied to job %s", req.CandidateID, req.JobID)
		return nil, fmt.Errorf("%w: already applied to this job", ErrConflict)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, mapRepoError(err, "checking for existing application")
	}

	// 3. Load the candidate; profile contact fields win over the payload.
	candidate, err := s.userRepo.GetByID(ctx, req.CandidateID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Apply: Candidate %s not found", req.CandidateID)
			return nil, fmt.Errorf("%w: candidate not found", ErrNotFound)
		}
		return nil, mapRepoError(err, "fetching candidate for application")
	}

	mobile := candidate.Mobile
	if mobile == "" {
		mobile = req.Mobile
	}
	location := candidate.Location
	if location == "" {
		location = req.Location
	}

	availability := req.Availability
	if availability == "" {
		availability = models.AvailabilityNegotiable
	}

	app := &models.Application{
		JobID:          job.ID,
		CandidateID:    candidate.ID,
		EmployerID:     job.EmployerID, // Denormalized for ownership-scoped lookups
		Status:         models.ApplicationStatusPending,
		CoverLetter:    req.CoverLetter,
		ResumeURL:      req.ResumeURL,
		ExpectedSalary: req.ExpectedSalary,
		SalaryCurrency: req.SalaryCurrency,
		Availability:   availability,
		CandidateNotes: req.CandidateNotes,
		Mobile:         mobile,
		Location:       location,
		AppliedAt:      time.Now(),
	}

	created, err := s.appRepo.Create(ctx, app)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			// Lost the race against a concurrent duplicate submission.
			return nil, fmt.Errorf("%w: already applied to this job", ErrConflict)
		}
		log.Printf("Apply: Error creating application: %v", err)
		return nil, mapRepoError(err, "creating application")
	}

	// 4. Record the reference on the job. If this write fails the application
	// row already exists; the inconsistency is accepted and recoverable.
	if err := s.jobRepo.PushApplication(ctx, job.ID, created.ID); err != nil {
		log.Printf("Apply: Error pushing application %s onto job %s: %v", created.ID, job.ID, err)
		return nil, mapRepoError(err, "recording application on job")
	}

	return created, nil
}

// UpdateStatus moves an application through the review workflow on behalf of
// the owning employer. A missing application and an ownership mismatch both
// come back as ErrNotFound so existence is not leaked.
func (s *applicationService) UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	app, err := s.appRepo.GetByIDAndEmployer(ctx, req.ID, req.EmployerID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching application %s for status update", req.ID))
	}

	// Same-status updates are allowed so notes can be refreshed; everything
	// else must follow the workflow.
	if req.Status != app.Status && !app.Status.CanTransitionTo(req.Status) {
		log.Printf("UpdateStatus: Invalid transition for application %s: %s -> %s", app.ID, app.Status, req.Status)
		return nil, fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, app.Status, req.Status)
	}

	data := dto.UpdateApplicationStatusData{
		ID:            app.ID,
		Status:        req.Status,
		EmployerNotes: req.EmployerNotes,
	}
	if req.Status != models.ApplicationStatusPending {
		now := time.Now()
		data.ReviewedAt = &now
	}

	updated, err := s.appRepo.UpdateStatus(ctx, &data)
	if err != nil {
		log.Printf("UpdateStatus: Error updating application %s: %v", app.ID, err)
		return nil, mapRepoError(err, "updating application status")
	}

	s.notifyStatusChange(ctx, updated)

	return updated, nil
}

// notifyStatusChange hands terminal-ish transitions to the dispatcher. Every
// failure here is logged and swallowed; the status change is already committed.
func (s *applicationService) notifyStatusChange(ctx context.Context, app *models.Application) {
	switch app.Status {
	case models.ApplicationStatusAccepted, models.ApplicationStatusRejected, models.ApplicationStatusShortlisted:
	default:
		return
	}

	candidate, err := s.userRepo.GetByID(ctx, app.CandidateID)
	if err != nil {
		log.Printf("notifyStatusChange: Skipping notification for application %s: candidate lookup failed: %v", app.ID, err)
		return
	}
	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		log.Printf("notifyStatusChange: Skipping notification for application %s: job lookup failed: %v", app.ID, err)
		return
	}
	employer, err := s.userRepo.GetByID(ctx, app.EmployerID)
	if err != nil {
		log.Printf("notifyStatusChange: Skipping notification for application %s: employer lookup failed: %v", app.ID, err)
		return
	}

	s.notifier.Dispatch(ctx, app.Status, candidate, job, employer)
}

// GetApplicationByID retrieves an application scoped by the requester's role.
// Candidates see only their own applications, employers only applications to
// their jobs; admins are unrestricted. Ownership mismatches surface as
// ErrNotFound, never as a distinct forbidden signal.
func (s *applicationService) GetApplicationByID(ctx context.Context, req *dto.GetApplicationByIDRequest) (*models.Application, error) {
	var (
		app *models.Application
		err error
	)
	switch req.RequesterRole {
	case models.RoleCandidate:
		app, err = s.appRepo.GetByIDAndCandidate(ctx, req.ID, req.RequesterID)
	case models.RoleEmployer:
		app, err = s.appRepo.GetByIDAndEmployer(ctx, req.ID, req.RequesterID)
	default:
		app, err = s.appRepo.GetByID(ctx, req.ID)
	}
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching application %s", req.ID))
	}
	return app, nil
}

// ListByCandidate returns a page of the candidate's applications. Every
// returned row is re-checked against the candidate id after the fetch; a
// mismatch would mean a mis-scoped query, and the total is recomputed over the
// survivors.
func (s *applicationService) ListByCandidate(ctx context.Context, req *dto.ListApplicationsByCandidateRequest) ([]models.Application, int, error) {
	applyListDefaults(&req.Page, &req.Limit)

	apps, total, err := s.appRepo.ListByCandidate(ctx, req)
	if err != nil {
		log.Printf("ListByCandidate: Error listing applications for candidate %s: %v", req.CandidateID, err)
		return nil, 0, mapRepoError(err, "listing candidate applications")
	}

	valid := apps[:0]
	for _, app := range apps {
		if app.CandidateID != req.CandidateID {
			log.Printf("ListByCandidate: Discarding mis-scoped application %s (candidate %s, requested %s)", app.ID, app.CandidateID, req.CandidateID)
			continue
		}
		valid = append(valid, app)
	}
	if discarded := len(apps) - len(valid); discarded > 0 {
		total -= discarded
	}

	return valid, total, nil
}

// ListByEmployer returns a page of applications to the employer's jobs.
func (s *applicationService) ListByEmployer(ctx context.Context, req *dto.ListApplicationsByEmployerRequest) ([]models.Application, int, error) {
	applyListDefaults(&req.Page, &req.Limit)

	apps, total, err := s.appRepo.ListByEmployer(ctx, req)
	if err != nil {
		log.Printf("ListByEmployer: Error listing applications for employer %s: %v", req.EmployerID, err)
		return nil, 0, mapRepoError(err, "listing employer applications")
	}
	return apps, total, nil
}

// Stats returns the employer's per-status application counts.
func (s *applicationService) Stats(ctx context.Context, employerID uuid.UUID) (*models.ApplicationStats, error) {
	stats, err := s.appRepo.StatsByEmployer(ctx, employerID)
	if err != nil {
		log.Printf("Stats: Error computing stats for employer %s: %v", employerID, err)
		return nil, mapRepoError(err, "computing application stats")
	}
	return stats, nil
}

// Withdraw deletes the candidate's pending application and detaches it from
// the job's reference list. It reports false, with no distinction, when the
// application is missing, owned by someone else, or no longer pending.
func (s *applicationService) Withdraw(ctx context.Context, req *dto.WithdrawApplicationRequest) (bool, error) {
	app, err := s.appRepo.GetByIDAndCandidate(ctx, req.ID, req.CandidateID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, mapRepoError(err, fmt.Sprintf("fetching application %s for withdrawal", req.ID))
	}

	if app.Status != models.ApplicationStatusPending {
		log.Printf("Withdraw: Attempt to withdraw non-pending application %s (Status: %s)", app.ID, app.Status)
		return false, nil
	}

	// Detaching the job reference and deleting the row are two writes; run
	// them in one transaction so a failed delete cannot leave the job list
	// under-reporting.
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("Withdraw: Error beginning transaction: %v", err)
		return false, fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txJobRepo := s.jobRepo.WithTx(tx)
	txAppRepo := s.appRepo.WithTx(tx)

	if err := txJobRepo.PullApplication(ctx, app.JobID, app.ID); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Withdraw: Error pulling application %s from job %s: %v", app.ID, app.JobID, err)
			return false, mapRepoError(err, "detaching application from job")
		}
		// Job already gone; nothing to detach.
	}

	if err := txAppRepo.Delete(ctx, app.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		log.Printf("Withdraw: Error deleting application %s: %v", app.ID, err)
		return false, mapRepoError(err, "deleting application")
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Withdraw: Error committing transaction for application %s: %v", app.ID, err)
		return false, fmt.Errorf("internal error committing withdrawal: %w", err)
	}

	log.Printf("Application %s withdrawn successfully by candidate %s", app.ID, req.CandidateID)
	return true, nil
}

func applyListDefaults(page, limit *int) {
	if *page <= 0 {
		*page = 1
	}
	if *limit <= 0 {
		*limit = 10
	}
}
