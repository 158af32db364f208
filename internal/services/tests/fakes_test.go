package services_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"job-board-api/internal/mailer"
	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeTxBeginner hands out no-op transactions so the withdrawal flow can run
// against the in-memory repos.
type fakeTxBeginner struct {
	beginErr  error
	commitErr error
}

func (b *fakeTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return &fakeTx{commitErr: b.commitErr}, nil
}

type fakeTx struct {
	commitErr error
}

var _ pgx.Tx = (*fakeTx)(nil)

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *fakeTx) Commit(ctx context.Context) error          { return t.commitErr }
func (t *fakeTx) Rollback(ctx context.Context) error        { return nil }
func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *fakeTx) Conn() *pgx.Conn                                               { return nil }

// In-memory repository fakes. They implement the storage interfaces with maps
// and slices so service behavior can be tested without a database. Errors can
// be forced per method via the fail* fields.

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

var _ storage.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, storage.ErrDuplicateEmail
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	return r.add(user), nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

type fakeJobRepo struct {
	jobs     map[uuid.UUID]*models.Job
	failPush error
	failPull error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*models.Job)}
}

var _ storage.JobRepository = (*fakeJobRepo)(nil)

func (r *fakeJobRepo) add(job *models.Job) *models.Job {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.ApplicationIDs == nil {
		job.ApplicationIDs = []uuid.UUID{}
	}
	r.jobs[job.ID] = job
	return job
}

func (r *fakeJobRepo) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	now := time.Now()
	job := &models.Job{
		Title:          req.Title,
		Description:    req.Description,
		Company:        req.Company,
		Location:       req.Location,
		Type:           req.Type,
		Experience:     req.Experience,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		SalaryCurrency: req.SalaryCurrency,
		Skills:         req.Skills,
		EmployerID:     req.EmployerID,
		Status:         models.JobStatusActive,
		Remote:         req.Remote,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return r.add(job), nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return job, nil
}

func (r *fakeJobRepo) GetByIDAndEmployer(ctx context.Context, id, employerID uuid.UUID) (*models.Job, error) {
	job, ok := r.jobs[id]
	if !ok || job.EmployerID != employerID {
		return nil, storage.ErrNotFound
	}
	return job, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := r.GetByIDAndEmployer(ctx, req.ID, req.EmployerID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	job.UpdatedAt = time.Now()
	return job, nil
}

func (r *fakeJobRepo) UpdateStatus(ctx context.Context, id, employerID uuid.UUID, status models.JobStatus) (*models.Job, error) {
	job, err := r.GetByIDAndEmployer(ctx, id, employerID)
	if err != nil {
		return nil, err
	}
	job.Status = status
	job.UpdatedAt = time.Now()
	return job, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id, employerID uuid.UUID) error {
	if _, err := r.GetByIDAndEmployer(ctx, id, employerID); err != nil {
		return err
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) Search(ctx context.Context, req *dto.SearchJobsRequest) ([]models.Job, int, error) {
	var matches []models.Job
	for _, job := range r.jobs {
		if job.Status != models.JobStatusActive {
			continue
		}
		if req.Remote != nil && job.Remote != *req.Remote {
			continue
		}
		if req.Type != nil && job.Type != *req.Type {
			continue
		}
		matches = append(matches, *job)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	return paginateJobs(matches, req.Page, req.Limit), len(matches), nil
}

func (r *fakeJobRepo) ListByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, int, error) {
	var matches []models.Job
	for _, job := range r.jobs {
		if job.EmployerID != req.EmployerID {
			continue
		}
		if req.Status != nil && job.Status != *req.Status {
			continue
		}
		matches = append(matches, *job)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	return paginateJobs(matches, req.Page, req.Limit), len(matches), nil
}

func (r *fakeJobRepo) PushApplication(ctx context.Context, jobID, applicationID uuid.UUID) error {
	if r.failPush != nil {
		return r.failPush
	}
	job, ok := r.jobs[jobID]
	if !ok {
		return storage.ErrNotFound
	}
	job.ApplicationIDs = append(job.ApplicationIDs, applicationID)
	return nil
}

func (r *fakeJobRepo) PullApplication(ctx context.Context, jobID, applicationID uuid.UUID) error {
	if r.failPull != nil {
		return r.failPull
	}
	job, ok := r.jobs[jobID]
	if !ok {
		return storage.ErrNotFound
	}
	kept := job.ApplicationIDs[:0]
	for _, id := range job.ApplicationIDs {
		if id != applicationID {
			kept = append(kept, id)
		}
	}
	job.ApplicationIDs = kept
	return nil
}

func (r *fakeJobRepo) WithTx(tx pgx.Tx) storage.JobRepository { return r }

func paginateJobs(jobs []models.Job, page, limit int) []models.Job {
	start := (page - 1) * limit
	if start >= len(jobs) {
		return []models.Job{}
	}
	end := start + limit
	if end > len(jobs) {
		end = len(jobs)
	}
	return jobs[start:end]
}

type fakeApplicationRepo struct {
	apps       map[uuid.UUID]*models.Application
	failDelete error

	// lookupMiss makes GetByJobAndCandidate report no row even when one
	// exists, so Create still hits the uniqueness check.
	lookupMiss bool
	// extraListRows are returned (and counted) by ListByCandidate on top of
	// the real matches.
	extraListRows []models.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[uuid.UUID]*models.Application)}
}

var _ storage.ApplicationRepository = (*fakeApplicationRepo)(nil)

func (r *fakeApplicationRepo) add(app *models.Application) *models.Application {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	r.apps[app.ID] = app
	return app
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.CandidateID == app.CandidateID {
			return nil, storage.ErrConflict
		}
	}
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	return r.add(app), nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return app, nil
}

func (r *fakeApplicationRepo) GetByIDAndEmployer(ctx context.Context, id, employerID uuid.UUID) (*models.Application, error) {
	app, ok := r.apps[id]
	if !ok || app.EmployerID != employerID {
		return nil, storage.ErrNotFound
	}
	return app, nil
}

func (r *fakeApplicationRepo) GetByIDAndCandidate(ctx context.Context, id, candidateID uuid.UUID) (*models.Application, error) {
	app, ok := r.apps[id]
	if !ok || app.CandidateID != candidateID {
		return nil, storage.ErrNotFound
	}
	return app, nil
}

func (r *fakeApplicationRepo) GetByJobAndCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (*models.Application, error) {
	if r.lookupMiss {
		return nil, storage.ErrNotFound
	}
	for _, app := range r.apps {
		if app.JobID == jobID && app.CandidateID == candidateID {
			return app, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusData) (*models.Application, error) {
	app, ok := r.apps[req.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	app.Status = req.Status
	if req.EmployerNotes != nil {
		app.EmployerNotes = *req.EmployerNotes
	}
	if req.ReviewedAt != nil {
		app.ReviewedAt = req.ReviewedAt
	}
	app.UpdatedAt = time.Now()
	return app, nil
}

func (r *fakeApplicationRepo) ListByCandidate(ctx context.Context, req *dto.ListApplicationsByCandidateRequest) ([]models.Application, int, error) {
	var matches []models.Application
	for _, app := range r.apps {
		if app.CandidateID != req.CandidateID {
			continue
		}
		if req.Status != nil && app.Status != *req.Status {
			continue
		}
		if req.JobID != nil && app.JobID != *req.JobID {
			continue
		}
		matches = append(matches, *app)
	}
	matches = append(matches, r.extraListRows...)
	sort.Slice(matches, func(i, j int) bool { return matches[i].AppliedAt.After(matches[j].AppliedAt) })
	return paginateApplications(matches, req.Page, req.Limit), len(matches), nil
}

func (r *fakeApplicationRepo) ListByEmployer(ctx context.Context, req *dto.ListApplicationsByEmployerRequest) ([]models.Application, int, error) {
	var matches []models.Application
	for _, app := range r.apps {
		if app.EmployerID != req.EmployerID {
			continue
		}
		if req.Status != nil && app.Status != *req.Status {
			continue
		}
		if req.JobID != nil && app.JobID != *req.JobID {
			continue
		}
		if req.CandidateID != nil && app.CandidateID != *req.CandidateID {
			continue
		}
		matches = append(matches, *app)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].AppliedAt.After(matches[j].AppliedAt) })
	return paginateApplications(matches, req.Page, req.Limit), len(matches), nil
}

func (r *fakeApplicationRepo) StatsByEmployer(ctx context.Context, employerID uuid.UUID) (*models.ApplicationStats, error) {
	stats := &models.ApplicationStats{}
	for _, app := range r.apps {
		if app.EmployerID != employerID {
			continue
		}
		stats.Total++
		switch app.Status {
		case models.ApplicationStatusPending:
			stats.Pending++
		case models.ApplicationStatusReviewing:
			stats.Reviewing++
		case models.ApplicationStatusShortlisted:
			stats.Shortlisted++
		case models.ApplicationStatusRejected:
			stats.Rejected++
		case models.ApplicationStatusAccepted:
			stats.Accepted++
		}
	}
	return stats, nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	if _, ok := r.apps[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *fakeApplicationRepo) WithTx(tx pgx.Tx) storage.ApplicationRepository { return r }

func paginateApplications(apps []models.Application, page, limit int) []models.Application {
	start := (page - 1) * limit
	if start >= len(apps) {
		return []models.Application{}
	}
	end := start + limit
	if end > len(apps) {
		end = len(apps)
	}
	return apps[start:end]
}

// fakeMailer records sent messages and can be forced to fail.
type fakeMailer struct {
	sent    []mailer.Message
	failing bool
}

var _ mailer.Mailer = (*fakeMailer)(nil)

func (m *fakeMailer) Send(msg *mailer.Message) error {
	if m.failing {
		return errors.New("smtp relay unavailable")
	}
	m.sent = append(m.sent, *msg)
	return nil
}

// fakeNotifier records Dispatch calls without sending anything.
type fakeNotifier struct {
	dispatched []models.ApplicationStatus
	candidates []uuid.UUID
}

func (n *fakeNotifier) Dispatch(ctx context.Context, status models.ApplicationStatus, candidate *models.User, job *models.Job, employer *models.User) {
	n.dispatched = append(n.dispatched, status)
	n.candidates = append(n.candidates, candidate.ID)
}
