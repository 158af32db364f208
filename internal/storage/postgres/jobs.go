package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{db: db}
}

// WithTx creates a new JobRepo bound to the transaction.
func (r *JobRepo) WithTx(tx pgx.Tx) storage.JobRepository {
	return &JobRepo{db: tx}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

const jobColumns = `id, title, description, requirements, responsibilities, company, location, type, experience, salary_min, salary_max, salary_currency, skills, benefits, employer_id, status, application_ids, deadline, remote, created_at, updated_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Description,
		&j.Requirements,
		&j.Responsibilities,
		&j.Company,
		&j.Location,
		&j.Type,
		&j.Experience,
		&j.SalaryMin,
		&j.SalaryMax,
		&j.SalaryCurrency,
		&j.Skills,
		&j.Benefits,
		&j.EmployerID,
		&j.Status,
		&j.ApplicationIDs,
		&j.Deadline,
		&j.Remote,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create saves a new job posting. Jobs are created active.
func (r *JobRepo) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	query := `
		INSERT INTO jobs (id, title, description, requirements, responsibilities, company, location, type, experience, salary_min, salary_max, salary_currency, skills, benefits, employer_id, status, application_ids, deadline, remote, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, '{}', $17, $18, NOW(), NOW())
		RETURNING ` + jobColumns

	row := r.db.QueryRow(ctx, query,
		uuid.New(), // Generate ID server-side
		req.Title,
		req.Description,
		req.Requirements,
		req.Responsibilities,
		req.Company,
		req.Location,
		req.Type,
		req.Experience,
		req.SalaryMin,
		req.SalaryMax,
		req.SalaryCurrency,
		req.Skills,
		req.Benefits,
		req.EmployerID,
		models.JobStatusActive,
		req.Deadline,
		req.Remote,
	)

	createdJob, err := scanJob(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKeyViolation {
			log.Printf("Error creating job: foreign key violation (employer_id: %s): %v\n", req.EmployerID, err)
			return nil, fmt.Errorf("failed to create job: invalid employer ID: %w", storage.ErrConflict)
		}
		log.Printf("Error creating job: %v\n", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Printf("Job created successfully with ID: %s", createdJob.ID)
	return createdJob, nil
}

// GetByID retrieves a specific job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Job not found with ID: %s\n", id)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get job by ID %s: %w", id, err)
	}
	return job, nil
}

// GetByIDAndEmployer retrieves a job scoped by its owner. A missing job and a
// job owned by someone else both come back as ErrNotFound.
func (r *JobRepo) GetByIDAndEmployer(ctx context.Context, id, employerID uuid.UUID) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND employer_id = $2`

	job, err := scanJob(r.db.QueryRow(ctx, query, id, employerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job %s for employer %s: %v\n", id, employerID, err)
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	return job, nil
}

// Update applies the non-nil fields of req to the employer's job.
func (r *JobRepo) Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	query := `
		UPDATE jobs SET
			title            = COALESCE($3, title),
			description      = COALESCE($4, description),
			requirements     = COALESCE($5, requirements),
			responsibilities = COALESCE($6, responsibilities),
			location         = COALESCE($7, location),
			type             = COALESCE($8, type),
			experience       = COALESCE($9, experience),
			salary_min       = COALESCE($10, salary_min),
			salary_max       = COALESCE($11, salary_max),
			salary_currency  = COALESCE($12, salary_currency),
			skills           = COALESCE($13, skills),
			benefits         = COALESCE($14, benefits),
			deadline         = COALESCE($15, deadline),
			remote           = COALESCE($16, remote),
			updated_at       = NOW()
		WHERE id = $1 AND employer_id = $2
		RETURNING ` + jobColumns

	row := r.db.QueryRow(ctx, query,
		req.ID,
		req.EmployerID,
		req.Title,
		req.Description,
		req.Requirements,
		req.Responsibilities,
		req.Location,
		req.Type,
		req.Experience,
		req.SalaryMin,
		req.SalaryMax,
		req.SalaryCurrency,
		req.Skills,
		req.Benefits,
		req.Deadline,
		req.Remote,
	)

	updatedJob, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Job not found for update with ID: %s (employer %s)\n", req.ID, req.EmployerID)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating job %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return updatedJob, nil
}

// UpdateStatus sets the job status, scoped by owner.
func (r *JobRepo) UpdateStatus(ctx context.Context, id, employerID uuid.UUID, status models.JobStatus) (*models.Job, error) {
	query := `
		UPDATE jobs SET status = $3, updated_at = NOW()
		WHERE id = $1 AND employer_id = $2
		RETURNING ` + jobColumns

	updatedJob, err := scanJob(r.db.QueryRow(ctx, query, id, employerID, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Job not found for status update with ID: %s (employer %s)\n", id, employerID)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating job status for ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}
	return updatedJob, nil
}

// Delete removes the employer's job.
func (r *JobRepo) Delete(ctx context.Context, id, employerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND employer_id = $2`, id, employerID)
	if err != nil {
		log.Printf("Error deleting job with ID %s: %v\n", id, err)
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Printf("Job not found for deletion with ID: %s (employer %s)\n", id, employerID)
		return storage.ErrNotFound
	}

	log.Printf("Job deleted successfully with ID: %s", id)
	return nil
}

// Search lists active jobs matching the optional filters, newest first, with
// the filtered total.
func (r *JobRepo) Search(ctx context.Context, req *dto.SearchJobsRequest) ([]models.Job, int, error) {
	conditions := []string{"status = 'active'"}
	args := []interface{}{}

	if req.Query != nil && *req.Query != "" {
		args = append(args, *req.Query)
		conditions = append(conditions, fmt.Sprintf(
			"to_tsvector('english', title || ' ' || description || ' ' || array_to_string(skills, ' ')) @@ websearch_to_tsquery('english', $%d)", len(args)))
	}
	if req.Location != nil && *req.Location != "" {
		args = append(args, "%"+*req.Location+"%")
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if req.Type != nil {
		args = append(args, *req.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if req.Experience != nil {
		args = append(args, *req.Experience)
		conditions = append(conditions, fmt.Sprintf("experience = $%d", len(args)))
	}
	if req.Remote != nil {
		args = append(args, *req.Remote)
		conditions = append(conditions, fmt.Sprintf("remote = $%d", len(args)))
	}

	var total int
	countArgs := args
	if err := r.db.QueryRow(ctx, buildCountQuery("jobs", conditions), countArgs...).Scan(&total); err != nil {
		log.Printf("Error counting jobs for search: %v\n", err)
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := buildListQuery(`SELECT `+jobColumns+` FROM jobs`, conditions, &args, "created_at DESC", req.Page, req.Limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error searching jobs: %v\n", err)
		return nil, 0, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			log.Printf("Error scanning job row during search: %v\n", err)
			return nil, 0, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return jobs, total, nil
}

// ListByEmployer lists the employer's own postings, any status, newest first.
func (r *JobRepo) ListByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, int, error) {
	conditions := []string{"employer_id = $1"}
	args := []interface{}{req.EmployerID}

	if req.Status != nil {
		args = append(args, *req.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	var total int
	countArgs := args
	if err := r.db.QueryRow(ctx, buildCountQuery("jobs", conditions), countArgs...).Scan(&total); err != nil {
		log.Printf("Error counting jobs for employer %s: %v\n", req.EmployerID, err)
		return nil, 0, fmt.Errorf("failed to count employer jobs: %w", err)
	}

	query := buildListQuery(`SELECT `+jobColumns+` FROM jobs`, conditions, &args, "created_at DESC", req.Page, req.Limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing jobs for employer %s: %v\n", req.EmployerID, err)
		return nil, 0, fmt.Errorf("failed to list employer jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			log.Printf("Error scanning job row for employer %s: %v\n", req.EmployerID, err)
			return nil, 0, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return jobs, total, nil
}

// PushApplication appends an application reference to the job's list.
func (r *JobRepo) PushApplication(ctx context.Context, jobID, applicationID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE jobs SET application_ids = array_append(application_ids, $2), updated_at = NOW() WHERE id = $1`,
		jobID, applicationID)
	if err != nil {
		log.Printf("Error pushing application %s onto job %s: %v\n", applicationID, jobID, err)
		return fmt.Errorf("failed to push application reference: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// PullApplication removes an application reference from the job's list.
func (r *JobRepo) PullApplication(ctx context.Context, jobID, applicationID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE jobs SET application_ids = array_remove(application_ids, $2), updated_at = NOW() WHERE id = $1`,
		jobID, applicationID)
	if err != nil {
		log.Printf("Error pulling application %s from job %s: %v\n", applicationID, jobID, err)
		return fmt.Errorf("failed to pull application reference: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
