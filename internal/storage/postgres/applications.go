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

// ApplicationRepo implements the storage.ApplicationRepository interface using
// PostgreSQL. The unique index on (job_id, candidate_id) is the authoritative
// duplicate-application guard; the service-level existence check is advisory.
type ApplicationRepo struct {
	db Querier
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// WithTx creates a new ApplicationRepo bound to the transaction.
func (r *ApplicationRepo) WithTx(tx pgx.Tx) storage.ApplicationRepository {
	return &ApplicationRepo{db: tx}
}

// Compile-time check to ensure ApplicationRepo implements ApplicationRepository
var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

const applicationColumns = `id, job_id, candidate_id, employer_id, status, cover_letter, resume_url, expected_salary, salary_currency, availability, candidate_notes, employer_notes, mobile, location, applied_at, reviewed_at, created_at, updated_at`

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.CandidateID,
		&a.EmployerID,
		&a.Status,
		&a.CoverLetter,
		&a.ResumeURL,
		&a.ExpectedSalary,
		&a.SalaryCurrency,
		&a.Availability,
		&a.CandidateNotes,
		&a.EmployerNotes,
		&a.Mobile,
		&a.Location,
		&a.AppliedAt,
		&a.ReviewedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persists an application assembled by the service layer.
func (r *ApplicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	if app.ID == uuid.Nil {
		app.ID = uuid.New() // Generate ID server-side
	}

	query := `
		INSERT INTO applications (id, job_id, candidate_id, employer_id, status, cover_letter, resume_url, expected_salary, salary_currency, availability, candidate_notes, employer_notes, mobile, location, applied_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING ` + applicationColumns

	row := r.db.QueryRow(ctx, query,
		app.ID,
		app.JobID,
		app.CandidateID,
		app.EmployerID,
		app.Status,
		app.CoverLetter,
		app.ResumeURL,
		app.ExpectedSalary,
		app.SalaryCurrency,
		app.Availability,
		app.CandidateNotes,
		app.EmployerNotes,
		app.Mobile,
		app.Location,
		app.AppliedAt,
	)

	createdApp, err := scanApplication(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgErrUniqueViolation:
				log.Printf("Error creating application: duplicate for job %s / candidate %s: %v\n", app.JobID, app.CandidateID, err)
				return nil, fmt.Errorf("failed to create application: already applied: %w", storage.ErrConflict)
			case pgErrForeignKeyViolation:
				log.Printf("Error creating application: foreign key violation: %v\n", err)
				return nil, fmt.Errorf("failed to create application: %w", storage.ErrConflict)
			}
		}
		log.Printf("Error creating application: %v\n", err)
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	log.Printf("Application created successfully with ID: %s", createdApp.ID)
	return createdApp, nil
}

// GetByID retrieves an application by its ID, unscoped.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Application not found with ID: %s\n", id)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning application by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get application by ID %s: %w", id, err)
	}
	return app, nil
}

// GetByIDAndEmployer retrieves an application scoped by the owning employer.
// A missing row and an ownership mismatch are indistinguishable.
func (r *ApplicationRepo) GetByIDAndEmployer(ctx context.Context, id, employerID uuid.UUID) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1 AND employer_id = $2`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id, employerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning application %s for employer %s: %v\n", id, employerID, err)
		return nil, fmt.Errorf("failed to get application %s: %w", id, err)
	}
	return app, nil
}

// GetByIDAndCandidate retrieves an application scoped by the owning candidate.
func (r *ApplicationRepo) GetByIDAndCandidate(ctx context.Context, id, candidateID uuid.UUID) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1 AND candidate_id = $2`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id, candidateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning application %s for candidate %s: %v\n", id, candidateID, err)
		return nil, fmt.Errorf("failed to get application %s: %w", id, err)
	}
	return app, nil
}

// GetByJobAndCandidate retrieves the unique application for a (job, candidate)
// pair, used by the advisory pre-insert duplicate check.
func (r *ApplicationRepo) GetByJobAndCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 AND candidate_id = $2`

	app, err := scanApplication(r.db.QueryRow(ctx, query, jobID, candidateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning application for job %s / candidate %s: %v\n", jobID, candidateID, err)
		return nil, fmt.Errorf("failed to get application by job and candidate: %w", err)
	}
	return app, nil
}

// UpdateStatus applies a validated status change. ReviewedAt, when set by the
// service, refreshes the column; employer notes are only overwritten when
// provided.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusData) (*models.Application, error) {
	query := `
		UPDATE applications SET
			status         = $2,
			employer_notes = COALESCE($3, employer_notes),
			reviewed_at    = COALESCE($4, reviewed_at),
			updated_at     = NOW()
		WHERE id = $1
		RETURNING ` + applicationColumns

	updatedApp, err := scanApplication(r.db.QueryRow(ctx, query, req.ID, req.Status, req.EmployerNotes, req.ReviewedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Application not found for status update with ID: %s\n", req.ID)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating application status for ID %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return updatedApp, nil
}

// ListByCandidate lists the candidate's applications, applied_at descending,
// with the filtered total.
func (r *ApplicationRepo) ListByCandidate(ctx context.Context, req *dto.ListApplicationsByCandidateRequest) ([]models.Application, int, error) {
	conditions := []string{"candidate_id = $1"}
	args := []interface{}{req.CandidateID}

	if req.Status != nil {
		args = append(args, *req.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if req.JobID != nil {
		args = append(args, *req.JobID)
		conditions = append(conditions, fmt.Sprintf("job_id = $%d", len(args)))
	}

	var total int
	countArgs := args
	if err := r.db.QueryRow(ctx, buildCountQuery("applications", conditions), countArgs...).Scan(&total); err != nil {
		log.Printf("Error counting applications for candidate %s: %v\n", req.CandidateID, err)
		return nil, 0, fmt.Errorf("failed to count candidate applications: %w", err)
	}

	query := buildListQuery(`SELECT `+applicationColumns+` FROM applications`, conditions, &args, "applied_at DESC", req.Page, req.Limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing applications for candidate %s: %v\n", req.CandidateID, err)
		return nil, 0, fmt.Errorf("failed to list candidate applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			log.Printf("Error scanning application row for candidate %s: %v\n", req.CandidateID, err)
			return nil, 0, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return apps, total, nil
}

// ListByEmployer lists applications to the employer's jobs, applied_at
// descending, with the filtered total.
func (r *ApplicationRepo) ListByEmployer(ctx context.Context, req *dto.ListApplicationsByEmployerRequest) ([]models.Application, int, error) {
	conditions := []string{"employer_id = $1"}
	args := []interface{}{req.EmployerID}

	if req.Status != nil {
		args = append(args, *req.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if req.JobID != nil {
		args = append(args, *req.JobID)
		conditions = append(conditions, fmt.Sprintf("job_id = $%d", len(args)))
	}
	if req.CandidateID != nil {
		args = append(args, *req.CandidateID)
		conditions = append(conditions, fmt.Sprintf("candidate_id = $%d", len(args)))
	}

	var total int
	countArgs := args
	if err := r.db.QueryRow(ctx, buildCountQuery("applications", conditions), countArgs...).Scan(&total); err != nil {
		log.Printf("Error counting applications for employer %s: %v\n", req.EmployerID, err)
		return nil, 0, fmt.Errorf("failed to count employer applications: %w", err)
	}

	query := buildListQuery(`SELECT `+applicationColumns+` FROM applications`, conditions, &args, "applied_at DESC", req.Page, req.Limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing applications for employer %s: %v\n", req.EmployerID, err)
		return nil, 0, fmt.Errorf("failed to list employer applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			log.Printf("Error scanning application row for employer %s: %v\n", req.EmployerID, err)
			return nil, 0, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return apps, total, nil
}

// StatsByEmployer computes the six counts in a single statement so they reflect
// one snapshot.
func (r *ApplicationRepo) StatsByEmployer(ctx context.Context, employerID uuid.UUID) (*models.ApplicationStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'reviewing'),
			COUNT(*) FILTER (WHERE status = 'shortlisted'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'accepted')
		FROM applications
		WHERE employer_id = $1
	`

	var stats models.ApplicationStats
	err := r.db.QueryRow(ctx, query, employerID).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Reviewing,
		&stats.Shortlisted,
		&stats.Rejected,
		&stats.Accepted,
	)
	if err != nil {
		log.Printf("Error computing application stats for employer %s: %v\n", employerID, err)
		return nil, fmt.Errorf("failed to compute application stats: %w", err)
	}
	return &stats, nil
}

// Delete removes an application record.
func (r *ApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting application with ID %s: %v\n", id, err)
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Printf("Application not found for deletion with ID: %s\n", id)
		return storage.ErrNotFound
	}

	log.Printf("Application deleted successfully with ID: %s", id)
	return nil
}
