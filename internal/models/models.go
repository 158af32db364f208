package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewing   ApplicationStatus = "reviewing"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// Scan implements the sql.Scanner interface for ApplicationStatus
func (as *ApplicationStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan ApplicationStatus: value is not string or []byte")
		}
	}
	v := ApplicationStatus(strVal)
	switch v {
	case ApplicationStatusPending, ApplicationStatusReviewing, ApplicationStatusShortlisted,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		*as = v
		return nil
	default:
		return fmt.Errorf("invalid ApplicationStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (as ApplicationStatus) Value() (driver.Value, error) {
	return string(as), nil
}

// IsTerminal reports whether no further transition is allowed out of the status.
func (as ApplicationStatus) IsTerminal() bool {
	return as == ApplicationStatusAccepted || as == ApplicationStatusRejected
}

// statusRank orders the review workflow. Rejected sits outside the order and is
// handled separately in CanTransitionTo.
func (as ApplicationStatus) statusRank() int {
	switch as {
	case ApplicationStatusPending:
		return 0
	case ApplicationStatusReviewing:
		return 1
	case ApplicationStatusShortlisted:
		return 2
	case ApplicationStatusAccepted:
		return 3
	default:
		return -1
	}
}

// CanTransitionTo reports whether the workflow permits moving from as to next.
// Forward moves (including skips such as pending -> accepted) are allowed,
// rejected is reachable from any non-terminal status, and accepted/rejected
// are terminal.
func (as ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if as.IsTerminal() {
		return false
	}
	if next == ApplicationStatusRejected {
		return true
	}
	from, to := as.statusRank(), next.statusRank()
	if from < 0 || to < 0 {
		return false
	}
	return to > from
}

// --- Job Status Enum ---
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	// JobStatusDraft is accepted by the schema but never produced by the
	// current creation path.
	JobStatusDraft JobStatus = "draft"
)

// Scan implements the sql.Scanner interface for JobStatus
func (js *JobStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan JobStatus: value is not string or []byte")
		}
	}
	v := JobStatus(strVal)
	switch v {
	case JobStatusActive, JobStatusClosed, JobStatusDraft:
		*js = v
		return nil
	default:
		return fmt.Errorf("invalid JobStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for JobStatus
func (js JobStatus) Value() (driver.Value, error) {
	return string(js), nil
}

// --- Job Type Enum ---
type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// Scan implements the sql.Scanner interface for JobType
func (jt *JobType) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan JobType: value is not string or []byte")
		}
	}
	v := JobType(strVal)
	switch v {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		*jt = v
		return nil
	default:
		return fmt.Errorf("invalid JobType value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for JobType
func (jt JobType) Value() (driver.Value, error) {
	return string(jt), nil
}

// --- Experience Level Enum ---
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"
)

// Scan implements the sql.Scanner interface for ExperienceLevel
func (el *ExperienceLevel) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan ExperienceLevel: value is not string or []byte")
		}
	}
	v := ExperienceLevel(strVal)
	switch v {
	case ExperienceEntry, ExperienceJunior, ExperienceMid, ExperienceSenior, ExperienceLead:
		*el = v
		return nil
	default:
		return fmt.Errorf("invalid ExperienceLevel value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for ExperienceLevel
func (el ExperienceLevel) Value() (driver.Value, error) {
	return string(el), nil
}

// --- Availability Enum ---
type Availability string

const (
	AvailabilityImmediate  Availability = "immediate"
	AvailabilityTwoWeeks   Availability = "two_weeks"
	AvailabilityOneMonth   Availability = "one_month"
	AvailabilityNegotiable Availability = "negotiable"
)

// Scan implements the sql.Scanner interface for Availability
func (a *Availability) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Availability: value is not string or []byte")
		}
	}
	v := Availability(strVal)
	switch v {
	case AvailabilityImmediate, AvailabilityTwoWeeks, AvailabilityOneMonth, AvailabilityNegotiable:
		*a = v
		return nil
	default:
		return fmt.Errorf("invalid Availability value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Availability
func (a Availability) Value() (driver.Value, error) {
	return string(a), nil
}

// --- User Role Enum ---
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Role: value is not string or []byte")
		}
	}
	v := Role(strVal)
	switch v {
	case RoleCandidate, RoleEmployer, RoleAdmin:
		*r = v
		return nil
	default:
		return fmt.Errorf("invalid Role value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// User represents an account on the board: a candidate, an employer, or an admin.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	Mobile       string    `json:"mobile,omitempty" db:"mobile"`
	Location     string    `json:"location,omitempty" db:"location"`
	Company      string    `json:"company,omitempty" db:"company"`
	Position     string    `json:"position,omitempty" db:"position"`
	Skills       []string  `json:"skills,omitempty" db:"skills"`
	Image        string    `json:"image,omitempty" db:"image"`
	Blocked      bool      `json:"blocked" db:"blocked"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Job represents a position posting owned by an employer.
type Job struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	Title            string          `json:"title" db:"title"`
	Description      string          `json:"description" db:"description"`
	Requirements     []string        `json:"requirements" db:"requirements"`
	Responsibilities []string        `json:"responsibilities" db:"responsibilities"`
	Company          string          `json:"company" db:"company"`
	Location         string          `json:"location" db:"location"`
	Type             JobType         `json:"type" db:"type"`
	Experience       ExperienceLevel `json:"experience" db:"experience"`
	SalaryMin        *float64        `json:"salary_min,omitempty" db:"salary_min"`
	SalaryMax        *float64        `json:"salary_max,omitempty" db:"salary_max"`
	SalaryCurrency   string          `json:"salary_currency,omitempty" db:"salary_currency"`
	Skills           []string        `json:"skills" db:"skills"`
	Benefits         []string        `json:"benefits" db:"benefits"`
	EmployerID       uuid.UUID       `json:"employer_id" db:"employer_id"`
	Status           JobStatus       `json:"status" db:"status"`
	ApplicationIDs   []uuid.UUID     `json:"application_ids" db:"application_ids"`
	Deadline         *time.Time      `json:"deadline,omitempty" db:"deadline"`
	Remote           bool            `json:"remote" db:"remote"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// Application represents one candidate's submission against one job. EmployerID
// is denormalized from the job at creation time so ownership checks need no join;
// it is never mutated afterwards.
type Application struct {
	ID             uuid.UUID         `json:"id" db:"id"`
	JobID          uuid.UUID         `json:"job_id" db:"job_id"`
	CandidateID    uuid.UUID         `json:"candidate_id" db:"candidate_id"`
	EmployerID     uuid.UUID         `json:"employer_id" db:"employer_id"`
	Status         ApplicationStatus `json:"status" db:"status"`
	CoverLetter    string            `json:"cover_letter" db:"cover_letter"`
	ResumeURL      string            `json:"resume_url" db:"resume_url"`
	ExpectedSalary *float64          `json:"expected_salary,omitempty" db:"expected_salary"`
	SalaryCurrency string            `json:"salary_currency,omitempty" db:"salary_currency"`
	Availability   Availability      `json:"availability" db:"availability"`
	CandidateNotes string            `json:"candidate_notes,omitempty" db:"candidate_notes"`
	EmployerNotes  string            `json:"employer_notes,omitempty" db:"employer_notes"`
	Mobile         string            `json:"mobile,omitempty" db:"mobile"`
	Location       string            `json:"location,omitempty" db:"location"`
	AppliedAt      time.Time         `json:"applied_at" db:"applied_at"`
	ReviewedAt     *time.Time        `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
}

// ApplicationStats aggregates an employer's applications per status.
type ApplicationStats struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Reviewing   int `json:"reviewing"`
	Shortlisted int `json:"shortlisted"`
	Rejected    int `json:"rejected"`
	Accepted    int `json:"accepted"`
}
