package services_test

import (
	"context"
	"testing"

	"job-board-api/internal/models"
	"job-board-api/internal/services"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notificationParties() (*models.User, *models.Job, *models.User) {
	employer := &models.User{
		ID:    uuid.New(),
		Name:  "Bob Employer",
		Email: "bob@acme.example.com",
		Role:  models.RoleEmployer,
	}
	candidate := &models.User{
		ID:    uuid.New(),
		Name:  "Ada Candidate",
		Email: "ada@example.com",
		Role:  models.RoleCandidate,
	}
	job := &models.Job{
		ID:         uuid.New(),
		Title:      "Backend Engineer",
		Company:    "Acme",
		EmployerID: employer.ID,
	}
	return candidate, job, employer
}

func TestNotificationService_Dispatch_Accepted(t *testing.T) {
	m := &fakeMailer{}
	svc := services.NewNotificationService(m)
	candidate, job, employer := notificationParties()

	svc.Dispatch(context.Background(), models.ApplicationStatusAccepted, candidate, job, employer)

	require.Len(t, m.sent, 1)
	msg := m.sent[0]
	assert.Equal(t, candidate.Email, msg.To)
	assert.Equal(t, employer.Email, msg.ReplyTo)
	assert.Contains(t, msg.Subject, job.Title)
	assert.Contains(t, msg.HTMLBody, candidate.Name)
	assert.Contains(t, msg.HTMLBody, job.Title)
}

func TestNotificationService_Dispatch_PerStatusContent(t *testing.T) {
	m := &fakeMailer{}
	svc := services.NewNotificationService(m)
	candidate, job, employer := notificationParties()

	svc.Dispatch(context.Background(), models.ApplicationStatusRejected, candidate, job, employer)
	svc.Dispatch(context.Background(), models.ApplicationStatusShortlisted, candidate, job, employer)

	require.Len(t, m.sent, 2)
	assert.Contains(t, m.sent[0].HTMLBody, "not to move forward")
	assert.Contains(t, m.sent[1].HTMLBody, "shortlisted")
}

func TestNotificationService_Dispatch_IgnoredStatuses(t *testing.T) {
	m := &fakeMailer{}
	svc := services.NewNotificationService(m)
	candidate, job, employer := notificationParties()

	svc.Dispatch(context.Background(), models.ApplicationStatusPending, candidate, job, employer)
	svc.Dispatch(context.Background(), models.ApplicationStatusReviewing, candidate, job, employer)

	assert.Empty(t, m.sent)
}

func TestNotificationService_Dispatch_MissingEmailSkips(t *testing.T) {
	m := &fakeMailer{}
	svc := services.NewNotificationService(m)
	candidate, job, employer := notificationParties()
	candidate.Email = ""

	svc.Dispatch(context.Background(), models.ApplicationStatusAccepted, candidate, job, employer)

	assert.Empty(t, m.sent)
}

func TestNotificationService_Dispatch_MailerFailureIsSwallowed(t *testing.T) {
	m := &fakeMailer{failing: true}
	svc := services.NewNotificationService(m)
	candidate, job, employer := notificationParties()

	// Must not panic or propagate anything.
	svc.Dispatch(context.Background(), models.ApplicationStatusRejected, candidate, job, employer)

	assert.Empty(t, m.sent)
}

func TestApplicationService_StatusChangeSurvivesMailerFailure(t *testing.T) {
	f := setupApplicationServiceTest(t)
	app := f.apply(t)

	// Wire a real notification service with a broken relay behind the
	// application service.
	broken := services.NewApplicationService(&fakeTxBeginner{}, f.appRepo, f.jobRepo, f.userRepo,
		services.NewNotificationService(&fakeMailer{failing: true}))

	updated, err := broken.UpdateStatus(f.ctx, &dto.UpdateApplicationStatusRequest{
		ID:         app.ID,
		EmployerID: f.employer.ID,
		Status:     models.ApplicationStatusAccepted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, updated.Status)
}
