package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	"job-board-api/internal/mailer"
	"job-board-api/internal/models"
)

var acceptedTmpl = template.Must(template.New("accepted").Parse(`<html>
<body>
<p>Hi {{.CandidateName}},</p>
<p>Great news! Your application for <strong>{{.JobTitle}}</strong> at {{.Company}} has been accepted.</p>
<p>{{.EmployerName}} will reach out to you shortly with the next steps.</p>
<p>Best of luck,<br>The Job Board Team</p>
</body>
</html>`))

var rejectedTmpl = template.Must(template.New("rejected").Parse(`<html>
<body>
<p>Hi {{.CandidateName}},</p>
<p>Thank you for applying for <strong>{{.JobTitle}}</strong> at {{.Company}}.</p>
<p>After careful consideration, the employer has decided not to move forward with your application at this time.</p>
<p>We encourage you to keep an eye out for other openings that match your profile.</p>
<p>Best of luck,<br>The Job Board Team</p>
</body>
</html>`))

var shortlistedTmpl = template.Must(template.New("shortlisted").Parse(`<html>
<body>
<p>Hi {{.CandidateName}},</p>
<p>Your application for <strong>{{.JobTitle}}</strong> at {{.Company}} has been shortlisted!</p>
<p>{{.EmployerName}} is reviewing the shortlist and may contact you for the next stage.</p>
<p>Best of luck,<br>The Job Board Team</p>
</body>
</html>`))

type notificationTemplate struct {
	subject string
	body    *template.Template
}

var statusTemplates = map[models.ApplicationStatus]notificationTemplate{
	models.ApplicationStatusAccepted:    {subject: "Your application for %s was accepted", body: acceptedTmpl},
	models.ApplicationStatusRejected:    {subject: "Update on your application for %s", body: rejectedTmpl},
	models.ApplicationStatusShortlisted: {subject: "You have been shortlisted for %s", body: shortlistedTmpl},
}

type notificationData struct {
	CandidateName string
	JobTitle      string
	Company       string
	EmployerName  string
}

type notificationService struct {
	mailer mailer.Mailer
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(m mailer.Mailer) NotificationService {
	return &notificationService{mailer: m}
}

// Dispatch sends the candidate an email matching the new application status.
// It is strictly best-effort: unknown statuses, missing recipient addresses
// and mailer failures are logged and dropped, never propagated.
func (s *notificationService) Dispatch(ctx context.Context, status models.ApplicationStatus, candidate *models.User, job *models.Job, employer *models.User) {
	tmpl, ok := statusTemplates[status]
	if !ok {
		return
	}

	if candidate.Email == "" {
		log.Printf("Dispatch: Skipping %s notification for job %s: candidate %s has no email address", status, job.ID, candidate.ID)
		return
	}

	data := notificationData{
		CandidateName: candidate.Name,
		JobTitle:      job.Title,
		Company:       job.Company,
		EmployerName:  employer.Name,
	}

	var body bytes.Buffer
	if err := tmpl.body.Execute(&body, data); err != nil {
		log.Printf("Dispatch: Error rendering %s notification for application to job %s: %v", status, job.ID, err)
		return
	}

	msg := mailer.Message{
		To:       candidate.Email,
		ReplyTo:  employer.Email,
		Subject:  fmt.Sprintf(tmpl.subject, job.Title),
		HTMLBody: body.String(),
	}

	if err := s.mailer.Send(&msg); err != nil {
		log.Printf("Dispatch: Error sending %s notification to %s for job %s: %v", status, candidate.Email, job.ID, err)
		return
	}

	log.Printf("Sent %s notification to %s for job %s", status, candidate.Email, job.ID)
}
