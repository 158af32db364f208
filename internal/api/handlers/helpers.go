package handlers

import (
	"fmt"

	"job-board-api/internal/models"
	"job-board-api/internal/transport/dto"

	"github.com/go-playground/validator/v10"
)

func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s characters long", fieldName, fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s characters long", fieldName, fieldError.Param())
		case "oneof":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
		case "len":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be exactly %s characters long", fieldName, fieldError.Param())
		case "uuid":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid UUID", fieldName)
		}
	}
	return errorsMap
}

// MapUserModelToUserResponse converts a models.User to a dto.UserResponse
func MapUserModelToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Mobile:    user.Mobile,
		Location:  user.Location,
		Company:   user.Company,
		Position:  user.Position,
		Skills:    user.Skills,
		Image:     user.Image,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MapJobModelToJobResponse converts a models.Job to a dto.JobResponse
func MapJobModelToJobResponse(job *models.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:               job.ID,
		Title:            job.Title,
		Description:      job.Description,
		Requirements:     job.Requirements,
		Responsibilities: job.Responsibilities,
		Company:          job.Company,
		Location:         job.Location,
		Type:             job.Type,
		Experience:       job.Experience,
		SalaryMin:        job.SalaryMin,
		SalaryMax:        job.SalaryMax,
		SalaryCurrency:   job.SalaryCurrency,
		Skills:           job.Skills,
		Benefits:         job.Benefits,
		EmployerID:       job.EmployerID,
		Status:           job.Status,
		ApplicationCount: len(job.ApplicationIDs),
		Deadline:         job.Deadline,
		Remote:           job.Remote,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
}

// MapApplicationModelToResponse converts a models.Application to a dto.ApplicationResponse
func MapApplicationModelToResponse(app *models.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:             app.ID,
		JobID:          app.JobID,
		CandidateID:    app.CandidateID,
		EmployerID:     app.EmployerID,
		Status:         app.Status,
		CoverLetter:    app.CoverLetter,
		ResumeURL:      app.ResumeURL,
		ExpectedSalary: app.ExpectedSalary,
		SalaryCurrency: app.SalaryCurrency,
		Availability:   app.Availability,
		CandidateNotes: app.CandidateNotes,
		EmployerNotes:  app.EmployerNotes,
		Mobile:         app.Mobile,
		Location:       app.Location,
		AppliedAt:      app.AppliedAt,
		ReviewedAt:     app.ReviewedAt,
		CreatedAt:      app.CreatedAt,
		UpdatedAt:      app.UpdatedAt,
	}
}

// MapStatsModelToResponse converts models.ApplicationStats to its response DTO
func MapStatsModelToResponse(stats *models.ApplicationStats) dto.ApplicationStatsResponse {
	return dto.ApplicationStatsResponse{
		Total:       stats.Total,
		Pending:     stats.Pending,
		Reviewing:   stats.Reviewing,
		Shortlisted: stats.Shortlisted,
		Rejected:    stats.Rejected,
		Accepted:    stats.Accepted,
	}
}
