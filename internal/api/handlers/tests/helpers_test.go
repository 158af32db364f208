package handlers_test

import (
	"context"
	"time"

	"job-board-api/internal/models"
	"job-board-api/internal/services"
	"job-board-api/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testJWTSecret = "test-secret"

func generateTestToken(userID uuid.UUID, role models.Role) string {
	now := time.Now()
	claims := &services.AccessClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

// stubApplicationService lets each test plug in just the method it needs.
type stubApplicationService struct {
	applyFn        func(ctx context.Context, req *dto.ApplyToJobRequest) (*models.Application, error)
	updateStatusFn func(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	getByIDFn      func(ctx context.Context, req *dto.GetApplicationByIDRequest) (*models.Application, error)
	withdrawFn     func(ctx context.Context, req *dto.WithdrawApplicationRequest) (bool, error)
	statsFn        func(ctx context.Context, employerID uuid.UUID) (*models.ApplicationStats, error)
}

var _ services.ApplicationService = (*stubApplicationService)(nil)

func (s *stubApplicationService) Apply(ctx context.Context, req *dto.ApplyToJobRequest) (*models.Application, error) {
	return s.applyFn(ctx, req)
}

func (s *stubApplicationService) UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	return s.updateStatusFn(ctx, req)
}

func (s *stubApplicationService) GetApplicationByID(ctx context.Context, req *dto.GetApplicationByIDRequest) (*models.Application, error) {
	return s.getByIDFn(ctx, req)
}

func (s *stubApplicationService) ListByCandidate(ctx context.Context, req *dto.ListApplicationsByCandidateRequest) ([]models.Application, int, error) {
	return []models.Application{}, 0, nil
}

func (s *stubApplicationService) ListByEmployer(ctx context.Context, req *dto.ListApplicationsByEmployerRequest) ([]models.Application, int, error) {
	return []models.Application{}, 0, nil
}

func (s *stubApplicationService) Stats(ctx context.Context, employerID uuid.UUID) (*models.ApplicationStats, error) {
	return s.statsFn(ctx, employerID)
}

func (s *stubApplicationService) Withdraw(ctx context.Context, req *dto.WithdrawApplicationRequest) (bool, error) {
	return s.withdrawFn(ctx, req)
}
