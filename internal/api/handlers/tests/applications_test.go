package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"job-board-api/internal/api/handlers"
	"job-board-api/internal/api/middleware"
	"job-board-api/internal/models"
	"job-board-api/internal/services"
	"job-board-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApplicationRouter(svc services.ApplicationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := handlers.NewApplicationHandler(svc, validator.New())
	authMiddleware := middleware.JWTAuthMiddleware(testJWTSecret)

	apiV1 := router.Group("/api/v1")
	apps := apiV1.Group("/applications")
	apps.Use(authMiddleware)
	{
		employerOnly := middleware.RequireRole(models.RoleEmployer, models.RoleAdmin)
		apps.GET("/stats", employerOnly, handler.GetApplicationStats)
		apps.GET("/:id", handler.GetApplicationByID)
		apps.PATCH("/:id/status", employerOnly, handler.UpdateApplicationStatus)
		apps.DELETE("/:id", middleware.RequireRole(models.RoleCandidate), handler.WithdrawApplication)
	}
	jobs := apiV1.Group("/jobs")
	jobs.POST("/:id/apply", authMiddleware, middleware.RequireRole(models.RoleCandidate), handler.ApplyToJob)

	return router
}

func performRequest(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestApplicationHandler_ApplyToJob_Created(t *testing.T) {
	candidateID := uuid.New()
	jobID := uuid.New()
	created := &models.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      models.ApplicationStatusPending,
		AppliedAt:   time.Now(),
	}

	svc := &stubApplicationService{
		applyFn: func(ctx context.Context, req *dto.ApplyToJobRequest) (*models.Application, error) {
			assert.Equal(t, jobID, req.JobID)
			assert.Equal(t, candidateID, req.CandidateID)
			return created, nil
		},
	}
	router := setupApplicationRouter(svc)

	token := generateTestToken(candidateID, models.RoleCandidate)
	w := performRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/apply", jobID), token, gin.H{
		"cover_letter": "I would like to apply.",
		"resume_url":   "https://cv.example.com/ada.pdf",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.ApplicationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, models.ApplicationStatusPending, resp.Status)
}

func TestApplicationHandler_ApplyToJob_MissingFields(t *testing.T) {
	svc := &stubApplicationService{
		applyFn: func(ctx context.Context, req *dto.ApplyToJobRequest) (*models.Application, error) {
			t.Fatal("service must not be reached on validation failure")
			return nil, nil
		},
	}
	router := setupApplicationRouter(svc)

	token := generateTestToken(uuid.New(), models.RoleCandidate)
	w := performRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/apply", uuid.New()), token, gin.H{
		"cover_letter": "No resume attached",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplicationHandler_ApplyToJob_Conflict(t *testing.T) {
	svc := &stubApplicationService{
		applyFn: func(ctx context.Context, req *dto.ApplyToJobRequest) (*models.Application, error) {
			return nil, fmt.Errorf("%w: already applied to this job", services.ErrConflict)
		},
	}
	router := setupApplicationRouter(svc)

	token := generateTestToken(uuid.New(), models.RoleCandidate)
	w := performRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/apply", uuid.New()), token, gin.H{
		"cover_letter": "I would like to apply.",
		"resume_url":   "https://cv.example.com/ada.pdf",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApplicationHandler_ApplyToJob_RequiresCandidateRole(t *testing.T) {
	svc := &stubApplicationService{}
	router := setupApplicationRouter(svc)

	token := generateTestToken(uuid.New(), models.RoleEmployer)
	w := performRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/apply", uuid.New()), token, gin.H{
		"cover_letter": "I would like to apply.",
		"resume_url":   "https://cv.example.com/ada.pdf",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApplicationHandler_ApplyToJob_NoToken(t *testing.T) {
	svc := &stubApplicationService{}
	router := setupApplicationRouter(svc)

	w := performRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/apply", uuid.New()), "", gin.H{
		"cover_letter": "I would like to apply.",
		"resume_url":   "https://cv.example.com/ada.pdf",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApplicationHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	svc := &stubApplicationService{
		updateStatusFn: func(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
			return nil, fmt.Errorf("%w: from accepted to pending", services.ErrInvalidTransition)
		},
	}
	router := setupApplicationRouter(svc)

	token := generateTestToken(uuid.New(), models.RoleEmployer)
	w := performRequest(router, http.MethodPatch, fmt.Sprintf("/api/v1/applications/%s/status", uuid.New()), token, gin.H{
		"status": "pending",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApplicationHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	svc := &stubApplicationService{
		updateStatusFn: func(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
			t.Fatal("service must not be reached on validation failure")
			return nil, nil
		},
	}
	router := setupApplicationRouter(svc)

	token := generateTestToken(uuid.New(), models.RoleEmployer)
	w := performRequest(router, http.MethodPatch, fmt.Sprintf("/api/v1/applications/%s/status", uuid.New()), token, gin.H{
		"status": "on_hold",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplicationHandler_GetApplicationByID_NotFound(t *testing.T) {
	svc := &stubApplicationService{
		getByIDFn: func(ctx context.Context, req *dto.GetApplicationByIDRequest) (*models.Application, error) {
			return nil, services.ErrNotFound
		},
	}
	router := setupApplicationRouter(svc)

	token := generateTestToken(uuid.New(), models.RoleCandidate)
	w := performRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/applications/%s", uuid.New()), token, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplicationHandler_GetApplicationByID_PassesRole(t *testing.T) {
	requesterID := uuid.New()
	svc := &stubApplicationService{
		getByIDFn: func(ctx context.Context, req *dto.GetApplicationByIDRequest) (*models.Application, error) {
			assert.Equal(t, requesterID, req.RequesterID)
			assert.Equal(t, models.RoleEmployer, req.RequesterRole)
			return &models.Application{ID: req.ID}, nil
		},
	}
	router := setupApplicationRouter(svc)

	token := generateTestToken(requesterID, models.RoleEmployer)
	w := performRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/applications/%s", uuid.New()), token, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApplicationHandler_Withdraw_ReportsOutcome(t *testing.T) {
	svc := &stubApplicationService{
		withdrawFn: func(ctx context.Context, req *dto.WithdrawApplicationRequest) (bool, error) {
			return false, nil
		},
	}
	router := setupApplicationRouter(svc)

	token := generateTestToken(uuid.New(), models.RoleCandidate)
	w := performRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/applications/%s", uuid.New()), token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp["withdrawn"])
}

func TestApplicationHandler_Stats_EmployerOnly(t *testing.T) {
	svc := &stubApplicationService{
		statsFn: func(ctx context.Context, employerID uuid.UUID) (*models.ApplicationStats, error) {
			return &models.ApplicationStats{Total: 3, Pending: 1, Accepted: 2}, nil
		},
	}
	router := setupApplicationRouter(svc)

	// Candidate is rejected by the role middleware.
	candidateToken := generateTestToken(uuid.New(), models.RoleCandidate)
	w := performRequest(router, http.MethodGet, "/api/v1/applications/stats", candidateToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	employerToken := generateTestToken(uuid.New(), models.RoleEmployer)
	w = performRequest(router, http.MethodGet, "/api/v1/applications/stats", employerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ApplicationStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
}
