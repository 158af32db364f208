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

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const refreshKeyPrefix = "refresh:"

// AccessClaims is the JWT payload carried by access tokens. The role claim
// lets middleware authorize without a user lookup on every request.
type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	repo              storage.UserRepository
	redis             *redis.Client
	jwtSecret         string
	accessExpiration  time.Duration
	refreshExpiration time.Duration
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(repo storage.UserRepository, redisClient *redis.Client, jwtSecret string, accessExpiration, refreshExpiration time.Duration) AuthService {
	return &authService{
		repo:              repo,
		redis:             redisClient,
		jwtSecret:         jwtSecret,
		accessExpiration:  accessExpiration,
		refreshExpiration: refreshExpiration,
	}
}

// Register creates a new candidate or employer account.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Register: Error hashing password for %s: %v", req.Email, err)
		return nil, fmt.Errorf("internal error creating user: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Mobile:       req.Mobile,
		Location:     req.Location,
		Company:      req.Company,
		Position:     req.Position,
		Skills:       req.Skills,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) || errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		log.Printf("Register: Error creating user %s: %v", req.Email, err)
		return nil, fmt.Errorf("internal error creating user: %w", err)
	}
	return created, nil
}

// Login verifies credentials and issues a token pair. Blocked accounts are
// rejected with the same error as bad credentials.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, string, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Login attempt failed for email %s: user not found", req.Email)
			return nil, "", "", ErrInvalidCredentials
		}
		log.Printf("Error fetching user by email %s during login: %v", req.Email, err)
		return nil, "", "", fmt.Errorf("internal error during login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Printf("Login attempt failed for email %s: invalid password", req.Email)
		return nil, "", "", ErrInvalidCredentials
	}

	if user.Blocked {
		log.Printf("Login attempt rejected for blocked account %s", req.Email)
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a fresh
// pair is issued, so a stolen token can be replayed at most once.
func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error) {
	key := refreshKeyPrefix + req.RefreshToken
	val, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", ErrInvalidCredentials
		}
		log.Printf("Refresh: Error reading refresh token: %v", err)
		return "", "", fmt.Errorf("internal error during token refresh: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		log.Printf("Refresh: Corrupt refresh token payload %q: %v", val, err)
		return "", "", ErrInvalidCredentials
	}

	if err := s.redis.Del(ctx, key).Err(); err != nil {
		log.Printf("Refresh: Error revoking refresh token: %v", err)
		return "", "", fmt.Errorf("internal error during token refresh: %w", err)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		log.Printf("Refresh: Error fetching user %s: %v", userID, err)
		return "", "", fmt.Errorf("internal error during token refresh: %w", err)
	}
	if user.Blocked {
		return "", "", ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token. Revoking an unknown token is a
// no-op.
func (s *authService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	if err := s.redis.Del(ctx, refreshKeyPrefix+req.RefreshToken).Err(); err != nil {
		log.Printf("Logout: Error revoking refresh token: %v", err)
		return fmt.Errorf("internal error during logout: %w", err)
	}
	return nil
}

// GetUserByID retrieves an account by id.
func (s *authService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching user %s", id))
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (string, string, error) {
	now := time.Now()
	claims := &AccessClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	access, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		log.Printf("Error generating JWT token for user %s: %v", user.Email, err)
		return "", "", fmt.Errorf("failed to generate login token: %w", err)
	}

	refresh := uuid.NewString()
	if err := s.redis.Set(ctx, refreshKeyPrefix+refresh, user.ID.String(), s.refreshExpiration).Err(); err != nil {
		log.Printf("Error storing refresh token for user %s: %v", user.Email, err)
		return "", "", fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return access, refresh, nil
}
