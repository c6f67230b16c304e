// Package auth registers users, logs them in and resolves bearer credentials to callers.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/repository"
)

// Service implements the authentication gate.
type Service struct {
	users  repository.UserRepository
	tokens *TokenManager
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the authentication service.
func NewService(users repository.UserRepository, tokens *TokenManager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, tokens: tokens, logger: logger, now: time.Now}
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and returns a credential for it. A duplicate email
// is rejected before anything is written.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.TokenResponse, error) {
	email := NormalizeEmail(req.Email)
	cooperativeID := strings.TrimSpace(req.CooperativeID)

	switch req.Role {
	case models.RoleManager:
		if cooperativeID == "" {
			return models.TokenResponse{}, apperr.Validation("cooperative_id is required for managers")
		}
	case models.RoleOfficer:
	default:
		return models.TokenResponse{}, apperr.Validation("invalid role %q", req.Role)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.TokenResponse{}, apperr.Validation("email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return models.TokenResponse{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return models.TokenResponse{}, err
	}

	user := models.User{
		ID:            uuid.NewString(),
		Email:         email,
		Name:          strings.TrimSpace(req.Name),
		Role:          req.Role,
		CooperativeID: cooperativeID,
		PasswordHash:  hash,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.TokenResponse{}, apperr.Validation("email already registered")
		}
		return models.TokenResponse{}, fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return s.respond(user)
}

// Login checks credentials and returns a fresh credential.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (models.TokenResponse, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.TokenResponse{}, apperr.Unauthenticated("invalid credentials")
		}
		return models.TokenResponse{}, fmt.Errorf("lookup user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, req.Password) {
		return models.TokenResponse{}, apperr.Unauthenticated("invalid credentials")
	}

	return s.respond(user)
}

// Authenticate resolves a bearer credential to the current user record.
func (s *Service) Authenticate(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, apperr.Unauthenticated("missing bearer token")
	}

	claims, err := s.tokens.Verify(token)
	switch {
	case errors.Is(err, ErrTokenExpired):
		return models.User{}, apperr.Unauthenticated("token expired")
	case err != nil:
		return models.User{}, apperr.Unauthenticated("invalid token")
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.User{}, apperr.Unauthenticated("user not found")
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *Service) respond(user models.User) (models.TokenResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return models.TokenResponse{}, err
	}
	return models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}
