// Package users implements account administration.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/repository"
	"github.com/mamadbah2/coopledger/internal/service/access"
	"github.com/mamadbah2/coopledger/internal/service/auth"
)

// Service manages user accounts.
type Service struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewService wires the user administration service.
func NewService(users repository.UserRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, logger: logger}
}

// List returns every account. Officers only.
func (s *Service) List(ctx context.Context, caller models.User) ([]models.User, error) {
	if err := access.RequireOfficer(caller); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update changes an account. Callers may edit themselves; officers may edit
// anyone. Only officers may change a role or cooperative affiliation.
func (s *Service) Update(ctx context.Context, caller models.User, id string, req models.UserUpdateRequest) (models.User, error) {
	if req.IsEmpty() {
		return models.User{}, apperr.Validation("no fields to update")
	}
	if caller.ID != id {
		if err := access.RequireOfficer(caller); err != nil {
			return models.User{}, apperr.Forbidden("cannot update other users")
		}
	}
	if !caller.IsOfficer() && (req.Role != nil || req.CooperativeID != nil) {
		return models.User{}, apperr.Forbidden("only officers can change role or cooperative")
	}

	update, err := s.buildUpdate(req)
	if err != nil {
		return models.User{}, err
	}

	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.User{}, apperr.NotFound("user %s not found", id)
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}

	role := current.Role
	if update.Role != nil {
		role = *update.Role
	}
	coop := current.CooperativeID
	if update.CooperativeID != nil {
		coop = *update.CooperativeID
	}
	if role == models.RoleManager && coop == "" {
		return models.User{}, apperr.Validation("managers require a cooperative_id")
	}

	result, err := s.users.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, apperr.Validation("email already registered")
		}
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	if !result.Matched {
		return models.User{}, apperr.NotFound("user %s not found", id)
	}

	update.Apply(&current)
	s.logger.Info("user updated", zap.String("user_id", id), zap.String("by", caller.ID))
	return current, nil
}

func (s *Service) buildUpdate(req models.UserUpdateRequest) (models.UserUpdate, error) {
	var update models.UserUpdate

	if req.Email != nil {
		email := auth.NormalizeEmail(*req.Email)
		if email == "" {
			return update, apperr.Validation("email cannot be empty")
		}
		update.Email = &email
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		update.Name = &name
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return update, apperr.Validation("invalid role %q", *req.Role)
		}
		role := *req.Role
		update.Role = &role
	}
	if req.CooperativeID != nil {
		coop := strings.TrimSpace(*req.CooperativeID)
		update.CooperativeID = &coop
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return update, err
		}
		update.PasswordHash = &hash
	}
	return update, nil
}

// Delete removes an account. Officers only, and never their own.
func (s *Service) Delete(ctx context.Context, caller models.User, id string) error {
	if err := access.RequireOfficer(caller); err != nil {
		return err
	}
	if caller.ID == id {
		return apperr.Validation("cannot delete your own account")
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return apperr.NotFound("user %s not found", id)
	}

	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("by", caller.ID))
	return nil
}
