// Package maintenance implements the officer-only seed and repair operations.
// Every operation works record by record and reports what it changed.
package maintenance

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
	"github.com/mamadbah2/coopledger/internal/service/access"
)

// Service runs bulk maintenance against the store.
type Service struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires the maintenance service.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Reinit wipes cooperatives, production logs and nonconformities, then reseeds them.
func (s *Service) Reinit(ctx context.Context, caller models.User) (models.ReinitResult, error) {
	if err := access.RequireOfficer(caller); err != nil {
		return models.ReinitResult{}, err
	}

	var result models.ReinitResult
	var err error

	if result.DeletedNonconformities, err = s.store.Nonconformities.DeleteAll(ctx); err != nil {
		return result, fmt.Errorf("wipe nonconformities: %w", err)
	}
	if result.DeletedProductionLogs, err = s.store.ProductionLogs.DeleteAll(ctx); err != nil {
		return result, fmt.Errorf("wipe production logs: %w", err)
	}
	if result.DeletedCooperatives, err = s.store.Cooperatives.DeleteAll(ctx); err != nil {
		return result, fmt.Errorf("wipe cooperatives: %w", err)
	}

	s.logger.Info("collections wiped",
		zap.Int64("cooperatives", result.DeletedCooperatives),
		zap.Int64("production_logs", result.DeletedProductionLogs),
		zap.Int64("nonconformities", result.DeletedNonconformities),
	)

	if result.Seed, err = s.seedCooperatives(ctx); err != nil {
		return result, err
	}
	return result, nil
}

// FixManagerCooperatives assigns every manager without a valid cooperative to
// the requested cooperative, or to the first one when none is requested.
func (s *Service) FixManagerCooperatives(ctx context.Context, caller models.User, req models.FixManagersRequest) (models.FixManagersResult, error) {
	if err := access.RequireOfficer(caller); err != nil {
		return models.FixManagersResult{}, err
	}

	coops, err := s.store.Cooperatives.List(ctx)
	if err != nil {
		return models.FixManagersResult{}, fmt.Errorf("list cooperatives: %w", err)
	}
	known := make(map[string]struct{}, len(coops))
	for _, c := range coops {
		known[c.ID] = struct{}{}
	}

	target := strings.TrimSpace(req.CooperativeID)
	switch {
	case target != "":
		if _, ok := known[target]; !ok {
			return models.FixManagersResult{}, apperr.Validation("cooperative %s does not exist", target)
		}
	case len(coops) > 0:
		target = coops[0].ID
	default:
		return models.FixManagersResult{}, apperr.Validation("no cooperatives available")
	}

	users, err := s.store.Users.List(ctx)
	if err != nil {
		return models.FixManagersResult{}, fmt.Errorf("list users: %w", err)
	}

	result := models.FixManagersResult{CooperativeID: target}
	for _, u := range users {
		if u.Role != models.RoleManager {
			continue
		}
		result.Scanned++
		if _, ok := known[u.CooperativeID]; ok {
			continue
		}

		coop := target
		res, err := s.store.Users.Update(ctx, u.ID, models.UserUpdate{CooperativeID: &coop})
		if err != nil {
			return result, fmt.Errorf("assign cooperative to user %s: %w", u.ID, err)
		}
		if res.Modified {
			result.Updated++
		}
	}

	s.logger.Info("manager cooperatives fixed",
		zap.String("cooperative_id", target),
		zap.Int("scanned", result.Scanned),
		zap.Int("updated", result.Updated),
	)
	return result, nil
}

// RewriteEmailDomain moves user emails from one domain to another. Addresses
// that would collide with an existing account are skipped.
func (s *Service) RewriteEmailDomain(ctx context.Context, caller models.User, req models.EmailDomainRequest) (models.EmailDomainResult, error) {
	if err := access.RequireOfficer(caller); err != nil {
		return models.EmailDomainResult{}, err
	}

	from := normalizeDomain(req.From)
	to := normalizeDomain(req.To)
	if from == "" || to == "" {
		return models.EmailDomainResult{}, apperr.Validation("both domains are required")
	}
	if from == to {
		return models.EmailDomainResult{}, apperr.Validation("domains must differ")
	}

	users, err := s.store.Users.List(ctx)
	if err != nil {
		return models.EmailDomainResult{}, fmt.Errorf("list users: %w", err)
	}

	taken := make(map[string]struct{}, len(users))
	for _, u := range users {
		taken[strings.ToLower(u.Email)] = struct{}{}
	}

	var result models.EmailDomainResult
	for _, u := range users {
		local, domain, ok := strings.Cut(strings.ToLower(u.Email), "@")
		if !ok || domain != from {
			continue
		}
		result.Scanned++

		next := local + "@" + to
		if _, clash := taken[next]; clash {
			result.Skipped++
			continue
		}

		res, err := s.store.Users.Update(ctx, u.ID, models.UserUpdate{Email: &next})
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			result.Skipped++
			continue
		case err != nil:
			return result, fmt.Errorf("rewrite email of user %s: %w", u.ID, err)
		}
		if res.Matched {
			result.Updated++
			delete(taken, strings.ToLower(u.Email))
			taken[next] = struct{}{}
		}
	}

	s.logger.Info("email domain rewritten",
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func normalizeDomain(domain string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "@")
}
