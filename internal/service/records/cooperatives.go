package records

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
	"github.com/mamadbah2/coopledger/internal/domain/models"
)

// ListCooperatives returns every cooperative. The directory is visible to all roles.
func (s *Service) ListCooperatives(ctx context.Context) ([]models.Cooperative, error) {
	coops, err := s.store.Cooperatives.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cooperatives: %w", err)
	}
	return coops, nil
}

// GetCooperative returns a single cooperative.
func (s *Service) GetCooperative(ctx context.Context, id string) (models.Cooperative, error) {
	coop, err := s.store.Cooperatives.FindByID(ctx, id)
	if err != nil {
		return models.Cooperative{}, lookupErr(err, "cooperative", id)
	}
	return coop, nil
}

// CreateCooperative registers a cooperative. Status defaults to active.
func (s *Service) CreateCooperative(ctx context.Context, caller models.User, input models.CooperativeInput) (models.Cooperative, error) {
	status := input.Status
	if status == "" {
		status = models.CooperativeActive
	}
	if !status.Valid() {
		return models.Cooperative{}, apperr.Validation("invalid cooperative status %q", status)
	}

	coop := models.Cooperative{
		ID:        s.newID(),
		Name:      strings.TrimSpace(input.Name),
		Country:   strings.TrimSpace(input.Country),
		Product:   strings.TrimSpace(input.Product),
		Status:    status,
		CreatedAt: s.now(),
	}
	if err := s.store.Cooperatives.Insert(ctx, coop); err != nil {
		return models.Cooperative{}, fmt.Errorf("insert cooperative: %w", err)
	}

	s.logger.Info("cooperative created", zap.String("cooperative_id", coop.ID), zap.String("by", caller.ID))
	return coop, nil
}
