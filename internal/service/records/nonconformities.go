package records

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/service/access"
)

// ListNonconformities returns issues newest first, scoped to the caller's
// cooperative and optionally narrowed to one status.
func (s *Service) ListNonconformities(ctx context.Context, caller models.User, cooperativeID, status string) ([]models.Nonconformity, error) {
	filter := models.NonconformityFilter{CooperativeID: access.ScopeCooperative(caller, cooperativeID)}
	if status != "" {
		parsed, err := models.ParseNonconformityStatus(status)
		if err != nil {
			return nil, apperr.Validation("%s", err.Error())
		}
		filter.Statuses = []models.NonconformityStatus{parsed}
	}

	ncs, err := s.store.Nonconformities.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list nonconformities: %w", err)
	}
	return ncs, nil
}

// GetNonconformity returns an issue the caller may see.
func (s *Service) GetNonconformity(ctx context.Context, caller models.User, id string) (models.Nonconformity, error) {
	nc, err := s.store.Nonconformities.FindByID(ctx, id)
	if err != nil {
		return models.Nonconformity{}, lookupErr(err, "nonconformity", id)
	}
	if err := access.CheckOwnership(caller, nc.CooperativeID); err != nil {
		return models.Nonconformity{}, err
	}
	return nc, nil
}

// CreateNonconformity records an issue in the open state.
func (s *Service) CreateNonconformity(ctx context.Context, caller models.User, input models.NonconformityInput) (models.Nonconformity, error) {
	if err := access.CheckOwnership(caller, input.CooperativeID); err != nil {
		return models.Nonconformity{}, apperr.Forbidden("cannot record issues for other cooperatives")
	}
	if !input.Category.Valid() {
		return models.Nonconformity{}, apperr.Validation("invalid category %q", input.Category)
	}
	if !input.Severity.Valid() {
		return models.Nonconformity{}, apperr.Validation("invalid severity %q", input.Severity)
	}

	now := s.now()
	date := input.Date.UTC()
	if input.Date.IsZero() {
		date = now
	}
	action := input.CorrectiveAction
	if strings.TrimSpace(action) == "" {
		action = DefaultCorrectiveAction
	}

	nc := models.Nonconformity{
		ID:               s.newID(),
		CooperativeID:    input.CooperativeID,
		ProductionLogID:  input.ProductionLogID,
		Date:             date,
		Category:         input.Category,
		Severity:         input.Severity,
		Description:      input.Description,
		CorrectiveAction: action,
		Status:           models.StatusOpen,
		AssignedTo:       input.AssignedTo,
		CreatedAt:        now,
	}
	if err := s.store.Nonconformities.Insert(ctx, nc); err != nil {
		return models.Nonconformity{}, fmt.Errorf("insert nonconformity: %w", err)
	}
	return nc, nil
}

// UpdateNonconformity applies a partial update. Moving to closed stamps the
// closed date; any other status clears it.
func (s *Service) UpdateNonconformity(ctx context.Context, caller models.User, id string, update models.NonconformityUpdate) (models.Nonconformity, error) {
	update.ClosedDate = nil
	update.ClearClosedDate = false
	if update.IsEmpty() {
		return models.Nonconformity{}, apperr.Validation("no fields to update")
	}
	if update.Category != nil && !update.Category.Valid() {
		return models.Nonconformity{}, apperr.Validation("invalid category %q", *update.Category)
	}
	if update.Severity != nil && !update.Severity.Valid() {
		return models.Nonconformity{}, apperr.Validation("invalid severity %q", *update.Severity)
	}

	current, err := s.GetNonconformity(ctx, caller, id)
	if err != nil {
		return models.Nonconformity{}, err
	}

	if update.Status != nil {
		switch *update.Status {
		case models.StatusClosed:
			closed := s.now()
			update.ClosedDate = &closed
		case models.StatusOpen, models.StatusInProgress:
			update.ClearClosedDate = true
		default:
			return models.Nonconformity{}, apperr.Validation("invalid status %q", *update.Status)
		}
	}

	result, err := s.store.Nonconformities.Update(ctx, current.ID, update)
	if err != nil {
		return models.Nonconformity{}, fmt.Errorf("update nonconformity: %w", err)
	}
	if !result.Matched {
		return models.Nonconformity{}, apperr.NotFound("nonconformity %s not found", id)
	}

	update.Apply(&current)
	if update.Status != nil {
		s.logger.Info("nonconformity status changed",
			zap.String("nonconformity_id", current.ID),
			zap.String("status", string(current.Status)),
		)
	}
	return current, nil
}
