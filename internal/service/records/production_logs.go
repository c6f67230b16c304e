package records

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/service/access"
)

// DefaultCorrectiveAction is recorded on implicit nonconformities when the log has none.
const DefaultCorrectiveAction = "Pending"

// ListProductionLogs returns logs newest first, scoped to the caller's cooperative.
func (s *Service) ListProductionLogs(ctx context.Context, caller models.User, cooperativeID string) ([]models.ProductionLog, error) {
	filter := models.ProductionLogFilter{CooperativeID: access.ScopeCooperative(caller, cooperativeID)}
	logs, err := s.store.ProductionLogs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list production logs: %w", err)
	}
	return logs, nil
}

// GetProductionLog returns a log the caller may see.
func (s *Service) GetProductionLog(ctx context.Context, caller models.User, id string) (models.ProductionLog, error) {
	log, err := s.store.ProductionLogs.FindByID(ctx, id)
	if err != nil {
		return models.ProductionLog{}, lookupErr(err, "production log", id)
	}
	if err := access.CheckOwnership(caller, log.CooperativeID); err != nil {
		return models.ProductionLog{}, err
	}
	return log, nil
}

// CreateProductionLog stores a log. A log flagged with a nonconformity and
// carrying a description also opens a quality nonconformity linked to it.
func (s *Service) CreateProductionLog(ctx context.Context, caller models.User, input models.ProductionLogInput) (models.ProductionLogCreated, error) {
	if err := access.CheckOwnership(caller, input.CooperativeID); err != nil {
		return models.ProductionLogCreated{}, apperr.Forbidden("cannot create logs for other cooperatives")
	}
	if !input.EnergyUse.Valid() {
		return models.ProductionLogCreated{}, apperr.Validation("invalid energy use %q", input.EnergyUse)
	}

	log := models.ProductionLog{
		ID:                       s.newID(),
		CooperativeID:            input.CooperativeID,
		Date:                     input.Date.UTC(),
		BatchPeriod:              input.BatchPeriod,
		TotalProduction:          input.TotalProduction,
		GradeAPercent:            input.GradeAPercent,
		GradeBPercent:            input.GradeBPercent,
		LossPercent:              input.LossPercent,
		LossKg:                   input.LossKg,
		EnergyUse:                input.EnergyUse,
		HasNonconformity:         input.HasNonconformity,
		NonconformityDescription: input.NonconformityDescription,
		CorrectiveAction:         input.CorrectiveAction,
		CreatedAt:                s.now(),
	}
	if err := s.store.ProductionLogs.Insert(ctx, log); err != nil {
		return models.ProductionLogCreated{}, fmt.Errorf("insert production log: %w", err)
	}

	created := models.ProductionLogCreated{ProductionLog: log}
	if !log.HasNonconformity || log.NonconformityDescription == "" {
		return created, nil
	}

	action := log.CorrectiveAction
	if action == "" {
		action = DefaultCorrectiveAction
	}
	nc := models.Nonconformity{
		ID:               s.newID(),
		CooperativeID:    log.CooperativeID,
		ProductionLogID:  log.ID,
		Date:             log.Date,
		Category:         models.CategoryQuality,
		Severity:         models.SeverityMedium,
		Description:      log.NonconformityDescription,
		CorrectiveAction: action,
		Status:           models.StatusOpen,
		CreatedAt:        s.now(),
	}
	if err := s.store.Nonconformities.Insert(ctx, nc); err != nil {
		// The log is already stored; surface the failure without undoing it.
		return created, fmt.Errorf("insert implicit nonconformity for log %s: %w", log.ID, err)
	}

	s.logger.Info("nonconformity opened from production log",
		zap.String("production_log_id", log.ID),
		zap.String("nonconformity_id", nc.ID),
	)
	created.Nonconformity = &nc
	return created, nil
}

// UpdateProductionLog applies a partial update and returns the stored log.
func (s *Service) UpdateProductionLog(ctx context.Context, caller models.User, id string, update models.ProductionLogUpdate) (models.ProductionLog, error) {
	if update.IsEmpty() {
		return models.ProductionLog{}, apperr.Validation("no fields to update")
	}
	if update.EnergyUse != nil && !update.EnergyUse.Valid() {
		return models.ProductionLog{}, apperr.Validation("invalid energy use %q", *update.EnergyUse)
	}
	if update.Date != nil {
		date := update.Date.UTC()
		update.Date = &date
	}

	current, err := s.GetProductionLog(ctx, caller, id)
	if err != nil {
		return models.ProductionLog{}, err
	}

	result, err := s.store.ProductionLogs.Update(ctx, current.ID, update)
	if err != nil {
		return models.ProductionLog{}, fmt.Errorf("update production log: %w", err)
	}
	if !result.Matched {
		return models.ProductionLog{}, apperr.NotFound("production log %s not found", id)
	}

	update.Apply(&current)
	return current, nil
}

// DeleteProductionLog removes a log the caller owns.
func (s *Service) DeleteProductionLog(ctx context.Context, caller models.User, id string) error {
	current, err := s.GetProductionLog(ctx, caller, id)
	if err != nil {
		return err
	}

	deleted, err := s.store.ProductionLogs.Delete(ctx, current.ID)
	if err != nil {
		return fmt.Errorf("delete production log: %w", err)
	}
	if !deleted {
		return apperr.NotFound("production log %s not found", id)
	}
	return nil
}
