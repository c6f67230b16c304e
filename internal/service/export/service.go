// Package export copies production logs into a spreadsheet for offline review.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/repository"
	"github.com/mamadbah2/coopledger/internal/repository/sheets"
	"github.com/mamadbah2/coopledger/internal/service/access"
)

// ErrDisabled is returned when no spreadsheet target is configured.
var ErrDisabled = errors.New("export target not configured")

const (
	sheetName  = "ProductionLogs"
	writeRange = sheetName + "!A1"
)

var header = []interface{}{
	"id", "cooperative_id", "date", "batch_period", "total_production",
	"grade_a_percent", "grade_b_percent", "post_harvest_loss_percent",
	"post_harvest_loss_kg", "energy_use", "has_nonconformity",
	"nonconformity_description", "corrective_action",
}

// Service writes production logs to the configured sheet.
type Service struct {
	logs   repository.ProductionLogRepository
	sheet  sheets.Repository
	logger *zap.Logger
}

// NewService wires the exporter. A nil sheet leaves the export disabled.
func NewService(logs repository.ProductionLogRepository, sheet sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logs: logs, sheet: sheet, logger: logger}
}

// ProductionLogs replaces the sheet contents with the current logs, optionally
// narrowed to one cooperative. Officers only.
func (s *Service) ProductionLogs(ctx context.Context, caller models.User, cooperativeID string) (models.ExportResult, error) {
	if err := access.RequireOfficer(caller); err != nil {
		return models.ExportResult{}, err
	}
	if s.sheet == nil {
		return models.ExportResult{}, ErrDisabled
	}

	logs, err := s.logs.List(ctx, models.ProductionLogFilter{CooperativeID: cooperativeID, Unbounded: true})
	if err != nil {
		return models.ExportResult{}, fmt.Errorf("list production logs: %w", err)
	}

	rows := make([][]interface{}, 0, len(logs)+1)
	rows = append(rows, header)
	for _, l := range logs {
		rows = append(rows, row(l))
	}

	if err := s.sheet.ClearRange(ctx, sheetName); err != nil {
		return models.ExportResult{}, err
	}
	if err := s.sheet.WriteRows(ctx, writeRange, rows); err != nil {
		return models.ExportResult{}, err
	}

	s.logger.Info("production logs exported", zap.Int("rows", len(logs)), zap.String("cooperative_id", cooperativeID))
	return models.ExportResult{Rows: len(logs)}, nil
}

func row(l models.ProductionLog) []interface{} {
	return []interface{}{
		l.ID,
		l.CooperativeID,
		l.Date.UTC().Format(time.RFC3339),
		l.BatchPeriod,
		l.TotalProduction,
		l.GradeAPercent,
		l.GradeBPercent,
		l.LossPercent,
		l.LossKg,
		string(l.EnergyUse),
		l.HasNonconformity,
		l.NonconformityDescription,
		l.CorrectiveAction,
	}
}
