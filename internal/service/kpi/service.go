// Package kpi derives rolling summary statistics from production logs and open issues.
package kpi

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/repository"
	"github.com/mamadbah2/coopledger/internal/service/access"
	"github.com/mamadbah2/coopledger/pkg/numeric"
)

// RecentLogWindow is the number of most recent production logs the KPIs cover.
const RecentLogWindow = 10

// Service computes KPIs on demand. It never persists its output.
type Service struct {
	coops  repository.CooperativeRepository
	logs   repository.ProductionLogRepository
	ncs    repository.NonconformityRepository
	logger *zap.Logger
}

// NewService wires a KPI aggregator over the given store.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		coops:  store.Cooperatives,
		logs:   store.ProductionLogs,
		ncs:    store.Nonconformities,
		logger: logger,
	}
}

// Cooperative returns the KPIs of cooperativeID as seen by caller. Managers are
// always answered with their own cooperative.
func (s *Service) Cooperative(ctx context.Context, caller models.User, cooperativeID string) (models.CooperativeKPIs, error) {
	return s.compute(ctx, access.ScopeCooperative(caller, cooperativeID))
}

// Overview returns the KPIs of every cooperative. Officers only.
func (s *Service) Overview(ctx context.Context, caller models.User) ([]models.CooperativeOverview, error) {
	if err := access.RequireOfficer(caller); err != nil {
		return nil, err
	}
	return s.overview(ctx)
}

// Digest returns the same data as Overview for internal callers such as the scheduler.
func (s *Service) Digest(ctx context.Context) ([]models.CooperativeOverview, error) {
	return s.overview(ctx)
}

func (s *Service) overview(ctx context.Context) ([]models.CooperativeOverview, error) {
	coops, err := s.coops.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cooperatives: %w", err)
	}

	overview := make([]models.CooperativeOverview, 0, len(coops))
	for _, coop := range coops {
		kpis, err := s.compute(ctx, coop.ID)
		if err != nil {
			return nil, err
		}
		overview = append(overview, models.CooperativeOverview{Cooperative: coop, KPIs: kpis})
	}
	return overview, nil
}

func (s *Service) compute(ctx context.Context, cooperativeID string) (models.CooperativeKPIs, error) {
	logs, err := s.logs.List(ctx, models.ProductionLogFilter{CooperativeID: cooperativeID, Limit: RecentLogWindow})
	if err != nil {
		return models.CooperativeKPIs{}, fmt.Errorf("load recent production logs: %w", err)
	}

	if len(logs) == 0 {
		return models.CooperativeKPIs{CooperativeID: cooperativeID}, nil
	}

	var total float64
	losses := make([]float64, 0, len(logs))
	gradeA := make([]float64, 0, len(logs))
	for _, l := range logs {
		total += l.TotalProduction
		losses = append(losses, l.LossPercent)
		gradeA = append(gradeA, l.GradeAPercent)
	}

	openIssues, err := s.openIssues(ctx, cooperativeID)
	if err != nil {
		return models.CooperativeKPIs{}, err
	}

	return models.CooperativeKPIs{
		CooperativeID:   cooperativeID,
		TotalProduction: total,
		AvgLossPercent:  numeric.Round2(numeric.Mean(losses)),
		OpenIssues:      openIssues,
		AvgQualityA:     numeric.Round2(numeric.Mean(gradeA)),
	}, nil
}

// Stats aggregates every production log of a cooperative rather than the recent window.
func (s *Service) Stats(ctx context.Context, caller models.User, cooperativeID string) (models.CooperativeStats, error) {
	effective := access.ScopeCooperative(caller, cooperativeID)
	if _, err := s.coops.FindByID(ctx, effective); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.CooperativeStats{}, apperr.NotFound("cooperative not found")
		}
		return models.CooperativeStats{}, fmt.Errorf("load cooperative: %w", err)
	}

	summary, err := s.logs.Summarize(ctx, effective)
	if err != nil {
		return models.CooperativeStats{}, fmt.Errorf("summarize production logs: %w", err)
	}

	stats := models.CooperativeStats{CooperativeID: effective, LogCount: int(summary.Count)}
	if summary.Count == 0 {
		return stats, nil
	}
	stats.TotalProduction = numeric.Round2(summary.TotalProduction)
	stats.AvgLoss = numeric.Round2(summary.AvgLossPercent)
	stats.AvgQualityA = numeric.Round2(summary.AvgGradeAPercent)

	if stats.OpenIssues, err = s.openIssues(ctx, effective); err != nil {
		return models.CooperativeStats{}, err
	}
	return stats, nil
}

func (s *Service) openIssues(ctx context.Context, cooperativeID string) (int64, error) {
	n, err := s.ncs.Count(ctx, models.NonconformityFilter{
		CooperativeID: cooperativeID,
		Statuses:      models.ActiveStatuses(),
	})
	if err != nil {
		return 0, fmt.Errorf("count open issues: %w", err)
	}
	return n, nil
}
