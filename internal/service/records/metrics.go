package records

import (
	"context"
	"fmt"

	"github.com/mamadbah2/coopledger/internal/domain/models"
)

// ListFarms returns every farm metrics record.
func (s *Service) ListFarms(ctx context.Context) ([]models.Farm, error) {
	farms, err := s.store.Farms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	return farms, nil
}

// GetFarm returns one farm metrics record.
func (s *Service) GetFarm(ctx context.Context, id string) (models.Farm, error) {
	farm, err := s.store.Farms.FindByID(ctx, id)
	if err != nil {
		return models.Farm{}, lookupErr(err, "farm", id)
	}
	return farm, nil
}

// CreateFarm records farm metrics stamped with the current time.
func (s *Service) CreateFarm(ctx context.Context, input models.FarmInput) (models.Farm, error) {
	farm := models.Farm{
		ID:             s.newID(),
		FarmName:       input.FarmName,
		Location:       input.Location,
		AreaHectares:   input.AreaHectares,
		CropType:       input.CropType,
		GrowthStage:    input.GrowthStage,
		HealthStatus:   input.HealthStatus,
		Temperature:    input.Temperature,
		Humidity:       input.Humidity,
		SoilMoisture:   input.SoilMoisture,
		PredictedYield: input.PredictedYield,
		Timestamp:      s.now(),
	}
	if err := s.store.Farms.Insert(ctx, farm); err != nil {
		return models.Farm{}, fmt.Errorf("insert farm: %w", err)
	}
	return farm, nil
}

// ListESG returns every ESG period.
func (s *Service) ListESG(ctx context.Context) ([]models.ESGMetrics, error) {
	metrics, err := s.store.ESG.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list esg metrics: %w", err)
	}
	return metrics, nil
}

// CreateESG records one ESG period.
func (s *Service) CreateESG(ctx context.Context, input models.ESGInput) (models.ESGMetrics, error) {
	metrics := models.ESGMetrics{
		ID:              s.newID(),
		Period:          input.Period,
		WaterUsage:      input.WaterUsage,
		CarbonFootprint: input.CarbonFootprint,
		WasteReduced:    input.WasteReduced,
		RenewableEnergy: input.RenewableEnergy,
		WomenEmployed:   input.WomenEmployed,
		TrainingHours:   input.TrainingHours,
		IncomeGrowth:    input.IncomeGrowth,
		ISO9001Score:    input.ISO9001Score,
		ISO14001Score:   input.ISO14001Score,
		ISO45001Score:   input.ISO45001Score,
		AuditCompliance: input.AuditCompliance,
		Timestamp:       s.now(),
	}
	if err := s.store.ESG.Insert(ctx, metrics); err != nil {
		return models.ESGMetrics{}, fmt.Errorf("insert esg metrics: %w", err)
	}
	return metrics, nil
}
