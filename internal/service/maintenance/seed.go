package maintenance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/service/access"
)

const logsPerCooperative = 10

var sampleCooperatives = []struct {
	name, country, product string
}{
	{"Green Valley Coffee Cooperative", "Ethiopia", "Coffee"},
	{"Mediterranean Olive Oil Cooperative", "Tunisia", "Olive Oil"},
}

var sampleIssues = []struct {
	category    models.NonconformityCategory
	description string
	action      string
}{
	{models.CategoryQuality, "Quality issues with batch - uneven size distribution", "Improved sorting process and training for workers"},
	{models.CategorySafety, "Worker safety concern - inadequate protective equipment", "Provided new safety gear and conducted safety training"},
	{models.CategoryEnvironmental, "Excessive water usage detected during processing", "Installed water-efficient equipment and monitoring system"},
	{models.CategoryQuality, "Contamination risk identified in storage area", "Deep cleaned storage facility and implemented regular inspection"},
	{models.CategorySafety, "Unsafe handling of heavy equipment reported", "Updated safety protocols and conducted equipment training"},
	{models.CategoryEnvironmental, "Waste disposal not following best practices", "Implemented proper waste segregation and disposal system"},
	{models.CategoryQuality, "Moisture content exceeds acceptable limits", "Adjusted drying process and added quality checkpoints"},
	{models.CategorySafety, "Inadequate ventilation in processing area", "Installed ventilation fans and air quality monitors"},
	{models.CategoryEnvironmental, "Pesticide residue above threshold levels", "Switched to organic pest control methods"},
	{models.CategoryQuality, "Packaging materials not meeting standards", "Sourced new supplier with certified materials"},
}

var sampleSeverities = []models.Severity{models.SeverityLow, models.SeverityMedium, models.SeverityHigh, models.SeverityMedium}

var sampleEnergy = []models.EnergyUse{models.EnergyLow, models.EnergyMedium, models.EnergyHigh}

var sampleFarms = []models.FarmInput{
	{FarmName: "Sunrise Paddy Fields", Location: "Thanjavur, India", AreaHectares: 42.5, CropType: "Rice", GrowthStage: "Tillering", HealthStatus: "Good", Temperature: 29.5, Humidity: 78, SoilMoisture: 82, PredictedYield: 4200},
	{FarmName: "Highland Coffee Estate", Location: "Sidama, Ethiopia", AreaHectares: 18, CropType: "Coffee", GrowthStage: "Flowering", HealthStatus: "Excellent", Temperature: 21, Humidity: 65, SoilMoisture: 58, PredictedYield: 1900},
	{FarmName: "Olive Grove Sfax", Location: "Sfax, Tunisia", AreaHectares: 35, CropType: "Olives", GrowthStage: "Fruit set", HealthStatus: "Fair", Temperature: 27, Humidity: 45, SoilMoisture: 31, PredictedYield: 2600},
	{FarmName: "Riverbend Maize", Location: "Kaduna, Nigeria", AreaHectares: 27.3, CropType: "Maize", GrowthStage: "Vegetative", HealthStatus: "Good", Temperature: 30, Humidity: 60, SoilMoisture: 55, PredictedYield: 3100},
	{FarmName: "Terrace Tea Gardens", Location: "Kericho, Kenya", AreaHectares: 12.8, CropType: "Tea", GrowthStage: "Plucking", HealthStatus: "Needs attention", Temperature: 19, Humidity: 81, SoilMoisture: 70, PredictedYield: 1500},
}

var sampleESG = []models.ESGInput{
	{Period: "2024-Q1", WaterUsage: 150000, CarbonFootprint: 1100, WasteReduced: 220, RenewableEnergy: 28, WomenEmployed: 38, TrainingHours: 120, IncomeGrowth: 12, ISO9001Score: 81, ISO14001Score: 76, ISO45001Score: 84, AuditCompliance: 88},
	{Period: "2024-Q2", WaterUsage: 141000, CarbonFootprint: 1020, WasteReduced: 260, RenewableEnergy: 32, WomenEmployed: 42, TrainingHours: 135, IncomeGrowth: 14.5, ISO9001Score: 84, ISO14001Score: 79, ISO45001Score: 86, AuditCompliance: 90},
	{Period: "2024-Q3", WaterUsage: 132000, CarbonFootprint: 940, WasteReduced: 305, RenewableEnergy: 36, WomenEmployed: 46, TrainingHours: 150, IncomeGrowth: 17, ISO9001Score: 86, ISO14001Score: 82, ISO45001Score: 89, AuditCompliance: 93},
	{Period: "2024-Q4", WaterUsage: 120000, CarbonFootprint: 800, WasteReduced: 350, RenewableEnergy: 40, WomenEmployed: 50, TrainingHours: 160, IncomeGrowth: 20, ISO9001Score: 88, ISO14001Score: 85, ISO45001Score: 91, AuditCompliance: 95},
}

// SeedCooperatives inserts two sample cooperatives with ten production logs
// each and their linked nonconformities. It does nothing when any cooperative exists.
func (s *Service) SeedCooperatives(ctx context.Context, caller models.User) (models.SeedResult, error) {
	if err := access.RequireOfficer(caller); err != nil {
		return models.SeedResult{}, err
	}
	return s.seedCooperatives(ctx)
}

func (s *Service) seedCooperatives(ctx context.Context) (models.SeedResult, error) {
	existing, err := s.store.Cooperatives.Count(ctx)
	if err != nil {
		return models.SeedResult{}, fmt.Errorf("count cooperatives: %w", err)
	}
	if existing > 0 {
		return models.SeedResult{Message: "sample cooperatives already initialized", Skipped: true}, nil
	}

	now := s.now()
	coops := make([]models.Cooperative, 0, len(sampleCooperatives))
	for _, sc := range sampleCooperatives {
		coops = append(coops, models.Cooperative{
			ID:        s.newID(),
			Name:      sc.name,
			Country:   sc.country,
			Product:   sc.product,
			Status:    models.CooperativeActive,
			CreatedAt: now,
		})
	}
	if err := s.store.Cooperatives.InsertMany(ctx, coops); err != nil {
		return models.SeedResult{}, fmt.Errorf("insert cooperatives: %w", err)
	}

	result := models.SeedResult{Message: "sample cooperatives initialized", Cooperatives: len(coops)}
	for _, coop := range coops {
		for i := 0; i < logsPerCooperative; i++ {
			log, nc := s.sampleLog(coop.ID, now, i)
			if err := s.store.ProductionLogs.Insert(ctx, log); err != nil {
				return result, fmt.Errorf("insert sample log: %w", err)
			}
			result.ProductionLogs++

			if nc == nil {
				continue
			}
			if err := s.store.Nonconformities.Insert(ctx, *nc); err != nil {
				return result, fmt.Errorf("insert sample nonconformity: %w", err)
			}
			result.Nonconformities++
		}
	}

	s.logger.Info("sample cooperatives seeded",
		zap.Int("cooperatives", result.Cooperatives),
		zap.Int("production_logs", result.ProductionLogs),
		zap.Int("nonconformities", result.Nonconformities),
	)
	return result, nil
}

// sampleLog builds the i-th log of a cooperative, going back three days per step.
// Every fourth log carries a nonconformity.
func (s *Service) sampleLog(cooperativeID string, now time.Time, i int) (models.ProductionLog, *models.Nonconformity) {
	date := now.AddDate(0, 0, -3*i)
	total := float64(500 + i*30)
	loss := float64(12 + i%3)
	flagged := i%4 == 0

	log := models.ProductionLog{
		ID:               s.newID(),
		CooperativeID:    cooperativeID,
		Date:             date,
		BatchPeriod:      fmt.Sprintf("Week %d", logsPerCooperative-i),
		TotalProduction:  total,
		GradeAPercent:    float64(75 - i%5),
		GradeBPercent:    float64(25 + i%5),
		LossPercent:      loss,
		LossKg:           total * loss / 100,
		EnergyUse:        sampleEnergy[i%len(sampleEnergy)],
		HasNonconformity: flagged,
		CreatedAt:        date,
	}
	if !flagged {
		return log, nil
	}
	log.NonconformityDescription = "Quality issues with batch"
	log.CorrectiveAction = "Improved sorting process"

	issue := sampleIssues[i%len(sampleIssues)]
	nc := models.Nonconformity{
		ID:               s.newID(),
		CooperativeID:    cooperativeID,
		ProductionLogID:  log.ID,
		Date:             date,
		Category:         issue.category,
		Severity:         sampleSeverities[i%len(sampleSeverities)],
		Description:      issue.description,
		CorrectiveAction: issue.action,
		Status:           models.StatusOpen,
		CreatedAt:        date,
	}
	switch {
	case i >= 6:
		closed := date.AddDate(0, 0, 5)
		nc.Status = models.StatusClosed
		nc.ClosedDate = &closed
	case i >= 4:
		nc.Status = models.StatusInProgress
	}
	return log, &nc
}

// SeedMetrics inserts sample farms and ESG periods into whichever of the two
// collections is still empty.
func (s *Service) SeedMetrics(ctx context.Context, caller models.User) (models.SeedResult, error) {
	if err := access.RequireOfficer(caller); err != nil {
		return models.SeedResult{}, err
	}

	farmCount, err := s.store.Farms.Count(ctx)
	if err != nil {
		return models.SeedResult{}, fmt.Errorf("count farms: %w", err)
	}
	esgCount, err := s.store.ESG.Count(ctx)
	if err != nil {
		return models.SeedResult{}, fmt.Errorf("count esg metrics: %w", err)
	}
	if farmCount > 0 && esgCount > 0 {
		return models.SeedResult{Message: "sample metrics already initialized", Skipped: true}, nil
	}

	now := s.now()
	result := models.SeedResult{Message: "sample metrics initialized"}

	if farmCount == 0 {
		for i, in := range sampleFarms {
			farm := models.Farm{
				ID:             s.newID(),
				FarmName:       in.FarmName,
				Location:       in.Location,
				AreaHectares:   in.AreaHectares,
				CropType:       in.CropType,
				GrowthStage:    in.GrowthStage,
				HealthStatus:   in.HealthStatus,
				Temperature:    in.Temperature,
				Humidity:       in.Humidity,
				SoilMoisture:   in.SoilMoisture,
				PredictedYield: in.PredictedYield,
				Timestamp:      now.Add(time.Duration(i) * time.Second),
			}
			if err := s.store.Farms.Insert(ctx, farm); err != nil {
				return result, fmt.Errorf("insert sample farm: %w", err)
			}
			result.Farms++
		}
	}

	if esgCount == 0 {
		for i, in := range sampleESG {
			metrics := models.ESGMetrics{
				ID:              s.newID(),
				Period:          in.Period,
				WaterUsage:      in.WaterUsage,
				CarbonFootprint: in.CarbonFootprint,
				WasteReduced:    in.WasteReduced,
				RenewableEnergy: in.RenewableEnergy,
				WomenEmployed:   in.WomenEmployed,
				TrainingHours:   in.TrainingHours,
				IncomeGrowth:    in.IncomeGrowth,
				ISO9001Score:    in.ISO9001Score,
				ISO14001Score:   in.ISO14001Score,
				ISO45001Score:   in.ISO45001Score,
				AuditCompliance: in.AuditCompliance,
				Timestamp:       now.Add(time.Duration(i) * time.Second),
			}
			if err := s.store.ESG.Insert(ctx, metrics); err != nil {
				return result, fmt.Errorf("insert sample esg period: %w", err)
			}
			result.ESGPeriods++
		}
	}

	s.logger.Info("sample metrics seeded", zap.Int("farms", result.Farms), zap.Int("esg_periods", result.ESGPeriods))
	return result, nil
}
