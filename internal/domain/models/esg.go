package models

import "time"

// ESGMetrics holds one reporting period of environmental, social and governance figures.
type ESGMetrics struct {
	ID              string    `bson:"_id" json:"id"`
	Period          string    `bson:"period" json:"period"`
	WaterUsage      float64   `bson:"water_usage" json:"water_usage"`
	CarbonFootprint float64   `bson:"carbon_footprint" json:"carbon_footprint"`
	WasteReduced    float64   `bson:"waste_reduced" json:"waste_reduced"`
	RenewableEnergy float64   `bson:"renewable_energy" json:"renewable_energy"`
	WomenEmployed   int       `bson:"women_employed" json:"women_employed"`
	TrainingHours   float64   `bson:"training_hours" json:"training_hours"`
	IncomeGrowth    float64   `bson:"income_growth" json:"income_growth"`
	ISO9001Score    float64   `bson:"iso9001_score" json:"iso9001_score"`
	ISO14001Score   float64   `bson:"iso14001_score" json:"iso14001_score"`
	ISO45001Score   float64   `bson:"iso45001_score" json:"iso45001_score"`
	AuditCompliance float64   `bson:"audit_compliance" json:"audit_compliance"`
	Timestamp       time.Time `bson:"timestamp" json:"timestamp"`
}

// ESGInput is the payload for recording an ESG period.
type ESGInput struct {
	Period          string  `json:"period" binding:"required"`
	WaterUsage      float64 `json:"water_usage"`
	CarbonFootprint float64 `json:"carbon_footprint"`
	WasteReduced    float64 `json:"waste_reduced"`
	RenewableEnergy float64 `json:"renewable_energy"`
	WomenEmployed   int     `json:"women_employed"`
	TrainingHours   float64 `json:"training_hours"`
	IncomeGrowth    float64 `json:"income_growth"`
	ISO9001Score    float64 `json:"iso9001_score"`
	ISO14001Score   float64 `json:"iso14001_score"`
	ISO45001Score   float64 `json:"iso45001_score"`
	AuditCompliance float64 `json:"audit_compliance"`
}
