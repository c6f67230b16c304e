package models

import "time"

// ProductionLog records the output and losses of one batch period.
type ProductionLog struct {
	ID                       string    `bson:"_id" json:"id"`
	CooperativeID            string    `bson:"cooperative_id" json:"cooperative_id"`
	Date                     time.Time `bson:"date" json:"date"`
	BatchPeriod              string    `bson:"batch_period" json:"batch_period"`
	TotalProduction          float64   `bson:"total_production" json:"total_production"`
	GradeAPercent            float64   `bson:"grade_a_percent" json:"grade_a_percent"`
	GradeBPercent            float64   `bson:"grade_b_percent" json:"grade_b_percent"`
	LossPercent              float64   `bson:"post_harvest_loss_percent" json:"post_harvest_loss_percent"`
	LossKg                   float64   `bson:"post_harvest_loss_kg" json:"post_harvest_loss_kg"`
	EnergyUse                EnergyUse `bson:"energy_use" json:"energy_use"`
	HasNonconformity         bool      `bson:"has_nonconformity" json:"has_nonconformity"`
	NonconformityDescription string    `bson:"nonconformity_description,omitempty" json:"nonconformity_description,omitempty"`
	CorrectiveAction         string    `bson:"corrective_action,omitempty" json:"corrective_action,omitempty"`
	CreatedAt                time.Time `bson:"created_at" json:"created_at"`
}

// ProductionLogInput is the payload for creating a production log.
type ProductionLogInput struct {
	CooperativeID            string    `json:"cooperative_id" binding:"required"`
	Date                     time.Time `json:"date" binding:"required"`
	BatchPeriod              string    `json:"batch_period" binding:"required"`
	TotalProduction          float64   `json:"total_production" binding:"gte=0"`
	GradeAPercent            float64   `json:"grade_a_percent"`
	GradeBPercent            float64   `json:"grade_b_percent"`
	LossPercent              float64   `json:"post_harvest_loss_percent"`
	LossKg                   float64   `json:"post_harvest_loss_kg"`
	EnergyUse                EnergyUse `json:"energy_use" binding:"required"`
	HasNonconformity         bool      `json:"has_nonconformity"`
	NonconformityDescription string    `json:"nonconformity_description"`
	CorrectiveAction         string    `json:"corrective_action"`
}

// ProductionLogFilter narrows a production log listing. Limit <= 0 means the store
// default; Unbounded ignores Limit and returns every match.
type ProductionLogFilter struct {
	CooperativeID string
	Limit         int64
	Unbounded     bool
}

// ProductionSummary aggregates every production log of a cooperative.
type ProductionSummary struct {
	Count            int64   `bson:"count"`
	TotalProduction  float64 `bson:"total_production"`
	AvgLossPercent   float64 `bson:"avg_loss_percent"`
	AvgGradeAPercent float64 `bson:"avg_grade_a_percent"`
}

// ProductionLogCreated bundles a new log with the nonconformity it spawned, if any.
type ProductionLogCreated struct {
	ProductionLog
	Nonconformity *Nonconformity `json:"nonconformity,omitempty"`
}
