package models

// CooperativeKPIs summarises the most recent production logs of a cooperative.
type CooperativeKPIs struct {
	CooperativeID   string  `json:"cooperative_id"`
	TotalProduction float64 `json:"total_production_last_week"`
	AvgLossPercent  float64 `json:"avg_loss_percent"`
	OpenIssues      int64   `json:"open_issues"`
	AvgQualityA     float64 `json:"avg_quality_a"`
}

// CooperativeOverview pairs a cooperative with its KPIs.
type CooperativeOverview struct {
	Cooperative Cooperative     `json:"cooperative"`
	KPIs        CooperativeKPIs `json:"kpis"`
}

// CooperativeStats aggregates every production log of a cooperative.
type CooperativeStats struct {
	CooperativeID   string  `json:"cooperative_id"`
	LogCount        int     `json:"log_count"`
	TotalProduction float64 `json:"total_production"`
	AvgQualityA     float64 `json:"avg_quality_a"`
	AvgLoss         float64 `json:"avg_loss"`
	OpenIssues      int64   `json:"open_issues"`
}

// ScenarioRequest is the what-if input for the loss reduction simulator.
type ScenarioRequest struct {
	CooperativeID      string  `json:"cooperative_id"`
	CurrentLossPercent float64 `json:"current_loss_percent" binding:"gte=0"`
	TargetLossPercent  float64 `json:"target_loss_percent" binding:"gte=0"`
	PricePerKg         float64 `json:"price_per_kg" binding:"gte=0"`
	AvgProductionKg    float64 `json:"avg_production_kg" binding:"gte=0"`
}

// ScenarioResponse carries the rounded simulator outputs.
type ScenarioResponse struct {
	CurrentSellableKg    float64 `json:"current_sellable_kg"`
	TargetSellableKg     float64 `json:"target_sellable_kg"`
	AdditionalSellableKg float64 `json:"additional_sellable_kg"`
	CurrentRevenue       float64 `json:"current_revenue"`
	TargetRevenue        float64 `json:"target_revenue"`
	RevenueGain          float64 `json:"revenue_gain"`
	Explanation          string  `json:"explanation"`
}
