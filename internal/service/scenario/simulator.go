// Package scenario computes what-if revenue figures for post-harvest loss reduction.
package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/pkg/numeric"
)

// Simulate translates a loss reduction into sellable quantity and revenue deltas.
// It has no side effects. A negative gain is returned as is.
func Simulate(req models.ScenarioRequest) models.ScenarioResponse {
	currentLossKg := req.AvgProductionKg * req.CurrentLossPercent / 100
	currentSellableKg := req.AvgProductionKg - currentLossKg
	currentRevenue := currentSellableKg * req.PricePerKg

	targetLossKg := req.AvgProductionKg * req.TargetLossPercent / 100
	targetSellableKg := req.AvgProductionKg - targetLossKg
	targetRevenue := targetSellableKg * req.PricePerKg

	additionalSellableKg := targetSellableKg - currentSellableKg
	revenueGain := targetRevenue - currentRevenue

	explanation := fmt.Sprintf(
		"By reducing post-harvest loss from %s%% to %s%%, you can save an additional %.2f kg of product. "+
			"This translates to a revenue increase of €%.2f, bringing your total revenue from €%.2f to €%.2f.",
		formatPercent(req.CurrentLossPercent), formatPercent(req.TargetLossPercent),
		additionalSellableKg, revenueGain, currentRevenue, targetRevenue,
	)

	return models.ScenarioResponse{
		CurrentSellableKg:    numeric.Round2(currentSellableKg),
		TargetSellableKg:     numeric.Round2(targetSellableKg),
		AdditionalSellableKg: numeric.Round2(additionalSellableKg),
		CurrentRevenue:       numeric.Round2(currentRevenue),
		TargetRevenue:        numeric.Round2(targetRevenue),
		RevenueGain:          numeric.Round2(revenueGain),
		Explanation:          explanation,
	}
}

// formatPercent renders the shortest representation, keeping one decimal for whole numbers (15 -> "15.0").
func formatPercent(v float64) string {
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(out, ".NI") {
		out += ".0"
	}
	return out
}
