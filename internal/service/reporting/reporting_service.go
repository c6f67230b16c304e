package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/models"
)

const dateLayout = "2006-01-02"

// OverviewSource provides the per-cooperative KPIs summarised in the digest.
type OverviewSource interface {
	Digest(ctx context.Context) ([]models.CooperativeOverview, error)
}

// Service renders plain-text KPI digests.
type Service struct {
	source OverviewSource
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(source OverviewSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// GenerateDigest returns one line per cooperative with its current KPIs.
func (s *Service) GenerateDigest(ctx context.Context, at time.Time) (string, error) {
	overview, err := s.source.Digest(ctx)
	if err != nil {
		return "", fmt.Errorf("load kpi overview: %w", err)
	}

	title := fmt.Sprintf("Cooperative KPI digest (%s)", at.Format(dateLayout))
	if len(overview) == 0 {
		return title + ": no cooperatives registered.", nil
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	var openIssues int64
	for _, item := range overview {
		k := item.KPIs
		fmt.Fprintf(&b, "- %s (%s): production %.2f, avg loss %.2f%%, grade A %.2f%%, open issues %d\n",
			item.Cooperative.Name, item.Cooperative.Country, k.TotalProduction, k.AvgLossPercent, k.AvgQualityA, k.OpenIssues)
		openIssues += k.OpenIssues
	}
	fmt.Fprintf(&b, "Total open issues: %d", openIssues)

	s.logger.Debug("digest generated", zap.Int("cooperatives", len(overview)))
	return b.String(), nil
}
