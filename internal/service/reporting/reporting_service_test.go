package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/coopledger/internal/domain/models"
)

type staticSource struct {
	overview []models.CooperativeOverview
	err      error
}

func (s staticSource) Digest(context.Context) ([]models.CooperativeOverview, error) {
	return s.overview, s.err
}

func TestGenerateDigest(t *testing.T) {
	at := time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		text, err := NewService(staticSource{}, nil).GenerateDigest(context.Background(), at)
		require.NoError(t, err)
		assert.Equal(t, "Cooperative KPI digest (2025-06-02): no cooperatives registered.", text)
	})

	t.Run("lines per cooperative", func(t *testing.T) {
		src := staticSource{overview: []models.CooperativeOverview{
			{
				Cooperative: models.Cooperative{Name: "Green Valley", Country: "Ethiopia"},
				KPIs:        models.CooperativeKPIs{TotalProduction: 6350, AvgLossPercent: 12.9, AvgQualityA: 73, OpenIssues: 2},
			},
			{
				Cooperative: models.Cooperative{Name: "Olive Oil", Country: "Tunisia"},
			},
		}}

		text, err := NewService(src, nil).GenerateDigest(context.Background(), at)
		require.NoError(t, err)
		assert.Equal(t, "Cooperative KPI digest (2025-06-02)\n"+
			"- Green Valley (Ethiopia): production 6350.00, avg loss 12.90%, grade A 73.00%, open issues 2\n"+
			"- Olive Oil (Tunisia): production 0.00, avg loss 0.00%, grade A 0.00%, open issues 0\n"+
			"Total open issues: 2", text)
	})

	t.Run("source failure", func(t *testing.T) {
		boom := errors.New("store down")
		_, err := NewService(staticSource{err: boom}, nil).GenerateDigest(context.Background(), at)
		assert.ErrorIs(t, err, boom)
	})
}
