package insighting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

func dailySeries(metric domain.MetricType, values ...int64) []*domain.DailyMetric {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := make([]*domain.DailyMetric, 0, len(values))
	for i, value := range values {
		series = append(series, &domain.DailyMetric{
			Date:       start.AddDate(0, 0, i),
			MetricType: metric,
			Value:      decimal.NewFromInt(value),
		})
	}
	return series
}

func TestServiceAnalyzeAnomalies(t *testing.T) {
	service := &Service{cfg: &config.Config{}}

	tests := []struct {
		name     string
		values   []int64
		validate func(t *testing.T, insights []*domain.Insight)
	}{
		{
			name:   "Pico isolado destoa da linha de base e vira insight",
			values: []int64{100, 100, 100, 100, 100, 100, 400},
			validate: func(t *testing.T, insights []*domain.Insight) {
				assert.Len(t, insights, 1)
				assert.Equal(t, domain.InsightTypeAnomaly, insights[0].Type)
				assert.Contains(t, insights[0].Title, "Pico")
				assert.Contains(t, insights[0].Title, "2024-03-07")
				assert.Equal(t, domain.InsightUrgencyMedium, insights[0].Urgency)
				assert.False(t, insights[0].Actionable)
			},
		},
		{
			name:   "Variação pequena em série estável não vira insight",
			values: []int64{100, 100, 100, 100, 100, 100, 110},
			validate: func(t *testing.T, insights []*domain.Insight) {
				assert.Empty(t, insights)
			},
		},
		{
			name:   "Queda abrupta gera insight acionável de urgência alta",
			values: []int64{100, 100, 100, 100, 100, 100, 20},
			validate: func(t *testing.T, insights []*domain.Insight) {
				assert.Len(t, insights, 1)
				assert.Contains(t, insights[0].Title, "Queda")
				assert.Equal(t, domain.InsightUrgencyHigh, insights[0].Urgency)
				assert.True(t, insights[0].Actionable)
			},
		},
		{
			name:   "Série mais curta que o mínimo de dias é ignorada",
			values: []int64{100, 100, 100, 400},
			validate: func(t *testing.T, insights []*domain.Insight) {
				assert.Empty(t, insights)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &snapshot{
				organizationID: "org-1",
				timeframe:      domain.Timeframe{Days: 30, End: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
				daily: map[domain.MetricType][]*domain.DailyMetric{
					domain.MetricTypeRevenue: dailySeries(domain.MetricTypeRevenue, tt.values...),
				},
			}

			tt.validate(t, service.analyzeAnomalies(snap))
		})
	}
}

func TestBaselineStats(t *testing.T) {
	// A linha de base exclui o candidato: seis dias de 100 contra um 400
	mean, stddev := baselineStats([]float64{100, 100, 100, 100, 100, 100, 400}, 6)
	assert.InDelta(t, 100.0, mean, 0.0001)
	assert.InDelta(t, 0.0, stddev, 0.0001)
}
