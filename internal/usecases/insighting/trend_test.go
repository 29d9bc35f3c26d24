package insighting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

func aggregate(metric domain.MetricType, sum int64, count int64) *domain.MetricAggregate {
	avg := decimal.Zero
	if count > 0 {
		avg = decimal.NewFromInt(sum).Div(decimal.NewFromInt(count))
	}
	return &domain.MetricAggregate{
		MetricType: metric,
		Sum:        decimal.NewFromInt(sum),
		Avg:        avg,
		Count:      count,
	}
}

func trendSnapshot(current, previous map[domain.MetricType]*domain.MetricAggregate) *snapshot {
	return &snapshot{
		organizationID: "org-1",
		timeframe:      domain.Timeframe{Days: 30, End: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
		current:        current,
		previous:       previous,
	}
}

func TestServiceAnalyzeTrends(t *testing.T) {
	service := &Service{cfg: &config.Config{}}

	tests := []struct {
		name     string
		current  map[domain.MetricType]*domain.MetricAggregate
		previous map[domain.MetricType]*domain.MetricAggregate
		validate func(t *testing.T, insights []*domain.Insight)
	}{
		{
			name: "Queda de receita acima do limiar vira insight acionável",
			current: map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeRevenue: aggregate(domain.MetricTypeRevenue, 880, 30),
			},
			previous: map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeRevenue: aggregate(domain.MetricTypeRevenue, 1000, 30),
			},
			validate: func(t *testing.T, insights []*domain.Insight) {
				assert.Len(t, insights, 1)
				assert.Equal(t, domain.InsightTypeTrend, insights[0].Type)
				assert.Contains(t, insights[0].Title, "queda")
				assert.Equal(t, domain.InsightUrgencyHigh, insights[0].Urgency)
				assert.True(t, insights[0].Actionable)
				assert.InDelta(t, -12.0, insights[0].Metadata.PercentChange, 0.01)
				assert.Equal(t, 85, insights[0].Confidence)
			},
		},
		{
			name: "Variação de receita abaixo do limiar não vira insight",
			current: map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeRevenue: aggregate(domain.MetricTypeRevenue, 950, 30),
			},
			previous: map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeRevenue: aggregate(domain.MetricTypeRevenue, 1000, 30),
			},
			validate: func(t *testing.T, insights []*domain.Insight) {
				assert.Empty(t, insights)
			},
		},
		{
			name: "Queda acentuada de receita tem urgência crítica",
			current: map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeRevenue: aggregate(domain.MetricTypeRevenue, 700, 30),
			},
			previous: map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeRevenue: aggregate(domain.MetricTypeRevenue, 1000, 30),
			},
			validate: func(t *testing.T, insights []*domain.Insight) {
				assert.Len(t, insights, 1)
				assert.Equal(t, domain.InsightUrgencyCritical, insights[0].Urgency)
			},
		},
		{
			name: "Pedidos usam limiar próprio mais alto",
			current: map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeOrders: aggregate(domain.MetricTypeOrders, 880, 30),
			},
			previous: map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeOrders: aggregate(domain.MetricTypeOrders, 1000, 30),
			},
			validate: func(t *testing.T, insights []*domain.Insight) {
				// -12% fica abaixo do limiar de 15% dos pedidos
				assert.Empty(t, insights)
			},
		},
		{
			name: "Alta de receita vira insight informativo",
			current: map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeRevenue: aggregate(domain.MetricTypeRevenue, 1300, 30),
			},
			previous: map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeRevenue: aggregate(domain.MetricTypeRevenue, 1000, 30),
			},
			validate: func(t *testing.T, insights []*domain.Insight) {
				assert.Len(t, insights, 1)
				assert.Contains(t, insights[0].Title, "alta")
				assert.Equal(t, domain.InsightUrgencyMedium, insights[0].Urgency)
				assert.False(t, insights[0].Actionable)
			},
		},
		{
			name: "Janelas zeradas em ambos os períodos são ignoradas",
			current: map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeRevenue: aggregate(domain.MetricTypeRevenue, 0, 0),
			},
			previous: map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeRevenue: aggregate(domain.MetricTypeRevenue, 0, 0),
			},
			validate: func(t *testing.T, insights []*domain.Insight) {
				assert.Empty(t, insights)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, service.analyzeTrends(trendSnapshot(tt.current, tt.previous)))
		})
	}
}

func TestImpactFromChange(t *testing.T) {
	assert.Equal(t, 2.4, impactFromChange(-12))
	assert.Equal(t, 10.0, impactFromChange(80))
	assert.Equal(t, 10.0, impactFromChange(-200))
}
