package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

func TestServiceRetentionQuality(t *testing.T) {
	service := &Service{cfg: &config.Config{}}

	tests := []struct {
		name      string
		customers int64
		orders    int64
		revenue   int64
		validate  func(t *testing.T, insight *domain.Insight)
	}{
		{
			name:      "Base que recompra bem vira oportunidade",
			customers: 100,
			orders:    180,
			revenue:   9000,
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.NotNil(t, insight)
				assert.Equal(t, domain.InsightTypeOpportunity, insight.Type)
				assert.Equal(t, domain.InsightUrgencyMedium, insight.Urgency)
				assert.True(t, insight.Actionable)
				assert.Equal(t, 1.8, insight.Metadata.Extra["orders_per_customer"])
				assert.Equal(t, "90", insight.Metadata.Extra["revenue_per_customer"])
			},
		},
		{
			name:      "Maioria comprando uma única vez vira recomendação de retenção",
			customers: 100,
			orders:    105,
			revenue:   5000,
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.NotNil(t, insight)
				assert.Equal(t, domain.InsightTypeRecommendation, insight.Type)
				assert.True(t, insight.Actionable)
				assert.Equal(t, "50", insight.Metadata.Extra["revenue_per_customer"])
			},
		},
		{
			name:      "Faixa intermediária não gera achado",
			customers: 100,
			orders:    130,
			revenue:   6000,
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.Nil(t, insight)
			},
		},
		{
			name:      "Poucos clientes não sustentam a razão",
			customers: 5,
			orders:    20,
			revenue:   1000,
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.Nil(t, insight)
			},
		},
		{
			name:      "Sem pedidos não há razão para comparar",
			customers: 50,
			orders:    0,
			revenue:   0,
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.Nil(t, insight)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := trendSnapshot(map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeCustomers: aggregate(domain.MetricTypeCustomers, tt.customers, 30),
				domain.MetricTypeOrders:    aggregate(domain.MetricTypeOrders, tt.orders, 30),
				domain.MetricTypeRevenue:   aggregate(domain.MetricTypeRevenue, tt.revenue, 30),
			}, map[domain.MetricType]*domain.MetricAggregate{})

			tt.validate(t, service.retentionQuality(snap))
		})
	}
}

func TestServiceRetentionQualityWithoutCustomerMetric(t *testing.T) {
	service := &Service{cfg: &config.Config{}}

	snap := trendSnapshot(map[domain.MetricType]*domain.MetricAggregate{
		domain.MetricTypeOrders: aggregate(domain.MetricTypeOrders, 120, 30),
	}, map[domain.MetricType]*domain.MetricAggregate{})

	assert.Nil(t, service.retentionQuality(snap))
}
