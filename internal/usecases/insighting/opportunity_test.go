package insighting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

func sessionPoint(breakdown map[string]any) *domain.DataPoint {
	return &domain.DataPoint{
		MetricType: domain.MetricTypeSessions,
		Value:      decimal.NewFromInt(100),
		Metadata: map[string]any{
			domain.PointMetadataSourceBreakdown: breakdown,
		},
	}
}

func TestServiceSourceConcentration(t *testing.T) {
	service := &Service{cfg: &config.Config{}}

	tests := []struct {
		name     string
		points   []*domain.DataPoint
		validate func(t *testing.T, insight *domain.Insight)
	}{
		{
			name: "Origem dominante acima de 60% gera achado de urgência alta",
			points: []*domain.DataPoint{
				sessionPoint(map[string]any{"google": float64(700), "direct": float64(300)}),
			},
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.NotNil(t, insight)
				assert.Equal(t, domain.InsightTypeOpportunity, insight.Type)
				assert.Equal(t, domain.InsightUrgencyHigh, insight.Urgency)
				assert.Equal(t, "google", insight.Metadata.Extra["top_source"])
			},
		},
		{
			name: "Concentração moderada fica em urgência média",
			points: []*domain.DataPoint{
				sessionPoint(map[string]any{"google": float64(450), "direct": float64(350), "email": float64(200)}),
			},
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.NotNil(t, insight)
				assert.Equal(t, domain.InsightUrgencyMedium, insight.Urgency)
			},
		},
		{
			name: "Tráfego bem distribuído não gera achado",
			points: []*domain.DataPoint{
				sessionPoint(map[string]any{"google": float64(350), "direct": float64(330), "email": float64(320)}),
			},
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.Nil(t, insight)
			},
		},
		{
			name: "Uma única origem não caracteriza concentração",
			points: []*domain.DataPoint{
				sessionPoint(map[string]any{"google": float64(1000)}),
			},
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.Nil(t, insight)
			},
		},
		{
			name:   "Pontos sem quebra por origem são ignorados",
			points: []*domain.DataPoint{{MetricType: domain.MetricTypeSessions, Value: decimal.NewFromInt(500)}},
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.Nil(t, insight)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &snapshot{
				organizationID: "org-1",
				timeframe:      domain.Timeframe{Days: 30, End: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
				sessionPoints:  tt.points,
			}

			tt.validate(t, service.sourceConcentration(snap))
		})
	}
}

func conversionPoint(breakdown map[string]any) *domain.DataPoint {
	return &domain.DataPoint{
		MetricType: domain.MetricTypeConversions,
		Value:      decimal.NewFromInt(10),
		Metadata: map[string]any{
			domain.PointMetadataSourceBreakdown: breakdown,
		},
	}
}

func TestServiceSourceConversionOpportunity(t *testing.T) {
	service := &Service{cfg: &config.Config{}}

	tests := []struct {
		name        string
		sessions    map[string]any
		conversions map[string]any
		validate    func(t *testing.T, insight *domain.Insight)
	}{
		{
			name:        "Canal pequeno convertendo bem acima da média vira oportunidade",
			sessions:    map[string]any{"google": float64(850), "email": float64(150)},
			conversions: map[string]any{"google": float64(17), "email": float64(15)},
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.NotNil(t, insight)
				assert.Equal(t, domain.InsightTypeOpportunity, insight.Type)
				assert.Equal(t, domain.InsightUrgencyHigh, insight.Urgency)
				assert.True(t, insight.Actionable)
				assert.Equal(t, "email", insight.Metadata.Extra["source"])
			},
		},
		{
			name:        "Origem abaixo do volume mínimo é ignorada",
			sessions:    map[string]any{"google": float64(960), "email": float64(40)},
			conversions: map[string]any{"google": float64(20), "email": float64(8)},
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.Nil(t, insight)
			},
		},
		{
			name:        "Origem que já domina o tráfego não é subinvestida",
			sessions:    map[string]any{"google": float64(700), "direct": float64(300)},
			conversions: map[string]any{"google": float64(70), "direct": float64(6)},
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.Nil(t, insight)
			},
		},
		{
			name:        "Vantagem de conversão pequena não sustenta o achado",
			sessions:    map[string]any{"google": float64(850), "email": float64(150)},
			conversions: map[string]any{"google": float64(30), "email": float64(6)},
			validate: func(t *testing.T, insight *domain.Insight) {
				assert.Nil(t, insight)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &snapshot{
				organizationID:   "org-1",
				timeframe:        domain.Timeframe{Days: 30, End: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
				sessionPoints:    []*domain.DataPoint{sessionPoint(tt.sessions)},
				conversionPoints: []*domain.DataPoint{conversionPoint(tt.conversions)},
			}

			tt.validate(t, service.sourceConversionOpportunity(snap))
		})
	}
}

func TestServiceSourceConversionOpportunityWithoutConversionBreakdown(t *testing.T) {
	service := &Service{cfg: &config.Config{}}

	snap := &snapshot{
		organizationID: "org-1",
		timeframe:      domain.Timeframe{Days: 30, End: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
		sessionPoints:  []*domain.DataPoint{sessionPoint(map[string]any{"google": float64(850), "email": float64(150)})},
	}

	assert.Nil(t, service.sourceConversionOpportunity(snap))
}

func TestServiceConversionRateShift(t *testing.T) {
	service := &Service{cfg: &config.Config{}}

	buildSnap := func(curSessions, curConversions, prevSessions, prevConversions int64) *snapshot {
		return trendSnapshot(
			map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeSessions:    aggregate(domain.MetricTypeSessions, curSessions, 30),
				domain.MetricTypeConversions: aggregate(domain.MetricTypeConversions, curConversions, 30),
			},
			map[domain.MetricType]*domain.MetricAggregate{
				domain.MetricTypeSessions:    aggregate(domain.MetricTypeSessions, prevSessions, 30),
				domain.MetricTypeConversions: aggregate(domain.MetricTypeConversions, prevConversions, 30),
			},
		)
	}

	t.Run("Melhora da taxa de conversão vira oportunidade", func(t *testing.T) {
		// 3% contra 2% no período anterior (+50%)
		insight := service.conversionRateShift(buildSnap(1000, 30, 1000, 20))
		assert.NotNil(t, insight)
		assert.Equal(t, domain.InsightTypeOpportunity, insight.Type)
		assert.Equal(t, domain.InsightUrgencyMedium, insight.Urgency)
	})

	t.Run("Piora da taxa de conversão vira alerta", func(t *testing.T) {
		insight := service.conversionRateShift(buildSnap(1000, 20, 1000, 30))
		assert.NotNil(t, insight)
		assert.Equal(t, domain.InsightTypeAlert, insight.Type)
		assert.Equal(t, domain.InsightUrgencyHigh, insight.Urgency)
	})

	t.Run("Movimento pequeno é ignorado", func(t *testing.T) {
		insight := service.conversionRateShift(buildSnap(1000, 21, 1000, 20))
		assert.Nil(t, insight)
	})

	t.Run("Sem sessões não há taxa para comparar", func(t *testing.T) {
		insight := service.conversionRateShift(buildSnap(0, 0, 1000, 20))
		assert.Nil(t, insight)
	})
}
