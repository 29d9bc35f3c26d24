package insighting

import (
	"fmt"
	"math"
	"time"

	"github.com/prem5599/bizinsights-sub001/internal/domain"
	"github.com/prem5599/bizinsights-sub001/pkg/utils"
)

// trendThresholds define a variação percentual mínima, por métrica, para
// que uma tendência vire insight
var trendThresholds = map[domain.MetricType]float64{
	domain.MetricTypeRevenue:   10,
	domain.MetricTypeOrders:    15,
	domain.MetricTypeCustomers: 20,
}

var metricLabels = map[domain.MetricType]string{
	domain.MetricTypeRevenue:   "Receita",
	domain.MetricTypeOrders:    "Pedidos",
	domain.MetricTypeCustomers: "Novos clientes",
}

// analyzeTrends compara a janela corrente com a anterior e emite um insight
// de tendência para cada métrica cuja variação passa do limiar
func (s *Service) analyzeTrends(snap *snapshot) []*domain.Insight {
	insights := make([]*domain.Insight, 0)

	for metric, threshold := range trendThresholds {
		current := snap.current[metric]
		previous := snap.previous[metric]
		if current == nil || previous == nil {
			continue
		}

		currentValue := current.Sum.InexactFloat64()
		previousValue := previous.Sum.InexactFloat64()
		if currentValue == 0 && previousValue == 0 {
			continue
		}

		change := utils.PercentChange(currentValue, previousValue)
		if math.Abs(change) < threshold {
			continue
		}

		insights = append(insights, s.trendInsight(snap, metric, current, previous, change))
	}

	return insights
}

func (s *Service) trendInsight(snap *snapshot, metric domain.MetricType, current, previous *domain.MetricAggregate, change float64) *domain.Insight {
	label := metricLabels[metric]
	direction := "alta"
	urgency := domain.InsightUrgencyMedium
	actionable := false

	if change < 0 {
		direction = "queda"
		urgency = domain.InsightUrgencyHigh
		actionable = true

		// Queda acentuada de receita é o achado mais grave do motor
		if metric == domain.MetricTypeRevenue && change <= -25 {
			urgency = domain.InsightUrgencyCritical
		}
	}

	confidence := 65
	if current.Count >= 7 && previous.Count >= 7 {
		confidence = 85
	}

	windowStart, windowEnd := snap.timeframe.CurrentWindow()

	return &domain.Insight{
		OrganizationID: snap.organizationID,
		Type:           domain.InsightTypeTrend,
		Title:          fmt.Sprintf("%s em %s de %.1f%%", label, direction, math.Abs(change)),
		Description: fmt.Sprintf(
			"%s somou %s nos últimos %d dias, contra %s no período anterior (%+.1f%%).",
			label, current.Sum.StringFixed(2), snap.timeframe.Days, previous.Sum.StringFixed(2), change,
		),
		ImpactScore: impactFromChange(change),
		Confidence:  confidence,
		Category:    string(metric),
		Urgency:     urgency,
		Actionable:  actionable,
		Metadata: domain.InsightMetadata{
			CurrentValue:  current.Sum.String(),
			PreviousValue: previous.Sum.String(),
			PercentChange: utils.RoundWithTwoDecimalPlace(change),
			MetricType:    metric,
			WindowStart:   windowStart.Format(time.DateOnly),
			WindowEnd:     windowEnd.Format(time.DateOnly),
		},
	}
}

// impactFromChange converte a magnitude da variação em pontuação de impacto
// na escala de 0 a 10
func impactFromChange(change float64) float64 {
	impact := math.Abs(change) / 5
	if impact > 10 {
		impact = 10
	}
	return utils.RoundWithTwoDecimalPlace(impact)
}
