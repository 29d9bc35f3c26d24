package insighting

import (
	"fmt"
	"time"

	"github.com/prem5599/bizinsights-sub001/internal/domain"
	"github.com/prem5599/bizinsights-sub001/pkg/utils"
)

// failedChargeRatioThreshold é a fração de cobranças falhadas sobre o total
// de tentativas a partir da qual vale um alerta de cobrança
const failedChargeRatioThreshold = 0.05

// analyzeRecommendations emite recomendações operacionais: cobranças
// falhando acima do tolerável e retração da receita recorrente
func (s *Service) analyzeRecommendations(snap *snapshot) []*domain.Insight {
	insights := make([]*domain.Insight, 0)

	if insight := s.failedChargesRecommendation(snap); insight != nil {
		insights = append(insights, insight)
	}

	if insight := s.mrrAlert(snap); insight != nil {
		insights = append(insights, insight)
	}

	return insights
}

func (s *Service) failedChargesRecommendation(snap *snapshot) *domain.Insight {
	failed := snap.current[domain.MetricTypeFailedCharges]
	orders := snap.current[domain.MetricTypeOrders]
	if failed == nil || orders == nil {
		return nil
	}

	failedCount := failed.Sum.InexactFloat64()
	orderCount := orders.Sum.InexactFloat64()
	attempts := failedCount + orderCount
	if failedCount <= 0 || attempts <= 0 {
		return nil
	}

	ratio := failedCount / attempts
	if ratio < failedChargeRatioThreshold {
		return nil
	}

	urgency := domain.InsightUrgencyHigh
	if ratio >= 2*failedChargeRatioThreshold {
		urgency = domain.InsightUrgencyCritical
	}

	impact := ratio * 50
	if impact > 10 {
		impact = 10
	}

	windowStart, windowEnd := snap.timeframe.CurrentWindow()

	return &domain.Insight{
		OrganizationID: snap.organizationID,
		Type:           domain.InsightTypeRecommendation,
		Title:          fmt.Sprintf("%.1f%% das cobranças estão falhando", ratio*100),
		Description: fmt.Sprintf(
			"Foram %s cobranças falhadas contra %s bem-sucedidas nos últimos %d dias. Revise os meios de pagamento e as retentativas de cobrança.",
			failed.Sum.StringFixed(0), orders.Sum.StringFixed(0), snap.timeframe.Days,
		),
		ImpactScore: utils.RoundWithTwoDecimalPlace(impact),
		Confidence:  80,
		Category:    string(domain.MetricTypeFailedCharges),
		Urgency:     urgency,
		Actionable:  true,
		Metadata: domain.InsightMetadata{
			CurrentValue:  failed.Sum.String(),
			PreviousValue: orders.Sum.String(),
			PercentChange: utils.RoundWithTwoDecimalPlace(ratio * 100),
			MetricType:    domain.MetricTypeFailedCharges,
			WindowStart:   windowStart.Format(time.DateOnly),
			WindowEnd:     windowEnd.Format(time.DateOnly),
		},
	}
}

// mrrAlert compara o nível médio da receita recorrente entre as janelas.
// MRR é métrica de nível, então a comparação usa a média e não a soma.
func (s *Service) mrrAlert(snap *snapshot) *domain.Insight {
	current := snap.current[domain.MetricTypeMRR]
	previous := snap.previous[domain.MetricTypeMRR]
	if current == nil || previous == nil || current.Count == 0 || previous.Count == 0 {
		return nil
	}

	currentLevel := current.Avg.InexactFloat64()
	previousLevel := previous.Avg.InexactFloat64()
	if previousLevel <= 0 {
		return nil
	}

	change := utils.PercentChange(currentLevel, previousLevel)
	if change > -5 {
		return nil
	}

	urgency := domain.InsightUrgencyHigh
	if change <= -15 {
		urgency = domain.InsightUrgencyCritical
	}

	windowStart, windowEnd := snap.timeframe.CurrentWindow()

	return &domain.Insight{
		OrganizationID: snap.organizationID,
		Type:           domain.InsightTypeAlert,
		Title:          fmt.Sprintf("Receita recorrente encolheu %.1f%%", -change),
		Description: fmt.Sprintf(
			"A receita recorrente mensal média caiu de %s para %s entre os períodos. Vale investigar cancelamentos e downgrades de assinatura.",
			previous.Avg.StringFixed(2), current.Avg.StringFixed(2),
		),
		ImpactScore: impactFromChange(change),
		Confidence:  75,
		Category:    string(domain.MetricTypeMRR),
		Urgency:     urgency,
		Actionable:  true,
		Metadata: domain.InsightMetadata{
			CurrentValue:  current.Avg.String(),
			PreviousValue: previous.Avg.String(),
			PercentChange: utils.RoundWithTwoDecimalPlace(change),
			MetricType:    domain.MetricTypeMRR,
			WindowStart:   windowStart.Format(time.DateOnly),
			WindowEnd:     windowEnd.Format(time.DateOnly),
		},
	}
}
