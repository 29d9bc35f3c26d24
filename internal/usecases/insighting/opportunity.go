package insighting

import (
	"fmt"
	"time"

	"github.com/prem5599/bizinsights-sub001/internal/domain"
	"github.com/prem5599/bizinsights-sub001/pkg/utils"
)

// sourceConcentrationThreshold é a fração de sessões vindas de uma única
// origem a partir da qual a dependência do canal vira um achado
const sourceConcentrationThreshold = 0.4

// Limiares do canal subinvestido: volume mínimo por origem contra ruído de
// amostra pequena, teto de participação no tráfego e vantagem mínima da taxa
// de conversão sobre a média do site
const (
	sourceOpportunityMinSessions    = 50.0
	sourceOpportunityMaxShare       = 0.2
	sourceOpportunityRateMultiplier = 1.5
)

// analyzeOpportunities deriva achados da dimensão de tráfego: concentração
// de origem, canal subinvestido e movimento da taxa de conversão
func (s *Service) analyzeOpportunities(snap *snapshot) []*domain.Insight {
	insights := make([]*domain.Insight, 0)

	if insight := s.sourceConcentration(snap); insight != nil {
		insights = append(insights, insight)
	}

	if insight := s.sourceConversionOpportunity(snap); insight != nil {
		insights = append(insights, insight)
	}

	if insight := s.conversionRateShift(snap); insight != nil {
		insights = append(insights, insight)
	}

	return insights
}

// sumSourceBreakdown soma as quebras por origem gravadas nos metadados dos
// pontos, devolvendo o total por origem e o total geral
func sumSourceBreakdown(points []*domain.DataPoint) (map[string]float64, float64) {
	totals := make(map[string]float64)
	var grandTotal float64

	for _, point := range points {
		if point.Metadata == nil {
			continue
		}

		breakdown, ok := point.Metadata[domain.PointMetadataSourceBreakdown].(map[string]any)
		if !ok {
			continue
		}

		for source, raw := range breakdown {
			value, ok := toFloat(raw)
			if !ok {
				continue
			}
			totals[source] += value
			grandTotal += value
		}
	}

	return totals, grandTotal
}

// sourceConcentration soma a quebra de sessões por origem gravada nos
// metadados dos pontos e aponta a dependência excessiva de um único canal
func (s *Service) sourceConcentration(snap *snapshot) *domain.Insight {
	totals, grandTotal := sumSourceBreakdown(snap.sessionPoints)

	if grandTotal <= 0 || len(totals) < 2 {
		return nil
	}

	topSource := ""
	var topSessions float64
	for source, sessions := range totals {
		if sessions > topSessions || (sessions == topSessions && source < topSource) {
			topSource = source
			topSessions = sessions
		}
	}

	share := topSessions / grandTotal
	if share < sourceConcentrationThreshold {
		return nil
	}

	urgency := domain.InsightUrgencyMedium
	if share >= 0.6 {
		urgency = domain.InsightUrgencyHigh
	}

	impact := share * 10
	if impact > 10 {
		impact = 10
	}

	windowStart, windowEnd := snap.timeframe.CurrentWindow()

	return &domain.Insight{
		OrganizationID: snap.organizationID,
		Type:           domain.InsightTypeOpportunity,
		Title:          fmt.Sprintf("%.0f%% do tráfego vem de %s", share*100, topSource),
		Description: fmt.Sprintf(
			"A origem %s concentrou %.0f%% das sessões nos últimos %d dias. Diversificar os canais de aquisição reduz o risco de depender de uma única fonte de tráfego.",
			topSource, share*100, snap.timeframe.Days,
		),
		ImpactScore: utils.RoundWithTwoDecimalPlace(impact),
		Confidence:  70,
		Category:    string(domain.MetricTypeSessions),
		Urgency:     urgency,
		Actionable:  true,
		Metadata: domain.InsightMetadata{
			CurrentValue:  fmt.Sprintf("%.0f", topSessions),
			PercentChange: utils.RoundWithTwoDecimalPlace(share * 100),
			MetricType:    domain.MetricTypeSessions,
			WindowStart:   windowStart.Format(time.DateOnly),
			WindowEnd:     windowEnd.Format(time.DateOnly),
			Extra: map[string]any{
				"top_source": topSource,
			},
		},
	}
}

// sourceConversionOpportunity cruza as quebras de sessões e de conversões
// por origem e aponta o canal subinvestido: aquele que converte bem acima da
// média do site mas ainda responde por pouco tráfego
func (s *Service) sourceConversionOpportunity(snap *snapshot) *domain.Insight {
	sessionsBySource, totalSessions := sumSourceBreakdown(snap.sessionPoints)
	conversionsBySource, totalConversions := sumSourceBreakdown(snap.conversionPoints)

	if totalSessions <= 0 || totalConversions <= 0 || len(sessionsBySource) < 2 {
		return nil
	}

	siteRate := totalConversions / totalSessions
	if siteRate <= 0 {
		return nil
	}

	bestSource := ""
	var bestRate, bestShare float64

	for source, sessions := range sessionsBySource {
		if sessions < sourceOpportunityMinSessions {
			continue
		}

		share := sessions / totalSessions
		if share >= sourceOpportunityMaxShare {
			continue
		}

		rate := conversionsBySource[source] / sessions
		if rate < siteRate*sourceOpportunityRateMultiplier {
			continue
		}

		if rate > bestRate || (rate == bestRate && source < bestSource) {
			bestSource = source
			bestRate = rate
			bestShare = share
		}
	}

	if bestSource == "" {
		return nil
	}

	advantage := bestRate / siteRate

	urgency := domain.InsightUrgencyMedium
	if advantage >= 2 {
		urgency = domain.InsightUrgencyHigh
	}

	impact := advantage * 2.5
	if impact > 10 {
		impact = 10
	}

	windowStart, windowEnd := snap.timeframe.CurrentWindow()

	return &domain.Insight{
		OrganizationID: snap.organizationID,
		Type:           domain.InsightTypeOpportunity,
		Title:          fmt.Sprintf("%s converte %.1fx acima da média do site", bestSource, advantage),
		Description: fmt.Sprintf(
			"A origem %s converteu %.2f%% contra %.2f%% da média do site, com apenas %.0f%% do tráfego nos últimos %d dias. Há espaço para investir mais nesse canal.",
			bestSource, bestRate*100, siteRate*100, bestShare*100, snap.timeframe.Days,
		),
		ImpactScore: utils.RoundWithTwoDecimalPlace(impact),
		Confidence:  75,
		Category:    string(domain.MetricTypeConversions),
		Urgency:     urgency,
		Actionable:  true,
		Metadata: domain.InsightMetadata{
			CurrentValue:  fmt.Sprintf("%.4f", bestRate),
			PreviousValue: fmt.Sprintf("%.4f", siteRate),
			PercentChange: utils.RoundWithTwoDecimalPlace((advantage - 1) * 100),
			MetricType:    domain.MetricTypeConversions,
			WindowStart:   windowStart.Format(time.DateOnly),
			WindowEnd:     windowEnd.Format(time.DateOnly),
			Extra: map[string]any{
				"source":        bestSource,
				"traffic_share": utils.RoundWithTwoDecimalPlace(bestShare * 100),
			},
		},
	}
}

// conversionRateShift compara a taxa de conversão (conversões por sessão)
// entre as janelas e emite oportunidade na melhora ou alerta na piora
func (s *Service) conversionRateShift(snap *snapshot) *domain.Insight {
	currentRate, ok := conversionRate(snap.current)
	if !ok {
		return nil
	}
	previousRate, ok := conversionRate(snap.previous)
	if !ok {
		return nil
	}

	change := utils.PercentChange(currentRate, previousRate)
	if change > -10 && change < 10 {
		return nil
	}

	windowStart, windowEnd := snap.timeframe.CurrentWindow()

	insight := &domain.Insight{
		OrganizationID: snap.organizationID,
		ImpactScore:    impactFromChange(change),
		Confidence:     70,
		Category:       string(domain.MetricTypeConversions),
		Metadata: domain.InsightMetadata{
			CurrentValue:  fmt.Sprintf("%.4f", currentRate),
			PreviousValue: fmt.Sprintf("%.4f", previousRate),
			PercentChange: utils.RoundWithTwoDecimalPlace(change),
			MetricType:    domain.MetricTypeConversions,
			WindowStart:   windowStart.Format(time.DateOnly),
			WindowEnd:     windowEnd.Format(time.DateOnly),
		},
	}

	if change > 0 {
		insight.Type = domain.InsightTypeOpportunity
		insight.Urgency = domain.InsightUrgencyMedium
		insight.Actionable = true
		insight.Title = fmt.Sprintf("Taxa de conversão subiu %.1f%%", change)
		insight.Description = fmt.Sprintf(
			"A taxa de conversão passou de %.2f%% para %.2f%% entre os períodos. É um bom momento para escalar a aquisição de tráfego.",
			previousRate*100, currentRate*100,
		)
	} else {
		insight.Type = domain.InsightTypeAlert
		insight.Urgency = domain.InsightUrgencyHigh
		insight.Actionable = true
		insight.Title = fmt.Sprintf("Taxa de conversão caiu %.1f%%", -change)
		insight.Description = fmt.Sprintf(
			"A taxa de conversão passou de %.2f%% para %.2f%% entre os períodos. Vale revisar o funil e as páginas de destino.",
			previousRate*100, currentRate*100,
		)
	}

	return insight
}

func conversionRate(aggregates map[domain.MetricType]*domain.MetricAggregate) (float64, bool) {
	sessions := aggregates[domain.MetricTypeSessions]
	conversions := aggregates[domain.MetricTypeConversions]
	if sessions == nil || conversions == nil || sessions.Count == 0 {
		return 0, false
	}

	sessionTotal := sessions.Sum.InexactFloat64()
	if sessionTotal <= 0 {
		return 0, false
	}

	return conversions.Sum.InexactFloat64() / sessionTotal, true
}

// toFloat normaliza os números vindos do JSON dos metadados, que chegam
// como float64 ou como inteiros quando montados em memória
func toFloat(raw any) (float64, bool) {
	switch value := raw.(type) {
	case float64:
		return value, true
	case int64:
		return float64(value), true
	case int:
		return float64(value), true
	}
	return 0, false
}
