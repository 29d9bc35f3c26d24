package insighting

import (
	"fmt"
	"math"
	"time"

	"github.com/prem5599/bizinsights-sub001/internal/domain"
	"github.com/prem5599/bizinsights-sub001/pkg/utils"
)

// relativeDeviationFloor impede que séries quase constantes gerem anomalia
// por ruído mínimo: além de passar do limiar de desvios-padrão, o desvio
// precisa ser relevante frente à média da série
const relativeDeviationFloor = 0.3

// analyzeAnomalies procura, nas séries diárias, dias que destoam do
// restante da janela. Cada métrica contribui com no máximo um insight, o do
// dia de maior desvio.
func (s *Service) analyzeAnomalies(snap *snapshot) []*domain.Insight {
	minDays := s.cfg.Insights.AnomalyMinDays
	if minDays <= 0 {
		minDays = 7
	}

	threshold := s.cfg.Insights.AnomalyThreshold
	if threshold <= 0 {
		threshold = 2.0
	}

	insights := make([]*domain.Insight, 0)

	for _, metric := range dailyMetrics {
		series := snap.daily[metric]
		if len(series) < minDays {
			continue
		}

		if insight := s.detectAnomaly(snap, metric, series, threshold); insight != nil {
			insights = append(insights, insight)
		}
	}

	return insights
}

// detectAnomaly avalia cada dia contra a linha de base formada pelos demais
// dias da janela e retorna o desvio mais forte encontrado
func (s *Service) detectAnomaly(snap *snapshot, metric domain.MetricType, series []*domain.DailyMetric, threshold float64) *domain.Insight {
	values := make([]float64, len(series))
	for i, day := range series {
		values[i] = day.Value.InexactFloat64()
	}

	bestIndex := -1
	bestRelative := 0.0

	for i, value := range values {
		mean, stddev := baselineStats(values, i)
		if mean <= 0 {
			continue
		}

		deviation := math.Abs(value - mean)
		if deviation <= threshold*stddev || deviation <= relativeDeviationFloor*mean {
			continue
		}

		relative := deviation / mean
		if relative > bestRelative {
			bestRelative = relative
			bestIndex = i
		}
	}

	if bestIndex < 0 {
		return nil
	}

	day := series[bestIndex]
	mean, _ := baselineStats(values, bestIndex)
	value := values[bestIndex]

	label := metricLabels[metric]
	if label == "" {
		label = string(metric)
	}

	direction := "Pico"
	urgency := domain.InsightUrgencyMedium
	actionable := false
	if value < mean {
		direction = "Queda"
		urgency = domain.InsightUrgencyHigh
		actionable = true
	}

	confidence := 50 + len(series)*2
	if confidence > 95 {
		confidence = 95
	}

	impact := bestRelative * 5
	if impact > 10 {
		impact = 10
	}

	return &domain.Insight{
		OrganizationID: snap.organizationID,
		Type:           domain.InsightTypeAnomaly,
		Title:          fmt.Sprintf("%s anômalo de %s em %s", direction, label, day.Date.Format(time.DateOnly)),
		Description: fmt.Sprintf(
			"%s registrou %s em %s, contra uma média de %.2f nos demais dias da janela.",
			label, day.Value.StringFixed(2), day.Date.Format(time.DateOnly), mean,
		),
		ImpactScore: utils.RoundWithTwoDecimalPlace(impact),
		Confidence:  confidence,
		Category:    string(metric),
		Urgency:     urgency,
		Actionable:  actionable,
		Metadata: domain.InsightMetadata{
			CurrentValue:  day.Value.String(),
			PreviousValue: fmt.Sprintf("%.2f", mean),
			PercentChange: utils.RoundWithTwoDecimalPlace(utils.PercentChange(value, mean)),
			MetricType:    metric,
			WindowStart:   series[0].Date.Format(time.DateOnly),
			WindowEnd:     series[len(series)-1].Date.Format(time.DateOnly),
		},
	}
}

// baselineStats calcula média e desvio-padrão da série excluindo o índice
// avaliado, para que o próprio candidato não contamine a linha de base
func baselineStats(values []float64, exclude int) (float64, float64) {
	n := len(values) - 1
	if n <= 0 {
		return 0, 0
	}

	sum := 0.0
	for i, value := range values {
		if i == exclude {
			continue
		}
		sum += value
	}
	mean := sum / float64(n)

	variance := 0.0
	for i, value := range values {
		if i == exclude {
			continue
		}
		variance += (value - mean) * (value - mean)
	}
	variance /= float64(n)

	return mean, math.Sqrt(variance)
}
