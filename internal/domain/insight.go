package domain

import (
	"time"
)

// InsightType identifica a natureza do achado gerado pelo motor de insights
type InsightType string

const (
	InsightTypeTrend          InsightType = "trend"
	InsightTypeAnomaly        InsightType = "anomaly"
	InsightTypeRecommendation InsightType = "recommendation"
	InsightTypeOpportunity    InsightType = "opportunity"
	InsightTypeAlert          InsightType = "alert"
)

// InsightUrgency representa a prioridade de um insight
type InsightUrgency string

const (
	InsightUrgencyLow      InsightUrgency = "low"
	InsightUrgencyMedium   InsightUrgency = "medium"
	InsightUrgencyHigh     InsightUrgency = "high"
	InsightUrgencyCritical InsightUrgency = "critical"
)

// urgencyWeights são os pesos usados no ranqueamento de insights
var urgencyWeights = map[InsightUrgency]float64{
	InsightUrgencyLow:      1,
	InsightUrgencyMedium:   2,
	InsightUrgencyHigh:     3,
	InsightUrgencyCritical: 4,
}

// Weight retorna o peso de ranqueamento da urgência
func (u InsightUrgency) Weight() float64 {
	if w, ok := urgencyWeights[u]; ok {
		return w
	}
	return 1
}

// InsightMetadata carrega os números de suporte de um insight, suficientes
// para que o achado seja auto-explicativo sem reconsultar os data points
type InsightMetadata struct {
	CurrentValue  string         `json:"current_value,omitempty"`
	PreviousValue string         `json:"previous_value,omitempty"`
	PercentChange float64        `json:"percent_change,omitempty"`
	MetricType    MetricType     `json:"metric_type,omitempty"`
	WindowStart   string         `json:"window_start,omitempty"`
	WindowEnd     string         `json:"window_end,omitempty"`
	Extra         map[string]any `json:"extra,omitempty"`
}

// Insight é um achado derivado e ranqueado sobre as métricas de uma
// organização. Imutável após a criação, exceto pelo flag IsRead.
type Insight struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Type           InsightType     `json:"type"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ImpactScore    float64         `json:"impact_score"`
	Confidence     int             `json:"confidence"`
	Category       string          `json:"category"`
	Urgency        InsightUrgency  `json:"urgency"`
	Actionable     bool            `json:"actionable"`
	IsRead         bool            `json:"is_read"`
	Metadata       InsightMetadata `json:"metadata"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RankScore é a pontuação usada para ordenar insights (impacto × urgência)
func (i *Insight) RankScore() float64 {
	return i.ImpactScore * i.Urgency.Weight()
}

// InsightFilter restringe a listagem de insights
type InsightFilter struct {
	Type       *InsightType
	UnreadOnly bool
}

// InsightSummary agrega contagens de insights por tipo, urgência e leitura
type InsightSummary struct {
	Total     int64                    `json:"total"`
	Unread    int64                    `json:"unread"`
	ByType    map[InsightType]int64    `json:"by_type"`
	ByUrgency map[InsightUrgency]int64 `json:"by_urgency"`
}

// Timeframe define a janela de análise do motor de insights: o período
// corrente de N dias comparado com o período imediatamente anterior de
// mesmo tamanho
type Timeframe struct {
	Days int
	End  time.Time
}

// DefaultTimeframe retorna a janela padrão de 30 dias terminando agora
func DefaultTimeframe() Timeframe {
	return Timeframe{Days: 30, End: time.Now().UTC()}
}

// CurrentWindow retorna o início e o fim do período corrente
func (t Timeframe) CurrentWindow() (time.Time, time.Time) {
	end := t.End
	if end.IsZero() {
		end = time.Now().UTC()
	}
	return end.AddDate(0, 0, -t.Days), end
}

// PreviousWindow retorna o início e o fim do período anterior de mesmo tamanho
func (t Timeframe) PreviousWindow() (time.Time, time.Time) {
	start, _ := t.CurrentWindow()
	return start.AddDate(0, 0, -t.Days), start
}
