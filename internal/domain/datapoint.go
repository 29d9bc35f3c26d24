package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricType identifica o tipo de métrica normalizada de um data point
type MetricType string

const (
	MetricTypeRevenue       MetricType = "revenue"
	MetricTypeOrders        MetricType = "orders"
	MetricTypeCustomers     MetricType = "customers"
	MetricTypeSessions      MetricType = "sessions"
	MetricTypePageviews     MetricType = "pageviews"
	MetricTypeConversions   MetricType = "conversions"
	MetricTypeMRR           MetricType = "mrr"
	MetricTypeFailedCharges MetricType = "failed_charges"
)

// Chaves conhecidas do mapa de metadados de um data point
const (
	PointMetadataCurrency        = "currency"
	PointMetadataSource          = "source"
	PointMetadataSourceBreakdown = "source_breakdown"
	PointMetadataExternalID      = "external_id"
	PointMetadataTimestamp       = "timestamp"
	PointMetadataRefund          = "refund"
)

// DataPoint é uma observação normalizada de métrica, com granularidade
// diária. Único por (integration_id, metric_type, date) — re-sincronizações
// fazem upsert, nunca duplicam.
type DataPoint struct {
	ID            string          `json:"id"`
	IntegrationID string          `json:"integration_id"`
	MetricType    MetricType      `json:"metric_type"`
	Value         decimal.Decimal `json:"value"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Source retorna a origem de tráfego registrada nos metadados do ponto
func (d *DataPoint) Source() string {
	if d.Metadata == nil {
		return ""
	}
	source, _ := d.Metadata[PointMetadataSource].(string)
	return source
}

// MetricAggregate é o resultado de uma agregação (soma/média/contagem) de
// data points em um intervalo
type MetricAggregate struct {
	MetricType MetricType      `json:"metric_type"`
	Sum        decimal.Decimal `json:"sum"`
	Avg        decimal.Decimal `json:"avg"`
	Count      int64           `json:"count"`
}

// DailyMetric é o valor agregado de uma métrica em um único dia
type DailyMetric struct {
	Date       time.Time       `json:"date"`
	MetricType MetricType      `json:"metric_type"`
	Value      decimal.Decimal `json:"value"`
}
