package domain

import (
	"time"
)

// SyncStepError registra a falha de um sub-recurso de sincronização sem
// abortar os demais sub-recursos
type SyncStepError struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	Transient bool   `json:"transient"`
}

// SyncStats acumula as estatísticas de uma execução de sincronização
type SyncStats struct {
	RecordsFetched int                `json:"records_fetched"`
	RecordsSkipped int                `json:"records_skipped"`
	PointsUpserted int64              `json:"points_upserted"`
	ByMetric       map[MetricType]int `json:"by_metric,omitempty"`
}

// Merge acumula as estatísticas de outra execução nesta
func (s *SyncStats) Merge(other SyncStats) {
	s.RecordsFetched += other.RecordsFetched
	s.RecordsSkipped += other.RecordsSkipped
	s.PointsUpserted += other.PointsUpserted

	if len(other.ByMetric) > 0 {
		if s.ByMetric == nil {
			s.ByMetric = make(map[MetricType]int)
		}
		for metric, count := range other.ByMetric {
			s.ByMetric[metric] += count
		}
	}
}

// CountMetric incrementa a contagem de pontos gerados para uma métrica
func (s *SyncStats) CountMetric(metric MetricType, n int) {
	if s.ByMetric == nil {
		s.ByMetric = make(map[MetricType]int)
	}
	s.ByMetric[metric] += n
}

// SyncResult é o resultado agregado da sincronização de uma integração.
// Um resultado parcial (algumas etapas falharam) é um desfecho previsto:
// as estatísticas das etapas bem-sucedidas são sempre preservadas.
type SyncResult struct {
	IntegrationID string          `json:"integration_id"`
	Platform      Platform        `json:"platform"`
	Success       bool            `json:"success"`
	Stats         SyncStats       `json:"stats"`
	StepErrors    []SyncStepError `json:"step_errors,omitempty"`
	Error         string          `json:"error,omitempty"`
	StartedAt     time.Time       `json:"started_at"`
	CompletedAt   time.Time       `json:"completed_at"`
}

// AddStepError registra a falha de uma etapa no resultado
func (r *SyncResult) AddStepError(step string, err error, transient bool) {
	r.StepErrors = append(r.StepErrors, SyncStepError{
		Step:      step,
		Message:   err.Error(),
		Transient: transient,
	})
}
