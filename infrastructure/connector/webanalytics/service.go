package webanalytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/prem5599/bizinsights-sub001/infrastructure/connector"
	"github.com/prem5599/bizinsights-sub001/infrastructure/repository"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
	"github.com/prem5599/bizinsights-sub001/pkg/utils"
)

// Service sincroniza as métricas de tráfego do site (sessões, pageviews e
// conversões), preservando a quebra por origem nos metadados dos pontos
type Service struct {
	cfg        *config.Config
	client     Client
	dataPoints repository.DataPointRepository
}

func NewService(
	cfg *config.Config,
	client Client,
	dataPoints repository.DataPointRepository,
) connector.Connector {
	return &Service{
		cfg:        cfg,
		client:     client,
		dataPoints: dataPoints,
	}
}

func (s *Service) Platform() domain.Platform {
	return domain.PlatformWebAnalytics
}

func (s *Service) Sync(ctx context.Context, integration *domain.Integration, opts connector.SyncOptions) (*domain.SyncResult, error) {
	result := &domain.SyncResult{
		IntegrationID: integration.ID,
		Platform:      domain.PlatformWebAnalytics,
		StartedAt:     time.Now().UTC(),
	}

	start := s.windowStart(opts)
	end := utils.TruncateToDay(time.Now().UTC()).AddDate(0, 0, 1)

	logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"start":          start.Format(time.DateOnly),
		"end":            end.Format(time.DateOnly),
	}).Info("Iniciando sincronização das métricas de tráfego")

	points, fetched, err := s.syncWindow(ctx, integration, start, end, result)
	if err != nil {
		result.Error = err.Error()
		result.CompletedAt = time.Now().UTC()
		return result, fmt.Errorf("erro ao sincronizar métricas de tráfego: %w", err)
	}
	result.Stats.RecordsFetched += fetched

	if err := s.persist(ctx, points, result); err != nil {
		result.Error = err.Error()
		result.CompletedAt = time.Now().UTC()
		return result, err
	}

	result.Success = true
	result.CompletedAt = time.Now().UTC()
	return result, nil
}

// dailyTotals acumula as métricas de um dia somadas sobre todas as origens
type dailyTotals struct {
	sessions            int64
	pageviews           int64
	conversions         int64
	sessionsBySource    map[string]int64
	conversionsBySource map[string]int64
}

func (s *Service) syncWindow(ctx context.Context, integration *domain.Integration, start, end time.Time, result *domain.SyncResult) ([]*domain.DataPoint, int, error) {
	rows, err := s.client.QueryDailyMetrics(ctx, &integration.Credentials, start, end)
	if err != nil {
		return nil, 0, err
	}

	totalsByDay := make(map[time.Time]*dailyTotals)

	for _, row := range rows {
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			logrus.WithField("date", row.Date).Warn("Data inválida na resposta da API, registro ignorado")
			result.Stats.RecordsSkipped++
			continue
		}

		day := utils.TruncateToDay(date)
		totals, ok := totalsByDay[day]
		if !ok {
			totals = &dailyTotals{
				sessionsBySource:    make(map[string]int64),
				conversionsBySource: make(map[string]int64),
			}
			totalsByDay[day] = totals
		}

		totals.sessions += row.Sessions
		totals.pageviews += row.Pageviews
		totals.conversions += row.Conversions
		if row.Source != "" {
			totals.sessionsBySource[row.Source] += row.Sessions
			totals.conversionsBySource[row.Source] += row.Conversions
		}
	}

	points := make([]*domain.DataPoint, 0, len(totalsByDay)*3)

	for day, totals := range totalsByDay {
		points = append(points,
			&domain.DataPoint{
				IntegrationID: integration.ID,
				MetricType:    domain.MetricTypeSessions,
				Value:         decimal.NewFromInt(totals.sessions),
				Date:          day,
				Metadata:      s.sourceMetadata(totals.sessionsBySource),
			},
			&domain.DataPoint{
				IntegrationID: integration.ID,
				MetricType:    domain.MetricTypePageviews,
				Value:         decimal.NewFromInt(totals.pageviews),
				Date:          day,
			},
			// O ponto de conversões carrega a própria quebra por origem,
			// insumo da análise de canal subinvestido
			&domain.DataPoint{
				IntegrationID: integration.ID,
				MetricType:    domain.MetricTypeConversions,
				Value:         decimal.NewFromInt(totals.conversions),
				Date:          day,
				Metadata:      s.sourceMetadata(totals.conversionsBySource),
			},
		)
	}

	return points, len(rows), nil
}

// sourceMetadata monta os metadados do ponto com a origem dominante e a
// quebra completa da métrica por origem
func (s *Service) sourceMetadata(bySource map[string]int64) map[string]any {
	if len(bySource) == 0 {
		return nil
	}

	topSource := ""
	var topCount int64 = -1
	breakdown := make(map[string]any, len(bySource))

	for source, count := range bySource {
		breakdown[source] = count
		if count > topCount || (count == topCount && source < topSource) {
			topSource = source
			topCount = count
		}
	}

	return map[string]any{
		domain.PointMetadataSource:          topSource,
		domain.PointMetadataSourceBreakdown: breakdown,
	}
}

// webhookEvent é o aviso de reprocessamento enviado pela plataforma de
// analytics quando um dia fechado é recalculado
type webhookEvent struct {
	Date string `json:"date"`
}

func (s *Service) HandleWebhookEvent(ctx context.Context, integration *domain.Integration, eventType string, payload []byte) (*domain.SyncResult, error) {
	result := &domain.SyncResult{
		IntegrationID: integration.ID,
		Platform:      domain.PlatformWebAnalytics,
		StartedAt:     time.Now().UTC(),
	}

	if eventType != "metrics/updated" {
		logrus.WithFields(logrus.Fields{
			"integration_id": integration.ID,
			"event_type":     eventType,
		}).Debug("Tipo de evento de webhook ignorado")
		result.Stats.RecordsSkipped++
		result.Success = true
		result.CompletedAt = time.Now().UTC()
		return result, nil
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		result.Error = "payload de webhook inválido"
		result.CompletedAt = time.Now().UTC()
		return result, fmt.Errorf("erro ao decodificar JSON do webhook: %w", err)
	}

	day := utils.TruncateToDay(time.Now().UTC())
	if event.Date != "" {
		parsed, err := time.Parse(time.DateOnly, event.Date)
		if err != nil {
			result.Error = "data inválida no payload do webhook"
			result.CompletedAt = time.Now().UTC()
			return result, fmt.Errorf("erro ao interpretar a data do webhook: %w", err)
		}
		day = utils.TruncateToDay(parsed)
	}

	points, fetched, err := s.syncWindow(ctx, integration, day, day.AddDate(0, 0, 1), result)
	if err != nil {
		result.Error = err.Error()
		result.CompletedAt = time.Now().UTC()
		return result, err
	}
	result.Stats.RecordsFetched += fetched

	if err := s.persist(ctx, points, result); err != nil {
		result.Error = err.Error()
		result.CompletedAt = time.Now().UTC()
		return result, err
	}

	result.Success = true
	result.CompletedAt = time.Now().UTC()
	return result, nil
}

func (s *Service) persist(ctx context.Context, points []*domain.DataPoint, result *domain.SyncResult) error {
	if len(points) == 0 {
		return nil
	}

	upserted, err := s.dataPoints.UpsertBatch(ctx, points)
	if err != nil {
		return fmt.Errorf("erro ao gravar data points: %w", err)
	}

	result.Stats.PointsUpserted += upserted
	for _, point := range points {
		result.Stats.CountMetric(point.MetricType, 1)
	}

	return nil
}

func (s *Service) windowStart(opts connector.SyncOptions) time.Time {
	if opts.Since != nil {
		return utils.TruncateToDay(opts.Since.UTC())
	}

	lookback := s.cfg.Sync.InitialLookbackDays
	if lookback <= 0 {
		lookback = 30
	}

	return utils.TruncateToDay(time.Now().UTC().AddDate(0, 0, -lookback))
}
