package stripe

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

// Service sincroniza cobranças, assinaturas e clientes da plataforma de
// pagamentos, normalizando tudo em data points diários
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
	return domain.PlatformStripe
}

func (s *Service) Sync(ctx context.Context, integration *domain.Integration, opts connector.SyncOptions) (*domain.SyncResult, error) {
	result := &domain.SyncResult{
		IntegrationID: integration.ID,
		Platform:      domain.PlatformStripe,
		StartedAt:     time.Now().UTC(),
	}

	since := s.windowStart(opts)

	logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"since":          since.Format(time.DateOnly),
	}).Info("Iniciando sincronização da plataforma de pagamentos")

	points := make([]*domain.DataPoint, 0)

	// Cobranças são a etapa primária: sem elas a sincronização falha
	chargePoints, fetched, err := s.syncCharges(ctx, integration, since, result)
	if err != nil {
		result.Error = err.Error()
		result.CompletedAt = time.Now().UTC()
		return result, fmt.Errorf("erro ao sincronizar cobranças: %w", err)
	}
	points = append(points, chargePoints...)
	result.Stats.RecordsFetched += fetched

	// Assinaturas alimentam a receita recorrente mensal
	mrrPoint, fetched, err := s.syncSubscriptions(ctx, integration)
	if err != nil {
		result.AddStepError("subscriptions", err, connector.IsTransient(err))
	} else {
		result.Stats.RecordsFetched += fetched
		if mrrPoint != nil {
			points = append(points, mrrPoint)
		}
	}

	// Cadastro de clientes roda com frequência menor
	if opts.IncludeCustomers {
		customerPoints, fetched, err := s.syncCustomers(ctx, integration, since)
		if err != nil {
			result.AddStepError("customers", err, connector.IsTransient(err))
		} else {
			result.Stats.RecordsFetched += fetched
			points = append(points, customerPoints...)
		}
	}

	if err := s.persist(ctx, points, result); err != nil {
		result.Error = err.Error()
		result.CompletedAt = time.Now().UTC()
		return result, err
	}

	result.Success = true
	result.CompletedAt = time.Now().UTC()
	return result, nil
}

func (s *Service) syncCharges(ctx context.Context, integration *domain.Integration, since time.Time, result *domain.SyncResult) ([]*domain.DataPoint, int, error) {
	charges, err := s.client.ListCharges(ctx, &integration.Credentials, since)
	if err != nil {
		return nil, 0, err
	}

	revenueByDay := make(map[time.Time]decimal.Decimal)
	ordersByDay := make(map[time.Time]int64)
	failedByDay := make(map[time.Time]int64)
	currencyByDay := make(map[time.Time]string)

	for _, charge := range charges {
		day := utils.TruncateToDay(charge.CreatedAt())

		switch charge.Status {
		case "succeeded":
			amount := decimal.New(charge.Amount, -2)
			revenueByDay[day] = revenueByDay[day].Add(amount)
			ordersByDay[day]++
			currencyByDay[day] = charge.Currency
		case "failed":
			failedByDay[day]++
		default:
			result.Stats.RecordsSkipped++
		}
	}

	fetched := len(charges)

	// Reembolsos entram como receita negativa no dia do reembolso.
	// A falha aqui não invalida a receita bruta já apurada.
	refunds, err := s.client.ListRefunds(ctx, &integration.Credentials, since)
	if err != nil {
		result.AddStepError("refunds", err, connector.IsTransient(err))
	} else {
		fetched += len(refunds)
		for _, refund := range refunds {
			if refund.Status != "succeeded" {
				result.Stats.RecordsSkipped++
				continue
			}
			day := utils.TruncateToDay(refund.CreatedAt())
			amount := decimal.New(refund.Amount, -2)
			revenueByDay[day] = revenueByDay[day].Sub(amount)
			if currencyByDay[day] == "" {
				currencyByDay[day] = refund.Currency
			}
		}
	}

	points := make([]*domain.DataPoint, 0, len(revenueByDay)+len(ordersByDay)+len(failedByDay))

	for day, value := range revenueByDay {
		points = append(points, &domain.DataPoint{
			IntegrationID: integration.ID,
			MetricType:    domain.MetricTypeRevenue,
			Value:         value,
			Date:          day,
			Metadata: map[string]any{
				domain.PointMetadataCurrency: currencyByDay[day],
			},
		})
	}

	for day, count := range ordersByDay {
		points = append(points, &domain.DataPoint{
			IntegrationID: integration.ID,
			MetricType:    domain.MetricTypeOrders,
			Value:         decimal.NewFromInt(count),
			Date:          day,
		})
	}

	for day, count := range failedByDay {
		points = append(points, &domain.DataPoint{
			IntegrationID: integration.ID,
			MetricType:    domain.MetricTypeFailedCharges,
			Value:         decimal.NewFromInt(count),
			Date:          day,
		})
	}

	return points, fetched, nil
}

func (s *Service) syncSubscriptions(ctx context.Context, integration *domain.Integration) (*domain.DataPoint, int, error) {
	subscriptions, err := s.client.ListSubscriptions(ctx, &integration.Credentials)
	if err != nil {
		return nil, 0, err
	}

	total := decimal.Zero
	for _, subscription := range subscriptions {
		if subscription.Status != "active" {
			continue
		}
		total = total.Add(subscription.MonthlyValue())
	}

	point := &domain.DataPoint{
		IntegrationID: integration.ID,
		MetricType:    domain.MetricTypeMRR,
		Value:         total,
		Date:          utils.TruncateToDay(time.Now().UTC()),
	}

	return point, len(subscriptions), nil
}

func (s *Service) syncCustomers(ctx context.Context, integration *domain.Integration, since time.Time) ([]*domain.DataPoint, int, error) {
	customers, err := s.client.ListCustomers(ctx, &integration.Credentials, since)
	if err != nil {
		return nil, 0, err
	}

	countByDay := make(map[time.Time]int64)
	for _, customer := range customers {
		day := utils.TruncateToDay(customer.CreatedAt())
		countByDay[day]++
	}

	points := make([]*domain.DataPoint, 0, len(countByDay))
	for day, count := range countByDay {
		points = append(points, &domain.DataPoint{
			IntegrationID: integration.ID,
			MetricType:    domain.MetricTypeCustomers,
			Value:         decimal.NewFromInt(count),
			Date:          day,
		})
	}

	integration.SetLastCustomerSyncAt(time.Now().UTC())

	return points, len(customers), nil
}

// webhookEvent é o envelope mínimo dos eventos de webhook da plataforma
type webhookEvent struct {
	Data struct {
		Object struct {
			Created int64 `json:"created"`
		} `json:"object"`
	} `json:"data"`
}

// HandleWebhookEvent reprocessa a janela do dia afetado pelo evento. O
// reprocessamento reaproveita o upsert idempotente em vez de aplicar deltas.
func (s *Service) HandleWebhookEvent(ctx context.Context, integration *domain.Integration, eventType string, payload []byte) (*domain.SyncResult, error) {
	result := &domain.SyncResult{
		IntegrationID: integration.ID,
		Platform:      domain.PlatformStripe,
		StartedAt:     time.Now().UTC(),
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		result.Error = "payload de webhook inválido"
		result.CompletedAt = time.Now().UTC()
		return result, fmt.Errorf("erro ao decodificar JSON do webhook: %w", err)
	}

	eventDay := utils.TruncateToDay(time.Now().UTC())
	if event.Data.Object.Created > 0 {
		eventDay = utils.TruncateToDay(time.Unix(event.Data.Object.Created, 0).UTC())
	}

	points := make([]*domain.DataPoint, 0)

	switch eventType {
	case "charge.succeeded", "charge.failed", "charge.refunded":
		chargePoints, fetched, err := s.syncCharges(ctx, integration, eventDay, result)
		if err != nil {
			result.Error = err.Error()
			result.CompletedAt = time.Now().UTC()
			return result, err
		}
		points = append(points, chargePoints...)
		result.Stats.RecordsFetched += fetched

	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		mrrPoint, fetched, err := s.syncSubscriptions(ctx, integration)
		if err != nil {
			result.Error = err.Error()
			result.CompletedAt = time.Now().UTC()
			return result, err
		}
		points = append(points, mrrPoint)
		result.Stats.RecordsFetched += fetched

	case "customer.created":
		customerPoints, fetched, err := s.syncCustomers(ctx, integration, eventDay)
		if err != nil {
			result.Error = err.Error()
			result.CompletedAt = time.Now().UTC()
			return result, err
		}
		points = append(points, customerPoints...)
		result.Stats.RecordsFetched += fetched

	default:
		logrus.WithFields(logrus.Fields{
			"integration_id": integration.ID,
			"event_type":     eventType,
		}).Debug("Tipo de evento de webhook ignorado")
		result.Stats.RecordsSkipped++
		result.Success = true
		result.CompletedAt = time.Now().UTC()
		return result, nil
	}

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
