package shopify

import (
	"context"
	"encoding/json"
	"errors"
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

// ErrMissingShopDomain indica integração sem o domínio da loja nos metadados
var ErrMissingShopDomain = errors.New("integração sem domínio da loja nos metadados")

// Service sincroniza pedidos, reembolsos e clientes da loja virtual,
// normalizando tudo em data points diários
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
	return domain.PlatformShopify
}

func (s *Service) Sync(ctx context.Context, integration *domain.Integration, opts connector.SyncOptions) (*domain.SyncResult, error) {
	result := &domain.SyncResult{
		IntegrationID: integration.ID,
		Platform:      domain.PlatformShopify,
		StartedAt:     time.Now().UTC(),
	}

	shopDomain, err := s.shopDomain(integration)
	if err != nil {
		result.Error = err.Error()
		result.CompletedAt = time.Now().UTC()
		return result, err
	}

	since := s.windowStart(opts)

	logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"shop_domain":    shopDomain,
		"since":          since.Format(time.DateOnly),
	}).Info("Iniciando sincronização da loja virtual")

	points := make([]*domain.DataPoint, 0)

	// Pedidos são a etapa primária: sem eles a sincronização falha
	orderPoints, fetched, err := s.syncOrders(ctx, integration, shopDomain, since, result)
	if err != nil {
		result.Error = err.Error()
		result.CompletedAt = time.Now().UTC()
		return result, fmt.Errorf("erro ao sincronizar pedidos: %w", err)
	}
	points = append(points, orderPoints...)
	result.Stats.RecordsFetched += fetched

	if opts.IncludeCustomers {
		customerPoints, fetched, err := s.syncCustomers(ctx, integration, shopDomain, since)
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

func (s *Service) syncOrders(ctx context.Context, integration *domain.Integration, shopDomain string, since time.Time, result *domain.SyncResult) ([]*domain.DataPoint, int, error) {
	orders, err := s.client.ListOrders(ctx, &integration.Credentials, shopDomain, since)
	if err != nil {
		return nil, 0, err
	}

	revenueByDay := make(map[time.Time]decimal.Decimal)
	ordersByDay := make(map[time.Time]int64)
	currencyByDay := make(map[time.Time]string)

	for _, order := range orders {
		if !order.Paid() {
			result.Stats.RecordsSkipped++
			continue
		}

		total, err := decimal.NewFromString(order.TotalPrice)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"order_id": order.ID,
				"value":    order.TotalPrice,
			}).Warn("Valor de pedido inválido, registro ignorado")
			result.Stats.RecordsSkipped++
			continue
		}

		day := utils.TruncateToDay(order.CreatedAt.UTC())
		revenueByDay[day] = revenueByDay[day].Add(total)
		ordersByDay[day]++
		currencyByDay[day] = order.Currency

		// Reembolsos vêm embutidos no pedido e entram como receita
		// negativa no dia em que o reembolso aconteceu
		for _, refund := range order.Refunds {
			refundDay := utils.TruncateToDay(refund.CreatedAt.UTC())
			for _, transaction := range refund.Transactions {
				if transaction.Kind != "refund" || transaction.Status != "success" {
					continue
				}

				amount, err := decimal.NewFromString(transaction.Amount)
				if err != nil {
					continue
				}
				revenueByDay[refundDay] = revenueByDay[refundDay].Sub(amount)
				if currencyByDay[refundDay] == "" {
					currencyByDay[refundDay] = transaction.Currency
				}
			}
		}
	}

	points := make([]*domain.DataPoint, 0, len(revenueByDay)+len(ordersByDay))

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

	return points, len(orders), nil
}

func (s *Service) syncCustomers(ctx context.Context, integration *domain.Integration, shopDomain string, since time.Time) ([]*domain.DataPoint, int, error) {
	customers, err := s.client.ListCustomers(ctx, &integration.Credentials, shopDomain, since)
	if err != nil {
		return nil, 0, err
	}

	countByDay := make(map[time.Time]int64)
	for _, customer := range customers {
		day := utils.TruncateToDay(customer.CreatedAt.UTC())
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

// webhookEvent é o envelope mínimo dos webhooks da loja virtual
type webhookEvent struct {
	CreatedAt time.Time `json:"created_at"`
}

// HandleWebhookEvent reprocessa a janela do dia afetado pelo evento,
// reaproveitando o upsert idempotente em vez de aplicar deltas
func (s *Service) HandleWebhookEvent(ctx context.Context, integration *domain.Integration, eventType string, payload []byte) (*domain.SyncResult, error) {
	result := &domain.SyncResult{
		IntegrationID: integration.ID,
		Platform:      domain.PlatformShopify,
		StartedAt:     time.Now().UTC(),
	}

	shopDomain, err := s.shopDomain(integration)
	if err != nil {
		result.Error = err.Error()
		result.CompletedAt = time.Now().UTC()
		return result, err
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		result.Error = "payload de webhook inválido"
		result.CompletedAt = time.Now().UTC()
		return result, fmt.Errorf("erro ao decodificar JSON do webhook: %w", err)
	}

	eventDay := utils.TruncateToDay(time.Now().UTC())
	if !event.CreatedAt.IsZero() {
		eventDay = utils.TruncateToDay(event.CreatedAt.UTC())
	}

	points := make([]*domain.DataPoint, 0)

	switch eventType {
	case "orders/create", "orders/paid", "orders/updated", "refunds/create":
		orderPoints, fetched, err := s.syncOrders(ctx, integration, shopDomain, eventDay, result)
		if err != nil {
			result.Error = err.Error()
			result.CompletedAt = time.Now().UTC()
			return result, err
		}
		points = append(points, orderPoints...)
		result.Stats.RecordsFetched += fetched

	case "customers/create":
		customerPoints, fetched, err := s.syncCustomers(ctx, integration, shopDomain, eventDay)
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

func (s *Service) shopDomain(integration *domain.Integration) (string, error) {
	if integration.Metadata != nil {
		if shopDomain, ok := integration.Metadata[domain.MetadataKeyShopDomain].(string); ok && shopDomain != "" {
			return shopDomain, nil
		}
	}

	return "", ErrMissingShopDomain
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
