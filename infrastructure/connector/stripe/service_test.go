package stripe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/prem5599/bizinsights-sub001/infrastructure/connector"
	stripedomain "github.com/prem5599/bizinsights-sub001/infrastructure/connector/stripe/domain"
	stripemocks "github.com/prem5599/bizinsights-sub001/infrastructure/connector/stripe/mocks"
	repomocks "github.com/prem5599/bizinsights-sub001/infrastructure/repository/mocks"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

func testIntegration() *domain.Integration {
	return &domain.Integration{
		ID:                "int-1",
		OrganizationID:    "org-1",
		Platform:          domain.PlatformStripe,
		PlatformAccountID: "acct_1",
		Status:            domain.IntegrationStatusActive,
		Credentials:       domain.Credentials{AccessToken: "sk_test"},
	}
}

func unix(t time.Time) int64 {
	return t.Unix()
}

func TestServiceSync(t *testing.T) {
	day := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		setup    func(client *stripemocks.MockClient, dataPoints *repomocks.MockDataPointRepository)
		validate func(t *testing.T, result *domain.SyncResult, err error)
	}{
		{
			name: "Cobranças do mesmo dia são agregadas em pontos diários",
			setup: func(client *stripemocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {
				client.EXPECT().
					ListCharges(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]stripedomain.Charge{
						{ID: "ch_1", Amount: 10000, Currency: "brl", Status: "succeeded", Created: unix(day)},
						{ID: "ch_2", Amount: 5000, Currency: "brl", Status: "succeeded", Created: unix(day.Add(2 * time.Hour))},
						{ID: "ch_3", Amount: 3000, Currency: "brl", Status: "failed", Created: unix(day)},
					}, nil)
				client.EXPECT().
					ListRefunds(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]stripedomain.Refund{}, nil)
				client.EXPECT().
					ListSubscriptions(gomock.Any(), gomock.Any()).
					Return([]stripedomain.Subscription{}, nil)

				dataPoints.EXPECT().
					UpsertBatch(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, points []*domain.DataPoint) (int64, error) {
						byMetric := make(map[domain.MetricType]*domain.DataPoint)
						for _, point := range points {
							byMetric[point.MetricType] = point
						}

						// 150.00 de receita, 2 pedidos e 1 falha no mesmo dia
						assert.Equal(t, "150", byMetric[domain.MetricTypeRevenue].Value.String())
						assert.Equal(t, "2", byMetric[domain.MetricTypeOrders].Value.String())
						assert.Equal(t, "1", byMetric[domain.MetricTypeFailedCharges].Value.String())
						assert.Equal(t, "brl", byMetric[domain.MetricTypeRevenue].Metadata[domain.PointMetadataCurrency])

						return int64(len(points)), nil
					})
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.NoError(t, err)
				assert.True(t, result.Success)
				assert.Equal(t, 3, result.Stats.RecordsFetched)
				assert.Empty(t, result.StepErrors)
			},
		},
		{
			name: "Falha na etapa primária aborta a sincronização",
			setup: func(client *stripemocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {
				client.EXPECT().
					ListCharges(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, assert.AnError)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.Error(t, err)
				assert.False(t, result.Success)
				assert.NotEmpty(t, result.Error)
			},
		},
		{
			name: "Falha em etapa secundária não derruba a sincronização",
			setup: func(client *stripemocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {
				client.EXPECT().
					ListCharges(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]stripedomain.Charge{
						{ID: "ch_1", Amount: 10000, Currency: "brl", Status: "succeeded", Created: unix(day)},
					}, nil)
				client.EXPECT().
					ListRefunds(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]stripedomain.Refund{}, nil)
				client.EXPECT().
					ListSubscriptions(gomock.Any(), gomock.Any()).
					Return(nil, assert.AnError)

				dataPoints.EXPECT().
					UpsertBatch(gomock.Any(), gomock.Any()).
					Return(int64(2), nil)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.NoError(t, err)
				assert.True(t, result.Success)
				assert.Len(t, result.StepErrors, 1)
				assert.Equal(t, "subscriptions", result.StepErrors[0].Step)
				// As métricas das etapas bem-sucedidas são preservadas
				assert.Equal(t, int64(2), result.Stats.PointsUpserted)
			},
		},
		{
			name: "Reembolso entra como receita negativa no dia do reembolso",
			setup: func(client *stripemocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {
				client.EXPECT().
					ListCharges(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]stripedomain.Charge{
						{ID: "ch_1", Amount: 10000, Currency: "brl", Status: "succeeded", Created: unix(day)},
					}, nil)
				client.EXPECT().
					ListRefunds(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]stripedomain.Refund{
						{ID: "re_1", Amount: 4000, Currency: "brl", Status: "succeeded", Created: unix(day.Add(time.Hour))},
						{ID: "re_2", Amount: 9900, Currency: "brl", Status: "pending", Created: unix(day)},
					}, nil)
				client.EXPECT().
					ListSubscriptions(gomock.Any(), gomock.Any()).
					Return([]stripedomain.Subscription{}, nil)

				dataPoints.EXPECT().
					UpsertBatch(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, points []*domain.DataPoint) (int64, error) {
						for _, point := range points {
							if point.MetricType == domain.MetricTypeRevenue {
								// 100.00 - 40.00; o reembolso pendente é ignorado
								assert.Equal(t, "60", point.Value.String())
							}
						}
						return int64(len(points)), nil
					})
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.NoError(t, err)
				assert.True(t, result.Success)
				assert.Equal(t, 1, result.Stats.RecordsSkipped)
			},
		},
		{
			name: "Clientes entram apenas quando a etapa é habilitada",
			setup: func(client *stripemocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {
				client.EXPECT().
					ListCharges(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]stripedomain.Charge{}, nil)
				client.EXPECT().
					ListRefunds(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]stripedomain.Refund{}, nil)
				client.EXPECT().
					ListSubscriptions(gomock.Any(), gomock.Any()).
					Return([]stripedomain.Subscription{}, nil)

				dataPoints.EXPECT().
					UpsertBatch(gomock.Any(), gomock.Any()).
					Return(int64(1), nil)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.NoError(t, err)
				assert.True(t, result.Success)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := stripemocks.NewMockClient(ctrl)
			mockDataPoints := repomocks.NewMockDataPointRepository(ctrl)
			tt.setup(mockClient, mockDataPoints)

			service := NewService(&config.Config{}, mockClient, mockDataPoints)
			result, err := service.Sync(context.Background(), testIntegration(), connector.SyncOptions{})

			tt.validate(t, result, err)
		})
	}
}

func TestServiceSyncIncludeCustomers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	day := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	mockClient := stripemocks.NewMockClient(ctrl)
	mockDataPoints := repomocks.NewMockDataPointRepository(ctrl)

	mockClient.EXPECT().
		ListCharges(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]stripedomain.Charge{}, nil)
	mockClient.EXPECT().
		ListRefunds(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]stripedomain.Refund{}, nil)
	mockClient.EXPECT().
		ListSubscriptions(gomock.Any(), gomock.Any()).
		Return([]stripedomain.Subscription{}, nil)
	mockClient.EXPECT().
		ListCustomers(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]stripedomain.Customer{
			{ID: "cus_1", Created: unix(day)},
			{ID: "cus_2", Created: unix(day.Add(time.Hour))},
		}, nil)

	mockDataPoints.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, points []*domain.DataPoint) (int64, error) {
			for _, point := range points {
				if point.MetricType == domain.MetricTypeCustomers {
					assert.Equal(t, "2", point.Value.String())
				}
			}
			return int64(len(points)), nil
		})

	integration := testIntegration()
	service := NewService(&config.Config{}, mockClient, mockDataPoints)

	result, err := service.Sync(context.Background(), integration, connector.SyncOptions{IncludeCustomers: true})

	assert.NoError(t, err)
	assert.True(t, result.Success)
	// A etapa registra o momento da sincronização de clientes nos metadados
	assert.NotNil(t, integration.LastCustomerSyncAt())
}

func TestServiceHandleWebhookEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		payload   string
		setup     func(client *stripemocks.MockClient, dataPoints *repomocks.MockDataPointRepository)
		validate  func(t *testing.T, result *domain.SyncResult, err error)
	}{
		{
			name:      "Evento de cobrança reprocessa a janela do dia",
			eventType: "charge.succeeded",
			payload:   `{"data":{"object":{"created":1710072000}}}`,
			setup: func(client *stripemocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {
				client.EXPECT().
					ListCharges(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *domain.Credentials, since time.Time) ([]stripedomain.Charge, error) {
						// A janela começa no dia do evento, não na janela incremental
						assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), since)
						return []stripedomain.Charge{
							{ID: "ch_1", Amount: 2000, Currency: "brl", Status: "succeeded", Created: 1710072000},
						}, nil
					})
				client.EXPECT().
					ListRefunds(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]stripedomain.Refund{}, nil)

				dataPoints.EXPECT().
					UpsertBatch(gomock.Any(), gomock.Any()).
					Return(int64(2), nil)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.NoError(t, err)
				assert.True(t, result.Success)
				assert.Equal(t, int64(2), result.Stats.PointsUpserted)
			},
		},
		{
			name:      "Evento de assinatura recalcula a receita recorrente",
			eventType: "customer.subscription.updated",
			payload:   `{"data":{"object":{}}}`,
			setup: func(client *stripemocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {
				client.EXPECT().
					ListSubscriptions(gomock.Any(), gomock.Any()).
					Return([]stripedomain.Subscription{}, nil)
				dataPoints.EXPECT().
					UpsertBatch(gomock.Any(), gomock.Any()).
					Return(int64(1), nil)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.NoError(t, err)
				assert.True(t, result.Success)
			},
		},
		{
			name:      "Evento desconhecido é ignorado sem erro",
			eventType: "invoice.finalized",
			payload:   `{"data":{"object":{}}}`,
			setup:     func(client *stripemocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.NoError(t, err)
				assert.True(t, result.Success)
				assert.Equal(t, 1, result.Stats.RecordsSkipped)
			},
		},
		{
			name:      "Payload inválido retorna erro",
			eventType: "charge.succeeded",
			payload:   `{{`,
			setup:     func(client *stripemocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.Error(t, err)
				assert.False(t, result.Success)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := stripemocks.NewMockClient(ctrl)
			mockDataPoints := repomocks.NewMockDataPointRepository(ctrl)
			tt.setup(mockClient, mockDataPoints)

			service := NewService(&config.Config{}, mockClient, mockDataPoints)
			result, err := service.HandleWebhookEvent(context.Background(), testIntegration(), tt.eventType, []byte(tt.payload))

			tt.validate(t, result, err)
		})
	}
}
