package shopify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/prem5599/bizinsights-sub001/infrastructure/connector"
	shopifydomain "github.com/prem5599/bizinsights-sub001/infrastructure/connector/shopify/domain"
	shopifymocks "github.com/prem5599/bizinsights-sub001/infrastructure/connector/shopify/mocks"
	repomocks "github.com/prem5599/bizinsights-sub001/infrastructure/repository/mocks"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

func testIntegration() *domain.Integration {
	return &domain.Integration{
		ID:                "int-1",
		OrganizationID:    "org-1",
		Platform:          domain.PlatformShopify,
		PlatformAccountID: "shop-1",
		Status:            domain.IntegrationStatusActive,
		Credentials:       domain.Credentials{AccessToken: "shpat_test"},
		Metadata: map[string]any{
			domain.MetadataKeyShopDomain: "minha-loja.myshopify.com",
		},
	}
}

func TestServiceSync(t *testing.T) {
	day := time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC)
	nextDay := day.AddDate(0, 0, 1)

	tests := []struct {
		name        string
		integration *domain.Integration
		setup       func(client *shopifymocks.MockClient, dataPoints *repomocks.MockDataPointRepository)
		validate    func(t *testing.T, result *domain.SyncResult, err error)
	}{
		{
			name:        "Pedidos pagos viram receita e contagem diárias",
			integration: testIntegration(),
			setup: func(client *shopifymocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {
				client.EXPECT().
					ListOrders(gomock.Any(), gomock.Any(), "minha-loja.myshopify.com", gomock.Any()).
					Return([]shopifydomain.Order{
						{ID: 1, CreatedAt: day, Currency: "BRL", TotalPrice: "150.00", FinancialStatus: "paid"},
						{ID: 2, CreatedAt: day, Currency: "BRL", TotalPrice: "49.90", FinancialStatus: "partially_paid"},
						{ID: 3, CreatedAt: day, Currency: "BRL", TotalPrice: "80.00", FinancialStatus: "pending"},
					}, nil)

				dataPoints.EXPECT().
					UpsertBatch(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, points []*domain.DataPoint) (int64, error) {
						byMetric := make(map[domain.MetricType]*domain.DataPoint)
						for _, point := range points {
							byMetric[point.MetricType] = point
						}

						// O pedido pendente fica de fora
						assert.Equal(t, "199.9", byMetric[domain.MetricTypeRevenue].Value.String())
						assert.Equal(t, "2", byMetric[domain.MetricTypeOrders].Value.String())

						return int64(len(points)), nil
					})
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.NoError(t, err)
				assert.True(t, result.Success)
				assert.Equal(t, 3, result.Stats.RecordsFetched)
				assert.Equal(t, 1, result.Stats.RecordsSkipped)
			},
		},
		{
			name:        "Reembolso embutido subtrai a receita no dia do reembolso",
			integration: testIntegration(),
			setup: func(client *shopifymocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {
				client.EXPECT().
					ListOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]shopifydomain.Order{
						{
							ID: 1, CreatedAt: day, Currency: "BRL", TotalPrice: "200.00", FinancialStatus: "paid",
							Refunds: []shopifydomain.Refund{
								{
									CreatedAt: nextDay,
									Transactions: []shopifydomain.RefundTransaction{
										{Amount: "50.00", Currency: "BRL", Kind: "refund", Status: "success"},
										{Amount: "10.00", Currency: "BRL", Kind: "refund", Status: "failure"},
									},
								},
							},
						},
					}, nil)

				dataPoints.EXPECT().
					UpsertBatch(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, points []*domain.DataPoint) (int64, error) {
						revenueByDay := make(map[time.Time]string)
						for _, point := range points {
							if point.MetricType == domain.MetricTypeRevenue {
								revenueByDay[point.Date] = point.Value.String()
							}
						}

						// A venda fica no dia do pedido e o estorno no dia seguinte
						assert.Equal(t, "200", revenueByDay[time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)])
						assert.Equal(t, "-50", revenueByDay[time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)])

						return int64(len(points)), nil
					})
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.NoError(t, err)
				assert.True(t, result.Success)
			},
		},
		{
			name:        "Valor de pedido inválido é ignorado sem derrubar a sincronização",
			integration: testIntegration(),
			setup: func(client *shopifymocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {
				client.EXPECT().
					ListOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]shopifydomain.Order{
						{ID: 1, CreatedAt: day, Currency: "BRL", TotalPrice: "abc", FinancialStatus: "paid"},
						{ID: 2, CreatedAt: day, Currency: "BRL", TotalPrice: "100.00", FinancialStatus: "paid"},
					}, nil)

				dataPoints.EXPECT().
					UpsertBatch(gomock.Any(), gomock.Any()).
					Return(int64(2), nil)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.NoError(t, err)
				assert.True(t, result.Success)
				assert.Equal(t, 1, result.Stats.RecordsSkipped)
			},
		},
		{
			name: "Integração sem domínio da loja falha imediatamente",
			integration: &domain.Integration{
				ID:       "int-2",
				Platform: domain.PlatformShopify,
				Status:   domain.IntegrationStatusActive,
			},
			setup: func(client *shopifymocks.MockClient, dataPoints *repomocks.MockDataPointRepository) {},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.ErrorIs(t, err, ErrMissingShopDomain)
				assert.False(t, result.Success)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := shopifymocks.NewMockClient(ctrl)
			mockDataPoints := repomocks.NewMockDataPointRepository(ctrl)
			tt.setup(mockClient, mockDataPoints)

			service := NewService(&config.Config{}, mockClient, mockDataPoints)
			result, err := service.Sync(context.Background(), tt.integration, connector.SyncOptions{})

			tt.validate(t, result, err)
		})
	}
}

func TestServiceHandleWebhookEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := shopifymocks.NewMockClient(ctrl)
	mockDataPoints := repomocks.NewMockDataPointRepository(ctrl)

	mockClient.EXPECT().
		ListOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Credentials, _ string, since time.Time) ([]shopifydomain.Order, error) {
			// A janela do reprocessamento começa no dia do evento
			assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), since)
			return []shopifydomain.Order{
				{ID: 1, CreatedAt: time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC), Currency: "BRL", TotalPrice: "75.00", FinancialStatus: "paid"},
			}, nil
		})
	mockDataPoints.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Any()).
		Return(int64(2), nil)

	service := NewService(&config.Config{}, mockClient, mockDataPoints)
	payload := []byte(`{"created_at":"2024-03-10T15:00:00Z"}`)

	result, err := service.HandleWebhookEvent(context.Background(), testIntegration(), "orders/paid", payload)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(2), result.Stats.PointsUpserted)
}

func TestServiceHandleWebhookEventUnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := shopifymocks.NewMockClient(ctrl)
	mockDataPoints := repomocks.NewMockDataPointRepository(ctrl)

	service := NewService(&config.Config{}, mockClient, mockDataPoints)

	result, err := service.HandleWebhookEvent(context.Background(), testIntegration(), "app/uninstalled", []byte(`{}`))

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Stats.RecordsSkipped)
}
