package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	repomocks "github.com/prem5599/bizinsights-sub001/infrastructure/repository/mocks"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
	notifymocks "github.com/prem5599/bizinsights-sub001/internal/notify/mocks"
	syncmocks "github.com/prem5599/bizinsights-sub001/internal/usecases/syncing/mocks"
)

func healthConfig() *config.Config {
	return &config.Config{
		Sync: config.Sync{StalenessThresholdHours: 24},
		HealthJob: config.HealthJob{
			Enabled:      true,
			CronSchedule: "0 * * * *",
		},
	}
}

func TestHealthCheckServiceEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		integration *domain.Integration
		stale       bool
		expected    string
	}{
		{
			name: "Integração com erro repassa o motivo da falha",
			integration: &domain.Integration{
				ID:     "int-1",
				Status: domain.IntegrationStatusError,
				Metadata: map[string]any{
					domain.MetadataKeyLastSyncError: "credencial expirada",
				},
			},
			expected: "última sincronização falhou: credencial expirada",
		},
		{
			name: "Integração com erro sem detalhe usa o motivo genérico",
			integration: &domain.Integration{
				ID:     "int-2",
				Status: domain.IntegrationStatusError,
			},
			expected: "última sincronização falhou",
		},
		{
			name: "Integração defasada aponta o limiar de horas",
			integration: &domain.Integration{
				ID:     "int-3",
				Status: domain.IntegrationStatusActive,
			},
			stale:    true,
			expected: "sem sincronizar há mais de 24 horas",
		},
		{
			name: "Integração saudável não gera motivo",
			integration: &domain.Integration{
				ID:     "int-4",
				Status: domain.IntegrationStatusActive,
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			orchestrator := syncmocks.NewMockOrchestrator(ctrl)
			if tt.integration.Status != domain.IntegrationStatusError {
				orchestrator.EXPECT().IsStale(tt.integration).Return(tt.stale)
			}

			service := NewHealthCheckService(
				healthConfig(),
				orchestrator,
				repomocks.NewMockIntegrationRepository(ctrl),
				notifymocks.NewMockNotifier(ctrl),
			)

			assert.Equal(t, tt.expected, service.evaluate(tt.integration))
		})
	}
}

func TestHealthCheckServiceRunCheckAlertsUnhealthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recent := time.Now().Add(-time.Hour)
	healthy := &domain.Integration{ID: "int-ok", Status: domain.IntegrationStatusActive, LastSyncAt: &recent}
	broken := &domain.Integration{
		ID:     "int-erro",
		Status: domain.IntegrationStatusError,
		Metadata: map[string]any{
			domain.MetadataKeyLastSyncError: "api fora do ar",
		},
	}

	integrations := repomocks.NewMockIntegrationRepository(ctrl)
	integrations.EXPECT().
		ListByStatus(gomock.Any(), gomock.Any()).
		Return([]*domain.Integration{healthy, broken}, nil)

	orchestrator := syncmocks.NewMockOrchestrator(ctrl)
	orchestrator.EXPECT().IsStale(healthy).Return(false)

	notifier := notifymocks.NewMockNotifier(ctrl)
	notifier.EXPECT().
		SendHealthAlert(gomock.Any(), broken, "última sincronização falhou: api fora do ar").
		Return(nil)

	service := NewHealthCheckService(healthConfig(), orchestrator, integrations, notifier)
	service.runCheck()
}

func TestHealthCheckServiceRunCheckFlagsStaleIntegration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	old := time.Now().Add(-48 * time.Hour)
	stale := &domain.Integration{ID: "int-defasada", Status: domain.IntegrationStatusActive, LastSyncAt: &old}

	integrations := repomocks.NewMockIntegrationRepository(ctrl)
	integrations.EXPECT().
		ListByStatus(gomock.Any(), gomock.Any()).
		Return([]*domain.Integration{stale}, nil)
	// Defasada deixa de ser ativa além de gerar o alerta
	integrations.EXPECT().
		UpdateStatus(gomock.Any(), "int-defasada", domain.IntegrationStatusError).
		Return(nil)

	orchestrator := syncmocks.NewMockOrchestrator(ctrl)
	orchestrator.EXPECT().IsStale(stale).Return(true)

	notifier := notifymocks.NewMockNotifier(ctrl)
	notifier.EXPECT().
		SendHealthAlert(gomock.Any(), stale, "sem sincronizar há mais de 24 horas").
		Return(nil)

	service := NewHealthCheckService(healthConfig(), orchestrator, integrations, notifier)
	service.runCheck()
}
