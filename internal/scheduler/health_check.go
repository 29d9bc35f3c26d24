package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/prem5599/bizinsights-sub001/infrastructure/repository"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
	"github.com/prem5599/bizinsights-sub001/internal/notify"
	"github.com/prem5599/bizinsights-sub001/internal/usecases/syncing"
)

// HealthCheckService varre as integrações periodicamente e alerta sobre as
// que falharam na última sincronização ou estão defasadas
type HealthCheckService struct {
	scheduler       *gocron.Scheduler
	cfg             *config.Config
	orchestrator    syncing.Orchestrator
	integrations    repository.IntegrationRepository
	notifier        notify.Notifier
	running         bool
	mu              sync.Mutex
	lastStartedAt   time.Time
	lastCompletedAt time.Time
}

func NewHealthCheckService(
	cfg *config.Config,
	orchestrator syncing.Orchestrator,
	integrations repository.IntegrationRepository,
	notifier notify.Notifier,
) *HealthCheckService {
	return &HealthCheckService{
		scheduler:    gocron.NewScheduler(time.UTC),
		cfg:          cfg,
		orchestrator: orchestrator,
		integrations: integrations,
		notifier:     notifier,
	}
}

// Start inicia o agendador
func (s *HealthCheckService) Start(ctx context.Context) error {
	if !s.cfg.HealthJob.Enabled {
		logrus.Info("Verificação de saúde das integrações desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.HealthJob.CronSchedule).Info("Iniciando agendador da verificação de saúde")

	_, err := s.scheduler.Cron(s.cfg.HealthJob.CronSchedule).Do(func() {
		s.runCheck()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar verificação de saúde: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da verificação de saúde")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *HealthCheckService) runCheck() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Verificação de saúde já em andamento, ignorando")
		return
	}
	s.running = true
	s.lastStartedAt = time.Now()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.lastCompletedAt = time.Now()
		s.mu.Unlock()
	}()

	ctx := context.Background()

	integrations, err := s.integrations.ListByStatus(ctx, []domain.IntegrationStatus{
		domain.IntegrationStatusActive,
		domain.IntegrationStatusSyncing,
		domain.IntegrationStatusError,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar integrações para verificação de saúde")
		return
	}

	alerts := 0
	for _, integration := range integrations {
		reason := s.evaluate(integration)
		if reason == "" {
			continue
		}

		// Integração ativa porém defasada passa ao status de erro. As que
		// estão em syncing ficam com o orquestrador, que grava o desfecho.
		if integration.Status == domain.IntegrationStatusActive {
			if err := s.integrations.UpdateStatus(ctx, integration.ID, domain.IntegrationStatusError); err != nil {
				logrus.WithError(err).WithField("integration_id", integration.ID).
					Error("Erro ao marcar integração defasada com erro")
			}
		}

		if err := s.notifier.SendHealthAlert(ctx, integration, reason); err != nil {
			logrus.WithError(err).WithField("integration_id", integration.ID).
				Error("Erro ao enviar alerta de saúde")
			continue
		}
		alerts++
	}

	logrus.WithFields(logrus.Fields{
		"integrations": len(integrations),
		"alerts":       alerts,
	}).Info("Verificação de saúde das integrações concluída")
}

// evaluate retorna o motivo do alerta, ou vazio quando a integração está
// saudável
func (s *HealthCheckService) evaluate(integration *domain.Integration) string {
	if integration.Status == domain.IntegrationStatusError {
		reason := "última sincronização falhou"
		if integration.Metadata != nil {
			if lastError, ok := integration.Metadata[domain.MetadataKeyLastSyncError].(string); ok && lastError != "" {
				reason = fmt.Sprintf("última sincronização falhou: %s", lastError)
			}
		}
		return reason
	}

	if s.orchestrator.IsStale(integration) {
		return fmt.Sprintf("sem sincronizar há mais de %d horas", s.cfg.Sync.StalenessThresholdHours)
	}

	return ""
}

// TriggerManualRun dispara manualmente uma verificação de saúde
func (s *HealthCheckService) TriggerManualRun() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Verificação de saúde já em andamento, ignorando solicitação manual")
		return
	}
	s.mu.Unlock()

	logrus.Info("Iniciando verificação de saúde manual")
	go s.runCheck()
}

// GetStatus retorna o status atual do agendador
func (s *HealthCheckService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":           s.cfg.HealthJob.Enabled,
		"cron":              s.cfg.HealthJob.CronSchedule,
		"staleness_hours":   s.cfg.Sync.StalenessThresholdHours,
		"running":           s.running,
		"last_started_at":   s.lastStartedAt,
		"last_completed_at": s.lastCompletedAt,
	}
}
