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
	"github.com/prem5599/bizinsights-sub001/internal/notify"
	"github.com/prem5599/bizinsights-sub001/internal/usecases/insighting"
)

// DigestService agenda o envio do resumo periódico com os melhores insights
// não lidos de cada organização
type DigestService struct {
	scheduler       *gocron.Scheduler
	cfg             *config.Config
	insighter       insighting.Insighter
	integrations    repository.IntegrationRepository
	notifier        notify.Notifier
	running         bool
	mu              sync.Mutex
	lastStartedAt   time.Time
	lastCompletedAt time.Time
}

func NewDigestService(
	cfg *config.Config,
	insighter insighting.Insighter,
	integrations repository.IntegrationRepository,
	notifier notify.Notifier,
) *DigestService {
	return &DigestService{
		scheduler:    gocron.NewScheduler(time.UTC),
		cfg:          cfg,
		insighter:    insighter,
		integrations: integrations,
		notifier:     notifier,
	}
}

// Start inicia o agendador
func (s *DigestService) Start(ctx context.Context) error {
	if !s.cfg.DigestJob.Enabled {
		logrus.Info("Envio de resumo de insights desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.DigestJob.CronSchedule).Info("Iniciando agendador do resumo de insights")

	_, err := s.scheduler.Cron(s.cfg.DigestJob.CronSchedule).Do(func() {
		s.runCycle()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar resumo de insights: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do resumo de insights")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *DigestService) runCycle() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Envio de resumo já em andamento, ignorando")
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

	organizationIDs, err := s.integrations.ListOrganizationsWithActiveIntegrations(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar organizações para o resumo de insights")
		return
	}

	sent := 0
	for _, organizationID := range organizationIDs {
		insights, err := s.insighter.TopUnread(ctx, organizationID, s.cfg.DigestJob.TopInsights)
		if err != nil {
			logrus.WithError(err).WithField("organization_id", organizationID).
				Error("Erro ao buscar insights para o resumo")
			continue
		}

		if len(insights) == 0 {
			continue
		}

		if err := s.notifier.SendDigest(ctx, organizationID, insights); err != nil {
			logrus.WithError(err).WithField("organization_id", organizationID).
				Error("Erro ao enviar resumo de insights")
			continue
		}
		sent++
	}

	logrus.WithFields(logrus.Fields{
		"organizations": len(organizationIDs),
		"digests_sent":  sent,
	}).Info("Envio de resumos de insights concluído")
}

// TriggerManualRun dispara manualmente o envio do resumo
func (s *DigestService) TriggerManualRun() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Envio de resumo já em andamento, ignorando solicitação manual")
		return
	}
	s.mu.Unlock()

	logrus.Info("Iniciando envio manual do resumo de insights")
	go s.runCycle()
}

// GetStatus retorna o status atual do agendador
func (s *DigestService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":           s.cfg.DigestJob.Enabled,
		"cron":              s.cfg.DigestJob.CronSchedule,
		"top_insights":      s.cfg.DigestJob.TopInsights,
		"running":           s.running,
		"last_started_at":   s.lastStartedAt,
		"last_completed_at": s.lastCompletedAt,
	}
}
