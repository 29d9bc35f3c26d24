package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/usecases/syncing"
)

// SyncCycleService agenda e executa o ciclo de sincronização de todas as
// integrações elegíveis
type SyncCycleService struct {
	scheduler       *gocron.Scheduler
	cfg             *config.Config
	orchestrator    syncing.Orchestrator
	running         bool
	mu              sync.Mutex
	lastStartedAt   time.Time
	lastCompletedAt time.Time
}

func NewSyncCycleService(cfg *config.Config, orchestrator syncing.Orchestrator) *SyncCycleService {
	return &SyncCycleService{
		scheduler:    gocron.NewScheduler(time.UTC),
		cfg:          cfg,
		orchestrator: orchestrator,
	}
}

// Start inicia o agendador
func (s *SyncCycleService) Start(ctx context.Context) error {
	if !s.cfg.SyncJob.Enabled {
		logrus.Info("Ciclo de sincronização desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.SyncJob.CronSchedule).Info("Iniciando agendador do ciclo de sincronização")

	_, err := s.scheduler.Cron(s.cfg.SyncJob.CronSchedule).Do(func() {
		s.runCycle()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar ciclo de sincronização: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do ciclo de sincronização")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SyncCycleService) runCycle() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Ciclo de sincronização já em andamento, ignorando")
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

	logrus.Info("Iniciando ciclo de sincronização de todas as integrações")

	results := s.orchestrator.SyncAll(context.Background())

	succeeded := 0
	failed := 0
	var totalPoints int64
	for _, result := range results {
		if result == nil {
			continue
		}
		if result.Success {
			succeeded++
		} else {
			failed++
		}
		totalPoints += result.Stats.PointsUpserted
	}

	logrus.WithFields(logrus.Fields{
		"integrations":    len(results),
		"succeeded":       succeeded,
		"failed":          failed,
		"points_upserted": totalPoints,
		"duration":        time.Since(s.lastStartedAt).String(),
	}).Info("Ciclo de sincronização concluído")
}

// TriggerManualSync dispara manualmente um ciclo de sincronização
func (s *SyncCycleService) TriggerManualSync() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Ciclo de sincronização já em andamento, ignorando solicitação manual")
		return
	}
	s.mu.Unlock()

	logrus.Info("Iniciando ciclo de sincronização manual")
	go s.runCycle()
}

// GetStatus retorna o status atual do agendador
func (s *SyncCycleService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":           s.cfg.SyncJob.Enabled,
		"cron":              s.cfg.SyncJob.CronSchedule,
		"running":           s.running,
		"last_started_at":   s.lastStartedAt,
		"last_completed_at": s.lastCompletedAt,
	}
}
