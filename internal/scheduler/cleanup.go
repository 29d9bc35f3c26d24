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
)

// CleanupService aplica as políticas de retenção: remove data points e
// insights mais antigos que os limites configurados
type CleanupService struct {
	scheduler       *gocron.Scheduler
	cfg             *config.Config
	dataPoints      repository.DataPointRepository
	insights        repository.InsightRepository
	running         bool
	mu              sync.Mutex
	lastStartedAt   time.Time
	lastCompletedAt time.Time
}

func NewCleanupService(
	cfg *config.Config,
	dataPoints repository.DataPointRepository,
	insights repository.InsightRepository,
) *CleanupService {
	return &CleanupService{
		scheduler:  gocron.NewScheduler(time.UTC),
		cfg:        cfg,
		dataPoints: dataPoints,
		insights:   insights,
	}
}

// Start inicia o agendador
func (s *CleanupService) Start(ctx context.Context) error {
	if !s.cfg.CleanupJob.Enabled {
		logrus.Info("Limpeza por retenção desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.CleanupJob.CronSchedule).Info("Iniciando agendador da limpeza por retenção")

	_, err := s.scheduler.Cron(s.cfg.CleanupJob.CronSchedule).Do(func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza por retenção: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da limpeza por retenção")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *CleanupService) runCleanup() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Limpeza por retenção já em andamento, ignorando")
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
	now := time.Now().UTC()

	retentionDays := s.cfg.Sync.DataPointRetentionDays
	if retentionDays <= 0 {
		retentionDays = 365
	}

	pointsDeleted, err := s.dataPoints.DeleteOlderThan(ctx, now.AddDate(0, 0, -retentionDays))
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover data points expirados")
	}

	maxAgeDays := s.cfg.Insights.MaxAgeDays
	if maxAgeDays <= 0 {
		maxAgeDays = 90
	}

	insightsDeleted, err := s.insights.DeleteAllOlderThan(ctx, now.AddDate(0, 0, -maxAgeDays))
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover insights expirados")
	}

	logrus.WithFields(logrus.Fields{
		"data_points_deleted": pointsDeleted,
		"insights_deleted":    insightsDeleted,
		"duration":            time.Since(s.lastStartedAt).String(),
	}).Info("Limpeza por retenção concluída")
}

// TriggerManualRun dispara manualmente uma limpeza por retenção
func (s *CleanupService) TriggerManualRun() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Limpeza já em andamento, ignorando solicitação manual")
		return
	}
	s.mu.Unlock()

	logrus.Info("Iniciando limpeza manual por retenção")
	go s.runCleanup()
}

// GetStatus retorna o status atual do agendador
func (s *CleanupService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":               s.cfg.CleanupJob.Enabled,
		"cron":                  s.cfg.CleanupJob.CronSchedule,
		"datapoint_retention_d": s.cfg.Sync.DataPointRetentionDays,
		"insight_max_age_days":  s.cfg.Insights.MaxAgeDays,
		"running":               s.running,
		"last_started_at":       s.lastStartedAt,
		"last_completed_at":     s.lastCompletedAt,
	}
}
