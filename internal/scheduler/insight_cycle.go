package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/usecases/insighting"
)

// InsightCycleService agenda e executa a geração de insights de todas as
// organizações com integrações ativas
type InsightCycleService struct {
	scheduler       *gocron.Scheduler
	cfg             *config.Config
	insighter       insighting.Insighter
	running         bool
	mu              sync.Mutex
	lastStartedAt   time.Time
	lastCompletedAt time.Time
}

func NewInsightCycleService(cfg *config.Config, insighter insighting.Insighter) *InsightCycleService {
	return &InsightCycleService{
		scheduler: gocron.NewScheduler(time.UTC),
		cfg:       cfg,
		insighter: insighter,
	}
}

// Start inicia o agendador
func (s *InsightCycleService) Start(ctx context.Context) error {
	if !s.cfg.InsightJob.Enabled {
		logrus.Info("Ciclo de geração de insights desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.InsightJob.CronSchedule).Info("Iniciando agendador do ciclo de insights")

	_, err := s.scheduler.Cron(s.cfg.InsightJob.CronSchedule).Do(func() {
		s.runCycle()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar ciclo de insights: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do ciclo de insights")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *InsightCycleService) runCycle() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Ciclo de insights já em andamento, ignorando")
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

	logrus.Info("Iniciando ciclo de geração de insights")

	total, err := s.insighter.GenerateAll(context.Background())
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar insights")
		return
	}

	logrus.WithFields(logrus.Fields{
		"insights": total,
		"duration": time.Since(s.lastStartedAt).String(),
	}).Info("Ciclo de geração de insights concluído")
}

// TriggerManualRun dispara manualmente um ciclo de geração de insights
func (s *InsightCycleService) TriggerManualRun() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Ciclo de insights já em andamento, ignorando solicitação manual")
		return
	}
	s.mu.Unlock()

	logrus.Info("Iniciando ciclo manual de geração de insights")
	go s.runCycle()
}

// GetStatus retorna o status atual do agendador
func (s *InsightCycleService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":           s.cfg.InsightJob.Enabled,
		"cron":              s.cfg.InsightJob.CronSchedule,
		"running":           s.running,
		"last_started_at":   s.lastStartedAt,
		"last_completed_at": s.lastCompletedAt,
	}
}
