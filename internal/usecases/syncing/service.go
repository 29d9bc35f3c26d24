package syncing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prem5599/bizinsights-sub001/infrastructure/connector"
	"github.com/prem5599/bizinsights-sub001/infrastructure/repository"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

var (
	// ErrSyncInProgress indica que a integração já está sendo sincronizada
	ErrSyncInProgress = errors.New("sincronização já em andamento para esta integração")

	// ErrIntegrationInactive indica integração desabilitada ou pendente de autorização
	ErrIntegrationInactive = errors.New("integração inativa ou pendente de autorização")
)

// IntegrationHealth é o retrato operacional de uma integração
type IntegrationHealth struct {
	Integration *domain.Integration `json:"integration"`
	Stale       bool                `json:"stale"`
	LastError   string              `json:"last_error,omitempty"`
}

// Orchestrator coordena a sincronização das integrações: resolve o conector,
// controla as transições de status e as janelas incrementais
type Orchestrator interface {
	SyncIntegration(ctx context.Context, integrationID string) (*domain.SyncResult, error)
	SyncAll(ctx context.Context) []*domain.SyncResult
	HandleWebhook(ctx context.Context, integrationID, eventType string, payload []byte) (*domain.SyncResult, error)
	IntegrationHealth(ctx context.Context, integrationID string) (*IntegrationHealth, error)
	IsStale(integration *domain.Integration) bool
}

type orchestrator struct {
	cfg          *config.Config
	registry     *connector.Registry
	integrations repository.IntegrationRepository
}

func NewOrchestrator(
	cfg *config.Config,
	registry *connector.Registry,
	integrations repository.IntegrationRepository,
) Orchestrator {
	return &orchestrator{
		cfg:          cfg,
		registry:     registry,
		integrations: integrations,
	}
}

func (o *orchestrator) SyncIntegration(ctx context.Context, integrationID string) (*domain.SyncResult, error) {
	integration, err := o.integrations.GetByID(ctx, integrationID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar integração: %w", err)
	}

	return o.syncLoaded(ctx, integration)
}

func (o *orchestrator) syncLoaded(ctx context.Context, integration *domain.Integration) (*domain.SyncResult, error) {
	switch integration.Status {
	case domain.IntegrationStatusSyncing:
		return nil, ErrSyncInProgress
	case domain.IntegrationStatusInactive, domain.IntegrationStatusPending:
		return nil, ErrIntegrationInactive
	}

	conn, err := o.registry.Get(integration.Platform)
	if err != nil {
		return nil, err
	}

	if err := o.integrations.UpdateStatus(ctx, integration.ID, domain.IntegrationStatusSyncing); err != nil {
		return nil, fmt.Errorf("erro ao atualizar status da integração: %w", err)
	}

	opts := o.buildOptions(integration)
	tokenBefore := integration.Credentials.AccessToken

	syncCtx, cancel := context.WithTimeout(ctx, o.integrationTimeout())
	defer cancel()

	result, syncErr := conn.Sync(syncCtx, integration, opts)

	o.persistOutcome(ctx, integration, result, syncErr, tokenBefore)

	if syncErr != nil {
		logrus.WithFields(logrus.Fields{
			"integration_id": integration.ID,
			"platform":       integration.Platform,
			"error":          syncErr.Error(),
		}).Error("Sincronização da integração falhou")
		return result, syncErr
	}

	logrus.WithFields(logrus.Fields{
		"integration_id":  integration.ID,
		"platform":        integration.Platform,
		"records_fetched": result.Stats.RecordsFetched,
		"points_upserted": result.Stats.PointsUpserted,
		"step_errors":     len(result.StepErrors),
	}).Info("Sincronização da integração concluída")

	return result, nil
}

// buildOptions calcula a janela incremental da sincronização. A janela
// recua um overlap sobre a última sincronização para cobrir registros que
// chegaram atrasados, contando com o upsert idempotente.
func (o *orchestrator) buildOptions(integration *domain.Integration) connector.SyncOptions {
	opts := connector.SyncOptions{}

	if integration.LastSyncAt != nil {
		overlap := o.cfg.Sync.IncrementalOverlapDays
		if overlap < 0 {
			overlap = 0
		}
		since := integration.LastSyncAt.AddDate(0, 0, -overlap)
		opts.Since = &since
	}

	interval := time.Duration(o.cfg.Sync.CustomerSyncIntervalHrs) * time.Hour
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	lastCustomerSync := integration.LastCustomerSyncAt()
	opts.IncludeCustomers = lastCustomerSync == nil || time.Since(*lastCustomerSync) >= interval

	return opts
}

// persistOutcome grava o desfecho da sincronização: status, marca d'água,
// credenciais renovadas e o último erro nos metadados
func (o *orchestrator) persistOutcome(ctx context.Context, integration *domain.Integration, result *domain.SyncResult, syncErr error, tokenBefore string) {
	if integration.Credentials.AccessToken != tokenBefore {
		if err := o.integrations.UpdateCredentials(ctx, integration.ID, integration.Credentials); err != nil {
			logrus.WithError(err).WithField("integration_id", integration.ID).
				Error("Erro ao persistir credenciais renovadas")
		}
	}

	if syncErr != nil {
		if integration.Metadata == nil {
			integration.Metadata = make(map[string]any)
		}
		integration.Metadata[domain.MetadataKeyLastSyncError] = syncErr.Error()

		if err := o.integrations.UpdateMetadata(ctx, integration.ID, integration.Metadata); err != nil {
			logrus.WithError(err).WithField("integration_id", integration.ID).
				Error("Erro ao persistir metadados da integração")
		}

		if err := o.integrations.UpdateStatus(ctx, integration.ID, domain.IntegrationStatusError); err != nil {
			logrus.WithError(err).WithField("integration_id", integration.ID).
				Error("Erro ao atualizar status da integração")
		}
		return
	}

	delete(integration.Metadata, domain.MetadataKeyLastSyncError)

	if err := o.integrations.UpdateMetadata(ctx, integration.ID, integration.Metadata); err != nil {
		logrus.WithError(err).WithField("integration_id", integration.ID).
			Error("Erro ao persistir metadados da integração")
	}

	if err := o.integrations.UpdateLastSyncAt(ctx, integration.ID, result.CompletedAt); err != nil {
		logrus.WithError(err).WithField("integration_id", integration.ID).
			Error("Erro ao atualizar marca de última sincronização")
	}

	if err := o.integrations.UpdateStatus(ctx, integration.ID, domain.IntegrationStatusActive); err != nil {
		logrus.WithError(err).WithField("integration_id", integration.ID).
			Error("Erro ao atualizar status da integração")
	}
}

// SyncAll sincroniza todas as integrações elegíveis, com um pool de workers
// por plataforma. Falhas individuais não interrompem as demais integrações.
func (o *orchestrator) SyncAll(ctx context.Context) []*domain.SyncResult {
	integrations, err := o.integrations.ListByStatus(ctx, []domain.IntegrationStatus{
		domain.IntegrationStatusActive,
		domain.IntegrationStatusError,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar integrações para sincronização")
		return nil
	}

	if len(integrations) == 0 {
		logrus.Info("Nenhuma integração elegível para sincronização")
		return nil
	}

	byPlatform := make(map[domain.Platform][]*domain.Integration)
	for _, integration := range integrations {
		byPlatform[integration.Platform] = append(byPlatform[integration.Platform], integration)
	}

	var mu sync.Mutex
	results := make([]*domain.SyncResult, 0, len(integrations))

	var platformWg sync.WaitGroup
	for platform, group := range byPlatform {
		platformWg.Add(1)

		go func(platform domain.Platform, group []*domain.Integration) {
			defer platformWg.Done()

			semaphore := make(chan struct{}, o.cfg.Sync.WorkersFor(string(platform)))
			var wg sync.WaitGroup

			for _, integration := range group {
				wg.Add(1)
				semaphore <- struct{}{}

				go func(integration *domain.Integration) {
					defer func() {
						<-semaphore
						wg.Done()
					}()

					result, err := o.syncLoaded(ctx, integration)
					if err != nil && result == nil {
						result = &domain.SyncResult{
							IntegrationID: integration.ID,
							Platform:      integration.Platform,
							Error:         err.Error(),
						}
					}

					mu.Lock()
					results = append(results, result)
					mu.Unlock()
				}(integration)
			}

			wg.Wait()
		}(platform, group)
	}

	platformWg.Wait()

	return results
}

func (o *orchestrator) HandleWebhook(ctx context.Context, integrationID, eventType string, payload []byte) (*domain.SyncResult, error) {
	integration, err := o.integrations.GetByID(ctx, integrationID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar integração: %w", err)
	}

	if integration.Status == domain.IntegrationStatusInactive {
		return nil, ErrIntegrationInactive
	}

	conn, err := o.registry.Get(integration.Platform)
	if err != nil {
		return nil, err
	}

	tokenBefore := integration.Credentials.AccessToken

	result, err := conn.HandleWebhookEvent(ctx, integration, eventType, payload)

	if integration.Credentials.AccessToken != tokenBefore {
		if updateErr := o.integrations.UpdateCredentials(ctx, integration.ID, integration.Credentials); updateErr != nil {
			logrus.WithError(updateErr).WithField("integration_id", integration.ID).
				Error("Erro ao persistir credenciais renovadas")
		}
	}

	if err != nil {
		return result, fmt.Errorf("erro ao processar webhook: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"integration_id":  integration.ID,
		"event_type":      eventType,
		"points_upserted": result.Stats.PointsUpserted,
	}).Info("Webhook processado")

	return result, nil
}

// IntegrationHealth avalia a saúde operacional de uma integração, marcando
// como defasada a que não sincroniza há mais tempo que o limiar configurado
func (o *orchestrator) IntegrationHealth(ctx context.Context, integrationID string) (*IntegrationHealth, error) {
	integration, err := o.integrations.GetByID(ctx, integrationID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar integração: %w", err)
	}

	health := &IntegrationHealth{
		Integration: integration,
		Stale:       o.IsStale(integration),
	}

	if integration.Metadata != nil {
		if lastError, ok := integration.Metadata[domain.MetadataKeyLastSyncError].(string); ok {
			health.LastError = lastError
		}
	}

	return health, nil
}

// IsStale indica se a integração está há mais tempo sem sincronizar do que
// o limiar de defasagem configurado
func (o *orchestrator) IsStale(integration *domain.Integration) bool {
	if integration.Status != domain.IntegrationStatusActive &&
		integration.Status != domain.IntegrationStatusSyncing {
		return false
	}

	threshold := time.Duration(o.cfg.Sync.StalenessThresholdHours) * time.Hour
	if threshold <= 0 {
		threshold = 24 * time.Hour
	}

	if integration.LastSyncAt == nil {
		return true
	}

	return time.Since(*integration.LastSyncAt) > threshold
}

func (o *orchestrator) integrationTimeout() time.Duration {
	if o.cfg.Sync.IntegrationTimeoutMins > 0 {
		return time.Duration(o.cfg.Sync.IntegrationTimeoutMins) * time.Minute
	}
	return 10 * time.Minute
}
