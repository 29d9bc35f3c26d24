package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/prem5599/bizinsights-sub001/internal/scheduler"
	"github.com/prem5599/bizinsights-sub001/pkg/apiErrors"
)

// Tipos de cron job aceitos no disparo manual
const (
	CronJobTypeSync    = "sync"
	CronJobTypeInsight = "insight"
	CronJobTypeDigest  = "digest"
	CronJobTypeHealth  = "health"
	CronJobTypeCleanup = "cleanup"
	CronJobTypeAll     = "all"
)

// CronJobServices contém os agendadores que podem ser disparados manualmente
type CronJobServices struct {
	SyncCycleService    *scheduler.SyncCycleService
	InsightCycleService *scheduler.InsightCycleService
	DigestService       *scheduler.DigestService
	HealthCheckService  *scheduler.HealthCheckService
	CleanupService      *scheduler.CleanupService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeSync:
			if services.SyncCycleService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço do ciclo de sincronização não disponível", nil)
				return
			}
			services.SyncCycleService.TriggerManualSync()

		case CronJobTypeInsight:
			if services.InsightCycleService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço do ciclo de insights não disponível", nil)
				return
			}
			services.InsightCycleService.TriggerManualRun()

		case CronJobTypeDigest:
			if services.DigestService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de resumo de insights não disponível", nil)
				return
			}
			services.DigestService.TriggerManualRun()

		case CronJobTypeHealth:
			if services.HealthCheckService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de verificação de saúde não disponível", nil)
				return
			}
			services.HealthCheckService.TriggerManualRun()

		case CronJobTypeCleanup:
			if services.CleanupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza por retenção não disponível", nil)
				return
			}
			services.CleanupService.TriggerManualRun()

		case CronJobTypeAll:
			if services.SyncCycleService != nil {
				services.SyncCycleService.TriggerManualSync()
			}
			if services.InsightCycleService != nil {
				services.InsightCycleService.TriggerManualRun()
			}
			if services.DigestService != nil {
				services.DigestService.TriggerManualRun()
			}
			if services.HealthCheckService != nil {
				services.HealthCheckService.TriggerManualRun()
			}
			if services.CleanupService != nil {
				services.CleanupService.TriggerManualRun()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: sync, insight, digest, health, cleanup, all", nil)
			return
		}

		logrus.WithField("type", cronType).Info("Cron job disparada manualmente")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status de todas as cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"sync":    services.SyncCycleService.GetStatus(),
			"insight": services.InsightCycleService.GetStatus(),
			"digest":  services.DigestService.GetStatus(),
			"health":  services.HealthCheckService.GetStatus(),
			"cleanup": services.CleanupService.GetStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
