package handler

import (
	"database/sql"
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/prem5599/bizinsights-sub001/infrastructure/connector"
	"github.com/prem5599/bizinsights-sub001/internal/usecases/syncing"
	"github.com/prem5599/bizinsights-sub001/pkg/apiErrors"
)

// maxWebhookBodySize limita o corpo aceito no ingresso de webhooks
const maxWebhookBodySize = 1 << 20

// TriggerIntegrationSync dispara a sincronização de uma integração e
// responde com o resultado da execução
func TriggerIntegrationSync(orchestrator syncing.Orchestrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		integrationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if integrationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Integração não especificada", nil)
			return
		}

		result, err := orchestrator.SyncIntegration(r.Context(), integrationID)
		if err != nil {
			writeSyncError(w, integrationID, err, result)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	})
}

// IntegrationWebhook recebe eventos de webhook das plataformas. O tipo do
// evento vem no cabeçalho X-Event-Type.
func IntegrationWebhook(orchestrator syncing.Orchestrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		integrationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if integrationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Integração não especificada", nil)
			return
		}

		eventType := r.Header.Get("X-Event-Type")
		if eventType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de evento não especificado", nil)
			return
		}

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodySize))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler o corpo da requisição", nil)
			return
		}

		result, err := orchestrator.HandleWebhook(r.Context(), integrationID, eventType, payload)
		if err != nil {
			writeSyncError(w, integrationID, err, result)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	})
}

// GetIntegrationStatus retorna a saúde operacional de uma integração
func GetIntegrationStatus(orchestrator syncing.Orchestrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		integrationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if integrationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Integração não especificada", nil)
			return
		}

		health, err := orchestrator.IntegrationHealth(r.Context(), integrationID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				apiErrors.WriteError(w, apiErrors.ErrIntegrationNotFound, "Integração não encontrada", nil)
				return
			}

			logrus.WithError(err).WithField("integration_id", integrationID).
				Error("Erro ao consultar status da integração")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar status da integração", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(health)
	})
}

// writeSyncError traduz os erros do orquestrador para os códigos da API
func writeSyncError(w http.ResponseWriter, integrationID string, err error, details any) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		apiErrors.WriteError(w, apiErrors.ErrIntegrationNotFound, "Integração não encontrada", nil)
	case errors.Is(err, syncing.ErrSyncInProgress):
		apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Sincronização já em andamento", nil)
	case errors.Is(err, syncing.ErrIntegrationInactive):
		apiErrors.WriteError(w, apiErrors.ErrIntegrationInactive, "Integração inativa ou pendente de autorização", nil)
	case errors.Is(err, connector.ErrUnauthorized):
		apiErrors.WriteError(w, apiErrors.ErrReauthorizationNeeded, "Credencial rejeitada pela plataforma, reautorize a integração", nil)
	default:
		logrus.WithError(err).WithField("integration_id", integrationID).
			Error("Erro na sincronização da integração")
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro na sincronização da integração", details)
	}
}
