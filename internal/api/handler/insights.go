package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/prem5599/bizinsights-sub001/internal/domain"
	"github.com/prem5599/bizinsights-sub001/internal/usecases/insighting"
	"github.com/prem5599/bizinsights-sub001/pkg/apiErrors"
	"github.com/prem5599/bizinsights-sub001/pkg/middleware"
)

// canAccessOrganization verifica se o usuário autenticado pode consultar a
// organização da rota: administradores acessam qualquer uma, os demais só a
// sua própria
func canAccessOrganization(r *http.Request, organizationID string) bool {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		return false
	}

	return claims.Role == domain.RoleAdmin || claims.OrganizationID == organizationID
}

// ListOrganizationInsights lista os insights de uma organização, com
// filtros opcionais de tipo e de leitura
func ListOrganizationInsights(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		organizationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if organizationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Organização não especificada", nil)
			return
		}

		if !canAccessOrganization(r, organizationID) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar esta organização", nil)
			return
		}

		filter := domain.InsightFilter{}
		if rawType := r.URL.Query().Get("type"); rawType != "" {
			insightType := domain.InsightType(rawType)
			filter.Type = &insightType
		}
		filter.UnreadOnly = r.URL.Query().Get("unread_only") == "true"

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		insights, err := service.ListInsights(r.Context(), organizationID, filter, limit, offset)
		if err != nil {
			logrus.WithError(err).WithField("organization_id", organizationID).
				Error("Erro ao listar insights")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar insights", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"insights": insights,
			"count":    len(insights),
		})
	})
}

// GetInsightSummary retorna as contagens de insights por tipo, urgência e
// leitura de uma organização
func GetInsightSummary(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		organizationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if organizationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Organização não especificada", nil)
			return
		}

		if !canAccessOrganization(r, organizationID) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar esta organização", nil)
			return
		}

		summary, err := service.Summarize(r.Context(), organizationID)
		if err != nil {
			logrus.WithError(err).WithField("organization_id", organizationID).
				Error("Erro ao resumir insights")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao resumir insights", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	})
}

// GenerateOrganizationInsights dispara a geração de insights sob demanda
// para uma organização
func GenerateOrganizationInsights(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		organizationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if organizationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Organização não especificada", nil)
			return
		}

		if !canAccessOrganization(r, organizationID) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar esta organização", nil)
			return
		}

		insights, err := service.GenerateForOrganization(r.Context(), organizationID)
		if err != nil {
			logrus.WithError(err).WithField("organization_id", organizationID).
				Error("Erro ao gerar insights")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar insights", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"insights": insights,
			"count":    len(insights),
		})
	})
}

type markReadRequest struct {
	IDs []string `json:"ids"`
}

// MarkInsightsRead marca um conjunto de insights como lidos
func MarkInsightsRead(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request markReadRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if len(request.IDs) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum insight informado", nil)
			return
		}

		updated, err := service.MarkInsightsRead(r.Context(), request.IDs)
		if err != nil {
			logrus.WithError(err).Error("Erro ao marcar insights como lidos")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao marcar insights como lidos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"updated": updated,
		})
	})
}
