package handler

import (
	"net/http"

	"github.com/prem5599/bizinsights-sub001/internal/api/handler/router"
	"github.com/prem5599/bizinsights-sub001/internal/usecases/insighting"
	"github.com/prem5599/bizinsights-sub001/internal/usecases/syncing"
	"github.com/prem5599/bizinsights-sub001/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Insights(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/organizations/:id/insights",
			Method:      http.MethodGet,
			Handler:     ListOrganizationInsights(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/organizations/:id/insights/summary",
			Method:      http.MethodGet,
			Handler:     GetInsightSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/organizations/:id/insights/generate",
			Method:      http.MethodPost,
			Handler:     GenerateOrganizationInsights(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/insights/read",
			Method:      http.MethodPost,
			Handler:     MarkInsightsRead(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Integrations(orchestrator syncing.Orchestrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/integrations/:id/sync",
			Method:      http.MethodPost,
			Handler:     TriggerIntegrationSync(orchestrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			// Rota pública: a autenticidade do webhook é validada pelo
			// gateway antes de chegar aqui
			Path:    "/v1/integrations/:id/webhook",
			Method:  http.MethodPost,
			Handler: IntegrationWebhook(orchestrator),
		},
		{
			Path:        "/v1/integrations/:id/status",
			Method:      http.MethodGet,
			Handler:     GetIntegrationStatus(orchestrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
