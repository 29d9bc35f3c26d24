package insighting

import (
	"context"

	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

// Insighter é o motor de insights: deriva achados estatísticos dos data
// points de uma organização e expõe a consulta dos insights persistidos
type Insighter interface {
	GenerateForOrganization(ctx context.Context, organizationID string) ([]*domain.Insight, error)
	GenerateAll(ctx context.Context) (int, error)
	ListInsights(ctx context.Context, organizationID string, filter domain.InsightFilter, limit, offset int) ([]*domain.Insight, error)
	MarkInsightsRead(ctx context.Context, ids []string) (int64, error)
	Summarize(ctx context.Context, organizationID string) (*domain.InsightSummary, error)
	TopUnread(ctx context.Context, organizationID string, n int) ([]*domain.Insight, error)
}
