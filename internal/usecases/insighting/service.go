package insighting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prem5599/bizinsights-sub001/infrastructure/repository"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

// snapshot reúne os agregados de métricas de uma organização nas janelas
// corrente e anterior, insumo comum de todos os analisadores
type snapshot struct {
	organizationID   string
	integrationIDs   []string
	timeframe        domain.Timeframe
	current          map[domain.MetricType]*domain.MetricAggregate
	previous         map[domain.MetricType]*domain.MetricAggregate
	daily            map[domain.MetricType][]*domain.DailyMetric
	sessionPoints    []*domain.DataPoint
	conversionPoints []*domain.DataPoint
}

// hasData indica se alguma métrica tem observações em qualquer das janelas
func (s *snapshot) hasData() bool {
	for _, aggregate := range s.current {
		if aggregate.Count > 0 {
			return true
		}
	}
	for _, aggregate := range s.previous {
		if aggregate.Count > 0 {
			return true
		}
	}
	return false
}

var snapshotMetrics = []domain.MetricType{
	domain.MetricTypeRevenue,
	domain.MetricTypeOrders,
	domain.MetricTypeCustomers,
	domain.MetricTypeSessions,
	domain.MetricTypePageviews,
	domain.MetricTypeConversions,
	domain.MetricTypeMRR,
	domain.MetricTypeFailedCharges,
}

var dailyMetrics = []domain.MetricType{
	domain.MetricTypeRevenue,
	domain.MetricTypeOrders,
}

// Service implementa o motor de insights
type Service struct {
	cfg          *config.Config
	integrations repository.IntegrationRepository
	dataPoints   repository.DataPointRepository
	insights     repository.InsightRepository
}

func NewService(
	cfg *config.Config,
	integrations repository.IntegrationRepository,
	dataPoints repository.DataPointRepository,
	insights repository.InsightRepository,
) Insighter {
	return &Service{
		cfg:          cfg,
		integrations: integrations,
		dataPoints:   dataPoints,
		insights:     insights,
	}
}

// GenerateForOrganization deriva, ranqueia e persiste os insights de uma
// organização. Organizações sem dados recebem insights de onboarding em vez
// de uma lista vazia.
func (s *Service) GenerateForOrganization(ctx context.Context, organizationID string) ([]*domain.Insight, error) {
	integrations, err := s.integrations.ListByOrganization(ctx, organizationID, []domain.IntegrationStatus{
		domain.IntegrationStatusActive,
		domain.IntegrationStatusSyncing,
		domain.IntegrationStatusError,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao listar integrações da organização: %w", err)
	}

	if len(integrations) == 0 {
		return s.persistRanked(ctx, organizationID, s.onboardingNoIntegrations(organizationID))
	}

	snap, err := s.buildSnapshot(ctx, organizationID, integrations)
	if err != nil {
		return nil, err
	}

	if !snap.hasData() {
		return s.persistRanked(ctx, organizationID, s.onboardingNoData(organizationID))
	}

	insights := make([]*domain.Insight, 0)
	insights = append(insights, s.analyzeTrends(snap)...)
	insights = append(insights, s.analyzeAnomalies(snap)...)
	insights = append(insights, s.analyzeRecommendations(snap)...)
	insights = append(insights, s.analyzeOpportunities(snap)...)
	insights = append(insights, s.analyzeCustomerBehavior(snap)...)

	return s.persistRanked(ctx, organizationID, insights)
}

func (s *Service) buildSnapshot(ctx context.Context, organizationID string, integrations []*domain.Integration) (*snapshot, error) {
	integrationIDs := make([]string, 0, len(integrations))
	for _, integration := range integrations {
		integrationIDs = append(integrationIDs, integration.ID)
	}

	timeframe := domain.Timeframe{Days: s.timeframeDays(), End: time.Now().UTC()}
	currentStart, currentEnd := timeframe.CurrentWindow()
	previousStart, previousEnd := timeframe.PreviousWindow()

	snap := &snapshot{
		organizationID: organizationID,
		integrationIDs: integrationIDs,
		timeframe:      timeframe,
		current:        make(map[domain.MetricType]*domain.MetricAggregate),
		previous:       make(map[domain.MetricType]*domain.MetricAggregate),
		daily:          make(map[domain.MetricType][]*domain.DailyMetric),
	}

	for _, metric := range snapshotMetrics {
		current, err := s.dataPoints.QueryAggregate(ctx, integrationIDs, metric, currentStart, currentEnd)
		if err != nil {
			return nil, fmt.Errorf("erro ao agregar métrica %s: %w", metric, err)
		}
		snap.current[metric] = current

		previous, err := s.dataPoints.QueryAggregate(ctx, integrationIDs, metric, previousStart, previousEnd)
		if err != nil {
			return nil, fmt.Errorf("erro ao agregar métrica %s: %w", metric, err)
		}
		snap.previous[metric] = previous
	}

	dailySeries, err := s.dataPoints.QueryDaily(ctx, integrationIDs, dailyMetrics, currentStart, currentEnd)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar séries diárias: %w", err)
	}
	for _, metric := range dailySeries {
		snap.daily[metric.MetricType] = append(snap.daily[metric.MetricType], metric)
	}

	sessionPoints, err := s.dataPoints.ListPoints(ctx, integrationIDs, domain.MetricTypeSessions, currentStart, currentEnd)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pontos de sessões: %w", err)
	}
	snap.sessionPoints = sessionPoints

	conversionPoints, err := s.dataPoints.ListPoints(ctx, integrationIDs, domain.MetricTypeConversions, currentStart, currentEnd)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pontos de conversões: %w", err)
	}
	snap.conversionPoints = conversionPoints

	return snap, nil
}

// persistRanked ranqueia por impacto × urgência, corta no teto por execução
// e grava o lote, aplicando antes a retenção da organização
func (s *Service) persistRanked(ctx context.Context, organizationID string, insights []*domain.Insight) ([]*domain.Insight, error) {
	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].RankScore() != insights[j].RankScore() {
			return insights[i].RankScore() > insights[j].RankScore()
		}
		return insights[i].Title < insights[j].Title
	})

	maxPerRun := s.cfg.Insights.MaxPerRun
	if maxPerRun <= 0 {
		maxPerRun = 10
	}
	if len(insights) > maxPerRun {
		insights = insights[:maxPerRun]
	}

	retentionDays := s.cfg.Insights.RetentionDays
	if retentionDays <= 0 {
		retentionDays = 7
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	deleted, err := s.insights.DeleteOlderThan(ctx, organizationID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("erro ao aplicar retenção de insights: %w", err)
	}

	if err := s.insights.CreateMany(ctx, insights); err != nil {
		return nil, fmt.Errorf("erro ao gravar insights: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"organization_id": organizationID,
		"generated":       len(insights),
		"expired":         deleted,
	}).Info("Insights gerados para a organização")

	return insights, nil
}

// GenerateAll gera insights para todas as organizações com integrações
// ativas. Falhas individuais não interrompem as demais organizações.
func (s *Service) GenerateAll(ctx context.Context) (int, error) {
	organizationIDs, err := s.integrations.ListOrganizationsWithActiveIntegrations(ctx)
	if err != nil {
		return 0, fmt.Errorf("erro ao listar organizações: %w", err)
	}

	total := 0
	for _, organizationID := range organizationIDs {
		insights, err := s.GenerateForOrganization(ctx, organizationID)
		if err != nil {
			logrus.WithError(err).WithField("organization_id", organizationID).
				Error("Erro ao gerar insights da organização")
			continue
		}
		total += len(insights)
	}

	return total, nil
}

func (s *Service) ListInsights(ctx context.Context, organizationID string, filter domain.InsightFilter, limit, offset int) ([]*domain.Insight, error) {
	return s.insights.ListRecent(ctx, organizationID, filter, limit, offset)
}

func (s *Service) MarkInsightsRead(ctx context.Context, ids []string) (int64, error) {
	return s.insights.MarkRead(ctx, ids)
}

func (s *Service) Summarize(ctx context.Context, organizationID string) (*domain.InsightSummary, error) {
	return s.insights.Summary(ctx, organizationID)
}

// TopUnread retorna os insights não lidos de maior pontuação, usados no
// resumo periódico enviado à organização
func (s *Service) TopUnread(ctx context.Context, organizationID string, n int) ([]*domain.Insight, error) {
	if n <= 0 {
		n = 5
	}
	return s.insights.ListRecent(ctx, organizationID, domain.InsightFilter{UnreadOnly: true}, n, 0)
}

// onboardingNoIntegrations orienta a organização que ainda não conectou
// nenhuma plataforma
func (s *Service) onboardingNoIntegrations(organizationID string) []*domain.Insight {
	return []*domain.Insight{
		{
			OrganizationID: organizationID,
			Type:           domain.InsightTypeRecommendation,
			Title:          "Conecte sua primeira plataforma",
			Description:    "Nenhuma plataforma conectada ainda. Conecte seu meio de pagamento ou sua loja virtual para começar a acompanhar receita, pedidos e clientes.",
			ImpactScore:    8,
			Confidence:     100,
			Category:       "onboarding",
			Urgency:        domain.InsightUrgencyHigh,
			Actionable:     true,
		},
		{
			OrganizationID: organizationID,
			Type:           domain.InsightTypeRecommendation,
			Title:          "Acompanhe o tráfego do seu site",
			Description:    "Conectando a plataforma de analytics você passa a ver sessões, pageviews e conversões junto com as métricas de vendas.",
			ImpactScore:    5,
			Confidence:     100,
			Category:       "onboarding",
			Urgency:        domain.InsightUrgencyMedium,
			Actionable:     true,
		},
	}
}

// onboardingNoData orienta a organização cujas integrações ainda não
// completaram a primeira sincronização
func (s *Service) onboardingNoData(organizationID string) []*domain.Insight {
	return []*domain.Insight{
		{
			OrganizationID: organizationID,
			Type:           domain.InsightTypeRecommendation,
			Title:          "Primeira sincronização em andamento",
			Description:    "Suas plataformas estão conectadas, mas ainda não há dados sincronizados. Os primeiros insights aparecem após a conclusão da primeira sincronização.",
			ImpactScore:    6,
			Confidence:     100,
			Category:       "onboarding",
			Urgency:        domain.InsightUrgencyMedium,
			Actionable:     false,
		},
	}
}

func (s *Service) timeframeDays() int {
	if s.cfg.Insights.TimeframeDays > 0 {
		return s.cfg.Insights.TimeframeDays
	}
	return 30
}
