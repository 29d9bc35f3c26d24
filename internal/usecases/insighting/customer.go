package insighting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prem5599/bizinsights-sub001/internal/domain"
	"github.com/prem5599/bizinsights-sub001/pkg/utils"
)

// Bandas heurísticas de pedidos por cliente que classificam a qualidade da
// retenção, e o volume mínimo de clientes para a razão ter significado
const (
	customerBehaviorMinCustomers = 10.0
	repeatPurchaseStrongBand     = 1.5
	repeatPurchaseWeakBand       = 1.2
)

// analyzeCustomerBehavior deriva achados das razões por cliente da janela
// corrente: pedidos por cliente e receita por cliente
func (s *Service) analyzeCustomerBehavior(snap *snapshot) []*domain.Insight {
	insights := make([]*domain.Insight, 0)

	if insight := s.retentionQuality(snap); insight != nil {
		insights = append(insights, insight)
	}

	return insights
}

// retentionQuality compara pedidos por cliente contra as bandas heurísticas:
// acima da banda forte a base recompra bem, abaixo da banda fraca a maioria
// compra uma única vez. A faixa intermediária não gera achado.
func (s *Service) retentionQuality(snap *snapshot) *domain.Insight {
	customers := snap.current[domain.MetricTypeCustomers]
	orders := snap.current[domain.MetricTypeOrders]
	if customers == nil || orders == nil {
		return nil
	}

	customerTotal := customers.Sum.InexactFloat64()
	orderTotal := orders.Sum.InexactFloat64()
	if customerTotal < customerBehaviorMinCustomers || orderTotal <= 0 {
		return nil
	}

	ordersPerCustomer := orderTotal / customerTotal

	revenuePerCustomer := decimal.Zero
	if revenue := snap.current[domain.MetricTypeRevenue]; revenue != nil {
		revenuePerCustomer = revenue.Sum.Div(customers.Sum).Round(2)
	}

	windowStart, windowEnd := snap.timeframe.CurrentWindow()

	insight := &domain.Insight{
		OrganizationID: snap.organizationID,
		Confidence:     75,
		Category:       string(domain.MetricTypeCustomers),
		Actionable:     true,
		Metadata: domain.InsightMetadata{
			CurrentValue: fmt.Sprintf("%.2f", ordersPerCustomer),
			MetricType:   domain.MetricTypeCustomers,
			WindowStart:  windowStart.Format(time.DateOnly),
			WindowEnd:    windowEnd.Format(time.DateOnly),
			Extra: map[string]any{
				"orders_per_customer":  utils.RoundWithTwoDecimalPlace(ordersPerCustomer),
				"revenue_per_customer": revenuePerCustomer.String(),
			},
		},
	}

	switch {
	case ordersPerCustomer >= repeatPurchaseStrongBand:
		insight.Type = domain.InsightTypeOpportunity
		insight.Urgency = domain.InsightUrgencyMedium
		insight.ImpactScore = utils.RoundWithTwoDecimalPlace(ordersPerCustomer * 3)
		insight.Title = fmt.Sprintf("Clientes compram %.1f vezes em média", ordersPerCustomer)
		insight.Description = fmt.Sprintf(
			"Nos últimos %d dias cada cliente fez em média %.1f pedidos, gastando %s no período. A base recompra bem. Um programa de fidelidade ou de indicação tende a render nesse perfil.",
			snap.timeframe.Days, ordersPerCustomer, revenuePerCustomer,
		)

	case ordersPerCustomer < repeatPurchaseWeakBand:
		insight.Type = domain.InsightTypeRecommendation
		insight.Urgency = domain.InsightUrgencyMedium
		insight.ImpactScore = 6
		insight.Title = "A maioria dos clientes compra uma única vez"
		insight.Description = fmt.Sprintf(
			"Nos últimos %d dias a média ficou em %.2f pedidos por cliente, com receita de %s por cliente. Campanhas de recompra (e-mail pós-venda, cupom de retorno) ajudam a elevar a retenção.",
			snap.timeframe.Days, ordersPerCustomer, revenuePerCustomer,
		)

	default:
		return nil
	}

	if insight.ImpactScore > 10 {
		insight.ImpactScore = 10
	}

	return insight
}
