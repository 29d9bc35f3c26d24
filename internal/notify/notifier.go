package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

// Notifier entrega os avisos periódicos do sistema: o resumo de insights e
// os alertas de saúde das integrações. A implementação padrão registra em
// log estruturado; um canal externo (e-mail, chat) implementa a mesma
// interface.
type Notifier interface {
	SendDigest(ctx context.Context, organizationID string, insights []*domain.Insight) error
	SendHealthAlert(ctx context.Context, integration *domain.Integration, reason string) error
}

type logNotifier struct{}

func NewLogNotifier() Notifier {
	return &logNotifier{}
}

func (n *logNotifier) SendDigest(_ context.Context, organizationID string, insights []*domain.Insight) error {
	titles := make([]string, 0, len(insights))
	for _, insight := range insights {
		titles = append(titles, insight.Title)
	}

	logrus.WithFields(logrus.Fields{
		"organization_id": organizationID,
		"insights":        len(insights),
		"titles":          titles,
	}).Info("Resumo de insights da organização")

	return nil
}

func (n *logNotifier) SendHealthAlert(_ context.Context, integration *domain.Integration, reason string) error {
	logrus.WithFields(logrus.Fields{
		"integration_id":  integration.ID,
		"organization_id": integration.OrganizationID,
		"platform":        integration.Platform,
		"status":          integration.Status,
		"reason":          reason,
	}).Warn("Alerta de saúde de integração")

	return nil
}
