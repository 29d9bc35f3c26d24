package connector

import (
	"context"
	"fmt"
	"time"

	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

// SyncOptions controla a janela de busca de uma sincronização
type SyncOptions struct {
	// Since define o início da janela incremental. Nulo indica a
	// sincronização inicial, que usa o lookback configurado.
	Since *time.Time

	// IncludeCustomers habilita a etapa de sincronização da base de
	// clientes, que roda com frequência menor que as métricas diárias
	IncludeCustomers bool
}

// Connector é a interface que cada plataforma externa implementa para
// extrair métricas e normalizá-las em data points
type Connector interface {
	Platform() domain.Platform
	Sync(ctx context.Context, integration *domain.Integration, opts SyncOptions) (*domain.SyncResult, error)
	HandleWebhookEvent(ctx context.Context, integration *domain.Integration, eventType string, payload []byte) (*domain.SyncResult, error)
}

// Registry mapeia plataformas para seus conectores
type Registry struct {
	connectors map[domain.Platform]Connector
}

func NewRegistry(connectors ...Connector) *Registry {
	r := &Registry{
		connectors: make(map[domain.Platform]Connector, len(connectors)),
	}

	for _, c := range connectors {
		r.connectors[c.Platform()] = c
	}

	return r
}

func (r *Registry) Get(platform domain.Platform) (Connector, error) {
	c, ok := r.connectors[platform]
	if !ok {
		return nil, fmt.Errorf("nenhum conector registrado para a plataforma %s", platform)
	}

	return c, nil
}

func (r *Registry) Platforms() []domain.Platform {
	platforms := make([]domain.Platform, 0, len(r.connectors))
	for platform := range r.connectors {
		platforms = append(platforms, platform)
	}

	return platforms
}
