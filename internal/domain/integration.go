package domain

import (
	"time"
)

// Platform identifica a plataforma externa de onde os dados são sincronizados
type Platform string

const (
	PlatformStripe       Platform = "stripe"
	PlatformShopify      Platform = "shopify"
	PlatformWebAnalytics Platform = "webanalytics"
)

// IntegrationStatus representa o estado atual de uma integração
type IntegrationStatus string

const (
	IntegrationStatusPending  IntegrationStatus = "pending"
	IntegrationStatusActive   IntegrationStatus = "active"
	IntegrationStatusSyncing  IntegrationStatus = "syncing"
	IntegrationStatusError    IntegrationStatus = "error"
	IntegrationStatusInactive IntegrationStatus = "inactive"
)

// Chaves conhecidas do mapa de metadados da integração
const (
	MetadataKeyLastCustomerSyncAt = "last_customer_sync_at"
	MetadataKeyLastSyncError      = "last_sync_error"
	MetadataKeyShopDomain         = "shop_domain"
)

// Credentials armazena o material de credencial de uma integração
type Credentials struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// Expired indica se o token de acesso já passou da data de expiração
func (c Credentials) Expired() bool {
	return c.ExpiresAt != nil && time.Now().After(*c.ExpiresAt)
}

// Integration representa uma conta externa conectada a uma organização.
// Única por (organization_id, platform, platform_account_id).
type Integration struct {
	ID                string            `json:"id"`
	OrganizationID    string            `json:"organization_id"`
	Platform          Platform          `json:"platform"`
	PlatformAccountID string            `json:"platform_account_id"`
	Credentials       Credentials       `json:"-"`
	Status            IntegrationStatus `json:"status"`
	LastSyncAt        *time.Time        `json:"last_sync_at,omitempty"`
	Metadata          map[string]any    `json:"metadata,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// LastCustomerSyncAt retorna o timestamp da última sincronização do cadastro
// de clientes, armazenado nos metadados da integração
func (i *Integration) LastCustomerSyncAt() *time.Time {
	if i.Metadata == nil {
		return nil
	}

	raw, ok := i.Metadata[MetadataKeyLastCustomerSyncAt].(string)
	if !ok || raw == "" {
		return nil
	}

	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}

	return &ts
}

// SetLastCustomerSyncAt grava o timestamp da última sincronização do cadastro
// de clientes nos metadados da integração
func (i *Integration) SetLastCustomerSyncAt(ts time.Time) {
	if i.Metadata == nil {
		i.Metadata = make(map[string]any)
	}
	i.Metadata[MetadataKeyLastCustomerSyncAt] = ts.UTC().Format(time.RFC3339)
}
