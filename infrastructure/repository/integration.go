package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/prem5599/bizinsights-sub001/infrastructure/database/postgres"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
	"github.com/prem5599/bizinsights-sub001/pkg/utils"
)

const (
	integrationsTable   = "integrations i"
	integrationsColumns = "i.id, i.organization_id, i.platform, i.platform_account_id, i.credentials, i.status, i.last_sync_at, i.metadata, i.created_at, i.updated_at"
)

type IntegrationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Integration, error)
	ListByOrganization(ctx context.Context, organizationID string, statuses []domain.IntegrationStatus) ([]*domain.Integration, error)
	ListByStatus(ctx context.Context, statuses []domain.IntegrationStatus) ([]*domain.Integration, error)
	ListOrganizationsWithActiveIntegrations(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, integration *domain.Integration) error
	UpdateStatus(ctx context.Context, id string, status domain.IntegrationStatus) error
	UpdateLastSyncAt(ctx context.Context, id string, lastSyncAt time.Time) error
	UpdateCredentials(ctx context.Context, id string, credentials domain.Credentials) error
	UpdateMetadata(ctx context.Context, id string, metadata map[string]any) error
}

type integrationRepository struct {
	conn *postgres.Connection
}

func NewIntegrationRepository(conn *postgres.Connection) IntegrationRepository {
	return &integrationRepository{
		conn: conn,
	}
}

func (r *integrationRepository) GetByID(ctx context.Context, id string) (*domain.Integration, error) {
	query, args, err := squirrel.
		Select(integrationsColumns).
		From(integrationsTable).
		Where(squirrel.Eq{"i.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	integration, err := r.scanIntegration(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear integração: %w", err)
	}

	return integration, nil
}

func (r *integrationRepository) ListByOrganization(ctx context.Context, organizationID string, statuses []domain.IntegrationStatus) ([]*domain.Integration, error) {
	builder := squirrel.
		Select(integrationsColumns).
		From(integrationsTable).
		Where(squirrel.Eq{"i.organization_id": organizationID})

	if len(statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"i.status": statuses})
	}

	query, args, err := builder.
		OrderBy("i.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryIntegrations(ctx, query, args)
}

func (r *integrationRepository) ListByStatus(ctx context.Context, statuses []domain.IntegrationStatus) ([]*domain.Integration, error) {
	query, args, err := squirrel.
		Select(integrationsColumns).
		From(integrationsTable).
		Where(squirrel.Eq{"i.status": statuses}).
		OrderBy("i.organization_id ASC, i.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryIntegrations(ctx, query, args)
}

func (r *integrationRepository) ListOrganizationsWithActiveIntegrations(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("DISTINCT i.organization_id").
		From(integrationsTable).
		Where(squirrel.Eq{"i.status": domain.IntegrationStatusActive}).
		OrderBy("i.organization_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	organizationIDs := make([]string, 0)
	for rows.Next() {
		var organizationID string
		if err := rows.Scan(&organizationID); err != nil {
			return nil, fmt.Errorf("erro ao escanear organização: %w", err)
		}
		organizationIDs = append(organizationIDs, organizationID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return organizationIDs, nil
}

func (r *integrationRepository) Upsert(ctx context.Context, integration *domain.Integration) error {
	if integration.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID da integração: %w", err)
		}
		integration.ID = id
	}

	credentialsJSON, err := json.Marshal(integration.Credentials)
	if err != nil {
		return fmt.Errorf("erro ao serializar credenciais para JSON: %w", err)
	}

	var metadataJSON []byte
	if integration.Metadata != nil {
		metadataJSON, err = json.Marshal(integration.Metadata)
		if err != nil {
			return fmt.Errorf("erro ao serializar metadados para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("integrations").
		Columns("id", "organization_id", "platform", "platform_account_id", "credentials", "status", "metadata").
		Values(
			integration.ID,
			integration.OrganizationID,
			integration.Platform,
			integration.PlatformAccountID,
			credentialsJSON,
			integration.Status,
			metadataJSON,
		).
		Suffix(`
			ON CONFLICT (organization_id, platform, platform_account_id) DO UPDATE SET
				credentials = EXCLUDED.credentials,
				status = EXCLUDED.status,
				metadata = EXCLUDED.metadata,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *integrationRepository) UpdateStatus(ctx context.Context, id string, status domain.IntegrationStatus) error {
	query, args, err := squirrel.
		Update("integrations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status da integração: %w", err)
	}

	return nil
}

func (r *integrationRepository) UpdateLastSyncAt(ctx context.Context, id string, lastSyncAt time.Time) error {
	query, args, err := squirrel.
		Update("integrations").
		Set("last_sync_at", lastSyncAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar last_sync_at da integração: %w", err)
	}

	return nil
}

func (r *integrationRepository) UpdateCredentials(ctx context.Context, id string, credentials domain.Credentials) error {
	credentialsJSON, err := json.Marshal(credentials)
	if err != nil {
		return fmt.Errorf("erro ao serializar credenciais para JSON: %w", err)
	}

	query, args, err := squirrel.
		Update("integrations").
		Set("credentials", credentialsJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar credenciais da integração: %w", err)
	}

	return nil
}

func (r *integrationRepository) UpdateMetadata(ctx context.Context, id string, metadata map[string]any) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("erro ao serializar metadados para JSON: %w", err)
	}

	query, args, err := squirrel.
		Update("integrations").
		Set("metadata", metadataJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar metadados da integração: %w", err)
	}

	return nil
}

func (r *integrationRepository) queryIntegrations(ctx context.Context, query string, args []interface{}) ([]*domain.Integration, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	integrations := make([]*domain.Integration, 0)
	for rows.Next() {
		integration, err := r.scanIntegrationRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear integrações: %w", err)
		}
		integrations = append(integrations, integration)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return integrations, nil
}

func (r *integrationRepository) scanIntegration(row *sql.Row) (*domain.Integration, error) {
	integration := &domain.Integration{}
	var credentialsJSON, metadataJSON []byte
	var lastSyncAt sql.NullTime

	err := row.Scan(
		&integration.ID,
		&integration.OrganizationID,
		&integration.Platform,
		&integration.PlatformAccountID,
		&credentialsJSON,
		&integration.Status,
		&lastSyncAt,
		&metadataJSON,
		&integration.CreatedAt,
		&integration.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return r.fillIntegration(integration, credentialsJSON, metadataJSON, lastSyncAt)
}

func (r *integrationRepository) scanIntegrationRows(rows *sql.Rows) (*domain.Integration, error) {
	integration := &domain.Integration{}
	var credentialsJSON, metadataJSON []byte
	var lastSyncAt sql.NullTime

	err := rows.Scan(
		&integration.ID,
		&integration.OrganizationID,
		&integration.Platform,
		&integration.PlatformAccountID,
		&credentialsJSON,
		&integration.Status,
		&lastSyncAt,
		&metadataJSON,
		&integration.CreatedAt,
		&integration.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return r.fillIntegration(integration, credentialsJSON, metadataJSON, lastSyncAt)
}

func (r *integrationRepository) fillIntegration(integration *domain.Integration, credentialsJSON, metadataJSON []byte, lastSyncAt sql.NullTime) (*domain.Integration, error) {
	if credentialsJSON != nil {
		if err := json.Unmarshal(credentialsJSON, &integration.Credentials); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de credenciais: %w", err)
		}
	}

	if metadataJSON != nil {
		if err := json.Unmarshal(metadataJSON, &integration.Metadata); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de metadados: %w", err)
		}
	}

	if lastSyncAt.Valid {
		ts := lastSyncAt.Time
		integration.LastSyncAt = &ts
	}

	return integration, nil
}
