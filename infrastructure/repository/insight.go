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
	insightsTable   = "insights ins"
	insightsColumns = "ins.id, ins.organization_id, ins.type, ins.title, ins.description, ins.impact_score, ins.confidence, ins.category, ins.urgency, ins.actionable, ins.is_read, ins.metadata, ins.created_at"
)

// InsightRepository é a interface de persistência dos insights gerados
// (o InsightStore do sistema)
type InsightRepository interface {
	CreateMany(ctx context.Context, insights []*domain.Insight) error
	DeleteOlderThan(ctx context.Context, organizationID string, cutoffDate time.Time) (int64, error)
	DeleteAllOlderThan(ctx context.Context, cutoffDate time.Time) (int64, error)
	ListRecent(ctx context.Context, organizationID string, filter domain.InsightFilter, limit, offset int) ([]*domain.Insight, error)
	MarkRead(ctx context.Context, ids []string) (int64, error)
	Summary(ctx context.Context, organizationID string) (*domain.InsightSummary, error)
}

type insightRepository struct {
	conn *postgres.Connection
}

func NewInsightRepository(conn *postgres.Connection) InsightRepository {
	return &insightRepository{
		conn: conn,
	}
}

func (r *insightRepository) CreateMany(ctx context.Context, insights []*domain.Insight) error {
	if len(insights) == 0 {
		return nil
	}

	builder := squirrel.StatementBuilder.
		Insert("insights").
		Columns("id", "organization_id", "type", "title", "description", "impact_score", "confidence", "category", "urgency", "actionable", "is_read", "metadata")

	for _, insight := range insights {
		if insight.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				return fmt.Errorf("erro ao gerar ID do insight: %w", err)
			}
			insight.ID = id
		}

		metadataJSON, err := json.Marshal(insight.Metadata)
		if err != nil {
			return fmt.Errorf("erro ao serializar metadados para JSON: %w", err)
		}

		builder = builder.Values(
			insight.ID,
			insight.OrganizationID,
			insight.Type,
			insight.Title,
			insight.Description,
			insight.ImpactScore,
			insight.Confidence,
			insight.Category,
			insight.Urgency,
			insight.Actionable,
			insight.IsRead,
			metadataJSON,
		)
	}

	sqlQuery, args, err := builder.
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
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

func (r *insightRepository) DeleteOlderThan(ctx context.Context, organizationID string, cutoffDate time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete("insights").
		Where(squirrel.Eq{"organization_id": organizationID}).
		Where(squirrel.Lt{"created_at": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execDelete(ctx, query, args)
}

// DeleteAllOlderThan remove insights antigos de todas as organizações,
// usado pela rotina de limpeza por retenção
func (r *insightRepository) DeleteAllOlderThan(ctx context.Context, cutoffDate time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete("insights").
		Where(squirrel.Lt{"created_at": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execDelete(ctx, query, args)
}

func (r *insightRepository) execDelete(ctx context.Context, query string, args []interface{}) (int64, error) {
	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *insightRepository) ListRecent(ctx context.Context, organizationID string, filter domain.InsightFilter, limit, offset int) ([]*domain.Insight, error) {
	builder := squirrel.
		Select(insightsColumns).
		From(insightsTable).
		Where(squirrel.Eq{"ins.organization_id": organizationID})

	if filter.Type != nil {
		builder = builder.Where(squirrel.Eq{"ins.type": *filter.Type})
	}

	if filter.UnreadOnly {
		builder = builder.Where(squirrel.Eq{"ins.is_read": false})
	}

	if limit <= 0 {
		limit = 20
	}

	query, args, err := builder.
		OrderBy("ins.impact_score DESC, ins.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	insights := make([]*domain.Insight, 0)
	for rows.Next() {
		insight, err := r.scanInsightRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear insights: %w", err)
		}
		insights = append(insights, insight)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return insights, nil
}

func (r *insightRepository) MarkRead(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := squirrel.
		Update("insights").
		Set("is_read", true).
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *insightRepository) Summary(ctx context.Context, organizationID string) (*domain.InsightSummary, error) {
	query, args, err := squirrel.
		Select("ins.type", "ins.urgency", "ins.is_read", "COUNT(*)").
		From(insightsTable).
		Where(squirrel.Eq{"ins.organization_id": organizationID}).
		GroupBy("ins.type", "ins.urgency", "ins.is_read").
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

	summary := &domain.InsightSummary{
		ByType:    make(map[domain.InsightType]int64),
		ByUrgency: make(map[domain.InsightUrgency]int64),
	}

	for rows.Next() {
		var insightType domain.InsightType
		var urgency domain.InsightUrgency
		var isRead bool
		var count int64

		if err := rows.Scan(&insightType, &urgency, &isRead, &count); err != nil {
			return nil, fmt.Errorf("erro ao escanear resumo: %w", err)
		}

		summary.Total += count
		summary.ByType[insightType] += count
		summary.ByUrgency[urgency] += count
		if !isRead {
			summary.Unread += count
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return summary, nil
}

func (r *insightRepository) scanInsightRows(rows *sql.Rows) (*domain.Insight, error) {
	insight := &domain.Insight{}
	var metadataJSON []byte

	err := rows.Scan(
		&insight.ID,
		&insight.OrganizationID,
		&insight.Type,
		&insight.Title,
		&insight.Description,
		&insight.ImpactScore,
		&insight.Confidence,
		&insight.Category,
		&insight.Urgency,
		&insight.Actionable,
		&insight.IsRead,
		&metadataJSON,
		&insight.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if metadataJSON != nil {
		if err := json.Unmarshal(metadataJSON, &insight.Metadata); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de metadados: %w", err)
		}
	}

	return insight, nil
}
