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
	"github.com/shopspring/decimal"
)

const (
	dataPointsTable = "data_points dp"

	// upsertBatchSize limita o tamanho de cada lote de upsert
	upsertBatchSize = 1000
)

// DataPointRepository é a interface de escrita e consulta dos data points
// normalizados (o MetricStore do sistema)
type DataPointRepository interface {
	UpsertBatch(ctx context.Context, points []*domain.DataPoint) (int64, error)
	QueryAggregate(ctx context.Context, integrationIDs []string, metricType domain.MetricType, startDate, endDate time.Time) (*domain.MetricAggregate, error)
	QueryDaily(ctx context.Context, integrationIDs []string, metricTypes []domain.MetricType, startDate, endDate time.Time) ([]*domain.DailyMetric, error)
	ListPoints(ctx context.Context, integrationIDs []string, metricType domain.MetricType, startDate, endDate time.Time) ([]*domain.DataPoint, error)
	DeleteOlderThan(ctx context.Context, cutoffDate time.Time) (int64, error)
}

type dataPointRepository struct {
	conn *postgres.Connection
}

func NewDataPointRepository(conn *postgres.Connection) DataPointRepository {
	return &dataPointRepository{
		conn: conn,
	}
}

// UpsertBatch insere ou atualiza data points em lotes, usando a chave natural
// (integration_id, metric_type, date). Conflitos são o caminho de atualização,
// nunca um erro — isso torna a re-sincronização idempotente.
func (r *dataPointRepository) UpsertBatch(ctx context.Context, points []*domain.DataPoint) (int64, error) {
	if len(points) == 0 {
		return 0, nil
	}

	var total int64
	for start := 0; start < len(points); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(points) {
			end = len(points)
		}

		count, err := r.upsertChunk(ctx, points[start:end])
		if err != nil {
			return total, err
		}
		total += count
	}

	return total, nil
}

func (r *dataPointRepository) upsertChunk(ctx context.Context, points []*domain.DataPoint) (int64, error) {
	builder := squirrel.StatementBuilder.
		Insert("data_points").
		Columns("id", "integration_id", "metric_type", "value", "metadata", "date")

	for _, point := range points {
		if point.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				return 0, fmt.Errorf("erro ao gerar ID do data point: %w", err)
			}
			point.ID = id
		}

		var metadataJSON []byte
		if point.Metadata != nil {
			serialized, err := json.Marshal(point.Metadata)
			if err != nil {
				return 0, fmt.Errorf("erro ao serializar metadados para JSON: %w", err)
			}
			metadataJSON = serialized
		}

		builder = builder.Values(
			point.ID,
			point.IntegrationID,
			point.MetricType,
			point.Value.String(),
			metadataJSON,
			point.Date.Format("2006-01-02"),
		)
	}

	query := builder.
		Suffix(`
			ON CONFLICT (integration_id, metric_type, date) DO UPDATE SET
				value = EXCLUDED.value,
				metadata = EXCLUDED.metadata,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *dataPointRepository) QueryAggregate(ctx context.Context, integrationIDs []string, metricType domain.MetricType, startDate, endDate time.Time) (*domain.MetricAggregate, error) {
	if len(integrationIDs) == 0 {
		return &domain.MetricAggregate{MetricType: metricType, Sum: decimal.Zero, Avg: decimal.Zero}, nil
	}

	query, args, err := squirrel.
		Select("COALESCE(SUM(dp.value), 0)", "COALESCE(AVG(dp.value), 0)", "COUNT(*)").
		From(dataPointsTable).
		Where(squirrel.Eq{"dp.integration_id": integrationIDs, "dp.metric_type": metricType}).
		Where(squirrel.GtOrEq{"dp.date": startDate.Format("2006-01-02")}).
		Where(squirrel.Lt{"dp.date": endDate.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var sumStr, avgStr string
	var count int64

	row := r.conn.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&sumStr, &avgStr, &count); err != nil {
		return nil, fmt.Errorf("erro ao escanear agregação: %w", err)
	}

	sum, err := decimal.NewFromString(sumStr)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter soma para decimal: %w", err)
	}

	avg, err := decimal.NewFromString(avgStr)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter média para decimal: %w", err)
	}

	return &domain.MetricAggregate{
		MetricType: metricType,
		Sum:        sum,
		Avg:        avg,
		Count:      count,
	}, nil
}

func (r *dataPointRepository) QueryDaily(ctx context.Context, integrationIDs []string, metricTypes []domain.MetricType, startDate, endDate time.Time) ([]*domain.DailyMetric, error) {
	if len(integrationIDs) == 0 {
		return []*domain.DailyMetric{}, nil
	}

	query, args, err := squirrel.
		Select("dp.date", "dp.metric_type", "COALESCE(SUM(dp.value), 0)").
		From(dataPointsTable).
		Where(squirrel.Eq{"dp.integration_id": integrationIDs, "dp.metric_type": metricTypes}).
		Where(squirrel.GtOrEq{"dp.date": startDate.Format("2006-01-02")}).
		Where(squirrel.Lt{"dp.date": endDate.Format("2006-01-02")}).
		GroupBy("dp.date", "dp.metric_type").
		OrderBy("dp.date ASC").
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

	metrics := make([]*domain.DailyMetric, 0)
	for rows.Next() {
		metric := &domain.DailyMetric{}
		var valueStr string

		if err := rows.Scan(&metric.Date, &metric.MetricType, &valueStr); err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica diária: %w", err)
		}

		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, fmt.Errorf("erro ao converter valor para decimal: %w", err)
		}
		metric.Value = value

		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}

// ListPoints retorna os data points com seus metadados, necessários para as
// análises por dimensão de origem (oportunidade, comportamento de clientes)
func (r *dataPointRepository) ListPoints(ctx context.Context, integrationIDs []string, metricType domain.MetricType, startDate, endDate time.Time) ([]*domain.DataPoint, error) {
	if len(integrationIDs) == 0 {
		return []*domain.DataPoint{}, nil
	}

	query, args, err := squirrel.
		Select("dp.id", "dp.integration_id", "dp.metric_type", "dp.value", "dp.metadata", "dp.date", "dp.created_at", "dp.updated_at").
		From(dataPointsTable).
		Where(squirrel.Eq{"dp.integration_id": integrationIDs, "dp.metric_type": metricType}).
		Where(squirrel.GtOrEq{"dp.date": startDate.Format("2006-01-02")}).
		Where(squirrel.Lt{"dp.date": endDate.Format("2006-01-02")}).
		OrderBy("dp.date ASC").
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

	points := make([]*domain.DataPoint, 0)
	for rows.Next() {
		point := &domain.DataPoint{}
		var valueStr string
		var metadataJSON []byte

		err := rows.Scan(
			&point.ID,
			&point.IntegrationID,
			&point.MetricType,
			&valueStr,
			&metadataJSON,
			&point.Date,
			&point.CreatedAt,
			&point.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear data point: %w", err)
		}

		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, fmt.Errorf("erro ao converter valor para decimal: %w", err)
		}
		point.Value = value

		if metadataJSON != nil {
			if err := json.Unmarshal(metadataJSON, &point.Metadata); err != nil {
				return nil, fmt.Errorf("erro ao deserializar JSON de metadados: %w", err)
			}
		}

		points = append(points, point)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return points, nil
}

func (r *dataPointRepository) DeleteOlderThan(ctx context.Context, cutoffDate time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete("data_points").
		Where(squirrel.Lt{"date": cutoffDate.Format("2006-01-02")}).
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
