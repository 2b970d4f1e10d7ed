package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthpremium/backend/internal/domain"
)

// PostgresRepository implements domain.PredictionRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SavePrediction persists a prediction audit entry to PostgreSQL
func (r *PostgresRepository) SavePrediction(ctx context.Context, entry domain.PredictionLog) error {
	query := `
		INSERT INTO prediction_logs (
			id, age_band, premium, normalized_risk_score, input, features, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.AgeBand, entry.Premium, entry.RiskScore,
		entry.Input, entry.Features, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save prediction log: %w", err)
	}

	return nil
}

// ListPredictions retrieves the most recent prediction audit entries.
// A limit of zero or less returns every entry.
func (r *PostgresRepository) ListPredictions(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	query := `
		SELECT id, age_band, premium, normalized_risk_score, input, features, created_at
		FROM prediction_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	limitArg, capacity := listLimit(limit)
	rows, err := r.pool.Query(ctx, query, limitArg)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query prediction logs: %w", err)
	}
	defer rows.Close()

	results := make([]domain.PredictionLog, 0, capacity)
	for rows.Next() {
		var p domain.PredictionLog
		err := rows.Scan(
			&p.ID, &p.AgeBand, &p.Premium, &p.RiskScore, &p.Input, &p.Features, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan prediction row: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read prediction rows: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// listLimit turns a caller limit into the LIMIT argument and a preallocation
// size. LIMIT NULL means no limit in PostgreSQL.
func listLimit(limit int) (any, int) {
	if limit <= 0 {
		return nil, 0
	}
	return limit, limit
}
