package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/livara/chat-service/internal/domain"
)

// WidgetKeyRepository manages per-team widget API keys.
type WidgetKeyRepository interface {
	Create(ctx context.Context, key *domain.WidgetKey) error
	Update(ctx context.Context, key *domain.WidgetKey) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.WidgetKey, error)
	GetActiveByAPIKey(ctx context.Context, apiKey string) (*domain.WidgetKey, error)
	ListByTeam(ctx context.Context, teamID int64) ([]domain.WidgetKey, error)
	IncrementUsage(ctx context.Context, apiKey string) error
}

type widgetKeyRepository struct {
	pool *pgxpool.Pool
}

// NewWidgetKeyRepository constructs repository.
func NewWidgetKeyRepository(pool *pgxpool.Pool) WidgetKeyRepository {
	return &widgetKeyRepository{pool: pool}
}

const widgetKeyColumns = `id, team_id, api_key, key_name, is_active, usage_count, last_used, created_by, created_at`

func scanWidgetKey(row pgx.Row) (*domain.WidgetKey, error) {
	var key domain.WidgetKey
	if err := row.Scan(
		&key.ID,
		&key.TeamID,
		&key.APIKey,
		&key.KeyName,
		&key.IsActive,
		&key.UsageCount,
		&key.LastUsed,
		&key.CreatedBy,
		&key.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &key, nil
}

func (r *widgetKeyRepository) Create(ctx context.Context, key *domain.WidgetKey) error {
	const query = `
        INSERT INTO team_widget_keys (team_id, api_key, key_name, is_active, created_by)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, usage_count, created_at`
	return r.pool.QueryRow(ctx, query,
		key.TeamID,
		key.APIKey,
		key.KeyName,
		key.IsActive,
		key.CreatedBy,
	).Scan(&key.ID, &key.UsageCount, &key.CreatedAt)
}

func (r *widgetKeyRepository) Update(ctx context.Context, key *domain.WidgetKey) error {
	const query = `
        UPDATE team_widget_keys SET key_name=$1, is_active=$2
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, key.KeyName, key.IsActive, key.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *widgetKeyRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM team_widget_keys WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *widgetKeyRepository) GetByID(ctx context.Context, id int64) (*domain.WidgetKey, error) {
	const query = `SELECT ` + widgetKeyColumns + ` FROM team_widget_keys WHERE id=$1`
	return scanWidgetKey(r.pool.QueryRow(ctx, query, id))
}

// GetActiveByAPIKey resolves a widget key only when both the key and its
// owning team are active.
func (r *widgetKeyRepository) GetActiveByAPIKey(ctx context.Context, apiKey string) (*domain.WidgetKey, error) {
	const query = `
        SELECT k.id, k.team_id, k.api_key, k.key_name, k.is_active, k.usage_count, k.last_used, k.created_by, k.created_at
        FROM team_widget_keys k
        JOIN teams t ON t.id = k.team_id
        WHERE k.api_key=$1 AND k.is_active=TRUE AND t.is_active=TRUE`
	return scanWidgetKey(r.pool.QueryRow(ctx, query, apiKey))
}

func (r *widgetKeyRepository) ListByTeam(ctx context.Context, teamID int64) ([]domain.WidgetKey, error) {
	const query = `
        SELECT ` + widgetKeyColumns + `
        FROM team_widget_keys WHERE team_id=$1
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.WidgetKey
	for rows.Next() {
		key, err := scanWidgetKey(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *key)
	}
	return result, rows.Err()
}

func (r *widgetKeyRepository) IncrementUsage(ctx context.Context, apiKey string) error {
	const query = `
        UPDATE team_widget_keys SET usage_count=usage_count+1, last_used=NOW()
        WHERE api_key=$1`
	_, err := r.pool.Exec(ctx, query, apiKey)
	return err
}
