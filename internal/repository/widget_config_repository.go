package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/livara/chat-service/internal/domain"
)

// WidgetConfigRepository manages per-team widget configuration.
type WidgetConfigRepository interface {
	GetByTeam(ctx context.Context, teamID int64) (*domain.WidgetConfig, error)
	Upsert(ctx context.Context, config *domain.WidgetConfig) error
}

type widgetConfigRepository struct {
	pool *pgxpool.Pool
}

// NewWidgetConfigRepository constructs repository.
func NewWidgetConfigRepository(pool *pgxpool.Pool) WidgetConfigRepository {
	return &widgetConfigRepository{pool: pool}
}

func (r *widgetConfigRepository) GetByTeam(ctx context.Context, teamID int64) (*domain.WidgetConfig, error) {
	const query = `
        SELECT id, team_id, widget_title, widget_subtitle, primary_color, secondary_color,
               welcome_message, input_placeholder, widget_position, show_avatar, show_powered_by,
               created_by, created_at, updated_at
        FROM widget_configs WHERE team_id=$1`
	var cfg domain.WidgetConfig
	if err := r.pool.QueryRow(ctx, query, teamID).Scan(
		&cfg.ID,
		&cfg.TeamID,
		&cfg.WidgetTitle,
		&cfg.WidgetSubtitle,
		&cfg.PrimaryColor,
		&cfg.SecondaryColor,
		&cfg.WelcomeMessage,
		&cfg.InputPlaceholder,
		&cfg.WidgetPosition,
		&cfg.ShowAvatar,
		&cfg.ShowPoweredBy,
		&cfg.CreatedBy,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *widgetConfigRepository) Upsert(ctx context.Context, config *domain.WidgetConfig) error {
	const query = `
        INSERT INTO widget_configs
            (team_id, widget_title, widget_subtitle, primary_color, secondary_color,
             welcome_message, input_placeholder, widget_position, show_avatar, show_powered_by, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        ON CONFLICT (team_id) DO UPDATE SET
            widget_title=EXCLUDED.widget_title,
            widget_subtitle=EXCLUDED.widget_subtitle,
            primary_color=EXCLUDED.primary_color,
            secondary_color=EXCLUDED.secondary_color,
            welcome_message=EXCLUDED.welcome_message,
            input_placeholder=EXCLUDED.input_placeholder,
            widget_position=EXCLUDED.widget_position,
            show_avatar=EXCLUDED.show_avatar,
            show_powered_by=EXCLUDED.show_powered_by,
            updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		config.TeamID,
		config.WidgetTitle,
		config.WidgetSubtitle,
		config.PrimaryColor,
		config.SecondaryColor,
		config.WelcomeMessage,
		config.InputPlaceholder,
		config.WidgetPosition,
		config.ShowAvatar,
		config.ShowPoweredBy,
		config.CreatedBy,
	).Scan(&config.ID, &config.CreatedAt, &config.UpdatedAt)
}
