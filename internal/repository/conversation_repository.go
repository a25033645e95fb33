package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/livara/chat-service/internal/domain"
)

// ConversationRepository persists widget chat exchanges.
type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	ListByTeam(ctx context.Context, teamID int64, limit int) ([]domain.Conversation, error)
	ListBySession(ctx context.Context, sessionID string, teamID *int64) ([]domain.Conversation, error)
	StatsByTeam(ctx context.Context, teamID int64) (*domain.SessionStats, error)
}

type conversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository constructs repository.
func NewConversationRepository(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepository{pool: pool}
}

func (r *conversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	const query = `
        INSERT INTO conversations (session_id, user_message, ai_response, team_id, user_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, timestamp`
	return r.pool.QueryRow(ctx, query,
		conv.SessionID,
		conv.UserMessage,
		conv.AIResponse,
		conv.TeamID,
		conv.UserID,
	).Scan(&conv.ID, &conv.Timestamp)
}

func (r *conversationRepository) ListByTeam(ctx context.Context, teamID int64, limit int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
        SELECT id, session_id, user_message, ai_response, team_id, user_id, timestamp
        FROM conversations WHERE team_id=$1
        ORDER BY timestamp DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, teamID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectConversations(rows)
}

func (r *conversationRepository) ListBySession(ctx context.Context, sessionID string, teamID *int64) ([]domain.Conversation, error) {
	query := `
        SELECT id, session_id, user_message, ai_response, team_id, user_id, timestamp
        FROM conversations WHERE session_id=$1
        ORDER BY timestamp ASC`
	args := []any{sessionID}
	if teamID != nil {
		query = `
        SELECT id, session_id, user_message, ai_response, team_id, user_id, timestamp
        FROM conversations WHERE session_id=$1 AND team_id=$2
        ORDER BY timestamp ASC`
		args = append(args, *teamID)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectConversations(rows)
}

func (r *conversationRepository) StatsByTeam(ctx context.Context, teamID int64) (*domain.SessionStats, error) {
	const query = `
        SELECT COUNT(DISTINCT session_id), COUNT(*), MAX(timestamp)
        FROM conversations WHERE team_id=$1`
	stats := domain.SessionStats{TeamID: teamID}
	if err := r.pool.QueryRow(ctx, query, teamID).Scan(
		&stats.SessionCount,
		&stats.MessageCount,
		&stats.LastMessageAt,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func collectConversations(rows pgx.Rows) ([]domain.Conversation, error) {
	var result []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		if err := rows.Scan(&conv.ID, &conv.SessionID, &conv.UserMessage, &conv.AIResponse, &conv.TeamID, &conv.UserID, &conv.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, conv)
	}
	return result, rows.Err()
}
