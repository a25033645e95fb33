package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/livara/chat-service/internal/domain"
)

// ContactRepository stores leads captured from the widget.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	ListByTeam(ctx context.Context, teamID int64) ([]domain.Contact, error)
	ListAll(ctx context.Context) ([]domain.Contact, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository constructs repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (name, email, phone, message, team_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Message,
		contact.TeamID,
	).Scan(&contact.ID, &contact.CreatedAt)
}

func (r *contactRepository) ListByTeam(ctx context.Context, teamID int64) ([]domain.Contact, error) {
	const query = `
        SELECT id, name, email, phone, message, team_id, created_at
        FROM contacts WHERE team_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Contact
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(&contact.ID, &contact.Name, &contact.Email, &contact.Phone, &contact.Message, &contact.TeamID, &contact.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, contact)
	}
	return result, rows.Err()
}

func (r *contactRepository) ListAll(ctx context.Context) ([]domain.Contact, error) {
	const query = `
        SELECT id, name, email, phone, message, team_id, created_at
        FROM contacts ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Contact
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(&contact.ID, &contact.Name, &contact.Email, &contact.Phone, &contact.Message, &contact.TeamID, &contact.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, contact)
	}
	return result, rows.Err()
}
