package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/livara/chat-service/internal/domain"
)

// DocumentRepository stores knowledge-base document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	List(ctx context.Context, teamID *int64) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id int64, status domain.DocumentStatus, reviewedBy int64) error
}

type documentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository constructs repository.
func NewDocumentRepository(pool *pgxpool.Pool) DocumentRepository {
	return &documentRepository{pool: pool}
}

const documentColumns = `id, team_id, file_name, content_type, size_bytes, status, uploaded_by, reviewed_by, reviewed_at, created_at`

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var doc domain.Document
	if err := row.Scan(
		&doc.ID,
		&doc.TeamID,
		&doc.FileName,
		&doc.ContentType,
		&doc.SizeBytes,
		&doc.Status,
		&doc.UploadedBy,
		&doc.ReviewedBy,
		&doc.ReviewedAt,
		&doc.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	const query = `
        INSERT INTO documents (team_id, file_name, content_type, size_bytes, status, uploaded_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		doc.TeamID,
		doc.FileName,
		doc.ContentType,
		doc.SizeBytes,
		doc.Status,
		doc.UploadedBy,
	).Scan(&doc.ID, &doc.CreatedAt)
}

func (r *documentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE id=$1`
	return scanDocument(r.pool.QueryRow(ctx, query, id))
}

func (r *documentRepository) List(ctx context.Context, teamID *int64) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC`
	args := []any{}
	if teamID != nil {
		query = `SELECT ` + documentColumns + ` FROM documents WHERE team_id=$1 ORDER BY created_at DESC`
		args = append(args, *teamID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *doc)
	}
	return result, rows.Err()
}

func (r *documentRepository) UpdateStatus(ctx context.Context, id int64, status domain.DocumentStatus, reviewedBy int64) error {
	const query = `
        UPDATE documents SET status=$1, reviewed_by=$2, reviewed_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, reviewedBy, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
