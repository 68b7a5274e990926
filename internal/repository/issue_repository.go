package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Moonidhi/CivicIssueManager/internal/domain"
)

// IssueRepository encapsulates issue persistence. Listings come back newest
// first; in-memory engines (filter, analytics) consume the full slice.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	Update(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	ListAll(ctx context.Context) ([]domain.Issue, error)
}

type issueRepository struct {
	pool *pgxpool.Pool
}

// NewIssueRepository instantiates repository.
func NewIssueRepository(pool *pgxpool.Pool) IssueRepository {
	return &issueRepository{pool: pool}
}

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	const query = `
        INSERT INTO issues (user_id, user_name, title, description, category, location, status, priority, photo_urls, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		issue.UserID,
		issue.UserName,
		issue.Title,
		issue.Description,
		issue.Category,
		issue.Location,
		issue.Status,
		issue.Priority,
		issue.PhotoURLs,
		issue.CreatedAt,
		issue.UpdatedAt,
	).Scan(&issue.ID)
}

func (r *issueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	const query = `
        UPDATE issues SET status=$1, priority=$2, updated_at=$3, resolved_at=$4
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		issue.Status,
		issue.Priority,
		issue.UpdatedAt,
		issue.ResolvedAt,
		issue.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *issueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	const query = `
        SELECT id, user_id, user_name, title, description, category, location,
               status, priority, photo_urls, created_at, updated_at, resolved_at
        FROM issues WHERE id=$1`
	var issue domain.Issue
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&issue.ID,
		&issue.UserID,
		&issue.UserName,
		&issue.Title,
		&issue.Description,
		&issue.Category,
		&issue.Location,
		&issue.Status,
		&issue.Priority,
		&issue.PhotoURLs,
		&issue.CreatedAt,
		&issue.UpdatedAt,
		&issue.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepository) ListAll(ctx context.Context) ([]domain.Issue, error) {
	const query = `
        SELECT id, user_id, user_name, title, description, category, location,
               status, priority, photo_urls, created_at, updated_at, resolved_at
        FROM issues ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIssues(rows)
}

func scanIssues(rows pgx.Rows) ([]domain.Issue, error) {
	var result []domain.Issue
	for rows.Next() {
		var issue domain.Issue
		if err := rows.Scan(
			&issue.ID,
			&issue.UserID,
			&issue.UserName,
			&issue.Title,
			&issue.Description,
			&issue.Category,
			&issue.Location,
			&issue.Status,
			&issue.Priority,
			&issue.PhotoURLs,
			&issue.CreatedAt,
			&issue.UpdatedAt,
			&issue.ResolvedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, issue)
	}
	return result, rows.Err()
}
