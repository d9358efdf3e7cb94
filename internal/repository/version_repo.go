package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/cms-admin-api/internal/database"
	"github.com/cms-admin-api/internal/models"
)

// versionRepo is the concrete implementation of VersionRepository
type versionRepo struct {
	q database.Querier
}

// NewVersionRepo creates a new article version repository
func NewVersionRepo(q database.Querier) VersionRepository {
	return &versionRepo{q: q}
}

// Create inserts a new version snapshot
func (r *versionRepo) Create(ctx context.Context, version *models.ArticleVersion) error {
	query := `
		INSERT INTO article_versions (id, article_id, title, content, created_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if version.CreatedAt.IsZero() {
		version.CreatedAt = time.Now()
	}
	_, err := r.q.ExecContext(ctx, query,
		version.ID, version.ArticleID, version.Title, version.Content,
		version.CreatedByID, version.CreatedAt,
	)
	return err
}

// GetByID retrieves a version by ID
func (r *versionRepo) GetByID(ctx context.Context, id string) (*models.ArticleVersion, error) {
	query := `
		SELECT id, article_id, title, content, created_by_id, created_at
		FROM article_versions WHERE id = $1
	`
	var v models.ArticleVersion
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.ArticleID, &v.Title, &v.Content, &v.CreatedByID, &v.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListByArticle retrieves all versions for an article, newest first
func (r *versionRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleVersion, error) {
	query := `
		SELECT id, article_id, title, content, created_by_id, created_at
		FROM article_versions WHERE article_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.q.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []*models.ArticleVersion
	for rows.Next() {
		var v models.ArticleVersion
		err := rows.Scan(&v.ID, &v.ArticleID, &v.Title, &v.Content, &v.CreatedByID, &v.CreatedAt)
		if err != nil {
			return nil, err
		}
		versions = append(versions, &v)
	}
	return versions, rows.Err()
}

// Delete removes a single version; the parent article is untouched
func (r *versionRepo) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, "DELETE FROM article_versions WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
