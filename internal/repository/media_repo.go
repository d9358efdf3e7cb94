package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/cms-admin-api/internal/database"
	"github.com/cms-admin-api/internal/models"
)

// mediaRepo is the concrete implementation of MediaRepository
type mediaRepo struct {
	q database.Querier
}

// NewMediaRepo creates a new media repository
func NewMediaRepo(q database.Querier) MediaRepository {
	return &mediaRepo{q: q}
}

// Create inserts a new media record
func (r *mediaRepo) Create(ctx context.Context, media *models.Media) error {
	query := `
		INSERT INTO media (id, filename, path, size, mime_type, uploaded_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if media.CreatedAt.IsZero() {
		media.CreatedAt = time.Now()
	}
	_, err := r.q.ExecContext(ctx, query,
		media.ID, media.Filename, media.Path, media.Size,
		media.MimeType, media.UploadedByID, media.CreatedAt,
	)
	return err
}

// GetByID retrieves a media record by ID
func (r *mediaRepo) GetByID(ctx context.Context, id string) (*models.Media, error) {
	query := `
		SELECT id, filename, path, size, mime_type, uploaded_by_id, created_at
		FROM media WHERE id = $1
	`
	var m models.Media
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Filename, &m.Path, &m.Size, &m.MimeType, &m.UploadedByID, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List retrieves all media records, newest first
func (r *mediaRepo) List(ctx context.Context) ([]*models.Media, error) {
	query := `
		SELECT id, filename, path, size, mime_type, uploaded_by_id, created_at
		FROM media ORDER BY created_at DESC
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Media
	for rows.Next() {
		var m models.Media
		err := rows.Scan(&m.ID, &m.Filename, &m.Path, &m.Size, &m.MimeType, &m.UploadedByID, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}

// Delete removes a media record
func (r *mediaRepo) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, "DELETE FROM media WHERE id = $1", id)
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
