package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/cms-admin-api/internal/database"
	"github.com/cms-admin-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	q database.Querier
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(q database.Querier) ArticleRepository {
	return &articleRepo{q: q}
}

const articleColumns = `id, slug, title, description, content, image, tags, published, published_at, views, author_id, created_at, updated_at`

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	tagsJSON, _ := json.Marshal(article.Tags)
	if article.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		INSERT INTO articles (id, slug, title, description, content, image, tags, published, published_at, views, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	now := time.Now()
	_, err := r.q.ExecContext(ctx, query,
		article.ID, article.Slug, article.Title, article.Description, article.Content,
		article.Image, tagsJSON, article.Published, article.PublishedAt, article.Views,
		article.AuthorID, now, now,
	)
	return err
}

// Update overwrites an article's mutable fields
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	tagsJSON, _ := json.Marshal(article.Tags)
	if article.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		UPDATE articles
		SET slug = $2, title = $3, description = $4, content = $5, image = $6,
		    tags = $7, published = $8, published_at = $9, updated_at = $10
		WHERE id = $1
	`
	result, err := r.q.ExecContext(ctx, query,
		article.ID, article.Slug, article.Title, article.Description, article.Content,
		article.Image, tagsJSON, article.Published, article.PublishedAt, time.Now(),
	)
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

// Delete removes an article; versions and comments cascade in the schema
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
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

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	return scanArticle(row)
}

// GetBySlug retrieves an article by slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE slug = $1`, slug)
	return scanArticle(row)
}

// SlugExists checks if a slug is taken, ignoring the article with excludeID.
// Pass an empty excludeID on create.
func (r *articleRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1 AND ($2 = '' OR id != $2))"
	err := r.q.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists)
	return exists, err
}

// List retrieves articles newest-first, optionally only published ones
func (r *articleRepo) List(ctx context.Context, publishedOnly bool) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles`
	if publishedOnly {
		query += ` WHERE published = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// IncrementViews bumps the view counter for an article
func (r *articleRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, "UPDATE articles SET views = views + 1 WHERE id = $1", id)
	return err
}

// CountByAuthor returns how many articles a user owns
func (r *articleRepo) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles WHERE author_id = $1", authorID).Scan(&count)
	return count, err
}

// ImageInUse checks whether any article references the given media path
func (r *articleRepo) ImageInUse(ctx context.Context, image string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE image = $1)", image).Scan(&exists)
	return exists, err
}

// scanner matches both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(s scanner) (*models.Article, error) {
	var article models.Article
	var tagsJSON []byte
	var publishedAt sql.NullTime

	err := s.Scan(
		&article.ID, &article.Slug, &article.Title, &article.Description, &article.Content,
		&article.Image, &tagsJSON, &article.Published, &publishedAt, &article.Views,
		&article.AuthorID, &article.CreatedAt, &article.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal(tagsJSON, &article.Tags)
	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}

	return &article, nil
}
