package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/cms-admin-api/internal/database"
	"github.com/cms-admin-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	q database.Querier
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(q database.Querier) CommentRepository {
	return &commentRepo{q: q}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, article_id, author, email, content, approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	_, err := r.q.ExecContext(ctx, query,
		comment.ID, comment.ArticleID, comment.Author, comment.Email,
		comment.Content, comment.Approved, comment.CreatedAt,
	)
	return err
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `
		SELECT id, article_id, author, email, content, approved, created_at
		FROM comments WHERE id = $1
	`
	var c models.Comment
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.ArticleID, &c.Author, &c.Email, &c.Content, &c.Approved, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByArticle retrieves comments for one article, newest first.
// Public read paths pass approvedOnly=true.
func (r *commentRepo) ListByArticle(ctx context.Context, articleID string, approvedOnly bool) ([]*models.Comment, error) {
	query := `
		SELECT id, article_id, author, email, content, approved, created_at
		FROM comments WHERE article_id = $1
	`
	if approvedOnly {
		query += ` AND approved = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanComments(rows)
}

// List retrieves all comments, optionally filtered by approval state
func (r *commentRepo) List(ctx context.Context, approved *bool) ([]*models.Comment, error) {
	query := `
		SELECT id, article_id, author, email, content, approved, created_at
		FROM comments
	`
	var args []interface{}
	if approved != nil {
		query += ` WHERE approved = $1`
		args = append(args, *approved)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanComments(rows)
}

// SetApproved flips a comment's moderation flag
func (r *commentRepo) SetApproved(ctx context.Context, id string, approved bool) error {
	result, err := r.q.ExecContext(ctx, "UPDATE comments SET approved = $2 WHERE id = $1", id, approved)
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

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
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

func scanComments(rows *sql.Rows) ([]*models.Comment, error) {
	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.ArticleID, &c.Author, &c.Email, &c.Content, &c.Approved, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
