package repository

import (
	"context"
	"time"

	"github.com/cms-admin-api/internal/database"
	"github.com/cms-admin-api/internal/models"
)

// auditRepo is the concrete implementation of AuditRepository
type auditRepo struct {
	q database.Querier
}

// NewAuditRepo creates a new audit log repository
func NewAuditRepo(q database.Querier) AuditRepository {
	return &auditRepo{q: q}
}

// Create appends one audit entry
func (r *auditRepo) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	query := `
		INSERT INTO audit_logs (id, action, entity, entity_id, user_id, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := r.q.ExecContext(ctx, query,
		entry.ID, entry.Action, entry.Entity, entry.EntityID,
		entry.UserID, entry.Changes, entry.CreatedAt,
	)
	return err
}

// List retrieves audit entries newest-first with optional filters and
// pagination, returning the page and the total match count.
func (r *auditRepo) List(ctx context.Context, filter AuditFilter) ([]*models.AuditLogEntry, int, error) {
	where := ` WHERE ($1 = '' OR action = $1) AND ($2 = '' OR entity = $2)`

	var total int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM audit_logs`+where,
		string(filter.Action), filter.Entity,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	query := `
		SELECT id, action, entity, entity_id, user_id, changes, created_at
		FROM audit_logs` + where + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.q.QueryContext(ctx, query,
		string(filter.Action), filter.Entity, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []*models.AuditLogEntry
	for rows.Next() {
		var e models.AuditLogEntry
		err := rows.Scan(&e.ID, &e.Action, &e.Entity, &e.EntityID, &e.UserID, &e.Changes, &e.CreatedAt)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, &e)
	}
	return entries, total, rows.Err()
}

// CountByAction aggregates entry counts per action type
func (r *auditRepo) CountByAction(ctx context.Context) (map[models.AuditAction]int, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT action, COUNT(*) FROM audit_logs GROUP BY action")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.AuditAction]int)
	for rows.Next() {
		var action models.AuditAction
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, err
		}
		counts[action] = count
	}
	return counts, rows.Err()
}

// CountSince returns how many entries were created at or after since
func (r *auditRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM audit_logs WHERE created_at >= $1", since,
	).Scan(&count)
	return count, err
}
