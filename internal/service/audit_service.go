package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cms-admin-api/internal/models"
	"github.com/cms-admin-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuditPage is one page of audit log entries
type AuditPage struct {
	Data       []*models.AuditLogEntry `json:"data"`
	Total      int                     `json:"total"`
	TotalPages int                     `json:"totalPages"`
}

// auditService is the concrete implementation of AuditService
type auditService struct {
	repo repository.AuditRepository
	log  zerolog.Logger
}

func newAuditService(repo repository.AuditRepository, log zerolog.Logger) *auditService {
	return &auditService{
		repo: repo,
		log:  log.With().Str("component", "audit").Logger(),
	}
}

// Record appends one audit entry. Audit logging is diagnostic, not
// transactional: a failed write here must never abort the caller's
// primary operation, so any error is logged as a warning and dropped.
func (s *auditService) Record(ctx context.Context, action models.AuditAction, entity, entityID, userID, changes string) {
	entry := &models.AuditLogEntry{
		ID:        uuid.New().String(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		UserID:    userID,
		Changes:   changes,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Warn().
			Err(err).
			Str("action", string(action)).
			Str("entity", entity).
			Str("entity_id", entityID).
			Msg("Failed to write audit entry")
	}
}

// List returns audit entries newest-first with optional action/entity
// filters. Admin only.
func (s *auditService) List(ctx context.Context, actor *Session, filter repository.AuditFilter) (*AuditPage, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if filter.Action != "" && !filter.Action.Valid() {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, filter.Action)
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	totalPages := (total + limit - 1) / limit

	return &AuditPage{Data: entries, Total: total, TotalPages: totalPages}, nil
}

// Stats aggregates entry counts for the dashboard. Admin only.
func (s *auditService) Stats(ctx context.Context, actor *Session) (*models.AuditStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	byAction, err := s.repo.CountByAction(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit entries by action: %w", err)
	}

	recent, err := s.repo.CountSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count recent audit entries: %w", err)
	}

	total := 0
	for _, n := range byAction {
		total += n
	}

	return &models.AuditStats{
		Total:       total,
		ByAction:    byAction,
		Last24Hours: recent,
	}, nil
}
