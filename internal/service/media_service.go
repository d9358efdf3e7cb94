package service

import (
	"context"
	"fmt"

	"github.com/cms-admin-api/internal/models"
	"github.com/cms-admin-api/internal/repository"
	"github.com/rs/zerolog"
)

// mediaService is the concrete implementation of MediaService
type mediaService struct {
	repos *repository.Repositories
	audit Recorder
	log   zerolog.Logger
}

func newMediaService(repos *repository.Repositories, audit Recorder, log zerolog.Logger) *mediaService {
	return &mediaService{
		repos: repos,
		audit: audit,
		log:   log.With().Str("component", "media").Logger(),
	}
}

// Save records an uploaded file in the media library. The handler has
// already written the file to disk.
func (s *mediaService) Save(ctx context.Context, actor *Session, media *models.Media) error {
	if err := requireModerator(actor); err != nil {
		return err
	}

	if err := s.repos.Media.Create(ctx, media); err != nil {
		return fmt.Errorf("failed to save media record: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionCreate, "media", media.ID, actor.UserID,
		fmt.Sprintf("uploaded %s (%d bytes)", media.Filename, media.Size))

	return nil
}

// List returns all media records
func (s *mediaService) List(ctx context.Context, actor *Session) ([]*models.Media, error) {
	if err := requireSession(actor); err != nil {
		return nil, err
	}
	items, err := s.repos.Media.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return items, nil
}

// Delete removes a media record, refusing while any article still
// references the file. The deleted record is returned so the caller
// can remove the file from disk.
func (s *mediaService) Delete(ctx context.Context, actor *Session, id string) (*models.Media, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}

	media, err := s.repos.Media.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load media: %w", err)
	}
	if media == nil {
		return nil, fmt.Errorf("%w: media %s", ErrNotFound, id)
	}

	inUse, err := s.repos.Article.ImageInUse(ctx, media.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to check media usage: %w", err)
	}
	if inUse {
		return nil, fmt.Errorf("%w: media is referenced by an article", ErrConflict)
	}

	if err := s.repos.Media.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete media: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionDelete, "media", id, actor.UserID,
		fmt.Sprintf("deleted %s", media.Filename))

	return media, nil
}
