package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cms-admin-api/internal/models"
	"github.com/cms-admin-api/internal/repository"
	"github.com/cms-admin-api/internal/slug"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CreateArticleInput carries the fields for a new article
type CreateArticleInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Published   bool     `json:"published"`
}

// UpdateArticleInput carries the fields for an article update.
// Nil pointers mean "leave unchanged".
type UpdateArticleInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Content     *string  `json:"content"`
	Image       *string  `json:"image"`
	Tags        []string `json:"tags"`
	Published   *bool    `json:"published"`
}

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repos *repository.Repositories
	audit Recorder
	log   zerolog.Logger
}

func newArticleService(repos *repository.Repositories, audit Recorder, log zerolog.Logger) *articleService {
	return &articleService{
		repos: repos,
		audit: audit,
		log:   log.With().Str("component", "articles").Logger(),
	}
}

// Create stores a new article with a collision-free slug
func (s *articleService) Create(ctx context.Context, actor *Session, in CreateArticleInput) (*models.Article, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	resolved, err := slug.Resolve(ctx, slug.Make(in.Title), "", s.repos.Article.SlugExists)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	article := &models.Article{
		ID:          uuid.New().String(),
		Slug:        resolved,
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Image:       in.Image,
		Tags:        in.Tags,
		Published:   in.Published,
		AuthorID:    actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Published {
		article.PublishedAt = &now
	}

	if err := s.repos.Article.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionCreate, "article", article.ID, actor.UserID,
		fmt.Sprintf("created article %q (slug %s)", article.Title, article.Slug))

	return article, nil
}

// Update applies an edit. The article row, the publish-state
// transition and the version snapshot commit in one transaction, so
// a crash cannot leave published/publishedAt inconsistent or lose
// the snapshot.
func (s *articleService) Update(ctx context.Context, actor *Session, id string, in UpdateArticleInput) (*models.Article, error) {
	if err := requireSession(actor); err != nil {
		return nil, err
	}

	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if article == nil {
		return nil, fmt.Errorf("%w: article %s", ErrNotFound, id)
	}
	if err := requireOwnerOrAdmin(actor, article.AuthorID); err != nil {
		return nil, err
	}

	var changed []string
	titleChanged := in.Title != nil && *in.Title != article.Title
	contentChanged := in.Content != nil && *in.Content != article.Content

	err = s.repos.WithinTx(ctx, func(tx *repository.Repositories) error {
		if titleChanged {
			if strings.TrimSpace(*in.Title) == "" {
				return fmt.Errorf("%w: title cannot be empty", ErrValidation)
			}
			resolved, err := slug.Resolve(ctx, slug.Make(*in.Title), article.ID, tx.Article.SlugExists)
			if err != nil {
				return err
			}
			article.Title = *in.Title
			article.Slug = resolved
			changed = append(changed, "title")
		}
		if in.Description != nil && *in.Description != article.Description {
			article.Description = *in.Description
			changed = append(changed, "description")
		}
		if contentChanged {
			article.Content = *in.Content
			changed = append(changed, "content")
		}
		if in.Image != nil && *in.Image != article.Image {
			article.Image = *in.Image
			changed = append(changed, "image")
		}
		if in.Tags != nil {
			article.Tags = in.Tags
			changed = append(changed, "tags")
		}
		if in.Published != nil && *in.Published != article.Published {
			article.Published = *in.Published
			if article.Published {
				now := time.Now()
				article.PublishedAt = &now
			} else {
				article.PublishedAt = nil
			}
			changed = append(changed, "published")
		}

		if err := tx.Article.Update(ctx, article); err != nil {
			return fmt.Errorf("failed to update article: %w", err)
		}

		// Snapshot the post-update state so the version list reads as
		// a log of states the article has been in.
		if titleChanged || contentChanged {
			version := &models.ArticleVersion{
				ID:          uuid.New().String(),
				ArticleID:   article.ID,
				Title:       article.Title,
				Content:     article.Content,
				CreatedByID: actor.UserID,
				CreatedAt:   time.Now(),
			}
			if err := tx.Version.Create(ctx, version); err != nil {
				return fmt.Errorf("failed to snapshot article version: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(changed) > 0 {
		s.audit.Record(ctx, models.AuditActionUpdate, "article", article.ID, actor.UserID,
			fmt.Sprintf("updated %s", strings.Join(changed, ", ")))
	}

	return article, nil
}

// Delete removes an article; versions and comments cascade
func (s *articleService) Delete(ctx context.Context, actor *Session, id string) error {
	if err := requireSession(actor); err != nil {
		return err
	}

	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load article: %w", err)
	}
	if article == nil {
		return fmt.Errorf("%w: article %s", ErrNotFound, id)
	}
	if err := requireOwnerOrAdmin(actor, article.AuthorID); err != nil {
		return err
	}

	if err := s.repos.Article.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionDelete, "article", id, actor.UserID,
		fmt.Sprintf("deleted article %q", article.Title))

	return nil
}

// GetByID retrieves an article for the admin surface
func (s *articleService) GetByID(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if article == nil {
		return nil, fmt.Errorf("%w: article %s", ErrNotFound, id)
	}
	return article, nil
}

// GetPublishedBySlug retrieves a published article for the public
// surface and bumps its view counter.
func (s *articleService) GetPublishedBySlug(ctx context.Context, slugStr string) (*models.Article, error) {
	article, err := s.repos.Article.GetBySlug(ctx, slugStr)
	if err != nil {
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if article == nil || !article.Published {
		return nil, fmt.Errorf("%w: article %s", ErrNotFound, slugStr)
	}

	if err := s.repos.Article.IncrementViews(ctx, article.ID); err != nil {
		// View counting is best-effort
		s.log.Warn().Err(err).Str("article_id", article.ID).Msg("Failed to increment views")
	} else {
		article.Views++
	}

	return article, nil
}

// List retrieves articles, optionally only published ones
func (s *articleService) List(ctx context.Context, publishedOnly bool) ([]*models.Article, error) {
	articles, err := s.repos.Article.List(ctx, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

// ListVersions returns the article's history, newest first
func (s *articleService) ListVersions(ctx context.Context, actor *Session, articleID string) ([]*models.ArticleVersion, error) {
	if _, err := s.loadOwned(ctx, actor, articleID); err != nil {
		return nil, err
	}

	versions, err := s.repos.Version.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	return versions, nil
}

// RestoreVersion rewinds an article's title/content to a stored
// version. The current state is snapshotted first so it is never
// lost; snapshot and overwrite commit together or not at all.
func (s *articleService) RestoreVersion(ctx context.Context, actor *Session, articleID, versionID string) (*models.Article, error) {
	article, err := s.loadOwned(ctx, actor, articleID)
	if err != nil {
		return nil, err
	}

	version, err := s.repos.Version.GetByID(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load version: %w", err)
	}
	if version == nil || version.ArticleID != articleID {
		return nil, fmt.Errorf("%w: version %s", ErrNotFound, versionID)
	}

	err = s.repos.WithinTx(ctx, func(tx *repository.Repositories) error {
		safety := &models.ArticleVersion{
			ID:          uuid.New().String(),
			ArticleID:   article.ID,
			Title:       article.Title,
			Content:     article.Content,
			CreatedByID: actor.UserID,
			CreatedAt:   time.Now(),
		}
		if err := tx.Version.Create(ctx, safety); err != nil {
			return fmt.Errorf("failed to create pre-restore snapshot: %w", err)
		}

		article.Title = version.Title
		article.Content = version.Content
		if err := tx.Article.Update(ctx, article); err != nil {
			return fmt.Errorf("failed to restore article: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.AuditActionUpdate, "article", article.ID, actor.UserID,
		fmt.Sprintf("restored version %s from %s", version.ID, version.CreatedAt.Format(time.RFC3339)))

	return article, nil
}

// DeleteVersion removes one version; the article itself is untouched
func (s *articleService) DeleteVersion(ctx context.Context, actor *Session, articleID, versionID string) error {
	if _, err := s.loadOwned(ctx, actor, articleID); err != nil {
		return err
	}

	version, err := s.repos.Version.GetByID(ctx, versionID)
	if err != nil {
		return fmt.Errorf("failed to load version: %w", err)
	}
	if version == nil || version.ArticleID != articleID {
		return fmt.Errorf("%w: version %s", ErrNotFound, versionID)
	}

	if err := s.repos.Version.Delete(ctx, versionID); err != nil {
		return fmt.Errorf("failed to delete version: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionDelete, "article_version", versionID, actor.UserID,
		fmt.Sprintf("deleted version of article %s", articleID))

	return nil
}

// loadOwned loads an article and gates it to the owner or an admin
func (s *articleService) loadOwned(ctx context.Context, actor *Session, articleID string) (*models.Article, error) {
	if err := requireSession(actor); err != nil {
		return nil, err
	}
	article, err := s.repos.Article.GetByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if article == nil {
		return nil, fmt.Errorf("%w: article %s", ErrNotFound, articleID)
	}
	if err := requireOwnerOrAdmin(actor, article.AuthorID); err != nil {
		return nil, err
	}
	return article, nil
}
