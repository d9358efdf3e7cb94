package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cms-admin-api/internal/models"
	"github.com/cms-admin-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BulkResult summarizes a bulk moderation action. Each item's
// transition is independent, so partial success is reported rather
// than rolled back.
type BulkResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// commentService is the concrete implementation of CommentService
type commentService struct {
	repos *repository.Repositories
	audit Recorder
	log   zerolog.Logger
}

func newCommentService(repos *repository.Repositories, audit Recorder, log zerolog.Logger) *commentService {
	return &commentService{
		repos: repos,
		audit: audit,
		log:   log.With().Str("component", "comments").Logger(),
	}
}

// Submit creates a comment from the public surface. New comments are
// always unapproved and stay invisible until a moderator approves.
func (s *commentService) Submit(ctx context.Context, articleID, author, email, content string) (*models.Comment, error) {
	author = strings.TrimSpace(author)
	content = strings.TrimSpace(content)
	if author == "" || content == "" {
		return nil, fmt.Errorf("%w: author and content are required", ErrValidation)
	}
	if len(content) > models.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", ErrValidation, models.MaxCommentLength)
	}

	article, err := s.repos.Article.GetByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if article == nil {
		return nil, fmt.Errorf("%w: article %s", ErrNotFound, articleID)
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		Author:    author,
		Email:     strings.TrimSpace(email),
		Content:   content,
		Approved:  false,
		CreatedAt: time.Now(),
	}
	if err := s.repos.Comment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListApproved returns the publicly visible comments for an article
func (s *commentService) ListApproved(ctx context.Context, articleID string) ([]*models.Comment, error) {
	comments, err := s.repos.Comment.ListByArticle(ctx, articleID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// List returns comments for the moderation view, filtered by state
func (s *commentService) List(ctx context.Context, actor *Session, approved *bool) ([]*models.Comment, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}
	comments, err := s.repos.Comment.List(ctx, approved)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Approve transitions a comment to the publicly visible state
func (s *commentService) Approve(ctx context.Context, actor *Session, id string) error {
	return s.setApproved(ctx, actor, id, true)
}

// Unapprove reverts a comment to pending
func (s *commentService) Unapprove(ctx context.Context, actor *Session, id string) error {
	return s.setApproved(ctx, actor, id, false)
}

func (s *commentService) setApproved(ctx context.Context, actor *Session, id string, approved bool) error {
	if err := requireModerator(actor); err != nil {
		return err
	}

	comment, err := s.repos.Comment.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load comment: %w", err)
	}
	if comment == nil {
		return fmt.Errorf("%w: comment %s", ErrNotFound, id)
	}

	if err := s.repos.Comment.SetApproved(ctx, id, approved); err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	verb := "approved"
	if !approved {
		verb = "unapproved"
	}
	s.audit.Record(ctx, models.AuditActionUpdate, "comment", id, actor.UserID,
		fmt.Sprintf("%s comment on article %s", verb, comment.ArticleID))

	return nil
}

// Delete removes a comment from either state
func (s *commentService) Delete(ctx context.Context, actor *Session, id string) error {
	if err := requireModerator(actor); err != nil {
		return err
	}

	comment, err := s.repos.Comment.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load comment: %w", err)
	}
	if comment == nil {
		return fmt.Errorf("%w: comment %s", ErrNotFound, id)
	}

	if err := s.repos.Comment.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionDelete, "comment", id, actor.UserID,
		fmt.Sprintf("deleted comment on article %s", comment.ArticleID))

	return nil
}

// ApproveMany approves a batch, one comment at a time
func (s *commentService) ApproveMany(ctx context.Context, actor *Session, ids []string) *BulkResult {
	return s.bulk(ids, func(id string) error {
		return s.Approve(ctx, actor, id)
	})
}

// DeleteMany deletes a batch, one comment at a time
func (s *commentService) DeleteMany(ctx context.Context, actor *Session, ids []string) *BulkResult {
	return s.bulk(ids, func(id string) error {
		return s.Delete(ctx, actor, id)
	})
}

func (s *commentService) bulk(ids []string, op func(id string) error) *BulkResult {
	result := &BulkResult{}
	for _, id := range ids {
		if err := op(id); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		result.Succeeded++
	}
	return result
}
