package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cms-admin-api/internal/service"
)

func seedArticle(t *testing.T, env *testEnv) string {
	t.Helper()
	article, err := env.services.Article.Create(context.Background(), editorSession("editor-1"), service.CreateArticleInput{
		Title:     "Commented Post",
		Published: true,
	})
	if err != nil {
		t.Fatalf("Failed to seed article: %v", err)
	}
	return article.ID
}

func TestCommentSubmit_StartsPending(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	articleID := seedArticle(t, env)

	comment, err := env.services.Comment.Submit(ctx, articleID, "Alice", "alice@test.com", "Nice post")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if comment.Approved {
		t.Error("New comments must start unapproved")
	}

	// Pending comments are invisible on the public surface
	visible, err := env.services.Comment.ListApproved(ctx, articleID)
	if err != nil {
		t.Fatalf("ListApproved failed: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("Expected 0 visible comments, got %d", len(visible))
	}

	// But present in the moderation queue
	pending := false
	queued, err := env.services.Comment.List(ctx, adminSession(), &pending)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(queued) != 1 {
		t.Errorf("Expected 1 pending comment, got %d", len(queued))
	}
}

func TestCommentSubmit_Validation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	articleID := seedArticle(t, env)

	if _, err := env.services.Comment.Submit(ctx, articleID, "", "", "content"); !errors.Is(err, service.ErrValidation) {
		t.Errorf("Expected ErrValidation for missing author, got %v", err)
	}
	if _, err := env.services.Comment.Submit(ctx, articleID, "Alice", "", "   "); !errors.Is(err, service.ErrValidation) {
		t.Errorf("Expected ErrValidation for blank content, got %v", err)
	}

	long := strings.Repeat("x", 4001)
	if _, err := env.services.Comment.Submit(ctx, articleID, "Alice", "", long); !errors.Is(err, service.ErrValidation) {
		t.Errorf("Expected ErrValidation for oversized content, got %v", err)
	}

	if _, err := env.services.Comment.Submit(ctx, "missing", "Alice", "", "hi"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing article, got %v", err)
	}
}

func TestCommentApproveUnapprove_Visibility(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	articleID := seedArticle(t, env)
	moderator := editorSession("editor-1")

	comment, _ := env.services.Comment.Submit(ctx, articleID, "Alice", "alice@test.com", "Nice post")

	if err := env.services.Comment.Approve(ctx, moderator, comment.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	visible, _ := env.services.Comment.ListApproved(ctx, articleID)
	if len(visible) != 1 {
		t.Fatalf("Expected 1 visible comment after approve, got %d", len(visible))
	}

	if err := env.services.Comment.Unapprove(ctx, moderator, comment.ID); err != nil {
		t.Fatalf("Unapprove failed: %v", err)
	}
	visible, _ = env.services.Comment.ListApproved(ctx, articleID)
	if len(visible) != 0 {
		t.Errorf("Expected 0 visible comments after unapprove, got %d", len(visible))
	}
}

func TestCommentModeration_Gates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	articleID := seedArticle(t, env)

	comment, _ := env.services.Comment.Submit(ctx, articleID, "Alice", "", "Nice post")

	if err := env.services.Comment.Approve(ctx, nil, comment.ID); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for nil session, got %v", err)
	}
	if err := env.services.Comment.Approve(ctx, viewerSession(), comment.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for viewer, got %v", err)
	}
	if _, err := env.services.Comment.List(ctx, viewerSession(), nil); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for viewer list, got %v", err)
	}

	if err := env.services.Comment.Approve(ctx, adminSession(), "missing"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing comment, got %v", err)
	}
}

func TestCommentBulk_PartialSuccess(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	articleID := seedArticle(t, env)
	moderator := editorSession("editor-1")

	first, _ := env.services.Comment.Submit(ctx, articleID, "Alice", "", "one")
	second, _ := env.services.Comment.Submit(ctx, articleID, "Bob", "", "two")

	result := env.services.Comment.ApproveMany(ctx, moderator, []string{first.ID, "missing", second.ID})
	if result.Succeeded != 2 || result.Failed != 1 {
		t.Errorf("Expected 2 succeeded / 1 failed, got %d / %d", result.Succeeded, result.Failed)
	}
	if len(result.Errors) != 1 {
		t.Errorf("Expected 1 error message, got %d", len(result.Errors))
	}

	// The successful items really transitioned
	visible, _ := env.services.Comment.ListApproved(ctx, articleID)
	if len(visible) != 2 {
		t.Errorf("Expected 2 visible comments, got %d", len(visible))
	}

	result = env.services.Comment.DeleteMany(ctx, moderator, []string{first.ID, second.ID, "missing"})
	if result.Succeeded != 2 || result.Failed != 1 {
		t.Errorf("Expected 2 succeeded / 1 failed on delete, got %d / %d", result.Succeeded, result.Failed)
	}
	visible, _ = env.services.Comment.ListApproved(ctx, articleID)
	if len(visible) != 0 {
		t.Errorf("Expected 0 visible comments after bulk delete, got %d", len(visible))
	}
}
