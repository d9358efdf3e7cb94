package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cms-admin-api/internal/models"
	"github.com/cms-admin-api/internal/repository"
	"github.com/cms-admin-api/internal/service"
)

func TestAuditRecord_SwallowsStoreErrors(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.audits.CreateError = errors.New("disk full")

	// Must not panic or surface an error to the caller
	env.services.Audit.Record(ctx, models.AuditActionCreate, "article", "a-1", "u-1", "created")

	env.audits.CreateError = nil
	env.services.Audit.Record(ctx, models.AuditActionCreate, "article", "a-2", "u-1", "created")

	page, err := env.services.Audit.List(ctx, adminSession(), repository.AuditFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("Expected 1 stored entry, got %d", page.Total)
	}
}

func TestAuditList_FiltersAndPagination(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := adminSession()

	for i := 0; i < 25; i++ {
		env.services.Audit.Record(ctx, models.AuditActionUpdate, "article", fmt.Sprintf("a-%d", i), "u-1", "edited")
	}
	env.services.Audit.Record(ctx, models.AuditActionDelete, "comment", "c-1", "u-1", "removed")

	page, err := env.services.Audit.List(ctx, admin, repository.AuditFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 26 {
		t.Errorf("Expected total 26, got %d", page.Total)
	}
	if len(page.Data) != 10 {
		t.Errorf("Expected 10 entries on page 1, got %d", len(page.Data))
	}
	if page.TotalPages != 3 {
		t.Errorf("Expected 3 pages, got %d", page.TotalPages)
	}
	// Newest first
	if page.Data[0].Entity != "comment" {
		t.Errorf("Expected newest entry first, got entity %s", page.Data[0].Entity)
	}

	page, err = env.services.Audit.List(ctx, admin, repository.AuditFilter{Action: models.AuditActionDelete})
	if err != nil {
		t.Fatalf("Filtered list failed: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("Expected 1 DELETE entry, got %d", page.Total)
	}

	page, err = env.services.Audit.List(ctx, admin, repository.AuditFilter{Entity: "article"})
	if err != nil {
		t.Fatalf("Entity-filtered list failed: %v", err)
	}
	if page.Total != 25 {
		t.Errorf("Expected 25 article entries, got %d", page.Total)
	}

	if _, err := env.services.Audit.List(ctx, admin, repository.AuditFilter{Action: "SHRED"}); !errors.Is(err, service.ErrValidation) {
		t.Errorf("Expected ErrValidation for unknown action, got %v", err)
	}
}

func TestAuditList_AdminOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.services.Audit.List(ctx, editorSession("editor-1"), repository.AuditFilter{}); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for editor, got %v", err)
	}
	if _, err := env.services.Audit.List(ctx, nil, repository.AuditFilter{}); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for nil session, got %v", err)
	}
	if _, err := env.services.Audit.Stats(ctx, viewerSession()); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for viewer stats, got %v", err)
	}
}

func TestAuditStats(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.services.Audit.Record(ctx, models.AuditActionCreate, "article", "a-1", "u-1", "created")
	env.services.Audit.Record(ctx, models.AuditActionCreate, "article", "a-2", "u-1", "created")
	env.services.Audit.Record(ctx, models.AuditActionLogin, "user", "u-1", "u-1", "logged in")

	// One stale entry outside the 24h window
	env.audits.Entries[0].CreatedAt = time.Now().Add(-48 * time.Hour)

	stats, err := env.services.Audit.Stats(ctx, adminSession())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("Expected total 3, got %d", stats.Total)
	}
	if stats.ByAction[models.AuditActionCreate] != 2 {
		t.Errorf("Expected 2 CREATE entries, got %d", stats.ByAction[models.AuditActionCreate])
	}
	if stats.ByAction[models.AuditActionLogin] != 1 {
		t.Errorf("Expected 1 LOGIN entry, got %d", stats.ByAction[models.AuditActionLogin])
	}
	if stats.Last24Hours != 2 {
		t.Errorf("Expected 2 entries in last 24h, got %d", stats.Last24Hours)
	}
}

func TestAuditTrail_FollowsMutations(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	actor := editorSession("editor-1")

	article, err := env.services.Article.Create(ctx, actor, service.CreateArticleInput{Title: "Traced"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	content := "edited"
	if _, err := env.services.Article.Update(ctx, actor, article.ID, service.UpdateArticleInput{Content: &content}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := env.services.Article.Delete(ctx, actor, article.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	page, err := env.services.Audit.List(ctx, adminSession(), repository.AuditFilter{Entity: "article"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("Expected 3 trail entries, got %d", page.Total)
	}
	// Newest first: delete, update, create
	wantActions := []models.AuditAction{models.AuditActionDelete, models.AuditActionUpdate, models.AuditActionCreate}
	for i, want := range wantActions {
		if page.Data[i].Action != want {
			t.Errorf("Entry %d: expected action %s, got %s", i, want, page.Data[i].Action)
		}
		if page.Data[i].UserID != actor.UserID {
			t.Errorf("Entry %d: expected user %s, got %s", i, actor.UserID, page.Data[i].UserID)
		}
	}
}
