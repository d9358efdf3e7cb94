package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cms-admin-api/internal/models"
	"github.com/cms-admin-api/internal/service"
)

func TestMediaDelete_RefusesWhileReferenced(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	actor := editorSession("editor-1")

	media := &models.Media{
		ID:           "m-1",
		Filename:     "hero.png",
		Path:         "/uploads/hero.png",
		Size:         1024,
		MimeType:     "image/png",
		UploadedByID: actor.UserID,
	}
	if err := env.services.Media.Save(ctx, actor, media); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	article, err := env.services.Article.Create(ctx, actor, service.CreateArticleInput{
		Title: "Illustrated",
		Image: media.Path,
	})
	if err != nil {
		t.Fatalf("Article create failed: %v", err)
	}

	if _, err := env.services.Media.Delete(ctx, actor, media.ID); !errors.Is(err, service.ErrConflict) {
		t.Fatalf("Expected ErrConflict while referenced, got %v", err)
	}

	if err := env.services.Article.Delete(ctx, actor, article.ID); err != nil {
		t.Fatalf("Article delete failed: %v", err)
	}

	deleted, err := env.services.Media.Delete(ctx, actor, media.ID)
	if err != nil {
		t.Fatalf("Expected delete to succeed after reference removed, got %v", err)
	}
	if deleted.Path != media.Path {
		t.Errorf("Expected deleted record path %s, got %s", media.Path, deleted.Path)
	}

	if _, err := env.services.Media.Delete(ctx, actor, media.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for repeat delete, got %v", err)
	}
}

func TestMediaGates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	media := &models.Media{ID: "m-1", Filename: "x.png", Path: "/uploads/x.png"}
	if err := env.services.Media.Save(ctx, viewerSession(), media); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for viewer upload, got %v", err)
	}
	if _, err := env.services.Media.List(ctx, nil); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for anonymous list, got %v", err)
	}

	// Any authenticated user may browse the library
	if _, err := env.services.Media.List(ctx, viewerSession()); err != nil {
		t.Errorf("Viewer list failed: %v", err)
	}
}
