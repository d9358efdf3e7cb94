package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cms-admin-api/internal/models"
	"github.com/cms-admin-api/internal/service"
)

func TestUserCreate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := adminSession()

	user, err := env.services.User.Create(ctx, admin, service.CreateUserInput{
		Email:    "New.Editor@Test.com",
		Name:     "New Editor",
		Password: "correct horse",
		Role:     models.RoleEditor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if user.Email != "new.editor@test.com" {
		t.Errorf("Expected lowercased email, got %s", user.Email)
	}
	if user.PasswordHash == "correct horse" {
		t.Error("Password must be stored hashed")
	}

	// Duplicate email, regardless of case
	_, err = env.services.User.Create(ctx, admin, service.CreateUserInput{
		Email:    "NEW.EDITOR@test.com",
		Name:     "Other",
		Password: "correct horse",
		Role:     models.RoleEditor,
	})
	if !errors.Is(err, service.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestUserCreate_Validation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := adminSession()

	cases := []struct {
		name string
		in   service.CreateUserInput
	}{
		{"missing email", service.CreateUserInput{Email: "", Password: "longenough", Role: models.RoleEditor}},
		{"malformed email", service.CreateUserInput{Email: "not-an-email", Password: "longenough", Role: models.RoleEditor}},
		{"short password", service.CreateUserInput{Email: "a@test.com", Password: "short", Role: models.RoleEditor}},
		{"unknown role", service.CreateUserInput{Email: "a@test.com", Password: "longenough", Role: "SUPERUSER"}},
	}
	for _, tc := range cases {
		if _, err := env.services.User.Create(ctx, admin, tc.in); !errors.Is(err, service.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}

	if _, err := env.services.User.Create(ctx, editorSession("editor-1"), service.CreateUserInput{
		Email: "a@test.com", Password: "longenough", Role: models.RoleEditor,
	}); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for non-admin, got %v", err)
	}
}

func TestUserUpdate_OwnRoleChangeForbidden(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := adminSession()

	self, err := env.services.User.Create(ctx, admin, service.CreateUserInput{
		Email:    "boss@test.com",
		Name:     "Boss",
		Password: "correct horse",
		Role:     models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	actor := &service.Session{UserID: self.ID, Email: self.Email, Name: self.Name, Role: self.Role}

	demoted := models.RoleEditor
	_, err = env.services.User.Update(ctx, actor, self.ID, service.UpdateUserInput{Role: &demoted})
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden for own role change, got %v", err)
	}

	// Renaming yourself is fine
	name := "Still Boss"
	updated, err := env.services.User.Update(ctx, actor, self.ID, service.UpdateUserInput{Name: &name})
	if err != nil {
		t.Fatalf("Name update failed: %v", err)
	}
	if updated.Name != "Still Boss" || updated.Role != models.RoleAdmin {
		t.Errorf("Expected name change only, got name=%s role=%s", updated.Name, updated.Role)
	}

	// Changing someone else's role is fine
	other, _ := env.services.User.Create(ctx, actor, service.CreateUserInput{
		Email: "peon@test.com", Name: "Peon", Password: "correct horse", Role: models.RoleViewer,
	})
	promoted := models.RoleEditor
	updated, err = env.services.User.Update(ctx, actor, other.ID, service.UpdateUserInput{Role: &promoted})
	if err != nil {
		t.Fatalf("Role update failed: %v", err)
	}
	if updated.Role != models.RoleEditor {
		t.Errorf("Expected role EDITOR, got %s", updated.Role)
	}
}

func TestUserDelete_SelfProtection(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := adminSession()

	if err := env.services.User.Delete(ctx, admin, admin.UserID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for self-delete, got %v", err)
	}
}

func TestUserDelete_OwnedArticlesConflict(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := adminSession()

	author, err := env.services.User.Create(ctx, admin, service.CreateUserInput{
		Email:    "author@test.com",
		Name:     "Author",
		Password: "correct horse",
		Role:     models.RoleEditor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	authorSession := &service.Session{UserID: author.ID, Email: author.Email, Role: author.Role}
	article, err := env.services.Article.Create(ctx, authorSession, service.CreateArticleInput{Title: "Owned"})
	if err != nil {
		t.Fatalf("Article create failed: %v", err)
	}

	if err := env.services.User.Delete(ctx, admin, author.ID); !errors.Is(err, service.ErrConflict) {
		t.Fatalf("Expected ErrConflict while articles remain, got %v", err)
	}

	if err := env.services.Article.Delete(ctx, admin, article.ID); err != nil {
		t.Fatalf("Article delete failed: %v", err)
	}
	if err := env.services.User.Delete(ctx, admin, author.ID); err != nil {
		t.Fatalf("Expected delete to succeed after articles removed, got %v", err)
	}

	if err := env.services.User.Delete(ctx, admin, author.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for repeat delete, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := adminSession()

	user, err := env.services.User.Create(ctx, admin, service.CreateUserInput{
		Email:    "me@test.com",
		Name:     "Me",
		Password: "old password",
		Role:     models.RoleEditor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	actor := &service.Session{UserID: user.ID, Email: user.Email, Role: user.Role}

	if err := env.services.User.ChangePassword(ctx, actor, "wrong password", "new password"); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for wrong current password, got %v", err)
	}
	if err := env.services.User.ChangePassword(ctx, actor, "old password", "short"); !errors.Is(err, service.ErrValidation) {
		t.Errorf("Expected ErrValidation for short new password, got %v", err)
	}

	if err := env.services.User.ChangePassword(ctx, actor, "old password", "new password"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	// The new password works for login, the old one does not
	if _, _, err := env.services.Auth.Login(ctx, "me@test.com", "new password"); err != nil {
		t.Errorf("Login with new password failed: %v", err)
	}
	if _, _, err := env.services.Auth.Login(ctx, "me@test.com", "old password"); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for old password, got %v", err)
	}
}
