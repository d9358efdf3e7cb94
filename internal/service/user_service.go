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
	"golang.org/x/crypto/bcrypt"
)

// CreateUserInput carries the fields for a new user
type CreateUserInput struct {
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// UpdateUserInput carries the fields for a user update.
// Nil pointers mean "leave unchanged".
type UpdateUserInput struct {
	Name *string      `json:"name"`
	Role *models.Role `json:"role"`
}

const minPasswordLength = 8

// userService is the concrete implementation of UserService
type userService struct {
	repos      *repository.Repositories
	audit      Recorder
	bcryptCost int
	log        zerolog.Logger
}

func newUserService(repos *repository.Repositories, audit Recorder, bcryptCost int, log zerolog.Logger) *userService {
	return &userService{
		repos:      repos,
		audit:      audit,
		bcryptCost: bcryptCost,
		log:        log.With().Str("component", "users").Logger(),
	}
}

// List returns all users. Admin only.
func (s *userService) List(ctx context.Context, actor *Session) ([]*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.repos.User.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Create adds a new user with a hashed password. Admin only.
func (s *userService) Create(ctx context.Context, actor *Session, in CreateUserInput) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}

	exists, err := s.repos.User.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email %s already registered", ErrConflict, in.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repos.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionCreate, "user", user.ID, actor.UserID,
		fmt.Sprintf("created user %s with role %s", user.Email, user.Role))

	return user, nil
}

// Update changes a user's name or role. Admin only; an admin may not
// change their own role.
func (s *userService) Update(ctx context.Context, actor *Session, id string, in UpdateUserInput) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}

	var changed []string
	if in.Name != nil && *in.Name != user.Name {
		user.Name = *in.Name
		changed = append(changed, "name")
	}
	if in.Role != nil && *in.Role != user.Role {
		if !in.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *in.Role)
		}
		if id == actor.UserID {
			return nil, fmt.Errorf("%w: cannot change own role", ErrForbidden)
		}
		user.Role = *in.Role
		changed = append(changed, "role")
	}

	if len(changed) == 0 {
		return user, nil
	}

	if err := s.repos.User.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionUpdate, "user", user.ID, actor.UserID,
		fmt.Sprintf("updated %s", strings.Join(changed, ", ")))

	return user, nil
}

// Delete removes a user. Admin only; self-deletion is rejected, and
// so is deleting a user who still owns articles, which would orphan
// the author foreign keys.
func (s *userService) Delete(ctx context.Context, actor *Session, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if id == actor.UserID {
		return fmt.Errorf("%w: cannot delete own account", ErrForbidden)
	}

	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, id)
	}

	owned, err := s.repos.Article.CountByAuthor(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count authored articles: %w", err)
	}
	if owned > 0 {
		return fmt.Errorf("%w: user still owns %d articles, reassign or remove them first", ErrConflict, owned)
	}

	if err := s.repos.User.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionDelete, "user", id, actor.UserID,
		fmt.Sprintf("deleted user %s", user.Email))

	return nil
}

// ChangePassword replaces the acting user's own password after
// verifying the current one.
func (s *userService) ChangePassword(ctx context.Context, actor *Session, currentPassword, newPassword string) error {
	if err := requireSession(actor); err != nil {
		return err
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	user, err := s.repos.User.GetByID(ctx, actor.UserID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, actor.UserID)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrForbidden)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repos.User.UpdatePassword(ctx, actor.UserID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionUpdate, "user", actor.UserID, actor.UserID, "changed password")

	return nil
}
