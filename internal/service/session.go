package service

import (
	"github.com/cms-admin-api/internal/models"
)

// Session is the authenticated identity attached to a request
type Session struct {
	UserID string      `json:"id"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
}

// IsAdmin reports whether the session holds the ADMIN role
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// requireSession fails with ErrUnauthorized when no session is present
func requireSession(actor *Session) error {
	if actor == nil || actor.UserID == "" {
		return ErrUnauthorized
	}
	return nil
}

// requireAdmin fails unless the actor holds the ADMIN role
func requireAdmin(actor *Session) error {
	if err := requireSession(actor); err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// requireModerator fails unless the actor is an admin or editor
func requireModerator(actor *Session) error {
	if err := requireSession(actor); err != nil {
		return err
	}
	switch actor.Role {
	case models.RoleAdmin, models.RoleEditor:
		return nil
	default:
		return ErrForbidden
	}
}

// requireOwnerOrAdmin gates resource-scoped mutations: the actor must
// own the resource or hold the ADMIN role.
func requireOwnerOrAdmin(actor *Session, ownerID string) error {
	if err := requireSession(actor); err != nil {
		return err
	}
	if actor.UserID == ownerID || actor.Role == models.RoleAdmin {
		return nil
	}
	return ErrForbidden
}
