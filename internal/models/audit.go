package models

import (
	"time"
)

// AuditAction is the kind of mutation an audit entry records
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionLogin  AuditAction = "LOGIN"
)

// Valid reports whether a is a known action
func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionLogin:
		return true
	}
	return false
}

// AuditLogEntry records who did what to which entity, when.
// Entries are append-only and never mutated by normal flows.
type AuditLogEntry struct {
	ID        string      `json:"id" db:"id"`
	Action    AuditAction `json:"action" db:"action"`
	Entity    string      `json:"entity" db:"entity"`
	EntityID  string      `json:"entity_id" db:"entity_id"`
	UserID    string      `json:"user_id" db:"user_id"`
	Changes   string      `json:"changes" db:"changes"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// AuditStats summarizes audit activity for the dashboard
type AuditStats struct {
	Total       int                 `json:"total"`
	ByAction    map[AuditAction]int `json:"by_action"`
	Last24Hours int                 `json:"last_24_hours"`
}
