package models

import (
	"time"
)

// Media represents an uploaded file in the media library
type Media struct {
	ID           string    `json:"id" db:"id"`
	Filename     string    `json:"filename" db:"filename"`
	Path         string    `json:"path" db:"path"`
	Size         int64     `json:"size" db:"size"`
	MimeType     string    `json:"mime_type" db:"mime_type"`
	UploadedByID string    `json:"uploaded_by_id" db:"uploaded_by_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
