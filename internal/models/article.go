package models

import (
	"time"
)

// Article represents a blog/content entry with publish state
type Article struct {
	ID          string     `json:"id" db:"id"`
	Slug        string     `json:"slug" db:"slug"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Content     string     `json:"content" db:"content"`
	Image       string     `json:"image,omitempty" db:"image"`
	Tags        []string   `json:"tags" db:"-"` // Stored as JSON string in DB
	TagsJSON    string     `json:"-" db:"tags"` // For DB storage
	Published   bool       `json:"published" db:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	Views       int        `json:"views" db:"views"`
	AuthorID    string     `json:"author_id" db:"author_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ArticleVersion is an immutable snapshot of an article's title/content.
// Rows are only ever created or deleted, never updated.
type ArticleVersion struct {
	ID          string    `json:"id" db:"id"`
	ArticleID   string    `json:"article_id" db:"article_id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	CreatedByID string    `json:"created_by_id" db:"created_by_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
