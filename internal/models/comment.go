package models

import (
	"time"
)

// Comment represents a visitor comment on an article.
// Comments start unapproved and only become publicly visible
// after a moderator approves them.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	Author    string    `json:"author" db:"author"`
	Email     string    `json:"email" db:"email"`
	Content   string    `json:"content" db:"content"`
	Approved  bool      `json:"approved" db:"approved"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MaxCommentLength is the maximum allowed characters in a comment body
const MaxCommentLength = 4000
