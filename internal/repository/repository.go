package repository

import (
	"context"
	"time"

	"github.com/cms-admin-api/internal/database"
	"github.com/cms-admin-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	List(ctx context.Context, publishedOnly bool) ([]*models.Article, error)
	IncrementViews(ctx context.Context, id string) error
	CountByAuthor(ctx context.Context, authorID string) (int, error)
	ImageInUse(ctx context.Context, image string) (bool, error)
}

// VersionRepository defines the interface for article version snapshots.
// Versions are immutable: there is no update operation.
type VersionRepository interface {
	Create(ctx context.Context, version *models.ArticleVersion) error
	GetByID(ctx context.Context, id string) (*models.ArticleVersion, error)
	ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleVersion, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID string, approvedOnly bool) ([]*models.Comment, error)
	List(ctx context.Context, approved *bool) ([]*models.Comment, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}

// AuditFilter narrows audit log queries
type AuditFilter struct {
	Action models.AuditAction // empty means any
	Entity string             // empty means any
	Page   int                // 1-based
	Limit  int
}

// AuditRepository defines the interface for the append-only audit log
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
	List(ctx context.Context, filter AuditFilter) ([]*models.AuditLogEntry, int, error)
	CountByAction(ctx context.Context) (map[models.AuditAction]int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// MediaRepository defines the interface for media library records
type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, id string) (*models.Media, error)
	List(ctx context.Context) ([]*models.Media, error)
	Delete(ctx context.Context, id string) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Article ArticleRepository
	Version VersionRepository
	Comment CommentRepository
	Audit   AuditRepository
	Media   MediaRepository

	db *database.DB
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Version: NewVersionRepo(db),
		Comment: NewCommentRepo(db),
		Audit:   NewAuditRepo(db),
		Media:   NewMediaRepo(db),
		db:      db,
	}
}

// WithinTx runs fn with a Repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *Repositories) WithinTx(ctx context.Context, fn func(tx *Repositories) error) error {
	if r.db == nil {
		// Mock-backed Repositories in tests have no transactional store;
		// the callback still runs against the same repositories.
		return fn(r)
	}
	return r.db.WithinTx(ctx, func(q database.Querier) error {
		return fn(&Repositories{
			User:    NewUserRepo(q),
			Article: NewArticleRepo(q),
			Version: NewVersionRepo(q),
			Comment: NewCommentRepo(q),
			Audit:   NewAuditRepo(q),
			Media:   NewMediaRepo(q),
		})
	})
}
