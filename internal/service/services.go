package service

import (
	"context"

	"github.com/cms-admin-api/internal/config"
	"github.com/cms-admin-api/internal/models"
	"github.com/cms-admin-api/internal/repository"
	"github.com/rs/zerolog"
)

// AuthService authenticates users and issues session tokens
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ParseToken(token string) (*Session, error)
}

// ArticleService owns article CRUD, slug resolution and version history
type ArticleService interface {
	Create(ctx context.Context, actor *Session, in CreateArticleInput) (*models.Article, error)
	Update(ctx context.Context, actor *Session, id string, in UpdateArticleInput) (*models.Article, error)
	Delete(ctx context.Context, actor *Session, id string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, publishedOnly bool) ([]*models.Article, error)
	ListVersions(ctx context.Context, actor *Session, articleID string) ([]*models.ArticleVersion, error)
	RestoreVersion(ctx context.Context, actor *Session, articleID, versionID string) (*models.Article, error)
	DeleteVersion(ctx context.Context, actor *Session, articleID, versionID string) error
}

// CommentService owns public submission and the moderation workflow
type CommentService interface {
	Submit(ctx context.Context, articleID, author, email, content string) (*models.Comment, error)
	ListApproved(ctx context.Context, articleID string) ([]*models.Comment, error)
	List(ctx context.Context, actor *Session, approved *bool) ([]*models.Comment, error)
	Approve(ctx context.Context, actor *Session, id string) error
	Unapprove(ctx context.Context, actor *Session, id string) error
	Delete(ctx context.Context, actor *Session, id string) error
	ApproveMany(ctx context.Context, actor *Session, ids []string) *BulkResult
	DeleteMany(ctx context.Context, actor *Session, ids []string) *BulkResult
}

// UserService owns admin user management and password changes
type UserService interface {
	List(ctx context.Context, actor *Session) ([]*models.User, error)
	Create(ctx context.Context, actor *Session, in CreateUserInput) (*models.User, error)
	Update(ctx context.Context, actor *Session, id string, in UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, actor *Session, id string) error
	ChangePassword(ctx context.Context, actor *Session, currentPassword, newPassword string) error
}

// Recorder is the best-effort audit sink. Record never fails the
// caller: any storage error is logged and swallowed.
type Recorder interface {
	Record(ctx context.Context, action models.AuditAction, entity, entityID, userID, changes string)
}

// AuditService is the Recorder plus the admin query surface
type AuditService interface {
	Recorder
	List(ctx context.Context, actor *Session, filter repository.AuditFilter) (*AuditPage, error)
	Stats(ctx context.Context, actor *Session) (*models.AuditStats, error)
}

// MediaService owns media library records and the deletion usage check
type MediaService interface {
	Save(ctx context.Context, actor *Session, media *models.Media) error
	List(ctx context.Context, actor *Session) ([]*models.Media, error)
	Delete(ctx context.Context, actor *Session, id string) (*models.Media, error)
}

// Services holds all service interfaces
type Services struct {
	Auth    AuthService
	Article ArticleService
	Comment CommentService
	User    UserService
	Audit   AuditService
	Media   MediaService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	auditSvc := newAuditService(repos.Audit, log)

	return &Services{
		Auth:    newAuthService(repos.User, auditSvc, &cfg.Auth, log),
		Article: newArticleService(repos, auditSvc, log),
		Comment: newCommentService(repos, auditSvc, log),
		User:    newUserService(repos, auditSvc, cfg.Auth.BcryptCost, log),
		Audit:   auditSvc,
		Media:   newMediaService(repos, auditSvc, log),
	}
}
