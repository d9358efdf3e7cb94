package mocks

import (
	"context"
	"strings"
	"time"

	"github.com/cms-admin-api/internal/models"
	"github.com/cms-admin-api/internal/repository"
)

// NewRepositories bundles fresh mocks into a repository.Repositories
// for service tests.
func NewRepositories() (*repository.Repositories, *MockUserRepository, *MockArticleRepository, *MockVersionRepository, *MockCommentRepository, *MockAuditRepository, *MockMediaRepository) {
	users := NewMockUserRepository()
	articles := NewMockArticleRepository()
	versions := NewMockVersionRepository()
	comments := NewMockCommentRepository()
	audits := NewMockAuditRepository()
	media := NewMockMediaRepository()

	repos := &repository.Repositories{
		User:    users,
		Article: articles,
		Version: versions,
		Comment: comments,
		Audit:   audits,
		Media:   media,
	}
	return repos, users, articles, versions, comments, audits, media
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[string]*models.User
	CreateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if u, ok := m.Users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	delete(m.Users, id)
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.Users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := m.GetByEmail(ctx, email)
	return u != nil, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	return users, nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles    map[string]*models.Article
	CreateError error
	UpdateError error
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[string]*models.Article)}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	copied := *article
	m.Articles[article.ID] = &copied
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	copied := *article
	m.Articles[article.ID] = &copied
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	for _, a := range m.Articles {
		if a.Slug == slug {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	for _, a := range m.Articles {
		if a.Slug == slug && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockArticleRepository) List(ctx context.Context, publishedOnly bool) ([]*models.Article, error) {
	var articles []*models.Article
	for _, a := range m.Articles {
		if publishedOnly && !a.Published {
			continue
		}
		copied := *a
		articles = append(articles, &copied)
	}
	return articles, nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id string) error {
	if a, ok := m.Articles[id]; ok {
		a.Views++
	}
	return nil
}

func (m *MockArticleRepository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	count := 0
	for _, a := range m.Articles {
		if a.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (m *MockArticleRepository) ImageInUse(ctx context.Context, image string) (bool, error) {
	for _, a := range m.Articles {
		if a.Image == image {
			return true, nil
		}
	}
	return false, nil
}

// MockVersionRepository is a mock implementation of VersionRepository.
// Versions keep insertion order; ListByArticle returns newest first.
type MockVersionRepository struct {
	Versions    []*models.ArticleVersion
	CreateError error
}

func NewMockVersionRepository() *MockVersionRepository {
	return &MockVersionRepository{}
}

func (m *MockVersionRepository) Create(ctx context.Context, version *models.ArticleVersion) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	copied := *version
	m.Versions = append(m.Versions, &copied)
	return nil
}

func (m *MockVersionRepository) GetByID(ctx context.Context, id string) (*models.ArticleVersion, error) {
	for _, v := range m.Versions {
		if v.ID == id {
			copied := *v
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockVersionRepository) ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleVersion, error) {
	var versions []*models.ArticleVersion
	for i := len(m.Versions) - 1; i >= 0; i-- {
		if m.Versions[i].ArticleID == articleID {
			copied := *m.Versions[i]
			versions = append(versions, &copied)
		}
	}
	return versions, nil
}

func (m *MockVersionRepository) Delete(ctx context.Context, id string) error {
	for i, v := range m.Versions {
		if v.ID == id {
			m.Versions = append(m.Versions[:i], m.Versions[i+1:]...)
			return nil
		}
	}
	return nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments    map[string]*models.Comment
	CreateError error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[string]*models.Comment)}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	copied := *comment
	m.Comments[comment.ID] = &copied
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	c, ok := m.Comments[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID string, approvedOnly bool) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, c := range m.Comments {
		if c.ArticleID != articleID {
			continue
		}
		if approvedOnly && !c.Approved {
			continue
		}
		copied := *c
		comments = append(comments, &copied)
	}
	return comments, nil
}

func (m *MockCommentRepository) List(ctx context.Context, approved *bool) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, c := range m.Comments {
		if approved != nil && c.Approved != *approved {
			continue
		}
		copied := *c
		comments = append(comments, &copied)
	}
	return comments, nil
}

func (m *MockCommentRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	if c, ok := m.Comments[id]; ok {
		c.Approved = approved
	}
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	delete(m.Comments, id)
	return nil
}

// MockAuditRepository is a mock implementation of AuditRepository
type MockAuditRepository struct {
	Entries     []*models.AuditLogEntry
	CreateError error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	copied := *entry
	m.Entries = append(m.Entries, &copied)
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter repository.AuditFilter) ([]*models.AuditLogEntry, int, error) {
	var matched []*models.AuditLogEntry
	for i := len(m.Entries) - 1; i >= 0; i-- {
		e := m.Entries[i]
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.Entity != "" && e.Entity != filter.Entity {
			continue
		}
		copied := *e
		matched = append(matched, &copied)
	}

	total := len(matched)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *MockAuditRepository) CountByAction(ctx context.Context) (map[models.AuditAction]int, error) {
	counts := make(map[models.AuditAction]int)
	for _, e := range m.Entries {
		counts[e.Action]++
	}
	return counts, nil
}

func (m *MockAuditRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	count := 0
	for _, e := range m.Entries {
		if !e.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// MockMediaRepository is a mock implementation of MediaRepository
type MockMediaRepository struct {
	Items       map[string]*models.Media
	CreateError error
}

func NewMockMediaRepository() *MockMediaRepository {
	return &MockMediaRepository{Items: make(map[string]*models.Media)}
}

func (m *MockMediaRepository) Create(ctx context.Context, media *models.Media) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	copied := *media
	m.Items[media.ID] = &copied
	return nil
}

func (m *MockMediaRepository) GetByID(ctx context.Context, id string) (*models.Media, error) {
	item, ok := m.Items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (m *MockMediaRepository) List(ctx context.Context) ([]*models.Media, error) {
	items := make([]*models.Media, 0, len(m.Items))
	for _, item := range m.Items {
		copied := *item
		items = append(items, &copied)
	}
	return items, nil
}

func (m *MockMediaRepository) Delete(ctx context.Context, id string) error {
	delete(m.Items, id)
	return nil
}
