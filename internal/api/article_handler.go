package api

import (
	"net/http"

	"github.com/cms-admin-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article CRUD and version history endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "articles").Logger(),
	}
}

// ListPublished handles GET /v1/articles
func (h *ArticleHandler) ListPublished(c *gin.Context) {
	articles, err := h.services.Article.List(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "articles": articles})
}

// GetBySlug handles GET /v1/articles/:slug
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article, err := h.services.Article.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "article": article})
}

// ListAll handles GET /v1/admin/articles
func (h *ArticleHandler) ListAll(c *gin.Context) {
	articles, err := h.services.Article.List(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "articles": articles})
}

// Get handles GET /v1/admin/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.services.Article.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "article": article})
}

// Create handles POST /v1/admin/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var in service.CreateArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), currentSession(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "articleId": article.ID, "slug": article.Slug})
}

// Update handles PUT /v1/admin/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var in service.UpdateArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	article, err := h.services.Article.Update(c.Request.Context(), currentSession(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "articleId": article.ID, "slug": article.Slug})
}

// Delete handles DELETE /v1/admin/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Article.Delete(c.Request.Context(), currentSession(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListVersions handles GET /v1/admin/articles/:id/versions
func (h *ArticleHandler) ListVersions(c *gin.Context) {
	versions, err := h.services.Article.ListVersions(c.Request.Context(), currentSession(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "versions": versions})
}

// RestoreVersion handles POST /v1/admin/articles/:id/versions/:versionId/restore
func (h *ArticleHandler) RestoreVersion(c *gin.Context) {
	article, err := h.services.Article.RestoreVersion(
		c.Request.Context(), currentSession(c), c.Param("id"), c.Param("versionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "articleId": article.ID})
}

// DeleteVersion handles DELETE /v1/admin/articles/:id/versions/:versionId
func (h *ArticleHandler) DeleteVersion(c *gin.Context) {
	err := h.services.Article.DeleteVersion(
		c.Request.Context(), currentSession(c), c.Param("id"), c.Param("versionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
