package api

import (
	"net/http"
	"strconv"

	"github.com/cms-admin-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles public comment submission and moderation
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comments").Logger(),
	}
}

// ListForArticle handles GET /v1/articles/:slug/comments — approved only
func (h *CommentHandler) ListForArticle(c *gin.Context) {
	article, err := h.services.Article.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.services.Comment.ListApproved(c.Request.Context(), article.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "comments": comments})
}

// Submit handles POST /v1/articles/:slug/comments
func (h *CommentHandler) Submit(c *gin.Context) {
	var req struct {
		Author  string `json:"author"`
		Email   string `json:"email"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	article, err := h.services.Article.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	comment, err := h.services.Comment.Submit(c.Request.Context(), article.ID, req.Author, req.Email, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	// Pending until a moderator approves
	c.JSON(http.StatusCreated, gin.H{"success": true, "commentId": comment.ID})
}

// List handles GET /v1/admin/comments?approved=true|false
func (h *CommentHandler) List(c *gin.Context) {
	var approved *bool
	if raw := c.Query("approved"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "approved must be true or false"})
			return
		}
		approved = &parsed
	}

	comments, err := h.services.Comment.List(c.Request.Context(), currentSession(c), approved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "comments": comments})
}

// Approve handles POST /v1/admin/comments/:id/approve
func (h *CommentHandler) Approve(c *gin.Context) {
	if err := h.services.Comment.Approve(c.Request.Context(), currentSession(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Unapprove handles POST /v1/admin/comments/:id/unapprove
func (h *CommentHandler) Unapprove(c *gin.Context) {
	if err := h.services.Comment.Unapprove(c.Request.Context(), currentSession(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete handles DELETE /v1/admin/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.services.Comment.Delete(c.Request.Context(), currentSession(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// BulkApprove handles POST /v1/admin/comments/bulk/approve
func (h *CommentHandler) BulkApprove(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	result := h.services.Comment.ApproveMany(c.Request.Context(), currentSession(c), ids)
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

// BulkDelete handles POST /v1/admin/comments/bulk/delete
func (h *CommentHandler) BulkDelete(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	result := h.services.Comment.DeleteMany(c.Request.Context(), currentSession(c), ids)
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

func (h *CommentHandler) bindIDs(c *gin.Context) ([]string, bool) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ids are required"})
		return nil, false
	}
	return req.IDs, true
}
