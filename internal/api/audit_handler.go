package api

import (
	"net/http"
	"strconv"

	"github.com/cms-admin-api/internal/models"
	"github.com/cms-admin-api/internal/repository"
	"github.com/cms-admin-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuditHandler handles admin audit log endpoints
type AuditHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(services *service.Services, log zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		services: services,
		log:      log.With().Str("handler", "audit").Logger(),
	}
}

// List handles GET /v1/admin/audit?action=&entity=&page=&limit=
func (h *AuditHandler) List(c *gin.Context) {
	filter := repository.AuditFilter{
		Action: models.AuditAction(c.Query("action")),
		Entity: c.Query("entity"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	page, err := h.services.Audit.List(c.Request.Context(), currentSession(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Stats handles GET /v1/admin/audit/stats
func (h *AuditHandler) Stats(c *gin.Context) {
	stats, err := h.services.Audit.Stats(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
