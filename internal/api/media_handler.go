package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cms-admin-api/internal/config"
	"github.com/cms-admin-api/internal/models"
	"github.com/cms-admin-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MediaHandler handles media library endpoints and file storage
type MediaHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "media").Logger(),
	}
}

// List handles GET /v1/admin/media
func (h *MediaHandler) List(c *gin.Context) {
	items, err := h.services.Media.List(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "media": items})
}

// Upload handles POST /v1/admin/media
func (h *MediaHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file upload is required"})
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Upload.MaxSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("file too large, max size is %d MB", h.cfg.Upload.MaxSize/(1024*1024)),
		})
		return
	}

	if err := os.MkdirAll(h.cfg.Upload.Dir, 0755); err != nil {
		h.log.Error().Err(err).Msg("Failed to create upload directory")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save file"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	path := filepath.Join(h.cfg.Upload.Dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create file")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save file"})
		return
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to copy file")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save file"})
		return
	}

	media := &models.Media{
		ID:           uuid.New().String(),
		Filename:     header.Filename,
		Path:         path,
		Size:         written,
		MimeType:     header.Header.Get("Content-Type"),
		UploadedByID: currentSession(c).UserID,
	}
	if err := h.services.Media.Save(c.Request.Context(), currentSession(c), media); err != nil {
		os.Remove(path)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "mediaId": media.ID, "path": media.Path})
}

// Delete handles DELETE /v1/admin/media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	media, err := h.services.Media.Delete(c.Request.Context(), currentSession(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	// Best-effort file removal; the record is already gone
	if err := os.Remove(media.Path); err != nil && !os.IsNotExist(err) {
		h.log.Warn().Err(err).Str("path", media.Path).Msg("Failed to remove media file")
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
