package api

import (
	"errors"
	"net/http"

	"github.com/cms-admin-api/internal/service"
	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy to HTTP status codes
// and the structured failure body callers check instead of relying
// on transport errors.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, gin.H{"success": false, "error": message})
}
