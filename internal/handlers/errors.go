package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError writes the HTTP status mapped from err. Internal failures get
// the generic fallback message so store details never leak to clients.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}
