package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/gotmdb/pkg/tmdb"
)

// statusFor maps a service error to the proxy's HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tmdb.ErrInvalidArgument), errors.Is(err, tmdb.ErrInvalidSizeToken):
		return http.StatusBadRequest
	case errors.Is(err, tmdb.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		// client went away
		return 499
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Errorf("[Handler] %s failed: %v", c.Request.URL.Path, err)
	} else {
		h.logger.Debugf("[Handler] %s rejected with %d: %v", c.Request.URL.Path, status, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
