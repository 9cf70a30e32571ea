package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/gotmdb/internal/constants"
	"github.com/amaumene/gotmdb/pkg/tmdb"
)

// handleImage resolves an image URL. With redirect=true it answers with a
// redirect to the CDN instead of a JSON body.
func (h *Handler) handleImage(c *gin.Context) {
	size := c.Query(constants.ParamSize)
	path := c.Query(constants.ParamPath)

	secure := true
	if raw := c.Query(constants.ParamSecure); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeError(c, tmdb.NewInvalidArgumentError("invalid secure flag "+strconv.Quote(raw)))
			return
		}
		secure = v
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), constants.RequestTimeout)
	defer cancel()

	u, err := h.services.Images.URL(ctx, size, path, secure)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if redirect, _ := strconv.ParseBool(c.Query("redirect")); redirect {
		c.Redirect(http.StatusFound, u.String())
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": u.String()})
}
