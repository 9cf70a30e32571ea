// Package handlers implements the HTTP handlers of the TMDB caching proxy.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/amaumene/gotmdb/internal/constants"
	"github.com/amaumene/gotmdb/internal/services"
	"github.com/amaumene/gotmdb/pkg/logger"
)

// Handler serves TMDB data through the service container.
type Handler struct {
	services *services.Container
	logger   logger.Logger
}

// New creates a new Handler with the provided services.
func New(services *services.Container) *Handler {
	log := services.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		services: services,
		logger:   log,
	}
}

// RegisterRoutes registers all HTTP routes of the proxy.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.handleHealth)

	person := r.Group("/person")
	person.GET("/changes", h.handleChangedPeople)
	person.GET("/:id", h.handlePerson)
	person.GET("/:id/credits", h.handlePersonCredits)
	person.GET("/:id/tv_credits", h.handlePersonTVCredits)
	person.GET("/:id/images", h.handlePersonImages)
	person.GET("/:id/changes", h.handlePersonChanges)

	movie := r.Group("/movie")
	movie.GET("/changes", h.handleChangedMovies)
	movie.GET("/:id", h.handleMovie)
	movie.GET("/:id/credits", h.handleMovieCredits)
	movie.GET("/:id/images", h.handleMovieImages)
	movie.GET("/:id/changes", h.handleMovieChanges)

	r.GET("/image", h.handleImage)
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    constants.AppName,
		"version": constants.AppVersion,
	})
}

// fetchFunc produces the value a route serves.
type fetchFunc func(ctx context.Context) (interface{}, error)

// serve answers from the response cache when possible, otherwise runs
// fetch with the request timeout and caches the encoded result.
func (h *Handler) serve(c *gin.Context, fetch fetchFunc) {
	key := cacheKey(c.Request.URL)
	if h.services.Responses != nil {
		if body, ok := h.services.Responses.Get(key); ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), constants.RequestTimeout)
	defer cancel()

	value, err := fetch(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}

	body, err := json.Marshal(value)
	if err != nil {
		h.logger.Errorf("[Handler] failed to encode %s: %v", c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode response"})
		return
	}

	if h.services.Responses != nil {
		h.services.Responses.Set(key, body)
		c.Header("X-Cache", "MISS")
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id " + strconv.Quote(c.Param("id"))})
		return 0, false
	}
	return id, true
}
