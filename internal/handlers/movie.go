package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
)

func (h *Handler) handleMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	opts, err := queryOptions(c, true)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.serve(c, func(ctx context.Context) (interface{}, error) {
		return h.services.TMDB.GetMovie(ctx, id, opts...)
	})
}

func (h *Handler) handleMovieCredits(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	opts, err := queryOptions(c, false)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.serve(c, func(ctx context.Context) (interface{}, error) {
		return h.services.TMDB.GetMovieCredits(ctx, id, opts...)
	})
}

func (h *Handler) handleMovieImages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.serve(c, func(ctx context.Context) (interface{}, error) {
		return h.services.TMDB.GetMovieImages(ctx, id)
	})
}

func (h *Handler) handleMovieChanges(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	opts, err := changeOptions(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.serve(c, func(ctx context.Context) (interface{}, error) {
		changes, err := h.services.TMDB.GetMovieChanges(ctx, id, opts...)
		if err != nil {
			return nil, err
		}
		return gin.H{"changes": changes}, nil
	})
}

func (h *Handler) handleChangedMovies(c *gin.Context) {
	opts, err := changeOptions(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.serve(c, func(ctx context.Context) (interface{}, error) {
		return h.services.TMDB.GetChangedMovies(ctx, opts...)
	})
}
