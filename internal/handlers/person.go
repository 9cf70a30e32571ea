package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
)

func (h *Handler) handlePerson(c *gin.Context) {
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
		return h.services.TMDB.GetPerson(ctx, id, opts...)
	})
}

func (h *Handler) handlePersonCredits(c *gin.Context) {
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
		return h.services.TMDB.GetPersonCredits(ctx, id, opts...)
	})
}

func (h *Handler) handlePersonTVCredits(c *gin.Context) {
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
		return h.services.TMDB.GetPersonTVCredits(ctx, id, opts...)
	})
}

func (h *Handler) handlePersonImages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.serve(c, func(ctx context.Context) (interface{}, error) {
		return h.services.TMDB.GetPersonImages(ctx, id)
	})
}

func (h *Handler) handlePersonChanges(c *gin.Context) {
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
		changes, err := h.services.TMDB.GetPersonChanges(ctx, id, opts...)
		if err != nil {
			return nil, err
		}
		return gin.H{"changes": changes}, nil
	})
}

func (h *Handler) handleChangedPeople(c *gin.Context) {
	opts, err := changeOptions(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.serve(c, func(ctx context.Context) (interface{}, error) {
		return h.services.TMDB.GetChangedPeople(ctx, opts...)
	})
}
