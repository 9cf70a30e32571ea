package services

import (
	"fmt"

	"github.com/amaumene/gotmdb/internal/cache"
	"github.com/amaumene/gotmdb/internal/config"
	"github.com/amaumene/gotmdb/pkg/httputil"
	"github.com/amaumene/gotmdb/pkg/logger"
	"github.com/amaumene/gotmdb/pkg/ratelimiter"
	"github.com/amaumene/gotmdb/pkg/tmdb"
)

// NewTMDB builds a TMDB client from the application configuration.
func NewTMDB(cfg *config.Config, log logger.Logger) (*tmdb.Client, error) {
	client, err := tmdb.NewClient(cfg.APIKey,
		tmdb.WithBaseURL(cfg.BaseURL),
		tmdb.WithHTTPClient(httputil.NewHTTPClient(cfg.Timeout)),
		tmdb.WithRateLimiter(ratelimiter.NewTokenBucket(int64(cfg.RateBurst), int64(cfg.RateLimit))),
		tmdb.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create TMDB client: %w", err)
	}
	return client, nil
}

// NewContainer wires every service the proxy needs.
func NewContainer(cfg *config.Config, log logger.Logger) (*Container, error) {
	client, err := NewTMDB(cfg, log)
	if err != nil {
		return nil, err
	}

	c := &Container{
		TMDB:   client,
		Images: NewImageService(client, log),
		Logger: log,
	}
	if cfg.CacheEnabled() {
		c.Responses = cache.New[[]byte](cfg.CacheSize, cfg.CacheTTL)
	}

	log.Infof("[Services] TMDB client ready (base: %s, rate: %d/s, cache: %d entries)", cfg.BaseURL, cfg.RateLimit, cfg.CacheSize)
	return c, nil
}
