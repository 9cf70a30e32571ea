package services

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/amaumene/gotmdb/internal/constants"
	"github.com/amaumene/gotmdb/pkg/logger"
	"github.com/amaumene/gotmdb/pkg/tmdb"
)

// ConfigurationSource fetches the TMDB API configuration.
type ConfigurationSource interface {
	GetConfiguration(ctx context.Context) (*tmdb.Configuration, error)
}

// ImageService builds image URLs from a configuration fetched once and
// reused for constants.ConfigurationTTL.
type ImageService struct {
	source ConfigurationSource
	logger logger.Logger
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	config    *tmdb.ImageConfig
	fetchedAt time.Time
}

func NewImageService(source ConfigurationSource, log logger.Logger) *ImageService {
	return &ImageService{
		source: source,
		logger: log,
		ttl:    constants.ConfigurationTTL,
		now:    time.Now,
	}
}

// Config returns the cached image configuration, refreshing it when stale.
// A failed refresh falls back to the stale copy when there is one.
func (s *ImageService) Config(ctx context.Context) (*tmdb.ImageConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		return s.config, nil
	}

	cfg, err := s.source.GetConfiguration(ctx)
	if err != nil {
		if s.config != nil {
			s.logger.Warnf("[Images] failed to refresh configuration, keeping previous copy: %v", err)
			return s.config, nil
		}
		return nil, err
	}

	s.config = &cfg.Images
	s.fetchedAt = s.now()
	s.logger.Debugf("[Images] configuration refreshed (%d size tokens)", len(s.config.Sizes()))
	return s.config, nil
}

// URL composes the image URL of filePath at size.
func (s *ImageService) URL(ctx context.Context, size, filePath string, secure bool) (*url.URL, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.URL(size, filePath, secure)
}
