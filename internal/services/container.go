// Package services provides dependency injection container for application services.
package services

import (
	"context"

	"github.com/amaumene/gotmdb/internal/cache"
	"github.com/amaumene/gotmdb/pkg/logger"
	"github.com/amaumene/gotmdb/pkg/tmdb"
)

// Container holds all application services for dependency injection.
type Container struct {
	TMDB   MetadataService
	Images *ImageService
	// Responses caches encoded proxy responses; nil disables caching.
	Responses cache.Cache[[]byte]
	Logger    logger.Logger
}

// MetadataService defines the TMDB operations the proxy serves.
// *tmdb.Client implements it.
type MetadataService interface {
	GetPerson(ctx context.Context, id int, opts ...tmdb.Option) (*tmdb.Person, error)
	GetPersonCredits(ctx context.Context, id int, opts ...tmdb.Option) (*tmdb.MovieCredits, error)
	GetPersonTVCredits(ctx context.Context, id int, opts ...tmdb.Option) (*tmdb.TVCredits, error)
	GetPersonImages(ctx context.Context, id int) (*tmdb.ProfileImages, error)
	GetPersonChanges(ctx context.Context, id int, opts ...tmdb.Option) ([]tmdb.Change, error)
	GetChangedPeople(ctx context.Context, opts ...tmdb.Option) (*tmdb.ChangedEntities, error)

	GetMovie(ctx context.Context, id int, opts ...tmdb.Option) (*tmdb.Movie, error)
	GetMovieCredits(ctx context.Context, id int, opts ...tmdb.Option) (*tmdb.Credits, error)
	GetMovieImages(ctx context.Context, id int) (*tmdb.MovieImages, error)
	GetMovieChanges(ctx context.Context, id int, opts ...tmdb.Option) ([]tmdb.Change, error)
	GetChangedMovies(ctx context.Context, opts ...tmdb.Option) (*tmdb.ChangedEntities, error)

	GetConfiguration(ctx context.Context) (*tmdb.Configuration, error)
}

var _ MetadataService = (*tmdb.Client)(nil)
