package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/gotmdb/internal/cache"
	"github.com/amaumene/gotmdb/internal/config"
	"github.com/amaumene/gotmdb/internal/constants"
	"github.com/amaumene/gotmdb/internal/handlers"
	"github.com/amaumene/gotmdb/internal/middleware"
	"github.com/amaumene/gotmdb/internal/services"
	"github.com/amaumene/gotmdb/pkg/logger"
	"github.com/amaumene/gotmdb/pkg/tmdb"
)

type app struct {
	config   *config.Config
	logger   logger.Logger
	services *services.Container
	client   services.MetadataService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// stdout carries command output
	log := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel), os.Stderr, os.Stderr)

	container, err := services.NewContainer(cfg, log)
	if err != nil {
		return nil, err
	}

	var client services.MetadataService = container.TMDB
	if cfg.Language != "" {
		client = withDefaultLanguage{MetadataService: client, language: cfg.Language}
	}

	return &app{
		config:   cfg,
		logger:   log,
		services: container,
		client:   client,
	}, nil
}

func (a *app) router() *gin.Engine {
	if a.config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Gzip(a.logger))
	r.Use(middleware.Logger(a.logger))

	container := *a.services
	container.TMDB = a.client
	handlers.New(&container).RegisterRoutes(r)
	return r
}

// serve runs the proxy until ctx is cancelled or SIGINT/SIGTERM arrives.
func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if lru, ok := a.services.Responses.(*cache.LRUCache[[]byte]); ok {
		lru.StartCleanup(ctx, constants.CacheCleanupInterval)
	}

	srv := &http.Server{
		Addr:              ":" + a.config.Port,
		Handler:           a.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("[App] starting HTTP server on port %s", a.config.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		a.logger.Infof("[App] shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// withDefaultLanguage applies TMDB_LANGUAGE to requests that do not set
// a language themselves.
type withDefaultLanguage struct {
	services.MetadataService
	language string
}

func (w withDefaultLanguage) opts(opts []tmdb.Option) []tmdb.Option {
	return append([]tmdb.Option{tmdb.WithLanguage(w.language)}, opts...)
}

func (w withDefaultLanguage) GetPerson(ctx context.Context, id int, opts ...tmdb.Option) (*tmdb.Person, error) {
	return w.MetadataService.GetPerson(ctx, id, w.opts(opts)...)
}

func (w withDefaultLanguage) GetPersonCredits(ctx context.Context, id int, opts ...tmdb.Option) (*tmdb.MovieCredits, error) {
	return w.MetadataService.GetPersonCredits(ctx, id, w.opts(opts)...)
}

func (w withDefaultLanguage) GetPersonTVCredits(ctx context.Context, id int, opts ...tmdb.Option) (*tmdb.TVCredits, error) {
	return w.MetadataService.GetPersonTVCredits(ctx, id, w.opts(opts)...)
}

func (w withDefaultLanguage) GetMovie(ctx context.Context, id int, opts ...tmdb.Option) (*tmdb.Movie, error) {
	return w.MetadataService.GetMovie(ctx, id, w.opts(opts)...)
}

func (w withDefaultLanguage) GetMovieCredits(ctx context.Context, id int, opts ...tmdb.Option) (*tmdb.Credits, error) {
	return w.MetadataService.GetMovieCredits(ctx, id, w.opts(opts)...)
}
