package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"curator/internal/artwork"
	"curator/internal/auth"
	"curator/internal/catalog"
	"curator/internal/config"
	"curator/internal/exhibition"
	"curator/internal/gallery"
	"curator/internal/httpx"
	"curator/internal/platform/aic"
	"curator/internal/platform/httpclient"
	"curator/internal/platform/met"
	"curator/internal/preferences"
	"curator/internal/share"
	"curator/internal/storage"
)

// app owns every long-lived component of the server.
type app struct {
	handler   http.Handler
	storage   *storage.Service
	rateLimit *httpx.RateLimitMiddleware
	galleries []*gallery.Controller
	logger    *zap.Logger
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	backend, err := storage.Open(ctx, storage.Config{
		Driver:     cfg.StorageDriver,
		SQLitePath: cfg.SQLitePath,
		DSN:        cfg.DBDSN,
		Timeout:    cfg.DBTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	store := storage.NewService(backend)

	museumClient := func(baseURL string) *httpclient.Client {
		return httpclient.New(httpclient.Options{
			BaseURL:    baseURL,
			UserAgent:  cfg.MuseumUserAgent,
			RPS:        cfg.MuseumRPS,
			MaxRetries: cfg.MuseumMaxRetries,
			Timeout:    cfg.MuseumTimeout,
		})
	}
	catalogService := catalog.NewService(
		aic.NewClient(museumClient(cfg.AICBaseURL)),
		met.NewClient(museumClient(cfg.MetBaseURL)),
		catalog.Config{Limit: cfg.CatalogLimit, Concurrency: cfg.FetchConcurrency},
		logger.Named("catalog"),
	)

	exhibitionStore := exhibition.NewStore(store, logger.Named("exhibitions"))
	exhibitionService := exhibition.NewService(exhibitionStore, catalogService)
	resolver := share.NewResolver(catalogService, cfg.FetchConcurrency)

	var controllers []*gallery.Controller
	for _, source := range artwork.Sources {
		controllers = append(controllers, gallery.NewController(source, catalogService, cfg.GalleryPageSize, logger.Named("gallery")))
	}

	prefs := preferences.NewService(store)
	prefs.SubscribeTheme(func(namespace string, t preferences.Theme) {
		logger.Debug("theme changed", zap.String("client_id", namespace), zap.String("theme", string(t)))
	})

	h := handlers{
		auth:        auth.NewHTTPHandler(auth.NewService(cfg.JWTSecret, cfg.ClientTTL), logger),
		catalog:     catalog.NewHTTPHandler(catalogService, logger),
		exhibitions: exhibition.NewHTTPHandler(exhibitionService, logger),
		share:       share.NewHTTPHandler(exhibitionStore, resolver, cfg.PublicBaseURL+"/v1/shared", logger),
		galleries:   gallery.NewHTTPHandler(catalogService, cfg.GalleryPageSize, logger, controllers...),
		preferences: preferences.NewHTTPHandler(prefs, logger),
	}

	rl := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router := newRouter(h, store, cfg.JWTSecret)

	return &app{
		handler:   withMiddleware(router, logger, rl, cfg.CORSOrigins, cfg.MaxBodyBytes, cfg.EnableHSTS),
		storage:   store,
		rateLimit: rl,
		galleries: controllers,
		logger:    logger,
	}, nil
}

// warmGalleries loads every featured gallery concurrently. Failures leave the
// controller in its error state; a later refresh retries.
func (a *app) warmGalleries(ctx context.Context) {
	var wg sync.WaitGroup
	for _, c := range a.galleries {
		wg.Add(1)
		go func(c *gallery.Controller) {
			defer wg.Done()
			if err := c.Load(ctx); err != nil {
				a.logger.Warn("gallery warmup failed", zap.String("source", string(c.Source())), zap.Error(err))
			}
		}(c)
	}
	wg.Wait()
}

func (a *app) Close() error {
	a.rateLimit.Stop()
	return a.storage.Close()
}
