package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"curator/internal/auth"
	"curator/internal/catalog"
	"curator/internal/exhibition"
	"curator/internal/gallery"
	"curator/internal/httpx"
	"curator/internal/preferences"
	"curator/internal/share"
	"curator/internal/storage"
)

type handlers struct {
	auth        *auth.HTTPHandler
	catalog     *catalog.HTTPHandler
	exhibitions *exhibition.HTTPHandler
	share       *share.HTTPHandler
	galleries   *gallery.HTTPHandler
	preferences *preferences.HTTPHandler
}

func newRouter(h handlers, ready storage.Pinger, jwtSecret string) *http.ServeMux {
	router := http.NewServeMux()
	protected := httpx.AuthMiddleware(jwtSecret)
	guard := func(fn http.HandlerFunc) http.Handler { return protected(fn) }

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ready.Ping(ctx); err != nil {
			http.Error(w, "storage not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("POST /v1/clients", h.auth.Register)
	router.Handle("POST /v1/clients/renew", guard(h.auth.Renew))

	router.HandleFunc("GET /v1/galleries/{source}", h.galleries.Get)
	router.HandleFunc("POST /v1/galleries/{source}/refresh", h.galleries.Refresh)
	router.HandleFunc("GET /v1/artworks/{source}/{id}", h.catalog.GetArtwork)
	router.HandleFunc("GET /v1/shared", h.share.Resolve)

	router.Handle("GET /v1/exhibitions", guard(h.exhibitions.List))
	router.Handle("POST /v1/exhibitions", guard(h.exhibitions.Create))
	router.Handle("GET /v1/exhibitions/{id}", guard(h.exhibitions.Get))
	router.Handle("PATCH /v1/exhibitions/{id}", guard(h.exhibitions.Rename))
	router.Handle("DELETE /v1/exhibitions/{id}", guard(h.exhibitions.Delete))
	router.Handle("POST /v1/exhibitions/{id}/artworks", guard(h.exhibitions.AddArtwork))
	router.Handle("GET /v1/exhibitions/{id}/artworks/{source}/{artworkID}", guard(h.exhibitions.IsSaved))
	router.Handle("DELETE /v1/exhibitions/{id}/artworks/{source}/{artworkID}", guard(h.exhibitions.RemoveArtwork))
	router.Handle("GET /v1/exhibitions/{id}/share", guard(h.share.CreateLink))

	router.Handle("GET /v1/preferences/theme", guard(h.preferences.GetTheme))
	router.Handle("PUT /v1/preferences/theme", guard(h.preferences.SetTheme))
	router.Handle("POST /v1/preferences/theme/toggle", guard(h.preferences.ToggleTheme))

	return router
}

// withMiddleware wraps the router in the global middleware stack, outermost first.
func withMiddleware(router http.Handler, logger *zap.Logger, rl *httpx.RateLimitMiddleware, origins []string, maxBody int64, hsts bool) http.Handler {
	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(hsts),
		httpx.CORSMiddleware(origins),
		httpx.RequestSizeLimitMiddleware(maxBody),
		rl.Middleware,
	)
}
