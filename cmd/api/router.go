package main

import (
	"context"
	"log/slog"
	"net/http"

	"personallibrary/internal/book"
	"personallibrary/internal/config"
	"personallibrary/internal/httpx"
)

// NewRouter builds the full handler tree. ctx bounds background work such as
// the rate limiter janitor.
func NewRouter(ctx context.Context, cfg config.Config, logger *slog.Logger, bookService *book.Service) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.Text(w, http.StatusOK, "ok")
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		n, err := bookService.Count(r.Context())
		if err != nil {
			httpx.JSONError(w, r, http.StatusServiceUnavailable, "NOT_READY", "store not ready", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"status": "ready", "books": n})
	})

	book.NewHTTPHandler(bookService, logger).Register(router)

	rateLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)
}
