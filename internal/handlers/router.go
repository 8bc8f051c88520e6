package handlers

import (
	"net/http"

	"github.com/chepyr/go-task-api/internal/auth"
	"github.com/chepyr/go-task-api/internal/metrics"
	"github.com/rs/cors"
)

type RouterOptions struct {
	AllowedOrigins []string
	MetricsEnabled bool
}

// NewRouter mounts the API behind the token guard and wraps everything in the
// shared middleware chain.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	logger := h.logger()

	mux := http.NewServeMux()
	mux.HandleFunc(tasksPath, h.AuthMiddleware(h.HandleTasks))
	mux.HandleFunc("/api/v1/", h.AuthMiddleware(h.HandleNotFound))
	if opts.MetricsEnabled {
		mux.Handle("/metrics", metrics.NewHandler())
	}

	middlewares := []func(http.Handler) http.Handler{
		WithAccessLog(logger),
		WithRequestID,
		WithRecover(logger),
	}
	if len(opts.AllowedOrigins) > 0 {
		middlewares = append(middlewares, cors.New(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type", auth.HeaderName, RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
		}).Handler)
	}

	return Chain(mux, middlewares...)
}
