package handlers

import (
	"log/slog"
	"net/http"

	"github.com/chepyr/go-task-api/internal/auth"
	"github.com/chepyr/go-task-api/internal/metrics"
)

/*
Reject the request unless X-API-TOKEN matches the configured frontend secret.
Nothing behind the middleware runs for a rejected request.
*/
func (h *Handler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.Guard.Allow(r.Header.Get(auth.HeaderName)) {
			metrics.UnauthorizedRequests.Inc()
			h.logger().WarnContext(r.Context(), "request rejected by token guard",
				slog.String("request_id", RequestIDFromContext(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			sendUnauthorized(w)
			return
		}
		next(w, r)
	}
}
